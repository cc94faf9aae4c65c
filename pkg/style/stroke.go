package style

import (
	"math"
	"strings"

	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/units"
)

// LinePattern is the host line pattern code.
type LinePattern int

const (
	PatternNone    LinePattern = 0
	PatternSolid   LinePattern = 1
	PatternDashed  LinePattern = 2
	PatternDotted  LinePattern = 3
	PatternDashDot LinePattern = 4
)

var patternNames = map[string]LinePattern{
	"none":     PatternNone,
	"solid":    PatternSolid,
	"dashed":   PatternDashed,
	"dotted":   PatternDotted,
	"dash-dot": PatternDashDot,
	"dashdot":  PatternDashDot,
}

func (p LinePattern) String() string {
	switch p {
	case PatternNone:
		return "none"
	case PatternDashed:
		return "dashed"
	case PatternDotted:
		return "dotted"
	case PatternDashDot:
		return "dash-dot"
	default:
		return "solid"
	}
}

// ParseLinePattern maps a pattern name to its code. Unknown names yield
// [PatternSolid] and ok=false.
func ParseLinePattern(name string) (p LinePattern, ok bool) {
	p, ok = patternNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PatternSolid, false
	}
	return p, true
}

// Arrow is the host arrowhead code. Arrowheads apply to the terminal end
// of a connector only.
type Arrow int

const (
	ArrowNone    Arrow = 0
	ArrowArrow   Arrow = 1
	ArrowDiamond Arrow = 2
	ArrowCircle  Arrow = 3
)

var arrowNames = map[string]Arrow{
	"none":    ArrowNone,
	"arrow":   ArrowArrow,
	"diamond": ArrowDiamond,
	"circle":  ArrowCircle,
}

func (a Arrow) String() string {
	switch a {
	case ArrowArrow:
		return "arrow"
	case ArrowDiamond:
		return "diamond"
	case ArrowCircle:
		return "circle"
	default:
		return "none"
	}
}

// ParseArrow maps an arrowhead name to its code. Unknown names yield
// [ArrowNone] and ok=false.
func ParseArrow(name string) (a Arrow, ok bool) {
	a, ok = arrowNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ArrowNone, false
	}
	return a, true
}

// Stroke holds the declarative stroke attributes of a shape or connector.
// Empty strings select defaults.
type Stroke struct {
	Color   string
	Width   string
	Dashed  bool
	Pattern string
	Arrow   string
}

// Default stroke values.
const (
	DefaultStrokeColor = "#000000"
	DefaultStrokeWidth = "1pt"
)

// ResolveStroke resolves a stroke for target. Unknown pattern or arrow
// names fall back with a warning; bad colors and widths are errors.
func ResolveStroke(target string, s Stroke) (scene.SetStrokeStyle, []errors.Warning, error) {
	var warnings []errors.Warning

	colorStr := s.Color
	if colorStr == "" {
		colorStr = DefaultStrokeColor
	}
	c, err := units.ParseColor(colorStr)
	if err != nil {
		return scene.SetStrokeStyle{}, nil, err
	}

	widthStr := s.Width
	if widthStr == "" {
		widthStr = DefaultStrokeWidth
	}
	w, err := units.ParseLineWeight(widthStr)
	if err != nil {
		return scene.SetStrokeStyle{}, nil, err
	}

	pattern := PatternSolid
	switch {
	case s.Pattern != "":
		var ok bool
		if pattern, ok = ParseLinePattern(s.Pattern); !ok {
			warnings = append(warnings, errors.Fallback(target, "unknown line pattern %q, using solid", s.Pattern))
		}
	case s.Dashed:
		pattern = PatternDashed
	}

	arrow := ArrowNone
	if s.Arrow != "" {
		var ok bool
		if arrow, ok = ParseArrow(s.Arrow); !ok {
			warnings = append(warnings, errors.Fallback(target, "unknown arrowhead %q, using none", s.Arrow))
		}
	}

	return scene.SetStrokeStyle{
		Target:   target,
		Color:    c,
		WeightPt: w.Value,
		Pattern:  int(pattern),
		EndArrow: int(arrow),
	}, warnings, nil
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
