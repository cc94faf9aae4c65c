package style

import (
	"strings"

	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/units"
)

// TypeText is the shape type whose fill and stroke are always suppressed.
const TypeText = "text"

// Default label values.
const (
	DefaultTextColor = "#000000"
	DefaultFontSize  = "10pt"
)

// Transparency values for labels. Partial transparency is not supported.
const (
	Opaque    = 0
	Invisible = 100
)

// TextStyle holds the declarative label attributes.
type TextStyle struct {
	Color  string
	Size   string
	Hidden bool
}

// ResolveLabel resolves a label for target.
func ResolveLabel(target, text string, t TextStyle) (scene.SetTextLabel, error) {
	colorStr := t.Color
	if colorStr == "" {
		colorStr = DefaultTextColor
	}
	c, err := units.ParseColor(colorStr)
	if err != nil {
		return scene.SetTextLabel{}, err
	}

	sizeStr := t.Size
	if sizeStr == "" {
		sizeStr = DefaultFontSize
	}
	size, err := units.ParseLineWeight(sizeStr)
	if err != nil {
		return scene.SetTextLabel{}, err
	}

	transparency := Opaque
	if t.Hidden {
		transparency = Invisible
	}
	return scene.SetTextLabel{
		Target:       target,
		Text:         text,
		Color:        c,
		SizePt:       size.Value,
		Transparency: transparency,
	}, nil
}

// Suppressed reports whether a shape of the given type gets neither fill
// nor stroke.
func Suppressed(shapeType string) bool {
	return strings.EqualFold(strings.TrimSpace(shapeType), TypeText)
}
