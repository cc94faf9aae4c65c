package style

import (
	"strings"

	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/units"
)

// GradientSeparator splits the colors of a gradient fill value.
const GradientSeparator = "-"

// DefaultFill is the fill of shapes that do not declare one.
const DefaultFill = "#FFFFFF"

// ResolveFill resolves a fill value for target.
//
// A value containing [GradientSeparator] is a gradient whose stops are
// evenly spaced at index/(count-1). A gradient with fewer than two parsable
// colors falls back to a solid fill of the first parsable color and
// reports a warning. A fill with no parsable color at all is an error.
func ResolveFill(target, value string) (scene.SetFillStyle, []errors.Warning, error) {
	if !strings.Contains(value, GradientSeparator) {
		c, err := units.ParseColor(value)
		if err != nil {
			return scene.SetFillStyle{}, nil, err
		}
		return Solid(target, c), nil, nil
	}

	var (
		colors   []units.Color
		warnings []errors.Warning
	)
	for _, part := range strings.Split(value, GradientSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := units.ParseColor(part)
		if err != nil {
			warnings = append(warnings, errors.Fallback(target, "skipping gradient stop %q", part))
			continue
		}
		colors = append(colors, c)
	}

	switch len(colors) {
	case 0:
		return scene.SetFillStyle{}, nil, errors.New(errors.ErrCodeInvalidColor, "gradient %q has no valid colors", value)
	case 1:
		warnings = append(warnings, errors.Fallback(target, "gradient %q has fewer than 2 colors, using solid fill", value))
		return Solid(target, colors[0]), warnings, nil
	}
	return Gradient(target, colors), warnings, nil
}

// Solid returns a solid fill op.
func Solid(target string, c units.Color) scene.SetFillStyle {
	return scene.SetFillStyle{Target: target, Fill: scene.FillSolid, Color: c}
}

// Gradient returns a linear gradient fill op with evenly spaced stops.
// colors must hold at least two entries.
func Gradient(target string, colors []units.Color) scene.SetFillStyle {
	stops := make([]scene.Stop, len(colors))
	last := float64(len(colors) - 1)
	for i, c := range colors {
		stops[i] = scene.Stop{Offset: float64(i) / last, Color: c}
	}
	return scene.SetFillStyle{
		Target: target,
		Fill:   scene.FillGradient,
		Color:  colors[0],
		Stops:  stops,
	}
}
