package render

import "github.com/matzehuels/drawspec/pkg/style"

// DashArray returns the on/off lengths for a line pattern, scaled by the
// line width. Solid lines have no dashes.
func DashArray(pattern int, width float64) []float64 {
	if width < 1 {
		width = 1
	}
	var unit []float64
	switch style.LinePattern(pattern) {
	case style.PatternDashed:
		unit = []float64{4, 3}
	case style.PatternDotted:
		unit = []float64{1, 2}
	case style.PatternDashDot:
		unit = []float64{4, 2, 1, 2}
	default:
		return nil
	}
	out := make([]float64, len(unit))
	for i, u := range unit {
		out[i] = u * width
	}
	return out
}

// Visible reports whether a stroke with the given pattern draws anything.
func Visible(pattern int) bool {
	return style.LinePattern(pattern) != style.PatternNone
}

// PtToPx converts points to pixels at dpi.
func PtToPx(pt, dpi float64) float64 {
	return pt * dpi / 72
}
