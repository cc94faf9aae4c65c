// Package layout computes stacking order and fitted canvas bounds.
package layout

import (
	"sort"

	"github.com/matzehuels/drawspec/pkg/geom"
)

// DefaultMargin is the auto-fit margin in inches.
const DefaultMargin = 0.5

// ZItem is a shape with its declared stacking index.
type ZItem struct {
	ID     string
	ZIndex int
}

// ZOrder returns items sorted ascending by ZIndex. Equal indices keep their
// declaration order. The input is not modified.
func ZOrder(items []ZItem) []ZItem {
	out := make([]ZItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// Canvas is a fitted page area. Origin is the backend point that becomes
// the bottom-left corner of the page.
type Canvas struct {
	Width  float64
	Height float64
	Origin geom.Point
}

// AutoFit returns the canvas that encloses all rects plus margin on every
// side. It reports false when there is nothing to fit. A negative margin
// is treated as zero.
func AutoFit(rects []geom.Rect, margin float64) (Canvas, bool) {
	if len(rects) == 0 {
		return Canvas{}, false
	}
	if margin < 0 {
		margin = 0
	}
	bounds := rects[0]
	for _, r := range rects[1:] {
		bounds = bounds.Union(r)
	}
	return Canvas{
		Width:  bounds.Width() + 2*margin,
		Height: bounds.Height() + 2*margin,
		Origin: geom.Point{X: bounds.Min.X - margin, Y: bounds.Min.Y - margin},
	}, true
}
