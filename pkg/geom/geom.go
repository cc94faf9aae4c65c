// Package geom maps input coordinates into the backend coordinate space.
//
// The backend space has its origin at the bottom-left corner of the page,
// Y increasing upward, and measures everything in inches. Inputs may anchor
// a shape at its top-left corner or at its center, and may measure Y
// downward (screen convention) or upward.
package geom

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in backend space (inches, Y up).
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in backend space. Min is the
// bottom-left corner and Max the top-right corner.
type Rect struct {
	Min, Max Point
}

// RectFromCorner builds a rect from its bottom-left corner and size.
func RectFromCorner(x, y, w, h float64) Rect {
	return Rect{Min: Point{x, y}, Max: Point{x + w, y + h}}
}

// RectFromCenter builds a rect from its center and size.
func RectFromCenter(cx, cy, w, h float64) Rect {
	return Rect{Min: Point{cx - w/2, cy - h/2}, Max: Point{cx + w/2, cy + h/2}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the rect's center (the pin point in host terms).
func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, o.Min.X), math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{math.Max(r.Max.X, o.Max.X), math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Anchor says which point of a shape its (x, y) denotes.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorCenter
)

func (a Anchor) String() string {
	switch a {
	case AnchorCenter:
		return "center"
	default:
		return "top-left"
	}
}

// ParseAnchor parses "top-left" (or "corner") and "center".
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top-left", "topleft", "corner":
		return AnchorTopLeft, nil
	case "center", "centre":
		return AnchorCenter, nil
	}
	return AnchorTopLeft, fmt.Errorf("unknown anchor %q (must be top-left or center)", s)
}

// YAxis is the direction of increasing Y in the input.
type YAxis int

const (
	YDown YAxis = iota
	YUp
)

func (y YAxis) String() string {
	if y == YUp {
		return "up"
	}
	return "down"
}

// ParseYAxis parses "down" and "up".
func ParseYAxis(s string) (YAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "screen":
		return YDown, nil
	case "up", "canvas":
		return YUp, nil
	}
	return YDown, fmt.Errorf("unknown y axis %q (must be down or up)", s)
}

// Convention fixes how a document's coordinates are interpreted.
type Convention struct {
	Anchor Anchor
	YAxis  YAxis
}

func (c Convention) String() string {
	return c.Anchor.String() + "/y-" + c.YAxis.String()
}
