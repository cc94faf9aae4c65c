package geom

// Transformer maps input geometry (already converted to inches) into
// backend space for a page of the given height.
type Transformer struct {
	PageHeight float64
	Convention Convention
}

// Place returns the backend rect of a shape anchored at (x, y) with size
// (w, h) under the transformer's convention.
func (t Transformer) Place(x, y, w, h float64) Rect {
	return t.PlaceAs(t.Convention.Anchor, x, y, w, h)
}

// PlaceAs is like Place but with an explicit anchor, for shapes that
// override the document convention.
func (t Transformer) PlaceAs(a Anchor, x, y, w, h float64) Rect {
	if t.Convention.YAxis == YUp {
		if a == AnchorCenter {
			return RectFromCenter(x, y, w, h)
		}
		return RectFromCorner(x, y-h, w, h)
	}
	if a == AnchorCenter {
		return RectFromCenter(x, t.PageHeight-y, w, h)
	}
	return RectFromCorner(x, t.PageHeight-y-h, w, h)
}

// Point maps a free-standing input point, such as a polyline vertex.
func (t Transformer) Point(x, y float64) Point {
	if t.Convention.YAxis == YUp {
		return Point{x, y}
	}
	return Point{x, t.PageHeight - y}
}
