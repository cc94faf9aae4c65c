package render

import (
	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/geom"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/style"
	"github.com/matzehuels/drawspec/pkg/units"
)

// DPI is the raster density sinks draw at before scaling.
const DPI = units.DPI

// ElementKind distinguishes page elements.
type ElementKind int

const (
	KindRectangle ElementKind = iota
	KindPolyline
)

// Element is a drawn shape with its resolved style. A nil Fill is
// transparent. A nil Stroke draws no border on rectangles and the default
// line on polylines.
type Element struct {
	ID       string
	Kind     ElementKind
	Rect     geom.Rect
	Rotation float64 // degrees, counter-clockwise
	Points   []geom.Point
	Fill     *scene.SetFillStyle
	Stroke   *scene.SetStrokeStyle
	Label    *scene.SetTextLabel
}

// LabelAnchor returns where the element's label is centered.
func (e *Element) LabelAnchor() geom.Point {
	if e.Kind == KindRectangle || len(e.Points) == 0 {
		return e.Rect.Center()
	}
	mid := len(e.Points) / 2
	if len(e.Points)%2 == 1 {
		return e.Points[mid]
	}
	a, b := e.Points[mid-1], e.Points[mid]
	return geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// DefaultLine is the stroke of polylines that never received a style.
var DefaultLine = scene.SetStrokeStyle{Color: units.Black, WeightPt: 1, Pattern: int(style.PatternSolid)}

// Page is a retained drawing: elements kept in paint order, last on top.
type Page struct {
	Name       string
	Width      float64
	Height     float64
	Origin     geom.Point // backend point at the bottom-left corner
	Background *units.Color

	elems []*Element
	byID  map[string]*Element
}

// NewPage returns an empty page.
func NewPage() *Page {
	return &Page{byID: make(map[string]*Element)}
}

// Elements returns the elements in paint order.
func (p *Page) Elements() []*Element { return p.elems }

// Element looks up an element by ID.
func (p *Page) Element(id string) (*Element, bool) {
	e, ok := p.byID[id]
	return e, ok
}

// Project maps a backend point to raster coordinates at dpi.
func (p *Page) Project(pt geom.Point, dpi float64) (x, y float64) {
	return (pt.X - p.Origin.X) * dpi, (p.Height - (pt.Y - p.Origin.Y)) * dpi
}

// ProjectRect maps a backend rect to its raster top-left corner and size.
func (p *Page) ProjectRect(r geom.Rect, dpi float64) (x, y, w, h float64) {
	x, y = p.Project(geom.Point{X: r.Min.X, Y: r.Max.Y}, dpi)
	return x, y, r.Width() * dpi, r.Height() * dpi
}

// BringToFront moves id to the top of the paint order.
func (p *Page) BringToFront(id string) error {
	for i, e := range p.elems {
		if e.ID == id {
			copy(p.elems[i:], p.elems[i+1:])
			p.elems[len(p.elems)-1] = e
			return nil
		}
	}
	return missing(id)
}

func (p *Page) CreatePage(s scene.Page) error {
	p.Name = s.Name
	p.Width = s.Width
	p.Height = s.Height
	p.Background = s.Background
	p.Origin = geom.Point{}
	return nil
}

func (p *Page) CreateRectangle(op scene.CreateRectangle) error {
	return p.add(&Element{ID: op.ID, Kind: KindRectangle, Rect: op.Rect, Rotation: op.RotationDeg})
}

func (p *Page) CreatePolyline(op scene.CreatePolyline) error {
	if len(op.Points) < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "polyline %q needs at least 2 points", op.ID)
	}
	bounds := geom.Rect{Min: op.Points[0], Max: op.Points[0]}
	for _, pt := range op.Points[1:] {
		bounds = bounds.Union(geom.Rect{Min: pt, Max: pt})
	}
	stroke := DefaultLine
	stroke.Target = op.ID
	return p.add(&Element{ID: op.ID, Kind: KindPolyline, Rect: bounds, Points: op.Points, Stroke: &stroke})
}

func (p *Page) SetTextLabel(op scene.SetTextLabel) error {
	e, ok := p.byID[op.Target]
	if !ok {
		return missing(op.Target)
	}
	e.Label = &op
	return nil
}

func (p *Page) SetFillStyle(op scene.SetFillStyle) error {
	e, ok := p.byID[op.Target]
	if !ok {
		return missing(op.Target)
	}
	e.Fill = &op
	return nil
}

func (p *Page) SetStrokeStyle(op scene.SetStrokeStyle) error {
	e, ok := p.byID[op.Target]
	if !ok {
		return missing(op.Target)
	}
	e.Stroke = &op
	return nil
}

func (p *Page) SetZOrder(op scene.SetZOrder) error {
	return p.BringToFront(op.Target)
}

func (p *Page) ResizeCanvas(op scene.ResizeCanvas) error {
	p.Width = op.Width
	p.Height = op.Height
	p.Origin = op.Origin
	return nil
}

func (p *Page) add(e *Element) error {
	if _, dup := p.byID[e.ID]; dup {
		return errors.New(errors.ErrCodeDuplicateShapeID, "element %q already exists", e.ID)
	}
	p.elems = append(p.elems, e)
	p.byID[e.ID] = e
	return nil
}

func missing(id string) error {
	return errors.New(errors.ErrCodeNotFound, "no element %q on page", id)
}
