// Package scene defines the compiled output of a diagram: an ordered list
// of primitive drawing operations in backend-native units.
//
// Every operation carries only inches, points and 0-255 RGB values in the
// backend coordinate convention (origin bottom-left, Y up). Nothing in an
// operation refers to the input units or anchor convention.
package scene

import (
	"github.com/matzehuels/drawspec/pkg/geom"
	"github.com/matzehuels/drawspec/pkg/units"
)

// Kind tags an operation variant.
type Kind string

// Operation kinds.
const (
	KindCreateRectangle Kind = "create_rectangle"
	KindCreatePolyline  Kind = "create_polyline"
	KindSetTextLabel    Kind = "set_text_label"
	KindSetFillStyle    Kind = "set_fill_style"
	KindSetStrokeStyle  Kind = "set_stroke_style"
	KindSetZOrder       Kind = "set_z_order"
	KindResizeCanvas    Kind = "resize_canvas"
)

// Kinds lists all operation kinds in declaration order.
var Kinds = []Kind{
	KindCreateRectangle,
	KindCreatePolyline,
	KindSetTextLabel,
	KindSetFillStyle,
	KindSetStrokeStyle,
	KindSetZOrder,
	KindResizeCanvas,
}

// Op is one primitive operation. The set of implementations is closed.
type Op interface {
	Kind() Kind
	op()
}

// CreateRectangle creates a rectangle shape. RotationDeg rotates it
// counter-clockwise about its center.
type CreateRectangle struct {
	ID          string    `json:"id"`
	Rect        geom.Rect `json:"rect"`
	RotationDeg float64   `json:"rotation_deg,omitempty"`
}

// CreatePolyline creates an open polyline through Points.
type CreatePolyline struct {
	ID     string       `json:"id"`
	Points []geom.Point `json:"points"`
}

// SetTextLabel sets the label of Target. Transparency is 0 (opaque) or
// 100 (invisible).
type SetTextLabel struct {
	Target       string      `json:"target"`
	Text         string      `json:"text"`
	Color        units.Color `json:"color"`
	SizePt       float64     `json:"size_pt"`
	Transparency int         `json:"transparency"`
}

// FillKind selects solid or gradient fills.
type FillKind string

const (
	FillSolid    FillKind = "solid"
	FillGradient FillKind = "gradient"
)

// Stop is a gradient color stop at Offset in [0,1].
type Stop struct {
	Offset float64     `json:"offset"`
	Color  units.Color `json:"color"`
}

// SetFillStyle fills Target with a solid color or a left-to-right linear
// gradient.
type SetFillStyle struct {
	Target string      `json:"target"`
	Fill   FillKind    `json:"fill"`
	Color  units.Color `json:"color"`
	Stops  []Stop      `json:"stops,omitempty"`
}

// SetStrokeStyle sets the line style of Target. Pattern and EndArrow hold
// the host enumeration codes (see the style package).
type SetStrokeStyle struct {
	Target   string      `json:"target"`
	Color    units.Color `json:"color"`
	WeightPt float64     `json:"weight_pt"`
	Pattern  int         `json:"pattern"`
	EndArrow int         `json:"end_arrow,omitempty"`
}

// SetZOrder brings Target to the front. Ops are issued with ascending Rank,
// so later ops stack on top.
type SetZOrder struct {
	Target string `json:"target"`
	Rank   int    `json:"rank"`
}

// ResizeCanvas sets the page size. Origin is the backend point that becomes
// the page's bottom-left corner.
type ResizeCanvas struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Origin geom.Point `json:"origin"`
}

func (CreateRectangle) Kind() Kind { return KindCreateRectangle }
func (CreatePolyline) Kind() Kind  { return KindCreatePolyline }
func (SetTextLabel) Kind() Kind    { return KindSetTextLabel }
func (SetFillStyle) Kind() Kind    { return KindSetFillStyle }
func (SetStrokeStyle) Kind() Kind  { return KindSetStrokeStyle }
func (SetZOrder) Kind() Kind       { return KindSetZOrder }
func (ResizeCanvas) Kind() Kind    { return KindResizeCanvas }

func (CreateRectangle) op() {}
func (CreatePolyline) op()  {}
func (SetTextLabel) op()    {}
func (SetFillStyle) op()    {}
func (SetStrokeStyle) op()  {}
func (SetZOrder) op()       {}
func (ResizeCanvas) op()    {}
