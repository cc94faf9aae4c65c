package sink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/drawspec/pkg/render"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/style"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	rsvg  bool
	ctx   context.Context
	faces map[float64]font.Face
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRSVG rasterizes the SVG output with rsvg-convert instead of drawing
// natively.
func WithRSVG(ctx context.Context) PNGOption {
	return func(r *pngRenderer) { r.rsvg, r.ctx = true, ctx }
}

var loadFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// RenderPNG draws the page as a PNG image.
func RenderPNG(p *render.Page, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, faces: make(map[float64]font.Face)}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	if r.rsvg {
		return render.ToPNG(r.ctx, RenderSVG(p), r.scale)
	}
	defer r.closeFaces()

	dpi := render.DPI * r.scale
	dc := gg.NewContext(px(p.Width*dpi), px(p.Height*dpi))
	if p.Background != nil {
		bg := p.Background
		dc.SetRGB255(int(bg.R), int(bg.G), int(bg.B))
		dc.Clear()
	}

	for _, e := range p.Elements() {
		switch e.Kind {
		case render.KindRectangle:
			r.drawRect(dc, p, e, dpi)
		case render.KindPolyline:
			r.drawPolyline(dc, p, e, dpi)
		}
		if err := r.drawLabel(dc, p, e, dpi); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) drawRect(dc *gg.Context, p *render.Page, e *render.Element, dpi float64) {
	x, y, w, h := p.ProjectRect(e.Rect, dpi)
	dc.Push()
	defer dc.Pop()
	if e.Rotation != 0 {
		cx, cy := p.Project(e.Rect.Center(), dpi)
		dc.RotateAbout(gg.Radians(-e.Rotation), cx, cy)
	}

	dc.DrawRectangle(x, y, w, h)
	if f := e.Fill; f != nil {
		if f.Fill == scene.FillGradient {
			g := gg.NewLinearGradient(x, y, x+w, y)
			for _, s := range f.Stops {
				g.AddColorStop(s.Offset, s.Color.RGBA())
			}
			dc.SetFillStyle(g)
		} else {
			dc.SetRGB255(int(f.Color.R), int(f.Color.G), int(f.Color.B))
		}
		dc.FillPreserve()
	}
	if applyStroke(dc, e.Stroke, dpi) {
		dc.Stroke()
	}
	dc.ClearPath()
}

func (r *pngRenderer) drawPolyline(dc *gg.Context, p *render.Page, e *render.Element, dpi float64) {
	pts := make([]gg.Point, len(e.Points))
	for i, pt := range e.Points {
		x, y := p.Project(pt, dpi)
		pts[i] = gg.Point{X: x, Y: y}
	}
	dc.Push()
	defer dc.Pop()

	if !applyStroke(dc, e.Stroke, dpi) {
		return
	}
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	dc.Stroke()

	if e.Stroke.EndArrow != int(style.ArrowNone) {
		size := math.Max(render.PtToPx(e.Stroke.WeightPt, dpi)*4, 6*dpi/render.DPI)
		drawArrowhead(dc, style.Arrow(e.Stroke.EndArrow), pts[len(pts)-2], pts[len(pts)-1], size)
	}
}

func drawArrowhead(dc *gg.Context, a style.Arrow, from, tip gg.Point, size float64) {
	angle := math.Atan2(tip.Y-from.Y, tip.X-from.X)
	dc.SetDash()
	dc.Push()
	dc.RotateAbout(angle, tip.X, tip.Y)
	switch a {
	case style.ArrowDiamond:
		dc.MoveTo(tip.X, tip.Y)
		dc.LineTo(tip.X-size/2, tip.Y-size/3)
		dc.LineTo(tip.X-size, tip.Y)
		dc.LineTo(tip.X-size/2, tip.Y+size/3)
		dc.ClosePath()
	case style.ArrowCircle:
		dc.DrawCircle(tip.X-size/3, tip.Y, size/3)
	default:
		dc.MoveTo(tip.X, tip.Y)
		dc.LineTo(tip.X-size, tip.Y-size/2)
		dc.LineTo(tip.X-size, tip.Y+size/2)
		dc.ClosePath()
	}
	dc.Fill()
	dc.Pop()
}

// applyStroke sets the stroke paint and reports whether anything is drawn.
func applyStroke(dc *gg.Context, s *scene.SetStrokeStyle, dpi float64) bool {
	if s == nil || !render.Visible(s.Pattern) {
		return false
	}
	width := render.PtToPx(s.WeightPt, dpi)
	dc.SetRGB255(int(s.Color.R), int(s.Color.G), int(s.Color.B))
	dc.SetLineWidth(width)
	dc.SetDash(render.DashArray(s.Pattern, width)...)
	return true
}

func (r *pngRenderer) drawLabel(dc *gg.Context, p *render.Page, e *render.Element, dpi float64) error {
	l := e.Label
	if l == nil || l.Text == "" || l.Transparency >= style.Invisible {
		return nil
	}
	face, err := r.face(l.SizePt, dpi)
	if err != nil {
		return err
	}
	anchor := e.LabelAnchor()
	x, y := p.Project(anchor, dpi)

	dc.Push()
	defer dc.Pop()
	if e.Kind == render.KindRectangle && e.Rotation != 0 {
		cx, cy := p.Project(e.Rect.Center(), dpi)
		dc.RotateAbout(gg.Radians(-e.Rotation), cx, cy)
	}
	dc.SetFontFace(face)
	dc.SetRGB255(int(l.Color.R), int(l.Color.G), int(l.Color.B))
	dc.DrawStringAnchored(l.Text, x, y, 0.5, 0.35)
	return nil
}

func (r *pngRenderer) face(sizePt, dpi float64) (font.Face, error) {
	key := sizePt * dpi
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	ft, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f, err := opentype.NewFace(ft, &opentype.FaceOptions{Size: sizePt, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	r.faces[key] = f
	return f, nil
}

func (r *pngRenderer) closeFaces() {
	for _, f := range r.faces {
		f.Close()
	}
}
