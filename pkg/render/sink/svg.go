package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/drawspec/pkg/render"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/style"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale float64
	title bool
}

// WithSVGScale multiplies the 96 DPI pixel size of the output.
func WithSVGScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithTitle emits the page name as the document title.
func WithTitle() SVGOption { return func(r *svgRenderer) { r.title = true } }

// RenderSVG draws the page as an SVG document.
func RenderSVG(p *render.Page, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	dpi := render.DPI * r.scale

	w, h := px(p.Width*dpi), px(p.Height*dpi)
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))
	if r.title && p.Name != "" {
		canvas.Title(p.Name)
	}

	renderDefs(canvas, p.Elements())
	if p.Background != nil {
		canvas.Rect(0, 0, w, h, "fill:"+p.Background.Hex(), `id="background"`)
	}
	for i, e := range p.Elements() {
		switch e.Kind {
		case render.KindRectangle:
			renderRect(canvas, p, e, i, dpi)
		case render.KindPolyline:
			renderPolyline(canvas, p, e, i, dpi)
		}
	}
	canvas.End()
	return buf.Bytes()
}

func renderDefs(canvas *svg.SVG, elems []*render.Element) {
	var gradients, markers []int
	for i, e := range elems {
		if e.Fill != nil && e.Fill.Fill == scene.FillGradient {
			gradients = append(gradients, i)
		}
		if e.Kind == render.KindPolyline && e.Stroke != nil && e.Stroke.EndArrow != int(style.ArrowNone) {
			markers = append(markers, i)
		}
	}
	if len(gradients) == 0 && len(markers) == 0 {
		return
	}

	canvas.Def()
	for _, i := range gradients {
		stops := make([]svg.Offcolor, len(elems[i].Fill.Stops))
		for j, s := range elems[i].Fill.Stops {
			stops[j] = svg.Offcolor{Offset: uint8(math.Round(s.Offset * 100)), Color: s.Color.Hex(), Opacity: 1}
		}
		canvas.LinearGradient(gradientID(i), 0, 0, 100, 0, stops)
	}
	for _, i := range markers {
		renderMarker(canvas, markerID(i), elems[i].Stroke)
	}
	canvas.DefEnd()
}

func renderMarker(canvas *svg.SVG, id string, s *scene.SetStrokeStyle) {
	fill := "fill:" + s.Color.Hex()
	attrs := []string{`viewBox="0 0 10 10"`, `orient="auto"`, `markerUnits="strokeWidth"`}
	switch style.Arrow(s.EndArrow) {
	case style.ArrowDiamond:
		canvas.Marker(id, 10, 5, 8, 8, attrs...)
		canvas.Path("M0,5 L5,0 L10,5 L5,10 z", fill)
	case style.ArrowCircle:
		canvas.Marker(id, 9, 5, 6, 6, attrs...)
		canvas.Circle(5, 5, 4, fill)
	default:
		canvas.Marker(id, 10, 5, 6, 6, attrs...)
		canvas.Path("M0,0 L10,5 L0,10 z", fill)
	}
	canvas.MarkerEnd()
}

func renderRect(canvas *svg.SVG, p *render.Page, e *render.Element, i int, dpi float64) {
	x, y, w, h := p.ProjectRect(e.Rect, dpi)
	if e.Rotation != 0 {
		cx, cy := p.Project(e.Rect.Center(), dpi)
		canvas.Gtransform(fmt.Sprintf("rotate(%.2f %.2f %.2f)", -e.Rotation, cx, cy))
	}

	parts := []string{"fill:" + fillPaint(e.Fill, i)}
	parts = append(parts, strokeParts(e.Stroke, dpi)...)
	canvas.Rect(px(x), px(y), px(w), px(h), strings.Join(parts, ";"), idAttr(e.ID))
	renderLabel(canvas, p, e, dpi)

	if e.Rotation != 0 {
		canvas.Gend()
	}
}

func renderPolyline(canvas *svg.SVG, p *render.Page, e *render.Element, i int, dpi float64) {
	xs := make([]int, len(e.Points))
	ys := make([]int, len(e.Points))
	for j, pt := range e.Points {
		x, y := p.Project(pt, dpi)
		xs[j], ys[j] = px(x), px(y)
	}
	parts := append([]string{"fill:none"}, strokeParts(e.Stroke, dpi)...)
	attrs := []string{strings.Join(parts, ";"), idAttr(e.ID)}
	if e.Stroke != nil && e.Stroke.EndArrow != int(style.ArrowNone) {
		attrs = append(attrs, fmt.Sprintf(`marker-end="url(#%s)"`, markerID(i)))
	}
	canvas.Polyline(xs, ys, attrs...)
	renderLabel(canvas, p, e, dpi)
}

func renderLabel(canvas *svg.SVG, p *render.Page, e *render.Element, dpi float64) {
	l := e.Label
	if l == nil || l.Text == "" || l.Transparency >= style.Invisible {
		return
	}
	x, y := p.Project(e.LabelAnchor(), dpi)
	canvas.Text(px(x), px(y), l.Text, fmt.Sprintf(
		"font-family:sans-serif;font-size:%.1fpx;fill:%s;text-anchor:middle;dominant-baseline:middle",
		render.PtToPx(l.SizePt, dpi), l.Color.Hex()))
}

func fillPaint(f *scene.SetFillStyle, i int) string {
	switch {
	case f == nil:
		return "none"
	case f.Fill == scene.FillGradient:
		return fmt.Sprintf("url(#%s)", gradientID(i))
	default:
		return f.Color.Hex()
	}
}

func strokeParts(s *scene.SetStrokeStyle, dpi float64) []string {
	if s == nil || !render.Visible(s.Pattern) {
		return []string{"stroke:none"}
	}
	width := render.PtToPx(s.WeightPt, dpi)
	parts := []string{"stroke:" + s.Color.Hex(), fmt.Sprintf("stroke-width:%.2f", width)}
	if dashes := render.DashArray(s.Pattern, width); len(dashes) > 0 {
		strs := make([]string, len(dashes))
		for i, d := range dashes {
			strs[i] = fmt.Sprintf("%.1f", d)
		}
		parts = append(parts, "stroke-dasharray:"+strings.Join(strs, ","))
	}
	return parts
}

func gradientID(i int) string { return fmt.Sprintf("fill-%d", i) }
func markerID(i int) string   { return fmt.Sprintf("end-%d", i) }

func idAttr(id string) string {
	return `id="` + html.EscapeString(id) + `"`
}

func px(v float64) int { return int(math.Round(v)) }
