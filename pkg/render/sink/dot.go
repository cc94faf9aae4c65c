package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/drawspec/pkg/geom"
	"github.com/matzehuels/drawspec/pkg/render"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/style"
)

// ToDOT converts the page to Graphviz DOT. Every element is pinned at its
// page position (inches) so neato reproduces the layout instead of
// computing one. Polylines become chains of point nodes joined by edges.
func ToDOT(p *render.Page) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", p.Name)
	bg := "transparent"
	if p.Background != nil {
		bg = p.Background.Hex()
	}
	fmt.Fprintf(&buf, "  graph [layout=neato, notranslate=true, splines=line, outputorder=edgesfirst, bgcolor=%q, bb=\"0,0,%.2f,%.2f\"];\n",
		bg, p.Width*72, p.Height*72)
	buf.WriteString("  node [shape=box, fixedsize=true, fontname=\"Helvetica\"];\n\n")

	for _, e := range p.Elements() {
		switch e.Kind {
		case render.KindRectangle:
			writeNode(&buf, p, e)
		case render.KindPolyline:
			writeChain(&buf, p, e)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func pos(p *render.Page, pt geom.Point) string {
	return fmt.Sprintf("%.3f,%.3f!", pt.X-p.Origin.X, pt.Y-p.Origin.Y)
}

func writeNode(buf *bytes.Buffer, p *render.Page, e *render.Element) {
	attrs := []string{
		fmt.Sprintf("pos=%q", pos(p, e.Rect.Center())),
		fmt.Sprintf("width=%.3f", e.Rect.Width()),
		fmt.Sprintf("height=%.3f", e.Rect.Height()),
		fmt.Sprintf("label=%q", labelText(e.Label)),
	}
	if e.Rotation != 0 {
		attrs = append(attrs, fmt.Sprintf("orientation=%.2f", e.Rotation))
	}
	var styles []string
	if f := e.Fill; f != nil {
		styles = append(styles, "filled")
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fillColor(f)))
	}
	if s := e.Stroke; s != nil && render.Visible(s.Pattern) {
		attrs = append(attrs, fmt.Sprintf("color=%q", s.Color.Hex()), fmt.Sprintf("penwidth=%.2f", s.WeightPt))
		if d := dotPattern(s.Pattern); d != "" {
			styles = append(styles, d)
		}
	} else {
		attrs = append(attrs, "peripheries=0")
	}
	if len(styles) > 0 {
		attrs = append(attrs, fmt.Sprintf("style=%q", strings.Join(styles, ",")))
	}
	if l := e.Label; l != nil {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", l.Color.Hex()), fmt.Sprintf("fontsize=%.1f", l.SizePt))
	}
	fmt.Fprintf(buf, "  %q [%s];\n", e.ID, strings.Join(attrs, ", "))
}

func writeChain(buf *bytes.Buffer, p *render.Page, e *render.Element) {
	for i, pt := range e.Points {
		fmt.Fprintf(buf, "  %q [shape=point, width=0.01, label=\"\", pos=%q];\n", vertexID(e.ID, i), pos(p, pt))
	}
	s := e.Stroke
	if s == nil {
		s = &render.DefaultLine
	}
	mid := (len(e.Points) - 1) / 2
	for i := 0; i+1 < len(e.Points); i++ {
		attrs := []string{"arrowhead=none"}
		if i == len(e.Points)-2 {
			attrs[0] = "arrowhead=" + dotArrow(style.Arrow(s.EndArrow))
		}
		if render.Visible(s.Pattern) {
			attrs = append(attrs, fmt.Sprintf("color=%q", s.Color.Hex()), fmt.Sprintf("penwidth=%.2f", s.WeightPt))
			if d := dotPattern(s.Pattern); d != "" {
				attrs = append(attrs, "style="+d)
			}
		} else {
			attrs = append(attrs, "style=invis")
		}
		if i == mid && e.Label != nil {
			attrs = append(attrs, fmt.Sprintf("label=%q", labelText(e.Label)), fmt.Sprintf("fontcolor=%q", e.Label.Color.Hex()))
		}
		fmt.Fprintf(buf, "  %q -> %q [%s];\n", vertexID(e.ID, i), vertexID(e.ID, i+1), strings.Join(attrs, ", "))
	}
}

func vertexID(id string, i int) string { return fmt.Sprintf("%s#%d", id, i) }

func labelText(l *scene.SetTextLabel) string {
	if l == nil || l.Transparency >= style.Invisible {
		return ""
	}
	return l.Text
}

// fillColor maps a gradient to Graphviz's two-color gradient syntax.
func fillColor(f *scene.SetFillStyle) string {
	if f.Fill == scene.FillGradient && len(f.Stops) >= 2 {
		return f.Stops[0].Color.Hex() + ":" + f.Stops[len(f.Stops)-1].Color.Hex()
	}
	return f.Color.Hex()
}

func dotPattern(pattern int) string {
	switch style.LinePattern(pattern) {
	case style.PatternDashed, style.PatternDashDot:
		return "dashed"
	case style.PatternDotted:
		return "dotted"
	}
	return ""
}

func dotArrow(a style.Arrow) string {
	switch a {
	case style.ArrowArrow:
		return "normal"
	case style.ArrowDiamond:
		return "diamond"
	case style.ArrowCircle:
		return "dot"
	}
	return "none"
}

// RenderGraphviz lays out the DOT form of the page with neato and renders
// it in the given Graphviz format ("svg" or "png").
func RenderGraphviz(ctx context.Context, p *render.Page, format string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(p)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.SetLayout(graphviz.NEATO).Render(ctx, g, graphviz.Format(format), &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
