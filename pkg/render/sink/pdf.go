package sink

import (
	"context"

	"github.com/matzehuels/drawspec/pkg/render"
)

// RenderPDF draws the page as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, p *render.Page, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(p, opts...))
}
