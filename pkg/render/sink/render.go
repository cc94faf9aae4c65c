package sink

import (
	"context"

	"github.com/matzehuels/drawspec/pkg/errors"
	"github.com/matzehuels/drawspec/pkg/render"
	"github.com/matzehuels/drawspec/pkg/scene"
)

// Options configures [Render].
type Options struct {
	Scale float64 // raster scale for SVG and PNG
	Title bool    // emit the page name as SVG title
	RSVG  bool    // rasterize PNG with rsvg-convert
}

// Render replays s and produces one output format.
func Render(ctx context.Context, s *scene.Scene, format string, opts Options) ([]byte, error) {
	if err := errors.ValidateFormat(format, Formats); err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return RenderJSON(s)
	}

	page, err := render.Build(ctx, s)
	if err != nil {
		return nil, err
	}

	svgOpts := []SVGOption{WithSVGScale(1)}
	if opts.Title {
		svgOpts = append(svgOpts, WithTitle())
	}

	switch format {
	case FormatSVG:
		if opts.Scale > 0 {
			svgOpts = append(svgOpts, WithSVGScale(opts.Scale))
		}
		return RenderSVG(page, svgOpts...), nil
	case FormatPNG:
		pngOpts := []PNGOption{}
		if opts.Scale > 0 {
			pngOpts = append(pngOpts, WithScale(opts.Scale))
		}
		if opts.RSVG {
			pngOpts = append(pngOpts, WithRSVG(ctx))
		}
		return RenderPNG(page, pngOpts...)
	case FormatPDF:
		return RenderPDF(ctx, page, svgOpts...)
	case FormatDOT:
		return []byte(ToDOT(page)), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "format %q", format)
}
