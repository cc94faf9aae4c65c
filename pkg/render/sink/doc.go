// Package sink provides output formats for replayed pages.
//
// # Supported Formats
//
//   - SVG: Vector output drawn with svgo, gradients and arrow markers in defs
//   - PNG: Raster output drawn natively with gg and the Go fonts
//   - PDF: Print-ready output (SVG converted by rsvg-convert)
//   - DOT: Graphviz source with every element pinned at its position
//   - JSON: The compiled op stream, for other tools and for caching
//
// # Usage
//
//	page, err := render.Build(ctx, s)
//	svg := sink.RenderSVG(page, sink.WithSVGScale(2))
//	png, err := sink.RenderPNG(page, sink.WithScale(2))
//	dot := sink.ToDOT(page)
//
// Formats other than JSON draw a [render.Page], so the op stream has already
// been validated by replay. Labels are drawn centered on their element;
// hidden labels are skipped.
//
// # External Dependencies
//
// PDF output, and PNG output with [WithRSVG], require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink

// Format names accepted by [Render].
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatJSON}
