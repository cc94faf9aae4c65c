// Package render replays compiled scenes against drawing backends.
//
// # Overview
//
// A compiled [scene.Scene] is an ordered list of primitive operations.
// This package defines the [Backend] contract those operations are
// replayed against and provides:
//
//   - [Replay], which applies a scene to a backend serially
//   - [Page], a retained page model that keeps elements in paint order
//   - [Recorder], a backend that only records what it receives
//   - SVG to PDF/PNG conversion through rsvg-convert
//
// Output formats live in the [sink] subpackage and draw a replayed [Page].
//
//	page, err := render.Build(ctx, s)
//	svg := sink.RenderSVG(page)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Coordinates
//
// Scenes use inches with the origin at the bottom-left corner of the page
// and Y pointing up. [Page.Project] maps them into raster space (pixels,
// origin top-left, Y down) for sinks.
//
// # Concurrency
//
// A backend is stateful and owned by one replay at a time. Replay applies
// operations in order and checks the context between operations.
//
// [sink]: github.com/matzehuels/drawspec/pkg/render/sink
package render
