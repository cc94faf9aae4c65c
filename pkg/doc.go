// Package pkg provides the core libraries for drawspec diagram compilation.
//
// # Overview
//
// drawspec turns declarative diagram documents (shapes, connectors, mixed
// units and coordinate conventions) into an ordered list of primitive
// drawing operations that any drawing backend can replay. The pkg
// directory is organized into four main areas:
//
//  1. Domain logic: units, geometry, styles, layout and the scene compiler
//  2. Rendering: replaying scenes into SVG, PNG, PDF and Graphviz
//  3. Infrastructure: caching, scene storage, configuration, hooks
//  4. [pipeline]: orchestration (decode → compile → render)
//
// # Architecture
//
// The typical data flow:
//
//	JSON / TOML document
//	         ↓
//	    [io] package (decode schema v1/v2, normalize, validate)
//	         ↓
//	    [compiler] package (resolve units, styles, layout → ops)
//	         ↓
//	    [scene] package (ordered PrimitiveOps + warnings)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/DOT/JSON output)
//
// # Quick Start
//
//	import (
//	    "os"
//	    "github.com/matzehuels/drawspec/pkg/compiler"
//	    dsio "github.com/matzehuels/drawspec/pkg/io"
//	    "github.com/matzehuels/drawspec/pkg/render/sink"
//	)
//
//	doc, _ := dsio.ImportDocument("flow.json")
//	s, _ := compiler.Compile(doc, compiler.Options{})
//	svg, _ := sink.Render(ctx, s, sink.FormatSVG, sink.Options{})
//	os.WriteFile("flow.svg", svg, 0o644)
//
// # Main Packages
//
// ## Domain Logic
//
// [units] - Length and line weight quantities ("1in", "2.54cm", bare
// pixels) normalized to inches or points, and color parsing.
//
// [geom] - Points, rects and the coordinate transformer that maps document
// coordinates under an anchor and Y axis convention to backend space.
//
// [style] - Fill, stroke and label resolution. Unparsable optional values
// fall back to defaults and are reported as STYLE_FALLBACK warnings.
//
// [layout] - Z-order ranking and auto-fit canvas sizing.
//
// [diagram] - The normalized document model shared by both JSON schemas.
//
// [compiler] - The scene compiler: a small state machine that emits shape
// ops, then connector ops, then the optional canvas resize.
//
// ## Rendering
//
// [render] - Replays a scene into a [render.Backend]. The page backend
// keeps elements in z-order for the sinks.
//
// [render/sink] - Output formats (SVG, PNG, PDF, DOT, JSON).
//
// ## Infrastructure
//
// [pipeline] - Decode, compile and render with caching, used by the CLI and
// the HTTP API so both behave the same.
//
// [cache] - File, Redis and null caches for compiled scenes and rendered
// artifacts.
//
// [store] - Persistent scene records for the API (memory and MongoDB).
//
// [config] - TOML configuration for defaults and backends.
//
// [observability] - Hooks for metrics and tracing integrations.
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/compiler/...        # Specific package
//	go test -run Example ./pkg/...    # Examples only
package pkg
