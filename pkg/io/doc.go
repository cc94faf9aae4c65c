// Package io decodes diagram documents and writes compiled scenes.
//
// # Document Formats
//
// Two JSON layouts are recognized and told apart by their top-level keys.
//
// Schema v1 places shapes by their top-left corner and fits the canvas to
// the shapes by default:
//
//	{
//	  "page": {"name": "flow", "width": "8.5in", "height": "11in"},
//	  "shapes": [
//	    {"id": "a", "x": 100, "y": 100, "width": 120, "height": 60, "text": "Start"},
//	    {"id": "b", "x": 300, "y": 100, "width": 120, "height": 60, "fill": "#FFD700-#FF8C00"}
//	  ],
//	  "connectors": [
//	    {"from": "a", "to": "b", "pattern": "dashed", "arrow": "arrow"}
//	  ]
//	}
//
// Schema v2 places shapes by their center and keeps the configured page
// size by default:
//
//	{
//	  "flowData": {"name": "graph", "width": 800, "height": 600, "backgroundColor": "#FAFAFA"},
//	  "graphData": {
//	    "nodes": [{"id": "n1", "x": 200, "y": 150, "width": 100, "height": 40}],
//	    "edges": [{"source": "n1", "target": "n2"}]
//	  }
//	}
//
// Either layout may carry a "convention" object overriding the anchor
// ("top-left" or "center") and Y axis direction ("down" or "up").
//
// Bare numbers in geometric fields are pixels; line weights and font
// sizes are points. Strings may carry any supported unit suffix.
//
// TOML documents use the v1 layout with snake_case keys.
//
// # Export
//
// Use [ExportScene] to write a compiled scene to a file, or [WriteScene]
// to write to any io.Writer. The output can be read back with [ReadScene].
package io
