// Package style resolves declarative style attributes into style operations.
//
// Fills are solid colors or "-" separated multi-stop gradients. Strokes map
// pattern names and arrowhead names onto closed enumerations whose codes
// match the host application's cell values. Unrecognized names never fail:
// they fall back to a safe default and produce a STYLE_FALLBACK warning so
// a diagram still renders.
//
// Shapes of type "text" are transparent and borderless. The resolver emits
// no fill or stroke operations for them.
package style
