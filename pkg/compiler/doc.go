// Package compiler turns a diagram document into an ordered list of
// primitive drawing operations.
//
// # Output Order
//
// The op stream is emitted in a fixed order:
//
//  1. For each shape in declaration order: CreateRectangle, then
//     SetFillStyle and SetStrokeStyle (omitted for "text" shapes), then
//     SetTextLabel when the shape has text.
//  2. One SetZOrder per shape, ascending by z-index with ties kept in
//     declaration order.
//  3. For each connector: CreatePolyline, SetStrokeStyle and, when it has
//     text, SetTextLabel.
//  4. ResizeCanvas when auto-fit applies and at least one shape exists.
//
// All shape and stacking ops precede connector ops because connector
// endpoints are the centers of the already placed shapes.
//
// # Errors
//
// Compilation is fail-fast. The first invalid quantity, color, duplicate
// id or unknown shape reference aborts it and no scene is returned.
// Recoverable style problems (a malformed gradient, an unknown line
// pattern or arrowhead) are collected as warnings on the scene.
//
// # Concurrency
//
// A [Compiler] is single-use and not safe for concurrent use. Independent
// documents may be compiled in parallel: nothing is shared between
// compilations.
package compiler
