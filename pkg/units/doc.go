// Package units resolves measurement and color strings into canonical values.
//
// Lengths resolve to inches and line weights resolve to points, which are
// the native units of the rendering backends. Colors resolve to 8-bit RGB
// triples.
//
// # Lengths
//
// [ParseLength] accepts a non-negative number with an optional unit suffix:
//
//	units.ParseLength("96px")  // 1in
//	units.ParseLength("2.54cm") // 1in
//	units.ParseLength("100")   // 100px, the default unit for lengths
//
// Supported length units are px (96 per inch), in, cm, mm and ft.
//
// # Line Weights
//
// [ParseLineWeight] accepts pt (default) and px (72/96 pt per px).
//
// # Colors
//
// [ParseColor] accepts #RGB, #RRGGBB and "r, g, b" decimal triples.
//
// All functions are pure and safe for concurrent use.
package units
