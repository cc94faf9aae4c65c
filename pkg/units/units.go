package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/drawspec/pkg/errors"
)

// Unit is a measurement unit tag.
type Unit string

// Supported units.
const (
	Pixel      Unit = "px"
	Inch       Unit = "in"
	Centimeter Unit = "cm"
	Millimeter Unit = "mm"
	Foot       Unit = "ft"
	Point      Unit = "pt"
)

// DPI is the pixel density assumed for px conversions.
const DPI = 96.0

// Quantity is a magnitude tagged with its unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// String formats the quantity as "<value><unit>".
func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'f', -1, 64) + string(q.Unit)
}

// Inches converts a length quantity to inches.
func (q Quantity) Inches() float64 {
	switch q.Unit {
	case Pixel:
		return PxToIn(q.Value)
	case Centimeter:
		return q.Value / 2.54
	case Millimeter:
		return q.Value / 25.4
	case Foot:
		return q.Value * 12
	case Point:
		return q.Value / 72
	default:
		return q.Value
	}
}

// Points converts a line weight quantity to points.
func (q Quantity) Points() float64 {
	switch q.Unit {
	case Pixel:
		return PxToPt(q.Value)
	case Inch:
		return q.Value * 72
	default:
		return q.Value
	}
}

var (
	lengthRe = regexp.MustCompile(`(?i)^\s*([\d.]+)\s*(px|in|cm|mm|ft)?\s*$`)
	weightRe = regexp.MustCompile(`(?i)^\s*([\d.]+)\s*(px|pt)?\s*$`)
)

// ParseLength parses a length such as "100px", "2.5in" or "50mm" and
// returns it in inches. A bare number is read as pixels.
func ParseLength(s string) (Quantity, error) {
	q, err := parse(lengthRe, s, Pixel)
	if err != nil {
		return Quantity{}, errors.Wrap(errors.ErrCodeInvalidQuantity, err, "invalid length %q", s)
	}
	return Quantity{Value: q.Inches(), Unit: Inch}, nil
}

// ParseLineWeight parses a line weight such as "2pt" or "1.5px" and
// returns it in points. A bare number is read as points.
func ParseLineWeight(s string) (Quantity, error) {
	q, err := parse(weightRe, s, Point)
	if err != nil {
		return Quantity{}, errors.Wrap(errors.ErrCodeInvalidQuantity, err, "invalid line weight %q", s)
	}
	return Quantity{Value: q.Points(), Unit: Point}, nil
}

func parse(re *regexp.Regexp, s string, def Unit) (Quantity, error) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return Quantity{}, fmt.Errorf("does not match number[unit]")
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("bad magnitude %q", m[1])
	}
	unit := def
	if m[2] != "" {
		unit = Unit(strings.ToLower(m[2]))
	}
	return Quantity{Value: v, Unit: unit}, nil
}

// PxToIn converts pixels to inches at [DPI].
func PxToIn(px float64) float64 { return px / DPI }

// InToPx converts inches to pixels at [DPI].
func InToPx(in float64) float64 { return in * DPI }

// PxToPt converts pixels to points (1pt = 1/72in).
func PxToPt(px float64) float64 { return px * 72 / DPI }
