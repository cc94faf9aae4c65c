package units

import (
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/drawspec/pkg/errors"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

var (
	hexRe     = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	decimalRe = regexp.MustCompile(`^(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})$`)
)

// ParseColor parses "#RGB", "#RRGGBB" or a decimal "r, g, b" triple.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)

	if hexRe.MatchString(s) {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
		}
		r, g, b := c.RGB255()
		return Color{r, g, b}, nil
	}

	m := decimalRe.FindStringSubmatch(s)
	if m == nil {
		return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q", s)
	}
	var ch [3]uint8
	for i := range ch {
		v, _ := strconv.Atoi(m[i+1])
		if v > 255 {
			return Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q: channel %d out of range", s, v)
		}
		ch[i] = uint8(v)
	}
	return Color{ch[0], ch[1], ch[2]}, nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// RGBA returns the opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// MarshalText encodes the color as "#rrggbb".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts any form understood by [ParseColor].
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
