package units

import (
	"testing"

	"github.com/matzehuels/drawspec/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"#FFF", White},
		{"#FFFFFF", White},
		{"#fff", White},
		{"#000", Black},
		{"#f80", Color{255, 136, 0}},
		{"#1a2B3c", Color{0x1a, 0x2b, 0x3c}},
		{"173, 216, 230", Color{173, 216, 230}},
		{"0,0,0", Black},
		{"  #00FF00 ", Color{0, 255, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorShortEqualsLong(t *testing.T) {
	short, _ := ParseColor("#FFF")
	long, _ := ParseColor("#FFFFFF")
	if short != long || short != (Color{255, 255, 255}) {
		t.Errorf("#FFF = %v, #FFFFFF = %v", short, long)
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, input := range []string{"", "red", "#GGG", "#12345", "#1234567", "256,0,0", "1,2", "1,2,3,4"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseColor(input)
			if !errors.Is(err, errors.ErrCodeInvalidColor) {
				t.Errorf("ParseColor(%q) error = %v, want %s", input, err, errors.ErrCodeInvalidColor)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	c := Color{0x1a, 0x2b, 0x3c}
	if got := c.Hex(); got != "#1a2b3c" {
		t.Errorf("Hex() = %q, want #1a2b3c", got)
	}
	if got := c.String(); got != "rgb(26,43,60)" {
		t.Errorf("String() = %q", got)
	}
}

func TestColorText(t *testing.T) {
	b, err := Color{255, 0, 16}.MarshalText()
	if err != nil || string(b) != "#ff0010" {
		t.Fatalf("MarshalText() = %q, %v", b, err)
	}
	var c Color
	if err := c.UnmarshalText([]byte("#ff0010")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if c != (Color{255, 0, 16}) {
		t.Errorf("UnmarshalText() = %v", c)
	}
	if err := c.UnmarshalText([]byte("nope")); err == nil {
		t.Error("UnmarshalText(nope) should fail")
	}
}
