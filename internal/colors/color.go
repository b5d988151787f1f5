package colors

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColorFormat is returned for input that is not a #RRGGBB color.
var ErrInvalidColorFormat = errors.New("invalid color format: want #RRGGBB")

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-359 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// Color is a validated sRGB color.
type Color struct {
	c colorful.Color
}

// ParseHex validates and parses a hex color string.
func ParseHex(s string) (Color, error) {
	hex, err := normalizeHex(s)
	if err != nil {
		return Color{}, err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %v", ErrInvalidColorFormat, err)
	}
	return Color{c: c}, nil
}

// MustParseHex is like ParseHex but panics on invalid input. Intended for
// constants.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(fmt.Sprintf("invalid color %q: %v", s, err))
	}
	return c
}

// FromRGB builds a color from 8-bit channels.
func FromRGB(r, g, b uint8) Color {
	return Color{c: colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}}
}

// Hex returns the canonical "#RRGGBB" form.
func (c Color) Hex() string {
	rgb := c.RGB()
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// RGB returns the 8-bit channels.
func (c Color) RGB() RGBColor {
	r, g, b := c.c.RGB255()
	return RGBColor{R: r, G: g, B: b}
}

// HSL returns the rounded HSL components. The hue is taken from its
// 6-sector position normalized to [0,1) and then scaled by 360, and every
// component rounds half up, so ties land where a browser's Math.round puts
// them.
func (c Color) HSL() HSLColor {
	rgb := c.RGB()
	r, g, b := float64(rgb.R)/255, float64(rgb.G)/255, float64(rgb.B)/255

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l := (hi + lo) / 2

	var h, s float64
	if hi != lo {
		d := hi - lo
		if l > 0.5 {
			s = d / (2 - hi - lo)
		} else {
			s = d / (hi + lo)
		}
		switch hi {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	hue := roundHalfUp(h * 360)
	if hue >= 360 {
		hue -= 360
	}
	return HSLColor{
		H: hue,
		S: roundHalfUp(s * 100),
		L: roundHalfUp(l * 100),
	}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// RGBString formats the color as "rgb(R, G, B)".
func (c Color) RGBString() string {
	rgb := c.RGB()
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// HSLString formats the color as "hsl(H, S%, L%)".
func (c Color) HSLString() string {
	hsl := c.HSL()
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hsl.H, hsl.S, hsl.L)
}

// NRGBA returns the opaque image/color equivalent.
func (c Color) NRGBA() color.NRGBA {
	rgb := c.RGB()
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xff}
}

// ToRGB converts a hex color to its "rgb(R, G, B)" form.
func ToRGB(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.RGBString(), nil
}

// ToHSL converts a hex color to its "hsl(H, S%, L%)" form.
func ToHSL(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.HSLString(), nil
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex       string   `json:"hex"`        // Canonical "#RRGGBB"
	RGBString string   `json:"rgb_string"` // "rgb(R, G, B)"
	HSLString string   `json:"hsl_string"` // "hsl(H, S%, L%)"
	RGB       RGBColor `json:"rgb"`
	HSL       HSLColor `json:"hsl"`
}

// Describe returns every representation of a hex color.
func Describe(hex string) (*ColorResult, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return nil, err
	}
	return c.Describe(), nil
}

// Describe returns every representation of c.
func (c Color) Describe() *ColorResult {
	return &ColorResult{
		Hex:       c.Hex(),
		RGBString: c.RGBString(),
		HSLString: c.HSLString(),
		RGB:       c.RGB(),
		HSL:       c.HSL(),
	}
}

func normalizeHex(value string) (string, error) {
	v := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(v) != 6 {
		return "", ErrInvalidColorFormat
	}
	for _, r := range v {
		if !isHexDigit(r) {
			return "", ErrInvalidColorFormat
		}
	}
	return "#" + strings.ToUpper(v), nil
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	default:
		return false
	}
}
