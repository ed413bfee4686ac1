package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	mlmath "github.com/drakos74/mlviz/internal/math"
)

// Color is an rgb color.
type Color struct {
	R, G, B uint8
}

// Basic colors of the demos.
var (
	White  = Color{R: 255, G: 255, B: 255}
	Black  = Color{}
	Red    = Color{R: 255, G: 68, B: 68}
	Green  = Color{R: 80, G: 200, B: 100}
	Blue   = Color{R: 60, G: 120, B: 210}
	Yellow = Color{R: 240, G: 200, B: 60}
	Purple = Color{R: 150, G: 100, B: 200}
	Gray   = Color{R: 180, G: 180, B: 190}
)

// String returns the hex representation of the color.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText encodes the color as hex.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a hex color.
func (c *Color) UnmarshalText(text []byte) error {
	color, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = color
	return nil
}

// ParseHex parses a color of the form #rrggbb, the leading # is optional.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color '%s'", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color '%s': %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex parses the hex color and falls back to white if it is invalid.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		return White
	}
	return c
}

func channel(v float64) uint8 {
	return uint8(mlmath.Clamp(v, 0, 255))
}

// Interpolate blends linearly from c1 to c2, rounding each channel.
func Interpolate(c1, c2 Color, f float64) Color {
	lerp := func(a, b uint8) uint8 {
		return channel(math.Round(mlmath.Lerp(float64(a), float64(b), f)))
	}
	return Color{
		R: lerp(c1.R, c2.R),
		G: lerp(c1.G, c2.G),
		B: lerp(c1.B, c2.B),
	}
}

// HeightColor maps the height of a surface point to red for high and blue for low values.
func HeightColor(z float64) Color {
	return Color{
		R: channel(math.Floor(128 + z*50)),
		G: channel(math.Floor(128 - math.Abs(z)*50)),
		B: channel(math.Floor(128 - z*50)),
	}
}

// unit converts a [0,1] channel to [0,255].
func unit(r, g, b float64) Color {
	return Color{
		R: channel(math.Round(r * 255)),
		G: channel(math.Round(g * 255)),
		B: channel(math.Round(b * 255)),
	}
}

// ValueColor maps an activation value along blue, cyan, yellow and red.
func ValueColor(v float64) Color {
	switch {
	case v < -1:
		return unit(0, 0, 1)
	case v < 0:
		return unit(0, v+1, 1)
	case v < 1:
		return unit(v, 1, 1-v)
	}
	t := math.Min((v-1)/2, 1)
	return unit(1, 1-t, 0)
}

// DerivativeColor maps a derivative in [0,1] from blue to red.
func DerivativeColor(v float64) Color {
	return HSL(0.6-mlmath.Clamp(v, 0, 1)*0.6, 1, 0.5)
}

// HSL converts a hue, saturation, lightness color with all components in [0,1].
func HSL(h, s, l float64) Color {
	if s == 0 {
		return unit(l, l, l)
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return unit(hue(p, q, h+1.0/3), hue(p, q, h), hue(p, q, h-1.0/3))
}

func hue(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*6*(2.0/3-t)
	}
	return p
}
