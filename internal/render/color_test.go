package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {

	type test struct {
		hex   string
		color Color
		err   bool
	}

	tests := map[string]test{
		"hash":    {hex: "#3c78d2", color: Color{R: 60, G: 120, B: 210}},
		"no-hash": {hex: "ffd700", color: Color{R: 255, G: 215}},
		"upper":   {hex: "#FF0000", color: Color{R: 255}},
		"short":   {hex: "#fff", err: true},
		"not-hex": {hex: "#gg0000", err: true},
		"empty":   {hex: "", err: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := ParseHex(tt.hex)
			if tt.err {
				assert.Error(t, err)
				assert.Equal(t, White, MustHex(tt.hex))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.color, c)
		})
	}
}

func TestColor_JSON(t *testing.T) {
	b, err := json.Marshal(Blue)
	require.NoError(t, err)
	assert.Equal(t, `"#3c78d2"`, string(b))

	var c Color
	require.NoError(t, json.Unmarshal(b, &c))
	assert.Equal(t, Blue, c)
}

func TestInterpolate(t *testing.T) {
	c1 := MustHex("#ffffff")
	c2 := MustHex("#3c78d2")

	assert.Equal(t, c1, Interpolate(c1, c2, 0))
	assert.Equal(t, c2, Interpolate(c1, c2, 1))
	// 255 + (60-255)/2 = 157.5
	assert.Equal(t, Color{R: 158, G: 188, B: 233}, Interpolate(c1, c2, 0.5))
}

func TestHeightColor(t *testing.T) {

	type test struct {
		z     float64
		color Color
	}

	tests := map[string]test{
		"zero":     {z: 0, color: Color{R: 128, G: 128, B: 128}},
		"positive": {z: 1, color: Color{R: 178, G: 78, B: 78}},
		"negative": {z: -1, color: Color{R: 78, G: 78, B: 178}},
		"fraction": {z: 0.01, color: Color{R: 128, G: 127, B: 127}},
		"high":     {z: 10, color: Color{R: 255, G: 0, B: 0}},
		"low":      {z: -10, color: Color{R: 0, G: 0, B: 255}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.color, HeightColor(tt.z))
		})
	}
}

func TestValueColor(t *testing.T) {

	type test struct {
		v     float64
		color Color
	}

	tests := map[string]test{
		"very-negative": {v: -3, color: Color{B: 255}},
		"minus-one":     {v: -1, color: Color{B: 255}},
		"negative":      {v: -0.5, color: Color{G: 128, B: 255}},
		"zero":          {v: 0, color: Color{G: 255, B: 255}},
		"half":          {v: 0.5, color: Color{R: 128, G: 255, B: 128}},
		"one":           {v: 1, color: Color{R: 255, G: 255}},
		"two":           {v: 2, color: Color{R: 255, G: 128}},
		"saturated":     {v: 5, color: Color{R: 255}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.color, ValueColor(tt.v))
		})
	}
}

func TestDerivativeColor(t *testing.T) {
	// hue 0.6 is blue, hue 0 is red
	assert.Equal(t, Color{R: 0, G: 102, B: 255}, DerivativeColor(0))
	assert.Equal(t, Color{R: 255, G: 0, B: 0}, DerivativeColor(1))
	assert.Equal(t, DerivativeColor(1), DerivativeColor(7))
	assert.Equal(t, DerivativeColor(0), DerivativeColor(-2))
}

func TestHSL(t *testing.T) {
	assert.Equal(t, Color{R: 128, G: 128, B: 128}, HSL(0.3, 0, 0.5))
	assert.Equal(t, Color{G: 255}, HSL(1.0/3, 1, 0.5))
	assert.Equal(t, White, HSL(0, 1, 1))
}
