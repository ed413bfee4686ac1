package control

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlider_Clamp(t *testing.T) {

	type test struct {
		slider Slider
		in     float64
		out    float64
	}

	lr := Slider{Name: "learningRate", Min: 0.01, Max: 1, Step: 0.01, Default: 0.1}
	points := Slider{Name: "numPoints", Min: 10, Max: 200, Step: 10, Default: 100}
	free := Slider{Name: "free", Min: -1, Max: 1, Default: 0}

	tests := map[string]test{
		"in-range":   {slider: lr, in: 0.3, out: 0.3},
		"snap":       {slider: lr, in: 0.304, out: 0.3},
		"snap-up":    {slider: lr, in: 0.306, out: 0.31},
		"below":      {slider: lr, in: -5, out: 0.01},
		"above":      {slider: lr, in: 5, out: 1},
		"nan":        {slider: lr, in: math.NaN(), out: 0.1},
		"inf":        {slider: lr, in: math.Inf(1), out: 1},
		"neg-inf":    {slider: lr, in: math.Inf(-1), out: 0.01},
		"int-snap":   {slider: points, in: 47, out: 50},
		"int-max":    {slider: points, in: 199, out: 200},
		"continuous": {slider: free, in: 0.123456, out: 0.123456},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.out, tt.slider.Clamp(tt.in))
		})
	}
}

func TestSlider_Validate(t *testing.T) {

	type test struct {
		slider Slider
		err    bool
	}

	tests := map[string]test{
		"valid":       {slider: Slider{Name: "a", Min: 0, Max: 1, Step: 0.1, Default: 0.5}},
		"no-name":     {slider: Slider{Min: 0, Max: 1}, err: true},
		"empty":       {slider: Slider{Name: "a", Min: 1, Max: 1, Default: 1}, err: true},
		"neg-step":    {slider: Slider{Name: "a", Min: 0, Max: 1, Step: -1}, err: true},
		"bad-default": {slider: Slider{Name: "a", Min: 0, Max: 1, Default: 2}, err: true},
		"nan-bounds":  {slider: Slider{Name: "a", Min: math.NaN(), Max: 1}, err: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.slider.Validate()
			if tt.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPanel(t *testing.T) {
	p, err := NewPanel(
		Slider{Name: "learningRate", Min: 0.01, Max: 1, Step: 0.01, Default: 0.1},
		Slider{Name: "patience", Min: 1, Max: 20, Step: 1, Default: 5},
	)
	require.NoError(t, err)

	assert.True(t, p.Has("patience"))
	assert.False(t, p.Has("spread"))
	assert.Equal(t, 0.1, p.Get("learningRate"))
	assert.Equal(t, 5, p.Int("patience"))

	v, err := p.Set("patience", 25)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)
	assert.Equal(t, 20, p.Int("patience"))

	_, err = p.Set("dropoutRate", 0.5)
	assert.True(t, errors.Is(err, ErrUnknownControl))

	p.Reset()
	assert.Equal(t, 5, p.Int("patience"))

	sliders := p.Sliders()
	require.Len(t, sliders, 2)
	assert.Equal(t, "learningRate", sliders[0].Name)
}

func TestPanel_Invalid(t *testing.T) {
	_, err := NewPanel(Slider{Name: "a", Min: 0, Max: 1}, Slider{Name: "a", Min: 0, Max: 1})
	assert.Error(t, err)

	_, err = NewPanel(Slider{Name: "a", Min: 1, Max: 0})
	assert.Error(t, err)

	assert.Panics(t, func() {
		MustPanel(Slider{Name: "a", Min: 1, Max: 0})
	})
}

func TestPanel_Override(t *testing.T) {
	p := MustPanel(Slider{Name: "spread", Min: 0.5, Max: 5, Step: 0.5, Default: 2})

	err := p.Override(
		Slider{Name: "spread", Min: 1, Max: 3, Step: 1, Default: 3},
		Slider{Name: "unknown", Min: 1, Max: 3},
	)
	require.NoError(t, err)
	assert.Equal(t, 3.0, p.Get("spread"))
	v, _ := p.Set("spread", 5)
	assert.Equal(t, 3.0, v)

	err = p.Override(Slider{Name: "spread", Min: 3, Max: 1})
	assert.Error(t, err)
}
