package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerformance(t *testing.T) {

	type test struct {
		size float64
		ml   float64
		dl   float64
	}

	tests := map[string]test{
		"empty":  {size: 0, ml: 50, dl: 30},
		"500":    {size: 500, ml: 62.5, dl: 35},
		"1k":     {size: 1000, ml: 75, dl: 40},
		"10k":    {size: 10000, ml: 85, dl: 60},
		"50k":    {size: 50000, ml: 93, dl: 60 + 40000.0/90000*20},
		"100k":   {size: 100000, ml: 93 + 50000.0/950000*4, dl: 80},
		"500k":   {size: 500000, ml: 93 + 450000.0/950000*4, dl: 92},
		"1m":     {size: 1000000, ml: 97, dl: 99},
		"capped": {size: 10000000, ml: 97, dl: 99},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.ml, Performance(ML, tt.size), 1e-9)
			assert.InDelta(t, tt.dl, Performance(DL, tt.size), 1e-9)
		})
	}
}

func TestPerformance_Monotone(t *testing.T) {
	for _, a := range []Approach{ML, DL} {
		last := -1.0
		for s := 0.0; s <= 2000000; s += 5000 {
			p := Performance(a, s)
			assert.GreaterOrEqual(t, p, last, "%s at %v", a, s)
			last = p
		}
	}
}

func TestCrossover(t *testing.T) {
	sizes := []float64{100, 1000, 10000, 50000, 100000, 200000, 500000, 1000000}
	s, ok := Crossover(sizes)
	assert.True(t, ok)
	// ML leads until the deep models get close to a million samples
	assert.Equal(t, 1000000.0, s)

	_, ok = Crossover([]float64{100, 1000})
	assert.False(t, ok)
}

func TestRecommend(t *testing.T) {

	type test struct {
		size           float64
		recommendation Recommendation
	}

	tests := map[string]test{
		"small":  {size: 100, recommendation: RecommendML},
		"medium": {size: 10000, recommendation: RecommendML},
		"large":  {size: 500000, recommendation: RecommendML},
		"huge":   {size: 1000000, recommendation: RecommendBoth},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.recommendation, Recommend(tt.size))
		})
	}
}
