package math

import (
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// FFT returns the amplitude spectrum of the given real series.
// Only the non-mirrored half of the coefficients is kept, sorted by descending amplitude.
func FFT(xx []float64) *Spectrum {
	cc := fft.FFTReal(xx)

	ss := newSpectrum()
	for i, n := range cc {
		if i > len(cc)/2 {
			continue
		}
		r := cmplx.Abs(n)
		ss.add(RNum{
			Amplitude: r,
			Frequency: i,
		})
	}

	sort.Sort(sort.Reverse(spectrums(ss.Values)))

	return ss
}

// Spectrum is a collection of spectra
type Spectrum struct {
	Values    []RNum
	Amplitude float64
}

func newSpectrum() *Spectrum {
	return &Spectrum{
		Values: make([]RNum, 0),
	}
}

func (s *Spectrum) add(r RNum) {
	s.Values = append(s.Values, r)
	s.Amplitude += r.Amplitude
}

// Mean returns the average amplitude of the spectrum.
func (s *Spectrum) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Amplitude / float64(len(s.Values))
}

// Peak returns the strongest component above the given frequency.
// Use min = 1 to skip the constant (DC) component.
func (s *Spectrum) Peak(min int) (RNum, bool) {
	for _, v := range s.Values {
		if v.Frequency >= min {
			return v, true
		}
	}
	return RNum{}, false
}

// RNum defines a spectrum component
type RNum struct {
	Amplitude float64
	Frequency int
}

type spectrums []RNum

func (s spectrums) Len() int           { return len(s) }
func (s spectrums) Less(i, j int) bool { return s[i].Amplitude < s[j].Amplitude }
func (s spectrums) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
