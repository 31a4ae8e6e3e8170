package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// TimeAxis returns n sample times spaced dt apart, starting at zero.
func TimeAxis(n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}

// ComplexTone returns the real and imaginary parts of exp(i*2*pi*freqHz*t)
// sampled at the given times.
func ComplexTone(freqHz float64, t []float64) (re, im []float64) {
	re = make([]float64, len(t))
	im = make([]float64, len(t))
	for i, ti := range t {
		im[i], re[i] = math.Sincos(2 * math.Pi * freqHz * ti)
	}
	return re, im
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Lorentzian returns an absorption line of unit height centred at x0 with
// the given half width at half maximum.
func Lorentzian(x []float64, x0, hwhm float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		u := (xi - x0) / hwhm
		out[i] = 1 / (1 + u*u)
	}
	return out
}

// FID builds a 1D time-domain snapshot of n points holding one complex tone
// per frequency. It panics on construction errors.
func FID(n int, dt float64, freqs ...float64) spectrum.Snapshot {
	t := TimeAxis(n, dt)
	re := make([]float64, n)
	im := make([]float64, n)
	for _, f := range freqs {
		r, m := ComplexTone(f, t)
		for i := range re {
			re[i] += r[i]
			im[i] += m[i]
		}
	}

	s, err := spectrum.New1D(spectrum.Info{Nucleus: []string{"1H"}, IsFid: true}, t, re, im)
	if err != nil {
		panic(err)
	}
	return s
}

// Frequency1D builds a 1D frequency-domain snapshot with the given real part
// on an ascending axis from lo to hi.
func Frequency1D(lo, hi float64, re []float64) spectrum.Snapshot {
	n := len(re)
	x := make([]float64, n)
	for i := range x {
		x[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}

	s, err := spectrum.New1D(spectrum.Info{Nucleus: []string{"1H"}}, x, re, nil)
	if err != nil {
		panic(err)
	}
	return s
}
