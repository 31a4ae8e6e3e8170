// Package synth generates deterministic NMR free induction decays for
// tests, demos and the command line tool.
package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// Peak is one damped complex oscillation.
type Peak struct {
	// Offset is the frequency relative to the carrier in Hz.
	Offset float64 `yaml:"offset"`
	// Amplitude is the initial intensity.
	Amplitude float64 `yaml:"amplitude"`
	// LineWidth is the full width at half height in Hz.
	LineWidth float64 `yaml:"lineWidth"`
	// Phase is the initial phase in degrees.
	Phase float64 `yaml:"phase"`
}

// Peak2D pairs a direct and an indirect dimension oscillation.
type Peak2D struct {
	Direct   Peak `yaml:"direct"`
	Indirect Peak `yaml:"indirect"`
}

// Generator creates deterministic FIDs from a shared acquisition setup.
type Generator struct {
	spectralWidth         float64
	indirectSpectralWidth float64
	frequency             float64
	nucleus               []string
	noise                 float64
	seed                  int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSpectralWidth sets the direct dimension bandwidth in Hz.
func WithSpectralWidth(hz float64) Option {
	return func(g *Generator) { g.spectralWidth = hz }
}

// WithIndirectSpectralWidth sets the indirect dimension bandwidth in Hz.
func WithIndirectSpectralWidth(hz float64) Option {
	return func(g *Generator) { g.indirectSpectralWidth = hz }
}

// WithFrequency sets the spectrometer frequency in MHz.
func WithFrequency(mhz float64) Option {
	return func(g *Generator) { g.frequency = mhz }
}

// WithNucleus sets the observed nuclei, direct dimension first.
func WithNucleus(nuclei ...string) Option {
	return func(g *Generator) {
		if len(nuclei) > 0 {
			g.nucleus = append([]string(nil), nuclei...)
		}
	}
}

// WithNoise adds deterministic white noise of the given amplitude to both
// channels.
func WithNoise(amplitude float64) Option {
	return func(g *Generator) { g.noise = amplitude }
}

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// NewGenerator creates a proton generator at 400 MHz with a 4 kHz
// bandwidth and no noise.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		spectralWidth:         4000,
		indirectSpectralWidth: 4000,
		frequency:             400,
		nucleus:               []string{"1H"},
		seed:                  1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// FID returns a 1D time-domain spectrum of n points.
func (g *Generator) FID(n int, peaks ...Peak) (spectrum.Snapshot, error) {
	if n <= 0 {
		return spectrum.Snapshot{}, fmt.Errorf("synth: fid points must be > 0: %d", n)
	}

	if g.spectralWidth <= 0 {
		return spectrum.Snapshot{}, fmt.Errorf("synth: spectral width must be > 0: %f", g.spectralWidth)
	}

	dt := 1 / g.spectralWidth
	x := make([]float64, n)
	re := make([]float64, n)
	im := make([]float64, n)

	for i := range x {
		x[i] = float64(i) * dt

		for _, p := range peaks {
			c := p.at(x[i])
			re[i] += real(c)
			im[i] += imag(c)
		}
	}

	g.addNoise(re, im)

	info := spectrum.Info{
		Nucleus:       g.nucleus[:1],
		IsFid:         true,
		Frequency:     g.frequency,
		SpectralWidth: g.spectralWidth,
	}

	return spectrum.New1D(info, x, re, im)
}

// FID2D returns a 2D time-domain spectrum with rows indirect increments
// of cols direct points each.
func (g *Generator) FID2D(rows, cols int, peaks ...Peak2D) (spectrum.Snapshot, error) {
	if rows <= 0 || cols <= 0 {
		return spectrum.Snapshot{}, fmt.Errorf("synth: fid shape must be positive: %dx%d", rows, cols)
	}

	if g.spectralWidth <= 0 || g.indirectSpectralWidth <= 0 {
		return spectrum.Snapshot{}, fmt.Errorf("synth: spectral widths must be > 0: %f, %f",
			g.spectralWidth, g.indirectSpectralWidth)
	}

	dt2 := 1 / g.spectralWidth
	dt1 := 1 / g.indirectSpectralWidth

	re := spectrum.NewMatrix(rows, cols, 0, float64(cols-1)*dt2, 0, float64(rows-1)*dt1)
	im := spectrum.NewMatrix(rows, cols, re.MinX, re.MaxX, re.MinY, re.MaxY)

	for i := range rows {
		t1 := float64(i) * dt1

		for j := range cols {
			t2 := float64(j) * dt2

			var c complex128
			for _, p := range peaks {
				c += p.Indirect.at(t1) * p.Direct.at(t2)
			}

			re.Z[i][j] = real(c)
			im.Z[i][j] = imag(c)
		}

		g.addNoise(re.Z[i], im.Z[i])
	}

	nucleus := g.nucleus
	if len(nucleus) == 1 {
		nucleus = []string{nucleus[0], nucleus[0]}
	}

	info := spectrum.Info{
		Nucleus:       nucleus,
		IsFid:         true,
		Frequency:     g.frequency,
		SpectralWidth: g.spectralWidth,
	}

	return spectrum.New2D(info, re, &im)
}

func (p Peak) at(t float64) complex128 {
	decay := math.Exp(-math.Pi * p.LineWidth * t)
	arg := 2*math.Pi*p.Offset*t + p.Phase*math.Pi/180

	return complex(p.Amplitude*decay*math.Cos(arg), p.Amplitude*decay*math.Sin(arg))
}

func (g *Generator) addNoise(re, im []float64) {
	if g.noise == 0 {
		return
	}

	rng := rand.New(rand.NewSource(g.seed))
	for i := range re {
		re[i] += (rng.Float64()*2 - 1) * g.noise
		im[i] += (rng.Float64()*2 - 1) * g.noise
	}
}
