package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
	"github.com/cwbudde/algo-nmr/nmr/synth"
)

// Recipe describes a synthetic acquisition and the filters to commit on it.
type Recipe struct {
	Spectrum SpectrumSpec `yaml:"spectrum"`
	Filters  []Step       `yaml:"filters"`
}

// SpectrumSpec configures the synthetic FID. Rows > 0 selects a 2D
// acquisition.
type SpectrumSpec struct {
	Points                int            `yaml:"points"`
	Rows                  int            `yaml:"rows"`
	SpectralWidth         float64        `yaml:"spectralWidth"`
	IndirectSpectralWidth float64        `yaml:"indirectSpectralWidth"`
	Frequency             float64        `yaml:"frequency"`
	Nucleus               []string       `yaml:"nucleus"`
	Noise                 float64        `yaml:"noise"`
	Seed                  int64          `yaml:"seed"`
	Peaks                 []synth.Peak   `yaml:"peaks"`
	Peaks2D               []synth.Peak2D `yaml:"peaks2d"`
}

// Step is one filter of a recipe. Disabled steps are committed and then
// switched off, so they stay in the chain.
type Step struct {
	Name     filter.Name `yaml:"name"`
	Options  yaml.Node   `yaml:"options"`
	Disabled bool        `yaml:"disabled"`
}

// Decode builds the typed options of the step.
func (s Step) Decode() (filter.Options, error) {
	if s.Options.Kind == 0 {
		return filter.DecodeOptions(s.Name, nil)
	}

	return filter.DecodeOptions(s.Name, s.Options.Decode)
}

// ReadRecipe decodes a YAML recipe.
func ReadRecipe(r io.Reader) (Recipe, error) {
	var rec Recipe

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&rec); err != nil {
		return Recipe{}, fmt.Errorf("failed to decode recipe: %w", err)
	}

	if rec.Spectrum.Points <= 0 {
		return Recipe{}, fmt.Errorf("recipe spectrum points must be > 0: %d", rec.Spectrum.Points)
	}

	for i, st := range rec.Filters {
		if !st.Name.Valid() {
			return Recipe{}, fmt.Errorf("recipe filter %d: %w: %q", i, filter.ErrUnknownFilter, st.Name)
		}
	}

	return rec, nil
}

// Generate synthesizes the FID described by s.
func (s SpectrumSpec) Generate() (spectrum.Snapshot, error) {
	opts := []synth.Option{
		synth.WithNoise(s.Noise),
		synth.WithNucleus(s.Nucleus...),
	}

	if s.SpectralWidth > 0 {
		opts = append(opts, synth.WithSpectralWidth(s.SpectralWidth))
	}

	if s.IndirectSpectralWidth > 0 {
		opts = append(opts, synth.WithIndirectSpectralWidth(s.IndirectSpectralWidth))
	}

	if s.Frequency > 0 {
		opts = append(opts, synth.WithFrequency(s.Frequency))
	}

	if s.Seed != 0 {
		opts = append(opts, synth.WithSeed(s.Seed))
	}

	g := synth.NewGenerator(opts...)

	if s.Rows > 0 {
		return g.FID2D(s.Rows, s.Points, s.Peaks2D...)
	}

	return g.FID(s.Points, s.Peaks...)
}
