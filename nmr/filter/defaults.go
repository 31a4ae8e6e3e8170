package filter

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

type registryConfig struct {
	apodization ApodizationOptions
	baseline    BaselineCorrectionOptions
}

// RegistryOption configures the default registry.
type RegistryOption func(*registryConfig)

// WithApodizationDefaults sets the options restored when an apodization
// preview is cancelled.
func WithApodizationDefaults(o ApodizationOptions) RegistryOption {
	return func(c *registryConfig) { c.apodization = o }
}

// WithBaselineDefaults sets the staged baseline correction options.
func WithBaselineDefaults(o BaselineCorrectionOptions) RegistryOption {
	return func(c *registryConfig) { c.baseline = o }
}

var (
	only1D = []spectrum.Dimension{spectrum.Dim1D}
	only2D = []spectrum.Dimension{spectrum.Dim2D}
)

// DefaultRegistry returns a Registry pre-populated with every built-in filter.
//
//nolint:funlen
func DefaultRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{
		apodization: ApodizationOptions{LineBroadening: 1},
		baseline:    BaselineCorrectionOptions{Algorithm: "polynomial", Degree: 3},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	xy := DomainRules{UpdateX: true, UpdateY: true}
	x := DomainRules{UpdateX: true}
	y := DomainRules{UpdateY: true}

	r := NewRegistry()

	r.MustRegister(Definition{
		Name: FFT, Kernel: fft1D, Rules: xy, Dimensions: only1D,
		RollbackApplies: true,
	})
	r.MustRegister(Definition{
		Name: FFTDimension1, Kernel: fftDimension(0), Rules: xy, Dimensions: only2D,
	})
	r.MustRegister(Definition{
		Name: FFTDimension2, Kernel: fftDimension(1), Rules: xy, Dimensions: only2D,
	})
	r.MustRegister(Definition{
		Name: ZeroFilling, Kernel: zeroFill, Rules: x, Dimensions: only1D,
	})

	apod := cfg.apodization
	r.MustRegister(Definition{
		Name: Apodization, Kernel: apodize, Rules: y, Dimensions: only1D,
		Defaults: func() Options { return apod },
	})
	r.MustRegister(Definition{
		Name: PhaseCorrection, Kernel: phaseCorrect, Rules: y, Dimensions: only1D,
		RollbackApplies: true,
		Defaults:        func() Options { return PhaseCorrectionOptions{} },
	})
	r.MustRegister(Definition{
		Name: PhaseCorrectionTwoDimensions, Kernel: phaseCorrect2D, Rules: y, Dimensions: only2D,
		Defaults: func() Options { return TwoDimensionPhaseCorrectionOptions{} },
	})

	base := cfg.baseline
	r.MustRegister(Definition{
		Name: BaselineCorrection, Kernel: baselineCorrect, Rules: y, Dimensions: only1D,
		Defaults: func() Options {
			b := base
			b.Zones = append([]Zone(nil), base.Zones...)

			return b
		},
	})
	r.MustRegister(Definition{
		Name: ShiftX, Kernel: shiftX, Rules: x, Dimensions: only1D,
		RollbackApplies: true,
	})
	r.MustRegister(Definition{
		Name: Shift2DX, Kernel: shift2D(spectrum.AxisX), Rules: x, Dimensions: only2D,
		RollbackApplies: true,
	})
	r.MustRegister(Definition{
		Name: Shift2DY, Kernel: shift2D(spectrum.AxisY), Rules: x, Dimensions: only2D,
		RollbackApplies: true,
	})
	r.MustRegister(Definition{
		Name: ExclusionZones, Kernel: excludeZones, Rules: y, Dimensions: only1D,
		Merge: mergeZones,
	})
	r.MustRegister(Definition{
		Name: SignalProcessing, Kernel: processSignal, Rules: xy, Dimensions: only1D,
		RollbackApplies: true,
	})

	return r
}

func mergeZones(existing, incoming Options) (Options, error) {
	a, ok := existing.(ExclusionZonesOptions)
	if !ok {
		return nil, fmt.Errorf("%w: existing %T", ErrInvalidOptions, existing)
	}

	b, ok := incoming.(ExclusionZonesOptions)
	if !ok {
		return nil, fmt.Errorf("%w: incoming %T", ErrInvalidOptions, incoming)
	}

	zones := make([]Zone, 0, len(a.Zones)+len(b.Zones))
	zones = append(zones, a.Zones...)
	zones = append(zones, b.Zones...)

	return ExclusionZonesOptions{Zones: zones}, nil
}
