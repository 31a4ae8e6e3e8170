package filter

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Options is the typed parameter payload of one filter. The set of
// implementations is closed: one struct per [Name].
type Options interface {
	FilterName() Name
	Validate() error
}

// FFTOptions configures the 1D Fourier transform. It has no parameters.
type FFTOptions struct{}

// FFTDimension1Options configures the direct-dimension 2D transform.
type FFTDimension1Options struct{}

// FFTDimension2Options configures the indirect-dimension 2D transform.
type FFTDimension2Options struct{}

// ZeroFillingOptions sets the number of points after zero filling.
type ZeroFillingOptions struct {
	NbPoints int `yaml:"nbPoints"`
}

// ApodizationOptions configures the line broadening window.
type ApodizationOptions struct {
	// LineBroadening is the exponential broadening in Hz.
	LineBroadening float64 `yaml:"lineBroadening"`
	// GaussBroadening is the gaussian broadening in Hz. Zero disables it.
	GaussBroadening float64 `yaml:"gaussBroadening"`
	// LineBroadeningCenter places the gaussian maximum, as a fraction of the
	// acquisition time in [0,1].
	LineBroadeningCenter float64 `yaml:"lineBroadeningCenter"`
}

// PhaseCorrectionOptions configures zero- and first-order phasing. Angles are
// in degrees. Absolute replaces the spectrum by its magnitude; Auto derives
// the zero-order angle from the data and ignores Ph0 and Ph1.
type PhaseCorrectionOptions struct {
	Ph0      float64 `yaml:"ph0"`
	Ph1      float64 `yaml:"ph1"`
	Absolute bool    `yaml:"absolute"`
	Auto     bool    `yaml:"auto"`
}

// PhaseAngles is a pair of zero- and first-order angles in degrees.
type PhaseAngles struct {
	Ph0 float64 `yaml:"ph0"`
	Ph1 float64 `yaml:"ph1"`
}

// TwoDimensionPhaseCorrectionOptions phases rows (Horizontal) and columns
// (Vertical) of a 2D spectrum.
type TwoDimensionPhaseCorrectionOptions struct {
	Horizontal PhaseAngles `yaml:"horizontal"`
	Vertical   PhaseAngles `yaml:"vertical"`
}

// BaselineCorrectionOptions fits a polynomial through the baseline zones and
// subtracts it. With no zones every point is used.
type BaselineCorrectionOptions struct {
	Algorithm string `yaml:"algorithm"`
	Degree    int    `yaml:"degree"`
	Zones     []Zone `yaml:"zones"`
}

// ShiftXOptions offsets the x axis of a 1D spectrum.
type ShiftXOptions struct {
	Shift float64 `yaml:"shift"`
}

// Shift2DXOptions offsets the x axis of a 2D spectrum.
type Shift2DXOptions struct {
	Shift float64 `yaml:"shift"`
}

// Shift2DYOptions offsets the y axis of a 2D spectrum.
type Shift2DYOptions struct {
	Shift float64 `yaml:"shift"`
}

// ExclusionZonesOptions lists the regions zeroed by the exclusion filter.
type ExclusionZonesOptions struct {
	Zones []Zone `yaml:"zones"`
}

// Scaling selects the column scaling of signal-matrix processing.
type Scaling string

const (
	ScalingNone       Scaling = ""
	ScalingCenterMean Scaling = "centerMean"
	ScalingPareto     Scaling = "pareto"
	ScalingNormalize  Scaling = "normalize"
)

// SignalProcessingOptions prepares spectra for matrix analysis: crop to
// [From,To], resample to NbPoints equally spaced points, blank the exclusion
// zones and scale.
type SignalProcessingOptions struct {
	From           float64 `yaml:"from"`
	To             float64 `yaml:"to"`
	NbPoints       int     `yaml:"nbPoints"`
	Scaling        Scaling `yaml:"scaling"`
	ExclusionZones []Zone  `yaml:"exclusionZones"`
}

func (FFTOptions) FilterName() Name                         { return FFT }
func (FFTDimension1Options) FilterName() Name               { return FFTDimension1 }
func (FFTDimension2Options) FilterName() Name               { return FFTDimension2 }
func (ZeroFillingOptions) FilterName() Name                 { return ZeroFilling }
func (ApodizationOptions) FilterName() Name                 { return Apodization }
func (PhaseCorrectionOptions) FilterName() Name             { return PhaseCorrection }
func (TwoDimensionPhaseCorrectionOptions) FilterName() Name { return PhaseCorrectionTwoDimensions }
func (BaselineCorrectionOptions) FilterName() Name          { return BaselineCorrection }
func (ShiftXOptions) FilterName() Name                      { return ShiftX }
func (Shift2DXOptions) FilterName() Name                    { return Shift2DX }
func (Shift2DYOptions) FilterName() Name                    { return Shift2DY }
func (ExclusionZonesOptions) FilterName() Name              { return ExclusionZones }
func (SignalProcessingOptions) FilterName() Name            { return SignalProcessing }

func (FFTOptions) Validate() error           { return nil }
func (FFTDimension1Options) Validate() error { return nil }
func (FFTDimension2Options) Validate() error { return nil }

func (o ZeroFillingOptions) Validate() error {
	if o.NbPoints <= 0 {
		return fmt.Errorf("%w: zero filling nbPoints must be > 0: %d", ErrInvalidOptions, o.NbPoints)
	}

	return nil
}

func (o ApodizationOptions) Validate() error {
	if !finite(o.LineBroadening) || !finite(o.GaussBroadening) {
		return fmt.Errorf("%w: apodization broadening must be finite", ErrInvalidOptions)
	}

	if o.GaussBroadening < 0 {
		return fmt.Errorf("%w: gauss broadening must be >= 0: %f", ErrInvalidOptions, o.GaussBroadening)
	}

	if o.LineBroadeningCenter < 0 || o.LineBroadeningCenter > 1 {
		return fmt.Errorf("%w: line broadening center must be in [0,1]: %f", ErrInvalidOptions, o.LineBroadeningCenter)
	}

	return nil
}

func (o PhaseCorrectionOptions) Validate() error {
	if !finite(o.Ph0) || !finite(o.Ph1) {
		return fmt.Errorf("%w: phase angles must be finite", ErrInvalidOptions)
	}

	if o.Absolute && o.Auto {
		return fmt.Errorf("%w: absolute and auto phase correction are exclusive", ErrInvalidOptions)
	}

	return nil
}

func (o TwoDimensionPhaseCorrectionOptions) Validate() error {
	for _, a := range []PhaseAngles{o.Horizontal, o.Vertical} {
		if !finite(a.Ph0) || !finite(a.Ph1) {
			return fmt.Errorf("%w: phase angles must be finite", ErrInvalidOptions)
		}
	}

	return nil
}

const maxBaselineDegree = 6

func (o BaselineCorrectionOptions) Validate() error {
	if o.Algorithm != "" && o.Algorithm != "polynomial" {
		return fmt.Errorf("%w: unsupported baseline algorithm %q", ErrInvalidOptions, o.Algorithm)
	}

	if o.Degree < 0 || o.Degree > maxBaselineDegree {
		return fmt.Errorf("%w: baseline degree must be in [0,%d]: %d", ErrInvalidOptions, maxBaselineDegree, o.Degree)
	}

	return validateZones(o.Zones)
}

func (o ShiftXOptions) Validate() error   { return validateShift(o.Shift) }
func (o Shift2DXOptions) Validate() error { return validateShift(o.Shift) }
func (o Shift2DYOptions) Validate() error { return validateShift(o.Shift) }

func (o ExclusionZonesOptions) Validate() error {
	return validateZones(o.Zones)
}

func (o SignalProcessingOptions) Validate() error {
	if !finite(o.From) || !finite(o.To) {
		return fmt.Errorf("%w: signal processing range must be finite", ErrInvalidOptions)
	}

	if o.NbPoints < 0 || o.NbPoints == 1 {
		return fmt.Errorf("%w: signal processing nbPoints must be 0 or >= 2: %d", ErrInvalidOptions, o.NbPoints)
	}

	switch o.Scaling {
	case ScalingNone, ScalingCenterMean, ScalingPareto, ScalingNormalize:
	default:
		return fmt.Errorf("%w: unknown scaling %q", ErrInvalidOptions, o.Scaling)
	}

	return validateZones(o.ExclusionZones)
}

// Zone is an x-axis interval. From <= To after [NewZone].
type Zone struct {
	ID   string  `yaml:"id"`
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
}

// NewZone returns a zone with a fresh id and ordered bounds. It fails with
// [ErrInvalidZoneRange] for non-finite or empty ranges.
func NewZone(from, to float64) (Zone, error) {
	if from > to {
		from, to = to, from
	}

	z := Zone{ID: uuid.NewString(), From: from, To: to}

	if err := z.Validate(); err != nil {
		return Zone{}, err
	}

	return z, nil
}

// Validate checks the bounds of the zone.
func (z Zone) Validate() error {
	if !finite(z.From) || !finite(z.To) {
		return fmt.Errorf("%w: bounds must be finite: [%v, %v]", ErrInvalidZoneRange, z.From, z.To)
	}

	if z.From >= z.To {
		return fmt.Errorf("%w: from must be < to: [%v, %v]", ErrInvalidZoneRange, z.From, z.To)
	}

	return nil
}

// Contains reports whether x lies inside the closed interval.
func (z Zone) Contains(x float64) bool {
	return x >= z.From && x <= z.To
}

func validateZones(zones []Zone) error {
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func validateShift(v float64) error {
	if !finite(v) {
		return fmt.Errorf("%w: shift must be finite: %v", ErrInvalidOptions, v)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DecodeOptions builds the options variant for name, filling it through
// decode (for example a yaml.Node's Decode method). A nil decode returns the
// zero value.
func DecodeOptions(name Name, decode func(v any) error) (Options, error) {
	switch name {
	case FFT:
		return decodeInto(FFTOptions{}, decode)
	case FFTDimension1:
		return decodeInto(FFTDimension1Options{}, decode)
	case FFTDimension2:
		return decodeInto(FFTDimension2Options{}, decode)
	case ZeroFilling:
		return decodeInto(ZeroFillingOptions{}, decode)
	case Apodization:
		return decodeInto(ApodizationOptions{}, decode)
	case PhaseCorrection:
		return decodeInto(PhaseCorrectionOptions{}, decode)
	case PhaseCorrectionTwoDimensions:
		return decodeInto(TwoDimensionPhaseCorrectionOptions{}, decode)
	case BaselineCorrection:
		return decodeInto(BaselineCorrectionOptions{}, decode)
	case ShiftX:
		return decodeInto(ShiftXOptions{}, decode)
	case Shift2DX:
		return decodeInto(Shift2DXOptions{}, decode)
	case Shift2DY:
		return decodeInto(Shift2DYOptions{}, decode)
	case ExclusionZones:
		return decodeInto(ExclusionZonesOptions{}, decode)
	case SignalProcessing:
		return decodeInto(SignalProcessingOptions{}, decode)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
}

func decodeInto[T Options](v T, decode func(any) error) (Options, error) {
	if decode == nil {
		return v, nil
	}

	if err := decode(&v); err != nil {
		return nil, fmt.Errorf("filter: decode %s options: %w", v.FilterName(), err)
	}

	return v, nil
}
