package filter

// Name identifies a filter in the catalog.
type Name string

const (
	FFT                          Name = "fft"
	FFTDimension1                Name = "fftDimension1"
	FFTDimension2                Name = "fftDimension2"
	Apodization                  Name = "apodization"
	ZeroFilling                  Name = "zeroFilling"
	PhaseCorrection              Name = "phaseCorrection"
	PhaseCorrectionTwoDimensions Name = "phaseCorrectionTwoDimensions"
	BaselineCorrection           Name = "baselineCorrection"
	ShiftX                       Name = "shiftX"
	Shift2DX                     Name = "shift2DX"
	Shift2DY                     Name = "shift2DY"
	ExclusionZones               Name = "exclusionZones"
	SignalProcessing             Name = "signalProcessing"
)

// Valid reports whether n is one of the built-in filter names.
func (n Name) Valid() bool {
	switch n {
	case FFT, FFTDimension1, FFTDimension2,
		Apodization, ZeroFilling,
		PhaseCorrection, PhaseCorrectionTwoDimensions,
		BaselineCorrection,
		ShiftX, Shift2DX, Shift2DY,
		ExclusionZones, SignalProcessing:
		return true
	default:
		return false
	}
}

// String returns the catalog key.
func (n Name) String() string { return string(n) }

// DomainRules declares which cached axis bounds a committed filter
// invalidates.
type DomainRules struct {
	UpdateX bool
	UpdateY bool
}

// Or returns the union of both rule sets.
func (r DomainRules) Or(o DomainRules) DomainRules {
	return DomainRules{
		UpdateX: r.UpdateX || o.UpdateX,
		UpdateY: r.UpdateY || o.UpdateY,
	}
}

// All forces both axes to be recomputed.
var All = DomainRules{UpdateX: true, UpdateY: true}
