package view

import "github.com/cwbudde/algo-nmr/nmr/chain"

// Mode is the horizontal drawing direction.
type Mode string

const (
	// RTL draws frequency-domain spectra with the ppm axis decreasing to
	// the right.
	RTL Mode = "RTL"
	// LTR draws time-domain data.
	LTR Mode = "LTR"
)

// Vertical alignment policies.
const (
	AlignBottom = "bottom"
	AlignCenter = "center"
)

// Display receives the display policy changes made after a commit.
type Display interface {
	SetMode(mode Mode)
	AutoVerticalAlign(spectra []*chain.Spectrum)
}

// DisplayState is the default [Display].
type DisplayState struct {
	Mode          Mode
	VerticalAlign string
}

// NewDisplayState starts in frequency-domain mode, bottom aligned.
func NewDisplayState() *DisplayState {
	return &DisplayState{Mode: RTL, VerticalAlign: AlignBottom}
}

// SetMode sets the drawing direction.
func (d *DisplayState) SetMode(mode Mode) {
	d.Mode = mode
}

// AutoVerticalAlign centres the traces when any spectrum is a FID, whose
// signal oscillates around zero, and aligns them to the bottom otherwise.
func (d *DisplayState) AutoVerticalAlign(spectra []*chain.Spectrum) {
	d.VerticalAlign = AlignBottom

	for _, s := range spectra {
		if s.Info().IsFid {
			d.VerticalAlign = AlignCenter
			return
		}
	}
}

// ModeFor returns the mode for a spectrum's current domain.
func ModeFor(s *chain.Spectrum) Mode {
	if s != nil && s.Info().IsFid {
		return LTR
	}

	return RTL
}
