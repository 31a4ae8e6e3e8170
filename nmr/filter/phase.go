package filter

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// Rotate applies a zero- and first-order phase rotation to (re, im) and
// writes the result to (dstRe, dstIm). Angles are in radians; the phase of
// point i is ph0 + ph1*i/n. dst may alias the input.
func Rotate(dstRe, dstIm, re, im []float64, ph0, ph1 float64) {
	n := len(re)
	if n == 0 {
		return
	}

	for i := range n {
		phi := ph0 + ph1*float64(i)/float64(n)
		sin, cos := math.Sincos(phi)
		r, m := re[i], im[i]
		dstRe[i] = r*cos - m*sin
		dstIm[i] = r*sin + m*cos
	}
}

// AutoPhase returns the zero-order angle in degrees that maximises the
// integral of the real part.
func AutoPhase(re, im []float64) float64 {
	var sr, si float64
	for i := range re {
		sr += re[i]
		si += im[i]
	}

	return -math.Atan2(si, sr) * 180 / math.Pi
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func phaseCorrect(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
	if err := requireFid(src, false); err != nil {
		return err
	}

	o := opts.(PhaseCorrectionOptions)
	in := src.D1

	d := prepare1D(dst, src, len(in.Re))
	copy(d.X, in.X)

	switch {
	case o.Absolute:
		vecmath.Magnitude(d.Re, in.Re, in.Im)
		clear(d.Im)
	case o.Auto:
		Rotate(d.Re, d.Im, in.Re, in.Im, radians(AutoPhase(in.Re, in.Im)), 0)
	default:
		Rotate(d.Re, d.Im, in.Re, in.Im, radians(o.Ph0), radians(o.Ph1))
	}

	return nil
}

// phaseCorrect2D rotates every row with the horizontal angles, then every
// column with the vertical angles.
func phaseCorrect2D(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
	o := opts.(TwoDimensionPhaseCorrectionOptions)
	d := copy2D(dst, src)

	h0, h1 := radians(o.Horizontal.Ph0), radians(o.Horizontal.Ph1)
	if h0 != 0 || h1 != 0 {
		for i := range d.Re.Z {
			Rotate(d.Re.Z[i], d.Im.Z[i], d.Re.Z[i], d.Im.Z[i], h0, h1)
		}
	}

	v0, v1 := radians(o.Vertical.Ph0), radians(o.Vertical.Ph1)
	if v0 != 0 || v1 != 0 {
		for j := range d.Re.Cols() {
			re, im := d.Re.Column(j), d.Im.Column(j)
			Rotate(re, im, re, im, v0, v1)
			d.Re.SetColumn(j, re)
			d.Im.SetColumn(j, im)
		}
	}

	return nil
}
