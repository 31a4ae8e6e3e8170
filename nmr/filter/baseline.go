package filter

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// FitBaseline fits a polynomial of the given degree through the points of
// (x, y) that fall inside zones (every point when zones is empty) and
// evaluates it over the whole of x into dst.
func FitBaseline(dst, x, y []float64, degree int, zones []Zone) error {
	if len(x) == 0 {
		return spectrum.ErrEmptySnapshot
	}

	lo, hi := spectrum.MinMax(x)
	mid, half := (lo+hi)/2, (hi-lo)/2

	if half == 0 {
		half = 1
	}

	var idx []int

	for i, xi := range x {
		if inZones(xi, zones) {
			idx = append(idx, i)
		}
	}

	terms := degree + 1
	if len(idx) < terms {
		return fmt.Errorf("%w: %d baseline points for a degree %d fit", ErrInvalidOptions, len(idx), degree)
	}

	a := mat.NewDense(len(idx), terms, nil)
	b := mat.NewVecDense(len(idx), nil)

	for r, i := range idx {
		u := (x[i] - mid) / half
		p := 1.0

		for c := range terms {
			a.Set(r, c, p)
			p *= u
		}

		b.SetVec(r, y[i])
	}

	var qr mat.QR
	qr.Factorize(a)

	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, b); err != nil {
		return fmt.Errorf("baseline least squares: %w", err)
	}

	for i, xi := range x {
		u := (xi - mid) / half

		// Horner evaluation.
		v := 0.0
		for c := terms - 1; c >= 0; c-- {
			v = v*u + coef.AtVec(c)
		}

		dst[i] = v
	}

	return nil
}

func inZones(x float64, zones []Zone) bool {
	if len(zones) == 0 {
		return true
	}

	for _, z := range zones {
		if z.Contains(x) {
			return true
		}
	}

	return false
}

func baselineCorrect(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
	if err := requireFid(src, false); err != nil {
		return err
	}

	o := opts.(BaselineCorrectionOptions)
	in := src.D1

	d := prepare1D(dst, src, len(in.Re))
	copy(d.X, in.X)
	copy(d.Im, in.Im)

	if err := FitBaseline(d.Re, in.X, in.Re, o.Degree, o.Zones); err != nil {
		return err
	}

	for i := range d.Re {
		d.Re[i] = in.Re[i] - d.Re[i]
	}

	return nil
}
