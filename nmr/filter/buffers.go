package filter

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// ensureLen returns buf resliced to n, allocating only when the capacity
// is too small.
func ensureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]float64, n)
}

// prepare1D points dst at a 1D buffer set of length n, reusing whatever
// dst already holds, and copies src's info.
func prepare1D(dst *spectrum.Snapshot, src spectrum.Snapshot, n int) *spectrum.Data1D {
	dst.Info = src.Info.Clone()
	dst.D2 = nil

	if dst.D1 == nil || dst.D1 == src.D1 {
		dst.D1 = &spectrum.Data1D{}
	}

	d := dst.D1
	d.X = ensureLen(d.X, n)
	d.Re = ensureLen(d.Re, n)
	d.Im = ensureLen(d.Im, n)

	return d
}

// copy2D replaces dst with a deep copy of src's 2D data. The imaginary
// matrix is materialised as zeros when src has none.
func copy2D(dst *spectrum.Snapshot, src spectrum.Snapshot) *spectrum.Data2D {
	dst.Info = src.Info.Clone()
	dst.D1 = nil

	d := src.D2.Clone()
	if d.Im == nil {
		m := d.Re.Clone()
		for _, row := range m.Z {
			clear(row)
		}

		d.Im = &m
	}

	dst.D2 = &d

	return &d
}

func requireFid(src spectrum.Snapshot, want bool) error {
	if src.Info.IsFid == want {
		return nil
	}

	if want {
		return fmt.Errorf("%w: data is in the frequency domain", ErrNotApplicable)
	}

	return fmt.Errorf("%w: data is in the time domain", ErrNotApplicable)
}

// sampleStep returns the spacing of a linear axis, or 1 when it cannot be
// derived.
func sampleStep(x []float64) float64 {
	if len(x) < 2 || x[1] == x[0] {
		return 1
	}

	return x[1] - x[0]
}
