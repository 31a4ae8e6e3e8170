package filter

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// processSignal crops, resamples, blanks and scales a spectrum so that
// several spectra line up as the rows of one analysis matrix.
func processSignal(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
	o := opts.(SignalProcessingOptions)
	in := src.D1

	x, re := ascending(in.X, in.Re)

	lo, hi := math.Min(o.From, o.To), math.Max(o.From, o.To)
	if lo == hi {
		lo, hi = spectrum.MinMax(x)
	}

	var outX, outRe []float64

	if o.NbPoints == 0 {
		for i, xi := range x {
			if xi >= lo && xi <= hi {
				outX = append(outX, xi)
				outRe = append(outRe, re[i])
			}
		}
	} else {
		outX = make([]float64, o.NbPoints)
		outRe = make([]float64, o.NbPoints)
		step := (hi - lo) / float64(o.NbPoints-1)

		for i := range outX {
			outX[i] = lo + float64(i)*step
			outRe[i] = interpolate(x, re, outX[i])
		}
	}

	n := len(outRe)
	d := prepare1D(dst, src, n)
	copy(d.X, outX)
	clear(d.Im)

	mask := make([]float64, n)
	exclusionMask(mask, outX, o.ExclusionZones)
	vecmath.MulBlock(d.Re, outRe, mask)

	scale(d.Re, o.Scaling)

	return nil
}

// ascending returns x and y ordered by increasing x. Inputs already in
// ascending order are returned as is.
func ascending(x, y []float64) ([]float64, []float64) {
	if len(x) < 2 || x[0] <= x[len(x)-1] {
		return x, y
	}

	n := len(x)
	rx, ry := make([]float64, n), make([]float64, n)

	for i := range n {
		rx[i] = x[n-1-i]
		ry[i] = y[n-1-i]
	}

	return rx, ry
}

// interpolate evaluates the piecewise linear curve (x, y) at v. x must be
// ascending; values outside the range are zero.
func interpolate(x, y []float64, v float64) float64 {
	n := len(x)
	if n == 0 || v < x[0] || v > x[n-1] {
		return 0
	}

	i := sort.SearchFloat64s(x, v)
	if i == 0 {
		return y[0]
	}

	if i == n {
		return y[n-1]
	}

	dx := x[i] - x[i-1]
	if dx == 0 {
		return y[i]
	}

	t := (v - x[i-1]) / dx

	return y[i-1] + t*(y[i]-y[i-1])
}

func scale(v []float64, s Scaling) {
	if len(v) == 0 || s == ScalingNone {
		return
	}

	if s == ScalingNormalize {
		var sum float64
		for _, x := range v {
			sum += math.Abs(x)
		}

		if sum > 0 {
			vecmath.ScaleBlock(v, v, 1/sum)
		}

		return
	}

	mean, sd := stat.MeanStdDev(v, nil)

	for i := range v {
		v[i] -= mean
	}

	if s == ScalingPareto && sd > 0 {
		vecmath.ScaleBlock(v, v, 1/math.Sqrt(sd))
	}
}
