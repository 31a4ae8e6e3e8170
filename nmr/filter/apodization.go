package filter

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// Window computes the apodization weights for the time axis t into dst.
// The exponential term is exp(-pi*lb*t); with a positive gaussian
// broadening it is multiplied by a gaussian centred at center*tmax.
func Window(dst, t []float64, o ApodizationOptions) {
	if len(t) == 0 {
		return
	}

	t0 := t[0]
	tmax := t[len(t)-1] - t0
	c := o.LineBroadeningCenter * tmax
	g := math.Pi * o.GaussBroadening

	for i, ti := range t {
		ti -= t0
		w := math.Exp(-math.Pi * o.LineBroadening * ti)

		if o.GaussBroadening > 0 {
			u := g * (ti - c)
			w *= math.Exp(-u * u / (4 * math.Ln2))
		}

		dst[i] = w
	}
}

func apodize(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
	if err := requireFid(src, true); err != nil {
		return err
	}

	o := opts.(ApodizationOptions)
	in := src.D1
	n := len(in.Re)

	d := prepare1D(dst, src, n)
	copy(d.X, in.X)

	w := make([]float64, n)
	Window(w, in.X, o)

	vecmath.MulBlock(d.Re, in.Re, w)
	vecmath.MulBlock(d.Im, in.Im, w)

	return nil
}
