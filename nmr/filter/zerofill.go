package filter

import "github.com/cwbudde/algo-nmr/nmr/spectrum"

// zeroFill pads the FID with zeros, or truncates it, to NbPoints samples.
func zeroFill(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
	if err := requireFid(src, true); err != nil {
		return err
	}

	o := opts.(ZeroFillingOptions)
	in := src.D1
	dt := sampleStep(in.X)

	x0 := 0.0
	if len(in.X) > 0 {
		x0 = in.X[0]
	}

	d := prepare1D(dst, src, o.NbPoints)
	n := copy(d.Re, in.Re)
	copy(d.Im, in.Im)
	clear(d.Re[n:])
	clear(d.Im[n:])

	for i := range d.X {
		d.X[i] = x0 + float64(i)*dt
	}

	return nil
}
