package filter

import "github.com/cwbudde/algo-nmr/nmr/spectrum"

func shiftX(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
	shift := opts.(ShiftXOptions).Shift
	in := src.D1

	d := prepare1D(dst, src, len(in.Re))
	copy(d.Re, in.Re)
	copy(d.Im, in.Im)

	for i, x := range in.X {
		d.X[i] = x + shift
	}

	return nil
}

// shift2D returns the kernel offsetting the bounds of one axis of a 2D
// spectrum.
func shift2D(axis spectrum.Axis) Kernel {
	return func(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
		var shift float64

		switch o := opts.(type) {
		case Shift2DXOptions:
			shift = o.Shift
		case Shift2DYOptions:
			shift = o.Shift
		}

		dst.Info = src.Info.Clone()
		dst.D1 = nil

		d := src.D2.Clone()
		move := func(m *spectrum.Matrix) {
			if axis == spectrum.AxisX {
				m.MinX += shift
				m.MaxX += shift
			} else {
				m.MinY += shift
				m.MaxY += shift
			}
		}

		move(&d.Re)
		if d.Im != nil {
			move(d.Im)
		}

		dst.D2 = &d

		return nil
	}
}
