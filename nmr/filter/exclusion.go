package filter

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// exclusionMask writes 0 for samples inside any zone and 1 elsewhere.
func exclusionMask(dst, x []float64, zones []Zone) {
	for i, xi := range x {
		dst[i] = 1

		for _, z := range zones {
			if z.Contains(xi) {
				dst[i] = 0
				break
			}
		}
	}
}

func excludeZones(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
	zones := opts.(ExclusionZonesOptions).Zones
	in := src.D1
	n := len(in.Re)

	d := prepare1D(dst, src, n)
	copy(d.X, in.X)

	mask := make([]float64, n)
	exclusionMask(mask, in.X, zones)

	vecmath.MulBlock(d.Re, in.Re, mask)
	vecmath.MulBlock(d.Im, in.Im, mask)

	return nil
}
