package view

import (
	"math"

	"github.com/cwbudde/algo-nmr/nmr/chain"
	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// Domain is a closed value interval.
type Domain struct {
	Min float64
	Max float64
}

// Empty reports whether the domain was never extended.
func (d Domain) Empty() bool {
	return d.Min > d.Max
}

func emptyDomain() Domain {
	return Domain{Min: math.Inf(1), Max: math.Inf(-1)}
}

func (d Domain) extend(lo, hi float64) Domain {
	return Domain{Min: math.Min(d.Min, lo), Max: math.Max(d.Max, hi)}
}

// Recalculator recomputes cached axis bounds after a commit.
type Recalculator interface {
	Recompute(spectra []*chain.Spectrum, rules filter.DomainRules)
}

// Bounds is the default [Recalculator]. It keeps the union of the x ranges,
// the union of the y ranges and one y range per spectrum.
type Bounds struct {
	XDomain  Domain
	YDomain  Domain
	YDomains map[string]Domain
}

// NewBounds returns empty bounds.
func NewBounds() *Bounds {
	return &Bounds{XDomain: emptyDomain(), YDomain: emptyDomain(), YDomains: map[string]Domain{}}
}

// Recompute refreshes the axes selected by rules from the current data of
// spectra. Axes not selected keep their cached bounds.
func (b *Bounds) Recompute(spectra []*chain.Spectrum, rules filter.DomainRules) {
	if rules.UpdateX {
		x := emptyDomain()

		for _, s := range spectra {
			lo, hi := xRange(s.Data)
			x = x.extend(lo, hi)
		}

		b.XDomain = x
	}

	if rules.UpdateY {
		y := emptyDomain()
		per := make(map[string]Domain, len(spectra))

		for _, s := range spectra {
			lo, hi := yRange(s.Data)
			per[s.ID] = Domain{Min: lo, Max: hi}
			y = y.extend(lo, hi)
		}

		b.YDomain = y
		b.YDomains = per
	}
}

func xRange(s spectrum.Snapshot) (lo, hi float64) {
	switch {
	case s.D1 != nil:
		return spectrum.MinMax(s.D1.X)
	case s.D2 != nil:
		m := s.D2.Re
		return math.Min(m.MinX, m.MaxX), math.Max(m.MinX, m.MaxX)
	default:
		return 0, 0
	}
}

// yRange is the intensity range for 1D data and the indirect axis range
// for 2D data.
func yRange(s spectrum.Snapshot) (lo, hi float64) {
	switch {
	case s.D1 != nil:
		return spectrum.MinMax(s.D1.Re)
	case s.D2 != nil:
		m := s.D2.Re
		return math.Min(m.MinY, m.MaxY), math.Max(m.MinY, m.MaxY)
	default:
		return 0, 0
	}
}
