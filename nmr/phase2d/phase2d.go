// Package phase2d caches the 1D traces sampled from a 2D spectrum during
// manual two-axis phase correction.
//
// Each direction has its own [TraceSet] with its own pivot and working
// angles. Phasing the traces is a preview: the 2D data is only changed when
// the angles returned by [Cache.Options] are committed as a filter.
package phase2d

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
	"github.com/cwbudde/algo-nmr/nmr/view"
)

// Direction selects the trace set operations act on.
type Direction int

const (
	// Horizontal traces run along x and are sampled at a y position.
	Horizontal Direction = iota
	// Vertical traces run along y and are sampled at an x position.
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Trace is one sampled slice.
type Trace struct {
	ID string
	// X and Y are the spectral coordinates that were clicked.
	X, Y float64
	// Index is the sampled row or column.
	Index int
	// Source is the slice as sampled; Data is Source phased with the
	// working angles of its set.
	Source spectrum.Data1D
	Data   spectrum.Data1D
}

// Pivot is the phase correction reference point along a trace.
type Pivot struct {
	Value float64
	Index int
	// Size is the number of points along the pivot axis.
	Size int
}

// TraceSet holds the traces and working angles of one direction. Angles are
// in degrees.
type TraceSet struct {
	Traces []Trace
	Pivot  Pivot
	Ph0    float64
	Ph1    float64
}

// Angles returns the committed angles. The zero-order angle is shifted so
// that the first-order ramp is zero at the pivot.
func (s TraceSet) Angles() filter.PhaseAngles {
	ph0 := s.Ph0
	if s.Pivot.Size > 0 {
		ph0 -= s.Ph1 * float64(s.Pivot.Index) / float64(s.Pivot.Size)
	}

	return filter.PhaseAngles{Ph0: ph0, Ph1: s.Ph1}
}

func (s TraceSet) clone() TraceSet {
	out := s
	out.Traces = append([]Trace(nil), s.Traces...)

	return out
}

// Cache is the two-direction trace cache.
type Cache struct {
	direction Direction
	sets      [2]TraceSet
}

// New returns an empty cache in horizontal mode.
func New() *Cache {
	return &Cache{}
}

// Direction returns the active direction.
func (c *Cache) Direction() Direction {
	return c.direction
}

// SetDirection switches the active direction. The traces of the other
// direction are kept.
func (c *Cache) SetDirection(d Direction) {
	c.direction = d
}

// Active returns a copy of the active trace set.
func (c *Cache) Active() TraceSet {
	return c.Set(c.direction)
}

// Set returns a copy of the trace set of direction d.
func (c *Cache) Set(d Direction) TraceSet {
	return c.sets[d].clone()
}

func require2D(snap spectrum.Snapshot) error {
	if snap.D2 == nil {
		return fmt.Errorf("phase2d: %w: traces need 2D data", filter.ErrDimensionMismatch)
	}

	return nil
}

// AddTrace inverts the screen position with the axis scales, samples the
// slice through that point in the active direction and appends it to the
// active set.
func (c *Cache) AddTrace(snap spectrum.Snapshot, xScale, yScale view.Inverter, screenX, screenY float64) (Trace, error) {
	if err := require2D(snap); err != nil {
		return Trace{}, err
	}

	x, y := xScale.Invert(screenX), yScale.Invert(screenY)

	var slice spectrum.Slice
	if c.direction == Horizontal {
		slice = snap.D2.HorizontalSlice(y)
	} else {
		slice = snap.D2.VerticalSlice(x)
	}

	set := &c.sets[c.direction]
	tr := Trace{
		ID:     uuid.NewString(),
		X:      x,
		Y:      y,
		Index:  slice.Index,
		Source: slice.Data,
	}
	tr.Data = phased(tr.Source, set.Angles())

	set.Traces = append(set.Traces, tr)

	return tr, nil
}

// RemoveTrace deletes a trace by id and reports whether it existed.
func (c *Cache) RemoveTrace(d Direction, id string) bool {
	set := &c.sets[d]

	for i, tr := range set.Traces {
		if tr.ID == id {
			set.Traces = append(set.Traces[:i:i], set.Traces[i+1:]...)
			return true
		}
	}

	return false
}

// ApplyManualCorrection stores the working angles on the active set and
// re-phases every trace of the set from its source slice.
func (c *Cache) ApplyManualCorrection(ph0, ph1 float64) {
	set := &c.sets[c.direction]
	set.Ph0, set.Ph1 = ph0, ph1

	angles := set.Angles()
	for i := range set.Traces {
		set.Traces[i].Data = phased(set.Traces[i].Source, angles)
	}
}

// SetPivot inverts coord with the scale of the active direction's axis and
// stores the nearest sample of that axis as the pivot.
func (c *Cache) SetPivot(snap spectrum.Snapshot, scale view.Inverter, coord float64) (Pivot, error) {
	if err := require2D(snap); err != nil {
		return Pivot{}, err
	}

	axis := spectrum.AxisX
	if c.direction == Vertical {
		axis = spectrum.AxisY
	}

	values, _ := snap.D2.Projection(axis)
	idx := spectrum.ClosestIndex(values, scale.Invert(coord))

	p := Pivot{Value: values[idx], Index: idx, Size: len(values)}
	c.sets[c.direction].Pivot = p

	return p, nil
}

// Options returns the filter options for both directions.
func (c *Cache) Options() filter.TwoDimensionPhaseCorrectionOptions {
	return filter.TwoDimensionPhaseCorrectionOptions{
		Horizontal: c.sets[Horizontal].Angles(),
		Vertical:   c.sets[Vertical].Angles(),
	}
}

// Clear drops the traces and angles of both directions.
func (c *Cache) Clear() {
	c.sets = [2]TraceSet{}
}

func phased(src spectrum.Data1D, a filter.PhaseAngles) spectrum.Data1D {
	out := src.Clone()
	if a.Ph0 == 0 && a.Ph1 == 0 {
		return out
	}

	filter.Rotate(out.Re, out.Im, src.Re, src.Im, a.Ph0*math.Pi/180, a.Ph1*math.Pi/180)

	return out
}
