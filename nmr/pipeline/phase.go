package pipeline

import (
	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/phase2d"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
	"github.com/cwbudde/algo-nmr/nmr/view"
)

// pivoted converts angles relative to the pivot into the options of the
// phase correction kernel, whose first-order ramp starts at index 0.
func (e *Engine) pivoted(ph0, ph1 float64) filter.PhaseCorrectionOptions {
	if s := e.Active(); s != nil && s.Data.D1 != nil {
		if n := len(s.Data.D1.Re); n > 0 {
			ph0 -= ph1 * float64(e.pivot.Index) / float64(n)
		}
	}

	return filter.PhaseCorrectionOptions{Ph0: ph0, Ph1: ph1}
}

// SetPivot places the 1D phase correction pivot at the sample nearest to
// the inverted screen coordinate.
func (e *Engine) SetPivot(screenX float64, scale view.Inverter) (Pivot, error) {
	s, err := e.active()
	if err != nil {
		return Pivot{}, silent(err)
	}

	if s.Data.D1 == nil {
		return Pivot{}, e.rejected("set-pivot", filter.ErrDimensionMismatch)
	}

	x := s.Data.D1.X

	i := spectrum.ClosestIndex(x, scale.Invert(screenX))
	if i < 0 {
		return Pivot{}, nil
	}

	e.pivot = Pivot{Value: x[i], Index: i}

	return e.pivot, nil
}

// AddPhaseCorrectionTrace extracts a trace of the active 2D spectrum at the
// given screen point, in the active direction.
func (e *Engine) AddPhaseCorrectionTrace(xScale, yScale view.Inverter, screenX, screenY float64) (phase2d.Trace, error) {
	s, err := e.active()
	if err != nil {
		return phase2d.Trace{}, silent(err)
	}

	t, err := e.traces.AddTrace(s.Data, xScale, yScale, screenX, screenY)
	if err != nil {
		return phase2d.Trace{}, e.rejected("add-trace", err)
	}

	return t, nil
}

// DeletePhaseCorrectionTrace removes a trace of the active direction.
func (e *Engine) DeletePhaseCorrectionTrace(id string) bool {
	return e.traces.RemoveTrace(e.traces.Direction(), id)
}

// ChangePhaseCorrectionDirection switches the direction that receives new
// traces and angle edits.
func (e *Engine) ChangePhaseCorrectionDirection(d phase2d.Direction) {
	e.traces.SetDirection(d)
}

// SetTwoDimensionPivot places the pivot of the active direction.
func (e *Engine) SetTwoDimensionPivot(scale view.Inverter, coord float64) (phase2d.Pivot, error) {
	s, err := e.active()
	if err != nil {
		return phase2d.Pivot{}, silent(err)
	}

	p, err := e.traces.SetPivot(s.Data, scale, coord)
	if err != nil {
		return phase2d.Pivot{}, e.rejected("set-2d-pivot", err)
	}

	return p, nil
}

// CalculateTwoDimensionPhaseCorrection rephases the traces of the active
// direction. The spectrum itself is not touched until the correction is
// applied.
func (e *Engine) CalculateTwoDimensionPhaseCorrection(ph0, ph1 float64) {
	e.traces.ApplyManualCorrection(ph0, ph1)
}

// ApplyTwoDimensionPhaseCorrection commits the angles of both directions
// and clears the trace cache.
func (e *Engine) ApplyTwoDimensionPhaseCorrection() error {
	if e.Active() == nil {
		return nil
	}

	if err := e.Apply(filter.PhaseCorrectionTwoDimensions, e.traces.Options()); err != nil {
		return err
	}

	e.traces.Clear()

	return nil
}
