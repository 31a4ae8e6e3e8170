package pipeline

import (
	"github.com/cwbudde/algo-nmr/nmr/chain"
	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
	"github.com/cwbudde/algo-nmr/nmr/view"
)

// backup is the committed state of one spectrum, restored when a command
// touching several spectra fails part way.
type backup struct {
	s       *chain.Spectrum
	data    spectrum.Snapshot
	filters []chain.Record
	wasFid  bool
}

func backupAll(spectra []*chain.Spectrum) []backup {
	out := make([]backup, len(spectra))
	for i, s := range spectra {
		out[i] = backup{
			s:       s,
			data:    s.Data,
			filters: append([]chain.Record(nil), s.Filters...),
			wasFid:  s.Info().IsFid,
		}
	}

	return out
}

func restoreAll(bs []backup) {
	for _, b := range bs {
		b.s.Data = b.data
		b.s.Filters = b.filters
	}
}

// settleAll refreshes derived display state after several chains changed.
func (e *Engine) settleAll(bs []backup, rules filter.DomainRules) {
	tab := e.tabSpectra()
	e.recalc.Recompute(tab, rules)

	for _, b := range bs {
		if b.s.Info().IsFid != b.wasFid {
			e.display.SetMode(view.ModeFor(b.s))
			e.display.AutoVerticalAlign(tab)

			return
		}
	}
}

// EnableFilter toggles a filter of the active chain and replays it. The
// last zoom of the tab is restored.
func (e *Engine) EnableFilter(id string, enabled bool) error {
	s, err := e.active()
	if err != nil {
		return silent(err)
	}

	e.Discard()

	bs := backupAll([]*chain.Spectrum{s})

	if err := e.chain.Enable(s, id, enabled); err != nil {
		return e.rejected("enable", err)
	}

	if err := e.chain.Replay(s); err != nil {
		restoreAll(bs)
		return e.rejected("enable", err)
	}

	e.metrics.replay()
	e.resetTool()

	if last, ok := e.zoom.Last(e.activeTab); ok {
		e.xZoom = &last
	}

	e.settleAll(bs, filter.All)

	return nil
}

// DeleteFilter removes a filter from the active chain and replays it.
func (e *Engine) DeleteFilter(id string) error {
	s, err := e.active()
	if err != nil {
		return silent(err)
	}

	e.Discard()

	bs := backupAll([]*chain.Spectrum{s})

	if err := e.chain.Delete(s, id); err != nil {
		return e.rejected("delete", err)
	}

	if err := e.chain.Replay(s); err != nil {
		restoreAll(bs)
		return e.rejected("delete", err)
	}

	e.metrics.replay()
	e.resetTool()
	e.settleAll(bs, filter.All)

	return nil
}

// DeleteSpectraFilter removes every filter named name from every spectrum
// of the active tab.
func (e *Engine) DeleteSpectraFilter(name filter.Name) error {
	e.Discard()

	tab := e.tabSpectra()
	bs := backupAll(tab)

	for _, s := range tab {
		if e.chain.DeleteName(s, name) == 0 {
			continue
		}

		if err := e.chain.Replay(s); err != nil {
			restoreAll(bs)
			return e.rejected("delete-spectra-filter", err)
		}

		e.metrics.replay()
	}

	e.resetTool()
	e.settleAll(bs, filter.All)

	return nil
}

// targets returns the active spectrum, or every 1D spectrum of the tab
// when none is active.
func (e *Engine) targets() []*chain.Spectrum {
	if s := e.Active(); s != nil {
		return []*chain.Spectrum{s}
	}

	var out []*chain.Spectrum

	for _, s := range e.tabSpectra() {
		if s.Dimension() == spectrum.Dim1D {
			out = append(out, s)
		}
	}

	return out
}

// AddExclusionZone adds the zone [from, to] to the active spectrum, or to
// every 1D spectrum of the tab when none is active. Zones accumulate in a
// single exclusionZones record per spectrum.
func (e *Engine) AddExclusionZone(from, to float64) (filter.Zone, error) {
	zone, err := filter.NewZone(from, to)
	if err != nil {
		return filter.Zone{}, e.rejected("add-exclusion-zone", err)
	}

	targets := e.targets()
	if len(targets) == 0 {
		return filter.Zone{}, nil
	}

	e.Discard()

	bs := backupAll(targets)
	opts := filter.ExclusionZonesOptions{Zones: []filter.Zone{zone}}

	for _, s := range targets {
		rec, err := e.chain.NewRecord(filter.ExclusionZones, opts)
		if err == nil {
			err = e.chain.Apply(s, []chain.Record{rec}, -1)
		}

		if err != nil {
			restoreAll(bs)
			return filter.Zone{}, e.rejected("add-exclusion-zone", err)
		}
	}

	e.metrics.commit(string(filter.ExclusionZones))
	e.settleAll(bs, e.chain.Registry().Rules(filter.ExclusionZones))

	return zone, nil
}

// DeleteExclusionZone removes a zone. With a spectrum id the zone is
// matched by id on that spectrum only; otherwise it is matched by range on
// every spectrum of the tab. A record left without zones is deleted.
func (e *Engine) DeleteExclusionZone(zone filter.Zone, spectrumID string) error {
	var (
		targets []*chain.Spectrum
		match   func(filter.Zone) bool
	)

	if spectrumID != "" {
		s, ok := e.Spectrum(spectrumID)
		if !ok {
			return e.rejected("delete-exclusion-zone", ErrUnknownSpectrum)
		}

		targets = []*chain.Spectrum{s}
		match = func(z filter.Zone) bool { return z.ID == zone.ID }
	} else {
		targets = e.tabSpectra()
		match = func(z filter.Zone) bool { return z.From == zone.From && z.To == zone.To }
	}

	e.Discard()

	bs := backupAll(targets)

	for _, s := range targets {
		if err := e.removeZones(s, match); err != nil {
			restoreAll(bs)
			return e.rejected("delete-exclusion-zone", err)
		}
	}

	e.settleAll(bs, filter.All)

	return nil
}

func (e *Engine) removeZones(s *chain.Spectrum, match func(filter.Zone) bool) error {
	rec, i := s.FindName(filter.ExclusionZones)
	if i < 0 {
		return nil
	}

	zones := rec.Value.(filter.ExclusionZonesOptions).Zones
	kept := make([]filter.Zone, 0, len(zones))

	for _, z := range zones {
		if !match(z) {
			kept = append(kept, z)
		}
	}

	if len(kept) == len(zones) {
		return nil
	}

	var err error
	if len(kept) == 0 {
		err = e.chain.Delete(s, rec.ID)
	} else {
		err = e.chain.SetValue(s, rec.ID, filter.ExclusionZonesOptions{Zones: kept})
	}

	if err != nil {
		return err
	}

	if err := e.chain.Replay(s); err != nil {
		return err
	}

	e.metrics.replay()

	return nil
}

// ApplySignalProcessing applies signal processing to every 1D spectrum of
// the active tab, replacing an earlier signal processing filter in place.
func (e *Engine) ApplySignalProcessing(opts filter.SignalProcessingOptions) error {
	var targets []*chain.Spectrum

	for _, s := range e.tabSpectra() {
		if s.Dimension() == spectrum.Dim1D {
			targets = append(targets, s)
		}
	}

	e.Discard()

	bs := backupAll(targets)

	for _, s := range targets {
		rec, err := e.chain.NewRecord(filter.SignalProcessing, opts)
		if err == nil {
			_, at := s.FindName(filter.SignalProcessing)
			err = e.chain.Apply(s, []chain.Record{rec}, at)
		}

		if err != nil {
			restoreAll(bs)
			return e.rejected("signal-processing", err)
		}
	}

	e.metrics.commit(string(filter.SignalProcessing))
	e.resetTool()
	e.settleAll(bs, e.chain.Registry().Rules(filter.SignalProcessing))

	return nil
}

// ShiftX commits an x shift of the active 1D spectrum.
func (e *Engine) ShiftX(shift float64) error {
	return e.Apply(filter.ShiftX, filter.ShiftXOptions{Shift: shift})
}

// Shift2DX commits an x shift of the active 2D spectrum.
func (e *Engine) Shift2DX(shift float64) error {
	return e.Apply(filter.Shift2DX, filter.Shift2DXOptions{Shift: shift})
}

// Shift2DY commits a y shift of the active 2D spectrum.
func (e *Engine) Shift2DY(shift float64) error {
	return e.Apply(filter.Shift2DY, filter.Shift2DYOptions{Shift: shift})
}

// ApplyZeroFilling commits zero filling of the active FID.
func (e *Engine) ApplyZeroFilling(opts filter.ZeroFillingOptions) error {
	return e.Apply(filter.ZeroFilling, opts)
}

// ApplyApodization commits a window function. Inside a rollback session
// it replaces the apodization the session was opened on.
func (e *Engine) ApplyApodization(opts filter.ApodizationOptions) error {
	return e.Apply(filter.Apodization, opts)
}

// ApplyFFT commits the 1D Fourier transform.
func (e *Engine) ApplyFFT() error {
	return e.Apply(filter.FFT, filter.FFTOptions{})
}

// ApplyFFTDimension1 transforms the direct dimension of a 2D FID.
func (e *Engine) ApplyFFTDimension1() error {
	return e.Apply(filter.FFTDimension1, filter.FFTDimension1Options{})
}

// ApplyFFTDimension2 transforms the indirect dimension.
func (e *Engine) ApplyFFTDimension2() error {
	return e.Apply(filter.FFTDimension2, filter.FFTDimension2Options{})
}

// ApplyManualPhaseCorrection commits zero- and first-order angles taken
// relative to the pivot.
func (e *Engine) ApplyManualPhaseCorrection(ph0, ph1 float64) error {
	return e.Apply(filter.PhaseCorrection, e.pivoted(ph0, ph1))
}

// ApplyAutoPhaseCorrection commits an automatically estimated phase.
func (e *Engine) ApplyAutoPhaseCorrection() error {
	return e.Apply(filter.PhaseCorrection, filter.PhaseCorrectionOptions{Auto: true})
}

// ApplyAbsolute replaces the spectrum with its magnitude.
func (e *Engine) ApplyAbsolute() error {
	return e.Apply(filter.PhaseCorrection, filter.PhaseCorrectionOptions{Absolute: true})
}

// ApplyBaselineCorrection commits a polynomial baseline fit.
func (e *Engine) ApplyBaselineCorrection(opts filter.BaselineCorrectionOptions) error {
	return e.Apply(filter.BaselineCorrection, opts)
}

// CalculateZeroFilling stages zero filling options, previewing them when
// live is set.
func (e *Engine) CalculateZeroFilling(opts filter.ZeroFillingOptions, live bool) error {
	return e.Calculate(filter.ZeroFilling, opts, live)
}

// CalculateApodization stages a window function.
func (e *Engine) CalculateApodization(opts filter.ApodizationOptions, live bool) error {
	return e.Calculate(filter.Apodization, opts, live)
}

// CalculateManualPhaseCorrection stages pivot-relative angles. Dragging
// the phase sliders calls it with live set.
func (e *Engine) CalculateManualPhaseCorrection(ph0, ph1 float64, live bool) error {
	return e.Calculate(filter.PhaseCorrection, e.pivoted(ph0, ph1), live)
}

// CalculateBaselineCorrection stages baseline options.
func (e *Engine) CalculateBaselineCorrection(opts filter.BaselineCorrectionOptions, live bool) error {
	return e.Calculate(filter.BaselineCorrection, opts, live)
}
