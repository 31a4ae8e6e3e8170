package pipeline

import (
	"log/slog"

	"github.com/cwbudde/algo-nmr/nmr/chain"
	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// Rollback opens a session on the filter with the given id. The displayed
// data becomes the chain replayed up to that filter (including it for
// filters that show their effect while edited) and the preview base is the
// data just before it. An unknown id opens an append-mode session on the
// current data. An already open session is discarded first.
func (e *Engine) Rollback(filterID string) error {
	s, err := e.active()
	if err != nil {
		return silent(err)
	}

	e.Discard()

	return e.rollback(s, s.Filters, filterID)
}

// RollbackByName rolls back to the first filter with the given name.
func (e *Engine) RollbackByName(name filter.Name) error {
	s, err := e.active()
	if err != nil {
		return silent(err)
	}

	e.Discard()

	rec, _ := s.FindName(name)

	return e.rollback(s, s.Filters, rec.ID)
}

func (e *Engine) rollback(s *chain.Spectrum, filters []chain.Record, filterID string) error {
	sess := &Session{spectrumID: s.ID, origin: s.Data, temp: s.Data}

	rec, idx := s.Find(filterID)
	if idx < 0 {
		e.session, e.state = sess, RolledBack
		return nil
	}

	def, err := e.chain.Registry().Lookup(rec.Name)
	if err != nil {
		return e.rejected("rollback", err)
	}

	var rules filter.DomainRules
	for _, r := range filters[:idx+1] {
		rules = rules.Or(r.Rules)
	}

	before, err := e.chain.Compute(s, filters[:idx])
	if err != nil {
		return e.rejected("rollback", err)
	}

	shown := before
	if def.RollbackApplies {
		shown, err = e.chain.Compute(s, filters[:idx+1])
		if err != nil {
			return e.rejected("rollback", err)
		}
	}

	e.metrics.replay()

	sess.temp = before
	sess.activeFilterID = rec.ID
	sess.rules = rules
	sess.staged = rec.Value

	wasFid := s.Info().IsFid
	s.Data = shown

	e.session, e.state = sess, RolledBack
	e.selectTool(rec.Name, rec.Value)

	if rec.Name == filter.PhaseCorrection && shown.D1 != nil {
		// Pivot on the strongest peak.
		i := spectrum.MaxIndex(shown.D1.Re)
		if i >= 0 {
			e.pivot = Pivot{Value: shown.D1.X[i], Index: i}
		}
	}

	e.settle(s, rules, wasFid)

	e.logger.Debug("rolled back",
		slog.String("spectrum", s.ID),
		slog.String("filter", string(rec.Name)),
		slog.Int("index", idx))

	return nil
}

// SetFilterSnapshot selects a filter of the active chain for editing.
// Selecting the filter that is already being edited resets the chain
// instead. An empty id selects the first filter named name.
func (e *Engine) SetFilterSnapshot(name filter.Name, id string) error {
	if e.session != nil && id != "" && e.session.activeFilterID == id {
		return e.Reset()
	}

	if id == "" {
		return e.RollbackByName(name)
	}

	return e.Rollback(id)
}

// sessionFor returns the session of s, opening an append-mode session when
// none is open.
func (e *Engine) sessionFor(s *chain.Spectrum) *Session {
	if e.session != nil && e.session.spectrumID == s.ID {
		return e.session
	}

	e.Discard()
	e.session = &Session{spectrumID: s.ID, origin: s.Data, temp: s.Data}
	e.state = RolledBack

	return e.session
}

// Preview runs a filter on the preview base and displays the result. The
// chain and the preview base are left untouched.
func (e *Engine) Preview(name filter.Name, opts filter.Options) error {
	s, err := e.active()
	if err != nil {
		return silent(err)
	}

	def, err := e.chain.Registry().Lookup(name)
	if err != nil {
		return e.rejected("preview", err)
	}

	sess := e.sessionFor(s)

	timer := e.metrics.preview(string(name))
	err = def.Apply(&sess.scratch, sess.temp, opts)
	timer.ObserveDuration()

	if err != nil {
		s.Data = sess.temp.Clone()
		sess.scratch = spectrum.Snapshot{}
		e.state = RolledBack

		return e.rejected("preview", err)
	}

	s.Data = sess.scratch
	sess.staged = opts
	sess.previews++
	e.state = Previewing
	e.selectTool(name, opts)

	return nil
}

// CancelPreview restores the displayed data from the preview base and
// resets the staged options of the selected tool to their defaults.
func (e *Engine) CancelPreview() error {
	s, err := e.active()
	if err != nil {
		return silent(err)
	}

	sess := e.session
	if sess == nil || sess.spectrumID != s.ID {
		return nil
	}

	s.Data = sess.temp.Clone()
	e.state = RolledBack

	if def, err := e.chain.Registry().Lookup(filter.Name(e.tool.Selected)); err == nil && def.Defaults != nil {
		sess.staged = def.Defaults()
		e.tool.Options = sess.staged
	}

	e.recalc.Recompute(e.tabSpectra(), filter.All)

	return nil
}

// Calculate stages options for a filter. With live set the result is
// previewed; otherwise a running preview is withdrawn and the data shown
// is the preview base.
func (e *Engine) Calculate(name filter.Name, opts filter.Options, live bool) error {
	if live {
		return e.Preview(name, opts)
	}

	s, err := e.active()
	if err != nil {
		return silent(err)
	}

	sess := e.sessionFor(s)
	sess.staged = opts
	e.selectTool(name, opts)

	if e.state == Previewing {
		s.Data = sess.temp.Clone()
		e.state = RolledBack
	}

	return nil
}

// Apply commits a filter. Inside a session opened on a filter the record
// at that position is replaced (same name) or the new one is inserted
// before it, and the chain is replayed; otherwise the filter is appended.
// The session is closed and the domain recomputed with the rules of the
// filter and of the rolled back prefix.
func (e *Engine) Apply(name filter.Name, opts filter.Options) error {
	s, err := e.active()
	if err != nil {
		return silent(err)
	}

	rec, err := e.chain.NewRecord(name, opts)
	if err != nil {
		return e.rejected("apply", err)
	}

	prevState, shown := e.state, s.Data
	at, rules := -1, rec.Rules
	wasFid := s.Info().IsFid

	if sess := e.session; sess != nil && sess.spectrumID == s.ID {
		at = e.chain.ActiveIndex(s, sess.activeFilterID)
		rules = rules.Or(sess.rules)
		s.Data = sess.origin
	}

	e.state = Committing

	if err := e.chain.Apply(s, []chain.Record{rec}, at); err != nil {
		s.Data, e.state = shown, prevState
		return e.rejected("apply", err)
	}

	if at >= 0 {
		e.metrics.replay()
	}

	e.session, e.state = nil, Idle
	e.metrics.commit(string(name))
	e.resetTool()

	if isTransform(name) {
		e.zoom.Clear(e.activeTab)
	}

	e.settle(s, rules, wasFid)

	e.logger.Debug("filter committed",
		slog.String("spectrum", s.ID),
		slog.String("filter", string(name)),
		slog.Int("index", at))

	return nil
}

// Reset closes the session, replays the full chain and forces both axes
// to be recomputed.
func (e *Engine) Reset() error {
	s, err := e.active()
	if err != nil {
		return silent(err)
	}

	// The display follows the data currently shown, which is the rolled
	// back prefix while a session is open.
	wasFid := s.Info().IsFid

	e.session, e.state = nil, Idle

	if err := e.chain.Replay(s); err != nil {
		return e.rejected("reset", err)
	}

	e.metrics.replay()
	e.resetTool()
	e.pivot = Pivot{}
	e.settle(s, filter.All, wasFid)

	return nil
}

// Discard closes an open session without committing and restores the data
// shown when it opened. Bounds and display mode are refreshed for the
// restored data.
func (e *Engine) Discard() {
	sess := e.session
	if sess == nil {
		return
	}

	e.session, e.state = nil, Idle

	s, ok := e.Spectrum(sess.spectrumID)
	if !ok {
		return
	}

	wasFid := s.Info().IsFid
	s.Data = sess.origin
	e.settle(s, filter.All, wasFid)
}

func isTransform(name filter.Name) bool {
	return name == filter.FFT || name == filter.FFTDimension1 || name == filter.FFTDimension2
}
