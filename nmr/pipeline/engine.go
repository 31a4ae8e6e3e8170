package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-nmr/nmr/chain"
	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/phase2d"
	"github.com/cwbudde/algo-nmr/nmr/view"
)

var (
	// ErrNoActiveSpectrum reports a command issued with nothing selected.
	// Engine commands treat it as a no-op and return nil.
	ErrNoActiveSpectrum = errors.New("pipeline: no active spectrum")
	// ErrUnknownSpectrum is returned when an id does not name a loaded
	// spectrum.
	ErrUnknownSpectrum = errors.New("pipeline: unknown spectrum")
	// ErrUnknownCommand is returned by Dispatch for foreign command types.
	ErrUnknownCommand = errors.New("pipeline: unknown command")
)

// Tool names the interaction mode selected in the workbench.
type Tool string

// ToolZoom is the default tool.
const ToolZoom Tool = "zoom"

// ToolState is the selected tool and its option panel.
type ToolState struct {
	Selected Tool
	// Panel is the filter whose option panel is open, if any.
	Panel filter.Name
	// Options are the options shown in the panel.
	Options filter.Options
}

// Pivot is the 1D phase correction reference point.
type Pivot struct {
	Value float64
	Index int
}

// Engine orchestrates filter chains over the loaded spectra.
type Engine struct {
	chain   *chain.Chain
	spectra []*chain.Spectrum

	activeID  string
	activeTab string

	state   State
	session *Session
	tool    ToolState
	pivot   Pivot
	traces  *phase2d.Cache

	recalc  view.Recalculator
	display view.Display
	zoom    *view.ZoomHistory
	xZoom   *view.Domain

	logger  *slog.Logger
	metrics *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithRecalculator sets the axis bound collaborator.
func WithRecalculator(r view.Recalculator) Option {
	return func(e *Engine) { e.recalc = r }
}

// WithDisplay sets the display policy collaborator.
func WithDisplay(d view.Display) Option {
	return func(e *Engine) { e.display = d }
}

// WithZoomHistory sets the zoom history shared with the viewer.
func WithZoomHistory(z *view.ZoomHistory) Option {
	return func(e *Engine) { e.zoom = z }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics enables prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New creates an engine on top of c. A nil chain uses the default registry.
func New(c *chain.Chain, opts ...Option) *Engine {
	if c == nil {
		c = chain.New(nil)
	}

	e := &Engine{
		chain:   c,
		tool:    ToolState{Selected: ToolZoom},
		traces:  phase2d.New(),
		recalc:  view.NewBounds(),
		display: view.NewDisplayState(),
		zoom:    view.NewZoomHistory(),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Load adds spectra. The first loaded spectrum selects the nucleus tab.
func (e *Engine) Load(spectra ...*chain.Spectrum) {
	e.spectra = append(e.spectra, spectra...)

	if e.activeTab == "" && len(e.spectra) > 0 {
		e.activeTab = e.spectra[0].Info().NucleusKey()
	}

	e.recalc.Recompute(e.tabSpectra(), filter.All)
}

// Spectra returns the loaded spectra.
func (e *Engine) Spectra() []*chain.Spectrum {
	return append([]*chain.Spectrum(nil), e.spectra...)
}

// Spectrum returns the loaded spectrum with the given id.
func (e *Engine) Spectrum(id string) (*chain.Spectrum, bool) {
	for _, s := range e.spectra {
		if s.ID == id {
			return s, true
		}
	}

	return nil, false
}

// SetActive selects a spectrum and its nucleus tab. An empty id clears the
// selection. Any open session is discarded.
func (e *Engine) SetActive(id string) error {
	if id == "" {
		e.Discard()
		e.activeID = ""

		return nil
	}

	s, ok := e.Spectrum(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSpectrum, id)
	}

	if id != e.activeID {
		e.Discard()
		e.traces.Clear()
	}

	e.activeID = id
	e.activeTab = s.Info().NucleusKey()

	return nil
}

// SetActiveTab selects a nucleus tab and clears the active spectrum.
func (e *Engine) SetActiveTab(tab string) {
	e.Discard()
	e.activeID = ""
	e.activeTab = tab
}

// Active returns the active spectrum, or nil.
func (e *Engine) Active() *chain.Spectrum {
	s, _ := e.Spectrum(e.activeID)

	return s
}

// ActiveTab returns the nucleus key of the active tab.
func (e *Engine) ActiveTab() string { return e.activeTab }

// State returns the editing state.
func (e *Engine) State() State { return e.state }

// Session returns the open session, or nil when Idle.
func (e *Engine) Session() *Session { return e.session }

// Tool returns the selected tool.
func (e *Engine) Tool() ToolState { return e.tool }

// Pivot returns the 1D phase correction pivot.
func (e *Engine) Pivot() Pivot { return e.pivot }

// Traces returns the 2D phase correction trace cache.
func (e *Engine) Traces() *phase2d.Cache { return e.traces }

// Zoom returns the restored horizontal zoom, if any.
func (e *Engine) Zoom() (view.Domain, bool) {
	if e.xZoom == nil {
		return view.Domain{}, false
	}

	return *e.xZoom, true
}

// ZoomHistory returns the zoom history.
func (e *Engine) ZoomHistory() *view.ZoomHistory { return e.zoom }

// tabSpectra returns the spectra of the active nucleus tab.
func (e *Engine) tabSpectra() []*chain.Spectrum {
	var out []*chain.Spectrum

	for _, s := range e.spectra {
		if s.Info().NucleusKey() == e.activeTab {
			out = append(out, s)
		}
	}

	return out
}

func (e *Engine) active() (*chain.Spectrum, error) {
	s := e.Active()
	if s == nil {
		return nil, ErrNoActiveSpectrum
	}

	return s, nil
}

// silent maps ErrNoActiveSpectrum to nil.
func silent(err error) error {
	if errors.Is(err, ErrNoActiveSpectrum) {
		return nil
	}

	return err
}

func (e *Engine) resetTool() {
	e.tool = ToolState{Selected: ToolZoom}
}

func (e *Engine) selectTool(name filter.Name, opts filter.Options) {
	e.tool = ToolState{Selected: Tool(name), Panel: name, Options: opts}
}

// settle refreshes derived display state after the chain of s changed.
func (e *Engine) settle(s *chain.Spectrum, rules filter.DomainRules, wasFid bool) {
	tab := e.tabSpectra()

	e.recalc.Recompute(tab, rules)

	if s.Info().IsFid != wasFid {
		e.display.SetMode(view.ModeFor(s))
		e.display.AutoVerticalAlign(tab)
	}
}

func (e *Engine) rejected(command string, err error) error {
	e.metrics.reject(command)
	e.logger.Warn("pipeline command rejected",
		slog.String("command", command),
		slog.String("spectrum", e.activeID),
		slog.Any("error", err))

	return err
}
