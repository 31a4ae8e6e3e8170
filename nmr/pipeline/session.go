package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// State is the editing state of an [Engine].
type State int

const (
	// Idle means the chain is fully committed and no session is open.
	Idle State = iota
	// RolledBack means a session is open on a chain prefix.
	RolledBack
	// Previewing means a live preview is displayed.
	Previewing
	// Committing is held while a commit replays the chain.
	Committing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RolledBack:
		return "rolled-back"
	case Previewing:
		return "previewing"
	case Committing:
		return "committing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is the editing context of one spectrum. It exists only while the
// engine is not Idle.
type Session struct {
	spectrumID string
	// origin is the data when the session opened, restored on discard.
	origin spectrum.Snapshot
	// temp is the preview base: the data just before the active filter, or
	// the current data in append mode. It is never written.
	temp           spectrum.Snapshot
	activeFilterID string
	rules          filter.DomainRules
	scratch        spectrum.Snapshot
	staged         filter.Options
	previews       int
}

// SpectrumID returns the spectrum being edited.
func (s *Session) SpectrumID() string { return s.spectrumID }

// ActiveFilterID returns the id of the filter being edited, or "" in
// append mode.
func (s *Session) ActiveFilterID() string { return s.activeFilterID }

// TempData returns a copy of the preview base.
func (s *Session) TempData() spectrum.Snapshot { return s.temp.Clone() }

// Rules returns the domain rules OR-reduced over the rolled back prefix.
func (s *Session) Rules() filter.DomainRules { return s.rules }

// Staged returns the options of the last preview or calculation, if any.
func (s *Session) Staged() filter.Options { return s.staged }

// Previews returns the number of previews computed in the session.
func (s *Session) Previews() int { return s.previews }
