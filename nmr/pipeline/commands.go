package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/phase2d"
	"github.com/cwbudde/algo-nmr/nmr/view"
)

// Command is one workbench action. The set is closed; [Engine.Dispatch]
// routes each variant to the engine method of the same name.
type Command interface {
	command()
}

type (
	// ApplyCommand commits a filter, see [Engine.Apply].
	ApplyCommand struct {
		Name    filter.Name
		Options filter.Options
	}

	// CalculateCommand stages options for a filter. Live also previews.
	CalculateCommand struct {
		Name    filter.Name
		Options filter.Options
		Live    bool
	}

	// PreviewCommand computes a preview without staging.
	PreviewCommand struct {
		Name    filter.Name
		Options filter.Options
	}

	// CancelPreviewCommand drops the preview of the active spectrum.
	CancelPreviewCommand struct{}

	// RollbackCommand opens a session on FilterID. An unknown id opens an
	// append session on the committed data.
	RollbackCommand struct {
		FilterID string
	}

	// SetFilterSnapshotCommand selects filter ID for editing, or the first
	// filter named Name when ID is empty. Selecting the edited filter again
	// resets.
	SetFilterSnapshotCommand struct {
		Name filter.Name
		ID   string
	}

	// ResetCommand closes the session and replays the full chain.
	ResetCommand struct{}

	// EnableFilterCommand switches a filter on or off.
	EnableFilterCommand struct {
		ID      string
		Enabled bool
	}

	// DeleteFilterCommand removes one filter of the active spectrum.
	DeleteFilterCommand struct {
		ID string
	}

	// DeleteSpectraFilterCommand removes every filter named Name from the
	// spectra of the active tab.
	DeleteSpectraFilterCommand struct {
		Name filter.Name
	}

	// AddExclusionZoneCommand adds the zone [From, To].
	AddExclusionZoneCommand struct {
		From, To float64
	}

	// DeleteExclusionZoneCommand removes Zone. With an empty SpectrumID the
	// zone is matched by range across the tab.
	DeleteExclusionZoneCommand struct {
		Zone       filter.Zone
		SpectrumID string
	}

	// SignalProcessingCommand applies a processing recipe to the tab.
	SignalProcessingCommand struct {
		Options filter.SignalProcessingOptions
	}

	// ManualPhaseCorrectionCommand commits pivot-relative angles in degrees.
	ManualPhaseCorrectionCommand struct {
		Ph0, Ph1 float64
	}

	AutoPhaseCorrectionCommand struct{}
	AbsoluteCommand            struct{}

	// SetPivotCommand moves the 1D pivot to the point under ScreenX.
	SetPivotCommand struct {
		ScreenX float64
		Scale   view.Inverter
	}

	// AddTraceCommand picks a 2D trace at the screen point.
	AddTraceCommand struct {
		XScale, YScale   view.Inverter
		ScreenX, ScreenY float64
	}

	DeleteTraceCommand struct {
		ID string
	}

	ChangeDirectionCommand struct {
		Direction phase2d.Direction
	}

	// SetTwoDimensionPivotCommand sets the pivot of the current direction.
	SetTwoDimensionPivotCommand struct {
		Scale view.Inverter
		Coord float64
	}

	// TwoDimensionPhaseCommand previews angles on the traces of the
	// current direction.
	TwoDimensionPhaseCommand struct {
		Ph0, Ph1 float64
	}

	// ApplyTwoDimensionPhaseCommand commits the staged 2D angles.
	ApplyTwoDimensionPhaseCommand struct{}
)

func (ApplyCommand) command()                  {}
func (CalculateCommand) command()              {}
func (PreviewCommand) command()                {}
func (CancelPreviewCommand) command()          {}
func (RollbackCommand) command()               {}
func (SetFilterSnapshotCommand) command()      {}
func (ResetCommand) command()                  {}
func (EnableFilterCommand) command()           {}
func (DeleteFilterCommand) command()           {}
func (DeleteSpectraFilterCommand) command()    {}
func (AddExclusionZoneCommand) command()       {}
func (DeleteExclusionZoneCommand) command()    {}
func (SignalProcessingCommand) command()       {}
func (ManualPhaseCorrectionCommand) command()  {}
func (AutoPhaseCorrectionCommand) command()    {}
func (AbsoluteCommand) command()               {}
func (SetPivotCommand) command()               {}
func (AddTraceCommand) command()               {}
func (DeleteTraceCommand) command()            {}
func (ChangeDirectionCommand) command()        {}
func (SetTwoDimensionPivotCommand) command()   {}
func (TwoDimensionPhaseCommand) command()      {}
func (ApplyTwoDimensionPhaseCommand) command() {}

// Dispatch runs cmd against the engine.
//
//nolint:cyclop
func (e *Engine) Dispatch(cmd Command) error {
	switch c := cmd.(type) {
	case ApplyCommand:
		return e.Apply(c.Name, c.Options)
	case CalculateCommand:
		return e.Calculate(c.Name, c.Options, c.Live)
	case PreviewCommand:
		return e.Preview(c.Name, c.Options)
	case CancelPreviewCommand:
		return e.CancelPreview()
	case RollbackCommand:
		return e.Rollback(c.FilterID)
	case SetFilterSnapshotCommand:
		return e.SetFilterSnapshot(c.Name, c.ID)
	case ResetCommand:
		return e.Reset()
	case EnableFilterCommand:
		return e.EnableFilter(c.ID, c.Enabled)
	case DeleteFilterCommand:
		return e.DeleteFilter(c.ID)
	case DeleteSpectraFilterCommand:
		return e.DeleteSpectraFilter(c.Name)
	case AddExclusionZoneCommand:
		_, err := e.AddExclusionZone(c.From, c.To)
		return err
	case DeleteExclusionZoneCommand:
		return e.DeleteExclusionZone(c.Zone, c.SpectrumID)
	case SignalProcessingCommand:
		return e.ApplySignalProcessing(c.Options)
	case ManualPhaseCorrectionCommand:
		return e.ApplyManualPhaseCorrection(c.Ph0, c.Ph1)
	case AutoPhaseCorrectionCommand:
		return e.ApplyAutoPhaseCorrection()
	case AbsoluteCommand:
		return e.ApplyAbsolute()
	case SetPivotCommand:
		_, err := e.SetPivot(c.ScreenX, c.Scale)
		return err
	case AddTraceCommand:
		_, err := e.AddPhaseCorrectionTrace(c.XScale, c.YScale, c.ScreenX, c.ScreenY)
		return err
	case DeleteTraceCommand:
		e.DeletePhaseCorrectionTrace(c.ID)
		return nil
	case ChangeDirectionCommand:
		e.ChangePhaseCorrectionDirection(c.Direction)
		return nil
	case SetTwoDimensionPivotCommand:
		_, err := e.SetTwoDimensionPivot(c.Scale, c.Coord)
		return err
	case TwoDimensionPhaseCommand:
		e.CalculateTwoDimensionPhaseCorrection(c.Ph0, c.Ph1)
		return nil
	case ApplyTwoDimensionPhaseCommand:
		return e.ApplyTwoDimensionPhaseCorrection()
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}
