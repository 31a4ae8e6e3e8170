// Package pipeline drives filter chains from user commands.
//
// An [Engine] owns the loaded spectra and at most one editing [Session].
// Selecting a filter of the chain rolls the active spectrum back to the
// point just before that filter; live previews then run the kernel on the
// rolled back data into a scratch snapshot; committing writes the options
// into the chain and replays it from the pristine data. The engine then
// asks its [view.Recalculator] to refresh the axis bounds that the
// committed filters invalidate.
//
// Commands issued while no spectrum is active are silent no-ops.
package pipeline
