// Package chain keeps the ordered, replayable list of filters applied to a
// spectrum.
//
// A [Spectrum] carries its pristine snapshot, captured once at load time,
// next to the current data and the filter records. Replay always starts
// from the pristine snapshot and runs the enabled records in order, so the
// current data can be rebuilt bit for bit from the records alone. Appending
// a filter runs its kernel once against the current data; every other
// mutation (insertion, edits, toggling, deletion) goes through a replay.
//
// Mutations are all-or-nothing: the new data and records are swapped into
// the spectrum only after every kernel succeeded.
package chain
