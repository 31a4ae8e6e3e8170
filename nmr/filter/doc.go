// Package filter is the catalog of spectrum processing filters.
//
// Every filter is identified by a [Name] and described by a [Definition]:
// a kernel that turns one [spectrum.Snapshot] into another, the
// [DomainRules] that tell a viewer which axis bounds become stale when the
// filter is committed, and the dimensionality the kernel accepts. Options
// are a closed set of typed variants, one struct per filter.
//
// The package also ships the built-in kernels (Fourier transform, zero
// filling, apodization, phase and baseline correction, axis shifts,
// exclusion zones and signal-matrix processing). [DefaultRegistry] wires
// them all.
package filter
