package filter

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

var (
	// ErrUnknownFilter is returned by catalog lookups for a name that was
	// never registered.
	ErrUnknownFilter = errors.New("filter: unknown filter")
	// ErrDimensionMismatch is returned when a filter does not support the
	// dimensionality of the spectrum it is applied to.
	ErrDimensionMismatch = errors.New("filter: dimension mismatch")
	// ErrInvalidZoneRange is returned for malformed zone bounds.
	ErrInvalidZoneRange = errors.New("filter: invalid zone range")
	// ErrNotApplicable is returned when the data is in the wrong domain for
	// a filter, e.g. a Fourier transform of frequency-domain data.
	ErrNotApplicable = errors.New("filter: not applicable")
	// ErrInvalidOptions is returned for the wrong options variant or for
	// out-of-range option values.
	ErrInvalidOptions = errors.New("filter: invalid options")

	errDuplicateFilter = errors.New("filter: duplicate filter")
)

// Kernel transforms src into dst. It never mutates src and may reuse the
// buffers already held by dst. dst must not alias src.
type Kernel func(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error

// Definition is one catalog entry.
type Definition struct {
	Name   Name
	Kernel Kernel
	// Rules declares which axis bounds a committed application invalidates.
	Rules DomainRules
	// Dimensions lists the supported shapes.
	Dimensions []spectrum.Dimension
	// Merge, when set, marks an accumulating filter: a new value is folded
	// into an existing record of the same name instead of creating a record.
	Merge func(existing, incoming Options) (Options, error)
	// RollbackApplies reports whether a rolled back view shows the data with
	// this filter applied, rather than as it was just before it.
	RollbackApplies bool
	// Defaults returns the staged options restored when a preview is
	// cancelled.
	Defaults func() Options
}

// Accumulates reports whether new values merge into an existing record.
func (d Definition) Accumulates() bool {
	return d.Merge != nil
}

// Supports reports whether the definition accepts data of dimension dim.
func (d Definition) Supports(dim spectrum.Dimension) bool {
	for _, s := range d.Dimensions {
		if s == dim {
			return true
		}
	}

	return false
}

// Check validates src and opts against the definition without running the
// kernel.
func (d Definition) Check(src spectrum.Snapshot, opts Options) error {
	if !d.Supports(src.Dimension()) {
		return fmt.Errorf("%w: %s does not support %s data", ErrDimensionMismatch, d.Name, src.Dimension())
	}

	if opts == nil || opts.FilterName() != d.Name {
		return fmt.Errorf("%w: %s got options %T", ErrInvalidOptions, d.Name, opts)
	}

	return opts.Validate()
}

// Apply validates its arguments and runs the kernel from src into dst.
// On error dst is left in an unspecified state.
func (d Definition) Apply(dst *spectrum.Snapshot, src spectrum.Snapshot, opts Options) error {
	if err := d.Check(src, opts); err != nil {
		return err
	}

	if err := d.Kernel(dst, src, opts); err != nil {
		return fmt.Errorf("filter: %s: %w", d.Name, err)
	}

	return nil
}

// Registry maps filter names to their definitions. It is read-only once
// handed to a chain.
type Registry struct {
	defs map[Name]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[Name]Definition)}
}

// Register adds a definition.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return errors.New("filter: empty filter name")
	}

	if def.Kernel == nil {
		return fmt.Errorf("filter: %s: nil kernel", def.Name)
	}

	if len(def.Dimensions) == 0 {
		return fmt.Errorf("filter: %s: no supported dimensions", def.Name)
	}

	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateFilter, def.Name)
	}

	r.defs[def.Name] = def

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def Definition) {
	err := r.Register(def)
	if err != nil {
		panic("filter registry: " + err.Error())
	}
}

// Lookup returns the definition registered for name.
func (r *Registry) Lookup(name Name) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}

	return def, nil
}

// Rules returns the domain rules of name, or the zero value if unknown.
func (r *Registry) Rules(name Name) DomainRules {
	return r.defs[name].Rules
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []Name {
	out := make([]Name, 0, len(r.defs))
	for n := range r.defs {
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}
