package chain

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// ErrFilterNotFound is returned when a record id is not part of the chain.
var ErrFilterNotFound = errors.New("chain: filter not found")

// Chain applies filter records to spectra using the kernels of a registry.
// It holds no per-spectrum state.
type Chain struct {
	registry *filter.Registry
	logger   *slog.Logger
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger used for replay and commit diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Chain over registry. A nil registry uses
// [filter.DefaultRegistry].
func New(registry *filter.Registry, opts ...Option) *Chain {
	if registry == nil {
		registry = filter.DefaultRegistry()
	}

	c := &Chain{registry: registry, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Registry returns the catalog the chain dispatches to.
func (c *Chain) Registry() *filter.Registry {
	return c.registry
}

// NewRecord builds an enabled record with a fresh id.
func (c *Chain) NewRecord(name filter.Name, value filter.Options) (Record, error) {
	def, err := c.registry.Lookup(name)
	if err != nil {
		return Record{}, err
	}

	if value == nil || value.FilterName() != name {
		return Record{}, fmt.Errorf("%w: %s got options %T", filter.ErrInvalidOptions, name, value)
	}

	if err := value.Validate(); err != nil {
		return Record{}, err
	}

	return Record{
		ID:      uuid.NewString(),
		Name:    name,
		Value:   value,
		Enabled: true,
		Rules:   def.Rules,
	}, nil
}

// Apply adds records to the chain of s.
//
// With at < 0 the records are appended and each kernel runs once against the
// current data. With at >= 0 the first record replaces the record at that
// index when the names match (keeping its id) and is inserted before it
// otherwise; later records follow it. The chain is then replayed from the
// pristine data.
//
// Accumulating filters merge their value into the existing record of the
// same name: the one at the target index, or in append mode the first one
// in the chain.
func (c *Chain) Apply(s *Spectrum, records []Record, at int) error {
	if len(records) == 0 {
		return nil
	}

	defs := make([]filter.Definition, len(records))

	for i, r := range records {
		def, err := c.registry.Lookup(r.Name)
		if err != nil {
			return err
		}

		if err := def.Check(s.Data, r.Value); err != nil {
			return err
		}

		defs[i] = def
	}

	if at > len(s.Filters) {
		at = len(s.Filters)
	}

	filters := s.cloneFilters()
	incremental := at < 0
	data := s.Data

	for i, r := range records {
		def := defs[i]

		if def.Accumulates() {
			slot := -1

			switch {
			case at >= 0 && at < len(filters) && filters[at].Name == r.Name:
				slot = at
			case at < 0:
				slot = indexOfName(filters, r.Name)
			}

			if slot >= 0 {
				merged, err := def.Merge(filters[slot].Value, r.Value)
				if err != nil {
					return err
				}

				filters[slot].Value = merged
				incremental = false

				continue
			}
		}

		switch {
		case at < 0:
			filters = append(filters, r)

			if incremental && r.Enabled {
				var next spectrum.Snapshot
				if err := def.Apply(&next, data, r.Value); err != nil {
					return err
				}

				data = next
			}
		case at < len(filters) && filters[at].Name == r.Name:
			r.ID = filters[at].ID
			filters[at] = r
			at++
		default:
			filters = append(filters[:at], append([]Record{r}, filters[at:]...)...)
			at++
		}
	}

	if !incremental {
		var err error

		data, err = c.run(s, filters)
		if err != nil {
			return err
		}
	}

	s.Data = data
	s.Filters = filters

	c.logger.Debug("filters applied",
		slog.String("spectrum", s.ID),
		slog.Int("records", len(records)),
		slog.Int("chain", len(filters)),
		slog.Bool("replayed", !incremental))

	return nil
}

// Compute replays the enabled records from the pristine data of s and
// returns the result without touching s.
func (c *Chain) Compute(s *Spectrum, records []Record) (spectrum.Snapshot, error) {
	return c.run(s, records)
}

// Reapply resets the data of s to its pristine snapshot and runs every
// enabled record of records in order. A nil records replays the full chain.
// The chain itself is not modified.
func (c *Chain) Reapply(s *Spectrum, records []Record) error {
	if records == nil {
		records = s.Filters
	}

	data, err := c.run(s, records)
	if err != nil {
		return err
	}

	s.Data = data

	c.logger.Debug("filters replayed",
		slog.String("spectrum", s.ID),
		slog.Int("records", len(records)))

	return nil
}

// Replay rebuilds the data of s from its full chain.
func (c *Chain) Replay(s *Spectrum) error {
	return c.Reapply(s, nil)
}

// Enable sets the enabled flag of a record. The caller replays.
func (c *Chain) Enable(s *Spectrum, id string, enabled bool) error {
	_, i := s.Find(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFilterNotFound, id)
	}

	s.Filters[i].Enabled = enabled

	return nil
}

// Delete removes a record. The caller replays.
func (c *Chain) Delete(s *Spectrum, id string) error {
	_, i := s.Find(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFilterNotFound, id)
	}

	s.Filters = append(s.Filters[:i:i], s.Filters[i+1:]...)

	return nil
}

// DeleteName removes every record with the given name and reports how many
// were removed. The caller replays.
func (c *Chain) DeleteName(s *Spectrum, name filter.Name) int {
	kept := s.Filters[:0:0]

	for _, r := range s.Filters {
		if r.Name != name {
			kept = append(kept, r)
		}
	}

	n := len(s.Filters) - len(kept)
	s.Filters = kept

	return n
}

// SetValue replaces the options of a record. The caller replays.
func (c *Chain) SetValue(s *Spectrum, id string, value filter.Options) error {
	r, i := s.Find(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFilterNotFound, id)
	}

	if value == nil || value.FilterName() != r.Name {
		return fmt.Errorf("%w: %s got options %T", filter.ErrInvalidOptions, r.Name, value)
	}

	if err := value.Validate(); err != nil {
		return err
	}

	s.Filters[i].Value = value

	return nil
}

// ActiveIndex returns the index of the record with the given id, or -1 when
// id is empty or not in the chain.
func (c *Chain) ActiveIndex(s *Spectrum, id string) int {
	_, i := s.Find(id)

	return i
}

// run replays records from the pristine data, alternating between two
// scratch snapshots so that kernels can reuse buffers.
func (c *Chain) run(s *Spectrum, records []Record) (spectrum.Snapshot, error) {
	defs := make([]filter.Definition, len(records))

	for i, r := range records {
		def, err := c.registry.Lookup(r.Name)
		if err != nil {
			return spectrum.Snapshot{}, err
		}

		defs[i] = def
	}

	var bufs [2]spectrum.Snapshot

	cur := s.pristine
	n := 0

	for i, r := range records {
		if !r.Enabled {
			continue
		}

		dst := &bufs[n%2]
		if err := defs[i].Apply(dst, cur, r.Value); err != nil {
			return spectrum.Snapshot{}, fmt.Errorf("chain: replay %s at %d: %w", r.Name, i, err)
		}

		cur = *dst
		n++
	}

	if n == 0 {
		return s.pristine.Clone(), nil
	}

	return cur, nil
}
