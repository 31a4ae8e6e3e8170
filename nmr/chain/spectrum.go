package chain

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

// Record is one entry of a filter chain.
type Record struct {
	ID      string
	Name    filter.Name
	Value   filter.Options
	Enabled bool
	// Rules are the domain rules of the filter at the time it was recorded.
	Rules filter.DomainRules
}

// Spectrum is a loaded spectrum together with its filter chain.
type Spectrum struct {
	ID      string
	Data    spectrum.Snapshot
	Filters []Record

	pristine spectrum.Snapshot
}

// NewSpectrum validates data and captures it as the pristine snapshot.
// An empty id is replaced by a random one.
func NewSpectrum(id string, data spectrum.Snapshot) (*Spectrum, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("chain: new spectrum: %w", err)
	}

	if id == "" {
		id = uuid.NewString()
	}

	return &Spectrum{
		ID:       id,
		Data:     data.Clone(),
		pristine: data.Clone(),
	}, nil
}

// Pristine returns a copy of the as-loaded data.
func (s *Spectrum) Pristine() spectrum.Snapshot {
	return s.pristine.Clone()
}

// Info returns the info of the current data.
func (s *Spectrum) Info() spectrum.Info {
	return s.Data.Info
}

// Dimension returns the shape of the pristine data.
func (s *Spectrum) Dimension() spectrum.Dimension {
	return s.pristine.Dimension()
}

// Find returns the record with the given id and its index, or -1.
func (s *Spectrum) Find(id string) (Record, int) {
	if id == "" {
		return Record{}, -1
	}

	for i, r := range s.Filters {
		if r.ID == id {
			return r, i
		}
	}

	return Record{}, -1
}

// FindName returns the first record with the given name and its index, or -1.
func (s *Spectrum) FindName(name filter.Name) (Record, int) {
	i := indexOfName(s.Filters, name)
	if i < 0 {
		return Record{}, -1
	}

	return s.Filters[i], i
}

func indexOfName(filters []Record, name filter.Name) int {
	for i, r := range filters {
		if r.Name == name {
			return i
		}
	}

	return -1
}

func (s *Spectrum) cloneFilters() []Record {
	return append([]Record(nil), s.Filters...)
}
