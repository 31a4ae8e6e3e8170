package spectrum

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Dimension tags the shape of a spectrum.
type Dimension int

const (
	Dim1D Dimension = iota + 1
	Dim2D
)

// String returns "1D" or "2D".
func (d Dimension) String() string {
	switch d {
	case Dim1D:
		return "1D"
	case Dim2D:
		return "2D"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

var (
	// ErrEmptySnapshot is returned when a snapshot carries no buffers.
	ErrEmptySnapshot = errors.New("spectrum: snapshot has no data")
	// ErrLengthMismatch is returned when parallel buffers differ in length.
	ErrLengthMismatch = errors.New("spectrum: buffer length mismatch")
)

// Info holds acquisition metadata that filters read or update.
type Info struct {
	Nucleus   []string
	Dimension Dimension
	// IsFid is true for time-domain data.
	IsFid bool
	// Frequency is the spectrometer frequency in MHz. Zero means unknown.
	Frequency float64
	// SpectralWidth is the acquisition bandwidth in Hz. Zero means it is
	// derived from the time axis spacing.
	SpectralWidth float64
	// Transformed records which dimensions of a 2D spectrum were Fourier
	// transformed (index 0 is the direct dimension).
	Transformed [2]bool
}

// NucleusKey returns the nucleus tab key, e.g. "1H" or "1H,13C".
func (i Info) NucleusKey() string {
	return strings.Join(i.Nucleus, ",")
}

// Clone returns a copy that does not share the nucleus slice.
func (i Info) Clone() Info {
	out := i
	out.Nucleus = append([]string(nil), i.Nucleus...)

	return out
}

// Snapshot is one complete state of a spectrum's buffers.
// Exactly one of D1 and D2 is set for a valid snapshot.
type Snapshot struct {
	Info Info
	D1   *Data1D
	D2   *Data2D
}

// New1D builds a 1D snapshot from copies of x, re and im.
// A nil im is replaced with zeros.
func New1D(info Info, x, re, im []float64) (Snapshot, error) {
	if im == nil {
		im = make([]float64, len(re))
	}

	if len(x) != len(re) || len(re) != len(im) {
		return Snapshot{}, fmt.Errorf("%w: x=%d re=%d im=%d", ErrLengthMismatch, len(x), len(re), len(im))
	}

	info.Dimension = Dim1D

	return Snapshot{
		Info: info.Clone(),
		D1: &Data1D{
			X:  append([]float64(nil), x...),
			Re: append([]float64(nil), re...),
			Im: append([]float64(nil), im...),
		},
	}, nil
}

// New2D builds a 2D snapshot from copies of re and im. A nil im is allowed.
func New2D(info Info, re Matrix, im *Matrix) (Snapshot, error) {
	if err := re.validate(); err != nil {
		return Snapshot{}, err
	}

	d := &Data2D{Re: re.Clone()}

	if im != nil {
		if err := im.validate(); err != nil {
			return Snapshot{}, err
		}

		if im.Rows() != re.Rows() || im.Cols() != re.Cols() {
			return Snapshot{}, fmt.Errorf("%w: re %dx%d, im %dx%d",
				ErrLengthMismatch, re.Rows(), re.Cols(), im.Rows(), im.Cols())
		}

		c := im.Clone()
		d.Im = &c
	}

	info.Dimension = Dim2D

	return Snapshot{Info: info.Clone(), D2: d}, nil
}

// Dimension returns the shape of the snapshot's buffers.
func (s Snapshot) Dimension() Dimension {
	switch {
	case s.D1 != nil:
		return Dim1D
	case s.D2 != nil:
		return Dim2D
	default:
		return 0
	}
}

// IsZero reports whether the snapshot carries no buffers.
func (s Snapshot) IsZero() bool {
	return s.D1 == nil && s.D2 == nil
}

// Len returns the number of points of a 1D snapshot or the number of
// matrix cells of a 2D snapshot.
func (s Snapshot) Len() int {
	switch {
	case s.D1 != nil:
		return len(s.D1.Re)
	case s.D2 != nil:
		return s.D2.Re.Rows() * s.D2.Re.Cols()
	default:
		return 0
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Info: s.Info.Clone()}

	if s.D1 != nil {
		d := s.D1.Clone()
		out.D1 = &d
	}

	if s.D2 != nil {
		d := s.D2.Clone()
		out.D2 = &d
	}

	return out
}

// CopyInto deep-copies s into dst, reusing dst's buffers where their
// capacity allows.
func (s Snapshot) CopyInto(dst *Snapshot) {
	dst.Info = s.Info.Clone()

	if s.D1 == nil {
		dst.D1 = nil
	} else {
		if dst.D1 == nil {
			dst.D1 = &Data1D{}
		}

		dst.D1.X = copyReuse(dst.D1.X, s.D1.X)
		dst.D1.Re = copyReuse(dst.D1.Re, s.D1.Re)
		dst.D1.Im = copyReuse(dst.D1.Im, s.D1.Im)
	}

	if s.D2 == nil {
		dst.D2 = nil
	} else {
		d := s.D2.Clone()
		dst.D2 = &d
	}
}

// Equal reports whether a and b hold bit-identical buffers and equal info.
func (s Snapshot) Equal(o Snapshot) bool {
	if !infoEqual(s.Info, o.Info) {
		return false
	}

	if (s.D1 == nil) != (o.D1 == nil) || (s.D2 == nil) != (o.D2 == nil) {
		return false
	}

	if s.D1 != nil && !s.D1.Equal(*o.D1) {
		return false
	}

	if s.D2 != nil && !s.D2.Equal(*o.D2) {
		return false
	}

	return true
}

// Validate checks the internal consistency of the buffers.
func (s Snapshot) Validate() error {
	switch {
	case s.D1 != nil:
		d := s.D1
		if len(d.X) != len(d.Re) || len(d.Re) != len(d.Im) {
			return fmt.Errorf("%w: x=%d re=%d im=%d", ErrLengthMismatch, len(d.X), len(d.Re), len(d.Im))
		}

		return nil
	case s.D2 != nil:
		if err := s.D2.Re.validate(); err != nil {
			return err
		}

		if s.D2.Im != nil {
			if s.D2.Im.Rows() != s.D2.Re.Rows() || s.D2.Im.Cols() != s.D2.Re.Cols() {
				return fmt.Errorf("%w: imaginary matrix shape", ErrLengthMismatch)
			}
		}

		return nil
	default:
		return ErrEmptySnapshot
	}
}

func infoEqual(a, b Info) bool {
	if len(a.Nucleus) != len(b.Nucleus) {
		return false
	}

	for i := range a.Nucleus {
		if a.Nucleus[i] != b.Nucleus[i] {
			return false
		}
	}

	return a.Dimension == b.Dimension &&
		a.IsFid == b.IsFid &&
		sameFloat(a.Frequency, b.Frequency) &&
		sameFloat(a.SpectralWidth, b.SpectralWidth) &&
		a.Transformed == b.Transformed
}

func sameFloat(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

func sameSlice(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !sameFloat(a[i], b[i]) {
			return false
		}
	}

	return true
}

func copyReuse(dst, src []float64) []float64 {
	if cap(dst) >= len(src) {
		dst = dst[:len(src)]
	} else {
		dst = make([]float64, len(src))
	}

	copy(dst, src)

	return dst
}
