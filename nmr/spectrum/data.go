package spectrum

import (
	"errors"
	"fmt"
)

// Data1D holds parallel x, real and imaginary sample arrays.
type Data1D struct {
	X  []float64
	Re []float64
	Im []float64
}

// Clone returns a deep copy.
func (d Data1D) Clone() Data1D {
	return Data1D{
		X:  append([]float64(nil), d.X...),
		Re: append([]float64(nil), d.Re...),
		Im: append([]float64(nil), d.Im...),
	}
}

// Equal reports bit-identical buffers.
func (d Data1D) Equal(o Data1D) bool {
	return sameSlice(d.X, o.X) && sameSlice(d.Re, o.Re) && sameSlice(d.Im, o.Im)
}

// Matrix is a row-major 2D buffer. Rows run along y, columns along x, and
// both axes are spaced linearly between their min and max values.
type Matrix struct {
	Z    [][]float64
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

var errRaggedMatrix = errors.New("spectrum: ragged matrix")

// NewMatrix allocates a zero matrix with the given shape and axis bounds.
func NewMatrix(rows, cols int, minX, maxX, minY, maxY float64) Matrix {
	z := make([][]float64, rows)
	for i := range z {
		z[i] = make([]float64, cols)
	}

	return Matrix{Z: z, MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
}

// Rows returns the number of rows (y points).
func (m Matrix) Rows() int { return len(m.Z) }

// Cols returns the number of columns (x points).
func (m Matrix) Cols() int {
	if len(m.Z) == 0 {
		return 0
	}

	return len(m.Z[0])
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := m
	out.Z = make([][]float64, len(m.Z))

	for i, row := range m.Z {
		out.Z[i] = append([]float64(nil), row...)
	}

	return out
}

// Equal reports bit-identical contents and bounds.
func (m Matrix) Equal(o Matrix) bool {
	if len(m.Z) != len(o.Z) {
		return false
	}

	for i := range m.Z {
		if !sameSlice(m.Z[i], o.Z[i]) {
			return false
		}
	}

	return sameFloat(m.MinX, o.MinX) && sameFloat(m.MaxX, o.MaxX) &&
		sameFloat(m.MinY, o.MinY) && sameFloat(m.MaxY, o.MaxY)
}

// XAxis returns the x coordinate of every column.
func (m Matrix) XAxis() []float64 {
	return linspace(m.MinX, m.MaxX, m.Cols())
}

// YAxis returns the y coordinate of every row.
func (m Matrix) YAxis() []float64 {
	return linspace(m.MinY, m.MaxY, m.Rows())
}

// Column returns a copy of column j.
func (m Matrix) Column(j int) []float64 {
	out := make([]float64, m.Rows())
	for i, row := range m.Z {
		out[i] = row[j]
	}

	return out
}

// SetColumn overwrites column j with values.
func (m Matrix) SetColumn(j int, values []float64) {
	for i, row := range m.Z {
		row[j] = values[i]
	}
}

func (m Matrix) validate() error {
	if len(m.Z) == 0 {
		return ErrEmptySnapshot
	}

	cols := len(m.Z[0])
	for i, row := range m.Z {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d columns, want %d", errRaggedMatrix, i, len(row), cols)
		}
	}

	return nil
}

// Data2D holds the real matrix and, for complex data, the imaginary one.
type Data2D struct {
	Re Matrix
	Im *Matrix
}

// Clone returns a deep copy.
func (d Data2D) Clone() Data2D {
	out := Data2D{Re: d.Re.Clone()}
	if d.Im != nil {
		im := d.Im.Clone()
		out.Im = &im
	}

	return out
}

// Equal reports bit-identical contents.
func (d Data2D) Equal(o Data2D) bool {
	if !d.Re.Equal(o.Re) {
		return false
	}

	if (d.Im == nil) != (o.Im == nil) {
		return false
	}

	return d.Im == nil || d.Im.Equal(*o.Im)
}

// Axis selects one of the two axes of a 2D spectrum.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Projection returns the axis coordinates and the skyline (maximum) of the
// real matrix projected onto that axis.
func (d Data2D) Projection(axis Axis) (x, y []float64) {
	m := d.Re

	if axis == AxisX {
		x = m.XAxis()
		y = make([]float64, m.Cols())

		for j := range y {
			y[j] = maxOf(m.Column(j))
		}

		return x, y
	}

	x = m.YAxis()
	y = make([]float64, m.Rows())

	for i, row := range m.Z {
		y[i] = maxOf(row)
	}

	return x, y
}

// Slice is a 1D cut through a 2D spectrum.
type Slice struct {
	// Index is the row (horizontal) or column (vertical) that was sampled.
	Index int
	Data  Data1D
}

// HorizontalSlice samples the row closest to y. The slice runs along x.
func (d Data2D) HorizontalSlice(y float64) Slice {
	row := ClosestIndex(d.Re.YAxis(), y)

	s := Slice{Index: row, Data: Data1D{
		X:  d.Re.XAxis(),
		Re: append([]float64(nil), d.Re.Z[row]...),
	}}

	if d.Im != nil {
		s.Data.Im = append([]float64(nil), d.Im.Z[row]...)
	} else {
		s.Data.Im = make([]float64, len(s.Data.Re))
	}

	return s
}

// VerticalSlice samples the column closest to x. The slice runs along y.
func (d Data2D) VerticalSlice(x float64) Slice {
	col := ClosestIndex(d.Re.XAxis(), x)

	s := Slice{Index: col, Data: Data1D{
		X:  d.Re.YAxis(),
		Re: d.Re.Column(col),
	}}

	if d.Im != nil {
		s.Data.Im = d.Im.Column(col)
	} else {
		s.Data.Im = make([]float64, len(s.Data.Re))
	}

	return s
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}

	return out
}

func maxOf(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}

	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}

	return m
}
