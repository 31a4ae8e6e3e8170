package view

// Inverter maps a screen coordinate back to a value on a data axis.
type Inverter interface {
	Invert(px float64) float64
}

// InverterFunc adapts a function to [Inverter].
type InverterFunc func(px float64) float64

// Invert calls f.
func (f InverterFunc) Invert(px float64) float64 { return f(px) }

// Linear maps the value range [D0, D1] onto the pixel range [R0, R1].
// A reversed range (R0 > R1) draws the axis right to left.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear returns the scale for domain and pixel range.
func NewLinear(domain Domain, r0, r1 float64) Linear {
	return Linear{D0: domain.Min, D1: domain.Max, R0: r0, R1: r1}
}

// Scale maps a value to a pixel.
func (l Linear) Scale(v float64) float64 {
	if l.D1 == l.D0 {
		return l.R0
	}

	return l.R0 + (v-l.D0)/(l.D1-l.D0)*(l.R1-l.R0)
}

// Invert maps a pixel to a value.
func (l Linear) Invert(px float64) float64 {
	if l.R1 == l.R0 {
		return l.D0
	}

	return l.D0 + (px-l.R0)/(l.R1-l.R0)*(l.D1-l.D0)
}
