package filter

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

func nextPow2(n int) int {
	if n <= 2 {
		return 2
	}

	return 1 << bits.Len(uint(n-1))
}

// forwardFFT runs forward transforms of one size through a single plan.
type forwardFFT struct {
	plan *algofft.Plan[complex128]
	buf  []complex128
	out  []complex128
}

func newForwardFFT(size int) (*forwardFFT, error) {
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fft plan of size %d: %w", size, err)
	}

	return &forwardFFT{
		plan: plan,
		buf:  make([]complex128, size),
		out:  make([]complex128, size),
	}, nil
}

// transform transforms re/im zero-padded to the plan size and returns the
// fft-shifted result, so that bin size/2 holds the zero frequency. The
// result is overwritten by the next call.
func (f *forwardFFT) transform(re, im []float64) ([]complex128, error) {
	clear(f.buf)

	for i := range re {
		f.buf[i] = complex(re[i], im[i])
	}

	if err := f.plan.Forward(f.buf, f.buf); err != nil {
		return nil, fmt.Errorf("forward fft: %w", err)
	}

	size := len(f.buf)
	half := size / 2
	copy(f.out, f.buf[half:])
	copy(f.out[size-half:], f.buf[:half])

	return f.out, nil
}

// frequencyAxis returns the shifted bin frequencies in Hz, converted to ppm
// when the spectrometer frequency is known.
func frequencyAxis(dst []float64, sw, mhz float64) {
	size := len(dst)
	for k := range dst {
		hz := float64(k-size/2) * sw / float64(size)
		if mhz > 0 {
			hz /= mhz
		}

		dst[k] = hz
	}
}

func fft1D(dst *spectrum.Snapshot, src spectrum.Snapshot, _ Options) error {
	if err := requireFid(src, true); err != nil {
		return err
	}

	in := src.D1
	if len(in.Re) == 0 {
		return spectrum.ErrEmptySnapshot
	}

	size := nextPow2(len(in.Re))

	fwd, err := newForwardFFT(size)
	if err != nil {
		return err
	}

	spec, err := fwd.transform(in.Re, in.Im)
	if err != nil {
		return err
	}

	sw := src.Info.SpectralWidth
	if sw <= 0 {
		sw = 1 / math.Abs(sampleStep(in.X))
	}

	d := prepare1D(dst, src, size)
	for k, c := range spec {
		d.Re[k] = real(c)
		d.Im[k] = imag(c)
	}

	frequencyAxis(d.X, sw, src.Info.Frequency)

	dst.Info.IsFid = false
	dst.Info.SpectralWidth = sw

	return nil
}

// fftDimension returns the kernel transforming rows (dim 0, direct
// dimension) or columns (dim 1, indirect dimension) of a 2D FID.
func fftDimension(dim int) Kernel {
	return func(dst *spectrum.Snapshot, src spectrum.Snapshot, _ Options) error {
		if src.Info.Transformed[dim] {
			return fmt.Errorf("%w: dimension %d already transformed", ErrNotApplicable, dim+1)
		}

		in := src.D2
		rows, cols := in.Re.Rows(), in.Re.Cols()

		var im spectrum.Matrix
		if in.Im != nil {
			im = *in.Im
		} else {
			im = spectrum.NewMatrix(rows, cols, 0, 0, 0, 0)
		}

		var out spectrum.Data2D

		if dim == 0 {
			size := nextPow2(cols)
			sw := 1 / math.Abs(axisStep(in.Re.MinX, in.Re.MaxX, cols))
			re := spectrum.NewMatrix(rows, size, 0, 0, in.Re.MinY, in.Re.MaxY)
			ri := spectrum.NewMatrix(rows, size, 0, 0, in.Re.MinY, in.Re.MaxY)

			fwd, err := newForwardFFT(size)
			if err != nil {
				return err
			}

			for i := range rows {
				spec, err := fwd.transform(in.Re.Z[i], im.Z[i])
				if err != nil {
					return err
				}

				for k, c := range spec {
					re.Z[i][k] = real(c)
					ri.Z[i][k] = imag(c)
				}
			}

			lo, hi := axisBounds(size, sw, src.Info.Frequency)
			re.MinX, re.MaxX, ri.MinX, ri.MaxX = lo, hi, lo, hi
			out = spectrum.Data2D{Re: re, Im: &ri}
		} else {
			size := nextPow2(rows)
			sw := 1 / math.Abs(axisStep(in.Re.MinY, in.Re.MaxY, rows))
			re := spectrum.NewMatrix(size, cols, in.Re.MinX, in.Re.MaxX, 0, 0)
			ri := spectrum.NewMatrix(size, cols, in.Re.MinX, in.Re.MaxX, 0, 0)

			fwd, err := newForwardFFT(size)
			if err != nil {
				return err
			}

			for j := range cols {
				spec, err := fwd.transform(in.Re.Column(j), im.Column(j))
				if err != nil {
					return err
				}

				for k, c := range spec {
					re.Z[k][j] = real(c)
					ri.Z[k][j] = imag(c)
				}
			}

			lo, hi := axisBounds(size, sw, 0)
			re.MinY, re.MaxY, ri.MinY, ri.MaxY = lo, hi, lo, hi
			out = spectrum.Data2D{Re: re, Im: &ri}
		}

		dst.Info = src.Info.Clone()
		dst.Info.Transformed[dim] = true
		dst.Info.IsFid = !(dst.Info.Transformed[0] && dst.Info.Transformed[1])
		dst.D1 = nil
		dst.D2 = &out

		return nil
	}
}

func axisStep(lo, hi float64, n int) float64 {
	if n < 2 || hi == lo {
		return 1
	}

	return (hi - lo) / float64(n-1)
}

func axisBounds(size int, sw, mhz float64) (lo, hi float64) {
	axis := make([]float64, size)
	frequencyAxis(axis, sw, mhz)

	return axis[0], axis[size-1]
}
