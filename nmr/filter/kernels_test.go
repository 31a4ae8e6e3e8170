package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-nmr/internal/testutil"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

func apply(t *testing.T, name Name, src spectrum.Snapshot, opts Options) spectrum.Snapshot {
	t.Helper()

	def, err := DefaultRegistry().Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%s): %v", name, err)
	}

	var dst spectrum.Snapshot
	if err := def.Apply(&dst, src, opts); err != nil {
		t.Fatalf("Apply(%s): %v", name, err)
	}

	return dst
}

func magnitude(d *spectrum.Data1D) []float64 {
	out := make([]float64, len(d.Re))
	for i := range out {
		out[i] = math.Hypot(d.Re[i], d.Im[i])
	}

	return out
}

func TestFFTPlacesToneOnAxis(t *testing.T) {
	t.Parallel()

	// 8 points at 1/8 s give an 8 Hz window with 1 Hz bins.
	fid := testutil.FID(8, 0.125, 2)

	out := apply(t, FFT, fid, FFTOptions{})

	if out.Info.IsFid {
		t.Fatal("IsFid should be false after fft")
	}

	if out.Info.SpectralWidth != 8 {
		t.Fatalf("SpectralWidth = %v, want 8", out.Info.SpectralWidth)
	}

	peak := spectrum.MaxIndex(magnitude(out.D1))
	if peak != 6 || out.D1.X[peak] != 2 {
		t.Fatalf("peak at %d (x=%v), want 6 (x=2)", peak, out.D1.X[peak])
	}

	testutil.RequireFinite(t, out.D1.Re)
}

func TestFFTConvertsToPPMAndPadsToPowerOfTwo(t *testing.T) {
	t.Parallel()

	fid := testutil.FID(6, 0.125, 1)
	fid.Info.Frequency = 400

	out := apply(t, FFT, fid, FFTOptions{})
	if out.Len() != 8 {
		t.Fatalf("len = %d, want 8", out.Len())
	}

	if math.Abs(out.D1.X[7]-3.0/400) > 1e-15 {
		t.Fatalf("x[7] = %v, want %v ppm", out.D1.X[7], 3.0/400)
	}

	def, _ := DefaultRegistry().Lookup(FFT)

	var dst spectrum.Snapshot
	if err := def.Apply(&dst, out, FFTOptions{}); !errors.Is(err, ErrNotApplicable) {
		t.Fatalf("second fft: err = %v, want ErrNotApplicable", err)
	}
}

func fid2D(t *testing.T) spectrum.Snapshot {
	t.Helper()

	m := spectrum.NewMatrix(2, 4, 0, 0.3, 0, 0.1)
	for i := range m.Z {
		m.Z[i][0] = 1
	}

	s, err := spectrum.New2D(spectrum.Info{Nucleus: []string{"1H", "13C"}, IsFid: true}, m, nil)
	if err != nil {
		t.Fatalf("New2D: %v", err)
	}

	return s
}

func TestFFTDimensions(t *testing.T) {
	t.Parallel()

	s := fid2D(t)

	d1 := apply(t, FFTDimension1, s, FFTDimension1Options{})
	if !d1.Info.IsFid || !d1.Info.Transformed[0] || d1.Info.Transformed[1] {
		t.Fatalf("after dim 1: info = %+v", d1.Info)
	}

	if d1.D2.Im == nil || d1.D2.Re.Cols() != 4 {
		t.Fatal("dim 1 should produce a complex matrix of the same width")
	}

	// A delta at t=0 transforms to a flat row.
	testutil.RequireSliceNearlyEqual(t, d1.D2.Re.Z[0], []float64{1, 1, 1, 1}, 1e-12)

	d2 := apply(t, FFTDimension2, d1, FFTDimension2Options{})
	if d2.Info.IsFid {
		t.Fatal("IsFid should be false once both dimensions are transformed")
	}

	def, _ := DefaultRegistry().Lookup(FFTDimension1)

	var dst spectrum.Snapshot
	if err := def.Apply(&dst, d2, FFTDimension1Options{}); !errors.Is(err, ErrNotApplicable) {
		t.Fatalf("repeated dim 1: err = %v, want ErrNotApplicable", err)
	}
}

func TestFFTDimensionMatchesRowTransforms(t *testing.T) {
	t.Parallel()

	// Six points pad to eight, so every row reuses a plan whose buffer
	// must not leak the previous row into the padding.
	freqs := []float64{1, -2, 3}
	re := spectrum.NewMatrix(len(freqs), 6, 0, 0.625, 0, 0.2)
	im := spectrum.NewMatrix(len(freqs), 6, 0, 0.625, 0, 0.2)
	rows := make([]spectrum.Snapshot, len(freqs))

	for i, f := range freqs {
		rows[i] = apply(t, FFT, testutil.FID(6, 0.125, f), FFTOptions{})

		fid := testutil.FID(6, 0.125, f)
		copy(re.Z[i], fid.D1.Re)
		copy(im.Z[i], fid.D1.Im)
	}

	s, err := spectrum.New2D(spectrum.Info{Nucleus: []string{"1H", "13C"}, IsFid: true}, re, &im)
	if err != nil {
		t.Fatalf("New2D: %v", err)
	}

	out := apply(t, FFTDimension1, s, FFTDimension1Options{})

	for i, row := range rows {
		testutil.RequireSliceNearlyEqual(t, out.D2.Re.Z[i], row.D1.Re, 1e-12)
		testutil.RequireSliceNearlyEqual(t, out.D2.Im.Z[i], row.D1.Im, 1e-12)
	}
}

func TestZeroFilling(t *testing.T) {
	t.Parallel()

	fid := testutil.FID(4, 0.5, 0)

	out := apply(t, ZeroFilling, fid, ZeroFillingOptions{NbPoints: 8})
	testutil.RequireSliceNearlyEqual(t, out.D1.X, []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}, 0)
	testutil.RequireSliceNearlyEqual(t, out.D1.Re, []float64{1, 1, 1, 1, 0, 0, 0, 0}, 0)

	short := apply(t, ZeroFilling, fid, ZeroFillingOptions{NbPoints: 2})
	if short.Len() != 2 {
		t.Fatalf("truncated len = %d, want 2", short.Len())
	}
}

func TestApodization(t *testing.T) {
	t.Parallel()

	fid := testutil.FID(4, 0.5, 0)

	out := apply(t, Apodization, fid, ApodizationOptions{LineBroadening: 1})

	want := make([]float64, 4)
	for i := range want {
		want[i] = math.Exp(-math.Pi * 0.5 * float64(i))
	}

	testutil.RequireSliceNearlyEqual(t, out.D1.Re, want, 1e-15)

	gauss := apply(t, Apodization, fid, ApodizationOptions{GaussBroadening: 1, LineBroadeningCenter: 0.5})
	if gauss.D1.Re[0] >= 1 || gauss.D1.Re[0] >= gauss.D1.Re[2] {
		t.Fatalf("gaussian window should peak near the centre: %v", gauss.D1.Re)
	}
}

func TestRotate(t *testing.T) {
	t.Parallel()

	re := []float64{1, 1}
	im := []float64{0, 0}

	Rotate(re, im, re, im, math.Pi/2, math.Pi)

	// Point 0 turns by pi/2, point 1 by pi/2 + pi/2.
	testutil.RequireSliceNearlyEqual(t, re, []float64{0, -1}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, im, []float64{1, 0}, 1e-15)
}

func TestPhaseCorrectionModes(t *testing.T) {
	t.Parallel()

	theta := math.Pi / 6
	re := []float64{math.Cos(theta), 2 * math.Cos(theta)}
	im := []float64{math.Sin(theta), 2 * math.Sin(theta)}

	src, err := spectrum.New1D(spectrum.Info{}, []float64{0, 1}, re, im)
	if err != nil {
		t.Fatalf("New1D: %v", err)
	}

	manual := apply(t, PhaseCorrection, src, PhaseCorrectionOptions{Ph0: -30})
	testutil.RequireSliceNearlyEqual(t, manual.D1.Re, []float64{1, 2}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, manual.D1.Im, []float64{0, 0}, 1e-12)

	auto := apply(t, PhaseCorrection, src, PhaseCorrectionOptions{Auto: true, Ph0: 123})
	testutil.RequireSliceNearlyEqual(t, auto.D1.Re, []float64{1, 2}, 1e-12)

	abs := apply(t, PhaseCorrection, src, PhaseCorrectionOptions{Absolute: true})
	testutil.RequireSliceNearlyEqual(t, abs.D1.Re, []float64{1, 2}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, abs.D1.Im, []float64{0, 0}, 0)
}

func TestPhaseCorrectionTwoDimensions(t *testing.T) {
	t.Parallel()

	m := spectrum.NewMatrix(2, 2, 0, 1, 0, 1)
	for i := range m.Z {
		m.Z[i][0], m.Z[i][1] = 1, 1
	}

	src, _ := spectrum.New2D(spectrum.Info{}, m, nil)

	out := apply(t, PhaseCorrectionTwoDimensions, src, TwoDimensionPhaseCorrectionOptions{
		Horizontal: PhaseAngles{Ph0: 90},
	})

	for i := range 2 {
		testutil.RequireSliceNearlyEqual(t, out.D2.Re.Z[i], []float64{0, 0}, 1e-15)
		testutil.RequireSliceNearlyEqual(t, out.D2.Im.Z[i], []float64{1, 1}, 1e-15)
	}

	out = apply(t, PhaseCorrectionTwoDimensions, src, TwoDimensionPhaseCorrectionOptions{
		Vertical: PhaseAngles{Ph0: 180},
	})
	testutil.RequireSliceNearlyEqual(t, out.D2.Re.Column(1), []float64{-1, -1}, 1e-15)
}

func TestBaselineCorrection(t *testing.T) {
	t.Parallel()

	x := make([]float64, 101)
	for i := range x {
		x[i] = float64(i) / 10
	}

	peak := testutil.Lorentzian(x, 5, 0.1)
	re := make([]float64, len(x))

	for i := range re {
		re[i] = 2 + 0.5*x[i] + 10*peak[i]
	}

	src, _ := spectrum.New1D(spectrum.Info{}, x, re, nil)
	zones := []Zone{{From: 0, To: 3}, {From: 7, To: 10}}

	out := apply(t, BaselineCorrection, src, BaselineCorrectionOptions{Degree: 1, Zones: zones})

	if math.Abs(out.D1.Re[10]) > 0.05 || math.Abs(out.D1.Re[90]) > 0.05 {
		t.Fatalf("baseline not removed: re[10]=%v re[90]=%v", out.D1.Re[10], out.D1.Re[90])
	}

	if math.Abs(out.D1.Re[50]-10) > 0.05 {
		t.Fatalf("peak height = %v, want about 10", out.D1.Re[50])
	}

	def, _ := DefaultRegistry().Lookup(BaselineCorrection)

	var dst spectrum.Snapshot

	err := def.Apply(&dst, src, BaselineCorrectionOptions{Degree: 3, Zones: []Zone{{From: 0, To: 0.15}}})
	if !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("underdetermined fit: err = %v, want ErrInvalidOptions", err)
	}
}

func TestShifts(t *testing.T) {
	t.Parallel()

	src := testutil.Frequency1D(0, 2, []float64{1, 2, 3})
	out := apply(t, ShiftX, src, ShiftXOptions{Shift: 0.5})
	testutil.RequireSliceNearlyEqual(t, out.D1.X, []float64{0.5, 1.5, 2.5}, 0)
	testutil.RequireSliceNearlyEqual(t, out.D1.Re, src.D1.Re, 0)

	m := spectrum.NewMatrix(2, 2, 0, 1, 10, 20)
	s2, _ := spectrum.New2D(spectrum.Info{}, m, nil)

	ox := apply(t, Shift2DX, s2, Shift2DXOptions{Shift: 1})
	if ox.D2.Re.MinX != 1 || ox.D2.Re.MaxX != 2 || ox.D2.Re.MinY != 10 {
		t.Fatalf("shift2DX bounds = %+v", ox.D2.Re)
	}

	oy := apply(t, Shift2DY, s2, Shift2DYOptions{Shift: -5})
	if oy.D2.Re.MinY != 5 || oy.D2.Re.MaxY != 15 || oy.D2.Re.MinX != 0 {
		t.Fatalf("shift2DY bounds = %+v", oy.D2.Re)
	}
}

func TestExclusionZones(t *testing.T) {
	t.Parallel()

	src := testutil.Frequency1D(0, 10, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})

	out := apply(t, ExclusionZones, src, ExclusionZonesOptions{Zones: []Zone{{From: 2, To: 4}, {From: 9.5, To: 11}}})
	testutil.RequireSliceNearlyEqual(t, out.D1.Re, []float64{1, 1, 0, 0, 0, 1, 1, 1, 1, 1, 0}, 0)
}

func TestSignalProcessing(t *testing.T) {
	t.Parallel()

	re := make([]float64, 11)
	for i := range re {
		re[i] = float64(i)
	}

	src := testutil.Frequency1D(0, 10, re)

	out := apply(t, SignalProcessing, src, SignalProcessingOptions{From: 0, To: 10, NbPoints: 6})
	testutil.RequireSliceNearlyEqual(t, out.D1.X, []float64{0, 2, 4, 6, 8, 10}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, out.D1.Re, []float64{0, 2, 4, 6, 8, 10}, 1e-12)

	centered := apply(t, SignalProcessing, src, SignalProcessingOptions{From: 0, To: 10, NbPoints: 6, Scaling: ScalingCenterMean})
	testutil.RequireSliceNearlyEqual(t, centered.D1.Re, []float64{-5, -3, -1, 1, 3, 5}, 1e-12)

	pareto := apply(t, SignalProcessing, src, SignalProcessingOptions{From: 0, To: 10, NbPoints: 6, Scaling: ScalingPareto})
	k := 1 / math.Sqrt(math.Sqrt(14))
	testutil.RequireSliceNearlyEqual(t, pareto.D1.Re, []float64{-5 * k, -3 * k, -k, k, 3 * k, 5 * k}, 1e-12)

	norm := apply(t, SignalProcessing, src, SignalProcessingOptions{From: 0, To: 10, NbPoints: 6, Scaling: ScalingNormalize})
	testutil.RequireSliceNearlyEqual(t, norm.D1.Re, []float64{0, 2.0 / 30, 4.0 / 30, 6.0 / 30, 8.0 / 30, 10.0 / 30}, 1e-12)

	cropped := apply(t, SignalProcessing, src, SignalProcessingOptions{
		From: 7, To: 2,
		ExclusionZones: []Zone{{From: 3.5, To: 4.5}},
	})
	testutil.RequireSliceNearlyEqual(t, cropped.D1.X, []float64{2, 3, 4, 5, 6, 7}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, cropped.D1.Re, []float64{2, 3, 0, 5, 6, 7}, 1e-12)
}

func TestSignalProcessingDescendingAxis(t *testing.T) {
	t.Parallel()

	src := testutil.Frequency1D(10, 0, []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0})

	out := apply(t, SignalProcessing, src, SignalProcessingOptions{From: 0, To: 10, NbPoints: 3})
	testutil.RequireSliceNearlyEqual(t, out.D1.X, []float64{0, 5, 10}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, out.D1.Re, []float64{0, 5, 10}, 1e-12)
}

func TestKernelsDoNotMutateSource(t *testing.T) {
	t.Parallel()

	fid := testutil.FID(16, 0.01, 5, 12)
	freq := apply(t, FFT, fid, FFTOptions{})

	tests := []struct {
		src  spectrum.Snapshot
		opts Options
	}{
		{fid, FFTOptions{}},
		{fid, ZeroFillingOptions{NbPoints: 32}},
		{fid, ApodizationOptions{LineBroadening: 2, GaussBroadening: 1}},
		{freq, PhaseCorrectionOptions{Ph0: 10, Ph1: 20}},
		{freq, BaselineCorrectionOptions{Degree: 2}},
		{freq, ShiftXOptions{Shift: 1}},
		{freq, ExclusionZonesOptions{Zones: []Zone{{From: -1, To: 1}}}},
		{freq, SignalProcessingOptions{NbPoints: 8, Scaling: ScalingPareto}},
	}

	for _, tt := range tests {
		before := tt.src.Clone()
		apply(t, tt.opts.FilterName(), tt.src, tt.opts)
		testutil.RequireSnapshotEqual(t, tt.src, before)
	}
}

func TestKernelReusesDestinationBuffers(t *testing.T) {
	t.Parallel()

	fid := testutil.FID(64, 0.01, 3)
	def, _ := DefaultRegistry().Lookup(Apodization)

	var dst spectrum.Snapshot
	if err := def.Apply(&dst, fid, ApodizationOptions{LineBroadening: 1}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	first := &dst.D1.Re[0]

	if err := def.Apply(&dst, fid, ApodizationOptions{LineBroadening: 3}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if &dst.D1.Re[0] != first {
		t.Fatal("second preview reallocated the real buffer")
	}
}
