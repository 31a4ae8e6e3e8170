package phase2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-nmr/internal/testutil"
	"github.com/cwbudde/algo-nmr/nmr/filter"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
	"github.com/cwbudde/algo-nmr/nmr/view"
)

// identity maps pixels straight to axis values.
var identity = view.InverterFunc(func(px float64) float64 { return px })

func complex2D(t *testing.T) spectrum.Snapshot {
	t.Helper()

	re := spectrum.NewMatrix(4, 8, 0, 7, 0, 3)
	im := spectrum.NewMatrix(4, 8, 0, 7, 0, 3)

	noise := testutil.DeterministicNoise(7, 1, 64)
	for i := range re.Z {
		for j := range re.Z[i] {
			re.Z[i][j] = float64(i*8 + j)
			im.Z[i][j] = noise[i*8+j]
		}
	}

	s, err := spectrum.New2D(spectrum.Info{Nucleus: []string{"1H", "1H"}}, re, &im)
	require.NoError(t, err)

	return s
}

func TestAddTraceUsesActiveDirection(t *testing.T) {
	t.Parallel()

	snap := complex2D(t)
	c := New()

	h, err := c.AddTrace(snap, identity, identity, 3.2, 1.9)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Index, "row closest to y=1.9")
	assert.Equal(t, snap.D2.Re.Z[2], h.Source.Re)
	assert.Equal(t, h.Source, h.Data)

	c.SetDirection(Vertical)
	assert.Equal(t, Vertical, c.Direction())

	v, err := c.AddTrace(snap, identity, identity, 3.2, 1.9)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Index, "column closest to x=3.2")
	assert.Len(t, v.Source.Re, 4)

	assert.Len(t, c.Set(Horizontal).Traces, 1, "switching direction keeps the other set")
	assert.Len(t, c.Active().Traces, 1)
	assert.NotEqual(t, h.ID, v.ID)
}

func TestAddTraceRejects1D(t *testing.T) {
	t.Parallel()

	_, err := New().AddTrace(testutil.FID(8, 0.1, 1), identity, identity, 0, 0)
	require.ErrorIs(t, err, filter.ErrDimensionMismatch)
}

func TestRemoveTrace(t *testing.T) {
	t.Parallel()

	snap := complex2D(t)
	c := New()

	a, _ := c.AddTrace(snap, identity, identity, 0, 0)
	b, _ := c.AddTrace(snap, identity, identity, 0, 3)

	assert.False(t, c.RemoveTrace(Vertical, a.ID))
	assert.True(t, c.RemoveTrace(Horizontal, a.ID))
	assert.False(t, c.RemoveTrace(Horizontal, a.ID))

	traces := c.Active().Traces
	require.Len(t, traces, 1)
	assert.Equal(t, b.ID, traces[0].ID)
}

func TestManualCorrectionIsPreviewOnly(t *testing.T) {
	t.Parallel()

	snap := complex2D(t)
	before := snap.Clone()
	c := New()

	tr, _ := c.AddTrace(snap, identity, identity, 0, 1)

	c.ApplyManualCorrection(90, 0)

	got := c.Active().Traces[0]
	testutil.RequireSliceNearlyEqual(t, got.Data.Re, negate(tr.Source.Im), 1e-12)
	testutil.RequireSliceNearlyEqual(t, got.Data.Im, tr.Source.Re, 1e-12)
	assert.Equal(t, tr.Source, got.Source)

	assert.True(t, snap.Equal(before), "manual correction must not touch the spectrum")

	// Re-applying derives from the source, not from the previous preview.
	c.ApplyManualCorrection(0, 0)
	assert.Equal(t, tr.Source, c.Active().Traces[0].Data)
}

func TestPivotAndCommittedOptionsMatchPreview(t *testing.T) {
	t.Parallel()

	snap := complex2D(t)
	c := New()

	p, err := c.SetPivot(snap, identity, 5.1)
	require.NoError(t, err)
	assert.Equal(t, Pivot{Value: 5, Index: 5, Size: 8}, p)

	tr, _ := c.AddTrace(snap, identity, identity, 0, 2)
	c.ApplyManualCorrection(30, 60)

	opts := c.Options()
	assert.InDelta(t, 30-60*5.0/8, opts.Horizontal.Ph0, 1e-12)
	assert.Equal(t, filter.PhaseAngles{}, opts.Vertical)

	def, err := filter.DefaultRegistry().Lookup(filter.PhaseCorrectionTwoDimensions)
	require.NoError(t, err)

	var out spectrum.Snapshot
	require.NoError(t, def.Apply(&out, snap, opts))

	row := out.D2.HorizontalSlice(tr.Y)
	preview := c.Active().Traces[0].Data
	testutil.RequireSliceNearlyEqual(t, row.Data.Re, preview.Re, 1e-12)
	testutil.RequireSliceNearlyEqual(t, row.Data.Im, preview.Im, 1e-12)
}

func TestVerticalPivot(t *testing.T) {
	t.Parallel()

	c := New()
	c.SetDirection(Vertical)

	p, err := c.SetPivot(complex2D(t), identity, 2.2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Index)
	assert.Equal(t, 4, p.Size)
	assert.Equal(t, Pivot{}, c.Set(Horizontal).Pivot)
}

func TestClear(t *testing.T) {
	t.Parallel()

	snap := complex2D(t)
	c := New()

	_, _ = c.AddTrace(snap, identity, identity, 0, 0)
	c.ApplyManualCorrection(10, 0)
	c.Clear()

	assert.Empty(t, c.Active().Traces)
	assert.Equal(t, filter.TwoDimensionPhaseCorrectionOptions{}, c.Options())
}

func TestDirectionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "horizontal", Horizontal.String())
	assert.Equal(t, "vertical", Vertical.String())
	assert.Equal(t, "Direction(7)", Direction(7).String())
}

func negate(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = -x
	}

	return out
}
