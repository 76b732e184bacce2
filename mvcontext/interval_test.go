package mvcontext

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

func mustRange(t *testing.T, lo, hi float64) Interval {
	t.Helper()
	d, err := NewRange(lo, hi)
	require.NoError(t, err)
	return d
}

func TestInterval_Kinds(t *testing.T) {
	assert.Equal(t, PointKind, Point(3).Kind())
	assert.True(t, Point(3).IsPoint())

	r := mustRange(t, 1, 5)
	assert.Equal(t, RangeKind, r.Kind())
	lo, hi := r.Bounds()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 5.0, hi)

	// A degenerate range is a point and compares equal to it.
	assert.Equal(t, Point(2), mustRange(t, 2, 2))
}

func TestNewRange_Invalid(t *testing.T) {
	_, err := NewRange(5, 1)
	var verr *errors.ValidationError
	require.True(t, errors.As(err, &verr))

	_, err = NewRange(math.NaN(), 1)
	require.Error(t, err)

	_, err = NewRange(math.Inf(-1), math.Inf(1))
	require.NoError(t, err)
}

func TestInterval_String(t *testing.T) {
	tests := []struct {
		d    Interval
		want string
	}{
		{Point(5), "5"},
		{Point(2.5), "2.5"},
		{mustRange(t, 1, 5), "[1, 5]"},
		{mustRange(t, math.Inf(-1), 2), "[-inf, 2]"},
		{mustRange(t, 5, math.Inf(1)), "[5, inf]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
	}
	assert.Equal(t, "None", NoDescription.String())
}

func TestIntervalPS_Scenario(t *testing.T) {
	ps, err := NewIntervalPS("M", []float64{1, 5, 10})
	require.NoError(t, err)

	d, err := ps.IntentionI([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, mustRange(t, 1, 5), d)

	ext, err := ps.ExtensionI(mustRange(t, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ext)

	ext, err = ps.ExtensionI(Point(10))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ext)

	d, err = ps.IntentionI([]int{2})
	require.NoError(t, err)
	assert.Equal(t, Point(10), d)
}

func TestIntervalPS_EmptyIntention(t *testing.T) {
	ps, err := NewIntervalPS("M", []float64{1, 5, 10})
	require.NoError(t, err)

	d, err := ps.IntentionI(nil)
	require.NoError(t, err)
	assert.True(t, IsEmpty(d))

	ext, err := ps.ExtensionI(NoDescription)
	require.NoError(t, err)
	assert.Empty(t, ext)
}

func TestIntervalPS_Generators(t *testing.T) {
	ps, err := NewIntervalPS("M", []float64{1, 5, 10})
	require.NoError(t, err)

	gens, err := ps.DescriptionToGenerators(mustRange(t, 1, 5))
	require.NoError(t, err)
	assert.Equal(t, mustRange(t, math.Inf(-1), 5), gens[0])
	assert.Equal(t, mustRange(t, 1, math.Inf(1)), gens[1])

	t.Run("mixed point and range", func(t *testing.T) {
		d, err := ps.GeneratorsToDescription([]Description{
			mustRange(t, math.Inf(-1), 4),
			Point(4),
			mustRange(t, 0, math.Inf(1)),
		})
		require.NoError(t, err)
		assert.Equal(t, Point(4), d)
	})

	t.Run("inconsistent", func(t *testing.T) {
		_, err := ps.GeneratorsToDescription([]Description{
			mustRange(t, math.Inf(-1), 2),
			mustRange(t, 5, math.Inf(1)),
		})
		var gerr *errors.InconsistentGeneratorsError
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 5.0, gerr.Lower)
		assert.Equal(t, 2.0, gerr.Upper)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ps.GeneratorsToDescription(nil)
		var verr *errors.ValueError
		require.True(t, errors.As(err, &verr))
	})

	t.Run("wrong description", func(t *testing.T) {
		_, err := ps.DescriptionToGenerators(NoDescription)
		var verr *errors.ValidationError
		require.True(t, errors.As(err, &verr))
	})
}

func TestIntervalPS_Indexing(t *testing.T) {
	ps, err := NewIntervalPS("M", []float64{1, 5, 10})
	require.NoError(t, err)

	v, err := ps.At(1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	vals, err := ps.Values([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 1}, vals)
	assert.Equal(t, []float64{1, 5, 10}, ps.Data())

	_, err = ps.At(3)
	assert.Error(t, err)
}

func TestIntervalPS_SetData(t *testing.T) {
	ps, err := NewIntervalPS("M", []float64{1, 5, 10})
	require.NoError(t, err)

	err = ps.SetData([]float64{1, 2})
	var derr *errors.DimensionError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, 3, derr.Expected)

	require.NoError(t, ps.SetData([]float64{3, 2, 1}))
	assert.Equal(t, []float64{3, 2, 1}, ps.Data())

	_, err = NewIntervalPS("bad", []float64{1, math.NaN()})
	assert.Error(t, err)
}

func TestIntervalPS_Equal(t *testing.T) {
	a, _ := NewIntervalPS("M", []float64{1, 5, 10})
	b, _ := NewIntervalPS("M", []float64{1, 5, 10})
	c, _ := NewIntervalPS("M", []float64{10, 5, 1})
	d, _ := NewIntervalPS("N", []float64{1, 5, 10})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.Equal(t, "IntervalPS 'M'", a.String())
}

func randomPS(t *testing.T, rng *rand.Rand, n int) *IntervalPS {
	t.Helper()
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(rng.Intn(20))
	}
	ps, err := NewIntervalPS("x", data)
	require.NoError(t, err)
	return ps
}

func randomInterval(rng *rand.Rand) Interval {
	a, b := float64(rng.Intn(24)-2), float64(rng.Intn(24)-2)
	return Interval{lo: min(a, b), hi: max(a, b)}
}

func TestIntervalPS_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		ps := randomPS(t, rng, 1+rng.Intn(15))

		// 包含関係が外延に保存される
		d1 := randomInterval(rng)
		d2 := Interval{lo: d1.lo - float64(rng.Intn(3)), hi: d1.hi + float64(rng.Intn(3))}
		require.True(t, d2.Covers(d1))
		ext1, ext2 := ps.Extension(d1), ps.Extension(d2)
		for _, i := range ext1 {
			assert.Contains(t, ext2, i)
		}

		// 外延は昇順かつ重複なし
		assert.True(t, slices.IsSorted(ext2))
		assert.Len(t, slices.Compact(slices.Clone(ext2)), len(ext2))

		// ガロア閉包
		var subset []int
		for i := 0; i < ps.Len(); i++ {
			if rng.Intn(2) == 0 {
				subset = append(subset, i)
			}
		}
		if len(subset) > 0 {
			d, ok, err := ps.Intention(subset)
			require.NoError(t, err)
			require.True(t, ok)
			closed := ps.Extension(d)
			for _, i := range subset {
				assert.Contains(t, closed, i)
			}
		}

		// ジェネレータの往復
		gens := ps.Generators(d1)
		back, err := ps.Aggregate(gens[:])
		require.NoError(t, err)
		assert.Equal(t, d1, back)
	}
}
