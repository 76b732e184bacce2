package lattice

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikulatomas/FCApy/mvcontext"
	"github.com/mikulatomas/FCApy/pkg/errors"
	"github.com/mikulatomas/FCApy/pkg/log"
)

func newContext(t *testing.T, rows [][]float64, opts ...mvcontext.Option) *mvcontext.Context {
	t.Helper()
	names := make([]string, len(rows[0]))
	for j := range names {
		names[j] = string(rune('A' + j))
	}
	opts = append(opts, mvcontext.WithAttributeNames(names...))
	ctx, err := mvcontext.NewFromRows(rows, mvcontext.Declare(mvcontext.KindInterval, names...), opts...)
	require.NoError(t, err)
	return ctx
}

func quietBuilder(t *testing.T) *DefaultBuilder {
	t.Helper()
	logger, _ := log.NewTestLogger(log.LevelError)
	return NewBuilder(logger)
}

// bruteForceExtents closes every subset of objects.
func bruteForceExtents(t *testing.T, ctx *mvcontext.Context) [][]int {
	t.Helper()
	n := ctx.NObjects()
	seen := map[string]bool{}
	var out [][]int
	for mask := 0; mask < 1<<n; mask++ {
		var a []int
		for g := 0; g < n; g++ {
			if mask&(1<<g) != 0 {
				a = append(a, g)
			}
		}
		intent, err := ctx.IntentionI(a)
		require.NoError(t, err)
		ext, err := ctx.ExtensionI(intent)
		require.NoError(t, err)
		key := keyOf(ext)
		if !seen[key] {
			seen[key] = true
			out = append(out, ext)
		}
	}
	return out
}

func keyOf(ext []int) string {
	b := make([]byte, 0, len(ext)*2)
	for _, g := range ext {
		b = append(b, byte(g), ',')
	}
	return string(b)
}

func TestCloseByOne_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 30; trial++ {
		n := 1 + rng.Intn(7)
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = []float64{float64(rng.Intn(4)), float64(rng.Intn(4))}
		}
		ctx := newContext(t, rows)

		got, err := CloseByOne(ctx)
		require.NoError(t, err)
		want := bruteForceExtents(t, ctx)

		gotKeys := make([]string, len(got))
		for i, e := range got {
			gotKeys[i] = keyOf(e)
		}
		wantKeys := make([]string, len(want))
		for i, e := range want {
			wantKeys[i] = keyOf(e)
		}
		assert.ElementsMatch(t, wantKeys, gotKeys)
	}
}

func TestBuild(t *testing.T) {
	ctx := newContext(t, [][]float64{{1}, {5}, {10}}, mvcontext.WithObjectNames("a", "b", "c"))

	l, err := quietBuilder(t).Build(ctx, AlgorithmCbO, 100)
	require.NoError(t, err)
	assert.False(t, l.Truncated())
	assert.Equal(t, AlgorithmCbO, l.Algorithm())

	// {} {a} {b} {c} {a,b} {b,c} {a,b,c}
	require.Equal(t, 7, l.Len())
	top, err := l.Concept(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, top.Extent())
	assert.Equal(t, []string{"a", "b", "c"}, top.ExtentNames())
	want, _ := mvcontext.NewRange(1, 10)
	assert.Equal(t, mvcontext.Descriptions{"A": want}, top.Intent())

	bottom, err := l.Concept(l.Len() - 1)
	require.NoError(t, err)
	assert.Empty(t, bottom.Extent())
	assert.True(t, mvcontext.IsEmpty(bottom.Intent()["A"]))

	for i := 1; i < l.Len(); i++ {
		prev, _ := l.Concept(i - 1)
		cur, _ := l.Concept(i)
		assert.GreaterOrEqual(t, prev.Support(), cur.Support())
	}

	supp, ok := top.Measure(SupportMeasure)
	require.True(t, ok)
	assert.Equal(t, 3, supp)

	_, err = l.Concept(7)
	assert.Error(t, err)
}

func TestBuild_SizeCap(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(func(w error) {})

	ctx := newContext(t, [][]float64{{1}, {5}, {10}})
	l, err := quietBuilder(t).Build(ctx, AlgorithmCbO, 3)
	require.NoError(t, err)

	assert.True(t, l.Truncated())
	assert.Equal(t, 3, l.Len())
	top, _ := l.Concept(0)
	assert.Equal(t, 3, top.Support())

	require.Len(t, warned, 1)
	var w *errors.LatticeSizeWarning
	require.True(t, errors.As(warned[0], &w))
	assert.Equal(t, 3, w.SizeCap)
}

func TestBuild_Validation(t *testing.T) {
	ctx := newContext(t, [][]float64{{1}})
	b := quietBuilder(t)

	_, err := b.Build(ctx, "Sofia", 10)
	var verr *errors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "algorithm", verr.ParamName)

	_, err = b.Build(ctx, AlgorithmCbO, 0)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "size_cap", verr.ParamName)

	_, err = b.Build(nil, AlgorithmCbO, 10)
	assert.ErrorIs(t, err, errors.ErrEmptyData)
}

func TestRegisterAlgorithm(t *testing.T) {
	RegisterAlgorithm("TopOnly", func(ctx *mvcontext.Context) ([][]int, error) {
		all := make([]int, ctx.NObjects())
		for i := range all {
			all[i] = i
		}
		return [][]int{all}, nil
	})
	assert.Contains(t, Algorithms(), "TopOnly")
	assert.Contains(t, Algorithms(), AlgorithmCbO)

	ctx := newContext(t, [][]float64{{1}, {2}})
	l, err := quietBuilder(t).Build(ctx, "TopOnly", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestConcept_Order(t *testing.T) {
	a := NewConcept([]int{1}, []string{"b"}, nil, nil, nil)
	b := NewConcept([]int{0, 1, 2}, []string{"a", "b", "c"}, nil, nil, nil)
	c := NewConcept([]int{0, 2}, []string{"a", "c"}, nil, nil, nil)

	assert.True(t, a.LessEq(b))
	assert.True(t, a.Less(b))
	assert.True(t, b.LessEq(b))
	assert.False(t, b.Less(b))
	assert.False(t, a.LessEq(c))
	assert.True(t, c.Less(b))
	assert.True(t, b.Equal(NewConcept([]int{0, 1, 2}, nil, nil, nil, nil)))
}

func TestConcept_ToMap(t *testing.T) {
	c := NewConcept([]int{0, 2}, []string{"a", "c"},
		map[int]mvcontext.Description{0: mvcontext.Point(3)},
		mvcontext.Descriptions{"A": mvcontext.Point(3)},
		map[string]interface{}{"support": 2},
	)
	m := c.ToMap()
	assert.Equal(t, 2, m["Supp"])
	assert.Equal(t, 2, m["support"])
	ext := m["Ext"].(map[string]interface{})
	assert.Equal(t, []int{0, 2}, ext["Inds"])
	assert.Equal(t, []string{"a", "c"}, ext["Names"])
	intent := m["Int"].(map[string]interface{})
	assert.Equal(t, map[string]string{"A": "3"}, intent["Descriptions"])
}

func TestTrace(t *testing.T) {
	train := newContext(t, [][]float64{{1}, {5}, {10}})
	l, err := quietBuilder(t).Build(train, AlgorithmCbO, 100)
	require.NoError(t, err)

	test := newContext(t, [][]float64{{5}, {3}, {10}, {42}})
	bottoms, err := NewTracer(0).Trace(l, test)
	require.NoError(t, err)
	require.Len(t, bottoms, 4)

	extentsOf := func(cis []int) [][]int {
		out := make([][]int, len(cis))
		for k, ci := range cis {
			c, err := l.Concept(ci)
			require.NoError(t, err)
			out[k] = c.Extent()
		}
		return out
	}

	// 5 は {b} に一致する
	assert.Equal(t, [][]int{{1}}, extentsOf(bottoms[0]))
	// 3 は [1, 5] に入るが、それより小さい一致する概念はない
	assert.Equal(t, [][]int{{0, 1}}, extentsOf(bottoms[1]))
	assert.Equal(t, [][]int{{2}}, extentsOf(bottoms[2]))
	// 範囲外
	assert.Empty(t, bottoms[3])

	for _, cis := range bottoms {
		assert.True(t, slices.IsSorted(cis))
	}
}

func TestTrace_Parallel(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	rows := make([][]float64, 9)
	for i := range rows {
		rows[i] = []float64{float64(rng.Intn(5)), float64(rng.Intn(5))}
	}
	train := newContext(t, rows)
	l, err := quietBuilder(t).Build(train, AlgorithmCbO, 1000)
	require.NoError(t, err)

	seq, err := NewTracer(1 << 20).Trace(l, train)
	require.NoError(t, err)
	par, err := NewTracer(1).Trace(l, train)
	require.NoError(t, err)
	assert.Equal(t, seq, par)

	// 学習オブジェクトは自分自身の閉包に辿り着く
	for g, cis := range seq {
		require.NotEmpty(t, cis)
		for _, ci := range cis {
			c, _ := l.Concept(ci)
			assert.Contains(t, c.Extent(), g)
		}
	}
}

func TestTrace_AttributeMismatch(t *testing.T) {
	train := newContext(t, [][]float64{{1}, {5}})
	l, err := quietBuilder(t).Build(train, AlgorithmCbO, 100)
	require.NoError(t, err)

	other, err := mvcontext.NewFromRows([][]float64{{1}}, mvcontext.Declare(mvcontext.KindInterval, "Z"),
		mvcontext.WithAttributeNames("Z"))
	require.NoError(t, err)

	_, err = NewTracer(0).Trace(l, other)
	var merr *errors.ContextMismatchError
	require.True(t, errors.As(err, &merr))
}
