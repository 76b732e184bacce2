package lattice

import (
	"slices"

	"github.com/mikulatomas/FCApy/core/parallel"
	"github.com/mikulatomas/FCApy/mvcontext"
	"github.com/mikulatomas/FCApy/pkg/errors"
)

// DefaultParallelThreshold is the work size under which tracing stays on the
// calling goroutine.
const DefaultParallelThreshold = 64

// DefaultTracer traces objects down a lattice by matching concept intents.
// An object matches a concept when its values satisfy every description of
// the concept's intent; the bottom concepts of an object are the matching
// concepts with no matching concept strictly below them.
type DefaultTracer struct {
	threshold int
}

var _ Tracer = (*DefaultTracer)(nil)

// NewTracer returns a DefaultTracer. threshold <= 0 selects
// DefaultParallelThreshold.
func NewTracer(threshold int) *DefaultTracer {
	if threshold <= 0 {
		threshold = DefaultParallelThreshold
	}
	return &DefaultTracer{threshold: threshold}
}

// Trace implements Tracer. ctx must have the attribute names the lattice
// was built with.
func (t *DefaultTracer) Trace(l *Lattice, ctx *mvcontext.Context) ([][]int, error) {
	if l == nil || ctx == nil {
		return nil, errors.NewModelError("lattice.Trace", "nil lattice or context", errors.ErrEmptyData)
	}
	if !slices.Equal(l.attributeNames, ctx.AttributeNames()) {
		return nil, errors.NewContextMismatchError("attribute_names")
	}

	// 概念ごとに、新しいコンテキストの中で内包を満たすオブジェクトを求める
	matches := make([][]int, len(l.concepts))
	err := parallel.ForEach(len(l.concepts), t.threshold, func(ci int) error {
		ext, err := ctx.ExtensionI(l.concepts[ci].intentI)
		if err != nil {
			return err
		}
		matches[ci] = ext
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "trace")
	}

	perObject := make([][]int, ctx.NObjects())
	for ci, objects := range matches {
		for _, g := range objects {
			perObject[g] = append(perObject[g], ci)
		}
	}

	bottoms := make([][]int, len(perObject))
	_ = parallel.ForEach(len(perObject), t.threshold, func(g int) error {
		bottoms[g] = t.minimal(l, perObject[g])
		return nil
	})
	return bottoms, nil
}

// minimal keeps the concepts of candidates that have no candidate strictly
// below them. candidates is ascending and so is the result.
func (t *DefaultTracer) minimal(l *Lattice, candidates []int) []int {
	out := make([]int, 0, len(candidates))
	for _, ci := range candidates {
		c := l.concepts[ci]
		isMinimal := true
		for _, cj := range candidates {
			if cj != ci && l.concepts[cj].Less(c) {
				isMinimal = false
				break
			}
		}
		if isMinimal {
			out = append(out, ci)
		}
	}
	return out
}
