package lattice

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/mikulatomas/FCApy/mvcontext"
	"github.com/mikulatomas/FCApy/pkg/errors"
	"github.com/mikulatomas/FCApy/pkg/log"
)

// AlgorithmCbO is the identifier of CloseByOne.
const AlgorithmCbO = "CbO"

// SupportMeasure is the measure key the builder records on every concept.
const SupportMeasure = "support"

// Algorithm enumerates every closed extent of ctx exactly once. Extents are
// ascending object indices.
type Algorithm func(ctx *mvcontext.Context) ([][]int, error)

var (
	algorithmsMu sync.RWMutex
	algorithms   = map[string]Algorithm{
		AlgorithmCbO: CloseByOne,
	}
)

// RegisterAlgorithm makes an algorithm available to DefaultBuilder under name.
func RegisterAlgorithm(name string, algo Algorithm) {
	algorithmsMu.Lock()
	defer algorithmsMu.Unlock()
	algorithms[name] = algo
}

// Algorithms returns the registered algorithm identifiers, sorted.
func Algorithms() []string {
	algorithmsMu.RLock()
	defer algorithmsMu.RUnlock()
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupAlgorithm(name string) (Algorithm, error) {
	algorithmsMu.RLock()
	defer algorithmsMu.RUnlock()
	algo, ok := algorithms[name]
	if !ok {
		return nil, errors.NewValidationError("algorithm", "unknown lattice construction algorithm", name)
	}
	return algo, nil
}

// DefaultBuilder builds lattices with the registered algorithms. When the
// context has more closed extents than sizeCap, the sizeCap concepts with the
// largest support are kept and a LatticeSizeWarning is raised.
type DefaultBuilder struct {
	logger log.Logger
}

var _ Builder = (*DefaultBuilder)(nil)

// NewBuilder returns a DefaultBuilder logging to logger, or to the global
// logger when logger is nil.
func NewBuilder(logger log.Logger) *DefaultBuilder {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &DefaultBuilder{logger: logger.With(log.ComponentKey, "lattice")}
}

// Build implements Builder.
func (b *DefaultBuilder) Build(ctx *mvcontext.Context, algorithm string, sizeCap int) (*Lattice, error) {
	if ctx == nil {
		return nil, errors.NewModelError("lattice.Build", "nil context", errors.ErrEmptyData)
	}
	if sizeCap <= 0 {
		return nil, errors.NewValidationError("size_cap", "must be positive", sizeCap)
	}
	algo, err := lookupAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	extents, err := algo(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "lattice construction with %s", algorithm)
	}

	// 支持度の降順、同じ支持度なら外延の辞書順
	sort.SliceStable(extents, func(i, j int) bool {
		if len(extents[i]) != len(extents[j]) {
			return len(extents[i]) > len(extents[j])
		}
		return slices.Compare(extents[i], extents[j]) < 0
	})

	truncated := len(extents) > sizeCap
	if truncated {
		extents = extents[:sizeCap]
		errors.Warn(errors.NewLatticeSizeWarning(algorithm, sizeCap, ""))
		b.logger.Warn("Lattice truncated at size cap",
			log.AlgorithmKey, algorithm,
			log.SizeCapKey, sizeCap,
		)
	}

	objectNames := ctx.ObjectNames()
	attributeNames := ctx.AttributeNames()
	concepts := make([]*Concept, len(extents))
	for i, extent := range extents {
		intentI, err := ctx.IntentionI(extent)
		if err != nil {
			return nil, err
		}
		intent := make(mvcontext.Descriptions, len(intentI))
		for psI, d := range intentI {
			intent[attributeNames[psI]] = d
		}
		names := make([]string, len(extent))
		for k, g := range extent {
			names[k] = objectNames[g]
		}
		concepts[i] = &Concept{
			extent:      extent,
			extentNames: names,
			intentI:     intentI,
			intent:      intent,
			measures:    map[string]interface{}{SupportMeasure: len(extent)},
		}
	}

	b.logger.Debug("Lattice built",
		log.OperationKey, log.OperationBuild,
		log.AlgorithmKey, algorithm,
		log.SamplesKey, ctx.NObjects(),
		log.ConceptsKey, len(concepts),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return New(algorithm, attributeNames, concepts, truncated), nil
}

// CloseByOne enumerates closed extents by adding one object at a time to a
// closed extent and keeping the closure only when it adds no object with a
// smaller index (the canonicity test). The closure of A is the extension of
// the intention of A.
func CloseByOne(ctx *mvcontext.Context) ([][]int, error) {
	n := ctx.NObjects()
	closure := func(a []int) ([]int, error) {
		intent, err := ctx.IntentionI(a)
		if err != nil {
			return nil, err
		}
		return ctx.ExtensionI(intent)
	}

	var extents [][]int
	var generate func(a []int, from int) error
	generate = func(a []int, from int) error {
		extents = append(extents, a)
		for j := from; j < n; j++ {
			pos, found := slices.BinarySearch(a, j)
			if found {
				continue
			}
			b, err := closure(slices.Insert(slices.Clone(a), pos, j))
			if err != nil {
				return err
			}
			if !canonical(a, b, j) {
				continue
			}
			if err := generate(b, j+1); err != nil {
				return err
			}
		}
		return nil
	}

	bottom, err := closure(nil)
	if err != nil {
		return nil, err
	}
	if err := generate(bottom, 0); err != nil {
		return nil, err
	}
	return extents, nil
}

// canonical reports whether b and a agree on the objects below j. a ⊆ b holds
// because closure is extensive.
func canonical(a, b []int, j int) bool {
	k := 0
	for _, g := range b {
		if g >= j {
			break
		}
		if k >= len(a) || a[k] != g {
			return false
		}
		k++
	}
	return true
}
