package mvcontext

import (
	"fmt"
	"math"
	"slices"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

// IntervalPS is the pattern structure of a numeric attribute. Descriptions
// are Intervals; an object satisfies an Interval when its value lies within
// the closed bounds. Comparisons are exact, infinities are valid values.
type IntervalPS struct {
	name string
	data []float64
}

var _ PatternStructure = (*IntervalPS)(nil)

// NewIntervalPS copies data into a new pattern structure named name.
func NewIntervalPS(name string, data []float64) (*IntervalPS, error) {
	if err := errors.CheckNaN(name, data); err != nil {
		return nil, err
	}
	return &IntervalPS{name: name, data: slices.Clone(data)}, nil
}

// Name returns the attribute name.
func (ps *IntervalPS) Name() string { return ps.name }

// Len returns the number of objects.
func (ps *IntervalPS) Len() int { return len(ps.data) }

// Data returns a copy of the raw values.
func (ps *IntervalPS) Data() []float64 {
	return slices.Clone(ps.data)
}

// SetData replaces the raw values. The new data must have the same length.
func (ps *IntervalPS) SetData(values []float64) error {
	if len(values) != len(ps.data) {
		return errors.NewDimensionError("IntervalPS.SetData", len(ps.data), len(values), 0)
	}
	if err := errors.CheckNaN(ps.name, values); err != nil {
		return err
	}
	ps.data = slices.Clone(values)
	return nil
}

// At returns the raw value of object i.
func (ps *IntervalPS) At(i int) (float64, error) {
	if i < 0 || i >= len(ps.data) {
		return 0, errors.NewValidationError("index", "out of range", i)
	}
	return ps.data[i], nil
}

// Values returns the raw values of the given objects, in the given order.
func (ps *IntervalPS) Values(indices []int) ([]float64, error) {
	out := make([]float64, len(indices))
	for k, i := range indices {
		v, err := ps.At(i)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// Intention returns the tightest Interval containing the values of the
// given objects. ok is false when indices is empty.
func (ps *IntervalPS) Intention(indices []int) (d Interval, ok bool, err error) {
	if len(indices) == 0 {
		return Interval{}, false, nil
	}

	first, err := ps.At(indices[0])
	if err != nil {
		return Interval{}, false, err
	}
	lo, hi := first, first
	for _, i := range indices[1:] {
		v, err := ps.At(i)
		if err != nil {
			return Interval{}, false, err
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return Interval{lo: lo, hi: hi}, true, nil
}

// Extension returns the ascending indices of objects whose value lies in d.
func (ps *IntervalPS) Extension(d Interval) []int {
	extent := make([]int, 0)
	for i, v := range ps.data {
		if d.Contains(v) {
			extent = append(extent, i)
		}
	}
	return extent
}

// Generators returns ((-inf, max], [min, +inf)). Their intersection is d.
func (ps *IntervalPS) Generators(d Interval) [2]Interval {
	return [2]Interval{
		{lo: math.Inf(-1), hi: d.hi},
		{lo: d.lo, hi: math.Inf(1)},
	}
}

// Aggregate intersects generators: the result takes the largest lower bound
// and the smallest upper bound. It fails with InconsistentGeneratorsError
// when the lower bound exceeds the upper one.
func (ps *IntervalPS) Aggregate(generators []Interval) (Interval, error) {
	if len(generators) == 0 {
		return Interval{}, errors.NewValueError("IntervalPS.GeneratorsToDescription", "no generators to aggregate")
	}

	lo, hi := math.Inf(-1), math.Inf(1)
	for _, g := range generators {
		lo = max(lo, g.lo)
		hi = min(hi, g.hi)
	}
	if lo > hi {
		return Interval{}, errors.NewInconsistentGeneratorsError(ps.name, lo, hi)
	}
	return Interval{lo: lo, hi: hi}, nil
}

// IntentionI implements PatternStructure.
func (ps *IntervalPS) IntentionI(indices []int) (Description, error) {
	d, ok, err := ps.Intention(indices)
	if err != nil {
		return nil, err
	}
	if !ok {
		return NoDescription, nil
	}
	return d, nil
}

// ExtensionI implements PatternStructure.
func (ps *IntervalPS) ExtensionI(d Description) ([]int, error) {
	if IsEmpty(d) {
		return []int{}, nil
	}
	iv, err := ps.interval(d)
	if err != nil {
		return nil, err
	}
	return ps.Extension(iv), nil
}

// DescriptionToGenerators implements PatternStructure.
func (ps *IntervalPS) DescriptionToGenerators(d Description) ([2]Description, error) {
	iv, err := ps.interval(d)
	if err != nil {
		return [2]Description{}, err
	}
	gens := ps.Generators(iv)
	return [2]Description{gens[0], gens[1]}, nil
}

// GeneratorsToDescription implements PatternStructure.
func (ps *IntervalPS) GeneratorsToDescription(generators []Description) (Description, error) {
	ivs := make([]Interval, len(generators))
	for i, g := range generators {
		iv, err := ps.interval(g)
		if err != nil {
			return nil, err
		}
		ivs[i] = iv
	}
	d, err := ps.Aggregate(ivs)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (ps *IntervalPS) interval(d Description) (Interval, error) {
	iv, ok := d.(Interval)
	if !ok {
		return Interval{}, errors.NewValidationError(ps.name, "interval pattern structure expects an Interval description", d)
	}
	return iv, nil
}

// Equal implements PatternStructure.
func (ps *IntervalPS) Equal(other PatternStructure) bool {
	o, ok := other.(*IntervalPS)
	if !ok || o == nil {
		return false
	}
	return ps.name == o.name && slices.Equal(ps.data, o.data)
}

func (ps *IntervalPS) String() string {
	return fmt.Sprintf("IntervalPS '%s'", ps.name)
}
