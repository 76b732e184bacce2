package decisionlattice

import (
	"cmp"
	"database/sql"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/mikulatomas/FCApy/core/model"
	"github.com/mikulatomas/FCApy/metrics"
	"github.com/mikulatomas/FCApy/mvcontext"
	"github.com/mikulatomas/FCApy/pkg/errors"
	"github.com/mikulatomas/FCApy/pkg/log"
)

// Measure keys of the classifier statistics.
const (
	ClassProbabilitiesMeasure      = "class_probabilities"
	MostProbableClassMeasure       = "most_probable_class"
	MaximumClassProbabilityMeasure = "maximum_class_probability"
)

// ClassStats are the label statistics of one concept. All fields are absent
// (nil / invalid) when the concept extent is empty.
type ClassStats[C cmp.Ordered] struct {
	// Probabilities is aligned with Classifier.Classes.
	Probabilities []float64
	// MostProbable holds one class, or every class tied at the maximum.
	MostProbable   []C
	MaxProbability sql.NullFloat64
}

// Defined reports whether the statistics are present.
func (s ClassStats[C]) Defined() bool { return s.Probabilities != nil }

// ClassPrediction is the prediction for one object.
type ClassPrediction[C cmp.Ordered] struct {
	// Classes holds the predicted class, or every tied class. nil when the
	// statistics of all traced concepts are absent.
	Classes     []C
	Probability sql.NullFloat64
}

// Defined reports whether a prediction was made.
func (p ClassPrediction[C]) Defined() bool { return len(p.Classes) > 0 }

// Tied reports whether several classes share the maximum probability.
func (p ClassPrediction[C]) Tied() bool { return len(p.Classes) > 1 }

// Class returns the predicted class when it is unique.
func (p ClassPrediction[C]) Class() (C, bool) {
	if len(p.Classes) != 1 {
		var zero C
		return zero, false
	}
	return p.Classes[0], true
}

// Value returns the class, the tied classes or nil, the way
// most_probable_class is reported in concept measures.
func (p ClassPrediction[C]) Value() interface{} {
	return classValue(p.Classes)
}

func classValue[C cmp.Ordered](classes []C) interface{} {
	switch len(classes) {
	case 0:
		return nil
	case 1:
		return classes[0]
	}
	return slices.Clone(classes)
}

// Classifier is a decision lattice classifier over ordered class labels.
type Classifier[C cmp.Ordered] struct {
	*predictor

	classes []C
	stats   []ClassStats[C]
}

var _ model.Classifier[string, ClassPrediction[string]] = (*Classifier[string])(nil)

// NewClassifier creates an unfitted classifier.
func NewClassifier[C cmp.Ordered](opts ...Option) *Classifier[C] {
	return &Classifier[C]{predictor: newPredictor("DecisionLatticeClassifier", opts)}
}

// Fit builds the lattice of ctx and computes the class distribution of every
// concept extent. y holds one label per object.
func (m *Classifier[C]) Fit(ctx *mvcontext.Context, y []C) error {
	start := time.Now()
	lat, err := m.buildLattice(ctx, len(y))
	if err != nil {
		return err
	}

	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	labels := make([]int, len(y))
	for g, label := range y {
		labels[g], _ = slices.BinarySearch(classes, label)
	}

	stats := make([]ClassStats[C], lat.Len())
	for i, c := range lat.Concepts() {
		stats[i] = classStats(c.Extent(), labels, classes)
	}

	m.classes, m.stats = classes, stats
	return m.commit(ctx, lat, start)
}

func classStats[C cmp.Ordered](extent, labels []int, classes []C) ClassStats[C] {
	if len(extent) == 0 {
		return ClassStats[C]{}
	}
	probs := make([]float64, len(classes))
	for _, g := range extent {
		probs[labels[g]]++
	}
	floats.Scale(1/float64(len(extent)), probs)

	best, maxP := argmax(probs, classes)
	return ClassStats[C]{
		Probabilities:  probs,
		MostProbable:   best,
		MaxProbability: sql.NullFloat64{Float64: maxP, Valid: true},
	}
}

// argmax returns every class attaining the maximum probability.
func argmax[C cmp.Ordered](probs []float64, classes []C) ([]C, float64) {
	maxP := floats.Max(probs)
	var best []C
	for k, p := range probs {
		if p == maxP {
			best = append(best, classes[k])
		}
	}
	return best, maxP
}

// average is the element-wise mean of the probabilities of the given
// concepts, skipping concepts with absent statistics. ok is false when every
// concept is absent.
func (m *Classifier[C]) average(concepts []int) (probs []float64, ok bool) {
	sum := make([]float64, len(m.classes))
	n := 0
	for _, ci := range concepts {
		p := m.stats[ci].Probabilities
		if p == nil {
			continue
		}
		floats.Add(sum, p)
		n++
	}
	if n == 0 {
		return nil, false
	}
	floats.Scale(1/float64(n), sum)
	return sum, true
}

// PredictProba returns the averaged class probabilities of every object of
// ctx, aligned with Classes. A row is nil when the statistics of every
// traced concept are absent; an object traced to no concept is an error
// wrapping ErrNoMatchingConcepts.
func (m *Classifier[C]) PredictProba(ctx *mvcontext.Context) ([][]float64, error) {
	const method = "PredictProba"
	bottoms, err := m.trace(ctx, method)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(bottoms))
	err = m.forEachObject(ctx, m.modelName+"."+method, func(g int) error {
		if len(bottoms[g]) == 0 {
			return errNoMatch()
		}
		out[g], _ = m.average(bottoms[g])
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("PredictProba completed",
		log.OperationKey, log.OperationPredictProba,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, len(out),
	)
	return out, nil
}

// Predict returns the most probable class of every object of ctx. Ties are
// reported as several classes; an undefined prediction has no class.
func (m *Classifier[C]) Predict(ctx *mvcontext.Context) ([]ClassPrediction[C], error) {
	const method = "Predict"
	bottoms, err := m.trace(ctx, method)
	if err != nil {
		return nil, err
	}

	preds := make([]ClassPrediction[C], len(bottoms))
	err = m.forEachObject(ctx, m.modelName+"."+method, func(g int) error {
		if len(bottoms[g]) == 0 {
			return errNoMatch()
		}
		probs, ok := m.average(bottoms[g])
		if !ok {
			return nil
		}
		best, maxP := argmax(probs, m.classes)
		preds[g] = ClassPrediction[C]{
			Classes:     best,
			Probability: sql.NullFloat64{Float64: maxP, Valid: true},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	undefined := 0
	for _, p := range preds {
		if !p.Defined() {
			undefined++
		}
	}
	m.logger.Debug("Predict completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, len(preds),
		log.UndefinedPredsKey, undefined,
	)
	return preds, nil
}

// Score returns the accuracy on ctx. Tied and undefined predictions count as
// wrong.
func (m *Classifier[C]) Score(ctx *mvcontext.Context, y []C) (float64, error) {
	preds, err := m.Predict(ctx)
	if err != nil {
		return 0, err
	}
	if len(y) != len(preds) {
		return 0, errors.NewDimensionError(m.modelName+".Score", len(preds), len(y), 0)
	}

	matches := make([]bool, len(preds))
	for i, p := range preds {
		class, ok := p.Class()
		matches[i] = ok && class == y[i]
	}
	return metrics.MatchRate(matches)
}

// Classes returns the sorted class labels seen during Fit.
func (m *Classifier[C]) Classes() []C { return slices.Clone(m.classes) }

// ConceptStats returns the statistics of concept i.
func (m *Classifier[C]) ConceptStats(i int) (ClassStats[C], error) {
	if err := m.state.RequireFitted(m.modelName, "ConceptStats"); err != nil {
		return ClassStats[C]{}, err
	}
	if i < 0 || i >= len(m.stats) {
		return ClassStats[C]{}, errors.NewValidationError("concept_index", "out of range", i)
	}
	return m.stats[i], nil
}

// Measures returns the statistics of concept i merged with the measures
// recorded by the lattice builder.
func (m *Classifier[C]) Measures(i int) (map[string]interface{}, error) {
	return m.measures(i, func(i int) map[string]interface{} {
		s := m.stats[i]
		out := map[string]interface{}{
			ClassProbabilitiesMeasure:      nil,
			MostProbableClassMeasure:       classValue(s.MostProbable),
			MaximumClassProbabilityMeasure: nil,
		}
		if s.Defined() {
			out[ClassProbabilitiesMeasure] = slices.Clone(s.Probabilities)
			out[MaximumClassProbabilityMeasure] = s.MaxProbability.Float64
		}
		return out
	})
}
