// Package decisionlattice turns a concept lattice into a classifier or a
// regressor. Fit builds a lattice over the training context and computes
// label statistics for every concept's extent; Predict traces each new
// object down to its bottom concepts and averages their statistics.
//
// 予測はオブジェクトごとに独立しており、学習済みの束は読み取り専用で共有される。
package decisionlattice

import (
	"maps"
	"time"

	"github.com/mikulatomas/FCApy/core/model"
	"github.com/mikulatomas/FCApy/core/parallel"
	"github.com/mikulatomas/FCApy/lattice"
	"github.com/mikulatomas/FCApy/mvcontext"
	"github.com/mikulatomas/FCApy/pkg/errors"
	"github.com/mikulatomas/FCApy/pkg/log"
)

// predictor holds the state shared by Classifier and Regressor.
type predictor struct {
	modelName string
	state     *model.StateManager

	algorithm string
	sizeCap   int
	threshold int

	builder lattice.Builder
	tracer  lattice.Tracer
	logger  log.Logger

	lat *lattice.Lattice
}

func newPredictor(modelName string, opts []Option) *predictor {
	p := &predictor{
		modelName: modelName,
		state:     model.NewStateManager(),
		algorithm: DefaultAlgorithm,
		sizeCap:   DefaultSizeCap,
		threshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = log.GetLogger()
	}
	p.logger = p.logger.With(log.ModelNameKey, modelName)
	if p.builder == nil {
		p.builder = lattice.NewBuilder(p.logger)
	}
	if p.tracer == nil {
		p.tracer = lattice.NewTracer(p.threshold)
	}
	return p
}

// IsFitted reports whether Fit has completed.
func (p *predictor) IsFitted() bool { return p.state.IsFitted() }

// Lattice returns the fitted lattice, nil before Fit.
func (p *predictor) Lattice() *lattice.Lattice {
	if !p.state.IsFitted() {
		return nil
	}
	return p.lat
}

// State returns the fitted state together with the hyperparameters.
func (p *predictor) State() model.ModelState {
	st := p.state.GetState()
	st.Params = p.GetParams()
	return st
}

// buildLattice validates the training input and builds the lattice.
func (p *predictor) buildLattice(ctx *mvcontext.Context, nLabels int) (*lattice.Lattice, error) {
	op := p.modelName + ".Fit"
	if err := p.state.RequireNotFitted(p.modelName, "Fit"); err != nil {
		return nil, err
	}
	if ctx == nil {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if nLabels != ctx.NObjects() {
		return nil, errors.NewDimensionError(op, ctx.NObjects(), nLabels, 0)
	}

	p.logger.Info("Fit started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, ctx.NObjects(),
		log.FeaturesKey, ctx.NAttributes(),
		log.AlgorithmKey, p.algorithm,
		log.SizeCapKey, p.sizeCap,
	)

	lat, err := p.builder.Build(ctx, p.algorithm, p.sizeCap)
	if err != nil {
		p.logger.Error("Lattice construction failed", err,
			log.OperationKey, log.OperationFit,
			log.AlgorithmKey, p.algorithm,
		)
		return nil, errors.NewModelError(op, "lattice construction failed", err)
	}
	return lat, nil
}

// commit publishes the lattice and moves to the fitted state. Statistics
// must be in place before commit is called.
func (p *predictor) commit(ctx *mvcontext.Context, lat *lattice.Lattice, start time.Time) error {
	p.lat = lat
	if err := p.state.MarkFitted(ctx.NObjects(), ctx.NAttributes()); err != nil {
		return err
	}
	p.logger.Info("Fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, ctx.NObjects(),
		log.FeaturesKey, ctx.NAttributes(),
		log.ConceptsKey, lat.Len(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// trace checks that the model is fitted and returns the bottom concepts of
// every object of ctx.
func (p *predictor) trace(ctx *mvcontext.Context, method string) ([][]int, error) {
	if err := p.state.RequireFitted(p.modelName, method); err != nil {
		p.logger.Error("Model not fitted", err,
			log.ErrorCodeKey, log.ErrorNotFitted,
			log.SuggestionKey, "Call Fit() before "+method+"()",
		)
		return nil, err
	}
	op := p.modelName + "." + method
	if ctx == nil {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	bottoms, err := p.tracer.Trace(p.lat, ctx)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	if len(bottoms) != ctx.NObjects() {
		return nil, errors.NewDimensionError(op, ctx.NObjects(), len(bottoms), 0)
	}
	return bottoms, nil
}

// forEachObject runs fn for every object in parallel above the threshold.
// A panic inside fn is reported as a PanicError for that object.
func (p *predictor) forEachObject(ctx *mvcontext.Context, op string, fn func(g int) error) error {
	names := ctx.ObjectNames()
	return parallel.ForEach(len(names), p.threshold, func(g int) error {
		err := errors.SafeExecute(op, func() error { return fn(g) })
		if err != nil {
			return errors.Wrapf(err, "%s: object %q", op, names[g])
		}
		return nil
	})
}

// errNoMatch reports an object that was traced to no concept. Absent
// statistics are not an error.
func errNoMatch() error {
	return errors.WithStack(errors.ErrNoMatchingConcepts)
}

// mergeMeasures combines predictor statistics with the builder's measures.
// The builder's values win on key collisions.
func mergeMeasures(stats map[string]interface{}, c *lattice.Concept) map[string]interface{} {
	out := maps.Clone(stats)
	if out == nil {
		out = map[string]interface{}{}
	}
	maps.Copy(out, c.Measures())
	return out
}

// measures returns the merged measures of concept i; stats produces the
// predictor's own statistics for that concept.
func (p *predictor) measures(i int, stats func(i int) map[string]interface{}) (map[string]interface{}, error) {
	if err := p.state.RequireFitted(p.modelName, "Measures"); err != nil {
		return nil, err
	}
	c, err := p.lat.Concept(i)
	if err != nil {
		return nil, err
	}
	return mergeMeasures(stats(i), c), nil
}
