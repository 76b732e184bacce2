package decisionlattice

import (
	"database/sql"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mikulatomas/FCApy/core/model"
	"github.com/mikulatomas/FCApy/metrics"
	"github.com/mikulatomas/FCApy/mvcontext"
	"github.com/mikulatomas/FCApy/pkg/errors"
	"github.com/mikulatomas/FCApy/pkg/log"
)

// MeanYMeasure is the measure key of the regressor statistic.
const MeanYMeasure = "mean_y"

// Regressor is a decision lattice regressor. Every concept stores the mean
// label of its extent; a prediction is the mean over the traced concepts.
type Regressor struct {
	*predictor

	meanY []sql.NullFloat64
}

var _ model.Regressor = (*Regressor)(nil)

// NewRegressor creates an unfitted regressor.
func NewRegressor(opts ...Option) *Regressor {
	return &Regressor{predictor: newPredictor("DecisionLatticeRegressor", opts)}
}

// Fit builds the lattice of ctx and computes the mean label of every
// concept extent. The mean of an empty extent is absent.
func (m *Regressor) Fit(ctx *mvcontext.Context, y mat.Vector) error {
	start := time.Now()
	if y == nil {
		return errors.NewModelError(m.modelName+".Fit", "empty labels", errors.ErrEmptyData)
	}
	labels := mat.Col(nil, 0, y)
	if err := errors.CheckNaN("y", labels); err != nil {
		return err
	}

	lat, err := m.buildLattice(ctx, len(labels))
	if err != nil {
		return err
	}

	meanY := make([]sql.NullFloat64, lat.Len())
	for i, c := range lat.Concepts() {
		extent := c.Extent()
		if len(extent) == 0 {
			continue
		}
		values := make([]float64, len(extent))
		for k, g := range extent {
			values[k] = labels[g]
		}
		meanY[i] = sql.NullFloat64{Float64: stat.Mean(values, nil), Valid: true}
	}

	m.meanY = meanY
	return m.commit(ctx, lat, start)
}

// Predict returns the mean of the traced concepts' mean labels for every
// object of ctx. Concepts with an absent mean are skipped; the prediction is
// absent when all of them are. An object traced to no concept is an error
// wrapping ErrNoMatchingConcepts.
func (m *Regressor) Predict(ctx *mvcontext.Context) ([]sql.NullFloat64, error) {
	const method = "Predict"
	bottoms, err := m.trace(ctx, method)
	if err != nil {
		return nil, err
	}

	preds := make([]sql.NullFloat64, len(bottoms))
	err = m.forEachObject(ctx, m.modelName+"."+method, func(g int) error {
		if len(bottoms[g]) == 0 {
			return errNoMatch()
		}
		values := make([]float64, 0, len(bottoms[g]))
		for _, ci := range bottoms[g] {
			if mean := m.meanY[ci]; mean.Valid {
				values = append(values, mean.Float64)
			}
		}
		if len(values) > 0 {
			preds[g] = sql.NullFloat64{Float64: stat.Mean(values, nil), Valid: true}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	undefined := 0
	for _, p := range preds {
		if !p.Valid {
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

// Score returns the coefficient of determination R² on ctx. It fails when
// any prediction is absent.
func (m *Regressor) Score(ctx *mvcontext.Context, y mat.Vector) (float64, error) {
	op := m.modelName + ".Score"
	preds, err := m.Predict(ctx)
	if err != nil {
		return 0, err
	}
	if y == nil || y.Len() != len(preds) {
		got := 0
		if y != nil {
			got = y.Len()
		}
		return 0, errors.NewDimensionError(op, len(preds), got, 0)
	}

	values := make([]float64, len(preds))
	for i, p := range preds {
		if !p.Valid {
			return 0, errors.NewValueError(op, "prediction is undefined for some objects")
		}
		values[i] = p.Float64
	}
	return metrics.R2Score(y, mat.NewVecDense(len(values), values))
}

// ConceptMeanY returns the mean label of concept i.
func (m *Regressor) ConceptMeanY(i int) (sql.NullFloat64, error) {
	if err := m.state.RequireFitted(m.modelName, "ConceptMeanY"); err != nil {
		return sql.NullFloat64{}, err
	}
	if i < 0 || i >= len(m.meanY) {
		return sql.NullFloat64{}, errors.NewValidationError("concept_index", "out of range", i)
	}
	return m.meanY[i], nil
}

// Measures returns the statistics of concept i merged with the measures
// recorded by the lattice builder.
func (m *Regressor) Measures(i int) (map[string]interface{}, error) {
	return m.measures(i, func(i int) map[string]interface{} {
		var mean interface{}
		if m.meanY[i].Valid {
			mean = m.meanY[i].Float64
		}
		return map[string]interface{}{MeanYMeasure: mean}
	})
}
