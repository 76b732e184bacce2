package model

import (
	"cmp"
	"database/sql"

	"gonum.org/v1/gonum/mat"

	"github.com/mikulatomas/FCApy/mvcontext"
)

// Fitter は多値コンテキストとラベルで学習可能なモデルのインターフェース
type Fitter[Y any] interface {
	// Fit はモデルを訓練データで学習させる
	Fit(ctx *mvcontext.Context, y Y) error
}

// Predictor は多値コンテキストの各オブジェクトに対して予測を行うインターフェース
type Predictor[P any] interface {
	// Predict は入力コンテキストの各オブジェクトに対する予測を行う
	Predict(ctx *mvcontext.Context) ([]P, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer[Y any] interface {
	Score(ctx *mvcontext.Context, y Y) (float64, error)
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}

// Estimator combines the fit/predict protocol shared by every predictor.
type Estimator[Y, P any] interface {
	Fitter[Y]
	Predictor[P]
	Scorer[Y]
	ParameterGetter
	ParameterSetter

	IsFitted() bool
}

// Regressor is an estimator with float labels and possibly absent
// predictions.
type Regressor interface {
	Estimator[mat.Vector, sql.NullFloat64]
}

// Classifier is an estimator over ordered class labels. P is the per-object
// prediction type.
type Classifier[C cmp.Ordered, P any] interface {
	Estimator[[]C, P]

	// PredictProba returns the averaged class probabilities of every object,
	// nil where they are absent.
	PredictProba(ctx *mvcontext.Context) ([][]float64, error)

	// Classes returns the sorted class labels seen during fitting.
	Classes() []C
}
