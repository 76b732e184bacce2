package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

func vec(values ...float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}

type regressionMetric func(yTrue, yPred mat.Vector) (float64, error)

func TestRegressionMetrics(t *testing.T) {
	// 概念の mean_y を平均した予測値を想定したケース
	yTrue := vec(0.2, 0.2, 1.5, 1.3)
	yPred := vec(0.2, 0.4, 1.4, 1.4)

	tests := []struct {
		name   string
		metric regressionMetric
		yTrue  mat.Vector
		yPred  mat.Vector
		want   float64
	}{
		{"MSE exact", MSE, yTrue, yTrue, 0},
		{"MSE", MSE, yTrue, yPred, (0 + 0.04 + 0.01 + 0.01) / 4},
		{"MSE larger errors", MSE, vec(10, 20, 30), vec(12, 18, 33), 17.0 / 3},
		{"RMSE", RMSE, vec(0, 0, 0, 0), vec(1, 1, 1, 1), 1},
		{"MAE", MAE, yTrue, yPred, (0 + 0.2 + 0.1 + 0.1) / 4},
		{"MAE mixed signs", MAE, vec(1, 2, 3, 4), vec(2, 1, 4, 3), 1},
		{"R2 exact", R2Score, yTrue, yTrue, 1},
		{"R2 reversed", R2Score, vec(1, 2, 3, 4), vec(4, 3, 2, 1), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-10)
		})
	}
}

func TestRegressionMetricErrors(t *testing.T) {
	metrics := map[string]regressionMetric{"MSE": MSE, "RMSE": RMSE, "MAE": MAE, "R2Score": R2Score}

	for name, metric := range metrics {
		t.Run(name+"/dimension mismatch", func(t *testing.T) {
			_, err := metric(vec(1, 2, 3), vec(1, 2))
			var dimErr *errors.DimensionError
			require.ErrorAs(t, err, &dimErr)
			assert.Equal(t, 3, dimErr.Expected)
			assert.Equal(t, 2, dimErr.Got)
		})
		t.Run(name+"/empty", func(t *testing.T) {
			_, err := metric(&mat.VecDense{}, &mat.VecDense{})
			var valErr *errors.ValueError
			assert.ErrorAs(t, err, &valErr)
		})
		t.Run(name+"/nil", func(t *testing.T) {
			_, err := metric(nil, vec(1))
			assert.Error(t, err)
		})
	}
}

func TestR2ScoreConstantTruth(t *testing.T) {
	_, err := R2Score(vec(3, 3, 3, 3, 3), vec(2, 3, 4, 3, 3))
	assert.ErrorContains(t, err, "total sum of squares is zero")
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
