// Package metrics は予測の評価指標を提供する
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

// residuals checks the shapes and returns yTrue, yTrue - yPred as slices.
func residuals(op string, yTrue, yPred mat.Vector) (truth, res []float64, err error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return nil, nil, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != yTrue.Len() {
		return nil, nil, errors.NewDimensionError(op, yTrue.Len(), yPred.Len(), 0)
	}
	truth = mat.Col(nil, 0, yTrue)
	res = floats.SubTo(make([]float64, len(truth)), truth, mat.Col(nil, 0, yPred))
	return truth, res, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred mat.Vector) (float64, error) {
	_, res, err := residuals("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	// ‖r‖² / n
	return floats.Dot(res, res) / float64(len(res)), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred mat.Vector) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred mat.Vector) (float64, error) {
	_, res, err := residuals("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Norm(res, 1) / float64(len(res)), nil
}

// R2Score は決定係数（R²）を計算する。yTrue が定数の場合はエラー
func R2Score(yTrue, yPred mat.Vector) (float64, error) {
	truth, res, err := residuals("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	yMean := stat.Mean(truth, nil)
	var tss float64
	for _, v := range truth {
		tss += (v - yMean) * (v - yMean)
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - floats.Dot(res, res)/tss, nil
}
