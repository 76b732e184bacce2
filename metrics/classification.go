package metrics

import (
	"github.com/mikulatomas/FCApy/pkg/errors"
)

// MatchRate は true の割合を計算する
func MatchRate(matches []bool) (float64, error) {
	if len(matches) == 0 {
		return 0, errors.NewValueError("MatchRate", "empty input")
	}
	hits := 0
	for _, ok := range matches {
		if ok {
			hits++
		}
	}
	return float64(hits) / float64(len(matches)), nil
}

// Accuracy は正解率を計算する
func Accuracy[C comparable](yTrue, yPred []C) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewValueError("Accuracy", "empty input")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("Accuracy", len(yTrue), len(yPred), 0)
	}
	matches := make([]bool, len(yTrue))
	for i := range yTrue {
		matches[i] = yTrue[i] == yPred[i]
	}
	return MatchRate(matches)
}

// ClassificationError は誤分類率（1 - 正解率）を計算する
func ClassificationError[C comparable](yTrue, yPred []C) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}
