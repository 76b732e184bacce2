// Package fcapy provides Formal Concept Analysis over multi-valued data,
// and decision lattice models built on top of it.
//
// A multi-valued context assigns a number to every (object, attribute) pair.
// Each attribute is interpreted by a pattern structure that describes sets of
// objects by a pattern, for example the smallest closed interval covering
// their values. Concepts are pairs of a set of objects and the pattern they
// share; ordered by their extents they form a concept lattice.
//
// # Installation
//
//	go get github.com/mikulatomas/FCApy
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/mikulatomas/FCApy/ml/decisionlattice"
//	    "github.com/mikulatomas/FCApy/mvcontext"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    types := mvcontext.Declare(mvcontext.KindInterval, "x")
//	    train, err := mvcontext.New(mat.NewDense(3, 1, []float64{1, 5, 10}), types,
//	        mvcontext.WithAttributeNames("x"))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := decisionlattice.NewClassifier[string]()
//	    if err := clf.Fit(train, []string{"low", "low", "high"}); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    test, _ := mvcontext.NewFromRows([][]float64{{3}}, types,
//	        mvcontext.WithAttributeNames("x"))
//	    preds, err := clf.Predict(test)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(preds[0].Value())
//	}
//
// # Packages
//
//   - mvcontext: Multi-valued contexts and pattern structures (Interval)
//   - lattice: Concepts, concept lattices, Close-by-One construction and tracing
//   - ml/decisionlattice: DecisionLatticeClassifier and DecisionLatticeRegressor
//   - metrics: Evaluation metrics (accuracy, MSE, RMSE, MAE, R²)
//   - core/model: Estimator interfaces and fitted state management
//   - core/parallel: Parallel processing utilities
//   - pkg/errors: Typed errors and warnings
//   - pkg/log: Structured logging (zerolog, slog)
//
// # Performance
//
// Tracing and prediction run in parallel once the number of objects exceeds
// a threshold (64 by default, see decisionlattice.WithParallelThreshold).
// The fitted lattice is read-only, so a fitted model can serve concurrent
// Predict calls.
//
// # License
//
// FCApy is released under the MIT License.
package fcapy
