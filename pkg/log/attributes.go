// Package log defines standard attribute keys for concept-lattice operations.
//
// Keys follow a hierarchical naming convention ("model.name", "data.samples",
// "lattice.concepts") so that logs from fitting and prediction can be filtered
// and aggregated consistently.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the predictor type.
	// Examples: "DecisionLatticeClassifier", "DecisionLatticeRegressor"
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "fit", "predict", "predict_proba", "build", "trace"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	// Examples: "mvcontext", "lattice", "decisionlattice"
	ComponentKey = "ml.component"

	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of objects in a context.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of attributes (pattern structures) in a context.
	FeaturesKey = "data.features"

	// ClassesKey is the number of distinct class labels seen by a classifier.
	ClassesKey = "data.classes"
)

// Lattice construction.
const (
	AlgorithmKey = "lattice.algorithm"
	SizeCapKey   = "lattice.size_cap"

	// ConceptsKey is the number of concepts in a built lattice.
	ConceptsKey = "lattice.concepts"
)

// Performance and prediction.
const (
	DurationMsKey = "perf.duration_ms"

	// PredsKey is the number of predictions made.
	PredsKey = "preds.count"

	// UndefinedPredsKey counts predictions whose statistics were absent.
	UndefinedPredsKey = "preds.undefined"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	ErrorTypeKey  = "error.type"
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationPredictProba = "predict_proba"
	OperationBuild        = "build"
	OperationTrace        = "trace"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorNoMatch           = "NO_MATCHING_CONCEPTS"
)
