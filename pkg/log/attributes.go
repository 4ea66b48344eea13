// Package log defines standard attribute keys for scistat operations.
//
// Keys follow a hierarchical naming convention ("optim.iteration",
// "data.samples") so records from different components can be filtered
// together.

package log

// Operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "MultipleRegression", "LogisticRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Examples: "fit", "predict", "minimize_batch"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "gradient", "linear", "decomposition"
	ComponentKey = "ml.component"

	// RunIDKey correlates every record emitted by one optimizer run.
	RunIDKey = "optim.run_id"
)

// Data shape.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// ClustersKey indicates the number of clusters (k).
	ClustersKey = "model.k"

	// FeaturesKey indicates the number of features (columns) or the
	// dimension of the parameter vector.
	FeaturesKey = "data.features"
)

// Optimizer progress.
const (
	// IterationKey records the current batch iteration.
	IterationKey = "optim.iteration"

	// EpochKey records the current pass over the data in stochastic mode.
	EpochKey = "optim.epoch"

	// LossKey records the objective value.
	LossKey = "optim.loss"

	// StepSizeKey records the step size selected from the schedule.
	StepSizeKey = "optim.step_size"

	// LearningRateKey records the current stochastic learning rate (alpha).
	LearningRateKey = "optim.learning_rate"

	// NoImprovementKey records the consecutive epochs without improvement.
	NoImprovementKey = "optim.no_improvement"

	// ConvergedKey records whether the run met its convergence criterion.
	ConvergedKey = "optim.converged"

	// ToleranceKey records the convergence tolerance.
	ToleranceKey = "optim.tolerance"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Error context.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"

	// ErrorOperationKey names the operation recorded on a structured error.
	ErrorOperationKey = "error.operation"

	// ErrorParamKey names the parameter rejected by a ValidationError.
	ErrorParamKey = "error.param"
)

// Standard attribute values.
const (
	OperationFit              = "fit"
	OperationMinimizeBatch    = "minimize_batch"
	OperationMinimizeSGD      = "minimize_stochastic"
	ErrorConvergence          = "CONVERGENCE_FAILURE"
	ErrorNumericalInstability = "NUMERICAL_INSTABILITY"
	ErrorPanic                = "PANIC"
	ErrorShapeMismatch        = "SHAPE_MISMATCH"
	ErrorInvalidParameter     = "INVALID_PARAMETER"
)
