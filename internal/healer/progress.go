package healer

// Stage names one phase of the healing pipeline. Stages are reported to
// the progress sink at every transition.
type Stage string

const (
	StageDetecting  Stage = "detecting"
	StageAnalyzing  Stage = "analyzing"
	StageFixing     Stage = "fixing"
	StageValidating Stage = "validating"
	StageComplete   Stage = "complete"
)

// ProgressFunc receives stage transitions. It is invoked synchronously on
// the healing goroutine; the hosting service decides how to fan events out.
type ProgressFunc func(stage Stage, message string)
