package models

import "time"

// ResultType tags the variant of an ExecutionResult.
type ResultType string

const (
	ResultTypeInput  ResultType = "input"
	ResultTypeGemini ResultType = "gemini"
	ResultTypeOutput ResultType = "output"
)

// ResultStatus defines the outcome of a single node evaluation.
type ResultStatus string

const (
	ResultStatusCompleted ResultStatus = "completed"
	ResultStatusError     ResultStatus = "error"
)

// ExecutionResult is the record produced for one node during a run.
// Failed evaluations carry Status error and a message in Error.
type ExecutionResult struct {
	Type        ResultType   `json:"type"`
	Value       string       `json:"value,omitempty"`
	Instruction string       `json:"instruction,omitempty"`
	Input       string       `json:"input,omitempty"`
	Output      string       `json:"output,omitempty"`
	Status      ResultStatus `json:"status"`
	Error       string       `json:"error,omitempty"`
}

// Failed reports whether the result is error-tagged.
func (r ExecutionResult) Failed() bool {
	return r.Status == ResultStatusError
}

// Scalar returns the value downstream nodes receive from this result.
// Error-tagged and unknown variants resolve to the empty string.
func (r ExecutionResult) Scalar() string {
	if r.Failed() {
		return ""
	}

	switch r.Type {
	case ResultTypeInput, ResultTypeOutput:
		return r.Value
	case ResultTypeGemini:
		return r.Output
	default:
		return ""
	}
}

// ExecutionStatus is the terminal state of a whole workflow run.
type ExecutionStatus string

const (
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusError   ExecutionStatus = "error"
)

// ExecutionReport is the structured outcome of one workflow run.
type ExecutionReport struct {
	Status     ExecutionStatus            `json:"status"`
	Results    map[string]ExecutionResult `json:"results,omitempty"`
	Error      string                     `json:"error,omitempty"`
	ExecutedAt time.Time                  `json:"executedAt"`
}

// Succeeded reports whether the run completed scheduling and evaluation.
func (r *ExecutionReport) Succeeded() bool {
	return r.Status == ExecutionStatusSuccess
}

// ExecutionLog is a persisted execution report for a stored workflow.
type ExecutionLog struct {
	ID         string           `json:"id"`
	WorkflowID string           `json:"workflow_id"`
	Status     ExecutionStatus  `json:"status"`
	Output     *ExecutionReport `json:"output"`
	ExecutedAt time.Time        `json:"executed_at"`
}

// ResultTypeFor returns the result tag produced by a node of kind.
// Unknown kinds map to their raw tag.
func ResultTypeFor(kind NodeKind) ResultType {
	switch kind {
	case NodeKindInput:
		return ResultTypeInput
	case NodeKindGenerate:
		return ResultTypeGemini
	case NodeKindOutput:
		return ResultTypeOutput
	default:
		return ResultType(kind)
	}
}
