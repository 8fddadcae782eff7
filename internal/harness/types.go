package harness

// TraceEvent records one executed step for the trace.
type TraceEvent struct {
	Step      int    `json:"step"`
	Op        string `json:"op"`
	Input     string `json:"input"`
	Outcome   string `json:"outcome"` // "ok" or "error"
	Formatted string `json:"formatted,omitempty"`
	Unit      string `json:"unit,omitempty"`
	Code      string `json:"code,omitempty"` // taxonomy code on error
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every expect clause matched.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
