package harness

// TraceEvent records one executed step and the desk's state right after it.
// Bookings and Customers are never nil so golden files always show them.
type TraceEvent struct {
	Seq       int      `json:"seq"`
	Op        string   `json:"op"`
	Target    string   `json:"target,omitempty"`
	Outcome   string   `json:"outcome"`
	Removed   *int     `json:"removed,omitempty"`
	Bookings  []string `json:"bookings"`
	Customers []string `json:"customers"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success.
	// True if every expect clause and assertion holds.
	Pass bool `json:"pass"`

	// Trace contains every setup and flow step in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addEvent appends ev to the trace, numbering it from 1.
func (r *Result) addEvent(ev TraceEvent) TraceEvent {
	ev.Seq = len(r.Trace) + 1
	r.Trace = append(r.Trace, ev)
	return ev
}
