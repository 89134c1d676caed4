package harness

import (
	"github.com/roach88/cartstate/internal/cart"
	"github.com/roach88/cartstate/internal/store"
)

// TraceEvent records one dispatched step.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Type    string `json:"type"` // cart action type, e.g. "cart/ADD"
	Key     string `json:"key,omitempty"`
	OK      bool   `json:"ok"`
	ErrCode string `json:"error_code,omitempty"`

	// Changed is true when the step published a new snapshot.
	Changed bool `json:"changed"`

	// Total and Count describe the cart after the step.
	Total string `json:"total"`
	Count int    `json:"count"`
}

// snapshot renders the event for canonical JSON.
func (e TraceEvent) snapshot() map[string]any {
	out := map[string]any{
		"seq":     e.Seq,
		"type":    e.Type,
		"ok":      e.OK,
		"changed": e.Changed,
		"total":   e.Total,
		"count":   e.Count,
	}
	if e.Key != "" {
		out["key"] = e.Key
	}
	if e.ErrCode != "" {
		out["error_code"] = e.ErrCode
	}
	return out
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expect clause and assertion matched.
	Pass bool `json:"pass"`

	// Trace contains one event per flow step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final cart snapshot.
	State *cart.State `json:"state"`

	// History is the store journal.
	History []store.Record `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
