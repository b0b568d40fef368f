package harness

import (
	"github.com/roach88/jmlgen/internal/compiler"
	"github.com/roach88/jmlgen/internal/jml"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when the translation behaved as expected and every
	// assertion held.
	Pass bool `json:"pass"`

	RunID  string `json:"run_id,omitempty"`
	Output string `json:"output,omitempty"`

	// Document is the entity tree of an outer-view translation.
	Document *jml.Document `json:"-"`

	Diagnostics []compiler.Diagnostic `json:"diagnostics,omitempty"`

	// Err is the translation error, if any.
	Err error `json:"-"`

	// Errors holds assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) method(entity, name string) (*jml.Method, bool) {
	if r.Document == nil {
		return nil, false
	}
	e, ok := r.Document.Entity(entity)
	if !ok {
		return nil, false
	}
	for _, m := range e.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
