package harness

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/jmlgen/internal/compiler"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // assertion type
	Expected string
	Actual   string
	Output   string // rendered output, for context
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Output != "" {
		fmt.Fprintf(&buf, "\nOutput:\n%s", e.Output)
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns
// one message per failure. All assertions run; the first failure does
// not stop evaluation.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d (%s): %v", i, a.Type, err))
		}
	}
	return failures
}

func evaluateAssertion(r *Result, a Assertion) error {
	switch a.Type {
	case AssertEntityExists:
		return assertEntityExists(r, a)
	case AssertGhostFields:
		return assertGhostFields(r, a)
	case AssertMethodParams:
		return assertMethodParams(r, a)
	case AssertContractCount:
		return assertContractCount(r, a)
	case AssertOutputContains:
		return assertOutputContains(r, a)
	case AssertErrorKind:
		return assertErrorKind(r, a)
	case AssertDiagnostic:
		return assertDiagnostic(r, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertEntityExists(r *Result, a Assertion) error {
	if r.Document == nil {
		return noDocument(r, a)
	}
	e, ok := r.Document.Entity(a.Entity)
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("entity %s", a.Entity),
			Actual:   "not generated",
			Output:   r.Output,
		}
	}
	if a.Kind != "" && e.Kind.String() != a.Kind {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s %s", a.Kind, a.Entity),
			Actual:   fmt.Sprintf("%s %s", e.Kind, a.Entity),
		}
	}
	return nil
}

func assertGhostFields(r *Result, a Assertion) error {
	if r.Document == nil {
		return noDocument(r, a)
	}
	e, ok := r.Document.Entity(a.Entity)
	if !ok {
		return fmt.Errorf("entity %s not generated", a.Entity)
	}
	got := make([]string, len(e.Ghosts))
	for i, g := range e.Ghosts {
		got[i] = g.Name
	}
	if !slices.Equal(got, a.Names) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s ghosts %v", a.Entity, a.Names),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

func assertMethodParams(r *Result, a Assertion) error {
	m, ok := r.method(a.Entity, a.Method)
	if !ok {
		return fmt.Errorf("method %s.%s not generated", a.Entity, a.Method)
	}
	got := make([]string, len(m.Params))
	for i, p := range m.Params {
		got[i] = p.Name
	}
	if !slices.Equal(got, a.Names) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s.%s params %v", a.Entity, a.Method, a.Names),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

func assertContractCount(r *Result, a Assertion) error {
	m, ok := r.method(a.Entity, a.Method)
	if !ok {
		return fmt.Errorf("method %s.%s not generated", a.Entity, a.Method)
	}
	if len(m.Contracts) != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d contract blocks on %s.%s", a.Count, a.Entity, a.Method),
			Actual:   fmt.Sprintf("%d", len(m.Contracts)),
		}
	}
	return nil
}

func assertOutputContains(r *Result, a Assertion) error {
	if !strings.Contains(r.Output, a.Text) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("output containing %q", a.Text),
			Actual:   "not found",
			Output:   r.Output,
		}
	}
	return nil
}

func assertErrorKind(r *Result, a Assertion) error {
	if r.Err == nil {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s error", a.Kind),
			Actual:   "translation succeeded",
			Output:   r.Output,
		}
	}
	if kind := compiler.KindOf(r.Err); string(kind) != a.Kind {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s error", a.Kind),
			Actual:   fmt.Sprintf("%q: %v", kind, r.Err),
		}
	}
	if a.Code != "" {
		var ce *compiler.CompileError
		if !errors.As(r.Err, &ce) || ce.Code != a.Code {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("error code %s", a.Code),
				Actual:   r.Err.Error(),
			}
		}
	}
	return nil
}

func assertDiagnostic(r *Result, a Assertion) error {
	for _, d := range r.Diagnostics {
		if d.Code == a.Code && (a.Symbol == "" || d.Symbol == a.Symbol) {
			return nil
		}
	}
	want := a.Code
	if a.Symbol != "" {
		want += " for " + a.Symbol
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: "diagnostic " + want,
		Actual:   fmt.Sprintf("%d diagnostics, none matching", len(r.Diagnostics)),
	}
}

func noDocument(r *Result, a Assertion) error {
	if r.Err != nil {
		return fmt.Errorf("translation failed: %w", r.Err)
	}
	return fmt.Errorf("%s needs the outer view", a.Type)
}
