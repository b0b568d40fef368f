package harness

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/jmlgen/internal/compiler"
	"github.com/roach88/jmlgen/internal/engine"
)

// Snapshot renders a result as stable text for golden comparison:
// a header of run ID, diagnostics and error, a blank line, then the output.
func Snapshot(name string, r *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	if r.RunID != "" {
		fmt.Fprintf(&b, "run: %s\n", r.RunID)
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintf(&b, "diagnostic: %s\n", d)
	}
	if r.Err != nil {
		var ce *compiler.CompileError
		if errors.As(r.Err, &ce) {
			fmt.Fprintf(&b, "error: %s %s\n", ce.Kind, ce.Code)
		} else {
			fmt.Fprintf(&b, "error: %v\n", r.Err)
		}
	}
	b.WriteString("\n")
	b.WriteString(r.Output)
	return []byte(b.String())
}

// RunWithGolden runs a scenario, fails t on assertion failures, and
// compares Snapshot against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...engine.Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(name, result))
}
