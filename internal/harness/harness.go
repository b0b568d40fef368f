package harness

import (
	"fmt"

	"github.com/roach88/jmlgen/internal/engine"
	"github.com/roach88/jmlgen/internal/testutil"
)

// Run translates the scenario's document and evaluates its assertions.
//
// The engine always gets the scenario's fixed run ID, whatever generator
// opts carry, so snapshots are reproducible. A translation error is a
// failure unless the scenario asserts error_kind. An error is returned
// only when the scenario cannot be executed at all.
func Run(scenario *Scenario, opts ...engine.Option) (*Result, error) {
	text, err := scenario.Text()
	if err != nil {
		return nil, err
	}

	view := engine.ViewOuter
	if scenario.View != "" {
		view, err = engine.ParseView(scenario.View)
		if err != nil {
			return nil, err
		}
	}

	opts = append(opts[:len(opts):len(opts)], engine.WithRunIDs(testutil.NewFixedRunIDGenerator(scenario.RunID)))
	eng := engine.New(opts...)

	result := NewResult()
	res, err := eng.Translate(text, view)
	if err != nil {
		result.Err = err
		if !scenario.ExpectsError() {
			result.AddError(fmt.Sprintf("translation failed: %v", err))
			return result, nil
		}
	} else {
		result.RunID = res.RunID
		result.Output = res.Output
		result.Document = res.Document
		result.Diagnostics = res.Diagnostics
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}
