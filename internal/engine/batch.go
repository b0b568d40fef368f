package engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Source is one named input document for TranslateBatch.
type Source struct {
	Name string
	Text string
}

// BatchResult pairs a source with its translation outcome.
// Exactly one of Result and Err is set.
type BatchResult struct {
	Name   string
	Result *Result
	Err    error
}

// TranslateBatch translates independent documents concurrently, at most
// WithWorkers at a time. results[i] always corresponds to sources[i]. A
// failing document never affects the others.
//
// Cancellation is checked before each document starts; a document already
// being translated runs to completion. Documents not started get an error
// satisfying IsCancelled.
func (e *Engine) TranslateBatch(ctx context.Context, sources []Source, view View) []BatchResult {
	results := make([]BatchResult, len(sources))

	var g errgroup.Group
	g.SetLimit(e.workers)

	for i, src := range sources {
		results[i].Name = src.Name
		if err := ctx.Err(); err != nil {
			results[i].Err = cancelled(src.Name, err)
			continue
		}

		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = cancelled(src.Name, err)
				return nil
			}
			res, err := e.Translate(src.Text, view)
			if err != nil {
				e.logger.Warn("batch document failed", "source", src.Name, "error", err)
			}
			results[i].Result, results[i].Err = res, err
			return nil
		})
	}

	_ = g.Wait() // workers never return errors
	return results
}

func cancelled(name string, err error) error {
	return &RuntimeError{
		Code:    ErrCodeCancelled,
		Message: "batch cancelled before document started",
		Source:  name,
		Err:     err,
	}
}
