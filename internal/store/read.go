package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `seq, id, source, source_text, input_hash, view, output, output_hash, diagnostics, ir_version, generator_version`

// ErrRunNotFound is returned when no run matches a lookup.
var ErrRunNotFound = errors.New("run not found")

// RunFilter narrows ListRuns. Zero values match everything.
type RunFilter struct {
	Source string
	View   string
	Limit  int
}

// ListRuns returns runs newest first (ORDER BY seq DESC).
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListRuns(ctx context.Context, f RunFilter) ([]Run, error) {
	query, args := runQuery{filter: filterPredicate(f), newestFirst: true, limit: f.Limit}.compile()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun retrieves a run by ID, or by a unique ID prefix of at least
// eight characters. Returns ErrRunNotFound if nothing matches.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	query, args := runQuery{filter: equals{"id", id}}.compile()
	r, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, ErrRunNotFound) || len(id) < 8 {
		return Run{}, err
	}

	query, args = runQuery{filter: hasPrefix{"id", id}, limit: 2}.compile()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Run{}, fmt.Errorf("query run prefix: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		m, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate runs: %w", err)
	}

	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("run ID prefix %q is ambiguous", id)
	}
}

// LatestByInputHash returns the most recent run of the same input and view.
// Returns ErrRunNotFound if the input has never been translated.
func (s *Store) LatestByInputHash(ctx context.Context, inputHash, view string) (Run, error) {
	query, args := runQuery{
		filter:      allOf{equals{"input_hash", inputHash}, equals{"view", view}},
		newestFirst: true,
		limit:       1,
	}.compile()
	row := s.db.QueryRowContext(ctx, query, args...)
	return scanRun(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r         Run
		diagsJSON string
	)
	err := sc.Scan(
		&r.Seq,
		&r.ID,
		&r.Source,
		&r.SourceText,
		&r.InputHash,
		&r.View,
		&r.Output,
		&r.OutputHash,
		&diagsJSON,
		&r.IRVersion,
		&r.GeneratorVersion,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	r.Diagnostics, err = unmarshalDiagnostics(diagsJSON)
	if err != nil {
		return Run{}, fmt.Errorf("run %s: %w", r.ID, err)
	}
	return r, nil
}
