package store

import (
	"context"
	"fmt"

	"github.com/roach88/jmlgen/internal/compiler"
)

// Run is one ledger row.
type Run struct {
	Seq              int64
	ID               string
	Source           string // file path or batch name
	SourceText       string
	InputHash        string
	View             string
	Output           string
	OutputHash       string
	Diagnostics      []compiler.Diagnostic
	IRVersion        string
	GeneratorVersion string
}

// WriteRun appends a run to the ledger and returns its seq.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing the same run ID
// twice keeps the first row and returns its seq.
func (s *Store) WriteRun(ctx context.Context, r Run) (int64, error) {
	diagsJSON, err := marshalDiagnostics(r.Diagnostics)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, source, source_text, input_hash, view, output, output_hash, diagnostics, ir_version, generator_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.ID,
		r.Source,
		r.SourceText,
		r.InputHash,
		r.View,
		r.Output,
		r.OutputHash,
		diagsJSON,
		r.IRVersion,
		r.GeneratorVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, r.ID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: read seq: %w", err)
	}
	return seq, nil
}
