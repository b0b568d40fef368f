package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/jmlgen/internal/compiler"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields.
func createTestRun(id, source, inputHash string) Run {
	return Run{
		ID:               id,
		Source:           source,
		SourceText:       "(check-sat)",
		InputHash:        inputHash,
		View:             "outer",
		Output:           "public interface A {\n}\n",
		OutputHash:       "out-" + inputHash,
		IRVersion:        "1",
		GeneratorVersion: "0.1.0",
	}
}

func unknownSymbol(symbol string, line int) compiler.Diagnostic {
	return compiler.Diagnostic{
		Code:    compiler.WarnUnknownSymbol,
		Message: "no JML translation for function " + symbol,
		Symbol:  symbol,
		Command: "define-contract A.m",
		Line:    line,
	}
}
