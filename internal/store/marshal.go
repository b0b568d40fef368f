package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/jmlgen/internal/compiler"
	"github.com/roach88/jmlgen/internal/ir"
)

// marshalDiagnostics converts diagnostics to canonical JSON TEXT for storage.
// Empty optional fields are omitted, matching the json tags on
// compiler.Diagnostic so the round trip is lossless.
func marshalDiagnostics(diags []compiler.Diagnostic) (string, error) {
	arr := make([]any, len(diags))
	for i, d := range diags {
		m := map[string]any{
			"code":    d.Code,
			"message": d.Message,
		}
		if d.Symbol != "" {
			m["symbol"] = d.Symbol
		}
		if d.Command != "" {
			m["command"] = d.Command
		}
		if d.Line > 0 {
			m["line"] = d.Line
		}
		arr[i] = m
	}

	data, err := ir.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal diagnostics: %w", err)
	}
	return string(data), nil
}

// unmarshalDiagnostics parses the diagnostics column.
// Returns an empty slice (not nil) for an empty array.
func unmarshalDiagnostics(data string) ([]compiler.Diagnostic, error) {
	diags := []compiler.Diagnostic{}
	if data == "" {
		return diags, nil
	}
	if err := json.Unmarshal([]byte(data), &diags); err != nil {
		return nil, fmt.Errorf("unmarshal diagnostics: %w", err)
	}
	return diags, nil
}
