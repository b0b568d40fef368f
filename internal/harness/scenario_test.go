package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jmlgen/internal/testutil"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "linked_list.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "linked_list", s.Name)
	assert.Equal(t, filepath.Join("testdata", "sources", "linked_list.smt2"), s.Source)
	assert.Len(t, s.Assertions, 6)
	assert.Equal(t, []string{"content"}, s.Assertions[1].Names)
	assert.False(t, s.ExpectsError())
}

func TestLoadScenario_Inline(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "ternary_application.yaml"))
	require.NoError(t, err)

	assert.True(t, s.ExpectsError())
	text, err := s.Text()
	require.NoError(t, err)
	assert.Contains(t, text, "seq.update")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "typo.yaml", `
name: typo
description: "misspelled assertions key"
input: "(check-sat)"
assertion:
  - type: output_contains
    text: x
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\ninput: x\nassertions: [{type: output_contains, text: x}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\ninput: x\nassertions: [{type: output_contains, text: x}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no document",
			content: "name: n\ndescription: d\nassertions: [{type: output_contains, text: x}]\n",
			wantErr: "one of source or input",
		},
		{
			name:    "both documents",
			content: "name: n\ndescription: d\ninput: x\nsource: a.smt2\nassertions: [{type: output_contains, text: x}]\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "missing source file",
			content: "name: n\ndescription: d\nsource: missing.smt2\nassertions: [{type: output_contains, text: x}]\n",
			wantErr: "source file not found",
		},
		{
			name:    "bad view",
			content: "name: n\ndescription: d\ninput: x\nview: sideways\nassertions: [{type: output_contains, text: x}]\n",
			wantErr: "sideways",
		},
		{
			name:    "no assertions",
			content: "name: n\ndescription: d\ninput: x\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "unknown assertion type",
			content: "name: n\ndescription: d\ninput: x\nassertions: [{type: trace_order}]\n",
			wantErr: "unknown assertion type",
		},
		{
			name:    "entity_exists without entity",
			content: "name: n\ndescription: d\ninput: x\nassertions: [{type: entity_exists}]\n",
			wantErr: "entity is required",
		},
		{
			name:    "entity_exists bad kind",
			content: "name: n\ndescription: d\ninput: x\nassertions: [{type: entity_exists, entity: A, kind: record}]\n",
			wantErr: "kind must be class or interface",
		},
		{
			name:    "method_params without method",
			content: "name: n\ndescription: d\ninput: x\nassertions: [{type: method_params, entity: A}]\n",
			wantErr: "entity and method are required",
		},
		{
			name:    "unknown error kind",
			content: "name: n\ndescription: d\ninput: x\nassertions: [{type: error_kind, kind: OOPS}]\n",
			wantErr: "unknown error kind",
		},
		{
			name:    "error_kind mixed",
			content: "name: n\ndescription: d\ninput: x\nassertions: [{type: error_kind, kind: MALFORMED_INPUT}, {type: output_contains, text: x}]\n",
			wantErr: "cannot be combined",
		},
		{
			name:    "diagnostic without code",
			content: "name: n\ndescription: d\ninput: x\nassertions: [{type: diagnostic}]\n",
			wantErr: "code is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "s.yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarios_SortedByFileName(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"cache_stack", "field_class_mismatch", "linked_list", "ternary_application"}, names)
}
