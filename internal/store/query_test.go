package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunQuery_Compile(t *testing.T) {
	tests := []struct {
		name       string
		query      runQuery
		wantSQL    string
		wantParams []any
	}{
		{
			name:    "all rows oldest first",
			query:   runQuery{},
			wantSQL: "SELECT " + runColumns + " FROM runs ORDER BY seq ASC",
		},
		{
			name:       "equals",
			query:      runQuery{filter: equals{"id", "r1"}},
			wantSQL:    "SELECT " + runColumns + " FROM runs WHERE id = ? ORDER BY seq ASC",
			wantParams: []any{"r1"},
		},
		{
			name: "conjunction newest first with limit",
			query: runQuery{
				filter:      allOf{equals{"input_hash", "h1"}, equals{"view", "outer"}},
				newestFirst: true,
				limit:       1,
			},
			wantSQL:    "SELECT " + runColumns + " FROM runs WHERE input_hash = ? AND view = ? ORDER BY seq DESC LIMIT ?",
			wantParams: []any{"h1", "outer", 1},
		},
		{
			name:       "prefix escapes wildcards",
			query:      runQuery{filter: hasPrefix{"id", "a_b%"}},
			wantSQL:    "SELECT " + runColumns + ` FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY seq ASC`,
			wantParams: []any{`a\_b\%%`},
		},
		{
			name:       "empty conjunction",
			query:      runQuery{filter: allOf{}},
			wantSQL:    "SELECT " + runColumns + " FROM runs WHERE 1 = 1 ORDER BY seq ASC",
			wantParams: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := tt.query.compile()
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestFilterPredicate(t *testing.T) {
	assert.Nil(t, filterPredicate(RunFilter{Limit: 5}), "limit is not a predicate")

	sql, params := filterPredicate(RunFilter{Source: "a.smt2", View: "inner"}).compile()
	assert.Equal(t, "source = ? AND view = ?", sql)
	assert.Equal(t, []any{"a.smt2", "inner"}, params)
}
