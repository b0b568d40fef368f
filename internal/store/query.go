package store

import "strings"

// Run lookups are compiled from a small predicate tree into parameterized
// SQL. Values are always bound with ? placeholders and every query orders
// by seq, so results never depend on SQLite's scan order.

type predicate interface {
	compile() (string, []any)
}

// equals matches column = value.
type equals struct {
	column string
	value  any
}

func (p equals) compile() (string, []any) {
	return p.column + " = ?", []any{p.value}
}

// hasPrefix matches column LIKE 'value%', with LIKE wildcards in value
// escaped.
type hasPrefix struct {
	column string
	value  string
}

func (p hasPrefix) compile() (string, []any) {
	return p.column + ` LIKE ? ESCAPE '\'`, []any{escapeLike(p.value) + "%"}
}

// allOf is a conjunction. An empty allOf matches every row.
type allOf []predicate

func (p allOf) compile() (string, []any) {
	if len(p) == 0 {
		return "1 = 1", nil
	}
	parts := make([]string, len(p))
	var params []any
	for i, sub := range p {
		sql, args := sub.compile()
		parts[i] = sql
		params = append(params, args...)
	}
	return strings.Join(parts, " AND "), params
}

// runQuery selects rows of the runs table.
type runQuery struct {
	filter      predicate // nil matches every row
	newestFirst bool
	limit       int // 0 for no limit
}

func (q runQuery) compile() (string, []any) {
	var b strings.Builder
	var params []any

	b.WriteString("SELECT " + runColumns + " FROM runs")
	if q.filter != nil {
		where, args := q.filter.compile()
		b.WriteString(" WHERE " + where)
		params = append(params, args...)
	}

	if q.newestFirst {
		b.WriteString(" ORDER BY seq DESC")
	} else {
		b.WriteString(" ORDER BY seq ASC")
	}

	if q.limit > 0 {
		b.WriteString(" LIMIT ?")
		params = append(params, q.limit)
	}
	return b.String(), params
}

// filterPredicate converts a RunFilter to a predicate, skipping zero
// fields.
func filterPredicate(f RunFilter) predicate {
	var preds allOf
	if f.Source != "" {
		preds = append(preds, equals{"source", f.Source})
	}
	if f.View != "" {
		preds = append(preds, equals{"view", f.View})
	}
	if len(preds) == 0 {
		return nil
	}
	return preds
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
