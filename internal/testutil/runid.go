// Package testutil holds helpers shared by package tests.
package testutil

// DefaultRunID is returned by a FixedRunIDGenerator built with an empty ID.
const DefaultRunID = "test-run-default"

// FixedRunIDGenerator returns the same run ID on every call, so golden
// files and ledger rows come out byte-identical between test runs.
//
// Unlike engine.SequenceGenerator it never advances. It is stateless and
// safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a generator for id. An empty id means
// DefaultRunID.
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate implements engine.RunIDGenerator.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
