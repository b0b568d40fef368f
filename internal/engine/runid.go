package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// RunIDGenerator produces the identifier stamped on every translation.
// Implementations must be safe for concurrent use: TranslateBatch calls
// Generate from several workers.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs, so ledger rows
// sort by creation time.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
// Panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns predetermined run IDs in order, then numbered
// fallbacks ("<prefix>-N") once the list is used up. Tests use it for
// byte-stable output and ledger rows.
type SequenceGenerator struct {
	mu     sync.Mutex
	ids    []string
	prefix string
	idx    int
}

// NewSequenceGenerator creates a generator over ids. After the list is
// exhausted it yields "run-<n>" with n counting from len(ids)+1.
func NewSequenceGenerator(ids ...string) *SequenceGenerator {
	return &SequenceGenerator{ids: ids, prefix: "run"}
}

// Generate returns the next ID.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.idx++
	if g.idx <= len(g.ids) {
		return g.ids[g.idx-1]
	}
	return fmt.Sprintf("%s-%d", g.prefix, g.idx)
}
