package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentHashDeterminism(t *testing.T) {
	src := "(declare-abstractions ((Cache 0)) (((Cache (Cache.entries Map)))))"

	h1 := DocumentHash(src)
	h2 := DocumentHash(src)

	assert.Equal(t, h1, h2, "DocumentHash must be deterministic")
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestDocumentHashChangesWithInput(t *testing.T) {
	assert.NotEqual(t, DocumentHash("(a)"), DocumentHash("(b)"))
}

func TestDocumentHashNormalizesNFC(t *testing.T) {
	assert.Equal(t, DocumentHash("caf\u00e9"), DocumentHash("cafe\u0301"))
}

func TestOutputHashDependsOnView(t *testing.T) {
	outer, err := OutputHash("outer", "interface X {}")
	require.NoError(t, err)
	inner, err := OutputHash("inner", "interface X {}")
	require.NoError(t, err)

	assert.NotEqual(t, outer, inner)
	assert.NotEqual(t, outer, DocumentHash("interface X {}"), "domains must not collide")
}
