package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllAtomsAndLists(t *testing.T) {
	nodes, err := ReadAll(`(a (b c) |quoted sym| :kw) 12`)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	list := nodes[0]
	assert.True(t, list.IsList)
	require.Len(t, list.List, 4)
	assert.True(t, list.List[0].IsSymbol("a"))
	assert.Equal(t, "(b c)", list.List[1].String())
	assert.Equal(t, "quoted sym", list.List[2].Atom)
	assert.Equal(t, AtomSymbol, list.List[2].Kind)
	assert.Equal(t, AtomKeyword, list.List[3].Kind)
	assert.Equal(t, AtomNumeral, nodes[1].Kind)
}

func TestReadAllPositions(t *testing.T) {
	nodes, err := ReadAll("; header\n(a\n   b)")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	assert.Equal(t, 2, nodes[0].Pos.Line)
	assert.Equal(t, 1, nodes[0].Pos.Column)
	assert.Equal(t, 3, nodes[0].List[1].Pos.Line)
	assert.Equal(t, 4, nodes[0].List[1].Pos.Column)
}

func TestReadAllEmptyList(t *testing.T) {
	nodes, err := ReadAll("()")
	require.NoError(t, err)
	assert.True(t, nodes[0].IsList)
	assert.Empty(t, nodes[0].List)
	assert.Equal(t, "()", nodes[0].String())
}

func TestClassifyAtom(t *testing.T) {
	tests := []struct {
		text string
		want AtomKind
	}{
		{"seq.++", AtomSymbol},
		{"=>", AtomSymbol},
		{"0", AtomNumeral},
		{"3.14", AtomDecimal},
		{"#x1F", AtomHexadecimal},
		{"#b0110", AtomBinary},
		{":named", AtomKeyword},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			kind, err := classifyAtom(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}

	for _, bad := range []string{"12ab", "1.", "#b2", "#x"} {
		_, err := classifyAtom(bad)
		assert.Error(t, err, bad)
	}
}
