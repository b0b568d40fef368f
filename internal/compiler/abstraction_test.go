package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jmlgen/internal/ir"
	"github.com/roach88/jmlgen/internal/jml"
)

func TestCompileAbstractionsGhostFieldsInOrder(t *testing.T) {
	r := NewRun(WithLogger(testLogger()))

	err := r.CompileAbstractions(abstractions(1, "Cache",
		field("Cache.entries", sort("Map", sort("Key"), sort("Entry"))),
		field("Cache.uniques", sort("Set", sort("Key"))),
	))
	require.NoError(t, err)

	cache, ok := r.Document().Entity("Cache")
	require.True(t, ok)
	assert.Equal(t, jml.KindInterface, cache.Kind)
	assert.Empty(t, cache.Methods)
	assert.Equal(t, []jml.GhostField{
		{Name: "entries", Type: jml.Type{Name: "Map", Logic: jml.LogicMap}},
		{Name: "uniques", Type: jml.Type{Name: "Set", Logic: jml.LogicSet}},
	}, cache.Ghosts)
}

func TestCompileAbstractionsClassWithoutConstructor(t *testing.T) {
	r := NewRun()

	cmd := &ir.DeclareAbstractions{Arities: []ir.Arity{{Name: "Empty"}}}
	require.NoError(t, r.CompileAbstractions(cmd))

	e, ok := r.Document().Entity("Empty")
	require.True(t, ok)
	assert.Empty(t, e.Ghosts)
}

func TestCompileAbstractionsMultipleClasses(t *testing.T) {
	r := NewRun()

	cmd := &ir.DeclareAbstractions{
		Arities: []ir.Arity{{Name: "Stack"}, {Name: "Queue"}},
		Abstractions: []ir.Abstraction{
			{Constructors: []ir.Constructor{{Name: "Stack", Fields: []ir.Field{field("Stack.items", sort("Seq"))}}}},
			{Constructors: []ir.Constructor{{Name: "Queue", Fields: []ir.Field{
				field("Queue.front", sort("Seq")),
				field("Queue.back", sort("Seq")),
			}}}},
		},
	}
	require.NoError(t, r.CompileAbstractions(cmd))

	entities := r.Document().Entities()
	require.Len(t, entities, 2)
	assert.Equal(t, "Stack", entities[0].Name)
	assert.Equal(t, "Queue", entities[1].Name)
	assert.Len(t, entities[1].Ghosts, 2)
	assert.Equal(t, "front", entities[1].Ghosts[0].Name)
}

func TestCompileAbstractionsRepeatedArityCollapsed(t *testing.T) {
	r := NewRun()

	cmd := &ir.DeclareAbstractions{Arities: []ir.Arity{{Name: "A"}, {Name: "A"}}}
	require.NoError(t, r.CompileAbstractions(cmd))
	assert.Equal(t, 1, r.Document().Len())
}

func TestCompileAbstractionsDuplicateAcrossCommands(t *testing.T) {
	r := NewRun()

	require.NoError(t, r.CompileAbstractions(abstractions(1, "Cache")))
	err := r.CompileAbstractions(abstractions(4, "Cache"))
	require.Error(t, err)
	assert.True(t, IsStructural(err))

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrDuplicateClass, ce.Code)
	assert.Equal(t, "declare-abstractions Cache", ce.Command)
	assert.Equal(t, 4, ce.Pos.Line)
}

func TestCompileAbstractionsFieldNameErrors(t *testing.T) {
	tests := []struct {
		name  string
		field ir.Field
		code  string
	}{
		{"unqualified", field("entries", sort("Map")), ErrInvalidFieldName},
		{"three segments", field("Cache.inner.entries", sort("Map")), ErrInvalidFieldName},
		{"empty field segment", field("Cache.", sort("Map")), ErrInvalidFieldName},
		{"prefix mismatch", field("Store.entries", sort("Map")), ErrFieldClassMismatch},
		{"no sort", field("Cache.entries"), ErrFieldWithoutType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRun()
			err := r.CompileAbstractions(abstractions(2, "Cache", tt.field))
			require.Error(t, err)
			assert.True(t, IsStructural(err))

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.code, ce.Code)
			assert.Contains(t, err.Error(), "declare-abstractions Cache")
		})
	}
}

func TestCompileAbstractionsUndeclaredConstructor(t *testing.T) {
	r := NewRun()

	cmd := &ir.DeclareAbstractions{
		Arities: []ir.Arity{{Name: "A"}},
		Abstractions: []ir.Abstraction{{
			Constructors: []ir.Constructor{{Name: "B", Fields: []ir.Field{field("B.x", sort("Int"))}}},
		}},
	}
	err := r.CompileAbstractions(cmd)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrUndeclaredClass, ce.Code)
}

func TestCompileAbstractionsExtraSortsIgnored(t *testing.T) {
	r := NewRun()

	err := r.CompileAbstractions(abstractions(1, "Pair", field("Pair.left", sort("Int"), sort("Bool"))))
	require.NoError(t, err)

	e, _ := r.Document().Entity("Pair")
	require.Len(t, e.Ghosts, 1)
	assert.Equal(t, "Int", e.Ghosts[0].Type.Name)
}
