package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jmlgen/internal/ir"
	"github.com/roach88/jmlgen/internal/jml"
)

func TestCompileContractLinkedListAdd(t *testing.T) {
	r := NewRun(WithLogger(testLogger()))
	require.NoError(t, r.Compile(linkedListCommands()))

	ll, ok := r.Document().Entity("LinkedList")
	require.True(t, ok)
	require.Len(t, ll.Ghosts, 1)
	assert.Equal(t, "content", ll.Ghosts[0].Name)
	assert.Equal(t, "Seq", ll.Ghosts[0].Type.Name)

	require.Len(t, ll.Methods, 1)
	add := ll.Methods[0]
	assert.Equal(t, "add", add.Name)
	assert.Equal(t, []jml.Param{{Name: "v", Type: jml.Type{Name: "Int"}}}, add.Params)

	require.Len(t, add.Contracts, 1)
	block := add.Contracts[0]
	assert.Equal(t, jml.Name{Identifier: "true"}, block.Requires.Expr)

	ensures, ok := block.Ensures.Expr.(jml.Infix)
	require.True(t, ok, "ensures should be an infix equality")
	assert.Equal(t, "==", ensures.Operator)
	assert.Equal(t,
		`(LinkedList.content(this) == \seq_concat(\old(LinkedList.content(this)), \seq_singleton(v)))`,
		ensures.String())
}

func TestCompileContractReportsUnknownSymbols(t *testing.T) {
	r := NewRun()
	require.NoError(t, r.Compile(linkedListCommands()))

	diags := r.Diagnostics()
	require.Len(t, diags, 2, "LinkedList.content occurs twice")
	for _, d := range diags {
		assert.Equal(t, WarnUnknownSymbol, d.Code)
		assert.Equal(t, "LinkedList.content", d.Symbol)
		assert.Equal(t, "define-contract LinkedList.add", d.Command)
		assert.Equal(t, 6, d.Line)
	}
}

func TestCompileContractOnlyInParams(t *testing.T) {
	r := NewRun()
	require.NoError(t, r.CompileAbstractions(abstractions(1, "Map")))

	cmd := &ir.DefineContract{
		Name: "Map.put",
		Formals: []ir.Formal{
			{Name: "this", Mode: ir.ModeInOut, Type: sort("Map")},
			{Name: "k", Mode: ir.ModeIn, Type: sort("Key")},
			{Name: "old_value", Mode: ir.ModeOut, Type: sort("Value")},
			{Name: "v", Mode: ir.ModeIn, Type: sort("Value")},
		},
		Contracts: []ir.ContractPair{{Pre: app("true"), Post: app("true")}},
	}
	require.NoError(t, r.CompileContract(cmd))

	e, _ := r.Document().Entity("Map")
	params := e.Methods[0].Params
	require.Len(t, params, 2)
	assert.Equal(t, "k", params[0].Name)
	assert.Equal(t, "v", params[1].Name)
}

func TestCompileContractOutParamBound(t *testing.T) {
	tests := []struct {
		name    string
		modes   []ir.Mode
		wantErr bool
	}{
		{"none", []ir.Mode{ir.ModeIn}, false},
		{"receiver and result", []ir.Mode{ir.ModeInOut, ir.ModeOut}, false},
		{"two out", []ir.Mode{ir.ModeOut, ir.ModeOut, ir.ModeIn}, false},
		{"three", []ir.Mode{ir.ModeInOut, ir.ModeOut, ir.ModeOut}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRun()
			require.NoError(t, r.CompileAbstractions(abstractions(1, "A")))

			var formals []ir.Formal
			for i, m := range tt.modes {
				formals = append(formals, ir.Formal{Name: string(rune('a' + i)), Mode: m, Type: sort("Int")})
			}
			err := r.CompileContract(&ir.DefineContract{Name: "A.m", Formals: formals})

			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsUnsupported(err))
			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, ErrTooManyOutParams, ce.Code)

			e, _ := r.Document().Entity("A")
			assert.Empty(t, e.Methods, "failed contract must not leave a method behind")
		})
	}
}

func TestCompileContractStackedBlocksInOrder(t *testing.T) {
	r := NewRun()
	require.NoError(t, r.CompileAbstractions(abstractions(1, "Stack", field("Stack.items", sort("Seq")))))

	items := app("Stack.items", variable("this"))
	cmd := &ir.DefineContract{
		Name:    "Stack.pop",
		Formals: []ir.Formal{{Name: "this", Mode: ir.ModeInOut, Type: sort("Stack")}},
		Contracts: []ir.ContractPair{
			{Pre: app("=", items, app("seq.empty")), Post: app("=", items, app("seq.empty"))},
			{Pre: app("not", app("=", items, app("seq.empty"))), Post: app("true")},
		},
	}
	require.NoError(t, r.CompileContract(cmd))

	e, _ := r.Document().Entity("Stack")
	pop := e.Methods[0]
	assert.Empty(t, pop.Params)
	require.Len(t, pop.Contracts, 2)
	assert.Equal(t, `(Stack.items(this) == \seq_empty)`, pop.Contracts[0].Requires.Expr.String())
	assert.Equal(t, `!((Stack.items(this) == \seq_empty))`, pop.Contracts[1].Requires.Expr.String())
	assert.Equal(t, "true", pop.Contracts[1].Ensures.Expr.String())
}

func TestCompileContractMethodsInDeclarationOrder(t *testing.T) {
	r := NewRun()
	cmds := []ir.Command{
		abstractions(1, "C"),
		&ir.DefineContract{Name: "C.first"},
		&ir.DefineContract{Name: "C.second"},
		&ir.DefineContract{Name: "C.third"},
	}
	require.NoError(t, r.Compile(cmds))

	e, _ := r.Document().Entity("C")
	var names []string
	for _, m := range e.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)
}

func TestCompileContractNameErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"add", ErrInvalidContractName},
		{"LinkedList.add.extra", ErrInvalidContractName},
		{".add", ErrInvalidContractName},
		{"Missing.add", ErrUndeclaredClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRun()
			require.NoError(t, r.CompileAbstractions(abstractions(1, "LinkedList")))

			err := r.CompileContract(&ir.DefineContract{Name: tt.name, Pos: ir.Pos{Line: 9, Column: 1}})
			require.Error(t, err)
			assert.True(t, IsStructural(err))

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.code, ce.Code)
			assert.Equal(t, "define-contract "+tt.name, ce.Command)
			assert.Equal(t, 9, ce.Pos.Line)
		})
	}
}

func TestCompileContractTermFailureNamesCommandAndTerm(t *testing.T) {
	r := NewRun()
	require.NoError(t, r.CompileAbstractions(abstractions(1, "S")))

	cmd := &ir.DefineContract{
		Name:      "S.set",
		Contracts: []ir.ContractPair{{Pre: app("true"), Post: app("seq.update", variable("s"), variable("i"), variable("x"))}},
		Pos:       ir.Pos{Line: 3, Column: 1},
	}
	err := r.CompileContract(cmd)
	require.Error(t, err)
	assert.Equal(t,
		"3:1: define-contract S.set: E211: application of \"seq.update\" to 3 arguments cannot be translated (at most 2 supported) in term (seq.update s i x)",
		err.Error())

	e, _ := r.Document().Entity("S")
	assert.Empty(t, e.Methods)
}
