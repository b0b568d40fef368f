package compiler

import (
	"io"
	"log/slog"

	"github.com/roach88/jmlgen/internal/ir"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func app(fn string, args ...ir.Term) ir.Application {
	return ir.Application{Function: fn, Arguments: args}
}

func variable(name string) ir.Variable {
	return ir.Variable{Name: name}
}

func sort(name string, params ...ir.Type) ir.Type {
	return ir.Type{Name: name, Params: params}
}

func abstractions(line int, class string, fields ...ir.Field) *ir.DeclareAbstractions {
	return &ir.DeclareAbstractions{
		Arities: []ir.Arity{{Name: class}},
		Abstractions: []ir.Abstraction{{
			Constructors: []ir.Constructor{{Name: class, Fields: fields}},
		}},
		Pos: ir.Pos{Line: line, Column: 1},
	}
}

func field(name string, types ...ir.Type) ir.Field {
	return ir.Field{Name: name, Types: types}
}

// linkedListAdd is the LinkedList.add contract:
//
//	pre:  true
//	post: (= (LinkedList.content this) (seq.++ (old (LinkedList.content this)) (seq.unit v)))
func linkedListAdd(line int) *ir.DefineContract {
	content := app("LinkedList.content", variable("this"))
	return &ir.DefineContract{
		Name: "LinkedList.add",
		Formals: []ir.Formal{
			{Name: "this", Mode: ir.ModeInOut, Type: sort("LinkedList")},
			{Name: "v", Mode: ir.ModeIn, Type: sort("Int")},
		},
		Contracts: []ir.ContractPair{{
			Pre: app("true"),
			Post: app("=",
				content,
				app("seq.++", ir.Old{Argument: content}, app("seq.unit", variable("v"))),
			),
		}},
		Pos: ir.Pos{Line: line, Column: 1},
	}
}

func linkedListCommands() []ir.Command {
	return []ir.Command{
		abstractions(1, "LinkedList", field("LinkedList.content", sort("Seq", sort("Int")))),
		linkedListAdd(6),
	}
}
