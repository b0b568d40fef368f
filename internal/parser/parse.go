// Package parser reads Contract-LIB source text into the logic IR.
//
// Only declare-abstractions and define-contract produce commands. Plain
// SMT-LIB commands that may share a file with them (set-logic, declare-sort,
// define-fun, ...) are recognised and skipped; anything else is a syntax
// error.
package parser

import (
	"strconv"

	"github.com/roach88/jmlgen/internal/ir"
)

// Script is the parsed form of one source document.
type Script struct {
	Commands []ir.Command
	// Skipped lists recognised commands that carry no contract meaning.
	Skipped []SkippedCommand
}

// SkippedCommand records a command the parser recognised but ignored.
type SkippedCommand struct {
	Name string
	Pos  ir.Pos
}

var ignoredCommands = map[string]bool{
	"set-logic":         true,
	"set-option":        true,
	"set-info":          true,
	"declare-sort":      true,
	"define-sort":       true,
	"declare-datatype":  true,
	"declare-datatypes": true,
	"declare-const":     true,
	"declare-fun":       true,
	"define-fun":        true,
	"define-fun-rec":    true,
	"define-funs-rec":   true,
	"assert":            true,
	"check-sat":         true,
	"get-model":         true,
	"exit":              true,
}

// Parse reads src into a Script. The first syntax error aborts parsing.
func Parse(src string) (*Script, error) {
	nodes, err := ReadAll(src)
	if err != nil {
		return nil, err
	}

	script := &Script{}
	for _, n := range nodes {
		if !n.IsList || len(n.List) == 0 || n.List[0].IsList {
			return nil, errorf(n.Pos, "expected a command, got %s", n)
		}
		head := n.List[0].Atom
		switch {
		case head == "declare-abstractions":
			cmd, err := parseDeclareAbstractions(n)
			if err != nil {
				return nil, err
			}
			script.Commands = append(script.Commands, cmd)
		case head == "define-contract":
			cmd, err := parseDefineContract(n)
			if err != nil {
				return nil, err
			}
			script.Commands = append(script.Commands, cmd)
		case ignoredCommands[head]:
			script.Skipped = append(script.Skipped, SkippedCommand{Name: head, Pos: n.Pos})
		default:
			return nil, errorf(n.Pos, "unknown command %q", head)
		}
	}
	return script, nil
}

// (declare-abstractions ((Name arity)...) (datatype_dec...))
func parseDeclareAbstractions(n Node) (*ir.DeclareAbstractions, error) {
	if len(n.List) != 3 {
		return nil, errorf(n.Pos, "declare-abstractions expects 2 arguments, got %d", len(n.List)-1)
	}
	arityList, decls := n.List[1], n.List[2]
	if !arityList.IsList {
		return nil, errorf(arityList.Pos, "declare-abstractions: expected list of (name arity) pairs")
	}
	if !decls.IsList {
		return nil, errorf(decls.Pos, "declare-abstractions: expected list of datatype declarations")
	}

	cmd := &ir.DeclareAbstractions{Pos: n.Pos}
	for _, a := range arityList.List {
		if !a.IsList || len(a.List) != 2 || a.List[0].IsList || a.List[0].Kind != AtomSymbol || a.List[1].Kind != AtomNumeral || a.List[1].IsList {
			return nil, errorf(a.Pos, "declare-abstractions: expected (name arity), got %s", a)
		}
		arity, err := strconv.Atoi(a.List[1].Atom)
		if err != nil {
			return nil, errorf(a.List[1].Pos, "declare-abstractions: arity %q: %v", a.List[1].Atom, err)
		}
		cmd.Arities = append(cmd.Arities, ir.Arity{Name: a.List[0].Atom, Arity: arity})
	}

	for _, d := range decls.List {
		abs, err := parseDatatypeDec(d)
		if err != nil {
			return nil, err
		}
		cmd.Abstractions = append(cmd.Abstractions, abs)
	}
	return cmd, nil
}

// datatype_dec := (constructor_dec+) | (par (sym+) (constructor_dec+))
func parseDatatypeDec(d Node) (ir.Abstraction, error) {
	var abs ir.Abstraction
	if !d.IsList || len(d.List) == 0 {
		return abs, errorf(d.Pos, "expected datatype declaration, got %s", d)
	}

	ctors := d.List
	if d.List[0].IsSymbol("par") {
		if len(d.List) != 3 || !d.List[1].IsList || !d.List[2].IsList {
			return abs, errorf(d.Pos, "malformed par declaration %s", d)
		}
		for _, p := range d.List[1].List {
			if p.IsList || p.Kind != AtomSymbol {
				return abs, errorf(p.Pos, "sort parameter must be a symbol, got %s", p)
			}
			abs.Params = append(abs.Params, p.Atom)
		}
		ctors = d.List[2].List
	}

	for _, c := range ctors {
		ctor, err := parseConstructor(c)
		if err != nil {
			return abs, err
		}
		abs.Constructors = append(abs.Constructors, ctor)
	}
	if len(abs.Constructors) == 0 {
		return abs, errorf(d.Pos, "abstraction must declare at least one constructor")
	}
	return abs, nil
}

// constructor_dec := (Name (selector sort+)*)
func parseConstructor(c Node) (ir.Constructor, error) {
	var ctor ir.Constructor
	if !c.IsList || len(c.List) == 0 || c.List[0].IsList || c.List[0].Kind != AtomSymbol {
		return ctor, errorf(c.Pos, "expected (Constructor fields...), got %s", c)
	}
	ctor.Name = c.List[0].Atom
	for _, f := range c.List[1:] {
		if !f.IsList || len(f.List) < 2 || f.List[0].IsList || f.List[0].Kind != AtomSymbol {
			return ctor, errorf(f.Pos, "expected (field sort), got %s", f)
		}
		field := ir.Field{Name: f.List[0].Atom}
		for _, s := range f.List[1:] {
			t, err := parseSort(s)
			if err != nil {
				return ctor, err
			}
			field.Types = append(field.Types, t)
		}
		ctor.Fields = append(ctor.Fields, field)
	}
	return ctor, nil
}

// (define-contract Name ((param (mode sort))...) ((pre post)...))
func parseDefineContract(n Node) (*ir.DefineContract, error) {
	if len(n.List) != 4 {
		return nil, errorf(n.Pos, "define-contract expects 3 arguments, got %d", len(n.List)-1)
	}
	nameNode, formals, contracts := n.List[1], n.List[2], n.List[3]
	if nameNode.IsList || nameNode.Kind != AtomSymbol {
		return nil, errorf(nameNode.Pos, "define-contract: expected contract name, got %s", nameNode)
	}
	if !formals.IsList {
		return nil, errorf(formals.Pos, "define-contract %s: expected formal list", nameNode.Atom)
	}
	if !contracts.IsList {
		return nil, errorf(contracts.Pos, "define-contract %s: expected contract list", nameNode.Atom)
	}

	cmd := &ir.DefineContract{Name: nameNode.Atom, Pos: n.Pos}
	sc := newScope(nil)
	for _, f := range formals.List {
		formal, err := parseFormal(f)
		if err != nil {
			return nil, err
		}
		cmd.Formals = append(cmd.Formals, formal)
		sc.bind(formal.Name)
	}

	for _, c := range contracts.List {
		if !c.IsList || len(c.List) != 2 {
			return nil, errorf(c.Pos, "define-contract %s: expected (precondition postcondition), got %s", cmd.Name, c)
		}
		pre, err := parseTerm(c.List[0], sc)
		if err != nil {
			return nil, err
		}
		post, err := parseTerm(c.List[1], sc)
		if err != nil {
			return nil, err
		}
		cmd.Contracts = append(cmd.Contracts, ir.ContractPair{Pre: pre, Post: post})
	}
	return cmd, nil
}

// formal := (name (mode sort))
func parseFormal(f Node) (ir.Formal, error) {
	var formal ir.Formal
	if !f.IsList || len(f.List) != 2 || f.List[0].IsList || !f.List[1].IsList || len(f.List[1].List) != 2 || f.List[1].List[0].IsList {
		return formal, errorf(f.Pos, "expected (name (mode sort)), got %s", f)
	}
	mode, err := ir.ParseMode(f.List[1].List[0].Atom)
	if err != nil {
		return formal, errorf(f.List[1].List[0].Pos, "%v", err)
	}
	sort, err := parseSort(f.List[1].List[1])
	if err != nil {
		return formal, err
	}
	return ir.Formal{Name: f.List[0].Atom, Mode: mode, Type: sort}, nil
}

// sort := symbol | (symbol sort+)
func parseSort(s Node) (ir.Type, error) {
	if !s.IsList {
		if s.Kind != AtomSymbol {
			return ir.Type{}, errorf(s.Pos, "expected sort, got %s", s)
		}
		return ir.Type{Name: s.Atom}, nil
	}
	if len(s.List) < 2 || s.List[0].IsList || s.List[0].Kind != AtomSymbol {
		return ir.Type{}, errorf(s.Pos, "expected parametric sort (Name args...), got %s", s)
	}
	t := ir.Type{Name: s.List[0].Atom}
	for _, p := range s.List[1:] {
		pt, err := parseSort(p)
		if err != nil {
			return ir.Type{}, err
		}
		t.Params = append(t.Params, pt)
	}
	return t, nil
}
