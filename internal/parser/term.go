package parser

import (
	"github.com/roach88/jmlgen/internal/ir"
)

// scope tracks names bound by contract formals and binders so a bare symbol
// can be classified as a Variable or a zero-argument Application.
type scope struct {
	parent *scope
	names  map[string]bool
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]bool)}
}

func (s *scope) bind(name string) {
	s.names[name] = true
}

func (s *scope) bound(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.names[name] {
			return true
		}
	}
	return false
}

var literalKinds = map[AtomKind]ir.LiteralKind{
	AtomNumeral:     ir.LiteralNumeral,
	AtomDecimal:     ir.LiteralDecimal,
	AtomString:      ir.LiteralString,
	AtomHexadecimal: ir.LiteralHexadecimal,
	AtomBinary:      ir.LiteralBinary,
}

// parseTerm converts an s-expression into an ir.Term.
//
//	symbol            bound → Variable, otherwise constant Application
//	literal           Literal
//	(old t)           Old
//	(forall (...) t)  Binder, likewise exists and let
//	(f t...)          Application
func parseTerm(n Node, sc *scope) (ir.Term, error) {
	if !n.IsList {
		if kind, ok := literalKinds[n.Kind]; ok {
			return ir.Literal{Kind: kind, Value: n.Atom}, nil
		}
		if n.Kind != AtomSymbol {
			return nil, errorf(n.Pos, "unexpected %s in term position", n)
		}
		if sc.bound(n.Atom) {
			return ir.Variable{Name: n.Atom}, nil
		}
		return ir.Application{Function: n.Atom}, nil
	}

	if len(n.List) == 0 {
		return nil, errorf(n.Pos, "empty term ()")
	}
	head := n.List[0]
	if head.IsList || head.Kind != AtomSymbol {
		return nil, errorf(head.Pos, "term head must be a symbol, got %s", head)
	}

	switch head.Atom {
	case "old":
		if len(n.List) != 2 {
			return nil, errorf(n.Pos, "old expects 1 argument, got %d", len(n.List)-1)
		}
		arg, err := parseTerm(n.List[1], sc)
		if err != nil {
			return nil, err
		}
		return ir.Old{Argument: arg}, nil
	case "forall", "exists":
		return parseQuantifier(n, ir.BinderKind(head.Atom), sc)
	case "let":
		return parseLet(n, sc)
	}

	app := ir.Application{Function: head.Atom, Arguments: make([]ir.Term, 0, len(n.List)-1)}
	for _, a := range n.List[1:] {
		arg, err := parseTerm(a, sc)
		if err != nil {
			return nil, err
		}
		app.Arguments = append(app.Arguments, arg)
	}
	return app, nil
}

// (forall ((x S)...) body)
func parseQuantifier(n Node, kind ir.BinderKind, sc *scope) (ir.Term, error) {
	if len(n.List) != 3 || !n.List[1].IsList || len(n.List[1].List) == 0 {
		return nil, errorf(n.Pos, "%s expects a non-empty binding list and a body", kind)
	}
	inner := newScope(sc)
	b := ir.Binder{Kind: kind}
	for _, v := range n.List[1].List {
		if !v.IsList || len(v.List) != 2 || v.List[0].IsList {
			return nil, errorf(v.Pos, "%s: expected (name sort), got %s", kind, v)
		}
		sort, err := parseSort(v.List[1])
		if err != nil {
			return nil, err
		}
		b.Bindings = append(b.Bindings, ir.Binding{Name: v.List[0].Atom, Sort: sort})
		inner.bind(v.List[0].Atom)
	}
	body, err := parseTerm(n.List[2], inner)
	if err != nil {
		return nil, err
	}
	b.Body = body
	return b, nil
}

// (let ((x t)...) body)
func parseLet(n Node, sc *scope) (ir.Term, error) {
	if len(n.List) != 3 || !n.List[1].IsList || len(n.List[1].List) == 0 {
		return nil, errorf(n.Pos, "let expects a non-empty binding list and a body")
	}
	inner := newScope(sc)
	b := ir.Binder{Kind: ir.BinderLet}
	for _, v := range n.List[1].List {
		if !v.IsList || len(v.List) != 2 || v.List[0].IsList {
			return nil, errorf(v.Pos, "let: expected (name term), got %s", v)
		}
		// let bindings are parallel: values see the outer scope only.
		val, err := parseTerm(v.List[1], sc)
		if err != nil {
			return nil, err
		}
		b.Bindings = append(b.Bindings, ir.Binding{Name: v.List[0].Atom, Value: val})
		inner.bind(v.List[0].Atom)
	}
	body, err := parseTerm(n.List[2], inner)
	if err != nil {
		return nil, err
	}
	b.Body = body
	return b, nil
}
