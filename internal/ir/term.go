package ir

import (
	"strings"
)

// Term is a logic term as produced by the parser.
//
// Variants: Old, Application, Binder, Literal, Variable.
// Consumers should switch exhaustively over these five types.
type Term interface {
	isTerm()
	String() string
}

// Old denotes the pre-state value of its argument.
type Old struct {
	Argument Term
}

// Application applies a theory function or user symbol to arguments.
// A zero-argument application is a constant (e.g. true, seq.empty).
type Application struct {
	Function  string
	Arguments []Term
}

// BinderKind identifies the quantifier or binding form of a Binder.
type BinderKind string

const (
	BinderForall BinderKind = "forall"
	BinderExists BinderKind = "exists"
	BinderLet    BinderKind = "let"
)

// Binding is one variable introduced by a Binder.
// For let-binders Value is set; for quantifiers Sort is set.
type Binding struct {
	Name  string
	Sort  Type
	Value Term
}

// Binder is a quantified or let-bound term.
type Binder struct {
	Kind     BinderKind
	Bindings []Binding
	Body     Term
}

// LiteralKind classifies the lexical form of a Literal.
type LiteralKind string

const (
	LiteralNumeral     LiteralKind = "numeral"
	LiteralDecimal     LiteralKind = "decimal"
	LiteralString      LiteralKind = "string"
	LiteralHexadecimal LiteralKind = "hexadecimal"
	LiteralBinary      LiteralKind = "binary"
)

// Literal is a constant in its printed source form.
type Literal struct {
	Kind  LiteralKind
	Value string
}

// Variable references a formal parameter or bound name.
type Variable struct {
	Name string
}

func (Old) isTerm()         {}
func (Application) isTerm() {}
func (Binder) isTerm()      {}
func (Literal) isTerm()     {}
func (Variable) isTerm()    {}

func (o Old) String() string {
	return "(old " + termString(o.Argument) + ")"
}

func (a Application) String() string {
	if len(a.Arguments) == 0 {
		return a.Function
	}
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(a.Function)
	for _, arg := range a.Arguments {
		sb.WriteByte(' ')
		sb.WriteString(termString(arg))
	}
	sb.WriteByte(')')
	return sb.String()
}

func (b Binder) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(string(b.Kind))
	sb.WriteString(" (")
	for i, bnd := range b.Bindings {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('(')
		sb.WriteString(bnd.Name)
		sb.WriteByte(' ')
		if bnd.Value != nil {
			sb.WriteString(bnd.Value.String())
		} else {
			sb.WriteString(bnd.Sort.String())
		}
		sb.WriteByte(')')
	}
	sb.WriteString(") ")
	sb.WriteString(termString(b.Body))
	sb.WriteByte(')')
	return sb.String()
}

func (l Literal) String() string {
	return l.Value
}

func (v Variable) String() string {
	return v.Name
}

func termString(t Term) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
