package jml

import "strings"

// Expr is a target-language expression.
//
// Variants: Name, Call, Infix, Old.
type Expr interface {
	isExpr()
	// String renders the expression in JML surface syntax.
	String() string
}

// Name is a bare identifier reference (variable, constant, literal text).
type Name struct {
	Identifier string
}

// Call is a prefix application f(a, b, ...).
type Call struct {
	Function string
	Args     []Expr
}

// Infix is a binary operator application, rendered parenthesised.
type Infix struct {
	Left     Expr
	Operator string
	Right    Expr
}

// Old is a pre-state reference \old(e).
type Old struct {
	Argument Expr
}

func (Name) isExpr()  {}
func (Call) isExpr()  {}
func (Infix) isExpr() {}
func (Old) isExpr()   {}

func (n Name) String() string {
	return n.Identifier
}

func (c Call) String() string {
	var sb strings.Builder
	sb.WriteString(c.Function)
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (i Infix) String() string {
	return "(" + i.Left.String() + " " + i.Operator + " " + i.Right.String() + ")"
}

func (o Old) String() string {
	return `\old(` + o.Argument.String() + ")"
}
