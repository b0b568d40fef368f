package ir

import (
	"fmt"
	"strings"
)

// Type is a sort expression such as Int or (Map Key Entry).
// Name is the head sort; Params holds sort arguments in order.
type Type struct {
	Name   string `json:"name"`
	Params []Type `json:"params,omitempty"`
}

// String prints the sort in source notation.
func (t Type) String() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	parts := make([]string, 0, len(t.Params)+1)
	parts = append(parts, t.Name)
	for _, p := range t.Params {
		parts = append(parts, p.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Mode classifies a contract formal.
type Mode int

const (
	ModeIn Mode = iota
	ModeOut
	ModeInOut
)

// ParseMode converts the source keyword (in, out, inout) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "in":
		return ModeIn, nil
	case "out":
		return ModeOut, nil
	case "inout":
		return ModeInOut, nil
	default:
		return 0, fmt.Errorf("unknown parameter mode %q (want in, out or inout)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeIn:
		return "in"
	case ModeOut:
		return "out"
	case ModeInOut:
		return "inout"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Pos is a 1-based line/column position in source text.
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IsValid reports whether the position was set by the parser.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Arity declares an abstraction class and its number of sort parameters.
type Arity struct {
	Name  string
	Arity int
}

// Field is a constructor field. Name is qualified: ClassName.fieldName.
// Types holds the declared sort list; only the first entry is used.
type Field struct {
	Name  string
	Types []Type
}

// Constructor belongs to an Abstraction and exposes ghost state.
type Constructor struct {
	Name   string
	Fields []Field
}

// Abstraction is an abstract datatype with one or more constructors.
type Abstraction struct {
	Params       []string // sort parameters (par ...), currently unused
	Constructors []Constructor
}

// Formal is one contract parameter.
type Formal struct {
	Name string
	Mode Mode
	Type Type
}

// ContractPair is one (precondition, postcondition) scenario.
type ContractPair struct {
	Pre  Term
	Post Term
}

// Command is a top-level Contract-LIB command.
//
// Variants: *DeclareAbstractions, *DefineContract.
type Command interface {
	isCommand()
	// Label identifies the command in diagnostics.
	Label() string
	// Position returns where the command starts in the source.
	Position() Pos
}

// DeclareAbstractions introduces abstraction classes and their constructors.
type DeclareAbstractions struct {
	Arities      []Arity
	Abstractions []Abstraction
	Pos          Pos
}

// DefineContract attaches pre/postcondition pairs to ClassName.methodName.
type DefineContract struct {
	Name      string
	Formals   []Formal
	Contracts []ContractPair
	Pos       Pos
}

func (*DeclareAbstractions) isCommand() {}
func (*DefineContract) isCommand()      {}

func (c *DeclareAbstractions) Label() string {
	names := make([]string, len(c.Arities))
	for i, a := range c.Arities {
		names[i] = a.Name
	}
	return "declare-abstractions " + strings.Join(names, " ")
}

func (c *DefineContract) Label() string {
	return "define-contract " + c.Name
}

func (c *DeclareAbstractions) Position() Pos { return c.Pos }
func (c *DefineContract) Position() Pos      { return c.Pos }
