package parser

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/roach88/jmlgen/internal/ir"
)

// AtomKind classifies an s-expression atom.
type AtomKind int

const (
	AtomSymbol AtomKind = iota
	AtomKeyword
	AtomNumeral
	AtomDecimal
	AtomString
	AtomHexadecimal
	AtomBinary
)

// Node is one s-expression: an atom or a parenthesised list.
type Node struct {
	Pos  ir.Pos
	Kind AtomKind
	Atom string // atom text; empty for lists
	List []Node
	// IsList distinguishes () from an atom.
	IsList bool
}

// IsSymbol reports whether n is the symbol atom s.
func (n Node) IsSymbol(s string) bool {
	return !n.IsList && n.Kind == AtomSymbol && n.Atom == s
}

func (n Node) String() string {
	if !n.IsList {
		return n.Atom
	}
	parts := make([]string, len(n.List))
	for i, c := range n.List {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// SyntaxError reports malformed source text.
type SyntaxError struct {
	Pos     ir.Pos
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%d:%d: syntax error: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return "syntax error: " + e.Message
}

func errorf(pos ir.Pos, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// reader turns source text into top-level s-expressions.
type reader struct {
	src  []rune
	off  int
	line int
	col  int
}

// ReadAll reads every top-level s-expression in src.
func ReadAll(src string) ([]Node, error) {
	r := &reader{src: []rune(src), line: 1, col: 1}
	var nodes []Node
	for {
		r.skipSpace()
		if r.eof() {
			return nodes, nil
		}
		n, err := r.read()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}

func (r *reader) eof() bool { return r.off >= len(r.src) }

func (r *reader) peek() rune { return r.src[r.off] }

func (r *reader) pos() ir.Pos { return ir.Pos{Line: r.line, Column: r.col} }

func (r *reader) next() rune {
	c := r.src[r.off]
	r.off++
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c
}

// skipSpace skips whitespace and ; comments.
func (r *reader) skipSpace() {
	for !r.eof() {
		c := r.peek()
		switch {
		case unicode.IsSpace(c):
			r.next()
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.next()
			}
		default:
			return
		}
	}
}

func (r *reader) read() (Node, error) {
	start := r.pos()
	switch c := r.peek(); c {
	case '(':
		r.next()
		list := Node{Pos: start, IsList: true, List: []Node{}}
		for {
			r.skipSpace()
			if r.eof() {
				return Node{}, errorf(start, "unclosed '('")
			}
			if r.peek() == ')' {
				r.next()
				return list, nil
			}
			child, err := r.read()
			if err != nil {
				return Node{}, err
			}
			list.List = append(list.List, child)
		}
	case ')':
		return Node{}, errorf(start, "unexpected ')'")
	case '"':
		return r.readString(start)
	case '|':
		return r.readQuotedSymbol(start)
	default:
		return r.readAtom(start)
	}
}

// readString reads an SMT-LIB string literal; "" inside denotes one quote.
func (r *reader) readString(start ir.Pos) (Node, error) {
	var sb strings.Builder
	sb.WriteRune(r.next())
	for {
		if r.eof() {
			return Node{}, errorf(start, "unterminated string literal")
		}
		c := r.next()
		sb.WriteRune(c)
		if c == '"' {
			if !r.eof() && r.peek() == '"' {
				sb.WriteRune(r.next())
				continue
			}
			return Node{Pos: start, Kind: AtomString, Atom: sb.String()}, nil
		}
	}
}

func (r *reader) readQuotedSymbol(start ir.Pos) (Node, error) {
	r.next()
	var sb strings.Builder
	for {
		if r.eof() {
			return Node{}, errorf(start, "unterminated quoted symbol")
		}
		c := r.next()
		if c == '|' {
			return Node{Pos: start, Kind: AtomSymbol, Atom: sb.String()}, nil
		}
		sb.WriteRune(c)
	}
}

func (r *reader) readAtom(start ir.Pos) (Node, error) {
	var sb strings.Builder
	for !r.eof() {
		c := r.peek()
		if unicode.IsSpace(c) || c == '(' || c == ')' || c == ';' || c == '"' || c == '|' {
			break
		}
		sb.WriteRune(r.next())
	}
	text := sb.String()
	if text == "" {
		return Node{}, errorf(start, "unexpected character %q", r.peek())
	}
	kind, err := classifyAtom(text)
	if err != nil {
		return Node{}, errorf(start, "%v", err)
	}
	return Node{Pos: start, Kind: kind, Atom: text}, nil
}

func classifyAtom(text string) (AtomKind, error) {
	switch {
	case strings.HasPrefix(text, ":"):
		return AtomKeyword, nil
	case strings.HasPrefix(text, "#x"):
		if len(text) == 2 || strings.TrimLeft(text[2:], "0123456789abcdefABCDEF") != "" {
			return 0, fmt.Errorf("malformed hexadecimal literal %q", text)
		}
		return AtomHexadecimal, nil
	case strings.HasPrefix(text, "#b"):
		if len(text) == 2 || strings.TrimLeft(text[2:], "01") != "" {
			return 0, fmt.Errorf("malformed binary literal %q", text)
		}
		return AtomBinary, nil
	case unicode.IsDigit(rune(text[0])):
		intPart, frac, isDecimal := strings.Cut(text, ".")
		if strings.TrimLeft(intPart, "0123456789") != "" {
			return 0, fmt.Errorf("malformed numeral %q", text)
		}
		if !isDecimal {
			return AtomNumeral, nil
		}
		if frac == "" || strings.TrimLeft(frac, "0123456789") != "" {
			return 0, fmt.Errorf("malformed decimal %q", text)
		}
		return AtomDecimal, nil
	default:
		return AtomSymbol, nil
	}
}
