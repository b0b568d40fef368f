package compiler

import (
	"io"
	"log/slog"

	"github.com/roach88/jmlgen/internal/ir"
	"github.com/roach88/jmlgen/internal/jml"
)

// Run holds the mutable state of one translation: the class-name → entity
// document and the diagnostics collected so far. A Run must not be shared
// between translations; create one per source document.
type Run struct {
	doc     *jml.Document
	symbols *SymbolTable
	terms   *TermTranslator
	logger  *slog.Logger
	diags   []Diagnostic
	current ir.Command // command being compiled, for diagnostic attribution
}

// RunOption configures a Run.
type RunOption func(*Run)

// WithLogger sets the logger for diagnostics. Defaults to a discard logger.
func WithLogger(l *slog.Logger) RunOption {
	return func(r *Run) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSymbols replaces the default symbol table.
func WithSymbols(t *SymbolTable) RunOption {
	return func(r *Run) {
		if t != nil {
			r.symbols = t
		}
	}
}

// NewRun creates a fresh translation context with an empty document.
func NewRun(opts ...RunOption) *Run {
	r := &Run{
		doc:     jml.NewDocument(),
		symbols: DefaultSymbols(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.terms = NewTermTranslator(r.symbols, r.report)
	return r
}

// Document returns the document built so far.
func (r *Run) Document() *jml.Document {
	return r.doc
}

// Diagnostics returns the non-fatal findings in the order they occurred.
func (r *Run) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

func (r *Run) report(d Diagnostic) {
	if r.current != nil {
		d.Command = r.current.Label()
		d.Line = r.current.Position().Line
	}
	r.diags = append(r.diags, d)
	r.logger.Warn("translation diagnostic",
		"code", d.Code,
		"symbol", d.Symbol,
		"command", d.Command,
		"message", d.Message,
	)
}

// Compile processes every DeclareAbstractions command before any
// DefineContract command, regardless of their order in cmds: contracts
// attach methods to entities the abstractions create. Within each pass,
// source order is preserved. The first fatal error stops compilation.
func (r *Run) Compile(cmds []ir.Command) error {
	for _, c := range cmds {
		switch cmd := c.(type) {
		case *ir.DeclareAbstractions:
			if err := r.CompileAbstractions(cmd); err != nil {
				return err
			}
		case *ir.DefineContract:
			// second pass
		default:
			return newError(KindUnsupported, ErrUnknownCommand, "unhandled command type %T", c)
		}
	}

	for _, c := range cmds {
		if cmd, ok := c.(*ir.DefineContract); ok {
			if err := r.CompileContract(cmd); err != nil {
				return err
			}
		}
	}

	r.logger.Debug("compiled document",
		"commands", len(cmds),
		"entities", r.doc.Len(),
		"diagnostics", len(r.diags),
	)
	return nil
}

func (r *Run) enter(c ir.Command) func() {
	r.current = c
	r.logger.Debug("compiling command", "command", c.Label(), "pos", c.Position().String())
	return func() { r.current = nil }
}

