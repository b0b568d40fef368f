package engine

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/roach88/jmlgen/internal/compiler"
	"github.com/roach88/jmlgen/internal/ir"
	"github.com/roach88/jmlgen/internal/jml"
	"github.com/roach88/jmlgen/internal/parser"
)

// View selects which rendering of a contract document to produce.
type View string

const (
	// ViewOuter is the client-facing interface with ghost fields and contracts.
	ViewOuter View = "outer"
	// ViewInner is the implementation view, produced by an InnerViewGenerator.
	ViewInner View = "inner"
)

// ParseView converts a flag or config value to a View.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewOuter, ViewInner:
		return View(s), nil
	default:
		return "", &RuntimeError{
			Code:    ErrCodeUnknownView,
			Message: fmt.Sprintf("unknown view %q (want outer or inner)", s),
		}
	}
}

// InnerViewGenerator produces the implementation view for a parsed script.
type InnerViewGenerator interface {
	GenerateInner(script *parser.Script) (string, error)
}

type unavailableInner struct{}

func (unavailableInner) GenerateInner(*parser.Script) (string, error) {
	return "", ErrInnerViewUnavailable
}

// Result is the outcome of one successful translation.
type Result struct {
	RunID       string
	View        View
	Output      string
	Document    *jml.Document // nil for ViewInner
	Diagnostics []compiler.Diagnostic
	Skipped     []parser.SkippedCommand
	InputHash   string
	OutputHash  string
}

// Engine translates Contract-LIB documents. It is safe for concurrent use.
type Engine struct {
	inner   InnerViewGenerator
	runIDs  RunIDGenerator
	symbols *compiler.SymbolTable
	logger  *slog.Logger
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithInnerView installs the collaborator used for ViewInner.
func WithInnerView(g InnerViewGenerator) Option {
	return func(e *Engine) {
		if g != nil {
			e.inner = g
		}
	}
}

// WithRunIDs replaces the UUIDv7 run-ID generator.
func WithRunIDs(g RunIDGenerator) Option {
	return func(e *Engine) {
		if g != nil {
			e.runIDs = g
		}
	}
}

// WithSymbols replaces the default symbol table.
func WithSymbols(t *compiler.SymbolTable) Option {
	return func(e *Engine) {
		if t != nil {
			e.symbols = t
		}
	}
}

// WithLogger sets the engine logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWorkers bounds TranslateBatch concurrency.
// Default: runtime.GOMAXPROCS(0). Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.workers = n
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		inner:   unavailableInner{},
		runIDs:  UUIDv7Generator{},
		symbols: compiler.DefaultSymbols(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Translate runs source through parse, compile and render.
//
// It returns either a complete Result or an error and never partial
// output. Syntax errors come back as *compiler.CompileError with
// KindMalformedInput; structural and unsupported constructs as
// *compiler.CompileError of their kind. Unknown symbols are reported in
// Result.Diagnostics and do not fail the run.
func (e *Engine) Translate(source string, view View) (*Result, error) {
	runID := e.runIDs.Generate()
	log := e.logger.With("run_id", runID, "view", string(view))

	script, err := parser.Parse(source)
	if err != nil {
		log.Debug("parse failed", "error", err)
		return nil, compiler.MalformedInput(err)
	}

	res := &Result{
		RunID:     runID,
		View:      view,
		Skipped:   script.Skipped,
		InputHash: ir.DocumentHash(source),
	}

	switch view {
	case ViewOuter:
		run := compiler.NewRun(compiler.WithLogger(log), compiler.WithSymbols(e.symbols))
		if err := run.Compile(script.Commands); err != nil {
			log.Debug("compile failed", "error", err)
			return nil, err
		}
		res.Document = run.Document()
		res.Diagnostics = run.Diagnostics()
		res.Output = jml.Render(res.Document)
	case ViewInner:
		out, err := e.inner.GenerateInner(script)
		if err != nil {
			return nil, &RuntimeError{
				Code:    ErrCodeInnerView,
				Message: "inner view generation failed",
				RunID:   runID,
				Err:     err,
			}
		}
		res.Output = out
	default:
		_, err := ParseView(string(view))
		return nil, err
	}

	res.OutputHash, err = ir.OutputHash(string(view), res.Output)
	if err != nil {
		return nil, fmt.Errorf("hash output: %w", err)
	}

	log.Info("translated document",
		"commands", len(script.Commands),
		"skipped", len(script.Skipped),
		"diagnostics", len(res.Diagnostics),
		"input_hash", res.InputHash,
	)
	return res, nil
}
