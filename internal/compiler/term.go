package compiler

import (
	"fmt"

	"github.com/roach88/jmlgen/internal/ir"
	"github.com/roach88/jmlgen/internal/jml"
)

// TermTranslator lowers logic terms into JML expressions.
// It holds no per-term state; the only lookup it performs is in its
// SymbolTable.
type TermTranslator struct {
	symbols *SymbolTable
	report  Reporter
}

// NewTermTranslator returns a translator over symbols. report receives an
// unknown-symbol diagnostic for every application whose function has no
// table entry; it may be nil.
func NewTermTranslator(symbols *SymbolTable, report Reporter) *TermTranslator {
	if symbols == nil {
		symbols = DefaultSymbols()
	}
	if report == nil {
		report = func(Diagnostic) {}
	}
	return &TermTranslator{symbols: symbols, report: report}
}

// Translate lowers term. Binders and applications with three or more
// arguments fail with KindUnsupported; no partial expression is returned.
func (t *TermTranslator) Translate(term ir.Term) (jml.Expr, error) {
	switch tm := term.(type) {
	case ir.Old:
		arg, err := t.Translate(tm.Argument)
		if err != nil {
			return nil, err
		}
		return jml.Old{Argument: arg}, nil
	case ir.Application:
		return t.translateApplication(tm)
	case ir.Binder:
		err := newError(KindUnsupported, ErrBinderUnsupported, "%s terms cannot be translated", tm.Kind)
		err.Term = tm.String()
		return nil, err
	case ir.Literal:
		// Printed form is used verbatim; no literal suffixes are added.
		return jml.Name{Identifier: tm.Value}, nil
	case ir.Variable:
		// Not checked against the formals in scope.
		return jml.Name{Identifier: tm.Name}, nil
	case nil:
		return nil, newError(KindMalformedInput, ErrMalformedInput, "missing term")
	default:
		return nil, fmt.Errorf("translate term: unhandled term type %T", term)
	}
}

// translateApplication dispatches on the translated argument count:
//
//	0 → bare name, 1 → prefix call, 2 → infix or call, ≥3 → error.
func (t *TermTranslator) translateApplication(app ir.Application) (jml.Expr, error) {
	args := make([]jml.Expr, 0, len(app.Arguments))
	for _, a := range app.Arguments {
		e, err := t.Translate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}

	name := app.Function
	fn, known := t.symbols.Lookup(app.Function)
	if known {
		name = fn.Name
	} else {
		t.report(Diagnostic{
			Code:    WarnUnknownSymbol,
			Message: fmt.Sprintf("no JML translation for function %q; using it verbatim", app.Function),
			Symbol:  app.Function,
		})
	}

	switch len(args) {
	case 0:
		return jml.Name{Identifier: name}, nil
	case 1:
		return jml.Call{Function: name, Args: args}, nil
	case 2:
		if known && fn.Infix {
			return jml.Infix{Left: args[0], Operator: name, Right: args[1]}, nil
		}
		return jml.Call{Function: name, Args: args}, nil
	default:
		// n-ary and/or would need flattening into nested binary operators;
		// that is not done.
		err := newError(KindUnsupported, ErrNaryApplication,
			"application of %q to %d arguments cannot be translated (at most 2 supported)", app.Function, len(args))
		err.Term = app.String()
		return nil, err
	}
}
