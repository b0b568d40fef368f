package compiler

import (
	"errors"
	"fmt"

	"github.com/roach88/jmlgen/internal/ir"
)

// ValidationError is one structural or unsupported-construct finding.
// Field is a path into the command list, e.g.
// "commands[0].abstractions[0].constructors[0].fields[1].name".
type ValidationError struct {
	Field   string    `json:"field"`
	Message string    `json:"message"`
	Code    string    `json:"code"`
	Kind    ErrorKind `json:"kind"`
	Line    int       `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks every command and returns all findings (does not
// fail-fast). It reports the same conditions Run.Compile rejects, so an
// empty result means Compile will succeed.
func Validate(cmds []ir.Command) []ValidationError {
	v := &validator{classes: make(map[string]bool)}

	// Abstractions first, mirroring Compile's two passes.
	for i, c := range cmds {
		if da, ok := c.(*ir.DeclareAbstractions); ok {
			v.declareClasses(i, da)
			v.constructors(i, da)
		}
	}

	for i, c := range cmds {
		switch cmd := c.(type) {
		case *ir.DeclareAbstractions:
		case *ir.DefineContract:
			v.contract(i, cmd)
		default:
			v.add(ValidationError{
				Field:   fmt.Sprintf("commands[%d]", i),
				Message: fmt.Sprintf("unhandled command type %T", c),
				Code:    ErrUnknownCommand,
				Kind:    KindUnsupported,
			})
		}
	}
	return v.errs
}

type validator struct {
	classes map[string]bool
	errs    []ValidationError
}

func (v *validator) add(e ValidationError) {
	v.errs = append(v.errs, e)
}

func (v *validator) declareClasses(i int, cmd *ir.DeclareAbstractions) {
	local := make(map[string]bool, len(cmd.Arities))
	for j, a := range cmd.Arities {
		if local[a.Name] {
			continue
		}
		local[a.Name] = true

		if v.classes[a.Name] {
			v.add(ValidationError{
				Field:   fmt.Sprintf("commands[%d].arities[%d]", i, j),
				Message: fmt.Sprintf("class %q is already declared", a.Name),
				Code:    ErrDuplicateClass,
				Kind:    KindStructural,
				Line:    cmd.Pos.Line,
			})
		}
		v.classes[a.Name] = true
	}
}

func (v *validator) constructors(i int, cmd *ir.DeclareAbstractions) {
	for j, abs := range cmd.Abstractions {
		for k, ctor := range abs.Constructors {
			path := fmt.Sprintf("commands[%d].abstractions[%d].constructors[%d]", i, j, k)
			if !v.classes[ctor.Name] {
				v.add(ValidationError{
					Field:   path + ".name",
					Message: fmt.Sprintf("constructor %q does not name a declared class", ctor.Name),
					Code:    ErrUndeclaredClass,
					Kind:    KindStructural,
					Line:    cmd.Pos.Line,
				})
			}

			for l, f := range ctor.Fields {
				fpath := fmt.Sprintf("%s.fields[%d]", path, l)
				class, _, ok := splitQualified(f.Name)
				switch {
				case !ok:
					v.add(ValidationError{
						Field:   fpath + ".name",
						Message: fmt.Sprintf("field name %q must have the form ClassName.fieldName", f.Name),
						Code:    ErrInvalidFieldName,
						Kind:    KindStructural,
						Line:    cmd.Pos.Line,
					})
				case class != ctor.Name:
					v.add(ValidationError{
						Field:   fpath + ".name",
						Message: fmt.Sprintf("field %q belongs to class %q, not constructor %q", f.Name, class, ctor.Name),
						Code:    ErrFieldClassMismatch,
						Kind:    KindStructural,
						Line:    cmd.Pos.Line,
					})
				}
				if len(f.Types) == 0 {
					v.add(ValidationError{
						Field:   fpath + ".types",
						Message: fmt.Sprintf("field %q declares no sort", f.Name),
						Code:    ErrFieldWithoutType,
						Kind:    KindStructural,
						Line:    cmd.Pos.Line,
					})
				}
			}
		}
	}
}

func (v *validator) contract(i int, cmd *ir.DefineContract) {
	path := fmt.Sprintf("commands[%d]", i)

	class, _, ok := splitQualified(cmd.Name)
	switch {
	case !ok:
		v.add(ValidationError{
			Field:   path + ".name",
			Message: fmt.Sprintf("contract name %q must have the form ClassName.methodName", cmd.Name),
			Code:    ErrInvalidContractName,
			Kind:    KindStructural,
			Line:    cmd.Pos.Line,
		})
	case !v.classes[class]:
		v.add(ValidationError{
			Field:   path + ".name",
			Message: fmt.Sprintf("contract %q refers to undeclared class %q", cmd.Name, class),
			Code:    ErrUndeclaredClass,
			Kind:    KindStructural,
			Line:    cmd.Pos.Line,
		})
	}

	if _, err := inParams(cmd.Formals); err != nil {
		msg := err.Error()
		var ce *CompileError
		if errors.As(err, &ce) {
			msg = ce.Message
		}
		v.add(ValidationError{
			Field:   path + ".formals",
			Message: msg,
			Code:    ErrTooManyOutParams,
			Kind:    KindUnsupported,
			Line:    cmd.Pos.Line,
		})
	}

	for j, pair := range cmd.Contracts {
		v.term(fmt.Sprintf("%s.contracts[%d].pre", path, j), cmd.Pos.Line, pair.Pre)
		v.term(fmt.Sprintf("%s.contracts[%d].post", path, j), cmd.Pos.Line, pair.Post)
	}
}

// term reports every binder and every application with three or more
// arguments reachable from t.
func (v *validator) term(path string, line int, t ir.Term) {
	switch tm := t.(type) {
	case ir.Old:
		v.term(path, line, tm.Argument)
	case ir.Application:
		if len(tm.Arguments) > 2 {
			v.add(ValidationError{
				Field:   path,
				Message: fmt.Sprintf("application of %q to %d arguments cannot be translated", tm.Function, len(tm.Arguments)),
				Code:    ErrNaryApplication,
				Kind:    KindUnsupported,
				Line:    line,
			})
		}
		for _, a := range tm.Arguments {
			v.term(path, line, a)
		}
	case ir.Binder:
		v.add(ValidationError{
			Field:   path,
			Message: fmt.Sprintf("%s terms cannot be translated", tm.Kind),
			Code:    ErrBinderUnsupported,
			Kind:    KindUnsupported,
			Line:    line,
		})
	case ir.Literal, ir.Variable:
	case nil:
		v.add(ValidationError{
			Field:   path,
			Message: "missing term",
			Code:    ErrMalformedInput,
			Kind:    KindMalformedInput,
			Line:    line,
		})
	}
}
