package compiler

import (
	"errors"
	"fmt"

	"github.com/roach88/jmlgen/internal/ir"
)

// ErrorKind classifies fatal translation errors.
type ErrorKind string

const (
	// KindMalformedInput wraps syntax errors from the parser.
	KindMalformedInput ErrorKind = "MALFORMED_INPUT"

	// KindStructural covers dotted-name mismatches, duplicate classes and
	// references to undeclared classes.
	KindStructural ErrorKind = "STRUCTURAL_INVARIANT_VIOLATION"

	// KindUnsupported covers binder terms, applications with three or more
	// arguments, and contracts with more than two output parameters.
	KindUnsupported ErrorKind = "UNSUPPORTED_CONSTRUCT"
)

// Error codes (E200-E299). Warnings use W300-W399 (see Diagnostic).
const (
	ErrMalformedInput      = "E201" // parser rejected the source
	ErrInvalidFieldName    = "E202" // field name is not ClassName.fieldName
	ErrFieldClassMismatch  = "E203" // field prefix differs from constructor class
	ErrDuplicateClass      = "E204" // class declared twice in one run
	ErrUndeclaredClass     = "E205" // constructor or contract names an unknown class
	ErrInvalidContractName = "E206" // contract name is not ClassName.methodName
	ErrFieldWithoutType    = "E207" // constructor field declares no sort
	ErrBinderUnsupported   = "E210" // quantifier or let term
	ErrNaryApplication     = "E211" // application with three or more arguments
	ErrTooManyOutParams    = "E212" // more than two out/inout formals
	ErrUnknownCommand      = "E213" // command variant the compiler does not handle
)

// CompileError is a fatal translation error. It identifies the offending
// command and, for term-level failures, the offending term.
type CompileError struct {
	Kind    ErrorKind
	Code    string
	Command string // command label, e.g. "define-contract LinkedList.add"
	Term    string // source form of the offending term, if any
	Message string
	Pos     ir.Pos
	Err     error // underlying error (optional)
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Term != "" {
		msg += fmt.Sprintf(" in term %s", e.Term)
	}
	if e.Command != "" {
		msg = fmt.Sprintf("%s: %s", e.Command, msg)
	}
	if e.Pos.IsValid() {
		msg = fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, msg)
	}
	return msg
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, code, format string, args ...any) *CompileError {
	return &CompileError{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// inCommand attributes err to cmd unless it already names a command.
func inCommand(err error, cmd ir.Command) error {
	var ce *CompileError
	if errors.As(err, &ce) && ce.Command == "" {
		ce.Command = cmd.Label()
		ce.Pos = cmd.Position()
	}
	return err
}

// MalformedInput wraps a parser error so every fatal error the engine
// returns is a *CompileError.
func MalformedInput(err error) *CompileError {
	return &CompileError{
		Kind:    KindMalformedInput,
		Code:    ErrMalformedInput,
		Message: err.Error(),
		Err:     err,
	}
}

// KindOf returns the ErrorKind of err, or "" if err is not a CompileError.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) ErrorKind {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsStructural reports whether err is a structural invariant violation.
func IsStructural(err error) bool {
	return KindOf(err) == KindStructural
}

// IsUnsupported reports whether err is an unsupported construct.
func IsUnsupported(err error) bool {
	return KindOf(err) == KindUnsupported
}

// IsMalformedInput reports whether err came from the parser.
func IsMalformedInput(err error) bool {
	return KindOf(err) == KindMalformedInput
}
