package compiler

import (
	"strings"

	"github.com/roach88/jmlgen/internal/ir"
	"github.com/roach88/jmlgen/internal/jml"
)

// CompileAbstractions creates one interface entity per declared class and
// attaches a ghost field for every constructor field, in declaration order.
func (r *Run) CompileAbstractions(cmd *ir.DeclareAbstractions) error {
	defer r.enter(cmd)()

	if err := r.declareClasses(cmd); err != nil {
		return inCommand(err, cmd)
	}

	for _, abs := range cmd.Abstractions {
		for _, ctor := range abs.Constructors {
			if err := r.compileConstructor(ctor); err != nil {
				return inCommand(err, cmd)
			}
		}
	}
	return nil
}

func (r *Run) declareClasses(cmd *ir.DeclareAbstractions) error {
	seen := make(map[string]bool, len(cmd.Arities))
	for _, a := range cmd.Arities {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true

		if _, ok := r.doc.Add(a.Name, jml.KindInterface); !ok {
			return newError(KindStructural, ErrDuplicateClass, "class %q is already declared", a.Name)
		}
	}
	return nil
}

func (r *Run) compileConstructor(ctor ir.Constructor) error {
	entity, ok := r.doc.Entity(ctor.Name)
	if !ok {
		return newError(KindStructural, ErrUndeclaredClass,
			"constructor %q does not name a declared class", ctor.Name)
	}

	for _, f := range ctor.Fields {
		class, name, err := splitFieldName(f.Name)
		if err != nil {
			return err
		}
		if class != ctor.Name {
			return newError(KindStructural, ErrFieldClassMismatch,
				"field %q belongs to class %q, not constructor %q", f.Name, class, ctor.Name)
		}
		if len(f.Types) == 0 {
			return newError(KindStructural, ErrFieldWithoutType, "field %q declares no sort", f.Name)
		}
		// Only the first sort of the list is used.
		entity.AddGhost(jml.GhostField{Name: name, Type: TranslateType(f.Types[0])})
	}
	return nil
}

func splitFieldName(qualified string) (class, field string, err error) {
	class, field, ok := splitQualified(qualified)
	if !ok {
		return "", "", newError(KindStructural, ErrInvalidFieldName,
			"field name %q must have the form ClassName.fieldName", qualified)
	}
	return class, field, nil
}

// splitQualified splits "A.b" into exactly two non-empty segments.
func splitQualified(s string) (string, string, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
