package jml

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/jmlgen/internal/ir"
)

const indent = "    "

// Render produces the textual outer view of every entity in d, in creation
// order. Rendering is deterministic: identical documents give identical text.
func Render(d *Document) string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = Write(&sb, d)
	return sb.String()
}

// Write renders d to w.
func Write(w io.Writer, d *Document) error {
	for i, e := range d.Entities() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, renderEntity(e)); err != nil {
			return fmt.Errorf("render %s: %w", e.Name, err)
		}
	}
	return nil
}

func renderEntity(e *Entity) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "public %s %s {\n", e.Kind, e.Name)

	if len(e.Ghosts) > 0 {
		sb.WriteString("\n")
		for _, g := range e.Ghosts {
			fmt.Fprintf(&sb, "%s/*@ ghost %s %s; @*/\n", indent, g.Type.Name, g.Name)
		}
	}

	for _, m := range e.Methods {
		sb.WriteString("\n")
		for _, c := range m.Contracts {
			renderContract(&sb, c)
		}
		fmt.Fprintf(&sb, "%svoid %s(%s);\n", indent, m.Name, renderParams(m.Params))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func renderContract(sb *strings.Builder, c ContractBlock) {
	fmt.Fprintf(sb, "%s/*@ normal_behavior\n", indent)
	for _, cl := range []Clause{c.Requires, c.Ensures} {
		fmt.Fprintf(sb, "%s  @   %s %s;\n", indent, cl.Kind, exprString(cl.Expr))
	}
	fmt.Fprintf(sb, "%s  @*/\n", indent)
}

func renderParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.Name + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

func exprString(e Expr) string {
	if e == nil {
		return ""
	}
	return e.String()
}

// Canonical converts d into plain maps and slices for ir.MarshalCanonical.
// Expressions are included in rendered form; the tree shape mirrors the
// entity model so tests can compare at the tree level.
func Canonical(d *Document) map[string]any {
	entities := make([]any, 0, d.Len())
	for _, e := range d.Entities() {
		ghosts := make([]any, len(e.Ghosts))
		for i, g := range e.Ghosts {
			ghosts[i] = map[string]any{
				"name":  g.Name,
				"type":  g.Type.Name,
				"logic": g.Type.Logic.String(),
			}
		}
		methods := make([]any, len(e.Methods))
		for i, m := range e.Methods {
			params := make([]any, len(m.Params))
			for j, p := range m.Params {
				params[j] = map[string]any{"name": p.Name, "type": p.Type.Name}
			}
			contracts := make([]any, len(m.Contracts))
			for j, c := range m.Contracts {
				contracts[j] = map[string]any{
					"requires": exprString(c.Requires.Expr),
					"ensures":  exprString(c.Ensures.Expr),
				}
			}
			methods[i] = map[string]any{
				"name":      m.Name,
				"params":    params,
				"contracts": contracts,
			}
		}
		entities = append(entities, map[string]any{
			"name":    e.Name,
			"kind":    e.Kind.String(),
			"ghosts":  ghosts,
			"methods": methods,
		})
	}
	return map[string]any{"entities": entities}
}

// MarshalCanonical serialises d as RFC 8785 canonical JSON.
func MarshalCanonical(d *Document) ([]byte, error) {
	return ir.MarshalCanonical(Canonical(d))
}
