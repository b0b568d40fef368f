package compiler

import (
	"github.com/roach88/jmlgen/internal/ir"
	"github.com/roach88/jmlgen/internal/jml"
)

var logicTypes = map[string]jml.LogicType{
	"Map": jml.LogicMap,
	"Set": jml.LogicSet,
}

// TranslateType maps a sort to a JML type. It never fails: sorts without a
// logic-type meaning pass through as nominal types.
//
// The type is always nominal, built from the head sort name. For Map and Set
// the logic tag is resolved too, but the renderer prints only the nominal
// name, so (Map Key Entry) renders as Map.
func TranslateType(t ir.Type) jml.Type {
	return jml.Type{Name: t.Name, Logic: logicTypes[t.Name]}
}
