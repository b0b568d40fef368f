package compiler

import (
	"github.com/roach88/jmlgen/internal/ir"
	"github.com/roach88/jmlgen/internal/jml"
)

// MaxOutParams bounds the out and inout formals of one contract: one
// receiver channel plus one return channel.
const MaxOutParams = 2

// CompileContract appends a method to the entity named by the contract's
// class segment. Only in-mode formals become parameters. Every
// (pre, post) pair becomes its own contract block.
//
// The class must already exist; Compile guarantees this by processing all
// abstractions first.
func (r *Run) CompileContract(cmd *ir.DefineContract) error {
	defer r.enter(cmd)()

	class, methodName, ok := splitQualified(cmd.Name)
	if !ok {
		return inCommand(newError(KindStructural, ErrInvalidContractName,
			"contract name %q must have the form ClassName.methodName", cmd.Name), cmd)
	}

	entity, ok := r.doc.Entity(class)
	if !ok {
		return inCommand(newError(KindStructural, ErrUndeclaredClass,
			"contract %q refers to undeclared class %q", cmd.Name, class), cmd)
	}

	params, err := inParams(cmd.Formals)
	if err != nil {
		return inCommand(err, cmd)
	}

	blocks := make([]jml.ContractBlock, 0, len(cmd.Contracts))
	for _, pair := range cmd.Contracts {
		pre, err := r.terms.Translate(pair.Pre)
		if err != nil {
			return inCommand(err, cmd)
		}
		post, err := r.terms.Translate(pair.Post)
		if err != nil {
			return inCommand(err, cmd)
		}
		blocks = append(blocks, jml.NewContractBlock(pre, post))
	}

	// Attach only once every term translated, so a failure leaves no
	// half-built method behind.
	method := entity.AddMethod(methodName)
	for _, p := range params {
		method.AddParam(p)
	}
	for _, b := range blocks {
		method.AddContract(b)
	}
	return nil
}

func inParams(formals []ir.Formal) ([]jml.Param, error) {
	var params []jml.Param
	outParams := 0
	for _, f := range formals {
		switch f.Mode {
		case ir.ModeOut, ir.ModeInOut:
			outParams++
		case ir.ModeIn:
			params = append(params, jml.Param{Name: f.Name, Type: TranslateType(f.Type)})
		}
	}
	if outParams > MaxOutParams {
		return nil, newError(KindUnsupported, ErrTooManyOutParams,
			"%d out/inout parameters declared, at most %d supported", outParams, MaxOutParams)
	}
	return params, nil
}
