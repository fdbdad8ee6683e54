package examplenif

import (
	"github.com/vincenthz/werbolg/lang/exec"
	"github.com/vincenthz/werbolg/lang/ir"
)

// Factory is the exec.Factory for this package's Value set.
type Factory struct{}

func (Factory) MakeFun(f exec.ValueFun) exec.Value { return Fun{F: f} }
func (Factory) MakeDummy() exec.Value              { return Unit{} }
func (Factory) MakeStructure(id ir.ConstrId, fields []exec.Value) exec.Value {
	return Struct{Constr: id, Fields: fields}
}

var _ exec.Factory = Factory{}
