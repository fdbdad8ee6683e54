package compile

import (
	"github.com/vincenthz/werbolg/lang/idvec"
	"github.com/vincenthz/werbolg/lang/ir"
	"github.com/vincenthz/werbolg/lang/symbol"
)

// CompilationUnit is the compiler's complete, immutable output: the
// only handoff between compile-time and the VM. There is no ancillary
// state -- everything the VM needs to execute any function lives here.
type CompilationUnit[L comparable] struct {
	Lits    idvec.Vec[ir.LitId, L]
	Constrs *symbol.TableData[ir.ConstrId, ConstrDef]
	Funs    idvec.Vec[ir.FunId, FunDef]
	FunsTbl *symbol.Table[ir.FunId]
	Code    idvec.Vec[ir.InstructionAddress, Instruction]
}
