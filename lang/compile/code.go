package compile

import (
	"github.com/vincenthz/werbolg/lang/idvec"
	"github.com/vincenthz/werbolg/lang/ir"
)

// InstructionDiff is a signed distance between two InstructionAddresses,
// encoded into Jump/CondJump arguments and used to shift a lambda's
// code_pos once its code is merged after the main buffer.
type InstructionDiff int32

// CodeRef is a handle to a reserved-but-not-yet-written instruction
// slot, returned by Code.PushTemp and consumed by Code.ResolveTemp.
type CodeRef struct {
	addr ir.InstructionAddress
}

// Code is the append-only instruction buffer built by the compiler. It
// supports reserving a placeholder slot for a forward jump (PushTemp),
// patching it once the jump target is known (ResolveTemp), and merging
// a second Code buffer after this one (used to append lambda bodies
// after the main function bodies).
type Code struct {
	instrs   idvec.Vec[ir.InstructionAddress, Instruction]
	tempOpen int
}

// NewCode returns an empty instruction buffer.
func NewCode() *Code {
	return &Code{instrs: idvec.New[ir.InstructionAddress, Instruction]()}
}

// Push appends instr and returns its address.
func (c *Code) Push(instr Instruction) ir.InstructionAddress {
	return c.instrs.Push(instr)
}

// Position returns the address the next Push will be assigned.
func (c *Code) Position() ir.InstructionAddress {
	return ir.InstructionAddress(c.instrs.Len())
}

// PushTemp reserves a slot, emitting a safe-to-overwrite IgnoreOne as a
// placeholder, and returns a CodeRef to patch later via ResolveTemp.
// This is how forward jumps (If's CondJump/Jump) are handled: the
// target address isn't known until the branch bodies have been lowered.
func (c *Code) PushTemp() CodeRef {
	addr := c.Push(Instruction{Op: IgnoreOne})
	c.tempOpen++
	return CodeRef{addr: addr}
}

// ResolveTemp overwrites the reserved slot at ref with instr. Every
// CodeRef handed out by PushTemp must be resolved before Finalize.
func (c *Code) ResolveTemp(ref CodeRef, instr Instruction) {
	*c.instrs.GetPtr(ref.addr) = instr
	c.tempOpen--
}

// OpenTemps returns the number of PushTemp slots not yet resolved --
// Finalize asserts this is zero.
func (c *Code) OpenTemps() int { return c.tempOpen }

// Len returns the number of instructions currently in the buffer.
func (c *Code) Len() int { return c.instrs.Len() }

// Get returns the instruction at addr.
func (c *Code) Get(addr ir.InstructionAddress) Instruction { return c.instrs.Get(addr) }

// Merge appends other's instructions after c's, returning the
// InstructionDiff every address inside other must be shifted by to
// remain valid in the merged buffer.
func (c *Code) Merge(other *Code) InstructionDiff {
	diff := InstructionDiff(c.instrs.Len())
	other.instrs.Iter(func(_ ir.InstructionAddress, instr Instruction) bool {
		c.instrs.Push(instr)
		return true
	})
	return diff
}

// Vec exposes the underlying instruction vector, consumed to build the
// final CompilationUnit.
func (c *Code) Vec() idvec.Vec[ir.InstructionAddress, Instruction] { return c.instrs }
