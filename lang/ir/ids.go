package ir

// FunId, GlobalId, NifId, LitId, ConstrId and InstructionAddress are
// dense integer handles: each indexes a corresponding idvec.Vec rather
// than pointing directly at a compiled value, so the compiled form has
// no reference cycles.
type (
	FunId              uint32
	GlobalId           uint32
	NifId              uint32
	LitId              uint32
	ConstrId           uint32
	InstructionAddress uint32
)

// CallArity is the number of arguments to a call, exclusive of the
// callee, bounded to 255.
type CallArity uint8

// LocalStackSize is the exact number of value-stack slots a function's
// frame must reserve for its locals, computed by LocalBindings once a
// function's code generation has completed.
type LocalStackSize uint16

// ParamBindIndex indexes a function's parameter list.
type ParamBindIndex uint8

// LocalBindIndex indexes a function's local-variable slots.
type LocalBindIndex uint16
