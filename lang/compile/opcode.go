package compile

import "fmt"

// Opcode is the tag of a compiled Instruction. The VM dispatches every
// opcode in a single step; see machine.go in the exec package for the
// switch that interprets them.
type Opcode uint8

const ( //nolint:revive
	PushLiteral Opcode = iota
	FetchGlobal
	FetchNif
	FetchFun
	FetchStackParam
	FetchStackLocal
	LocalBind
	IgnoreOne
	AccessField
	Call
	TailCall
	Jump
	CondJump
	Ret

	// MakeStructure is not part of the instruction table's original
	// enumeration: that table never names an opcode for materializing a
	// structure, and spec.md §9 leaves List/Sequence semantics to the
	// host via CompilationParams.SequenceConstructor. MakeStructure fills
	// that gap the way the teacher's MAKETUPLE/MAKEARRAY/MAKEMAP opcodes
	// do: pop N operands, push one aggregate value.
	MakeStructure
)

var opcodeNames = [...]string{
	PushLiteral:      "push_literal",
	FetchGlobal:      "fetch_global",
	FetchNif:         "fetch_nif",
	FetchFun:         "fetch_fun",
	FetchStackParam:  "fetch_stack_param",
	FetchStackLocal:  "fetch_stack_local",
	LocalBind:        "local_bind",
	IgnoreOne:        "ignore_one",
	AccessField:      "access_field",
	Call:             "call",
	TailCall:         "tail_call",
	Jump:             "jump",
	CondJump:         "cond_jump",
	Ret:              "ret",
	MakeStructure:    "make_structure",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("illegal op (%d)", op)
}

// OpcodeFromString looks up an Opcode by its textual mnemonic, used by
// the pseudo-assembler.
func OpcodeFromString(s string) (Opcode, bool) {
	for op, name := range opcodeNames {
		if name == s {
			return Opcode(op), true
		}
	}
	return 0, false
}

// Instruction is a single decoded bytecode instruction. Arg and Arg2
// hold its operand(s), interpreted according to Op:
//
//	PushLiteral(Arg=LitId)
//	FetchGlobal(Arg=GlobalId)
//	FetchNif(Arg=NifId)
//	FetchFun(Arg=FunId)
//	FetchStackParam(Arg=ParamBindIndex)
//	FetchStackLocal(Arg=LocalBindIndex)
//	LocalBind(Arg=LocalBindIndex)
//	IgnoreOne()
//	AccessField(Arg=ConstrId, Arg2=field index)
//	Call(Arg=arity) / TailCall(Arg=arity)
//	Jump(Arg=InstructionDiff) / CondJump(Arg=InstructionDiff)
//	Ret()
type Instruction struct {
	Op   Opcode
	Arg  int32
	Arg2 int32
}
