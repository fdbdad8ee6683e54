package exec

import (
	"github.com/vincenthz/werbolg/lang/compile"
	"github.com/vincenthz/werbolg/lang/ir"
)

// returnFrame is one entry of the VM's return-frame stack, recorded by
// Call and restored by Ret (spec.md §4.7).
type returnFrame struct {
	retIP          ir.InstructionAddress
	savedFP        int
	savedStackSize ir.LocalStackSize
	arity          ir.CallArity
}

// Machine is the register-free stack VM: a value stack, a return-frame
// stack, an instruction pointer and frame pointer, executing against an
// immutable CompilationUnit and Environ. L is the compiled literal
// domain; Machine converts a pool entry to a runtime Value via toValue
// each time a PushLiteral executes (converted values are not cached).
type Machine[L comparable] struct {
	unit    *compile.CompilationUnit[L]
	env     *Environ[L]
	factory Factory
	toValue func(L) Value

	vs []Value
	rs []returnFrame

	ip        ir.InstructionAddress
	fp        int
	stackSize ir.LocalStackSize

	finished bool
	result   Value
}

// NewMachine returns a Machine ready to Initialize against unit and env.
// toValue converts a literal pool entry into a runtime Value at the
// point a PushLiteral instruction executes.
func NewMachine[L comparable](unit *compile.CompilationUnit[L], env *Environ[L], factory Factory, toValue func(L) Value) *Machine[L] {
	return &Machine[L]{unit: unit, env: env, factory: factory, toValue: toValue}
}

func (m *Machine[L]) push(v Value) { m.vs = append(m.vs, v) }

func (m *Machine[L]) pop() Value {
	v := m.vs[len(m.vs)-1]
	m.vs = m.vs[:len(m.vs)-1]
	return v
}

func (m *Machine[L]) drop(n int) { m.vs = m.vs[:len(m.vs)-n] }

// Initialize pushes a function value for entry and args, then runs the
// same call logic as Call(len(args)). If entry resolves directly to a
// NIF that is never the case here (entry is always a FunId), matching
// spec.md §4.7's initialize semantics for the compiled-function case.
func (m *Machine[L]) Initialize(entry ir.FunId, args []Value) (Value, error) {
	if err := m.Call(entry, args); err != nil {
		return nil, err
	}
	return m.ExecLoop()
}

// Call pushes a function value for entry and args and runs the Call
// protocol, without executing any instructions -- unlike Initialize, it
// leaves the machine positioned at the entry function's first
// instruction for the caller to single-Step through (used by the CLI's
// `steps` command).
func (m *Machine[L]) Call(entry ir.FunId, args []Value) error {
	if len(args) > 255 {
		return errArityOverflow(len(args))
	}
	m.push(m.factory.MakeFun(UserFun(entry)))
	for _, a := range args {
		m.push(a)
	}
	return m.dispatchCall(ir.CallArity(len(args)))
}

// IP returns the machine's current instruction pointer, for diagnostic
// tracing (the CLI's `steps` command prints it before every Step).
func (m *Machine[L]) IP() ir.InstructionAddress { return m.ip }

// CurrentOp returns the opcode the next Step call will execute.
func (m *Machine[L]) CurrentOp() compile.Opcode { return m.unit.Code.Get(m.ip).Op }

// Step executes a single instruction. It returns (value, true, nil)
// once the program has finished, (nil, false, nil) if more instructions
// remain, or a non-nil error if the instruction failed -- in which case
// the machine's state reflects everything up to, but not including, the
// failing instruction (spec.md §4.8).
func (m *Machine[L]) Step() (Value, bool, error) {
	if m.finished {
		return nil, false, &Error{kind: ErrExecutionFinished}
	}
	instr := m.unit.Code.Get(m.ip)
	switch instr.Op {
	case compile.PushLiteral:
		lit := m.unit.Lits.Get(ir.LitId(instr.Arg))
		m.push(m.toValue(lit))
		m.ip++

	case compile.FetchGlobal:
		m.push(m.env.global(ir.GlobalId(instr.Arg)))
		m.ip++

	case compile.FetchNif:
		m.push(m.factory.MakeFun(NativeFun(ir.NifId(instr.Arg))))
		m.ip++

	case compile.FetchFun:
		m.push(m.factory.MakeFun(UserFun(ir.FunId(instr.Arg))))
		m.ip++

	case compile.FetchStackParam:
		m.push(m.vs[m.fp-1-int(instr.Arg)])
		m.ip++

	case compile.FetchStackLocal:
		m.push(m.vs[m.fp+int(instr.Arg)])
		m.ip++

	case compile.LocalBind:
		m.vs[m.fp+int(instr.Arg)] = m.pop()
		m.ip++

	case compile.IgnoreOne:
		m.pop()
		m.ip++

	case compile.AccessField:
		v := m.vs[len(m.vs)-1]
		constrID, fields, ok := v.Structure()
		if !ok {
			return nil, false, errNotStruct(v.Descriptor())
		}
		want := ir.ConstrId(instr.Arg)
		if constrID != want {
			return nil, false, errStructMismatch(want, constrID)
		}
		idx := int(instr.Arg2)
		if idx < 0 || idx >= len(fields) {
			return nil, false, errStructFieldOutOfBound(idx)
		}
		m.pop()
		m.push(fields[idx])
		m.ip++

	case compile.Call:
		if err := m.dispatchCall(ir.CallArity(instr.Arg)); err != nil {
			return nil, false, err
		}

	case compile.TailCall:
		if err := m.dispatchTailCall(ir.CallArity(instr.Arg)); err != nil {
			return nil, false, err
		}

	case compile.Jump:
		m.ip = ir.InstructionAddress(int32(m.ip) + 1 + instr.Arg)

	case compile.CondJump:
		v := m.vs[len(m.vs)-1]
		cond, ok := v.Conditional()
		if !ok {
			return nil, false, errNotConditional(v.Descriptor())
		}
		m.pop()
		if !cond {
			m.ip = ir.InstructionAddress(int32(m.ip) + 1 + instr.Arg)
		} else {
			m.ip++
		}

	case compile.Ret:
		if done, v := m.dispatchRet(); done {
			m.finished = true
			m.result = v
			return v, true, nil
		}

	case compile.MakeStructure:
		constrID := ir.ConstrId(instr.Arg)
		n := int(instr.Arg2)
		fields := make([]Value, n)
		for i := n - 1; i >= 0; i-- {
			fields[i] = m.pop()
		}
		m.push(m.factory.MakeStructure(constrID, fields))
		m.ip++

	default:
		return nil, false, &Error{kind: ErrAbort, Message: "illegal opcode"}
	}
	return nil, false, nil
}

// ExecLoop drives Step to completion, equivalent to repeatedly calling
// Step until it reports the program finished.
func (m *Machine[L]) ExecLoop() (Value, error) {
	for {
		v, done, err := m.Step()
		if err != nil {
			return nil, err
		}
		if done {
			return v, nil
		}
	}
}

// ExecContinue resumes a previously Initialize'd machine, running to
// completion again. It fails with ExecutionFinished if the machine has
// already produced a result.
func (m *Machine[L]) ExecContinue() (Value, error) {
	if m.finished {
		return nil, &Error{kind: ErrExecutionFinished}
	}
	return m.ExecLoop()
}

// callNif dispatches to a NIF: pop arity+1 (args+callee), push exactly
// one result. m.vs[calleeIdx+1:] already holds arg_0..arg_{arity-1} in
// left-to-right order (each arg is pushed in turn after the callee), so
// it is handed to the NIF as-is.
func (m *Machine[L]) callNif(nifID ir.NifId, calleeIdx int, arity ir.CallArity) error {
	nif := m.env.nif(nifID)
	args := append([]Value(nil), m.vs[calleeIdx+1:]...)
	result, err := nif.invoke(m, args)
	if err != nil {
		return err
	}
	m.drop(int(arity) + 1)
	m.push(result)
	m.ip++
	return nil
}

// dispatchCall implements the Call protocol of spec.md §4.7: the stack
// top-down is [arg_{arity-1}, ..., arg_0, callee].
func (m *Machine[L]) dispatchCall(arity ir.CallArity) error {
	calleeIdx := len(m.vs) - 1 - int(arity)
	callee := m.vs[calleeIdx]
	fn, ok := callee.Fun()
	if !ok {
		return errCallingNotFunc(callee.Descriptor())
	}

	if nifID, isNative := fn.Native(); isNative {
		return m.callNif(nifID, calleeIdx, arity)
	}

	funID, _ := fn.Fun()
	def := m.unit.Funs.Get(funID)
	if ir.CallArity(def.Arity) != arity {
		return errArity(int(def.Arity), int(arity))
	}

	m.rs = append(m.rs, returnFrame{
		retIP:          m.ip + 1,
		savedFP:        m.fp,
		savedStackSize: m.stackSize,
		arity:          arity,
	})
	m.fp = len(m.vs)
	for i := ir.LocalStackSize(0); i < def.StackSize; i++ {
		m.push(m.factory.MakeDummy())
	}
	m.stackSize = def.StackSize
	m.ip = def.CodePos
	return nil
}

// dispatchTailCall is dispatchCall for a Call in tail position: instead
// of pushing a new return frame, it splices the target function into
// the current one's frame, collapsing the current locals and the
// current frame's own callee+args, and reusing its retIP/savedFP so the
// eventual Ret unwinds straight to the original caller. Only ever
// emitted when CompilationParams.EnableTailCalls is set.
func (m *Machine[L]) dispatchTailCall(arity ir.CallArity) error {
	calleeIdx := len(m.vs) - 1 - int(arity)
	callee := m.vs[calleeIdx]
	fn, ok := callee.Fun()
	if !ok {
		return errCallingNotFunc(callee.Descriptor())
	}

	if nifID, isNative := fn.Native(); isNative {
		return m.callNif(nifID, calleeIdx, arity)
	}

	funID, _ := fn.Fun()
	def := m.unit.Funs.Get(funID)
	if ir.CallArity(def.Arity) != arity {
		return errArity(int(def.Arity), int(arity))
	}

	newVals := append([]Value(nil), m.vs[calleeIdx:]...)

	frame := m.rs[len(m.rs)-1]
	m.rs = m.rs[:len(m.rs)-1]

	newBase := m.fp - 1 - int(frame.arity)
	m.vs = m.vs[:newBase]
	for _, v := range newVals {
		m.push(v)
	}

	m.rs = append(m.rs, returnFrame{
		retIP:          frame.retIP,
		savedFP:        frame.savedFP,
		savedStackSize: frame.savedStackSize,
		arity:          arity,
	})
	m.fp = len(m.vs)
	for i := ir.LocalStackSize(0); i < def.StackSize; i++ {
		m.push(m.factory.MakeDummy())
	}
	m.stackSize = def.StackSize
	m.ip = def.CodePos
	return nil
}

// dispatchRet implements the Return protocol of spec.md §4.7. The
// return-frame stack always has at least the synthetic frame pushed by
// Initialize's bootstrap call, so popping it always succeeds; execution
// terminates exactly when that pop empties the stack.
func (m *Machine[L]) dispatchRet() (done bool, v Value) {
	v = m.pop()
	m.drop(int(m.stackSize))

	frame := m.rs[len(m.rs)-1]
	m.rs = m.rs[:len(m.rs)-1]
	m.fp = frame.savedFP
	m.stackSize = frame.savedStackSize

	m.drop(int(frame.arity) + 1)
	m.push(v)
	m.ip = frame.retIP

	if len(m.rs) == 0 {
		return true, v
	}
	return false, nil
}
