// Package exec implements the register-free stack virtual machine that
// runs a compiled CompilationUnit: a value stack, a return-frame stack,
// an instruction pointer and frame pointer, dispatching calls to either
// user-defined functions or host-provided native functions (NIFs).
package exec

import "github.com/vincenthz/werbolg/lang/ir"

// ValueKind is a host-opaque tag returned by Value.Descriptor, used only
// to populate diagnostic fields on ExecutionError -- the VM never
// branches on it itself.
type ValueKind uint8

// ValueFun is the payload of a function value: either a host NIF or a
// compiled user function.
type ValueFun struct {
	isNative bool
	nif      ir.NifId
	fun      ir.FunId
}

// NativeFun builds a ValueFun wrapping a NIF.
func NativeFun(id ir.NifId) ValueFun { return ValueFun{isNative: true, nif: id} }

// UserFun builds a ValueFun wrapping a compiled function.
func UserFun(id ir.FunId) ValueFun { return ValueFun{isNative: false, fun: id} }

// Native returns the wrapped NifId, if any.
func (f ValueFun) Native() (ir.NifId, bool) { return f.nif, f.isNative }

// Fun returns the wrapped FunId, if any.
func (f ValueFun) Fun() (ir.FunId, bool) { return f.fun, !f.isNative }

// Value is the polymorphic runtime value the VM operates on. A host
// supplies the concrete implementation (see the examplenif package for
// a minimal one); the VM only ever interacts with values through this
// capability set, never through a concrete type switch.
type Value interface {
	// Descriptor returns a host-opaque kind tag, used to populate
	// diagnostic fields on ExecutionError (e.g. CallingNotFunc).
	Descriptor() ValueKind

	// Conditional reports this value's truthiness, if it has one.
	Conditional() (bool, bool)

	// Fun reports this value's ValueFun payload, if it is a function.
	Fun() (ValueFun, bool)

	// Structure reports this value's constructor id and fields, if it is
	// a struct or enum instance.
	Structure() (ir.ConstrId, []Value, bool)

	// Index returns the i'th field, if this value supports indexing.
	Index(i int) (Value, bool)
}

// Factory builds the values that have no natural receiver to hang off
// of: a function value, a placeholder, and a structure. The original werbolg
// value trait declares make_fun/make_dummy as associated (static)
// functions rather than methods on an existing instance; a host passes
// its Factory to NewMachine instead of these being part of the Value
// interface itself.
type Factory interface {
	// MakeFun builds a function value wrapping f.
	MakeFun(f ValueFun) Value

	// MakeDummy builds a placeholder value used to pre-fill a callee's
	// local-stack slots before its body runs.
	MakeDummy() Value

	// MakeStructure builds a structure value out of fields for the
	// MakeStructure opcode (the List/Sequence lowering of
	// CompilationParams.SequenceConstructor -- not part of the original
	// Valuable trait, added alongside the opcode it backs).
	MakeStructure(id ir.ConstrId, fields []Value) Value
}
