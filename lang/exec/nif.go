package exec

import "github.com/vincenthz/werbolg/lang/ir"

// NIFCall is the dispatch variant of a native function: Pure receives
// only a borrow of its arguments, Raw receives the machine itself, for
// NIFs that need to manipulate the stack or host userdata directly. L
// is the Machine's literal domain, the same L as Machine[L] -- a Raw
// NIF is handed the exact machine type it would be registered against.
type NIFCall[L comparable] struct {
	pure func(args []Value) (Value, error)
	raw  func(m *Machine[L]) (Value, error)
}

// Pure builds a NIFCall dispatched with just its arguments.
func Pure[L comparable](fn func(args []Value) (Value, error)) NIFCall[L] {
	return NIFCall[L]{pure: fn}
}

// Raw builds a NIFCall dispatched with the machine itself.
func Raw[L comparable](fn func(m *Machine[L]) (Value, error)) NIFCall[L] {
	return NIFCall[L]{raw: fn}
}

// Nif is a host-registered native function: a name (for diagnostics and
// disassembly), its fixed arity, and its dispatch variant.
type Nif[L comparable] struct {
	Name  string
	Arity ir.CallArity
	Call  NIFCall[L]
}

// NewPureNif builds a Nif dispatched via Pure.
func NewPureNif[L comparable](name string, arity ir.CallArity, fn func(args []Value) (Value, error)) Nif[L] {
	return Nif[L]{Name: name, Arity: arity, Call: Pure[L](fn)}
}

// NewRawNif builds a Nif dispatched via Raw.
func NewRawNif[L comparable](name string, arity ir.CallArity, fn func(m *Machine[L]) (Value, error)) Nif[L] {
	return Nif[L]{Name: name, Arity: arity, Call: Raw[L](fn)}
}

func (n Nif[L]) invoke(m *Machine[L], args []Value) (Value, error) {
	if n.Call.pure != nil {
		return n.Call.pure(args)
	}
	return n.Call.raw(m)
}
