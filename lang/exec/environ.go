package exec

import "github.com/vincenthz/werbolg/lang/ir"

// Environ is the immutable, id-indexed split of a compile-time
// environ.Environment[Nif[L],Value] produced once Finalize has run: the
// VM only ever looks NIFs and globals up by id, never by path.
type Environ[L comparable] struct {
	globals []Value
	nifs    []Nif[L]
}

// NewEnviron builds an Environ from the globals and nifs vectors
// returned by environ.Environment.Finalize.
func NewEnviron[L comparable](globals []Value, nifs []Nif[L]) *Environ[L] {
	return &Environ[L]{globals: globals, nifs: nifs}
}

func (e *Environ[L]) global(id ir.GlobalId) Value { return e.globals[id] }
func (e *Environ[L]) nif(id ir.NifId) Nif[L]       { return e.nifs[id] }
