// Package environ implements the host-supplied collection of NIFs and
// globals that both the compiler (to bind names) and the VM (to
// dispatch calls) consume. It is generic over the NIF representation N
// and the global value representation G: this package only manages
// their registration under stable ids and absolute paths, it never
// interprets them.
package environ

import (
	"github.com/vincenthz/werbolg/lang/ir"
	"github.com/vincenthz/werbolg/lang/symbol"
)

// Environment accumulates NIFs and globals under absolute paths before
// compilation, then splits into the immutable id-indexed vectors the VM
// consumes once Finalize is called.
type Environment[N any, G any] struct {
	nifs    *symbol.TableData[ir.NifId, N]
	globals *symbol.TableData[ir.GlobalId, G]
}

// New returns an empty Environment.
func New[N any, G any]() *Environment[N, G] {
	return &Environment[N, G]{
		nifs:    symbol.NewTableData[ir.NifId, N](),
		globals: symbol.NewTableData[ir.GlobalId, G](),
	}
}

// CreateNamespace registers ns in both the NIF and global symbol
// tables, so that NIFs and globals can subsequently be added under it.
func (e *Environment[N, G]) CreateNamespace(ns ir.Namespace) error {
	if err := e.nifs.Table.CreateNamespace(ns); err != nil {
		return err
	}
	return e.globals.Table.CreateNamespace(ns)
}

// AddNif registers a NIF under path, returning its assigned id. It
// panics if path already names a NIF -- the host is expected to wire
// distinct paths for distinct NIFs at startup, so a collision here is a
// programming error rather than a recoverable one.
func (e *Environment[N, G]) AddNif(path ir.AbsPath, n N) ir.NifId {
	id, ok := e.nifs.Add(path, n)
	if !ok {
		panic("environ: duplicate nif path " + path.String())
	}
	return id
}

// AddGlobal registers a global value under path, returning its
// assigned id. Panics on path collision, see AddNif.
func (e *Environment[N, G]) AddGlobal(path ir.AbsPath, g G) ir.GlobalId {
	id, ok := e.globals.Add(path, g)
	if !ok {
		panic("environ: duplicate global path " + path.String())
	}
	return id
}

// NifPaths enumerates every registered NIF path and id, depth first.
func (e *Environment[N, G]) NifPaths() []symbol.PathID[ir.NifId] {
	return e.nifs.Table.ToVec(ir.RootNamespace())
}

// GlobalPaths enumerates every registered global path and id, depth
// first.
func (e *Environment[N, G]) GlobalPaths() []symbol.PathID[ir.GlobalId] {
	return e.globals.Table.ToVec(ir.RootNamespace())
}

// GetNif resolves path to its NIF id.
func (e *Environment[N, G]) GetNif(path ir.AbsPath) (ir.NifId, bool) {
	return e.nifs.Table.Get(path)
}

// GetGlobal resolves path to its global id.
func (e *Environment[N, G]) GetGlobal(path ir.AbsPath) (ir.GlobalId, bool) {
	return e.globals.Table.Get(path)
}

// Finalize splits the environment into the immutable, id-indexed
// vectors the VM consumes: every NIF and every global in registration
// order. After Finalize the Environment should not be mutated further.
func (e *Environment[N, G]) Finalize() (globals []G, nifs []N) {
	return e.globals.Values.Slice(), e.nifs.Values.Slice()
}

// Dump renders every registered NIF and global path as a diagnostic
// string, depth first: all NIFs first, then all globals.
func (e *Environment[N, G]) Dump() []string {
	var out []string
	for _, p := range e.NifPaths() {
		out = append(out, "nif "+p.Path.String())
	}
	for _, p := range e.GlobalPaths() {
		out = append(out, "global "+p.Path.String())
	}
	return out
}
