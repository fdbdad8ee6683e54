package symbol

import (
	"github.com/vincenthz/werbolg/lang/hier"
	"github.com/vincenthz/werbolg/lang/ir"
)

// BindingKind tags which slot of a BindingType is populated.
type BindingKind uint8

const (
	BindGlobal BindingKind = iota
	BindNif
	BindFun
	BindParam
	BindLocal
)

// BindingType is the resolved target of an identifier: a global, a NIF,
// a user function, a parameter, or a local stack slot.
type BindingType struct {
	Kind  BindingKind
	Id    uint32 // GlobalId, NifId or FunId, depending on Kind
	Index uint32 // ParamBindIndex or LocalBindIndex, depending on Kind
}

func GlobalBinding(id ir.GlobalId) BindingType { return BindingType{Kind: BindGlobal, Id: uint32(id)} }
func NifBinding(id ir.NifId) BindingType       { return BindingType{Kind: BindNif, Id: uint32(id)} }
func FunBinding(id ir.FunId) BindingType       { return BindingType{Kind: BindFun, Id: uint32(id)} }
func ParamBinding(idx ir.ParamBindIndex) BindingType {
	return BindingType{Kind: BindParam, Index: uint32(idx)}
}
func LocalBinding(idx ir.LocalBindIndex) BindingType {
	return BindingType{Kind: BindLocal, Index: uint32(idx)}
}

func (b BindingType) Global() (ir.GlobalId, bool) {
	return ir.GlobalId(b.Id), b.Kind == BindGlobal
}
func (b BindingType) Nif() (ir.NifId, bool) { return ir.NifId(b.Id), b.Kind == BindNif }
func (b BindingType) Fun() (ir.FunId, bool) { return ir.FunId(b.Id), b.Kind == BindFun }
func (b BindingType) Param() (ir.ParamBindIndex, bool) {
	return ir.ParamBindIndex(b.Index), b.Kind == BindParam
}
func (b BindingType) Local() (ir.LocalBindIndex, bool) {
	return ir.LocalBindIndex(b.Index), b.Kind == BindLocal
}

// GlobalBindings is a Hier of flat Ident -> BindingType tables, one per
// namespace, seeded from the environment and the set of registered
// module-level function paths before any function body is compiled.
type GlobalBindings struct {
	root *hier.Hier[*hier.Bindings[BindingType]]
}

// NewGlobalBindings returns an empty GlobalBindings with only the root
// namespace present.
func NewGlobalBindings() *GlobalBindings {
	return &GlobalBindings{root: hier.NewHier[*hier.Bindings[BindingType]](hier.NewBindings[BindingType]())}
}

// EnsureNamespace creates ns (and every missing ancestor) if it does
// not already exist.
func (g *GlobalBindings) EnsureNamespace(ns ir.Namespace) {
	g.root.AddNsHier(ns, func() *hier.Bindings[BindingType] { return hier.NewBindings[BindingType]() })
}

// Add binds path's identifier to binding within path's namespace
// (creating the namespace chain first if needed). It returns false if
// the identifier was already bound in that namespace.
func (g *GlobalBindings) Add(path ir.AbsPath, binding BindingType) bool {
	g.EnsureNamespace(path.NS)
	ok := true
	_, _ = g.root.OnMut(path.NS, func(b **hier.Bindings[BindingType]) error {
		ok = (*b).Insert(path.Ident, binding)
		return nil
	})
	return ok
}

// Lookup resolves path within its namespace.
func (g *GlobalBindings) Lookup(path ir.AbsPath) (BindingType, bool) {
	b := g.root.Get(path.NS)
	if b == nil {
		var zero BindingType
		return zero, false
	}
	return (*b).Get(path.Ident)
}

// LocalBindings tracks the lexical scopes of a single function body
// being compiled: a stack of Ident -> BindingType scopes, paired with a
// running "next local slot" counter per scope and the maximum number of
// local slots ever allocated across any scope. Pushing a scope inherits
// the parent's next-local-index; popping a scope folds its high-water
// mark into the running maximum. Once the top (function) scope is
// terminated, the running maximum is exactly the LocalStackSize the VM
// must reserve for this function's frame.
type LocalBindings struct {
	stack   *hier.BindingsStack[BindingType]
	nextIdx []ir.LocalBindIndex
	maxIdx  ir.LocalBindIndex
}

// NewLocalBindings returns a LocalBindings with a single base scope and
// a next-local-index of 0.
func NewLocalBindings() *LocalBindings {
	return &LocalBindings{
		stack:   hier.NewBindingsStack[BindingType](),
		nextIdx: []ir.LocalBindIndex{0},
	}
}

// PushScope opens a nested lexical scope, inheriting the current
// next-local-index.
func (l *LocalBindings) PushScope() {
	l.stack.PushScope()
	l.nextIdx = append(l.nextIdx, l.nextIdx[len(l.nextIdx)-1])
}

// PopScope closes the innermost scope, folding its high-water mark of
// allocated locals into the running maximum.
func (l *LocalBindings) PopScope() {
	top := l.nextIdx[len(l.nextIdx)-1]
	if top > l.maxIdx {
		l.maxIdx = top
	}
	l.nextIdx = l.nextIdx[:len(l.nextIdx)-1]
	l.stack.PopScope()
}

// AllocLocal reserves the next local slot in the current scope, binds
// ident to it, and returns the slot index.
func (l *LocalBindings) AllocLocal(ident ir.Ident) ir.LocalBindIndex {
	idx := l.nextIdx[len(l.nextIdx)-1]
	l.nextIdx[len(l.nextIdx)-1] = idx + 1
	l.stack.AddReplace(ident, LocalBinding(idx))
	return idx
}

// AddParam binds ident to parameter index idx in the current (function
// top-level) scope.
func (l *LocalBindings) AddParam(ident ir.Ident, idx ir.ParamBindIndex) {
	l.stack.AddReplace(ident, ParamBinding(idx))
}

// Lookup searches scopes innermost-first for ident.
func (l *LocalBindings) Lookup(ident ir.Ident) (BindingType, bool) {
	return l.stack.Lookup(ident)
}

// Terminate folds the still-open top scope's high-water mark into the
// running maximum (as PopScope would) and returns the final
// LocalStackSize for the function: the maximum number of local slots
// ever allocated across any scope of this function.
func (l *LocalBindings) Terminate() ir.LocalStackSize {
	top := l.nextIdx[len(l.nextIdx)-1]
	if top > l.maxIdx {
		l.maxIdx = top
	}
	return ir.LocalStackSize(l.maxIdx)
}
