// Package hier implements the generic tree-of-namespaces and
// scope-stack containers shared by the symbol tables and the local
// binding resolver: a Hier[T] keyed by identifier segments, a flat
// Bindings[T] map with duplicate detection, and a BindingsStack[T] of
// lexical scopes searched top-down.
package hier

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"

	"github.com/vincenthz/werbolg/lang/ir"
)

// Hier is a tree keyed by ir.Ident, carrying a T at every node
// (including the root) plus child subtrees. It underlies every
// namespace-shaped table in the compiler (symbol tables for NIFs,
// globals, functions and constructors all share this shape).
type Hier[T any] struct {
	value    T
	children map[ir.Ident]*Hier[T]
}

// NewHier returns a root node carrying root as its value.
func NewHier[T any](root T) *Hier[T] {
	return &Hier[T]{value: root, children: make(map[ir.Ident]*Hier[T])}
}

// NamespaceExist reports whether every segment of ns has been created
// via AddNsHier.
func (h *Hier[T]) NamespaceExist(ns ir.Namespace) bool {
	n := h
	for _, seg := range ns.Segments() {
		child, ok := n.children[seg]
		if !ok {
			return false
		}
		n = child
	}
	return true
}

// AddNsHier inserts the full chain of nodes for ns, creating any
// missing intermediate node with zero, and returns false if the leaf
// already existed (DuplicateLeaf in the caller's terms). For the root
// namespace there is no node to insert and it always returns true.
func (h *Hier[T]) AddNsHier(ns ir.Namespace, zero func() T) bool {
	n := h
	segs := ns.Segments()
	for i, seg := range segs {
		child, ok := n.children[seg]
		if !ok {
			child = &Hier[T]{value: zero(), children: make(map[ir.Ident]*Hier[T])}
			n.children[seg] = child
		} else if i == len(segs)-1 {
			return false
		}
		n = child
	}
	return true
}

// Get walks ns and returns a pointer to the value stored at that node,
// or nil if the namespace chain doesn't fully exist.
func (h *Hier[T]) Get(ns ir.Namespace) *T {
	n := h
	for _, seg := range ns.Segments() {
		child, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = child
	}
	return &n.value
}

// OnMut walks ns and calls f with a pointer to the value stored at that
// node, returning f's error. It returns false if the namespace doesn't
// exist.
func (h *Hier[T]) OnMut(ns ir.Namespace, f func(*T) error) (bool, error) {
	n := h
	for _, seg := range ns.Segments() {
		child, ok := n.children[seg]
		if !ok {
			return false, nil
		}
		n = child
	}
	return true, f(&n.value)
}

// Dump performs a depth-first traversal of the tree starting at ns,
// calling f with the absolute namespace and the value of every node
// visited (the starting node included). Children are visited in
// deterministic (sorted) ident order.
func (h *Hier[T]) Dump(ns ir.Namespace, f func(ir.Namespace, *T)) {
	n := h
	for _, seg := range ns.Segments() {
		child, ok := n.children[seg]
		if !ok {
			return
		}
		n = child
	}
	n.dump(ns, f)
}

func (h *Hier[T]) dump(ns ir.Namespace, f func(ir.Namespace, *T)) {
	f(ns, &h.value)

	idents := make([]ir.Ident, 0, len(h.children))
	for ident := range h.children {
		idents = append(idents, ident)
	}
	slices.Sort(idents)

	for _, ident := range idents {
		h.children[ident].dump(ns.Append(ident), f)
	}
}

// Bindings is a flat identifier-to-value map that rejects duplicate
// insertion. It is backed by a swiss table rather than a builtin map:
// namespaces with a large, flat fan-out of identifiers (a module with
// hundreds of top-level functions, or the environment's global symbol
// table) are exactly the high-load-factor lookup workload swiss tables
// are built for.
type Bindings[T any] struct {
	m *swiss.Map[ir.Ident, T]
}

// NewBindings returns an empty Bindings.
func NewBindings[T any]() *Bindings[T] {
	return &Bindings[T]{m: swiss.NewMap[ir.Ident, T](0)}
}

// Insert adds ident -> val, returning false if ident is already bound.
func (b *Bindings[T]) Insert(ident ir.Ident, val T) bool {
	if b.m.Has(ident) {
		return false
	}
	b.m.Put(ident, val)
	return true
}

// AddReplace inserts ident -> val unconditionally, overwriting any
// existing binding for ident in this flat map.
func (b *Bindings[T]) AddReplace(ident ir.Ident, val T) {
	b.m.Put(ident, val)
}

// Get looks up ident, returning its value and whether it was found.
func (b *Bindings[T]) Get(ident ir.Ident) (T, bool) {
	return b.m.Get(ident)
}

// Len returns the number of bound identifiers.
func (b *Bindings[T]) Len() int { return b.m.Count() }

// Idents returns every bound identifier, in deterministic sorted order.
func (b *Bindings[T]) Idents() []ir.Ident {
	idents := make([]ir.Ident, 0, b.m.Count())
	b.m.Iter(func(ident ir.Ident, _ T) bool {
		idents = append(idents, ident)
		return false
	})
	slices.Sort(idents)
	return idents
}

// BindingsStack is a stack of lexical scopes, each a flat Bindings[T].
// Lookup searches from the innermost (top) scope outward.
type BindingsStack[T any] struct {
	scopes []*Bindings[T]
}

// NewBindingsStack returns a stack with a single, empty base scope.
func NewBindingsStack[T any]() *BindingsStack[T] {
	return &BindingsStack[T]{scopes: []*Bindings[T]{NewBindings[T]()}}
}

// PushScope opens a new, empty lexical scope.
func (s *BindingsStack[T]) PushScope() {
	s.scopes = append(s.scopes, NewBindings[T]())
}

// PopScope discards the innermost scope. It panics if only the base
// scope remains, the same way popping an empty stack would.
func (s *BindingsStack[T]) PopScope() {
	if len(s.scopes) == 1 {
		panic("hier: PopScope called on base scope")
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Depth returns the number of scopes currently on the stack.
func (s *BindingsStack[T]) Depth() int { return len(s.scopes) }

// Add inserts ident -> val in the top scope, failing if ident is
// already bound there.
func (s *BindingsStack[T]) Add(ident ir.Ident, val T) bool {
	return s.top().Insert(ident, val)
}

// AddReplace inserts ident -> val in the top scope unconditionally.
func (s *BindingsStack[T]) AddReplace(ident ir.Ident, val T) {
	s.top().AddReplace(ident, val)
}

// Lookup searches scopes from innermost to outermost for ident.
func (s *BindingsStack[T]) Lookup(ident ir.Ident) (T, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if v, ok := s.scopes[i].Get(ident); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (s *BindingsStack[T]) top() *Bindings[T] { return s.scopes[len(s.scopes)-1] }
