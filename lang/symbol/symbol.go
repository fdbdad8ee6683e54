// Package symbol implements the namespace-keyed symbol tables used to
// register and resolve NIFs, globals, user functions and constructors,
// plus the local-scope binding resolver used while compiling a single
// function body.
package symbol

import (
	"github.com/dolthub/swiss"

	"github.com/vincenthz/werbolg/lang/hier"
	"github.com/vincenthz/werbolg/lang/idvec"
	"github.com/vincenthz/werbolg/lang/ir"
)

// Error is the error kind returned by the symbol tables.
type Error struct {
	Kind ErrorKind
	Path ir.AbsPath
}

type ErrorKind uint8

const (
	ErrDuplicateLeaf ErrorKind = iota
	ErrAlreadyExist
	ErrNamespaceNotPresent
)

func (e *Error) Error() string {
	switch e.Kind {
	case ErrDuplicateLeaf:
		return "symbol: namespace already exists: " + e.Path.String()
	case ErrAlreadyExist:
		return "symbol: identifier already bound in namespace: " + e.Path.String()
	case ErrNamespaceNotPresent:
		return "symbol: namespace not present: " + e.Path.String()
	default:
		return "symbol: error"
	}
}

// Table wraps a Hier of flat per-namespace identifier tables, giving
// absolute-path insertion and lookup over a hierarchy of namespaces.
type Table[ID idvec.ID] struct {
	root *hier.Hier[*hier.Bindings[ID]]
}

// NewTable returns a table with only the root namespace present.
func NewTable[ID idvec.ID]() *Table[ID] {
	return &Table[ID]{root: hier.NewHier[*hier.Bindings[ID]](hier.NewBindings[ID]())}
}

// CreateNamespace inserts the full chain of nested namespace nodes for
// ns. It fails with ErrDuplicateLeaf if the leaf namespace already
// exists; the root namespace is always present and creating it always
// succeeds.
func (t *Table[ID]) CreateNamespace(ns ir.Namespace) error {
	if ok := t.root.AddNsHier(ns, func() *hier.Bindings[ID] { return hier.NewBindings[ID]() }); !ok {
		return &Error{Kind: ErrDuplicateLeaf, Path: ir.AbsPath{NS: ns}}
	}
	return nil
}

// NamespaceExist reports whether ns has been registered.
func (t *Table[ID]) NamespaceExist(ns ir.Namespace) bool {
	return t.root.NamespaceExist(ns)
}

// Insert binds path's identifier to id inside path's namespace. It
// fails with ErrAlreadyExist if the identifier is already bound there,
// or ErrNamespaceNotPresent if the namespace chain hasn't been created.
func (t *Table[ID]) Insert(path ir.AbsPath, id ID) error {
	found, err := t.root.OnMut(path.NS, func(b **hier.Bindings[ID]) error {
		if !(*b).Insert(path.Ident, id) {
			return &Error{Kind: ErrAlreadyExist, Path: path}
		}
		return nil
	})
	if !found {
		return &Error{Kind: ErrNamespaceNotPresent, Path: path}
	}
	return err
}

// Get resolves path to its bound id.
func (t *Table[ID]) Get(path ir.AbsPath) (ID, bool) {
	b := t.root.Get(path.NS)
	if b == nil {
		var zero ID
		return zero, false
	}
	return (*b).Get(path.Ident)
}

// ToVec enumerates every (AbsPath, ID) pair reachable from ns, depth
// first, in deterministic order. This backs the environment's
// NifPaths/GlobalPaths listings and its diagnostic Dump.
func (t *Table[ID]) ToVec(ns ir.Namespace) []PathID[ID] {
	var out []PathID[ID]
	t.root.Dump(ns, func(cur ir.Namespace, b **hier.Bindings[ID]) {
		for _, ident := range (*b).Idents() {
			id, _ := (*b).Get(ident)
			out = append(out, PathID[ID]{Path: ir.NewAbsPath(cur, ident), ID: id})
		}
	})
	return out
}

// PathID pairs an absolute path with its resolved id, as returned by
// Table.ToVec.
type PathID[ID idvec.ID] struct {
	Path ir.AbsPath
	ID   ID
}

// TableData pairs a Table with a dense IdVec, so that inserting a new
// path allocates a fresh id, stores the associated value, and registers
// the path/id mapping in one call.
type TableData[ID idvec.ID, T any] struct {
	Table  *Table[ID]
	Values idvec.Vec[ID, T]
}

// NewTableData returns an empty TableData.
func NewTableData[ID idvec.ID, T any]() *TableData[ID, T] {
	return &TableData[ID, T]{Table: NewTable[ID](), Values: idvec.New[ID, T]()}
}

// Add allocates a fresh id for val and inserts path -> id. It returns
// the zero id and false, without allocating, if path already maps to
// an id -- the
// caller is expected to turn that into a DuplicateSymbol compilation
// error.
func (d *TableData[ID, T]) Add(path ir.AbsPath, val T) (ID, bool) {
	if _, ok := d.Table.Get(path); ok {
		var zero ID
		return zero, false
	}
	id := d.Values.Push(val)
	if err := d.Table.Insert(path, id); err != nil {
		// namespace missing: caller must CreateNamespace first.
		panic(err)
	}
	return id, true
}

// Get returns the value stored at id.
func (d *TableData[ID, T]) Get(id ID) T { return d.Values.Get(id) }

// GetByPath resolves path to its id then returns the stored value.
func (d *TableData[ID, T]) GetByPath(path ir.AbsPath) (T, bool) {
	id, ok := d.Table.Get(path)
	if !ok {
		var zero T
		return zero, false
	}
	return d.Values.Get(id), true
}

// UniqueTableBuilder interns values of a comparable type T, handing back
// the same ID for equal values and a fresh one otherwise. It is used to
// build the literal pool: two equal literals must compile to the same
// LitId (testable property 4).
type UniqueTableBuilder[ID idvec.ID, T comparable] struct {
	index *swiss.Map[T, ID]
	vec   idvec.Vec[ID, T]
}

// NewUniqueTableBuilder returns an empty builder.
func NewUniqueTableBuilder[ID idvec.ID, T comparable]() *UniqueTableBuilder[ID, T] {
	return &UniqueTableBuilder[ID, T]{
		index: swiss.NewMap[T, ID](0),
		vec:   idvec.New[ID, T](),
	}
}

// Add interns val, returning its existing id if an equal value was
// already added, or a fresh id otherwise.
func (u *UniqueTableBuilder[ID, T]) Add(val T) ID {
	if id, ok := u.index.Get(val); ok {
		return id
	}
	id := u.vec.Push(val)
	u.index.Put(val, id)
	return id
}

// Finalize returns the interned values in id order.
func (u *UniqueTableBuilder[ID, T]) Finalize() idvec.Vec[ID, T] { return u.vec }
