// Package idvec implements dense, append-only arenas keyed by small
// integer handles. Every cross-reference in the compiled form of a
// program (function ids, global ids, literal ids, ...) is a typed index
// into one of these vectors rather than a direct pointer, so that the
// compiled form has no reference cycles and can be serialized trivially.
package idvec

// ID is the constraint satisfied by every dense handle type used as a key
// into a Vec. Handles are newtypes over uint32 so that, for example, a
// FunId and a GlobalId cannot be used interchangeably by mistake.
type ID interface {
	~uint32
}

// Vec is a dense array of T indexed by I. Values are only ever appended;
// there is no removal, matching the append-only nature of a compiled
// program (instructions, literals, functions and constructors are never
// retracted once emitted).
type Vec[I ID, T any] struct {
	items []T
}

// New returns an empty Vec.
func New[I ID, T any]() Vec[I, T] {
	return Vec[I, T]{}
}

// NewWithCapacity returns an empty Vec with its backing array
// pre-allocated for n items.
func NewWithCapacity[I ID, T any](n int) Vec[I, T] {
	return Vec[I, T]{items: make([]T, 0, n)}
}

// Push appends v and returns the id it was assigned.
func (v *Vec[I, T]) Push(val T) I {
	id := I(len(v.items))
	v.items = append(v.items, val)
	return id
}

// Len returns the number of items in the vec.
func (v *Vec[I, T]) Len() int { return len(v.items) }

// Get returns the item at id. It panics if id is out of bounds, the same
// way indexing a Go slice out of bounds panics -- callers are expected to
// only ever hold ids handed out by Push.
func (v *Vec[I, T]) Get(id I) T { return v.items[id] }

// GetPtr returns a pointer to the item at id, allowing in-place mutation
// (used by the compiler to patch a previously emitted instruction).
func (v *Vec[I, T]) GetPtr(id I) *T { return &v.items[id] }

// Set overwrites the item at id.
func (v *Vec[I, T]) Set(id I, val T) { v.items[id] = val }

// Iter calls f for every (id, value) pair in insertion order. Iteration
// stops early if f returns false.
func (v *Vec[I, T]) Iter(f func(id I, val T) bool) {
	for i := range v.items {
		if !f(I(i), v.items[i]) {
			return
		}
	}
}

// Append pushes every element of other onto v, returning the id each
// element of other was assigned in v, in order.
func (v *Vec[I, T]) Append(other Vec[I, T]) []I {
	ids := make([]I, len(other.items))
	for i, item := range other.items {
		ids[i] = v.Push(item)
	}
	return ids
}

// Slice returns the underlying items as a plain slice, for callers (like
// the disassembler) that want to range over every entry without the
// id-typed Iter callback.
func (v *Vec[I, T]) Slice() []T { return v.items }
