package compile

import "github.com/vincenthz/werbolg/lang/ir"

// LiteralMapper converts an IR literal's unparsed text into the host's
// literal domain L, which is then interned in the literal pool. L must
// be comparable: equal literals must compare equal so the intern pool
// can deduplicate them (testable property 4).
type LiteralMapper[L comparable] func(ir.Span, ir.Literal) (L, error)

// CompilationParams configures a CompilationState. literal_mapper is
// mandatory; SequenceConstructor resolves the open question in spec.md
// §9 about List/Sequence expressions (see lowerList in funcgen.go).
type CompilationParams[L comparable] struct {
	LiteralMapper LiteralMapper[L]

	// SequenceConstructor, when set, is the struct constructor a List
	// expression's items are packed into. When nil, a List lowers as a
	// let-chain of Ignore-bound expressions with the last one producing
	// the value (so only the last item's value survives).
	SequenceConstructor *ir.ConstrId

	// EnableTailCalls turns on tail-position detection: a Call in tail
	// position emits TailCall instead of Call, letting the VM reuse the
	// caller's return frame. The function's trailing Ret is still
	// emitted; it only runs when the tail call lands on a NIF. Disabled by default, matching the
	// instruction set declaring TailCall without ever emitting it.
	EnableTailCalls bool
}
