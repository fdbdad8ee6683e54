// Package ir defines the typed tree that every surface-syntax frontend
// (lisp-like, rust-like, or any other) produces and that the compiler
// consumes. A frontend's only contract with the rest of this module is
// to build one of these Module values; nothing in this package knows how
// to parse source text.
package ir

import "fmt"

// Ident is an opaque symbol name, compared by value. Two Idents with the
// same text always denote the same identifier.
type Ident string

// Namespace is an ordered sequence of Ident segments forming a path
// prefix. The root namespace is the empty sequence.
type Namespace struct {
	segments []Ident
}

// RootNamespace returns the empty namespace.
func RootNamespace() Namespace { return Namespace{} }

// NewNamespace builds a namespace from its segments, outermost first.
func NewNamespace(segments ...Ident) Namespace {
	return Namespace{segments: append([]Ident(nil), segments...)}
}

// Segments returns the namespace's path segments. Callers must not
// mutate the returned slice.
func (n Namespace) Segments() []Ident { return n.segments }

// IsRoot reports whether n is the root namespace.
func (n Namespace) IsRoot() bool { return len(n.segments) == 0 }

// Append returns a new namespace with ident appended as its last
// segment.
func (n Namespace) Append(ident Ident) Namespace {
	segs := make([]Ident, len(n.segments)+1)
	copy(segs, n.segments)
	segs[len(n.segments)] = ident
	return Namespace{segments: segs}
}

// Parent returns the namespace without its last segment, and true, or
// the root namespace and false if n is already root.
func (n Namespace) Parent() (Namespace, bool) {
	if len(n.segments) == 0 {
		return n, false
	}
	return Namespace{segments: n.segments[:len(n.segments)-1]}, true
}

// String renders the namespace as dot-separated segments, e.g. "a.b.c".
// The root namespace renders as the empty string.
func (n Namespace) String() string {
	s := ""
	for i, seg := range n.segments {
		if i > 0 {
			s += "."
		}
		s += string(seg)
	}
	return s
}

// Equal reports whether n and o denote the same namespace.
func (n Namespace) Equal(o Namespace) bool {
	if len(n.segments) != len(o.segments) {
		return false
	}
	for i := range n.segments {
		if n.segments[i] != o.segments[i] {
			return false
		}
	}
	return true
}

// AbsPath is the canonical key used to register and look up globals,
// NIFs, functions and constructors: a namespace plus the identifier
// local to it.
type AbsPath struct {
	NS    Namespace
	Ident Ident
}

// NewAbsPath builds an AbsPath from a namespace and an identifier.
func NewAbsPath(ns Namespace, ident Ident) AbsPath {
	return AbsPath{NS: ns, Ident: ident}
}

func (p AbsPath) String() string {
	if p.NS.IsRoot() {
		return string(p.Ident)
	}
	return fmt.Sprintf("%s.%s", p.NS, p.Ident)
}

// Span is an opaque byte range [Start, End) attached to IR nodes. The
// core forwards spans verbatim into errors; it never interprets them.
// Line/column mapping is the responsibility of the frontend that
// produced the span.
type Span struct {
	Start uint32
	End   uint32
}

// Path is a possibly-relative reference to an identifier as written by
// the frontend: a sequence of segments, the last of which is the
// identifier being referenced (e.g. "foo" is Path{"foo"}, "a::b::foo" is
// Path{"a","b","foo"}). Resolution against bindings and namespaces is
// the compiler's job (see the compile package).
type Path struct {
	Segments []Ident
}

// NewPath builds a Path from its segments.
func NewPath(segments ...Ident) Path { return Path{Segments: append([]Ident(nil), segments...)} }

// Privacy is the visibility of a top-level function definition.
type Privacy uint8

const (
	Public Privacy = iota
	Private
)

// Variable names a function parameter.
type Variable struct {
	Ident Ident
}

// FunDef carries a top-level function's name and visibility.
type FunDef struct {
	Name    Ident
	Privacy Privacy
}

// FunImpl carries a function's parameter list and body.
type FunImpl struct {
	Vars []Variable
	Body Expr
}

// StructDef declares a struct's name and ordered field list.
type StructDef struct {
	Name   Ident
	Fields []Ident
}

// Use records an import/use declaration queued for resolution against
// the symbol tables; its precise shape is frontend-defined and opaque
// to the compiler beyond being attached to a namespace.
type Use struct {
	Span Span
	Path Path
}

// Stmt is a single top-level statement inside a Module.
type Stmt interface {
	isStmt()
}

// FunctionStmt declares a named, top-level function.
type FunctionStmt struct {
	Span Span
	Def  FunDef
	Impl FunImpl
}

// StructStmt declares a struct constructor.
type StructStmt struct {
	Span Span
	Def  StructDef
}

// UseStmt queues a use/import declaration.
type UseStmt struct {
	Use Use
}

// ExprStmt is a bare expression at module scope; it is parsed but
// ignored by the compiler (module scope has no implicit entry point).
type ExprStmt struct {
	Expr Expr
}

func (FunctionStmt) isStmt() {}
func (StructStmt) isStmt()   {}
func (UseStmt) isStmt()      {}
func (ExprStmt) isStmt()     {}

// Module is the unit a frontend hands to the compiler: an ordered list
// of statements belonging to one namespace.
type Module struct {
	Statements []Stmt
}

// LiteralKind tags the syntactic kind of a Literal; the literal's text
// is unparsed and is interpreted by the host-supplied literal_mapper at
// compile time.
type LiteralKind uint8

const (
	LiteralBool LiteralKind = iota
	LiteralString
	LiteralNumber
	LiteralDecimal
	LiteralBytes
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralBool:
		return "bool"
	case LiteralString:
		return "string"
	case LiteralNumber:
		return "number"
	case LiteralDecimal:
		return "decimal"
	case LiteralBytes:
		return "bytes"
	default:
		return fmt.Sprintf("literal(%d)", k)
	}
}

// Literal is an unparsed literal token as written by the frontend.
type Literal struct {
	Kind LiteralKind
	Text string
}

// Binder names (or discards) the value produced by a Let's bound
// expression.
type Binder interface {
	isBinder()
}

type (
	BinderUnit   struct{}
	BinderIgnore struct{}
	BinderIdent  struct{ Ident Ident }
)

func (BinderUnit) isBinder()   {}
func (BinderIgnore) isBinder() {}
func (BinderIdent) isBinder()  {}

// Expr is an IR expression node. Every variant, when lowered and
// executed, leaves exactly one value on the VM's value stack.
type Expr interface {
	isExpr()
	Span() Span
}

type LiteralExpr struct {
	SpanVal Span
	Literal Literal
}

type PathExpr struct {
	SpanVal Span
	Path    Path
}

// ListExpr is an ordered sequence of expressions; its runtime semantics
// are configured by CompilationParams.SequenceConstructor (see the
// compile package and spec §9's open question on Sequence/List).
type ListExpr struct {
	SpanVal Span
	Items   []Expr
}

// LetExpr binds the value of Bind to Binder, then evaluates In.
type LetExpr struct {
	SpanVal Span
	Binder  Binder
	Bind    Expr
	In      Expr
}

// FieldExpr reads StructIdent's FieldIdent field off the value produced
// by Expr.
type FieldExpr struct {
	SpanVal     Span
	Expr        Expr
	StructIdent Ident
	FieldIdent  Ident
}

// LambdaExpr introduces an anonymous function; args[0] after lowering is
// the lifted function value.
type LambdaExpr struct {
	SpanVal Span
	Impl    FunImpl
}

// CallExpr applies Args[0] to Args[1:]. Arity is len(Args)-1.
type CallExpr struct {
	SpanVal Span
	Args    []Expr
}

// IfExpr is a three-way conditional; Else is always present (a frontend
// that has no else-branch in its surface syntax must desugar to a unit
// literal).
type IfExpr struct {
	SpanVal Span
	Cond    Expr
	Then    Expr
	Else    Expr
}

func (e LiteralExpr) isExpr() {}
func (e PathExpr) isExpr()    {}
func (e ListExpr) isExpr()    {}
func (e LetExpr) isExpr()     {}
func (e FieldExpr) isExpr()   {}
func (e LambdaExpr) isExpr()  {}
func (e CallExpr) isExpr()    {}
func (e IfExpr) isExpr()      {}

func (e LiteralExpr) Span() Span { return e.SpanVal }
func (e PathExpr) Span() Span    { return e.SpanVal }
func (e ListExpr) Span() Span    { return e.SpanVal }
func (e LetExpr) Span() Span     { return e.SpanVal }
func (e FieldExpr) Span() Span   { return e.SpanVal }
func (e LambdaExpr) Span() Span  { return e.SpanVal }
func (e CallExpr) Span() Span    { return e.SpanVal }
func (e IfExpr) Span() Span      { return e.SpanVal }
