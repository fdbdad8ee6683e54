package compile

import (
	"fmt"

	"github.com/vincenthz/werbolg/lang/ir"
)

// ErrorKind tags the kind of compilation failure. Every compilation
// error carries the offending span where one is available, forwarded
// verbatim from the IR node that triggered it -- the compiler never
// interprets a span, it only relays it to the host's diagnostics.
type ErrorKind uint8

const (
	ErrDuplicateSymbol ErrorKind = iota
	ErrDuplicateSymbolEnv
	ErrDuplicateNamespace
	ErrMissingSymbol
	ErrMissingConstructor
	ErrConstructorNotStructure
	ErrStructureFieldNotExistant
	ErrFunctionParamsMoreThanLimit
	ErrLiteralNotSupported
	ErrSequenceConstructorRequired
	ErrNamespaceError
	ErrContext
)

// Error is the single error type returned by every compilation
// operation. Kind discriminates the failure; the remaining fields are
// populated according to Kind, mirroring spec.md's CompilationError
// variants.
type Error struct {
	Kind ErrorKind
	Span ir.Span

	Ident ir.Ident
	Path  ir.Path
	AbsP  ir.AbsPath
	Field ir.Ident
	N     int
	Lit   ir.Literal

	// Inner, when non-nil, is the error this one wraps while bubbling up
	// through nested scopes (CompilationError::Context in spec.md).
	Inner error
	Msg   string
}

func (e *Error) Unwrap() error { return e.Inner }

func (e *Error) Error() string {
	var base string
	switch e.Kind {
	case ErrDuplicateSymbol:
		base = fmt.Sprintf("duplicate symbol %q", e.Ident)
	case ErrDuplicateSymbolEnv:
		base = fmt.Sprintf("symbol %q clashes with a host-provided environment symbol", e.AbsP)
	case ErrDuplicateNamespace:
		base = fmt.Sprintf("duplicate namespace %q", e.AbsP.NS)
	case ErrMissingSymbol:
		base = fmt.Sprintf("missing symbol %q", pathString(e.Path))
	case ErrMissingConstructor:
		base = fmt.Sprintf("missing constructor %q", pathString(e.Path))
	case ErrConstructorNotStructure:
		base = fmt.Sprintf("constructor %q is not a structure", pathString(e.Path))
	case ErrStructureFieldNotExistant:
		base = fmt.Sprintf("structure %q has no field %q", pathString(e.Path), e.Field)
	case ErrFunctionParamsMoreThanLimit:
		base = fmt.Sprintf("function has %d parameters, more than the limit of 255", e.N)
	case ErrLiteralNotSupported:
		base = fmt.Sprintf("literal of kind %s not supported by this host", e.Lit.Kind)
	case ErrSequenceConstructorRequired:
		base = "empty list expression requires a CompilationParams.SequenceConstructor"
	case ErrNamespaceError:
		base = fmt.Sprintf("namespace error: %s", e.Msg)
	case ErrContext:
		base = e.Msg
	default:
		base = "compilation error"
	}
	if e.Inner != nil {
		return base + ": " + e.Inner.Error()
	}
	return base
}

// WithContext wraps err with an additional breadcrumb message,
// accumulated while bubbling up through nested scopes.
func WithContext(err error, msg string) error {
	return &Error{Kind: ErrContext, Msg: msg, Inner: err}
}

func pathString(p ir.Path) string {
	s := ""
	for i, seg := range p.Segments {
		if i > 0 {
			s += "::"
		}
		s += string(seg)
	}
	return s
}
