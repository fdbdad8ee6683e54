package examplenif

import (
	"fmt"
	"strconv"

	"github.com/vincenthz/werbolg/lang/exec"
	"github.com/vincenthz/werbolg/lang/ir"
)

// Lit is the literal-pool domain for this package: the Kind plus a
// parsed, comparable payload, so the intern pool's equality check
// (testable property 4) reflects parsed value equality rather than raw
// source text equality. Numbers use Num; every other kind (including
// Bytes, stored as its raw string encoding so the struct stays
// comparable) uses Str.
type Lit struct {
	Kind ir.LiteralKind
	Str  string
	Num  int64
}

// MapLiteral is the CompilationParams.LiteralMapper for this package: it
// parses the frontend's unparsed literal text into Lit, rejecting
// Decimal (unsupported by this minimal host).
func MapLiteral(span ir.Span, lit ir.Literal) (Lit, error) {
	switch lit.Kind {
	case ir.LiteralBool:
		return Lit{Kind: lit.Kind, Str: lit.Text}, nil
	case ir.LiteralString:
		return Lit{Kind: lit.Kind, Str: lit.Text}, nil
	case ir.LiteralBytes:
		return Lit{Kind: lit.Kind, Str: lit.Text}, nil
	case ir.LiteralNumber:
		n, err := strconv.ParseInt(lit.Text, 10, 64)
		if err != nil {
			return Lit{}, fmt.Errorf("examplenif: malformed number literal %q: %w", lit.Text, err)
		}
		return Lit{Kind: lit.Kind, Num: n}, nil
	default:
		return Lit{}, fmt.Errorf("examplenif: literal kind %s not supported", lit.Kind)
	}
}

// ToValue is the literal_to_value conversion run at execution time,
// turning an interned Lit into a runtime exec.Value.
func ToValue(l Lit) exec.Value {
	switch l.Kind {
	case ir.LiteralBool:
		return Bool(l.Str == "true")
	case ir.LiteralString:
		return String(l.Str)
	case ir.LiteralBytes:
		return Bytes([]byte(l.Str))
	case ir.LiteralNumber:
		return Int(l.Num)
	default:
		panic("examplenif: literal mapper accepted an unsupported kind")
	}
}
