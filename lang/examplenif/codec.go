package examplenif

import (
	"fmt"
	"strconv"

	"github.com/vincenthz/werbolg/lang/asm"
	"github.com/vincenthz/werbolg/lang/ir"
)

// Codec is the asm.LiteralCodec for this package's Lit domain, letting
// the CLI assemble/disassemble programs compiled against Register's
// environment.
var Codec = asm.LiteralCodec[Lit]{
	Encode: func(l Lit) (string, string) {
		if l.Kind == ir.LiteralNumber {
			return "number", strconv.FormatInt(l.Num, 10)
		}
		return "string", l.Str
	},
	Decode: func(keyword, text string) (Lit, error) {
		switch keyword {
		case "number":
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return Lit{}, fmt.Errorf("examplenif: malformed number literal %q: %w", text, err)
			}
			return Lit{Kind: ir.LiteralNumber, Num: n}, nil
		case "string":
			return Lit{Kind: ir.LiteralString, Str: text}, nil
		default:
			return Lit{}, fmt.Errorf("examplenif: unknown literal keyword %q", keyword)
		}
	},
}
