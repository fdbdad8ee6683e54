// Package asm implements the pseudo-assembly textual form of a compiled
// program: an encoder, a parser, and a disassembler. This is test/CLI
// tooling only, grounded on the teacher's lang/compiler/asm.go scanner
// design (bufio.Scanner over whitespace-split fields, per-section
// parse functions accumulating into a shared error field) -- it is not
// a wire format the VM consumes; the VM only ever executes an in-memory
// CompilationUnit.
//
// Grammar:
//
//	module:
//	  namespace <dotted.path>              # optional, defaults to root
//	  lits:
//	    string "abc"
//	    number 1234
//	  constrs:
//	    struct NAME field1 field2
//	  fun NAME <arity> <stack_size> @<code_pos>
//	  code:
//	    push_literal 0
//	    fetch_global 0
//	    call 1
//	    ret
package asm

// LiteralCodec bridges the asm format's two literal syntaxes ("string"
// and "number") to and from a host's compiled literal domain L.
type LiteralCodec[L comparable] struct {
	// Encode renders val as (keyword, text), keyword being "string" or
	// "number".
	Encode func(val L) (keyword, text string)
	// Decode parses keyword/text back into L.
	Decode func(keyword, text string) (L, error)
}
