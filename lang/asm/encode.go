package asm

import (
	"fmt"
	"strings"

	"github.com/vincenthz/werbolg/lang/compile"
	"github.com/vincenthz/werbolg/lang/ir"
)

// Encode renders unit back into the pseudo-assembly textual form
// accepted by Parse, using codec to render literal-pool entries.
func Encode[L comparable](unit *compile.CompilationUnit[L], codec LiteralCodec[L]) string {
	var b strings.Builder

	lits := unit.Lits.Slice()
	if len(lits) > 0 {
		fmt.Fprintln(&b, "lits:")
		for _, l := range lits {
			keyword, text := codec.Encode(l)
			if keyword == "string" {
				fmt.Fprintf(&b, "  string %q\n", text)
			} else {
				fmt.Fprintf(&b, "  %s %s\n", keyword, text)
			}
		}
	}

	constrs := unit.Constrs.Values.Slice()
	if len(constrs) > 0 {
		fmt.Fprintln(&b, "constrs:")
		for _, c := range constrs {
			if c.Kind != compile.ConstrStruct {
				continue
			}
			fields := make([]string, len(c.Fields))
			for i, f := range c.Fields {
				fields[i] = string(f)
			}
			fmt.Fprintf(&b, "  struct %s %s\n", c.Name, strings.Join(fields, " "))
		}
	}

	funs := unit.Funs.Slice()
	for _, f := range funs {
		fmt.Fprintf(&b, "fun %s %d %d @%d\n", f.Name, f.Arity, f.StackSize, f.CodePos)
		fmt.Fprintln(&b, "code:")
		writeCode(&b, unit, f, false)
	}

	return b.String()
}

// Disassemble renders each function's header line and instructions as
// Encode does, without the lits:/constrs: sections and code: markers,
// and annotates every Jump/CondJump with the absolute instruction
// address it resolves to -- useful for verifying the jump arithmetic
// testable property by inspection. Its output is not accepted by Parse.
func Disassemble[L comparable](unit *compile.CompilationUnit[L], codec LiteralCodec[L]) string {
	var b strings.Builder
	funs := unit.Funs.Slice()
	for _, f := range funs {
		fmt.Fprintf(&b, "fun %s %d %d @%d\n", f.Name, f.Arity, f.StackSize, f.CodePos)
		writeCode(&b, unit, f, true)
	}
	return b.String()
}

func writeCode[L comparable](b *strings.Builder, unit *compile.CompilationUnit[L], f compile.FunDef, annotate bool) {
	end := unit.Code.Len()
	for addr := int(f.CodePos); addr < end; addr++ {
		instr := unit.Code.Get(ir.InstructionAddress(addr))
		line := instr.Op.String()
		switch instr.Op {
		case compile.AccessField, compile.MakeStructure:
			line = fmt.Sprintf("  %s %d %d", line, instr.Arg, instr.Arg2)
		case compile.IgnoreOne, compile.Ret:
			line = "  " + line
		default:
			line = fmt.Sprintf("  %s %d", line, instr.Arg)
		}
		if annotate && (instr.Op == compile.Jump || instr.Op == compile.CondJump) {
			target := int32(addr) + 1 + instr.Arg
			line += fmt.Sprintf("  # -> @%d", target)
		}
		fmt.Fprintln(b, line)
		if instr.Op == compile.Ret {
			break
		}
	}
}
