package asm

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/vincenthz/werbolg/lang/compile"
	"github.com/vincenthz/werbolg/lang/idvec"
	"github.com/vincenthz/werbolg/lang/ir"
	"github.com/vincenthz/werbolg/lang/symbol"
)

// parser holds the scanning state, following the teacher's asm.go
// pattern: fields are re-split per line, errors accumulate in err and
// every section function is a no-op once err is set.
type parser[L comparable] struct {
	s    *bufio.Scanner
	line int
	err  error

	codec LiteralCodec[L]

	ns      ir.Namespace
	lits    []L
	constrs *symbol.TableData[ir.ConstrId, compile.ConstrDef]
	code    *compile.Code
	funs    []compile.FunDef
	funsTbl *symbol.Table[ir.FunId]
}

// Parse decodes the pseudo-assembly text src into a CompilationUnit,
// using codec to decode literal lines.
func Parse[L comparable](src []byte, codec LiteralCodec[L]) (*compile.CompilationUnit[L], error) {
	p := &parser[L]{
		s:       bufio.NewScanner(bytes.NewReader(src)),
		codec:   codec,
		constrs: symbol.NewTableData[ir.ConstrId, compile.ConstrDef](),
		code:    compile.NewCode(),
		funsTbl: symbol.NewTable[ir.FunId](),
	}
	if err := p.funsTbl.CreateNamespace(ir.RootNamespace()); err != nil {
		return nil, err
	}
	if err := p.constrs.Table.CreateNamespace(ir.RootNamespace()); err != nil {
		return nil, err
	}

	fields := p.next()
	fields = p.namespace(fields)
	fields = p.litsSection(fields)
	fields = p.constrsSection(fields)

	for p.err == nil && len(fields) > 0 && fields[0] == "fun" {
		fields = p.funSection(fields)
	}

	if p.err != nil {
		return nil, p.err
	}
	if len(fields) > 0 {
		return nil, p.errf("unexpected input: %s", strings.Join(fields, " "))
	}

	litsVec := idvec.New[ir.LitId, L]()
	for _, l := range p.lits {
		litsVec.Push(l)
	}
	funsVec := idvec.New[ir.FunId, compile.FunDef]()
	for _, f := range p.funs {
		funsVec.Push(f)
	}

	return &compile.CompilationUnit[L]{
		Lits:    litsVec,
		Constrs: p.constrs,
		Funs:    funsVec,
		FunsTbl: p.funsTbl,
		Code:    p.code.Vec(),
	}, nil
}

func (p *parser[L]) errf(format string, args ...any) error {
	if p.err == nil {
		p.err = fmt.Errorf("asm:%d: %s", p.line, fmt.Sprintf(format, args...))
	}
	return p.err
}

func (p *parser[L]) next() []string {
	if p.err != nil {
		return nil
	}
	for p.s.Scan() {
		p.line++
		text := p.s.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		return fields
	}
	return nil
}

func (p *parser[L]) namespace(fields []string) []string {
	if len(fields) == 0 || fields[0] != "namespace" {
		p.ns = ir.RootNamespace()
		return fields
	}
	segs := strings.Split(fields[1], ".")
	idents := make([]ir.Ident, len(segs))
	for i, s := range segs {
		idents[i] = ir.Ident(s)
	}
	p.ns = ir.NewNamespace(idents...)
	if !p.ns.IsRoot() {
		if err := p.funsTbl.CreateNamespace(p.ns); err != nil {
			p.errf("duplicate namespace: %s", p.ns)
			return nil
		}
		if err := p.constrs.Table.CreateNamespace(p.ns); err != nil {
			p.errf("duplicate namespace: %s", p.ns)
			return nil
		}
	}
	return p.next()
}

func (p *parser[L]) litsSection(fields []string) []string {
	if len(fields) == 0 || fields[0] != "lits:" {
		return fields
	}
	fields = p.next()
	for p.err == nil && len(fields) >= 2 && (fields[0] == "string" || fields[0] == "number") {
		text := strings.Join(fields[1:], " ")
		if fields[0] == "string" {
			text = unquote(text)
		}
		val, err := p.codec.Decode(fields[0], text)
		if err != nil {
			p.errf("invalid literal: %s", err)
			return nil
		}
		p.lits = append(p.lits, val)
		fields = p.next()
	}
	return fields
}

func (p *parser[L]) constrsSection(fields []string) []string {
	if len(fields) == 0 || fields[0] != "constrs:" {
		return fields
	}
	fields = p.next()
	for p.err == nil && len(fields) >= 2 && fields[0] == "struct" {
		name := ir.Ident(fields[1])
		var fieldNames []ir.Ident
		for _, f := range fields[2:] {
			fieldNames = append(fieldNames, ir.Ident(f))
		}
		def := compile.ConstrDef{Kind: compile.ConstrStruct, Name: name, Fields: fieldNames}
		if _, ok := p.constrs.Add(ir.NewAbsPath(p.ns, name), def); !ok {
			p.errf("duplicate struct %q", name)
			return nil
		}
		fields = p.next()
	}
	return fields
}

func (p *parser[L]) funSection(fields []string) []string {
	if len(fields) < 5 || fields[0] != "fun" {
		p.errf("invalid fun header: %s", strings.Join(fields, " "))
		return nil
	}
	name := ir.Ident(fields[1])
	arity, err := strconv.Atoi(fields[2])
	if err != nil {
		p.errf("invalid arity: %s", fields[2])
		return nil
	}
	stackSize, err := strconv.Atoi(fields[3])
	if err != nil {
		p.errf("invalid stack_size: %s", fields[3])
		return nil
	}
	codePosText := strings.TrimPrefix(fields[4], "@")
	codePos, err := strconv.Atoi(codePosText)
	if err != nil {
		p.errf("invalid code_pos: %s", fields[4])
		return nil
	}

	if err := p.funsTbl.Insert(ir.NewAbsPath(p.ns, name), ir.FunId(len(p.funs))); err != nil {
		p.errf("duplicate function %q", name)
		return nil
	}
	p.funs = append(p.funs, compile.FunDef{
		Name:      name,
		Arity:     ir.CallArity(arity),
		StackSize: ir.LocalStackSize(stackSize),
		CodePos:   ir.InstructionAddress(codePos),
	})

	fields = p.next()
	if len(fields) == 0 || fields[0] != "code:" {
		p.errf("expected code: section for function %q", name)
		return nil
	}
	fields = p.next()
	for p.err == nil && len(fields) > 0 {
		if fields[0] == "fun" {
			break
		}
		if err := p.instruction(fields); err != nil {
			return nil
		}
		fields = p.next()
	}
	return fields
}

func (p *parser[L]) instruction(fields []string) error {
	op, ok := compile.OpcodeFromString(fields[0])
	if !ok {
		return p.errf("unknown opcode: %s", fields[0])
	}
	var arg, arg2 int64
	var err error
	if len(fields) > 1 {
		if arg, err = strconv.ParseInt(fields[1], 10, 32); err != nil {
			return p.errf("invalid operand: %s", fields[1])
		}
	}
	if len(fields) > 2 {
		if arg2, err = strconv.ParseInt(fields[2], 10, 32); err != nil {
			return p.errf("invalid second operand: %s", fields[2])
		}
	}
	p.code.Push(compile.Instruction{Op: op, Arg: int32(arg), Arg2: int32(arg2)})
	return nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
