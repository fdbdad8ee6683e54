package compile

import (
	"github.com/vincenthz/werbolg/lang/idvec"
	"github.com/vincenthz/werbolg/lang/ir"
	"github.com/vincenthz/werbolg/lang/symbol"
)

// Finalize lowers every function recorded by prior AddModule calls to
// bytecode and assembles the result into a CompilationUnit, per spec.md
// §4.3's finalize steps:
//
//  1. seed a GlobalBindings from env's NIFs and globals;
//  2. add every top-level function's path, failing with
//     ErrDuplicateSymbolEnv on a collision with a host-provided symbol;
//  3. generate code for each top-level function, draining the lambda
//     queue as lowering discovers nested lambdas;
//  4. concatenate FunDefs, top-level first then lambdas, preserving id
//     order;
//  5. merge the lambda-side code buffer after the main one and patch
//     every lambda FunDef's CodePos by the resulting offset;
//  6. assert no forward jump was left unresolved.
func (cs *CompilationState[L]) Finalize(env SymbolSource) (*CompilationUnit[L], error) {
	globals := symbol.NewGlobalBindings()

	for _, p := range env.NifPaths() {
		globals.Add(p.Path, symbol.NifBinding(p.ID))
	}
	for _, p := range env.GlobalPaths() {
		globals.Add(p.Path, symbol.GlobalBinding(p.ID))
	}

	var addErr error
	cs.funs.Values.Iter(func(id ir.FunId, entry funEntry) bool {
		if !globals.Add(entry.Path, symbol.FunBinding(id)) {
			addErr = &Error{Kind: ErrDuplicateSymbolEnv, AbsP: entry.Path}
			return false
		}
		return true
	})
	if addErr != nil {
		return nil, addErr
	}

	topCount := cs.funs.Values.Len()
	lambdaQ := newLambdaQueue(topCount)

	mainCode := NewCode()
	funDefs := make([]FunDef, topCount)

	var genErr error
	cs.funs.Values.Iter(func(id ir.FunId, entry funEntry) bool {
		res := cs.resolvers[entry.NS.String()]
		fg := &fgen[L]{cs: cs, globals: globals, resolver: res, ns: entry.NS, code: mainCode, lambdaQ: lambdaQ}
		def, err := fg.generateFuncCode(entry.Def.Name, entry.Span, entry.Impl, cs.params.EnableTailCalls)
		if err != nil {
			genErr = err
			return false
		}
		funDefs[id] = def
		return true
	})
	if genErr != nil {
		return nil, genErr
	}

	lambdaCode := NewCode()
	lambdaDefs := make([]FunDef, 0, len(lambdaQ.jobs))
	for i := 0; i < len(lambdaQ.jobs); i++ {
		job := lambdaQ.jobs[i]
		fg := &fgen[L]{cs: cs, globals: globals, resolver: job.resolver, ns: job.ns, code: lambdaCode, lambdaQ: lambdaQ}
		name := ir.Ident("<lambda>")
		def, err := fg.generateFuncCode(name, job.impl.Body.Span(), job.impl, cs.params.EnableTailCalls)
		if err != nil {
			return nil, err
		}
		lambdaDefs = append(lambdaDefs, def)
	}

	diff := mainCode.Merge(lambdaCode)
	for i := range lambdaDefs {
		lambdaDefs[i].CodePos = ir.InstructionAddress(int32(lambdaDefs[i].CodePos) + int32(diff))
	}

	if mainCode.OpenTemps() != 0 {
		panic("compile: unresolved forward jump at finalize")
	}

	// top-level FunDefs keep their pre-allocated ids; lambda FunDefs were
	// queued continuing from topCount, so splicing them on in order
	// reproduces the ids handed out during lowering.
	funsVec := idvec.NewWithCapacity[ir.FunId, FunDef](topCount + len(lambdaDefs))
	for _, def := range append(funDefs, lambdaDefs...) {
		funsVec.Push(def)
	}

	return &CompilationUnit[L]{
		Lits:    cs.lits.Finalize(),
		Constrs: cs.constrs,
		Funs:    funsVec,
		FunsTbl: cs.funs.Table,
		Code:    mainCode.Vec(),
	}, nil
}
