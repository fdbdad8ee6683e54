package compile

import (
	"github.com/vincenthz/werbolg/lang/ir"
	"github.com/vincenthz/werbolg/lang/symbol"
)

// funEntry is the not-yet-compiled form of a top-level function,
// recorded by AddModule and turned into bytecode by Finalize.
type funEntry struct {
	NS   ir.Namespace
	Path ir.AbsPath
	Span ir.Span
	Def  ir.FunDef
	Impl ir.FunImpl
}

// SymbolSource is the subset of environ.Environment's surface the
// compiler needs to seed its global bindings: every registered NIF and
// global, by path and id. environ.Environment[N,G] satisfies this for
// any N, G since neither method's signature depends on them.
type SymbolSource interface {
	NifPaths() []symbol.PathID[ir.NifId]
	GlobalPaths() []symbol.PathID[ir.GlobalId]
}

// CompilationState accumulates IR modules across one or more calls to
// AddModule, then lowers everything it has accumulated to bytecode in
// one shot via Finalize.
type CompilationState[L comparable] struct {
	params CompilationParams[L]

	funs    *symbol.TableData[ir.FunId, funEntry]
	constrs *symbol.TableData[ir.ConstrId, ConstrDef]
	lits    *symbol.UniqueTableBuilder[ir.LitId, L]

	resolvers map[string]*moduleResolver
}

// NewCompilationState returns an empty CompilationState configured by
// params.
func NewCompilationState[L comparable](params CompilationParams[L]) *CompilationState[L] {
	return &CompilationState[L]{
		params:    params,
		funs:      symbol.NewTableData[ir.FunId, funEntry](),
		constrs:   symbol.NewTableData[ir.ConstrId, ConstrDef](),
		lits:      symbol.NewUniqueTableBuilder[ir.LitId, L](),
		resolvers: make(map[string]*moduleResolver),
	}
}

// AddModule registers ns's statements: function and struct definitions
// are recorded under ns, use declarations are queued for this
// namespace's resolver, and bare expressions at module scope are
// ignored (spec.md §4.3).
func (cs *CompilationState[L]) AddModule(ns ir.Namespace, mod ir.Module) error {
	if err := cs.funs.Table.CreateNamespace(ns); err != nil {
		return &Error{Kind: ErrDuplicateNamespace, AbsP: ir.AbsPath{NS: ns}}
	}
	if err := cs.constrs.Table.CreateNamespace(ns); err != nil {
		return &Error{Kind: ErrDuplicateNamespace, AbsP: ir.AbsPath{NS: ns}}
	}

	res := &moduleResolver{ns: ns}

	for _, stmt := range mod.Statements {
		switch s := stmt.(type) {
		case ir.UseStmt:
			res.uses = append(res.uses, s.Use)

		case ir.FunctionStmt:
			path := ir.NewAbsPath(ns, s.Def.Name)
			entry := funEntry{NS: ns, Path: path, Span: s.Span, Def: s.Def, Impl: s.Impl}
			if _, ok := cs.funs.Add(path, entry); !ok {
				return &Error{Kind: ErrDuplicateSymbol, Span: s.Span, Ident: s.Def.Name}
			}

		case ir.StructStmt:
			path := ir.NewAbsPath(ns, s.Def.Name)
			cdef := ConstrDef{Kind: ConstrStruct, Name: s.Def.Name, Fields: append([]ir.Ident(nil), s.Def.Fields...)}
			if _, ok := cs.constrs.Add(path, cdef); !ok {
				return &Error{Kind: ErrDuplicateSymbol, Span: s.Span, Ident: s.Def.Name}
			}

		case ir.ExprStmt:
			// ignored at module scope.
		}
	}

	key := ns.String()
	if _, exists := cs.resolvers[key]; exists {
		return &Error{Kind: ErrDuplicateNamespace, AbsP: ir.AbsPath{NS: ns}}
	}
	cs.resolvers[key] = res

	return nil
}
