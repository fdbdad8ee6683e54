package compile

import (
	"github.com/vincenthz/werbolg/lang/ir"
	"github.com/vincenthz/werbolg/lang/symbol"
)

// fgen holds the state threaded through the lowering of a single
// function body: which namespace it belongs to (for resolving struct
// and field idents), its module's use-resolver, the global bindings
// seeded from the environment and every registered function, the
// lambda-side compile queue, and which Code buffer (main or lambda
// side) instructions are currently being emitted into.
type fgen[L comparable] struct {
	cs       *CompilationState[L]
	globals  *symbol.GlobalBindings
	resolver *moduleResolver
	ns       ir.Namespace
	code     *Code
	lambdaQ  *lambdaQueue
}

const maxArity = 255

// generateFuncCode lowers impl into fg.code, per spec.md §4.4: enter a
// fresh local scope, bind parameters, record the entry address, lower
// the body (leaving exactly one value on the stack), emit Ret, and
// compute the function's final local-stack size.
func (fg *fgen[L]) generateFuncCode(name ir.Ident, span ir.Span, impl ir.FunImpl, tail bool) (FunDef, error) {
	if len(impl.Vars) > maxArity {
		return FunDef{}, &Error{Kind: ErrFunctionParamsMoreThanLimit, Span: span, N: len(impl.Vars)}
	}

	locals := symbol.NewLocalBindings()
	for i, v := range impl.Vars {
		locals.AddParam(v.Ident, ir.ParamBindIndex(i))
	}

	codePos := fg.code.Position()

	if err := fg.lowerExpr(impl.Body, locals, tail); err != nil {
		return FunDef{}, err
	}
	fg.code.Push(Instruction{Op: Ret})

	stackSize := locals.Terminate()

	return FunDef{
		Name:      name,
		Arity:     ir.CallArity(len(impl.Vars)),
		StackSize: stackSize,
		CodePos:   codePos,
	}, nil
}

// lowerExpr lowers e into fg.code so that, once executed, it leaves
// exactly one value on the VM's value stack (spec.md §4.5 / testable
// property 1). tail is true when e occupies tail position in its
// enclosing function -- the only lowering this affects is a CallExpr,
// which emits TailCall instead of Call when tail calls are enabled.
func (fg *fgen[L]) lowerExpr(e ir.Expr, locals *symbol.LocalBindings, tail bool) error {
	switch ex := e.(type) {
	case ir.LiteralExpr:
		return fg.lowerLiteral(ex)

	case ir.PathExpr:
		return fg.lowerPath(ex, locals)

	case ir.ListExpr:
		return fg.lowerList(ex, locals)

	case ir.LetExpr:
		return fg.lowerLet(ex, locals, tail)

	case ir.FieldExpr:
		return fg.lowerField(ex, locals)

	case ir.LambdaExpr:
		return fg.lowerLambda(ex)

	case ir.CallExpr:
		return fg.lowerCall(ex, locals, tail)

	case ir.IfExpr:
		return fg.lowerIf(ex, locals, tail)

	default:
		panic("compile: unknown ir.Expr variant")
	}
}

func (fg *fgen[L]) lowerLiteral(e ir.LiteralExpr) error {
	val, err := fg.cs.params.LiteralMapper(e.SpanVal, e.Literal)
	if err != nil {
		return &Error{Kind: ErrLiteralNotSupported, Span: e.SpanVal, Lit: e.Literal, Inner: err}
	}
	id := fg.cs.lits.Add(val)
	fg.code.Push(Instruction{Op: PushLiteral, Arg: int32(id)})
	return nil
}

func (fg *fgen[L]) lowerPath(e ir.PathExpr, locals *symbol.LocalBindings) error {
	if len(e.Path.Segments) == 1 {
		if b, ok := locals.Lookup(e.Path.Segments[0]); ok {
			return fg.emitBinding(b, e.SpanVal, e.Path)
		}
	}

	for _, candidate := range fg.resolver.Candidates(e.Path) {
		if b, ok := fg.globals.Lookup(candidate); ok {
			return fg.emitBinding(b, e.SpanVal, e.Path)
		}
	}
	return &Error{Kind: ErrMissingSymbol, Span: e.SpanVal, Path: e.Path}
}

func (fg *fgen[L]) emitBinding(b symbol.BindingType, span ir.Span, path ir.Path) error {
	switch b.Kind {
	case symbol.BindGlobal:
		id, _ := b.Global()
		fg.code.Push(Instruction{Op: FetchGlobal, Arg: int32(id)})
	case symbol.BindNif:
		id, _ := b.Nif()
		fg.code.Push(Instruction{Op: FetchNif, Arg: int32(id)})
	case symbol.BindFun:
		id, _ := b.Fun()
		fg.code.Push(Instruction{Op: FetchFun, Arg: int32(id)})
	case symbol.BindParam:
		idx, _ := b.Param()
		fg.code.Push(Instruction{Op: FetchStackParam, Arg: int32(idx)})
	case symbol.BindLocal:
		idx, _ := b.Local()
		fg.code.Push(Instruction{Op: FetchStackLocal, Arg: int32(idx)})
	default:
		return &Error{Kind: ErrMissingSymbol, Span: span, Path: path}
	}
	return nil
}

func (fg *fgen[L]) lowerList(e ir.ListExpr, locals *symbol.LocalBindings) error {
	if fg.cs.params.SequenceConstructor != nil {
		for _, item := range e.Items {
			if err := fg.lowerExpr(item, locals, false); err != nil {
				return err
			}
		}
		fg.code.Push(Instruction{
			Op:   MakeStructure,
			Arg:  int32(*fg.cs.params.SequenceConstructor),
			Arg2: int32(len(e.Items)),
		})
		return nil
	}

	if len(e.Items) == 0 {
		return &Error{Kind: ErrSequenceConstructorRequired, Span: e.SpanVal}
	}
	for _, item := range e.Items[:len(e.Items)-1] {
		if err := fg.lowerExpr(item, locals, false); err != nil {
			return err
		}
		fg.code.Push(Instruction{Op: IgnoreOne})
	}
	return fg.lowerExpr(e.Items[len(e.Items)-1], locals, false)
}

func (fg *fgen[L]) lowerLet(e ir.LetExpr, locals *symbol.LocalBindings, tail bool) error {
	if err := fg.lowerExpr(e.Bind, locals, false); err != nil {
		return err
	}
	switch e.Binder.(type) {
	case ir.BinderIdent:
		ident := e.Binder.(ir.BinderIdent).Ident
		idx := locals.AllocLocal(ident)
		fg.code.Push(Instruction{Op: LocalBind, Arg: int32(idx)})
	case ir.BinderIgnore, ir.BinderUnit:
		fg.code.Push(Instruction{Op: IgnoreOne})
	}
	return fg.lowerExpr(e.In, locals, tail)
}

func (fg *fgen[L]) lowerField(e ir.FieldExpr, locals *symbol.LocalBindings) error {
	structPath := ir.NewAbsPath(fg.ns, e.StructIdent)
	constrId, ok := fg.cs.constrs.Table.Get(structPath)
	if !ok {
		return &Error{Kind: ErrMissingConstructor, Span: e.SpanVal, Path: ir.NewPath(e.StructIdent)}
	}
	def := fg.cs.constrs.Get(constrId)
	if def.Kind != ConstrStruct {
		return &Error{Kind: ErrConstructorNotStructure, Span: e.SpanVal, Path: ir.NewPath(e.StructIdent)}
	}
	fieldIdx := def.FieldIndex(e.FieldIdent)
	if fieldIdx < 0 {
		return &Error{Kind: ErrStructureFieldNotExistant, Span: e.SpanVal, Path: ir.NewPath(e.StructIdent), Field: e.FieldIdent}
	}

	if err := fg.lowerExpr(e.Expr, locals, false); err != nil {
		return err
	}
	fg.code.Push(Instruction{Op: AccessField, Arg: int32(constrId), Arg2: int32(fieldIdx)})
	return nil
}

func (fg *fgen[L]) lowerCall(e ir.CallExpr, locals *symbol.LocalBindings, tail bool) error {
	arity := len(e.Args) - 1
	if arity > maxArity {
		return &Error{Kind: ErrFunctionParamsMoreThanLimit, Span: e.SpanVal, N: arity}
	}
	for _, arg := range e.Args {
		if err := fg.lowerExpr(arg, locals, false); err != nil {
			return err
		}
	}
	op := Call
	if tail && fg.cs.params.EnableTailCalls {
		op = TailCall
	}
	fg.code.Push(Instruction{Op: op, Arg: int32(arity)})
	return nil
}

func (fg *fgen[L]) lowerLambda(e ir.LambdaExpr) error {
	id := fg.lambdaQ.push(lambdaJob{resolver: fg.resolver, ns: fg.ns, impl: e.Impl})
	fg.code.Push(Instruction{Op: FetchFun, Arg: int32(id)})
	return nil
}

func (fg *fgen[L]) lowerIf(e ir.IfExpr, locals *symbol.LocalBindings, tail bool) error {
	if err := fg.lowerExpr(e.Cond, locals, false); err != nil {
		return err
	}

	condRef := fg.code.PushTemp()
	condAddr := int32(fg.code.Position()) - 1

	locals.PushScope()
	if err := fg.lowerExpr(e.Then, locals, tail); err != nil {
		return err
	}
	locals.PopScope()

	jmpRef := fg.code.PushTemp()
	elsePos := int32(fg.code.Position())

	locals.PushScope()
	if err := fg.lowerExpr(e.Else, locals, tail); err != nil {
		return err
	}
	locals.PopScope()

	endPos := int32(fg.code.Position())

	fg.code.ResolveTemp(condRef, Instruction{Op: CondJump, Arg: elsePos - (condAddr + 1)})
	fg.code.ResolveTemp(jmpRef, Instruction{Op: Jump, Arg: endPos - elsePos})
	return nil
}
