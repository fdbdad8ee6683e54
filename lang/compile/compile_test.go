package compile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincenthz/werbolg/lang/compile"
	"github.com/vincenthz/werbolg/lang/environ"
	"github.com/vincenthz/werbolg/lang/examplenif"
	"github.com/vincenthz/werbolg/lang/exec"
	"github.com/vincenthz/werbolg/lang/ir"
)

func litExpr(kind ir.LiteralKind, text string) ir.LiteralExpr {
	return ir.LiteralExpr{Literal: ir.Literal{Kind: kind, Text: text}}
}

func numLit(n string) ir.LiteralExpr { return litExpr(ir.LiteralNumber, n) }

func pathExpr(ident ir.Ident) ir.PathExpr { return ir.PathExpr{Path: ir.NewPath(ident)} }

func newState() *compile.CompilationState[examplenif.Lit] {
	return compile.NewCompilationState(compile.CompilationParams[examplenif.Lit]{LiteralMapper: examplenif.MapLiteral})
}

func newEnv() *environ.Environment[exec.Nif[examplenif.Lit], exec.Value] {
	env := environ.New[exec.Nif[examplenif.Lit], exec.Value]()
	examplenif.Register(env)
	return env
}

func asCompileErr(t *testing.T, err error) *compile.Error {
	t.Helper()
	require.Error(t, err)
	cerr, ok := err.(*compile.Error)
	require.True(t, ok, "expected *compile.Error, got %T", err)
	return cerr
}

func TestAddModuleDuplicateSymbol(t *testing.T) {
	cs := newState()
	mod := ir.Module{Statements: []ir.Stmt{
		ir.FunctionStmt{Def: ir.FunDef{Name: "f"}, Impl: ir.FunImpl{Body: numLit("1")}},
		ir.FunctionStmt{Def: ir.FunDef{Name: "f"}, Impl: ir.FunImpl{Body: numLit("2")}},
	}}
	err := cs.AddModule(ir.RootNamespace(), mod)
	assert.Equal(t, compile.ErrDuplicateSymbol, asCompileErr(t, err).Kind)
}

func TestAddModuleDuplicateNamespace(t *testing.T) {
	cs := newState()
	require.NoError(t, cs.AddModule(ir.RootNamespace(), ir.Module{}))
	err := cs.AddModule(ir.RootNamespace(), ir.Module{})
	assert.Equal(t, compile.ErrDuplicateNamespace, asCompileErr(t, err).Kind)
}

func TestFinalizeMissingSymbol(t *testing.T) {
	cs := newState()
	mod := ir.Module{Statements: []ir.Stmt{
		ir.FunctionStmt{Def: ir.FunDef{Name: "main"}, Impl: ir.FunImpl{Body: pathExpr("nope")}},
	}}
	require.NoError(t, cs.AddModule(ir.RootNamespace(), mod))
	_, err := cs.Finalize(newEnv())
	assert.Equal(t, compile.ErrMissingSymbol, asCompileErr(t, err).Kind)
}

func TestFinalizeMissingConstructor(t *testing.T) {
	cs := newState()
	mod := ir.Module{Statements: []ir.Stmt{
		ir.FunctionStmt{Def: ir.FunDef{Name: "main"}, Impl: ir.FunImpl{Body: ir.FieldExpr{
			Expr:        numLit("1"),
			StructIdent: "Missing",
			FieldIdent:  "x",
		}}},
	}}
	require.NoError(t, cs.AddModule(ir.RootNamespace(), mod))
	_, err := cs.Finalize(newEnv())
	assert.Equal(t, compile.ErrMissingConstructor, asCompileErr(t, err).Kind)
}

func TestFunctionParamsMoreThanLimit(t *testing.T) {
	cs := newState()
	vars := make([]ir.Variable, 256)
	for i := range vars {
		vars[i] = ir.Variable{Ident: ir.Ident("p")}
	}
	mod := ir.Module{Statements: []ir.Stmt{
		ir.FunctionStmt{Def: ir.FunDef{Name: "main"}, Impl: ir.FunImpl{Vars: vars, Body: numLit("1")}},
	}}
	require.NoError(t, cs.AddModule(ir.RootNamespace(), mod))
	_, err := cs.Finalize(newEnv())
	assert.Equal(t, compile.ErrFunctionParamsMoreThanLimit, asCompileErr(t, err).Kind)
}

func TestLiteralNotSupported(t *testing.T) {
	cs := newState()
	mod := ir.Module{Statements: []ir.Stmt{
		ir.FunctionStmt{Def: ir.FunDef{Name: "main"}, Impl: ir.FunImpl{Body: litExpr(ir.LiteralDecimal, "1.5")}},
	}}
	require.NoError(t, cs.AddModule(ir.RootNamespace(), mod))
	_, err := cs.Finalize(newEnv())
	assert.Equal(t, compile.ErrLiteralNotSupported, asCompileErr(t, err).Kind)
}

func TestSequenceConstructorRequired(t *testing.T) {
	cs := newState()
	mod := ir.Module{Statements: []ir.Stmt{
		ir.FunctionStmt{Def: ir.FunDef{Name: "main"}, Impl: ir.FunImpl{Body: ir.ListExpr{}}},
	}}
	require.NoError(t, cs.AddModule(ir.RootNamespace(), mod))
	_, err := cs.Finalize(newEnv())
	assert.Equal(t, compile.ErrSequenceConstructorRequired, asCompileErr(t, err).Kind)
}

// TestCompileAndRunEndToEnd exercises the whole pipeline -- IR in,
// executed Value out -- without going through the lang/asm textual
// format, pinning AddModule+Finalize's contract against lang/exec
// directly.
func TestCompileAndRunEndToEnd(t *testing.T) {
	cs := newState()
	body := ir.CallExpr{Args: []ir.Expr{pathExpr("+"), numLit("3"), numLit("4")}}
	mod := ir.Module{Statements: []ir.Stmt{
		ir.FunctionStmt{Def: ir.FunDef{Name: "main"}, Impl: ir.FunImpl{Body: body}},
	}}
	require.NoError(t, cs.AddModule(ir.RootNamespace(), mod))

	env := newEnv()
	unit, err := cs.Finalize(env)
	require.NoError(t, err)

	entry, ok := unit.FunsTbl.Get(ir.NewAbsPath(ir.RootNamespace(), "main"))
	require.True(t, ok)

	globals, nifs := env.Finalize()
	execEnv := exec.NewEnviron(globals, nifs)
	m := exec.NewMachine(unit, execEnv, examplenif.Factory{}, examplenif.ToValue)

	result, err := m.Initialize(entry, nil)
	require.NoError(t, err)
	assert.Equal(t, examplenif.Int(7), result)
}
