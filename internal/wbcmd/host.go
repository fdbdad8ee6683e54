package wbcmd

import (
	"fmt"
	"os"

	"github.com/vincenthz/werbolg/lang/asm"
	"github.com/vincenthz/werbolg/lang/compile"
	"github.com/vincenthz/werbolg/lang/environ"
	"github.com/vincenthz/werbolg/lang/examplenif"
	"github.com/vincenthz/werbolg/lang/exec"
	"github.com/vincenthz/werbolg/lang/ir"
)

func loadUnit(path string) (*compile.CompilationUnit[examplenif.Lit], error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	unit, err := asm.Parse(src, examplenif.Codec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return unit, nil
}

// buildEnviron registers this package's example NIFs, the only host
// bindings the CLI knows about (frontends, and therefore richer hosts,
// are out of scope).
func buildEnviron() *environ.Environment[exec.Nif[examplenif.Lit], exec.Value] {
	env := environ.New[exec.Nif[examplenif.Lit], exec.Value]()
	examplenif.Register(env)
	return env
}

func findEntry(unit *compile.CompilationUnit[examplenif.Lit], name string) (ir.FunId, error) {
	id, ok := unit.FunsTbl.Get(ir.NewAbsPath(ir.RootNamespace(), ir.Ident(name)))
	if !ok {
		return 0, fmt.Errorf("no function named %q", name)
	}
	return id, nil
}

func newMachine(unit *compile.CompilationUnit[examplenif.Lit]) *exec.Machine[examplenif.Lit] {
	hostEnv := buildEnviron()
	globals, nifs := hostEnv.Finalize()
	execEnv := exec.NewEnviron(globals, nifs)
	return exec.NewMachine(unit, execEnv, examplenif.Factory{}, examplenif.ToValue)
}

func formatValue(v exec.Value) string {
	switch val := v.(type) {
	case fmt.Stringer:
		return val.String()
	case examplenif.Unit:
		return "()"
	case examplenif.Fun:
		return "<fun>"
	case examplenif.Struct:
		return fmt.Sprintf("struct#%d(%d fields)", val.Constr, len(val.Fields))
	default:
		return fmt.Sprintf("%v", v)
	}
}
