package examplenif

import (
	"github.com/vincenthz/werbolg/lang/environ"
	"github.com/vincenthz/werbolg/lang/exec"
	"github.com/vincenthz/werbolg/lang/ir"
)

func asInt(v exec.Value) (Int, error) {
	i, ok := v.(Int)
	if !ok {
		return 0, exec.NewValueKindUnexpected(KindInt, v.Descriptor())
	}
	return i, nil
}

func arith(name string, f func(a, b int64) int64) exec.Nif[Lit] {
	return exec.NewPureNif[Lit](name, 2, func(args []exec.Value) (exec.Value, error) {
		a, err := asInt(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInt(args[1])
		if err != nil {
			return nil, err
		}
		return Int(f(int64(a), int64(b))), nil
	})
}

func compare(name string, f func(a, b int64) bool) exec.Nif[Lit] {
	return exec.NewPureNif[Lit](name, 2, func(args []exec.Value) (exec.Value, error) {
		a, err := asInt(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asInt(args[1])
		if err != nil {
			return nil, err
		}
		return Bool(f(int64(a), int64(b))), nil
	})
}

// Register installs this package's arithmetic/comparison NIFs (+, -, *,
// ==, <) into env under the root namespace, mirroring the teacher's
// universe.go convention of a flat set of builtins registered at
// startup.
func Register(env *environ.Environment[exec.Nif[Lit], exec.Value]) {
	ns := ir.RootNamespace()
	env.AddNif(ir.NewAbsPath(ns, "+"), arith("+", func(a, b int64) int64 { return a + b }))
	env.AddNif(ir.NewAbsPath(ns, "-"), arith("-", func(a, b int64) int64 { return a - b }))
	env.AddNif(ir.NewAbsPath(ns, "*"), arith("*", func(a, b int64) int64 { return a * b }))
	env.AddNif(ir.NewAbsPath(ns, "=="), compare("==", func(a, b int64) bool { return a == b }))
	env.AddNif(ir.NewAbsPath(ns, "<"), compare("<", func(a, b int64) bool { return a < b }))
}
