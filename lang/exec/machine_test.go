package exec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincenthz/werbolg/lang/asm"
	"github.com/vincenthz/werbolg/lang/environ"
	"github.com/vincenthz/werbolg/lang/examplenif"
	"github.com/vincenthz/werbolg/lang/exec"
)

func newMachine(t *testing.T, src string) *exec.Machine[examplenif.Lit] {
	t.Helper()
	unit, err := asm.Parse([]byte(src), examplenif.Codec)
	require.NoError(t, err)

	hostEnv := environ.New[exec.Nif[examplenif.Lit], exec.Value]()
	examplenif.Register(hostEnv)
	globals, nifs := hostEnv.Finalize()
	execEnv := exec.NewEnviron(globals, nifs)

	return exec.NewMachine(unit, execEnv, examplenif.Factory{}, examplenif.ToValue)
}

// TestArithmetic covers seed scenario (a): basic arithmetic via NIFs.
func TestArithmetic(t *testing.T) {
	src := `
lits:
  number 2
  number 3
  number 4
fun main 0 0 @0
code:
  fetch_nif 2
  fetch_nif 0
  push_literal 0
  push_literal 1
  call 2
  push_literal 2
  call 2
  ret
`
	m := newMachine(t, src)
	result, err := m.Initialize(0, nil)
	require.NoError(t, err)
	assert.Equal(t, examplenif.Int(20), result)
}

// TestArgumentOrderPreserved makes sure a non-commutative NIF ("-")
// receives its arguments in left-to-right source order, not reversed.
func TestArgumentOrderPreserved(t *testing.T) {
	src := `
lits:
  number 10
  number 3
fun main 0 0 @0
code:
  fetch_nif 1
  push_literal 0
  push_literal 1
  call 2
  ret
`
	m := newMachine(t, src)
	result, err := m.Initialize(0, nil)
	require.NoError(t, err)
	assert.Equal(t, examplenif.Int(7), result)
}

// TestLetShadowing covers seed scenario (b): two let bindings are
// stored in distinct local slots (0 and 1), and reading slot 1 back
// through FetchStackLocal yields the second bound value, not the first.
func TestLetShadowing(t *testing.T) {
	src := `
lits:
  number 1
  number 2
fun main 0 2 @0
code:
  push_literal 0
  local_bind 0
  push_literal 1
  local_bind 1
  fetch_stack_local 1
  ret
`
	m := newMachine(t, src)
	result, err := m.Initialize(0, nil)
	require.NoError(t, err)
	assert.Equal(t, examplenif.Int(2), result)
}

// TestIfBranches covers seed scenario (d): the CondJump/Jump pair
// lowered for an if-expression selects the correct branch both ways.
func TestIfBranches(t *testing.T) {
	t.Run("true branch", func(t *testing.T) {
		m := newMachine(t, `
lits:
  number 1
  number 10
  number 20
fun main 0 0 @0
code:
  fetch_nif 3
  push_literal 0
  push_literal 0
  call 2
  cond_jump 2
  push_literal 1
  jump 1
  push_literal 2
  ret
`)
		result, err := m.Initialize(0, nil)
		require.NoError(t, err)
		assert.Equal(t, examplenif.Int(10), result)
	})

	t.Run("false branch", func(t *testing.T) {
		m := newMachine(t, `
lits:
  number 1
  number 2
  number 10
  number 20
fun main 0 0 @0
code:
  fetch_nif 3
  push_literal 0
  push_literal 1
  call 2
  cond_jump 2
  push_literal 2
  jump 1
  push_literal 3
  ret
`)
		result, err := m.Initialize(0, nil)
		require.NoError(t, err)
		assert.Equal(t, examplenif.Int(20), result)
	})
}

// TestRecursiveFactorial covers seed scenario (e): a self-recursive
// function reached via FetchFun + Call. fact calls itself through its
// own FunId (0, the only function in this unit), recursing until the
// n==0 base case returns 1.
func TestRecursiveFactorial(t *testing.T) {
	src := `
lits:
  number 0
  number 1
fun fact 1 0 @0
code:
  fetch_nif 3
  fetch_stack_param 0
  push_literal 0
  call 2
  cond_jump 2
  push_literal 1
  jump 9
  fetch_nif 2
  fetch_stack_param 0
  fetch_fun 0
  fetch_nif 1
  fetch_stack_param 0
  push_literal 1
  call 2
  call 1
  call 2
  ret
`
	m := newMachine(t, src)
	result, err := m.Initialize(0, []exec.Value{examplenif.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, examplenif.Int(6), result)
}

// TestCallingNotFunc covers seed scenario (f): calling a value that
// isn't callable fails instead of panicking.
func TestCallingNotFunc(t *testing.T) {
	src := `
lits:
  number 1
fun main 0 0 @0
code:
  push_literal 0
  call 0
  ret
`
	m := newMachine(t, src)
	_, err := m.Initialize(0, nil)
	require.Error(t, err)
	execErr, ok := err.(*exec.Error)
	require.True(t, ok)
	assert.Equal(t, exec.ErrCallingNotFunc, execErr.Kind())
}

// TestCallArityOverflow covers seed scenario (g): Initialize/Call with
// more than 255 arguments fails with ArityOverflow instead of silently
// wrapping the arity into its uint8 encoding.
func TestCallArityOverflow(t *testing.T) {
	src := `
lits:
  number 1
fun main 0 0 @0
code:
  push_literal 0
  ret
`
	m := newMachine(t, src)
	args := make([]exec.Value, 256)
	for i := range args {
		args[i] = examplenif.Int(0)
	}

	_, err := m.Initialize(0, args)
	require.Error(t, err)
	execErr, ok := err.(*exec.Error)
	require.True(t, ok)
	assert.Equal(t, exec.ErrArityOverflow, execErr.Kind())
}

// TestStepExecEquivalence is testable property 8: driving Step manually
// to completion yields the same result as ExecLoop via Initialize.
func TestStepExecEquivalence(t *testing.T) {
	src := `
lits:
  number 6
  number 7
fun main 0 0 @0
code:
  fetch_nif 2
  push_literal 0
  push_literal 1
  call 2
  ret
`
	m1 := newMachine(t, src)
	want, err := m1.Initialize(0, nil)
	require.NoError(t, err)

	m2 := newMachine(t, src)
	require.NoError(t, m2.Call(0, nil))
	var got exec.Value
	for {
		v, done, err := m2.Step()
		require.NoError(t, err)
		if done {
			got = v
			break
		}
	}
	assert.Equal(t, want, got)
}
