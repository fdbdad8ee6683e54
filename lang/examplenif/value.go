// Package examplenif provides a minimal concrete exec.Value
// implementation and a small arithmetic/comparison NIF set, analogous to
// the teacher's lang/types package (the concrete Value implementation
// consumed by lang/machine). It exists to give the CLI and the seed
// end-to-end tests a host to run against; it is not part of the core
// compiler/VM contract.
package examplenif

import (
	"strconv"

	"github.com/vincenthz/werbolg/lang/exec"
	"github.com/vincenthz/werbolg/lang/ir"
)

const (
	KindInt exec.ValueKind = iota
	KindBool
	KindString
	KindBytes
	KindUnit
	KindStruct
	KindFun
)

// Int is an integral value.
type Int int64

func (i Int) Descriptor() exec.ValueKind               { return KindInt }
func (i Int) Conditional() (bool, bool)                 { return false, false }
func (i Int) Fun() (exec.ValueFun, bool)                { return exec.ValueFun{}, false }
func (i Int) Structure() (ir.ConstrId, []exec.Value, bool) { return 0, nil, false }
func (i Int) Index(int) (exec.Value, bool)              { return nil, false }
func (i Int) String() string                            { return strconv.FormatInt(int64(i), 10) }

// Bool is a boolean value.
type Bool bool

func (b Bool) Descriptor() exec.ValueKind               { return KindBool }
func (b Bool) Conditional() (bool, bool)                 { return bool(b), true }
func (b Bool) Fun() (exec.ValueFun, bool)                { return exec.ValueFun{}, false }
func (b Bool) Structure() (ir.ConstrId, []exec.Value, bool) { return 0, nil, false }
func (b Bool) Index(int) (exec.Value, bool)              { return nil, false }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// String is a text value.
type String string

func (s String) Descriptor() exec.ValueKind               { return KindString }
func (s String) Conditional() (bool, bool)                 { return false, false }
func (s String) Fun() (exec.ValueFun, bool)                { return exec.ValueFun{}, false }
func (s String) Structure() (ir.ConstrId, []exec.Value, bool) { return 0, nil, false }
func (s String) Index(int) (exec.Value, bool)              { return nil, false }
func (s String) String() string                            { return string(s) }

// Bytes is a raw byte-string value.
type Bytes []byte

func (b Bytes) Descriptor() exec.ValueKind               { return KindBytes }
func (b Bytes) Conditional() (bool, bool)                 { return false, false }
func (b Bytes) Fun() (exec.ValueFun, bool)                { return exec.ValueFun{}, false }
func (b Bytes) Structure() (ir.ConstrId, []exec.Value, bool) { return 0, nil, false }
func (b Bytes) Index(i int) (exec.Value, bool) {
	if i < 0 || i >= len(b) {
		return nil, false
	}
	return Int(b[i]), true
}

// Unit is the single-valued "no meaningful result" type, used for
// Ignore/Unit binders and dummy slots.
type Unit struct{}

func (Unit) Descriptor() exec.ValueKind               { return KindUnit }
func (Unit) Conditional() (bool, bool)                 { return false, false }
func (Unit) Fun() (exec.ValueFun, bool)                { return exec.ValueFun{}, false }
func (Unit) Structure() (ir.ConstrId, []exec.Value, bool) { return 0, nil, false }
func (Unit) Index(int) (exec.Value, bool)              { return nil, false }

// Fun wraps an exec.ValueFun as a first-class value.
type Fun struct{ F exec.ValueFun }

func (f Fun) Descriptor() exec.ValueKind               { return KindFun }
func (f Fun) Conditional() (bool, bool)                 { return false, false }
func (f Fun) Fun() (exec.ValueFun, bool)                { return f.F, true }
func (f Fun) Structure() (ir.ConstrId, []exec.Value, bool) { return 0, nil, false }
func (f Fun) Index(int) (exec.Value, bool)              { return nil, false }

// Struct is a struct or enum-variant instance.
type Struct struct {
	Constr ir.ConstrId
	Fields []exec.Value
}

func (s Struct) Descriptor() exec.ValueKind { return KindStruct }
func (s Struct) Conditional() (bool, bool)   { return false, false }
func (s Struct) Fun() (exec.ValueFun, bool)  { return exec.ValueFun{}, false }
func (s Struct) Structure() (ir.ConstrId, []exec.Value, bool) {
	return s.Constr, s.Fields, true
}
func (s Struct) Index(i int) (exec.Value, bool) {
	if i < 0 || i >= len(s.Fields) {
		return nil, false
	}
	return s.Fields[i], true
}

var (
	_ exec.Value = Int(0)
	_ exec.Value = Bool(false)
	_ exec.Value = String("")
	_ exec.Value = Bytes(nil)
	_ exec.Value = Unit{}
	_ exec.Value = Fun{}
	_ exec.Value = Struct{}
)
