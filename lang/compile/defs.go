package compile

import "github.com/vincenthz/werbolg/lang/ir"

// FunDef is a compiled function's metadata: the VM consults it to know
// how many arguments to expect, how many local slots to reserve, and
// where its code begins.
type FunDef struct {
	Name      ir.Ident
	Arity     ir.CallArity
	StackSize ir.LocalStackSize
	CodePos   ir.InstructionAddress
}

// ConstrKind discriminates the two shapes a ConstrDef can take.
type ConstrKind uint8

const (
	ConstrStruct ConstrKind = iota
	ConstrEnum
)

// EnumVariant names one variant of an enum constructor and the
// ConstrId assigned to it.
type EnumVariant struct {
	Name   ir.Ident
	Constr ir.ConstrId
}

// ConstrDef describes a struct or enum constructor registered in a
// module: a struct's ordered field names, or an enum's variant list.
type ConstrDef struct {
	Kind     ConstrKind
	Name     ir.Ident
	Fields   []ir.Ident    // populated when Kind == ConstrStruct
	Variants []EnumVariant // populated when Kind == ConstrEnum
}

// FieldIndex returns the index of field within a struct ConstrDef, or
// -1 if Kind isn't ConstrStruct or the field doesn't exist.
func (c ConstrDef) FieldIndex(field ir.Ident) int {
	if c.Kind != ConstrStruct {
		return -1
	}
	for i, f := range c.Fields {
		if f == field {
			return i
		}
	}
	return -1
}
