package exec

import (
	"fmt"

	"github.com/vincenthz/werbolg/lang/ir"
)

// ErrorKind tags an ExecutionError's variant, mirroring spec.md §7's
// ExecutionError enumeration. Hosts can switch on Kind() rather than
// type-asserting the concrete Error.
type ErrorKind uint8

const (
	ErrArityError ErrorKind = iota
	ErrArityOverflow
	ErrCallingNotFunc
	ErrValueNotConditional
	ErrValueNotStruct
	ErrValueKindUnexpected
	ErrStructMismatch
	ErrStructFieldOutOfBound
	ErrMissingBinding
	ErrUserPanic
	ErrExecutionFinished
	ErrAbort
)

// Error is the single error type returned by machine operations.
type Error struct {
	kind ErrorKind

	Expected int
	Got      int

	ExpectedKind ValueKind
	GotKind      ValueKind

	ValueIs ValueKind

	Message string
}

// Kind returns e's variant.
func (e *Error) Kind() ErrorKind { return e.kind }

func (e *Error) Error() string {
	switch e.kind {
	case ErrArityError:
		return fmt.Sprintf("exec: arity error: expected %d, got %d", e.Expected, e.Got)
	case ErrArityOverflow:
		return fmt.Sprintf("exec: arity overflow: got %d arguments, limit is 255", e.Got)
	case ErrCallingNotFunc:
		return fmt.Sprintf("exec: calling non-function value of kind %d", e.ValueIs)
	case ErrValueNotConditional:
		return fmt.Sprintf("exec: value of kind %d is not conditional", e.ValueIs)
	case ErrValueNotStruct:
		return fmt.Sprintf("exec: value of kind %d is not a structure", e.ValueIs)
	case ErrValueKindUnexpected:
		return fmt.Sprintf("exec: unexpected value kind: expected %d, got %d", e.ExpectedKind, e.GotKind)
	case ErrStructMismatch:
		return fmt.Sprintf("exec: structure mismatch: expected constructor %d, got %d", e.Expected, e.Got)
	case ErrStructFieldOutOfBound:
		return fmt.Sprintf("exec: structure field index %d out of bound", e.Got)
	case ErrMissingBinding:
		return "exec: missing binding"
	case ErrUserPanic:
		return "exec: panic: " + e.Message
	case ErrExecutionFinished:
		return "exec: execution already finished"
	case ErrAbort:
		return "exec: aborted: " + e.Message
	default:
		return "exec: error"
	}
}

func errArity(expected, got int) error {
	return &Error{kind: ErrArityError, Expected: expected, Got: got}
}

func errArityOverflow(got int) error {
	return &Error{kind: ErrArityOverflow, Got: got}
}

func errCallingNotFunc(kind ValueKind) error {
	return &Error{kind: ErrCallingNotFunc, ValueIs: kind}
}

func errNotConditional(kind ValueKind) error {
	return &Error{kind: ErrValueNotConditional, ValueIs: kind}
}

func errNotStruct(kind ValueKind) error {
	return &Error{kind: ErrValueNotStruct, ValueIs: kind}
}

func errStructMismatch(expected, got ir.ConstrId) error {
	return &Error{kind: ErrStructMismatch, Expected: int(expected), Got: int(got)}
}

func errStructFieldOutOfBound(idx int) error {
	return &Error{kind: ErrStructFieldOutOfBound, Got: idx}
}

// NewValueKindUnexpected builds the ExecutionError a NIF returns when an
// argument's kind doesn't match what it expects.
func NewValueKindUnexpected(expected, got ValueKind) error {
	return &Error{kind: ErrValueKindUnexpected, ExpectedKind: expected, GotKind: got}
}

// NewUserPanic builds the ExecutionError a NIF returns to abort
// execution with a host-chosen message.
func NewUserPanic(message string) error {
	return &Error{kind: ErrUserPanic, Message: message}
}
