package firstclass

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNilArgument is matched by every NilArgumentError.
var ErrNilArgument = errors.New("argument must not be nil")

// ErrInvalidFactory is returned when a value registered as a factory is not a function
// that can be called without arguments.
var ErrInvalidFactory = errors.New("factory must be a function or method with no parameters")

const invalidReturnTypeMessage = `The supplied method does not return a sequence of firstclass.Case. A method used with FirstClassTests must return []firstclass.Case (or a compatible type such as []*firstclass.TestCase or iter.Seq[firstclass.Case]), optionally followed by an error; for example:

func MyTestMethod() []firstclass.Case {
	// return test cases here
}
`

// NilArgumentError means that a required callback or method argument was nil.
type NilArgumentError struct {
	Param string
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, ErrNilArgument)
}

func (e *NilArgumentError) Is(target error) bool {
	return target == ErrNilArgument
}

// InvalidReturnTypeError means that a factory method's declared return type is not a
// sequence of test cases. Its message is fixed and describes the expected shape.
type InvalidReturnTypeError struct {
	Method     string
	ReturnType reflect.Type
}

func (e *InvalidReturnTypeError) Error() string {
	return invalidReturnTypeMessage
}

// TypeMismatchError means that the instance passed to a TypedTestCase's command could not
// be narrowed to the case's type parameter.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf(
		"the supplied instance isn't compatible with the type parameter of this TypedTestCase[%s]; the instance type was %s, but should have been convertible to %s",
		typeString(e.Expected), typeString(e.Actual), typeString(e.Expected))
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// isNil reports whether v is nil, including typed nil pointers stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
