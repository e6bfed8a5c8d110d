package firstclass

import (
	"reflect"
)

// Action is the form of test callback understood by Command. The instance is whatever the
// host runner passes to Execute: a new instance of the type declaring the factory method,
// or nil for static factories.
type Action func(instance any) error

// Case is a test case that can be turned into an executable Command when it is returned
// from a factory method run through FirstClassTests.
type Case interface {
	// ConvertToTestCommand binds the test case to the factory method that produced it.
	ConvertToTestCommand(method MethodInfo) (*Command, error)
}

// TestCase is a weakly-typed test case.
//
// This simple factory returns three test cases that all pass:
//
//	func YieldFirstClassTests() []firstclass.Case {
//		return []firstclass.Case{
//			firstclass.MustTestCase(func(any) error { return check(1 == 1) }),
//			firstclass.MustTestCase(func(any) error { return check(2 == 2) }),
//			firstclass.MustTestCase(func(any) error { return check(3 == 3) }),
//		}
//	}
type TestCase struct {
	testAction Action
}

// NewTestCase creates a TestCase that runs the given action. It returns a NilArgumentError
// if the action is nil.
func NewTestCase(testAction Action) (*TestCase, error) {
	if testAction == nil {
		return nil, &NilArgumentError{Param: "testAction"}
	}
	return &TestCase{testAction: testAction}, nil
}

// MustTestCase is like NewTestCase but panics on a nil action. It is meant for factory
// functions where the action is a literal.
func MustTestCase(testAction Action) *TestCase {
	c, err := NewTestCase(testAction)
	if err != nil {
		panic(err)
	}
	return c
}

// TestAction returns the action that was passed to NewTestCase.
func (c *TestCase) TestAction() Action {
	return c.testAction
}

// ConvertToTestCommand returns a Command that runs this test case's action. The command
// asks for a host instance unless the method is static.
func (c *TestCase) ConvertToTestCommand(method MethodInfo) (*Command, error) {
	if isNil(method) {
		return nil, &NilArgumentError{Param: "method"}
	}
	return NewCommand(c.testAction, method, !method.IsStatic())
}

// TypedTestCase is a strongly-typed test case. T is normally the type declaring the factory
// method; when the command runs, the instance supplied by the host runner is narrowed to T
// before the action is called.
//
//	func (s *Scenario) AParameterizedTest(x, y time.Time) error { ... }
//
//	func (s *Scenario) RunAParameterizedTest() []*firstclass.TypedTestCase[*Scenario] {
//		var cases []*firstclass.TypedTestCase[*Scenario]
//		for _, p := range pairs {
//			cases = append(cases, firstclass.MustTypedTestCase(func(s *Scenario) error {
//				return s.AParameterizedTest(p.x, p.y)
//			}))
//		}
//		return cases
//	}
type TypedTestCase[T any] struct {
	testAction func(T) error
}

// NewTypedTestCase creates a TypedTestCase. It returns a NilArgumentError if the action is
// nil.
func NewTypedTestCase[T any](testAction func(T) error) (*TypedTestCase[T], error) {
	if testAction == nil {
		return nil, &NilArgumentError{Param: "testAction"}
	}
	return &TypedTestCase[T]{testAction: testAction}, nil
}

// MustTypedTestCase is like NewTypedTestCase but panics on a nil action.
func MustTypedTestCase[T any](testAction func(T) error) *TypedTestCase[T] {
	c, err := NewTypedTestCase(testAction)
	if err != nil {
		panic(err)
	}
	return c
}

// TestAction returns the action that was passed to NewTypedTestCase.
func (c *TypedTestCase[T]) TestAction() func(T) error {
	return c.testAction
}

// ConvertToTestCommand returns a Command whose action checks that the instance it receives
// is a T. If it is not, the command fails with a TypeMismatchError and the typed action is
// not called.
//
// The command always asks for a host instance, even when the method is static, so a static
// factory registered with WithConstructor can produce typed test cases.
func (c *TypedTestCase[T]) ConvertToTestCommand(method MethodInfo) (*Command, error) {
	if isNil(method) {
		return nil, &NilArgumentError{Param: "method"}
	}
	return NewCommand(c.adaptTest, method, true)
}

func (c *TypedTestCase[T]) adaptTest(instance any) error {
	narrowed, ok := instance.(T)
	if !ok {
		return &TypeMismatchError{
			Expected: reflect.TypeOf((*T)(nil)).Elem(),
			Actual:   reflect.TypeOf(instance),
		}
	}
	return c.testAction(narrowed)
}
