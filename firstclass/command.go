package firstclass

import (
	"time"
)

// Command is an executable test case, usually produced by Case.ConvertToTestCommand.
//
// A Command has no internal state beyond what it was created with. The host runner calls
// Execute at most once.
type Command struct {
	testAction           Action
	method               MethodInfo
	shouldCreateInstance bool
}

// NewCommand creates a Command. shouldCreateInstance tells the host runner whether it must
// create an instance of the method's declaring type and pass it to Execute; it is false for
// static factories whose actions have already captured everything they need.
func NewCommand(testAction Action, method MethodInfo, shouldCreateInstance bool) (*Command, error) {
	if testAction == nil {
		return nil, &NilArgumentError{Param: "testAction"}
	}
	if isNil(method) {
		return nil, &NilArgumentError{Param: "method"}
	}
	return &Command{
		testAction:           testAction,
		method:               method,
		shouldCreateInstance: shouldCreateInstance,
	}, nil
}

// Execute runs the test action with the given instance. If the action succeeds, the result
// is Passed. If the action returns an error, that same error is returned and it is up to the
// host runner to report the failure; panics are not recovered either.
func (c *Command) Execute(instance any) (Result, error) {
	if err := c.testAction(instance); err != nil {
		return Result{}, err
	}
	return PassedResult(c.method), nil
}

// ShouldCreateInstance reports whether the host runner should pass a new instance of the
// method's declaring type to Execute.
func (c *Command) ShouldCreateInstance() bool {
	return c.shouldCreateInstance
}

// TestAction returns the action that Execute calls.
func (c *Command) TestAction() Action {
	return c.testAction
}

// HostTestMethod returns the factory method the command was created from.
func (c *Command) HostTestMethod() MethodInfo {
	return c.method
}

// Timeout returns the timeout declared for the factory method. It is informational only.
func (c *Command) Timeout() time.Duration {
	return c.method.Attributes().Timeout()
}

// DisplayName returns the factory method's display name.
func (c *Command) DisplayName() string {
	return DisplayName(c.method)
}

// SkipReason returns the skip reason declared for the factory method, if any.
func (c *Command) SkipReason() string {
	return c.method.Attributes().Skip
}
