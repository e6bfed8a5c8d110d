package firstclass

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestCommandRequiresAction(t *testing.T) {
	cmd, err := NewCommand(nil, dummyMethod(), true)
	assert.Nil(t, cmd)
	requireNilArgument(t, err, "testAction")
}

func TestCommandRequiresMethod(t *testing.T) {
	cmd, err := NewCommand(dummyAction, nil, true)
	assert.Nil(t, cmd)
	requireNilArgument(t, err, "method")
}

func TestCommandProperties(t *testing.T) {
	for _, shouldCreate := range []bool{true, false} {
		method := dummyMethod()
		cmd, err := NewCommand(dummyAction, method, shouldCreate)
		require.NoError(t, err)

		sameFunc(t, dummyAction, cmd.TestAction())
		assert.Same(t, method, cmd.HostTestMethod())
		assert.Equal(t, shouldCreate, cmd.ShouldCreateInstance())
	}
}

func TestCommandExecuteInvokesActionOnceAndPasses(t *testing.T) {
	var calls []any
	method := &fakeMethod{name: "YieldFirstClassTests", typeName: "Scenario", static: true}
	cmd, err := NewCommand(func(instance any) error {
		calls = append(calls, instance)
		return nil
	}, method, false)
	require.NoError(t, err)

	result, err := cmd.Execute(nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Outcome: Passed, MethodName: "YieldFirstClassTests", TypeName: "Scenario"}, result)
	assert.Equal(t, []any{nil}, calls)
}

func TestCommandExecuteReturnsActionErrorUnchanged(t *testing.T) {
	expected := errors.New("1 != 2")
	cmd, err := NewCommand(func(any) error { return expected }, dummyMethod(), false)
	require.NoError(t, err)

	result, err := cmd.Execute(nil)
	assert.Same(t, expected, err)
	assert.Equal(t, Result{}, result)
}

func TestCommandExecuteDoesNotRecoverPanics(t *testing.T) {
	cmd, err := NewCommand(func(any) error { panic("boom") }, dummyMethod(), false)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "boom", func() { _, _ = cmd.Execute(nil) })
}

func TestCommandMetadataComesFromMethod(t *testing.T) {
	method := dummyMethod()
	cmd, err := NewCommand(dummyAction, method, false)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cmd.Timeout())
	assert.Equal(t, "Fixture.Dummy", cmd.DisplayName())
	assert.Equal(t, "", cmd.SkipReason())

	method.attrs = Attributes{
		TimeoutMS:   ldvalue.NewOptionalInt(1500),
		DisplayName: "my cases",
		Skip:        "not today",
	}
	assert.Equal(t, 1500*time.Millisecond, cmd.Timeout())
	assert.Equal(t, "my cases", cmd.DisplayName())
	assert.Equal(t, "not today", cmd.SkipReason())
}

func TestResultString(t *testing.T) {
	method := dummyMethod()
	assert.Equal(t, "Fixture.Dummy: passed", PassedResult(method).String())
	assert.Equal(t, "Fixture.Dummy: failed (bad)", FailedResult(method, "bad").String())
	assert.Equal(t, "Fixture.Dummy: skipped (later)", SkippedResult(method, "later").String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
