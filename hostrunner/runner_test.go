package hostrunner

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlogtest"

	"github.com/launchdarkly/exude/firstclass"
	"github.com/launchdarkly/exude/framework"
)

type hostTests struct {
	t require.TestingT
}

func (h *hostTests) UseTestingT(t require.TestingT) { h.t = t }

func (h *hostTests) Cases() []*firstclass.TypedTestCase[*hostTests] {
	return []*firstclass.TypedTestCase[*hostTests]{
		firstclass.MustTypedTestCase(func(h *hostTests) error {
			require.NotNil(h.t, h.t)
			assert.Equal(h.t, 1, 1)
			return nil
		}),
		firstclass.MustTypedTestCase(func(h *hostTests) error {
			assert.Equal(h.t, 1, 2)
			return nil
		}),
	}
}

func (h *hostTests) Broken() int { return 0 }

func staticCases() []firstclass.Case {
	return []firstclass.Case{
		firstclass.MustTestCase(func(any) error { return nil }),
		firstclass.MustTestCase(func(any) error { return errors.New("returned error") }),
		firstclass.MustTestCase(func(any) error { panic("panicked") }),
		firstclass.MustTypedTestCase(func(*hostTests) error { return nil }),
	}
}

func resultsByID(results framework.Results) map[string]framework.TestResult {
	ret := make(map[string]framework.TestResult)
	for _, r := range results.Tests {
		ret[r.TestID.String()] = r
	}
	return ret
}

func newRegistry(t *testing.T) *firstclass.Registry {
	var r firstclass.Registry
	r.MustRegister(firstclass.NewStaticMethod("Fixture", "Static", staticCases, firstclass.WithTimeout(time.Second)))
	r.MustRegister(firstclass.NewInstanceMethod((*hostTests)(nil), "Cases"))
	r.MustRegister(firstclass.NewStaticMethod("Fixture", "Skipped", staticCases, firstclass.WithSkip("later")))
	return &r
}

func TestRunRegistry(t *testing.T) {
	results, err := RunRegistry(newRegistry(t), nil, nil, ldlog.NewDisabledLoggers())
	require.NoError(t, err)

	byID := resultsByID(results)
	assert.Empty(t, byID["Fixture.Static/#1"].Errors)
	assert.EqualError(t, byID["Fixture.Static/#2"].Errors[0], "returned error")
	assert.Contains(t, byID["Fixture.Static/#3"].Errors[0].Error(), "unexpected panic in test: panicked")

	var mismatch *firstclass.TypeMismatchError
	require.Len(t, byID["Fixture.Static/#4"].Errors, 1)
	assert.Contains(t, byID["Fixture.Static/#4"].Errors[0].Error(), "hostrunner.hostTests")
	assert.False(t, errors.As(byID["Fixture.Static/#4"].Errors[0], &mismatch), "errors are reported, not kept")

	assert.Empty(t, byID["hostrunner.hostTests.Cases/#1"].Errors)
	assert.Len(t, byID["hostrunner.hostTests.Cases/#2"].Errors, 1)

	for i := 1; i <= 4; i++ {
		r := byID["Fixture.Skipped/#"+string(rune('0'+i))]
		assert.True(t, r.Skipped)
		assert.Empty(t, r.Errors)
	}

	assert.False(t, results.OK())
	assert.Len(t, results.Failures, 4)
}

func TestRunRegistryStaticFactoryWithConstructor(t *testing.T) {
	constructed := 0
	var r firstclass.Registry
	r.MustRegister(firstclass.NewStaticMethod("Fixture", "TypedStatic", func() []*firstclass.TypedTestCase[*hostTests] {
		return []*firstclass.TypedTestCase[*hostTests]{
			firstclass.MustTypedTestCase(func(h *hostTests) error {
				require.NotNil(h.t, h.t)
				return nil
			}),
			firstclass.MustTypedTestCase(func(h *hostTests) error {
				assert.Equal(h.t, "x", "y")
				return nil
			}),
		}
	}, firstclass.WithConstructor(func() (any, error) {
		constructed++
		return &hostTests{}, nil
	})))

	results, err := RunRegistry(&r, nil, nil, ldlog.NewDisabledLoggers())
	require.NoError(t, err)

	byID := resultsByID(results)
	assert.Empty(t, byID["Fixture.TypedStatic/#1"].Errors)
	require.Len(t, byID["Fixture.TypedStatic/#2"].Errors, 1)
	assert.Contains(t, byID["Fixture.TypedStatic/#2"].Errors[0].Error(), "Not equal")
	assert.Equal(t, 2, constructed, "one instance per command")
	assert.Len(t, results.Failures, 1)
}

func TestRunRegistryAggregatesDiscoveryErrors(t *testing.T) {
	var r firstclass.Registry
	r.MustRegister(firstclass.NewInstanceMethod((*hostTests)(nil), "Broken"))
	r.MustRegister(firstclass.NewStaticMethod("Fixture", "Static", staticCases))
	r.MustRegister(firstclass.NewStaticMethod("Fixture", "AlsoBroken", func() string { return "" }))

	mockLog := ldlogtest.NewMockLog()
	results, err := RunRegistry(&r, nil, nil, mockLog.Loggers)
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	var invalid *firstclass.InvalidReturnTypeError
	assert.True(t, errors.As(merr.Errors[0], &invalid))

	byID := resultsByID(results)
	assert.Len(t, byID["hostrunner.hostTests.Broken"].Errors, 1)
	assert.Len(t, byID["Fixture.AlsoBroken"].Errors, 1)
	assert.Empty(t, byID["Fixture.Static/#1"].Errors, "other methods still run")
	assert.True(t, mockLog.HasMessageMatch(ldlog.Error, "Discovery failed for Fixture.AlsoBroken"))
}

func TestRunRegistryFilter(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set(`^hostrunner\.`))

	var started []string
	logger := &startedLogger{started: &started}
	results, err := RunRegistry(newRegistry(t), filters.AsFilter, logger, ldlog.NewDisabledLoggers())
	require.NoError(t, err)

	for _, s := range started {
		if !strings.HasPrefix(s, "hostrunner.") {
			assert.True(t, resultsByID(results)[s].Skipped, s)
		}
	}
	assert.Len(t, results.Failures, 1)
}

func TestRunRegistryDebugOutputIncludesTimeout(t *testing.T) {
	var r firstclass.Registry
	r.MustRegister(firstclass.NewStaticMethod("Fixture", "Timed", func() []firstclass.Case {
		return []firstclass.Case{firstclass.MustTestCase(func(any) error { return nil })}
	}, firstclass.WithTimeout(250*time.Millisecond)))

	var output framework.CapturedOutput
	logger := &debugLogger{output: &output}
	_, err := RunRegistry(&r, nil, logger, ldlog.NewDisabledLoggers())
	require.NoError(t, err)

	var messages []string
	for _, m := range output {
		messages = append(messages, m.Message)
	}
	assert.Contains(t, messages, "declared timeout: 250ms (not enforced)")
	assert.Contains(t, messages, "Fixture.Timed: passed")
}

func TestList(t *testing.T) {
	var r firstclass.Registry
	r.MustRegister(firstclass.NewStaticMethod("Fixture", "Static", staticCases))
	r.MustRegister(firstclass.NewInstanceMethod((*hostTests)(nil), "Broken"))
	r.MustRegister(firstclass.NewInstanceMethod((*hostTests)(nil), "Cases"))

	ids, err := List(&r, ldlog.NewDisabledLoggers())
	assert.Error(t, err)

	var names []string
	for _, id := range ids {
		names = append(names, id.String())
	}
	assert.Equal(t, []string{
		"Fixture.Static/#1", "Fixture.Static/#2", "Fixture.Static/#3", "Fixture.Static/#4",
		"hostrunner.hostTests.Cases/#1", "hostrunner.hostTests.Cases/#2",
	}, names)
}

type startedLogger struct {
	started *[]string
}

func (l *startedLogger) TestStarted(id framework.TestID) { *l.started = append(*l.started, id.String()) }
func (l *startedLogger) TestError(framework.TestID, error) {}
func (l *startedLogger) TestFinished(framework.TestID, bool, framework.CapturedOutput) {}
func (l *startedLogger) TestSkipped(framework.TestID, string) {}

type debugLogger struct {
	startedLogger
	output *framework.CapturedOutput
}

func (l *debugLogger) TestStarted(framework.TestID) {}

func (l *debugLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	*l.output = append(*l.output, debugOutput...)
}
