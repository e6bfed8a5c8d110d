package hostrunner

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"

	"github.com/launchdarkly/exude/firstclass"
	"github.com/launchdarkly/exude/framework"
)

// TestingTReceiver can be implemented by the type declaring an instance factory method. Before
// each command runs, the runner passes the new instance the current test context, so that the
// instance's methods can use assert/require.
type TestingTReceiver interface {
	UseTestingT(t require.TestingT)
}

// RunRegistry discovers and runs the test commands of every method in the registry, in
// registration order.
//
// Each method is reported as a test named by its display name, with one subtest per command
// named "#1", "#2" and so on. If discovery fails for a method, that test fails and the error is
// also included in the returned error, which aggregates all discovery failures.
func RunRegistry(
	registry *firstclass.Registry,
	filter framework.Filter,
	testLogger framework.TestLogger,
	loggers ldlog.Loggers,
) (framework.Results, error) {
	var discoveryErrors *multierror.Error
	results := framework.Run(filter, testLogger, func(c *framework.Context) {
		for _, method := range registry.Methods() {
			c.Run(firstclass.DisplayName(method), func(c *framework.Context) {
				discovery := firstclass.FirstClassTests{Loggers: c.Loggers()}
				commands, err := discovery.EnumerateTestCommands(method)
				if err != nil {
					loggers.Errorf("Discovery failed for %s: %s", firstclass.DisplayName(method), err)
					discoveryErrors = multierror.Append(discoveryErrors, err)
					c.Errorf("%s", err)
					return
				}
				for i, cmd := range commands {
					c.Run(commandName(i), func(c *framework.Context) {
						runCommand(c, cmd)
					})
				}
			})
		}
	})
	return results, discoveryErrors.ErrorOrNil()
}

// List returns the IDs that RunRegistry would use for each command, without executing any of
// them. Factory methods are still invoked.
func List(registry *firstclass.Registry, loggers ldlog.Loggers) ([]framework.TestID, error) {
	var ids []framework.TestID
	var errs *multierror.Error
	discovery := firstclass.FirstClassTests{Loggers: loggers}
	for _, method := range registry.Methods() {
		commands, err := discovery.EnumerateTestCommands(method)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		parent := framework.TestID{Path: []string{firstclass.DisplayName(method)}}
		for i := range commands {
			ids = append(ids, parent.Plus(commandName(i)))
		}
	}
	return ids, errs.ErrorOrNil()
}

func commandName(index int) string {
	return fmt.Sprintf("#%d", index+1)
}

func runCommand(c *framework.Context, cmd *firstclass.Command) {
	if reason := cmd.SkipReason(); reason != "" {
		c.SkipWithReason(reason)
	}
	if timeout := cmd.Timeout(); timeout > 0 {
		c.Debug("declared timeout: %s (not enforced)", timeout)
	}

	var instance any
	if cmd.ShouldCreateInstance() {
		var err error
		instance, err = cmd.HostTestMethod().CreateInstance()
		require.NoError(c, err, "could not create instance of %s", cmd.HostTestMethod().TypeName())
		if r, ok := instance.(TestingTReceiver); ok {
			r.UseTestingT(c)
		}
	}

	result, err := cmd.Execute(instance)
	if err != nil {
		c.Errorf("%s", err)
		return
	}
	c.Debug("%s", result)
}
