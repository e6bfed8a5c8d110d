package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/launchdarkly/exude/framework"
	"github.com/launchdarkly/exude/hostrunner"
	"github.com/launchdarkly/exude/scenarios"
)

func main() {
	os.Exit(run(os.Args, color.Output, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	var params commandParams
	if !params.Read(args, errOut) {
		return 2
	}
	loggers := params.loggers(errOut)
	registry := scenarios.Registry()

	if params.list {
		ids, err := hostrunner.List(registry, loggers)
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		if err != nil {
			fmt.Fprintf(errOut, "Discovery errors:\n%s\n", err)
			return 1
		}
		return 0
	}

	framework.PrintFilterDescription(out, params.filters)

	fmt.Fprintln(out, "Running first-class tests")

	testLogger := &framework.ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results, err := hostrunner.RunRegistry(registry, params.filters.AsFilter, testLogger, loggers)

	fmt.Fprintln(out)
	framework.PrintResults(out, results)
	if err != nil {
		fmt.Fprintf(errOut, "\nDiscovery errors:\n%s\n", err)
	}
	if !results.OK() {
		fmt.Fprintf(out, "\nTo run only the failed tests again:\n  %s\n", rerunCommand(args[0], results.Failures))
		return 1
	}
	return 0
}
