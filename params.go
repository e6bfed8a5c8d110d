package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"

	"github.com/launchdarkly/exude/framework"
)

type commandParams struct {
	filters  framework.RegexFilters
	list     bool
	debug    bool
	debugAll bool
	logLevel string
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.list, "list", false, "list the test commands without running them")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.logLevel, "log-level", "warn", "level of harness log output: debug, info, warn, error, none")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if _, ok := parseLogLevel(c.logLevel); !ok {
		fmt.Fprintf(errOut, "invalid -log-level %q\n", c.logLevel)
		fs.Usage()
		return false
	}
	return true
}

func (c *commandParams) loggers(out io.Writer) ldlog.Loggers {
	level, _ := parseLogLevel(c.logLevel)
	loggers := ldlog.NewDefaultLoggers()
	loggers.SetBaseLogger(log.New(out, "", log.LstdFlags))
	loggers.SetMinLevel(level)
	return loggers
}

func parseLogLevel(s string) (ldlog.LogLevel, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return ldlog.Debug, true
	case "info":
		return ldlog.Info, true
	case "warn":
		return ldlog.Warn, true
	case "error":
		return ldlog.Error, true
	case "none":
		return ldlog.None, true
	}
	return ldlog.Warn, false
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that runs only the factory methods with failed tests.
func rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program)
	seen := make(map[string]bool)
	for _, f := range failures {
		if len(f.TestID.Path) == 0 || seen[f.TestID.Path[0]] {
			continue
		}
		seen[f.TestID.Path[0]] = true
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.Path[0])+"$")
	}
	return b.String()
}
