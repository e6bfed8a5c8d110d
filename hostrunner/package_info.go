// Package hostrunner runs the factory methods of a firstclass.Registry as tests in the
// framework package's test context.
//
// It plays the part of the host runner: it creates host instances when a command asks for
// one, calls Command.Execute, and turns returned errors, panics and skip reasons into test
// results.
package hostrunner
