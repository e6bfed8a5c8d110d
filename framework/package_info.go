// Package framework contains a small host runner for tests that run outside of "go test".
//
// There is a general notion of a test context which is similar to Go's *testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. Tests can be selected with regex filters, and progress is reported
// through a TestLogger.
//
// Code that knows where the tests come from, such as the hostrunner package, builds on top of
// the test context.
package framework
