// Package scenarios contains first-class test suites that exercise the firstclass package
// end to end. They are what the exude command runs.
package scenarios
