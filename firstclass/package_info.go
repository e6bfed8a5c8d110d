// Package firstclass lets tests be written as first-class values returned from a factory
// function, instead of one test function per case.
//
// The model is:
//
// 1. A factory function or method returns a sequence of Case values. A TestCase wraps an
// untyped action; a TypedTestCase[T] wraps an action that takes a T, where T is normally the
// type declaring the factory method.
//
// 2. The factory is described by a MethodInfo (usually a Method created with NewStaticMethod
// or NewInstanceMethod) and added to a Registry.
//
// 3. FirstClassTests.EnumerateTestCommands checks the factory's declared return type,
// invokes it, and converts each Case into a Command bound to the factory's metadata.
//
// 4. A host runner, such as the one in the hostrunner package, creates a host instance when
// Command.ShouldCreateInstance says so and calls Command.Execute. Errors returned by test
// actions pass through Execute unchanged; reporting them is the host runner's job.
package firstclass
