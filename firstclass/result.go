package firstclass

import (
	"fmt"
)

// Outcome is the kind of a Result.
type Outcome int

const (
	Passed Outcome = iota
	Failed
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result is the outcome of running one Command, tagged with the factory method it came from.
// Command.Execute only produces Passed results; Failed and Skipped are built by host runners.
type Result struct {
	Outcome    Outcome
	MethodName string
	TypeName   string
	Reason     string
}

func PassedResult(method MethodInfo) Result {
	return newResult(Passed, method, "")
}

func FailedResult(method MethodInfo, reason string) Result {
	return newResult(Failed, method, reason)
}

func SkippedResult(method MethodInfo, reason string) Result {
	return newResult(Skipped, method, reason)
}

func newResult(outcome Outcome, method MethodInfo, reason string) Result {
	return Result{
		Outcome:    outcome,
		MethodName: method.Name(),
		TypeName:   method.TypeName(),
		Reason:     reason,
	}
}

func (r Result) String() string {
	name := r.MethodName
	if r.TypeName != "" {
		name = r.TypeName + "." + name
	}
	if r.Reason == "" {
		return fmt.Sprintf("%s: %s", name, r.Outcome)
	}
	return fmt.Sprintf("%s: %s (%s)", name, r.Outcome, r.Reason)
}
