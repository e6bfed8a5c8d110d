package scenarios

import (
	"time"

	"github.com/launchdarkly/exude/firstclass"
)

// Registry returns the factory methods of this package, in the order they should run.
func Registry() *firstclass.Registry {
	var r firstclass.Registry
	r.MustRegister(firstclass.NewStaticMethod("scenarios", "YieldFirstClassTests", YieldFirstClassTests))
	r.MustRegister(firstclass.NewStaticMethod("scenarios", "ProjectTestCasesAsArray", ProjectTestCasesAsArray))
	r.MustRegister(firstclass.NewInstanceMethod((*Scenario)(nil), "RunAParameterizedTest",
		firstclass.WithTimeout(5*time.Second)))
	r.MustRegister(firstclass.NewInstanceMethod((*Scenario)(nil), "NumberedCases"))
	r.MustRegister(firstclass.NewStaticMethod("scenarios", "HTTPStatusCases", HTTPStatusCases,
		firstclass.WithDisplayName("HTTP status")))
	return &r
}
