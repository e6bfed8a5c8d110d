package scenarios

import (
	"fmt"
	"iter"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/exude/firstclass"
)

// Scenario declares instance factory methods. The host runner creates a new Scenario for each
// command and gives it the current test context.
type Scenario struct {
	t require.TestingT
}

func (s *Scenario) UseTestingT(t require.TestingT) { s.t = t }

// AParameterizedTest is the test logic shared by the cases from RunAParameterizedTest.
func (s *Scenario) AParameterizedTest(x, y time.Time) error {
	assert.True(s.t, x.Before(y), "expected %s to be before %s", x, y)
	return nil
}

// RunAParameterizedTest returns strongly-typed cases that run AParameterizedTest on the host
// instance.
func (s *Scenario) RunAParameterizedTest() []*firstclass.TypedTestCase[*Scenario] {
	plusOne := time.FixedZone("+01:00", 60*60)
	testCases := []struct{ x, y time.Time }{
		{
			x: time.Date(2002, 10, 12, 18, 15, 0, 0, plusOne),
			y: time.Date(2007, 4, 21, 18, 15, 0, 0, plusOne),
		},
		{
			x: time.Date(1970, 11, 25, 16, 10, 0, 0, plusOne),
			y: time.Date(1972, 6, 6, 8, 5, 0, 0, plusOne),
		},
		{
			x: time.Date(2014, 3, 2, 17, 18, 45, 0, plusOne),
			y: time.Date(2014, 3, 2, 17, 18, 45, 0, time.UTC),
		},
	}
	cases := make([]*firstclass.TypedTestCase[*Scenario], 0, len(testCases))
	for _, tc := range testCases {
		cases = append(cases, firstclass.MustTypedTestCase(func(s *Scenario) error {
			return s.AParameterizedTest(tc.x, tc.y)
		}))
	}
	return cases
}

// NumberedCases yields its cases lazily.
func (s *Scenario) NumberedCases() iter.Seq[firstclass.Case] {
	return func(yield func(firstclass.Case) bool) {
		for i := 1; i <= 5; i++ {
			c := firstclass.MustTypedTestCase(func(s *Scenario) error {
				require.Equal(s.t, i*i, square(i))
				return nil
			})
			if !yield(c) {
				return
			}
		}
	}
}

func square(n int) int { return n * n }

// YieldFirstClassTests returns three untyped cases that all pass.
func YieldFirstClassTests() []firstclass.Case {
	return []firstclass.Case{
		firstclass.MustTestCase(func(any) error { return checkEqual(1, 1) }),
		firstclass.MustTestCase(func(any) error { return checkEqual(2, 2) }),
		firstclass.MustTestCase(func(any) error { return checkEqual(3, 3) }),
	}
}

// ProjectTestCasesAsArray projects a table of values into cases.
func ProjectTestCasesAsArray() [3]*firstclass.TestCase {
	testCases := [3]struct{ x, y int }{
		{x: 1, y: 2},
		{x: 3, y: 8},
		{x: 42, y: 1337},
	}
	var ret [3]*firstclass.TestCase
	for i, tc := range testCases {
		ret[i] = firstclass.MustTestCase(func(any) error {
			if tc.x >= tc.y {
				return fmt.Errorf("expected %d < %d", tc.x, tc.y)
			}
			return nil
		})
	}
	return ret
}

func checkEqual(expected, actual int) error {
	if expected != actual {
		return fmt.Errorf("expected %d, got %d", expected, actual)
	}
	return nil
}
