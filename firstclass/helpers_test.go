package firstclass

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// sameFunc compares function identity, which == cannot do in Go.
func sameFunc(t *testing.T, expected, actual any) {
	require.Equal(t, reflect.ValueOf(expected).Pointer(), reflect.ValueOf(actual).Pointer())
}

func requireNilArgument(t *testing.T, err error, param string) {
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNilArgument), "expected ErrNilArgument, got %v", err)
	var nae *NilArgumentError
	require.True(t, errors.As(err, &nae))
	require.Equal(t, param, nae.Param)
}

// fakeMethod is a hand-built MethodInfo for tests that should not depend on Method.
type fakeMethod struct {
	name        string
	typeName    string
	static      bool
	returnType  reflect.Type
	invoke      func(instance any) (any, error)
	newInstance func() (any, error)
	attrs       Attributes

	invocations int
	instances   int
}

func (m *fakeMethod) Name() string             { return m.name }
func (m *fakeMethod) TypeName() string         { return m.typeName }
func (m *fakeMethod) IsStatic() bool           { return m.static }
func (m *fakeMethod) ReturnType() reflect.Type { return m.returnType }
func (m *fakeMethod) Attributes() Attributes   { return m.attrs }

func (m *fakeMethod) Invoke(instance any) (any, error) {
	m.invocations++
	if m.invoke == nil {
		return nil, nil
	}
	return m.invoke(instance)
}

func (m *fakeMethod) CreateInstance() (any, error) {
	m.instances++
	if m.newInstance == nil {
		return nil, nil
	}
	return m.newInstance()
}

func dummyMethod() *fakeMethod {
	return &fakeMethod{name: "Dummy", typeName: "Fixture", static: true}
}

func dummyAction(any) error { return nil }

type version struct {
	major, minor int
}

// Scenario is a host type used by the instance method tests.
type Scenario struct {
	created bool
	seen    []int
}

func (s *Scenario) YieldTypedCases() []*TypedTestCase[*Scenario] {
	var cases []*TypedTestCase[*Scenario]
	for i := 1; i <= 3; i++ {
		cases = append(cases, MustTypedTestCase(func(s *Scenario) error {
			s.seen = append(s.seen, i)
			return nil
		}))
	}
	return cases
}

func (s *Scenario) NotAFactory() int { return 1 }

func (s *Scenario) WithError() ([]Case, error) {
	return nil, errors.New("factory broke")
}
