package firstclass

import (
	"fmt"
	"reflect"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

var caseType = reflect.TypeOf((*Case)(nil)).Elem()

// FirstClassTests turns factory methods into executable commands.
//
// A factory method returns a sequence of test cases: a slice or array whose element type
// implements Case (such as []Case, []*TestCase or [3]*TypedTestCase[*MyTests]), or an
// iter.Seq of such an element type. It may also return an error as its second result.
type FirstClassTests struct {
	Loggers ldlog.Loggers
}

// EnumerateTestCommands validates the method's declared return type, invokes it, and
// converts each test case it returns into a Command bound to the method. The commands are in
// the same order as the test cases.
//
// The return type is checked before anything is created or invoked; if it is not a sequence
// of test cases the result is an InvalidReturnTypeError. A host instance is only created for
// methods that are not static.
func (f *FirstClassTests) EnumerateTestCommands(method MethodInfo) ([]*Command, error) {
	if isNil(method) {
		return nil, &NilArgumentError{Param: "method"}
	}
	if IsReturnTypeInvalid(method) {
		return nil, &InvalidReturnTypeError{Method: DisplayName(method), ReturnType: method.ReturnType()}
	}

	var instance any
	if !method.IsStatic() {
		var err error
		if instance, err = method.CreateInstance(); err != nil {
			return nil, fmt.Errorf("could not create instance for %s: %w", DisplayName(method), err)
		}
	}
	returnValue, err := method.Invoke(instance)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", DisplayName(method), err)
	}

	cases, err := collectCases(returnValue)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", DisplayName(method), err)
	}
	commands := make([]*Command, 0, len(cases))
	for _, tc := range cases {
		cmd, err := tc.ConvertToTestCommand(method)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	f.Loggers.Debugf("Enumerated %d test commands from %s", len(commands), DisplayName(method))
	return commands, nil
}

// IsReturnTypeInvalid reports whether the method's declared return type is not a sequence of
// test cases. It only inspects types. A nil method has no valid return type.
func IsReturnTypeInvalid(method MethodInfo) bool {
	if isNil(method) {
		return true
	}
	_, ok := caseElemType(method.ReturnType())
	return !ok
}

func caseElemType(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem(), t.Elem().Implements(caseType)
	case reflect.Func:
		if t.NumIn() != 1 || t.NumOut() != 0 {
			return nil, false
		}
		yield := t.In(0)
		if yield.Kind() != reflect.Func || yield.NumIn() != 1 || yield.NumOut() != 1 ||
			yield.Out(0).Kind() != reflect.Bool {
			return nil, false
		}
		return yield.In(0), yield.In(0).Implements(caseType)
	}
	return nil, false
}

func collectCases(returnValue any) ([]Case, error) {
	if returnValue == nil {
		return nil, nil
	}
	v := reflect.ValueOf(returnValue)
	var cases []Case
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i).Interface()
			if isNil(elem) {
				return nil, &NilArgumentError{Param: fmt.Sprintf("test case %d", i)}
			}
			cases = append(cases, elem.(Case))
		}
	case reflect.Func:
		if v.IsNil() {
			return nil, nil
		}
		var nilErr error
		yieldType := v.Type().In(0)
		yield := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
			elem := args[0].Interface()
			if isNil(elem) {
				nilErr = &NilArgumentError{Param: fmt.Sprintf("test case %d", len(cases))}
				return []reflect.Value{reflect.ValueOf(false).Convert(yieldType.Out(0))}
			}
			cases = append(cases, elem.(Case))
			return []reflect.Value{reflect.ValueOf(true).Convert(yieldType.Out(0))}
		})
		v.Call([]reflect.Value{yield})
		if nilErr != nil {
			return nil, nilErr
		}
	}
	return cases, nil
}

// Registry is an ordered list of factory methods, standing in for attribute-based
// discovery.
type Registry struct {
	methods []MethodInfo
}

// Register adds a factory method to the registry.
func (r *Registry) Register(method MethodInfo) error {
	if isNil(method) {
		return &NilArgumentError{Param: "method"}
	}
	r.methods = append(r.methods, method)
	return nil
}

// MustRegister registers the result of NewStaticMethod or NewInstanceMethod, panicking if
// it failed. It is meant for package initialization:
//
//	registry.MustRegister(firstclass.NewStaticMethod("Scenario", "YieldFirstClassTests", YieldFirstClassTests))
func (r *Registry) MustRegister(method MethodInfo, err error) {
	if err != nil {
		panic(err)
	}
	if err := r.Register(method); err != nil {
		panic(err)
	}
}

// Methods returns the registered methods in registration order.
func (r *Registry) Methods() []MethodInfo {
	return append([]MethodInfo(nil), r.methods...)
}
