package firstclass

import (
	"fmt"
	"reflect"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// MethodInfo describes a factory method: its name, the type that declares it, its declared
// attributes, and the ability to invoke it reflectively.
//
// Method is the implementation used by this package, but a host runner can supply its own.
type MethodInfo interface {
	// Name is the method's own name, without the declaring type.
	Name() string
	// TypeName identifies the declaring type. It may be empty for package-level functions
	// that were registered without one.
	TypeName() string
	// IsStatic is true if the method does not need an instance of its declaring type.
	IsStatic() bool
	// ReturnType is the method's first declared result type, or nil if it has none.
	ReturnType() reflect.Type
	// Invoke calls the method. The instance is ignored for static methods.
	Invoke(instance any) (any, error)
	// CreateInstance returns a new instance of the declaring type. For static methods it
	// returns nil unless a constructor was supplied.
	CreateInstance() (any, error)
	// Attributes returns the metadata declared when the method was registered.
	Attributes() Attributes
}

// Attributes is the declared metadata of a factory method.
type Attributes struct {
	// TimeoutMS is reported to the host runner; it is not enforced by this package.
	TimeoutMS ldvalue.OptionalInt `json:"timeoutMs,omitempty"`
	// DisplayName overrides the default "TypeName.Name" display name.
	DisplayName string `json:"displayName,omitempty"`
	// Skip, if not empty, is the reason why the method's test cases should not run.
	Skip string `json:"skip,omitempty"`
}

// Timeout returns the declared timeout, or zero if none was declared.
func (a Attributes) Timeout() time.Duration {
	return time.Duration(a.TimeoutMS.OrElse(0)) * time.Millisecond
}

// DisplayName returns the name under which a host runner should report the method.
func DisplayName(method MethodInfo) string {
	if name := method.Attributes().DisplayName; name != "" {
		return name
	}
	if method.TypeName() == "" {
		return method.Name()
	}
	return method.TypeName() + "." + method.Name()
}

// MethodOption configures a Method when it is created.
type MethodOption func(*Method)

// WithTimeout declares a timeout for the method's test cases.
func WithTimeout(timeout time.Duration) MethodOption {
	return func(m *Method) {
		m.attrs.TimeoutMS = ldvalue.NewOptionalInt(int(timeout / time.Millisecond))
	}
}

// WithDisplayName sets the name used when reporting the method.
func WithDisplayName(name string) MethodOption {
	return func(m *Method) {
		m.attrs.DisplayName = name
	}
}

// WithSkip marks all of the method's test cases as skipped.
func WithSkip(reason string) MethodOption {
	return func(m *Method) {
		m.attrs.Skip = reason
	}
}

// WithConstructor replaces the default zero-value construction of the declaring type. On a
// static method it supplies the instance that typed test cases receive.
func WithConstructor(newInstance func() (any, error)) MethodOption {
	return func(m *Method) {
		m.newInstance = newInstance
	}
}

// Method is a MethodInfo backed by reflection over a Go function or method.
type Method struct {
	name         string
	typeName     string
	hostType     reflect.Type
	fn           reflect.Value
	returnsError bool
	attrs        Attributes
	newInstance  func() (any, error)
}

// NewStaticMethod describes a function that takes no parameters, such as a package-level
// factory function or a closure. typeName is reported as the declaring type and may be
// empty.
func NewStaticMethod(typeName, name string, fn any, opts ...MethodOption) (*Method, error) {
	if isNil(fn) {
		return nil, &NilArgumentError{Param: "fn"}
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.Type().NumIn() != 0 {
		return nil, fmt.Errorf("%w: %s.%s has type %s", ErrInvalidFactory, typeName, name, fv.Type())
	}
	returnsError, err := checkResults(fv.Type())
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", typeName, name, err)
	}
	m := &Method{
		name:         name,
		typeName:     typeName,
		fn:           fv,
		returnsError: returnsError,
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// NewInstanceMethod describes the method with the given name on the type of host. Only the
// type of host is used, so a typed nil pointer such as (*MyTests)(nil) is acceptable. The
// method must take no parameters other than its receiver.
func NewInstanceMethod(host any, name string, opts ...MethodOption) (*Method, error) {
	if host == nil {
		return nil, &NilArgumentError{Param: "host"}
	}
	hostType := reflect.TypeOf(host)
	rm, ok := hostType.MethodByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no exported method %s", ErrInvalidFactory, hostType, name)
	}
	if rm.Type.NumIn() != 1 {
		return nil, fmt.Errorf("%w: %s.%s has type %s", ErrInvalidFactory, hostType, name, rm.Type)
	}
	returnsError, err := checkResults(rm.Type)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", hostType, name, err)
	}
	typeName := hostType
	if typeName.Kind() == reflect.Ptr {
		typeName = typeName.Elem()
	}
	m := &Method{
		name:         name,
		typeName:     typeName.String(),
		hostType:     hostType,
		fn:           rm.Func,
		returnsError: returnsError,
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

func checkResults(ft reflect.Type) (bool, error) {
	switch ft.NumOut() {
	case 0, 1:
		return false, nil
	case 2:
		if ft.Out(1) == errorType {
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: results must be (T) or (T, error), not %s", ErrInvalidFactory, ft)
}

func (m *Method) Name() string { return m.name }

func (m *Method) TypeName() string { return m.typeName }

func (m *Method) IsStatic() bool { return m.hostType == nil }

func (m *Method) Attributes() Attributes { return m.attrs }

func (m *Method) ReturnType() reflect.Type {
	if m.fn.Type().NumOut() == 0 {
		return nil
	}
	return m.fn.Type().Out(0)
}

func (m *Method) CreateInstance() (any, error) {
	if m.newInstance != nil {
		return m.newInstance()
	}
	if m.IsStatic() {
		return nil, nil
	}
	if m.hostType.Kind() == reflect.Ptr {
		return reflect.New(m.hostType.Elem()).Interface(), nil
	}
	return reflect.New(m.hostType).Elem().Interface(), nil
}

func (m *Method) Invoke(instance any) (any, error) {
	var args []reflect.Value
	if !m.IsStatic() {
		if isNil(instance) {
			return nil, &NilArgumentError{Param: "instance"}
		}
		iv := reflect.ValueOf(instance)
		if !iv.Type().AssignableTo(m.hostType) {
			return nil, &TypeMismatchError{Expected: m.hostType, Actual: iv.Type()}
		}
		args = []reflect.Value{iv}
	}
	out := m.fn.Call(args)
	if m.returnsError && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

func (m *Method) String() string {
	return DisplayName(m)
}
