// Package invoke calls generator values with a positional argument list.
//
// A value is invocable when it implements Callable or is a non-nil Go func.
// Plain funcs are called by reflection: a leading context.Context parameter is
// filled from the call context, arguments are assigned (or numerically
// converted) to the declared parameter types, and results of shape (), (T),
// (error) or (T, error) are accepted.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
)

var ErrNotInvocable = errors.New("invoke: value is not invocable")

// Callable is implemented by values that invoke themselves.
type Callable interface {
	Call(ctx context.Context, args []any) (any, error)
}

// Func adapts a typed generator to Callable.
type Func[V any] func(ctx context.Context, args ...any) (V, error)

func (f Func[V]) Call(ctx context.Context, args []any) (any, error) {
	return f(ctx, args...)
}

// IsInvocable reports whether v can be passed to Reflect.Invoke.
func IsInvocable(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(Callable); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// ArgError reports an argument that does not fit the generator's signature.
type ArgError struct {
	Index  int // -1 for arity errors
	Reason string
}

func (e *ArgError) Error() string {
	if e.Index < 0 {
		return "invoke: " + e.Reason
	}
	return fmt.Sprintf("invoke: argument %d: %s", e.Index, e.Reason)
}

// PanicError carries a panic raised by the generator.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("invoke: generator panicked: %v", e.Value) }

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Reflect is the default invoker. The zero value is ready to use and safe for
// concurrent use.
type Reflect struct{}

func (Reflect) Invoke(ctx context.Context, fn any, args []any) (out any, err error) {
	if !IsInvocable(fn) {
		return nil, ErrNotInvocable
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &PanicError{Value: r}
		}
	}()
	if c, ok := fn.(Callable); ok {
		return c.Call(ctx, args)
	}

	rv := reflect.ValueOf(fn)
	in, err := bind(ctx, rv.Type(), args)
	if err != nil {
		return nil, err
	}
	return results(rv.Type(), rv.Call(in))
}

// Params returns the number of positional parameters fn declares, not counting
// a leading context.Context. variadic is true when fn accepts a variable tail.
// Callables report (0, true).
func Params(fn any) (n int, variadic bool, ok bool) {
	if !IsInvocable(fn) {
		return 0, false, false
	}
	if _, isCallable := fn.(Callable); isCallable {
		return 0, true, true
	}
	t := reflect.TypeOf(fn)
	n = t.NumIn()
	if n > 0 && t.In(0) == ctxType {
		n--
	}
	if t.IsVariadic() {
		return n - 1, true, true
	}
	return n, false, true
}

func bind(ctx context.Context, t reflect.Type, args []any) ([]reflect.Value, error) {
	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}
	in := make([]reflect.Value, 0, len(params)+len(args))
	if len(params) > 0 && params[0] == ctxType {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(&ctx).Elem())
		params = params[1:]
	}

	fixed := len(params)
	var tail reflect.Type
	if t.IsVariadic() {
		fixed--
		tail = params[fixed].Elem()
		if len(args) < fixed {
			return nil, &ArgError{Index: -1, Reason: fmt.Sprintf("want at least %d arguments, got %d", fixed, len(args))}
		}
	} else if len(args) != fixed {
		return nil, &ArgError{Index: -1, Reason: fmt.Sprintf("want %d arguments, got %d", fixed, len(args))}
	}

	for i, a := range args {
		pt := tail
		if i < fixed {
			pt = params[i]
		}
		v, err := coerce(a, pt)
		if err != nil {
			return nil, &ArgError{Index: i, Reason: err.Error()}
		}
		in = append(in, v)
	}
	return in, nil
}

func coerce(a any, to reflect.Type) (reflect.Value, error) {
	if a == nil {
		switch to.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(to), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not assignable to %s", to)
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(to) {
		return v, nil
	}
	if numeric(v.Kind()) && numeric(to.Kind()) {
		return convertNumber(v, to)
	}
	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), to)
}

// convertNumber converts v to a numeric type only when the value survives:
// out-of-range values and fractional floats headed for an integer fail.
func convertNumber(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	lossy := fmt.Errorf("%s %v does not fit %s", v.Type(), v, to)
	dst := reflect.New(to).Elem()
	switch {
	case isInt(v.Kind()):
		n := v.Int()
		switch {
		case isInt(to.Kind()):
			if dst.OverflowInt(n) {
				return reflect.Value{}, lossy
			}
		case isUint(to.Kind()):
			if n < 0 || dst.OverflowUint(uint64(n)) {
				return reflect.Value{}, lossy
			}
		default:
			if f := v.Convert(to).Float(); f < math.MinInt64 || f >= 1<<63 || int64(f) != n {
				return reflect.Value{}, lossy
			}
		}
	case isUint(v.Kind()):
		u := v.Uint()
		switch {
		case isInt(to.Kind()):
			if u > math.MaxInt64 || dst.OverflowInt(int64(u)) {
				return reflect.Value{}, lossy
			}
		case isUint(to.Kind()):
			if dst.OverflowUint(u) {
				return reflect.Value{}, lossy
			}
		default:
			if f := v.Convert(to).Float(); f >= 1<<64 || uint64(f) != u {
				return reflect.Value{}, lossy
			}
		}
	default:
		f := v.Float()
		switch {
		case isInt(to.Kind()):
			if f != math.Trunc(f) || f < math.MinInt64 || f >= 1<<63 || dst.OverflowInt(int64(f)) {
				return reflect.Value{}, lossy
			}
		case isUint(to.Kind()):
			if f != math.Trunc(f) || f < 0 || f >= 1<<64 || dst.OverflowUint(uint64(f)) {
				return reflect.Value{}, lossy
			}
		default:
			if !math.IsInf(f, 0) && dst.OverflowFloat(f) {
				return reflect.Value{}, lossy
			}
		}
	}
	return v.Convert(to), nil
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func results(t reflect.Type, res []reflect.Value) (any, error) {
	switch len(res) {
	case 0:
		return nil, nil
	case 1:
		if t.Out(0) == errType {
			return nil, asError(res[0])
		}
		return res[0].Interface(), nil
	case 2:
		if t.Out(1) != errType {
			return nil, fmt.Errorf("invoke: second result must be error, got %s", t.Out(1))
		}
		if err := asError(res[1]); err != nil {
			return nil, err
		}
		return res[0].Interface(), nil
	default:
		return nil, fmt.Errorf("invoke: unsupported result count %d", len(res))
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
