package cachegen

import (
	"context"
	"fmt"
	"reflect"

	"github.com/unkn0wn-root/cachegen/invoke"
)

// Fallback is what GetOrGenerate stores on a miss: either a literal value or
// a generator to invoke. The zero Fallback is the literal zero V.
type Fallback[V any] struct {
	value V
	fn    any
}

// Value returns a literal fallback stored as-is on a miss.
func Value[V any](v V) Fallback[V] {
	return Fallback[V]{value: v}
}

// Func returns a generator fallback. fn is anything invoke.IsInvocable accepts;
// its result must be assignable to V. Func does not inspect fn: a value that
// cannot be called (a string, a nil func) is a caller error and every miss
// fails with a GenerationError wrapping invoke.ErrNotInvocable. Use FallbackOf
// to choose the variant from fn's capability instead.
func Func[V any](fn any) Fallback[V] {
	return Fallback[V]{fn: fn}
}

// Generate is Func for a typed variadic generator.
func Generate[V any](fn func(ctx context.Context, args ...any) (V, error)) Fallback[V] {
	return Func[V](invoke.Func[V](fn))
}

// FallbackOf picks the variant by capability: invocable values become
// generators, values of type V become literals. When V is itself a func type,
// the generator reading wins.
func FallbackOf[V any](x any) (Fallback[V], error) {
	if invoke.IsInvocable(x) {
		return Func[V](x), nil
	}
	if v, ok := x.(V); ok {
		return Value(v), nil
	}
	if x == nil {
		var zero V
		return Value(zero), nil
	}
	return Fallback[V]{}, fmt.Errorf("cachegen: fallback %T is neither %v nor invocable", x, reflect.TypeFor[V]())
}

// Invocable reports whether the fallback is the generator variant.
func (f Fallback[V]) Invocable() bool { return f.fn != nil }
