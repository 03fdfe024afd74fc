package cachegen

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Accessor is safe for concurrent use when its collaborators are.
type Accessor[V any] struct {
	store    Store[V]
	resolver ArgumentResolver
	norm     Normalizer
	invoker  Invoker
	tr       Translator
}

// GetOrGenerate returns the value cached under key. On a miss it computes one
// from fb, stores it with ttl and returns it.
//
// Store failures other than a miss are returned unchanged. Failures while
// generating are returned as *GenerationError and nothing is stored.
func (a *Accessor[V]) GetOrGenerate(ctx context.Context, key string, fb Fallback[V], ttl time.Duration) (V, error) {
	var zero V
	v, ok, err := a.store.Get(ctx, key)
	switch {
	case err != nil && !errors.Is(err, ErrCacheMiss):
		return zero, err
	case err == nil && ok:
		return v, nil
	}

	v = fb.value
	if fb.Invocable() {
		if v, err = a.generate(ctx, key, fb.fn, ttl); err != nil {
			return zero, err
		}
	}
	if err := a.store.Set(ctx, key, v, ttl); err != nil {
		return zero, err
	}
	return v, nil
}

func (a *Accessor[V]) generate(ctx context.Context, key string, fn any, ttl time.Duration) (V, error) {
	var zero V
	src, err := a.resolver.Resolve(ctx, key, fn, ttl)
	if err != nil {
		return zero, a.generationError(key, err)
	}
	list, err := a.norm.Normalize(src)
	if err != nil {
		return zero, a.generationError(key, err)
	}
	out, err := a.invoker.Invoke(ctx, fn, list)
	if err != nil {
		return zero, a.generationError(key, err)
	}
	if out == nil && nilable(reflect.TypeFor[V]()) {
		return zero, nil
	}
	v, ok := out.(V)
	if !ok {
		return zero, a.generationError(key, fmt.Errorf("generator returned %T, want %v", out, reflect.TypeFor[V]()))
	}
	return v, nil
}

func (a *Accessor[V]) generationError(key string, cause error) error {
	return &GenerationError{
		Key: key,
		Msg: a.tr.Translate(MsgGenerateFailed, key),
		Err: cause,
	}
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
