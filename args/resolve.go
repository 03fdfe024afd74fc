// Package args resolves and normalizes the positional arguments handed to a
// generator when a cache lookup misses.
package args

import (
	"context"
	"time"

	"github.com/unkn0wn-root/cachegen/invoke"
)

// ResolverFunc adapts a plain function to the resolver contract.
type ResolverFunc func(ctx context.Context, key string, fn any, ttl time.Duration) (any, error)

func (f ResolverFunc) Resolve(ctx context.Context, key string, fn any, ttl time.Duration) (any, error) {
	return f(ctx, key, fn, ttl)
}

// KeyTTL always passes (key, ttl).
type KeyTTL struct{}

func (KeyTTL) Resolve(_ context.Context, key string, _ any, ttl time.Duration) (any, error) {
	return []any{key, ttl}, nil
}

// Fit passes (key, ttl) trimmed to the generator's declared arity, so
// func(ctx, key string) and func() generators work without adapters.
// Callables and variadic funcs receive both.
type Fit struct{}

func (Fit) Resolve(_ context.Context, key string, fn any, ttl time.Duration) (any, error) {
	full := []any{key, ttl}
	n, variadic, ok := invoke.Params(fn)
	if !ok || variadic || n >= len(full) {
		return full, nil
	}
	return full[:n], nil
}

// Static passes a fixed argument list regardless of key and ttl.
type Static []any

func (s Static) Resolve(context.Context, string, any, time.Duration) (any, error) {
	out := make([]any, len(s))
	copy(out, s)
	return out, nil
}
