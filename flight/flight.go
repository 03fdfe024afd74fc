// Package flight collapses concurrent GetOrGenerate calls for the same key
// into one.
package flight

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/unkn0wn-root/cachegen"
)

// Getter is the accessor surface wrapped by Group.
type Getter[V any] interface {
	GetOrGenerate(ctx context.Context, key string, fb cachegen.Fallback[V], ttl time.Duration) (V, error)
}

// Group shares one in-flight GetOrGenerate per key. Callers that join an
// in-flight call receive its result and error; the first caller's fb and ttl
// are used. The shared call runs detached from any caller's cancellation, so
// one caller giving up does not fail the others; each caller still returns
// its own ctx.Err() as soon as its ctx is done.
type Group[V any] struct {
	inner Getter[V]
	g     singleflight.Group
}

func New[V any](inner Getter[V]) *Group[V] {
	return &Group[V]{inner: inner}
}

func (g *Group[V]) GetOrGenerate(ctx context.Context, key string, fb cachegen.Fallback[V], ttl time.Duration) (V, error) {
	var zero V
	ch := g.g.DoChan(key, func() (any, error) {
		return g.inner.GetOrGenerate(context.WithoutCancel(ctx), key, fb, ttl)
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		v, _ := r.Val.(V)
		return v, nil
	}
}

// Forget drops the in-flight record for key so the next call starts fresh.
func (g *Group[V]) Forget(key string) { g.g.Forget(key) }
