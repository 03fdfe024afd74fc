package cachegen

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/unkn0wn-root/cachegen/args"
	"github.com/unkn0wn-root/cachegen/invoke"
	"github.com/unkn0wn-root/cachegen/translate"
)

// Store is the typed cache the accessor reads from and writes to.
type Store[V any] interface {
	// Get returns (v, true, nil) on hit and (zero, false, nil) on miss.
	// Returning an error that matches ErrCacheMiss is also a miss; any other
	// error is a store failure.
	Get(ctx context.Context, key string) (V, bool, error)

	// Set stores value under key. ttl 0 selects the store default.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
}

// ArgumentResolver produces the raw argument source for a generator.
type ArgumentResolver interface {
	Resolve(ctx context.Context, key string, fn any, ttl time.Duration) (any, error)
}

// Normalizer converts a raw argument source into a positional list.
type Normalizer interface {
	Normalize(src any) ([]any, error)
}

// Invoker calls an invocable value with args.
type Invoker interface {
	Invoke(ctx context.Context, fn any, args []any) (any, error)
}

// Translator renders a message key with arguments.
type Translator interface {
	Translate(format string, args ...any) string
}

// Options wire the accessor's collaborators.
// Only Store is required; others have sensible defaults.
type Options[V any] struct {
	Store Store[V]

	Resolver   ArgumentResolver // nil => args.Fit{}
	Normalizer Normalizer       // nil => args.Normalizer{}
	Invoker    Invoker          // nil => invoke.Reflect{}
	Translator Translator       // nil => English x/text printer
}

func New[V any](opts Options[V]) (*Accessor[V], error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("cachegen: store is required")
	}
	return &Accessor[V]{
		store:    opts.Store,
		resolver: coalesce[ArgumentResolver](opts.Resolver, args.Fit{}),
		norm:     coalesce[Normalizer](opts.Normalizer, args.Normalizer{}),
		invoker:  coalesce[Invoker](opts.Invoker, invoke.Reflect{}),
		tr:       coalesce[Translator](opts.Translator, translate.New(language.English)),
	}, nil
}
