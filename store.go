package cachegen

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/cachegen/codec"
	"github.com/unkn0wn-root/cachegen/internal/util"
	"github.com/unkn0wn-root/cachegen/internal/wire"
	pr "github.com/unkn0wn-root/cachegen/provider"
)

type SetCostFunc func(storageKey string, raw []byte) int64

// StoreOptions tune a ProviderStore.
// Namespace, Provider and Codec are required; others have sensible defaults.
type StoreOptions[V any] struct {
	Namespace string // logical namespace to avoid collisions. e.g. "user", "report"
	Provider  pr.Provider
	Codec     c.Codec[V]

	Logger         Logger        // nil => NopLogger
	Hooks          Hooks         // nil => NopHooks
	DefaultTTL     time.Duration // used for ttl == 0; 0 => 10m
	ComputeSetCost SetCostFunc   // nil => 1 per entry
}

// ProviderStore is a Store over a byte provider. Values are framed with their
// codec id and absolute expiry; frames that fail validation are deleted on
// read and reported as misses.
type ProviderStore[V any] struct {
	ns         string
	provider   pr.Provider
	codec      c.Codec[V]
	codecID    byte
	log        Logger
	hooks      Hooks
	defaultTTL time.Duration
	cost       SetCostFunc
	now        func() time.Time
}

var _ Store[struct{}] = (*ProviderStore[struct{}])(nil)

func NewStore[V any](opts StoreOptions[V]) (*ProviderStore[V], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("cachegen: provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("cachegen: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("cachegen: namespace is required")
	}

	s := &ProviderStore[V]{
		ns:       opts.Namespace,
		provider: opts.Provider,
		codec:    opts.Codec,
		codecID:  c.IDOf(opts.Codec),
		now:      time.Now,
	}
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	s.defaultTTL = coalesce(opts.DefaultTTL, defaultTTL)
	if opts.ComputeSetCost != nil {
		s.cost = opts.ComputeSetCost
	} else {
		s.cost = func(string, []byte) int64 { return 1 }
	}
	return s, nil
}

func (s *ProviderStore[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	k := s.storageKey(key)
	raw, ok, err := s.provider.Get(ctx, k)
	if err != nil {
		s.hooks.ProviderError("get", k, err)
		return zero, false, err
	}
	if !ok {
		s.hooks.Lookup(k, false)
		return zero, false, nil
	}

	e, err := wire.Decode(raw)
	reason := ""
	switch {
	case err != nil:
		reason = "corrupt"
	case e.Codec != s.codecID:
		reason = "codec_mismatch"
	case e.Expired(s.now()):
		reason = "expired"
	}
	if reason != "" {
		s.selfHeal(ctx, k, reason)
		return zero, false, nil
	}
	v, err := s.codec.Decode(e.Payload)
	if err != nil {
		s.selfHeal(ctx, k, "value_decode")
		return zero, false, nil
	}
	s.hooks.Lookup(k, true)
	return v, true, nil
}

// Set stores value under key. ttl 0 selects DefaultTTL; NoExpiry (or any
// negative ttl) stores without expiry. A provider rejecting the write under
// pressure is not an error.
func (s *ProviderStore[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	k := s.storageKey(key)
	payload, err := s.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("cachegen: encode %q: %w", key, err)
	}

	e := wire.Entry{Codec: s.codecID, Payload: payload}
	if ttl > 0 {
		e.ExpiresAt = s.now().Add(ttl).UnixNano()
	}
	raw := wire.Encode(e)
	ok, err := s.provider.Set(ctx, k, raw, s.cost(k, raw), ttl)
	if err != nil {
		s.hooks.ProviderError("set", k, err)
		return err
	}
	if !ok {
		s.hooks.ProviderSetRejected(k)
		s.log.Debug("Set rejected by provider (pressure)", Fields{"key": key})
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *ProviderStore[V]) Delete(ctx context.Context, key string) error {
	k := s.storageKey(key)
	if err := s.provider.Del(ctx, k); err != nil {
		s.hooks.ProviderError("del", k, err)
		return err
	}
	return nil
}

// Close closes the provider.
func (s *ProviderStore[V]) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

// selfHeal drops an unusable entry. A failed delete is logged and left for
// the next read.
func (s *ProviderStore[V]) selfHeal(ctx context.Context, storageKey, reason string) {
	s.hooks.SelfHeal(storageKey, reason)
	s.hooks.Lookup(storageKey, false)
	if err := s.provider.Del(ctx, storageKey); err != nil {
		s.hooks.ProviderError("del", storageKey, err)
		s.log.Warn("self-heal delete failed", Fields{"key": storageKey, "reason": reason, "err": err})
		return
	}
	s.log.Debug("self-healed entry", Fields{"key": storageKey, "reason": reason})
}

func (s *ProviderStore[V]) storageKey(userKey string) string {
	return util.StorageKey("cg:"+s.ns, userKey)
}
