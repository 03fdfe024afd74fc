// Package cachegen implements a get-or-generate cache accessor.
//
// GetOrGenerate returns the cached value for a key. On a miss it computes a
// replacement from a Fallback, stores it with the requested TTL and returns it.
// A hit is authoritative: nothing is written back and the TTL is not renewed.
//
// Components:
//   - Store[V]: typed get/set with TTL. ProviderStore adapts any byte
//     provider.Provider (Ristretto, BigCache, Redis) plus a codec.Codec[V].
//   - ArgumentResolver: picks the arguments for a generator (args.Fit by default).
//   - Normalizer: turns the resolved source into a positional list.
//   - Invoker: calls the generator (invoke.Reflect by default).
//   - Translator: renders the GenerationError message (x/text catalogs).
//
// Fallbacks:
//
//	v, err := acc.GetOrGenerate(ctx, "user:1", cachegen.Value(User{}), time.Minute)
//	v, err := acc.GetOrGenerate(ctx, "user:1", cachegen.Func[User](loadUser), 0)
//
// The accessor does no single-flight. Two concurrent misses on one key both run
// the generator and the last write wins; wrap it in flight.Group when that
// matters.
package cachegen
