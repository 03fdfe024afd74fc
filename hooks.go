package cachegen

// Hooks lightweight callbacks for ProviderStore events.
// Implementations MUST be cheap and non-blocking; they run on the read and
// write paths. Wrap slow sinks in hooks/async.
type Hooks interface {
	// A provider lookup finished. hit is false for misses and self-healed entries.
	Lookup(storageKey string, hit bool)

	// An unusable entry was deleted on read.
	// reason ∈ {"corrupt", "codec_mismatch", "expired", "value_decode"}
	SelfHeal(storageKey, reason string)

	// Provider returned ok=false on Set (backpressure/admission).
	ProviderSetRejected(storageKey string)

	// Provider returned an error. op ∈ {"get", "set", "del"}
	ProviderError(op, storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Lookup(string, bool)                 {}
func (NopHooks) SelfHeal(string, string)             {}
func (NopHooks) ProviderSetRejected(string)          {}
func (NopHooks) ProviderError(string, string, error) {}
