package cachegen

import (
	"errors"
)

// ErrCacheMiss may be returned (possibly wrapped) by Store.Get to report that
// no value exists. It is equivalent to returning ok=false with a nil error.
var ErrCacheMiss = errors.New("cachegen: cache miss")

// MsgGenerateFailed is the translation key for GenerationError messages.
// Its single argument is the cache key.
const MsgGenerateFailed = "could not generate value for key %q"

// GenerationError reports a failure while computing a replacement value:
// argument resolution, normalization or generator invocation. The failing
// stage is only visible through the wrapped cause.
type GenerationError struct {
	Key string
	Msg string
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }
