package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// MaxRawKey is the longest user key embedded verbatim in a storage key.
const MaxRawKey = 200

const hashMark = "#"

// StorageKey isolates key under prefix. Keys longer than MaxRawKey, and keys
// that start with "#", are replaced by "#" + the hex sha256 of the key, so a
// verbatim key never spells a hashed one.
func StorageKey(prefix, key string) string {
	if len(key) <= MaxRawKey && !strings.HasPrefix(key, hashMark) {
		return prefix + ":" + key
	}
	sum := sha256.Sum256([]byte(key))
	return prefix + ":" + hashMark + hex.EncodeToString(sum[:])
}
