package util

import (
	"strings"
	"testing"
)

func TestStorageKey(t *testing.T) {
	if got := StorageKey("cg:user", "u:1"); got != "cg:user:u:1" {
		t.Fatalf("short key: %q", got)
	}
	edge := strings.Repeat("a", MaxRawKey)
	if got := StorageKey("cg:user", edge); got != "cg:user:"+edge {
		t.Fatalf("boundary key should stay verbatim")
	}

	long1 := strings.Repeat("a", MaxRawKey+1)
	long2 := strings.Repeat("b", MaxRawKey+1)
	k1, k2 := StorageKey("cg:user", long1), StorageKey("cg:user", long2)
	if !strings.HasPrefix(k1, "cg:user:#") || len(k1) != len("cg:user:#")+64 {
		t.Fatalf("long key not hashed: %q", k1)
	}
	if k1 == k2 {
		t.Fatalf("distinct long keys collided")
	}
	if k1 != StorageKey("cg:user", long1) {
		t.Fatalf("hashing is not deterministic")
	}
}

func TestStorageKeyHashMarkIsNotVerbatim(t *testing.T) {
	long := strings.Repeat("x", MaxRawKey+1)
	hashed := StorageKey("cg:user", long)
	spelled := strings.TrimPrefix(hashed, "cg:user:")

	got := StorageKey("cg:user", spelled)
	if got == hashed {
		t.Fatalf("key %q reaches the slot of a hashed key", spelled)
	}
	if !strings.HasPrefix(got, "cg:user:#") {
		t.Fatalf("keys starting with # must be hashed: %q", got)
	}
	if StorageKey("cg:user", "#a") == StorageKey("cg:user", "#b") {
		t.Fatalf("distinct # keys collided")
	}
}
