package promhooks

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := New(reg, "app")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h.Lookup("k", true)
	h.Lookup("k", false)
	h.Lookup("k", false)
	h.SelfHeal("k", "corrupt")
	h.ProviderSetRejected("k")
	h.ProviderError("get", "k", errors.New("x"))

	if got := testutil.ToFloat64(h.lookups.WithLabelValues("miss")); got != 2 {
		t.Fatalf("misses=%v", got)
	}
	if got := testutil.ToFloat64(h.lookups.WithLabelValues("hit")); got != 1 {
		t.Fatalf("hits=%v", got)
	}
	if got := testutil.ToFloat64(h.heals.WithLabelValues("corrupt")); got != 1 {
		t.Fatalf("heals=%v", got)
	}
	if got := testutil.ToFloat64(h.rejected); got != 1 {
		t.Fatalf("rejected=%v", got)
	}
	if got := testutil.ToFloat64(h.errs.WithLabelValues("get")); got != 1 {
		t.Fatalf("errors=%v", got)
	}
	n, err := testutil.GatherAndCount(reg)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 series, got %d", n)
	}
}

func TestDoubleRegisterFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(reg, ""); err != nil {
		t.Fatalf("first New: %v", err)
	}
	if _, err := New(reg, ""); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}
