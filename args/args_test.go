package args

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/unkn0wn-root/cachegen/invoke"
)

func TestFitTrimsToArity(t *testing.T) {
	ctx := context.Background()
	ttl := 2 * time.Minute
	cases := []struct {
		name string
		fn   any
		want []any
	}{
		{"none", func() string { return "" }, []any{}},
		{"ctx only", func(context.Context) string { return "" }, []any{}},
		{"key", func(context.Context, string) string { return "" }, []any{"k1"}},
		{"key+ttl", func(string, time.Duration) string { return "" }, []any{"k1", ttl}},
		{"extra params", func(string, time.Duration, int) string { return "" }, []any{"k1", ttl}},
		{"variadic", func(...any) string { return "" }, []any{"k1", ttl}},
		{"callable", invoke.Func[string](func(context.Context, ...any) (string, error) { return "", nil }), []any{"k1", ttl}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Fit{}.Resolve(ctx, "k1", tc.fn, ttl)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestKeyTTLAndStatic(t *testing.T) {
	ctx := context.Background()
	got, _ := KeyTTL{}.Resolve(ctx, "k1", nil, 120)
	if !reflect.DeepEqual(got, []any{"k1", time.Duration(120)}) {
		t.Fatalf("KeyTTL: %v", got)
	}

	s := Static{"a", 1}
	got, _ = s.Resolve(ctx, "ignored", nil, 0)
	list := got.([]any)
	list[0] = "mutated"
	if s[0] != "a" {
		t.Fatalf("Static must hand out a copy")
	}
}

func TestResolverFunc(t *testing.T) {
	boom := errors.New("boom")
	r := ResolverFunc(func(context.Context, string, any, time.Duration) (any, error) { return nil, boom })
	if _, err := r.Resolve(context.Background(), "k", nil, 0); !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}
}

func TestNormalizeShapes(t *testing.T) {
	arr := [2]int{1, 2}
	in := []any{"x", 1}
	cases := []struct {
		name string
		src  any
		want []any
	}{
		{"nil", nil, []any{}},
		{"any slice", in, []any{"x", 1}},
		{"typed slice", []string{"a", "b"}, []any{"a", "b"}},
		{"array", arr, []any{1, 2}},
		{"array ptr", &arr, []any{1, 2}},
		{"seq", slices.Values([]any{"s", 2}), []any{"s", 2}},
		{"string map", map[string]int{"b": 2, "a": 1, "c": 3}, []any{1, 2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.src)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %#v want %#v", got, tc.want)
			}
		})
	}
}

func TestNormalizeCopiesAnySlice(t *testing.T) {
	in := []any{"x"}
	out, _ := Normalizer{}.Normalize(in)
	out[0] = "y"
	if in[0] != "x" {
		t.Fatalf("input mutated")
	}
}

func TestNormalizeRejectsScalars(t *testing.T) {
	for _, src := range []any{"scalar", 42, map[int]string{1: "a"}, struct{}{}} {
		_, err := Normalize(src)
		var nl *NotListError
		if !errors.As(err, &nl) {
			t.Fatalf("Normalize(%T): expected NotListError, got %v", src, err)
		}
	}
}
