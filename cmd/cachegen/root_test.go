package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/cachegen"
)

type fakeStore struct {
	mu     sync.Mutex
	m      map[string]string
	ttls   map[string]time.Duration
	closed bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{m: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.m[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, key)
	return nil
}

func (f *fakeStore) Close(context.Context) error {
	f.closed = true
	return nil
}

func run(t *testing.T, s *fakeStore, args ...string) (string, config, error) {
	t.Helper()
	var got config
	cmd := newRootCmd(func(_ context.Context, cfg config, _ cachegen.Logger) (valueStore, error) {
		got = cfg
		return s, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), got, err
}

func TestGetDefaultIsCached(t *testing.T) {
	s := newFakeStore()
	out, _, err := run(t, s, "get", "motd", "--default", "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", out)
	require.Equal(t, "hello", s.m["motd"])
	require.Equal(t, 10*time.Minute, s.ttls["motd"])
	require.True(t, s.closed)

	// hit: the new default is ignored
	out, _, err = run(t, s, "get", "motd", "--default", "other")
	require.NoError(t, err)
	require.Equal(t, "hello", out)
}

func TestGetRunsCommandWithKeyAndTTL(t *testing.T) {
	s := newFakeStore()
	out, _, err := run(t, s, "get", "report", "--ttl", "1h", "--",
		"sh", "-c", `printf '%s|%s' "$CACHEGEN_KEY" "$CACHEGEN_TTL"`)
	require.NoError(t, err)
	require.Equal(t, "report|1h0m0s", out)
	require.Equal(t, time.Hour, s.ttls["report"])
}

func TestGetCommandFailureIsGenerationError(t *testing.T) {
	s := newFakeStore()
	_, _, err := run(t, s, "get", "k", "--", "sh", "-c", "exit 3")

	var gerr *cachegen.GenerationError
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, "k", gerr.Key)
	require.Empty(t, s.m)
}

func TestGetNeedsAGenerator(t *testing.T) {
	_, _, err := run(t, newFakeStore(), "get", "k")
	require.ErrorContains(t, err, "nothing to generate")

	_, _, err = run(t, newFakeStore(), "get", "k", "extra")
	require.ErrorContains(t, err, "usage")

	s := newFakeStore()
	_, _, err = run(t, s, "get", "k", "--default", "v", "--", "echo", "hi")
	require.ErrorContains(t, err, "mutually exclusive")
	require.Empty(t, s.m)
}

func TestDel(t *testing.T) {
	s := newFakeStore()
	s.m["k"] = "v"
	_, _, err := run(t, s, "del", "k")
	require.NoError(t, err)
	require.NotContains(t, s.m, "k")
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cachegen.yaml")
	require.NoError(t, os.WriteFile(file, []byte("namespace: fromfile\nttl: 5m\nredis:\n  addr: file:6379\n  db: 2\n"), 0o600))
	t.Setenv("CACHEGEN_NAMESPACE", "fromenv")

	_, cfg, err := run(t, newFakeStore(), "--config", file, "--redis-addr", "flag:6379", "get", "k", "--default", "v")
	require.NoError(t, err)
	require.Equal(t, "fromenv", cfg.Namespace)
	require.Equal(t, "flag:6379", cfg.RedisAddr)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 5*time.Minute, cfg.TTL)
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := run(t, newFakeStore(), "--log-level", "loud", "get", "k", "--default", "v")
	require.ErrorContains(t, err, "log level")
}
