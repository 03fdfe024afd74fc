package zap

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/unkn0wn-root/cachegen"
)

func TestLoggerForwardsLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Debug("d", cachegen.Fields{"key": "k"})
	l.Warn("w", cachegen.Fields{"err": errors.New("boom")})
	l.Error("e", nil)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].LoggerName != "cachegen" || entries[0].Level != zapcore.DebugLevel {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[0].ContextMap()["key"] != "k" {
		t.Fatalf("missing key field: %v", entries[0].ContextMap())
	}
	if entries[1].ContextMap()["err"] != "boom" {
		t.Fatalf("error field not rendered: %v", entries[1].ContextMap())
	}
}
