package observability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogEventScrubsSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := NewEventLogger(zap.New(core))

	el.LogEvent("Login Error: Incorrect password", "auth", map[string]any{
		"email":    "ann@x.com",
		"password": "secret123",
		"token":    "0123456789abcdef",
	}, SeverityWarning)

	entries := logs.All()
	require.Len(t, entries, 1)

	ctx := entries[0].ContextMap()
	require.Equal(t, "auth", ctx["category"])
	require.Equal(t, "ann@x.com", ctx["email"])
	require.Equal(t, "[redacted]", ctx["password"])
	require.Equal(t, "01234567...", ctx["token"])
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestLogEventSeverityMapping(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := NewEventLogger(zap.New(core))

	el.LogEvent("a", "auth", nil, SeverityDebug)
	el.LogEvent("b", "auth", nil, SeverityInfo)
	el.LogEvent("c", "auth", nil, SeverityError, errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, zapcore.DebugLevel, entries[0].Level)
	require.Equal(t, zapcore.InfoLevel, entries[1].Level)
	require.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestLogEventNeverPanicsWithNilLogger(t *testing.T) {
	el := NewEventLogger(nil)
	require.NotPanics(t, func() {
		el.LogEvent("x", "auth", map[string]any{"k": "v"}, SeverityInfo)
	})
}
