package observability

import (
	"go.uber.org/zap"
)

// Severity levels accepted by the event logger.
type Severity string

const (
	SeverityDebug   Severity = "debug"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const tokenPreviewLen = 8

// EventLogger is the diagnostic side channel used by the actions. It
// is fire-and-forget: LogEvent never returns an error, never panics,
// and never participates in the action's own success/failure decision.
type EventLogger struct {
	logger *zap.Logger
}

// NewEventLogger wraps a zap logger.
func NewEventLogger(logger *zap.Logger) *EventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventLogger{logger: logger}
}

// LogEvent records a diagnostic event with a category and arbitrary
// context. Secrets are scrubbed: password values are dropped entirely
// and token values truncated to a short prefix.
func (e *EventLogger) LogEvent(message, category string, context map[string]any, severity Severity, errs ...error) {
	defer func() {
		_ = recover()
	}()

	fields := make([]zap.Field, 0, len(context)+2)
	fields = append(fields, zap.String("category", category))
	for key, val := range context {
		fields = append(fields, zap.Any(key, scrubValue(key, val)))
	}
	for _, err := range errs {
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
	}

	switch severity {
	case SeverityDebug:
		e.logger.Debug(message, fields...)
	case SeverityWarning:
		e.logger.Warn(message, fields...)
	case SeverityError:
		e.logger.Error(message, fields...)
	default:
		e.logger.Info(message, fields...)
	}
}

func scrubValue(key string, val any) any {
	switch key {
	case "password", "password_hash":
		return "[redacted]"
	case "token":
		if s, ok := val.(string); ok && len(s) > tokenPreviewLen {
			return s[:tokenPreviewLen] + "..."
		}
	}
	return val
}
