package logging

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Page tags a record with the wiki page it concerns.
func Page(title string) Attr { return slog.String(FieldPage, title) }

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger { return slog.New(NoopHandler{}) }

// NewComponentLogger tags logger with a component. A nil logger discards.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// warnDefaults fill in the triage fields a warning did not set.
var warnDefaults = []struct{ key, value string }{
	{FieldErrorHint, "check the page or cached file named in the record"},
	{FieldImpact, "the entry is reported but processing continues"},
}

// WarnWithContext logs a warning that always carries event_type, error_hint
// and impact.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	args := make([]any, 0, len(attrs)+len(warnDefaults)+1)
	set := func(key string) bool {
		return slices.ContainsFunc(attrs, func(a Attr) bool { return a.Key == key })
	}
	if !set(FieldEventType) {
		args = append(args, String(FieldEventType, eventType))
	}
	for _, a := range attrs {
		args = append(args, a)
	}
	for _, d := range warnDefaults {
		if !set(d.key) {
			args = append(args, String(d.key, d.value))
		}
	}
	logger.Warn(msg, args...)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }

func attrsToArgs(attrs []slog.Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}
