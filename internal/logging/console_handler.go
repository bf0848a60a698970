package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders one human-readable line per record:
//
//	2024-05-01 12:00:00 WARN [audit] Tatort · Reifezeugnis – message key=value
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	addSource bool
	prefix    string
	preset    []field
}

type field struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) *consoleHandler {
	return &consoleHandler{mu: new(sync.Mutex), w: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	fields := append([]field(nil), h.preset...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.prefix, attr)
		return true
	})

	line := consoleLine{level: record.Level, message: strings.TrimSpace(record.Message)}
	for _, f := range fields {
		line.take(f)
	}

	var b strings.Builder
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	b.WriteString(formatTimestamp(ts))
	b.WriteString(" " + levelName(record.Level))
	if line.component != "" {
		b.WriteString(" [" + line.component + "]")
	}
	if subject := FormatSubject(line.series, line.page); subject != "" {
		b.WriteString(" " + subject)
	}
	b.WriteString(" – ")
	if line.message == "" {
		line.message = "(no message)"
	}
	b.WriteString(line.message)
	if src := record.Source(); h.addSource && src != nil {
		b.WriteString(" [" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + "]")
	}
	for _, f := range line.extra {
		b.WriteString(" " + f.key + "=" + formatValue(f.value))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = append([]field(nil), h.preset...)
	for _, attr := range attrs {
		next.preset = appendField(next.preset, h.prefix, attr)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = joinKey(h.prefix, name)
	return &next
}

// consoleLine sorts fields into the line header and the trailing key=value
// list. The first component, series and page win; later duplicates of other
// keys overwrite earlier values in place.
type consoleLine struct {
	level     slog.Level
	message   string
	component string
	series    string
	page      string
	extra     []field
}

func (l *consoleLine) take(f field) {
	switch f.key {
	case FieldComponent:
		l.component = firstNonEmpty(l.component, attrString(f.value))
		return
	case FieldSeries:
		l.series = firstNonEmpty(l.series, attrString(f.value))
		return
	case FieldPage:
		l.page = firstNonEmpty(l.page, attrString(f.value))
		return
	case FieldRunID:
		if l.level >= slog.LevelInfo {
			return
		}
	case "":
		return
	}
	for i := range l.extra {
		if l.extra[i].key == f.key {
			l.extra[i].value = f.value
			return
		}
	}
	l.extra = append(l.extra, f)
}

func appendField(dst []field, prefix string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	value := attr.Value.Resolve()
	if value.Kind() != slog.KindGroup {
		return append(dst, field{key: joinKey(prefix, attr.Key), value: value})
	}
	inner := prefix
	if attr.Key != "" {
		inner = joinKey(prefix, attr.Key)
	}
	for _, a := range value.Group() {
		dst = appendField(dst, inner, a)
	}
	return dst
}

func joinKey(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	default:
		return prefix + "." + key
	}
}

func firstNonEmpty(current, candidate string) string {
	if current != "" {
		return current
	}
	return candidate
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}
