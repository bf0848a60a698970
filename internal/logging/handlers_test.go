package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTeeHandlerNilHandlers(t *testing.T) {
	if _, ok := TeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler for all nil handlers")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := TeeHandler(nil, inner, nil); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsLevels(t *testing.T) {
	var warnBuf, debugBuf bytes.Buffer
	warnOnly := slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})
	everything := slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})

	h := TeeHandler(warnOnly, everything)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected tee to be enabled for debug")
	}

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String(FieldSeries, "Tatort")}))
	logger.Debug("page skipped")
	logger.Warn("Missing IMDb")

	if strings.Contains(warnBuf.String(), "page skipped") {
		t.Errorf("warn handler received debug record: %s", warnBuf.String())
	}
	if !strings.Contains(warnBuf.String(), `"series":"Tatort"`) {
		t.Errorf("warn handler missed attrs: %s", warnBuf.String())
	}
	if strings.Count(debugBuf.String(), "\n") != 2 {
		t.Errorf("debug handler expected two records, got %q", debugBuf.String())
	}
}

func TestContextHandlerAddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newContextHandler(slog.NewJSONHandler(&buf, nil)))
	ctx := WithSeries(WithRunID(context.Background(), "run-7"), "Polizeiruf 110")

	logger.InfoContext(ctx, "pages selected")
	logger.With(String(FieldSeries, "Tatort")).InfoContext(ctx, "explicit series")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two records, got %q", buf.String())
	}
	if !strings.Contains(lines[0], `"run_id":"run-7"`) || !strings.Contains(lines[0], `"series":"Polizeiruf 110"`) {
		t.Errorf("context fields missing: %s", lines[0])
	}
	if strings.Count(lines[1], `"series"`) != 1 || !strings.Contains(lines[1], `"series":"Tatort"`) {
		t.Errorf("logger attrs should win over context: %s", lines[1])
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value slog.Value
		want  string
	}{
		{slog.StringValue("Tatort"), "Tatort"},
		{slog.StringValue("Tatort: Reifezeugnis"), `"Tatort: Reifezeugnis"`},
		{slog.StringValue(""), `""`},
		{slog.IntValue(42), "42"},
		{slog.BoolValue(true), "true"},
		{slog.DurationValue(1500 * time.Millisecond), "1.5s"},
		{slog.TimeValue(time.Date(2009, 5, 2, 13, 14, 15, 0, time.UTC)), "2009-05-02T13:14:15Z"},
		{slog.AnyValue(errors.New("boom")), "boom"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.value); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestConsoleHandlerGroupsAndDuplicates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo, false))
	logger = logger.With(String(FieldComponent, "fans"), Int("year", 1970))
	logger.WithGroup("fetch").Info("archive page stored",
		Int("attempt", 2),
		slog.Group("http", slog.Int("status", 200)))
	logger.Info("override", Int("year", 1971), Int("year", 1972))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
	for _, want := range []string{"INFO [fans] – archive page stored", "year=1970", "fetch.attempt=2", "fetch.http.status=200"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("first line missing %q: %s", want, lines[0])
		}
	}
	if !strings.HasSuffix(lines[1], "– override year=1972") {
		t.Errorf("expected last duplicate to win, got %s", lines[1])
	}
}

func TestWarnWithContextKeepsCallerFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	WarnWithContext(logger, "Missing IMDb", "audit_finding",
		Page("Tatort: Reifezeugnis"),
		String(FieldImpact, "reported only"))

	out := buf.String()
	for _, want := range []string{
		`"event_type":"audit_finding"`,
		`"impact":"reported only"`,
		`"error_hint":"check the page or cached file named in the record"`,
		`"page":"Tatort: Reifezeugnis"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
	if strings.Count(out, `"impact"`) != 1 {
		t.Errorf("impact should not be duplicated: %s", out)
	}
	WarnWithContext(nil, "ignored", "none")
}
