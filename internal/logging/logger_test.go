package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"krimiwiki/internal/config"
	"krimiwiki/internal/logging"
)

func TestNewFromConfigWritesJSONFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "krimiwiki.log")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("audit finished", logging.Int("episodes", 3))

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"audit finished"`) {
		t.Fatalf("expected JSON record in log file, got %q", content)
	}
	if !strings.Contains(string(content), `"episodes":3`) {
		t.Fatalf("expected episodes attr, got %q", content)
	}
}

func TestConsoleLoggerFormatsSubject(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{
		Format: "console",
		Level:  "info",
		Output: &buf,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithSeries(logging.WithRunID(context.Background(), "run-1"), "Tatort")
	logging.WithContext(ctx, logger).Warn("Missing IMDb",
		logging.Page("Tatort: Reifezeugnis"),
		logging.String(logging.FieldEventType, "missing_imdb"))

	line := buf.String()
	if !strings.Contains(line, "WARN Tatort · Tatort: Reifezeugnis – Missing IMDb") {
		t.Fatalf("unexpected console line %q", line)
	}
	if strings.Contains(line, "run-1") {
		t.Fatalf("run id should be hidden from console warnings, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{
		Format: "console",
		Level:  "debug",
		Output: &buf,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")

	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WarnWithContext(logger, "cache file unreadable", "cache_unreadable")

	content := buf.String()
	for _, want := range []string{`"event_type":"cache_unreadable"`, `"error_hint":`, `"impact":`} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %s in %q", want, content)
		}
	}
}
