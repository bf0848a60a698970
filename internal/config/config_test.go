package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"krimiwiki/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("KRIMIWIKI_USER_AGENT", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "krimiwiki", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if !filepath.IsAbs(cfg.Paths.WorkDir) {
		t.Fatalf("expected absolute work dir, got %q", cfg.Paths.WorkDir)
	}
	defaults := config.Default()
	if cfg.Wiki.APIURL != defaults.Wiki.APIURL {
		t.Fatalf("unexpected api url %q", cfg.Wiki.APIURL)
	}
	if cfg.Wiki.BatchSize != 50 {
		t.Fatalf("unexpected batch size %d", cfg.Wiki.BatchSize)
	}
	if cfg.Fetch.Command != "curl" {
		t.Fatalf("unexpected fetch command %q", cfg.Fetch.Command)
	}
	minDelay, jitter := cfg.FetchDelay()
	if minDelay != 5500*time.Millisecond || jitter != 5*time.Second {
		t.Fatalf("unexpected fetch delay %v + %v", minDelay, jitter)
	}
	if cfg.Fans.FirstYear != 1970 {
		t.Fatalf("unexpected first year %d", cfg.Fans.FirstYear)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadReadsFileAndEnvOverride(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("KRIMIWIKI_USER_AGENT", "audit-bot/1.0 (ops@example.org)")

	work := filepath.Join(tempHome, "cache")
	path := filepath.Join(tempHome, "krimiwiki.toml")
	contents := strings.Join([]string{
		"[paths]",
		`work_dir = "~/cache"`,
		"[wiki]",
		"batch_size = 20",
		`user_agent = "from-file"`,
		"[fetch]",
		`command = "BUILTIN"`,
		"[fans]",
		`base_url = "https://fans.example.org/"`,
		"[logging]",
		`level = "WARNING"`,
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Paths.WorkDir != work {
		t.Fatalf("work dir = %q, want %q", cfg.Paths.WorkDir, work)
	}
	if cfg.WorkPath("tatort-fans", "1970.html") != filepath.Join(work, "tatort-fans", "1970.html") {
		t.Fatalf("unexpected work path %q", cfg.WorkPath("tatort-fans", "1970.html"))
	}
	if cfg.Wiki.BatchSize != 20 {
		t.Fatalf("batch size = %d", cfg.Wiki.BatchSize)
	}
	if cfg.Wiki.UserAgent != "audit-bot/1.0 (ops@example.org)" {
		t.Fatalf("expected env user agent, got %q", cfg.Wiki.UserAgent)
	}
	if !cfg.UsesBuiltinFetcher() {
		t.Fatalf("expected builtin fetcher, got %q", cfg.Fetch.Command)
	}
	if cfg.Fans.BaseURL != "https://fans.example.org" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Fans.BaseURL)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[wiki]\nbatchsize = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestValidateErrorsNameKeys(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"batch too large", func(c *config.Config) { c.Wiki.BatchSize = 51 }, "wiki.batch_size must be between 1 and 50"},
		{"batch zero", func(c *config.Config) { c.Wiki.BatchSize = -1 }, "wiki.batch_size"},
		{"api url", func(c *config.Config) { c.Wiki.APIURL = "ftp://example.org" }, "wiki.api_url"},
		{"negative delay", func(c *config.Config) { c.Fetch.MinDelaySeconds = -1 }, "fetch.min_delay_seconds"},
		{"first year", func(c *config.Config) { c.Fans.FirstYear = 1960 }, "fans.first_year"},
		{"first year in the future", func(c *config.Config) { c.Fans.FirstYear = 3000 }, "fans.first_year"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestSampleConfigDecodesToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	defaults := config.Default()
	if decoded.Wiki != defaults.Wiki {
		t.Fatalf("sample wiki section %+v differs from defaults %+v", decoded.Wiki, defaults.Wiki)
	}
	if decoded.Fetch != defaults.Fetch {
		t.Fatalf("sample fetch section %+v differs from defaults %+v", decoded.Fetch, defaults.Fetch)
	}
	if decoded.Fans != defaults.Fans || decoded.DasErste != defaults.DasErste {
		t.Fatalf("sample source sections differ from defaults")
	}
}
