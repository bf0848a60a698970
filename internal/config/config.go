package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// WorkDir holds cached downloads, reports and statistics files.
	WorkDir string `toml:"work_dir"`
}

// Wiki contains configuration for the MediaWiki API client.
type Wiki struct {
	APIURL         string `toml:"api_url"`
	UserAgent      string `toml:"user_agent"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	BatchSize      int    `toml:"batch_size"`
}

// Fetch contains configuration for the page download utility.
type Fetch struct {
	// Command is the external downloader (curl compatible), or "builtin".
	Command         string  `toml:"command"`
	TimeoutSeconds  int     `toml:"timeout_seconds"`
	MinDelaySeconds float64 `toml:"min_delay_seconds"`
	JitterSeconds   float64 `toml:"jitter_seconds"`
}

// DasErste contains broadcaster page locations.
type DasErste struct {
	TatortIndexURL string `toml:"tatort_index_url"`
}

// Fans contains the fan-site archive settings.
type Fans struct {
	BaseURL   string `toml:"base_url"`
	FirstYear int    `toml:"first_year"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File adds a JSON log sink. Empty disables it.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for krimiwiki.
//
// Configuration sections by subsystem:
//   - Paths: working directory for caches and reports
//   - Wiki: MediaWiki API endpoint and request shaping
//   - Fetch: external download utility and pacing between downloads
//   - DasErste: broadcaster index page
//   - Fans: fan-site archive
//   - Logging: log format, level, and optional file sink
type Config struct {
	Paths    Paths    `toml:"paths"`
	Wiki     Wiki     `toml:"wiki"`
	Fetch    Fetch    `toml:"fetch"`
	DasErste DasErste `toml:"daserste"`
	Fans     Fans     `toml:"fans"`
	Logging  Logging  `toml:"logging"`
}

const defaultConfigLocation = "~/.config/krimiwiki/config.toml"

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigLocation)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	if err := loadDotEnv(); err != nil {
		return nil, "", false, err
	}

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// loadDotEnv reads ./.env when present. Existing variables win.
func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat .env: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigLocation)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("krimiwiki.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the working directory.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.WorkDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.WorkDir, err)
	}
	return nil
}

// WorkPath joins name onto the working directory.
func (c *Config) WorkPath(name ...string) string {
	return filepath.Join(append([]string{c.Paths.WorkDir}, name...)...)
}

// WikiTimeout returns the API request timeout.
func (c *Config) WikiTimeout() time.Duration {
	return time.Duration(c.Wiki.TimeoutSeconds) * time.Second
}

// FetchTimeout returns the per-download timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// FetchDelay returns the minimum pause and the random jitter between downloads.
func (c *Config) FetchDelay() (time.Duration, time.Duration) {
	return seconds(c.Fetch.MinDelaySeconds), seconds(c.Fetch.JitterSeconds)
}

// UsesBuiltinFetcher reports whether downloads bypass the external utility.
func (c *Config) UsesBuiltinFetcher() bool {
	return c.Fetch.Command == BuiltinFetchCommand
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
