package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWiki(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWiki() error {
	if err := validateURL("wiki.api_url", c.Wiki.APIURL); err != nil {
		return err
	}
	if c.Wiki.TimeoutSeconds <= 0 {
		return errors.New("wiki.timeout_seconds must be positive")
	}
	if c.Wiki.BatchSize < 1 || c.Wiki.BatchSize > maxWikiBatchSize {
		return fmt.Errorf("wiki.batch_size must be between 1 and %d", maxWikiBatchSize)
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.TimeoutSeconds <= 0 {
		return errors.New("fetch.timeout_seconds must be positive")
	}
	if c.Fetch.MinDelaySeconds < 0 {
		return errors.New("fetch.min_delay_seconds must not be negative")
	}
	if c.Fetch.JitterSeconds < 0 {
		return errors.New("fetch.jitter_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateSources() error {
	if err := validateURL("daserste.tatort_index_url", c.DasErste.TatortIndexURL); err != nil {
		return err
	}
	if err := validateURL("fans.base_url", c.Fans.BaseURL); err != nil {
		return err
	}
	if last := time.Now().Year() + 1; c.Fans.FirstYear < 1970 || c.Fans.FirstYear > last {
		return fmt.Errorf("fans.first_year must be between 1970 and %d", last)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func validateURL(key, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", key, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host", key)
	}
	return nil
}
