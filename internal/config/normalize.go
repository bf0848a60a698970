package config

import (
	"fmt"
	"os"
	"strings"
)

const userAgentEnv = "KRIMIWIKI_USER_AGENT"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeWiki()
	c.normalizeFetch()
	c.normalizeSources()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	var err error
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeWiki() {
	c.Wiki.APIURL = strings.TrimSpace(c.Wiki.APIURL)
	if c.Wiki.APIURL == "" {
		c.Wiki.APIURL = defaultWikiAPIURL
	}
	if value, ok := os.LookupEnv(userAgentEnv); ok && strings.TrimSpace(value) != "" {
		c.Wiki.UserAgent = value
	}
	c.Wiki.UserAgent = strings.TrimSpace(c.Wiki.UserAgent)
	if c.Wiki.UserAgent == "" {
		c.Wiki.UserAgent = defaultWikiUserAgent
	}
	if c.Wiki.TimeoutSeconds == 0 {
		c.Wiki.TimeoutSeconds = defaultWikiTimeoutSeconds
	}
	if c.Wiki.BatchSize == 0 {
		c.Wiki.BatchSize = defaultWikiBatchSize
	}
}

func (c *Config) normalizeFetch() {
	c.Fetch.Command = strings.TrimSpace(c.Fetch.Command)
	if c.Fetch.Command == "" {
		c.Fetch.Command = defaultFetchCommand
	}
	if strings.EqualFold(c.Fetch.Command, BuiltinFetchCommand) {
		c.Fetch.Command = BuiltinFetchCommand
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = defaultFetchTimeoutSeconds
	}
}

func (c *Config) normalizeSources() {
	c.DasErste.TatortIndexURL = strings.TrimSpace(c.DasErste.TatortIndexURL)
	if c.DasErste.TatortIndexURL == "" {
		c.DasErste.TatortIndexURL = defaultDasErsteIndexURL
	}
	c.Fans.BaseURL = strings.TrimRight(strings.TrimSpace(c.Fans.BaseURL), "/")
	if c.Fans.BaseURL == "" {
		c.Fans.BaseURL = defaultFansBaseURL
	}
	if c.Fans.FirstYear == 0 {
		c.Fans.FirstYear = defaultFansFirstYear
	}
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	if level == "warning" {
		level = "warn"
	}
	c.Logging.Level = level

	if strings.TrimSpace(c.Logging.File) != "" {
		path, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = path
	}
	return nil
}
