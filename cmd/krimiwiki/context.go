package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"krimiwiki/internal/config"
	"krimiwiki/internal/deps"
	"krimiwiki/internal/fetch"
	"krimiwiki/internal/fileutil"
	"krimiwiki/internal/logging"
	"krimiwiki/internal/mediawiki"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	runID string
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		runID:      uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logging: %w", err)
			return
		}
		c.logger = logger.With(logging.String(logging.FieldRunID, c.runID))
	})
	return c.logger, c.loggerErr
}

// componentLogger returns the run logger tagged with component.
func (c *commandContext) componentLogger(component string) *slog.Logger {
	logger, err := c.ensureLogger()
	if err != nil {
		logger = nil
	}
	return logging.NewComponentLogger(logger, component)
}

// runContext attaches the run identifier to the command's context.
func (c *commandContext) runContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithRunID(ctx, c.runID)
}

// withWorkLock runs fn while holding the work directory lock, so two runs
// never write the same caches and reports.
func (c *commandContext) withWorkLock(fn func(cfg *config.Config) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock, err := fileutil.LockDir(cfg.Paths.WorkDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()
	return fn(cfg)
}

func (c *commandContext) wikiClient(apiURL string) (*mediawiki.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return mediawiki.New(apiURL, cfg.Wiki.UserAgent, cfg.WikiTimeout(),
		mediawiki.WithBatchSize(cfg.Wiki.BatchSize),
		mediawiki.WithLogger(c.componentLogger("mediawiki")))
}

func (c *commandContext) fetcher() (fetch.Fetcher, *fetch.Pacer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := c.componentLogger("fetch")
	minDelay, jitter := cfg.FetchDelay()
	pacer := fetch.NewPacer(minDelay, jitter, fetch.WithPacerLogger(logger))
	if cfg.UsesBuiltinFetcher() {
		return fetch.NewHTTPFetcher(cfg.Wiki.UserAgent, cfg.FetchTimeout(), nil), pacer, nil
	}
	if err := deps.Require(deps.Fetcher(cfg.Fetch.Command)); err != nil {
		return nil, nil, fmt.Errorf("%w; set fetch.command = %q to download in-process", err, config.BuiltinFetchCommand)
	}
	f, err := fetch.NewCommandFetcher(cfg.Fetch.Command, cfg.FetchTimeout(), fetch.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return f, pacer, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
