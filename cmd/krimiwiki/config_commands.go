package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"krimiwiki/internal/config"
	"krimiwiki/internal/deps"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set wiki.user_agent (or export KRIMIWIKI_USER_AGENT) to a descriptive agent with contact details.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			if ctx.configSeen {
				fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			} else {
				fmt.Fprintln(out, "Config file not found; defaults were used")
			}
			fmt.Fprintln(out, renderTable("", []column{{header: "Setting"}, {header: "Value"}}, configRows(cfg)))
			if !cfg.UsesBuiltinFetcher() {
				fmt.Fprintln(out, downloaderStatusLine(cfg.Fetch.Command, shouldColorize(out)))
			}
			return nil
		},
	}
}

func downloaderStatusLine(command string, colorize bool) string {
	status := deps.Check([]deps.Requirement{deps.Fetcher(command)})[0]
	if !status.Available {
		return renderStatusLine(status.Name, statusError, status.Detail, colorize)
	}
	return renderStatusLine(status.Name, statusOK, status.Path, colorize)
}

func configRows(cfg *config.Config) [][]string {
	minDelay, jitter := cfg.FetchDelay()
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "(none)"
	}
	return [][]string{
		{"paths.work_dir", cfg.Paths.WorkDir},
		{"wiki.api_url", cfg.Wiki.APIURL},
		{"wiki.user_agent", cfg.Wiki.UserAgent},
		{"wiki.timeout", cfg.WikiTimeout().String()},
		{"wiki.batch_size", strconv.Itoa(cfg.Wiki.BatchSize)},
		{"fetch.command", cfg.Fetch.Command},
		{"fetch.timeout", cfg.FetchTimeout().String()},
		{"fetch.delay", fmt.Sprintf("%s + up to %s", minDelay, jitter)},
		{"daserste.tatort_index_url", cfg.DasErste.TatortIndexURL},
		{"fans.base_url", cfg.Fans.BaseURL},
		{"fans.first_year", strconv.Itoa(cfg.Fans.FirstYear)},
		{"logging.format", cfg.Logging.Format},
		{"logging.level", cfg.Logging.Level},
		{"logging.file", logFile},
	}
}
