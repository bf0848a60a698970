package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"krimiwiki/internal/audit"
	"krimiwiki/internal/config"
	"krimiwiki/internal/daserste"
	"krimiwiki/internal/episodefile"
	"krimiwiki/internal/series"
)

func newDasErsteCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daserste",
		Short: "Compare the Tatort list against the Das Erste index page",
	}
	cmd.AddCommand(newDasErsteFetchCommand(ctx))
	cmd.AddCommand(newDasErsteHTML2TxtCommand(ctx))
	cmd.AddCommand(newDasErsteURLMapCommand(ctx))
	cmd.AddCommand(newDasErsteDiffCommand(ctx))
	return cmd
}

func newDasErsteFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the index page, then print its episodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkLock(func(cfg *config.Config) error {
				f, _, err := ctx.fetcher()
				if err != nil {
					return err
				}
				dest := cfg.WorkPath(daserste.IndexFile)
				if err := f.Fetch(ctx.runContext(cmd), cfg.DasErste.TatortIndexURL, dest); err != nil {
					return err
				}
				return printIndex(cmd.OutOrStdout(), cfg, ctx.componentLogger("daserste"))
			})
		},
	}
}

func newDasErsteHTML2TxtCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "html2txt",
		Short: "Print the episodes of the cached index page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return printIndex(cmd.OutOrStdout(), cfg, ctx.componentLogger("daserste"))
		},
	}
}

func newDasErsteURLMapCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "urlmap",
		Short: "Print episodes whose broadcaster URL differs from the wiki title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.componentLogger("daserste")
			profile, wiki, err := readWikiEpisodes(cfg, "tatort")
			if err != nil {
				return err
			}
			index, err := readIndex(cfg, profile, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range daserste.URLMap(wiki, index, logger) {
				fmt.Fprintln(out, m.String())
			}
			return nil
		},
	}
}

func newDasErsteDiffCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Print episodes added or changed on the index page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.componentLogger("daserste")
			profile, wiki, err := readWikiEpisodes(cfg, "tatort")
			if err != nil {
				return err
			}
			titles, err := episodefile.ReadTitleMap(cfg.WorkPath(daserste.TitleMapFile))
			if errors.Is(err, fs.ErrNotExist) {
				titles = nil
			} else if err != nil {
				return err
			}
			index, err := readIndex(cfg, profile, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range daserste.Diff(daserste.PrepareWiki(wiki, titles, logger), index) {
				fmt.Fprintln(out, c.String())
			}
			return nil
		},
	}
}

func readWikiEpisodes(cfg *config.Config, key string) (*series.Profile, []episodefile.WikiEpisode, error) {
	profile, err := series.Lookup(key)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.WorkPath(audit.EpisodesFile(profile))
	episodes, err := episodefile.ReadWikiEpisodes(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("%s not found; run `krimiwiki audit %s` first", path, key)
	}
	if err != nil {
		return nil, nil, err
	}
	return profile, episodes, nil
}

func readIndex(cfg *config.Config, profile *series.Profile, logger *slog.Logger) ([]daserste.Entry, error) {
	path := cfg.WorkPath(daserste.IndexFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s not found; run `krimiwiki daserste fetch` first", path)
		}
		return nil, err
	}
	defer f.Close()
	entries, err := daserste.ParseIndex(f, profile.DasErste, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

func printIndex(w io.Writer, cfg *config.Config, logger *slog.Logger) error {
	profile, err := series.Lookup("tatort")
	if err != nil {
		return err
	}
	entries, err := readIndex(cfg, profile, logger)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}
