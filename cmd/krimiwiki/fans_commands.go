package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"krimiwiki/internal/config"
	"krimiwiki/internal/fetch"
	"krimiwiki/internal/series"
	"krimiwiki/internal/tatortfans"
)

func newFansCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fans",
		Short: "Compare the Tatort list against the tatort-fans.de archive",
	}
	cmd.AddCommand(newFansFetchCommand(ctx))
	cmd.AddCommand(newFansHTML2TxtCommand(ctx))
	cmd.AddCommand(newFansURLMapCommand(ctx))
	return cmd
}

// lastArchiveYear is the newest year an archive page may exist for.
func lastArchiveYear() int {
	return time.Now().UTC().Year() + 1
}

func newFansArchive(ctx *commandContext, cfg *config.Config) (*tatortfans.Archive, error) {
	profile, err := series.Lookup("tatort")
	if err != nil {
		return nil, err
	}
	return tatortfans.New(cfg.Fans.BaseURL, profile.Fans, ctx.componentLogger("fans"))
}

func newFansFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch [start [end]]",
		Short: "Download yearly archive pages, then print their episodes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			start, end, err := tatortfans.ParseYears(args, cfg.Fans.FirstYear, lastArchiveYear())
			if err != nil {
				return err
			}
			return ctx.withWorkLock(func(cfg *config.Config) error {
				archive, err := newFansArchive(ctx, cfg)
				if err != nil {
					return err
				}
				pages, err := archive.Pages(start, end)
				if err != nil {
					return err
				}
				f, pacer, err := ctx.fetcher()
				if err != nil {
					return err
				}
				jobs := make([]fetch.Job, len(pages))
				for i, p := range pages {
					jobs[i] = fetch.Job{URL: p.URL, Dest: cfg.WorkPath(p.File)}
				}
				if err := fetch.RunAll(ctx.runContext(cmd), f, pacer, jobs); err != nil {
					return err
				}
				return printArchive(cmd.OutOrStdout(), cfg, archive)
			})
		},
	}
}

func newFansHTML2TxtCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "html2txt",
		Short: "Print the episodes of the cached archive pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			archive, err := newFansArchive(ctx, cfg)
			if err != nil {
				return err
			}
			return printArchive(cmd.OutOrStdout(), cfg, archive)
		},
	}
}

func newFansURLMapCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "urlmap",
		Short: "Print episodes whose archive URL differs from the wiki title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			_, wiki, err := readWikiEpisodes(cfg, "tatort")
			if err != nil {
				return err
			}
			archive, err := newFansArchive(ctx, cfg)
			if err != nil {
				return err
			}
			episodes, err := readArchive(cfg, archive)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ep := range tatortfans.URLMap(wiki, episodes) {
				fmt.Fprintln(out, ep.String())
			}
			return nil
		},
	}
}

func readArchive(cfg *config.Config, archive *tatortfans.Archive) ([]tatortfans.Episode, error) {
	pages, err := archive.Pages(cfg.Fans.FirstYear, lastArchiveYear())
	if err != nil {
		return nil, err
	}
	return archive.ReadCache(cfg.Paths.WorkDir, pages)
}

func printArchive(w io.Writer, cfg *config.Config, archive *tatortfans.Archive) error {
	episodes, err := readArchive(cfg, archive)
	if err != nil {
		return err
	}
	for _, ep := range episodes {
		if _, err := fmt.Fprintln(w, ep.String()); err != nil {
			return err
		}
	}
	return nil
}
