package main

import (
	"errors"

	"github.com/spf13/cobra"

	"krimiwiki/internal/mediawiki"
	"krimiwiki/internal/revstats"
)

func newRevStatsCommand(ctx *commandContext) *cobra.Command {
	var total int

	cmd := &cobra.Command{
		Use:   "revstats [tatort|polizeiruf110|xx:Template]",
		Short: "Print who created and edited the articles using a template",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("please specify only one page selector")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if total < 0 {
				return errors.New("--total must not be negative")
			}
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			sel, err := revstats.ParseSelector(arg)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			apiURL := cfg.Wiki.APIURL
			if sel.Site != "de" {
				apiURL = mediawiki.SiteAPIURL(sel.Site)
			}
			client, err := ctx.wikiClient(apiURL)
			if err != nil {
				return err
			}
			stats, err := revstats.Collect(ctx.runContext(cmd), client, sel, total, ctx.componentLogger("revstats"))
			if err != nil {
				return err
			}
			return stats.WriteTables(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&total, "total", 0, "Count at most this many articles (0 counts all)")
	return cmd
}
