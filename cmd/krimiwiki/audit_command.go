package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"krimiwiki/internal/audit"
	"krimiwiki/internal/config"
	"krimiwiki/internal/logging"
	"krimiwiki/internal/series"
)

var auditedSeries = []string{"tatort", "polizeiruf110"}

func newAuditCommand(ctx *commandContext) *cobra.Command {
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit the wiki episode articles of a series",
	}
	for _, key := range auditedSeries {
		auditCmd.AddCommand(newAuditSeriesCommand(ctx, key))
	}
	return auditCmd
}

func newAuditSeriesCommand(ctx *commandContext, key string) *cobra.Command {
	var limit int
	var skipFiles bool

	cmd := &cobra.Command{
		Use:   key,
		Short: fmt.Sprintf("Audit the %s episode articles", key),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}
			profile, err := series.Lookup(key)
			if err != nil {
				return err
			}
			return ctx.withWorkLock(func(cfg *config.Config) error {
				return runAudit(cmd, ctx, cfg, profile, limit, !skipFiles)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Audit at most this many pages (0 audits all)")
	cmd.Flags().BoolVar(&skipFiles, "no-files", false, "Only print the episode list; skip the report files")
	return cmd
}

func runAudit(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, profile *series.Profile, limit int, writeFiles bool) error {
	runCtx := logging.WithSeries(ctx.runContext(cmd), profile.Name)
	logger := ctx.componentLogger("audit").With(logging.String(logging.FieldSeries, profile.Name))

	client, err := ctx.wikiClient(cfg.Wiki.APIURL)
	if err != nil {
		return err
	}
	auditor, err := audit.New(profile, audit.WithLogger(logger))
	if err != nil {
		return err
	}
	report, err := auditor.Run(runCtx, audit.NewWikiSource(client, profile, limit, logger))
	if err != nil {
		return fmt.Errorf("audit %s: %w", profile.Name, err)
	}

	if err := report.WriteEpisodes(cmd.OutOrStdout()); err != nil {
		return err
	}
	if writeFiles {
		if err := report.WriteFiles(cfg.Paths.WorkDir); err != nil {
			return err
		}
	}

	stderr := cmd.ErrOrStderr()
	for _, line := range renderAuditSummary(report, cfg.Paths.WorkDir, writeFiles, shouldColorize(stderr)) {
		fmt.Fprintln(stderr, line)
	}
	return nil
}
