package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd is the parent command for all sync passes.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Bring the target store in line with the source store",
	Long: `Sync creates and updates target entities so they match the source.

Each pass is idempotent: a second run reports every item unchanged.
Per-item failures are logged and counted; the pass always completes.

Examples:
  # Definitions, then every instance of each
  sync definitions

  # Instances of one definition type
  sync instances author

  # Products listed in the handles file
  sync products

  # Every pass in dependency order
  sync all`,
}

var syncPasses = []struct {
	kind  string
	short string
}{
	{catalog.KindDefinitions, "Sync definitions and their instances"},
	{catalog.KindAttributeDefinitions, "Sync attribute definitions for every configured owner type"},
	{catalog.KindAttributes, "Sync product and variant attributes for the handle list"},
	{catalog.KindFiles, "Create files missing at target"},
	{catalog.KindCollections, "Create collections missing at target"},
	{catalog.KindPages, "Create missing pages and sync page attributes"},
	{catalog.KindMenus, "Create, update or recreate navigation menus"},
	{catalog.KindProducts, "Create or update the products in the handle list"},
	{catalog.KindAll, "Run every sync pass"},
}

func init() {
	for _, p := range syncPasses {
		kind := p.kind
		syncCmd.AddCommand(&cobra.Command{
			Use:   kind,
			Short: p.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPass(cmd.Context(), kind, catalog.RunOptions{})
			},
		})
	}

	syncCmd.AddCommand(&cobra.Command{
		Use:   "instances <type>",
		Short: "Sync every instance of one definition type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd.Context(), catalog.KindInstances, catalog.RunOptions{Type: args[0]})
		},
	})

	RootCmd.AddCommand(syncCmd)
}

// runPass bootstraps the service and runs one pass to completion.
func runPass(parent context.Context, kind string, opts catalog.RunOptions) error {
	if err := catalog.Validate(kind, opts); err != nil {
		return err
	}
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := rt.service.Run(ctx, kind, opts)
	printSummary(rt.logger, summary)
	if err != nil {
		return fmt.Errorf("%s pass aborted: %w", kind, err)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%s pass finished with %d failed items", kind, summary.Failed)
	}
	return nil
}

// printSummary logs the counts of a pass and a sample of its failures.
func printSummary(l *zap.Logger, s reconcile.Summary) {
	l.Info("Pass report",
		zap.String("pass", s.Kind),
		zap.Int("total", s.Total),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("created", s.Created),
		zap.Int("updated", s.Updated),
		zap.Int("recreated", s.Recreated),
		zap.Int("deleted", s.Deleted),
		zap.Int("skipped", s.Skipped),
		zap.Int("failed", s.Failed),
		zap.Duration("elapsed", s.FinishedAt.Sub(s.StartedAt)),
	)

	maxShow := min(5, len(s.Failures))
	for _, f := range s.Failures[:maxShow] {
		l.Warn("Failed item", zap.String("kind", f.Kind), zap.String("key", f.Key), zap.String("error", f.Error))
	}
	if len(s.Failures) > maxShow {
		l.Warn("Additional failures not shown", zap.Int("count", len(s.Failures)-maxShow))
	}
}
