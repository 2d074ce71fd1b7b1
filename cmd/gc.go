package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"catalog-sync/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for gc commands
	dryRunGC   bool
	yesConfirm bool
)

// gcCmd is the parent command for garbage collection passes.
var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Delete target entities that have no source counterpart",
	Long: `Garbage collection deletes target entities whose cross-store key is absent
at the source. Platform-owned definitions and namespaces are never touched.

Every gc command first plans the pass (nothing is deleted), prints the report,
and asks for confirmation before deleting.

Examples:
  # Report only
  gc collections --dry-run

  # Delete with interactive confirmation
  gc definitions

  # Delete the orphan instances of one type without prompting
  gc instances author --yes`,
}

var gcPasses = []struct {
	use   string
	kind  string
	short string
}{
	{"definitions", catalog.KindGCDefinitions, "Delete orphan definitions and all their instances"},
	{"attribute-definitions", catalog.KindGCAttributeDefinitions, "Delete orphan attribute definitions"},
	{"collections", catalog.KindGCCollections, "Delete orphan collections"},
}

func init() {
	for _, p := range gcPasses {
		kind := p.kind
		gcCmd.AddCommand(&cobra.Command{
			Use:   p.use,
			Short: p.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGC(cmd.Context(), kind, catalog.RunOptions{})
			},
		})
	}

	gcCmd.AddCommand(&cobra.Command{
		Use:   "instances <type>",
		Short: "Delete orphan instances of one definition type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGC(cmd.Context(), catalog.KindGCInstances, catalog.RunOptions{Type: args[0]})
		},
	})

	gcCmd.PersistentFlags().BoolVar(&dryRunGC, "dry-run", false, "Report what would be deleted without deleting")
	gcCmd.PersistentFlags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm deletion (non-interactive)")

	RootCmd.AddCommand(gcCmd)
}

func runGC(parent context.Context, kind string, opts catalog.RunOptions) error {
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

	// Step 1: Plan (always runs)
	rt.logger.Info("Planning garbage collection...", zap.String("pass", kind))
	plan := opts
	plan.DryRun = true
	summary, err := rt.service.Run(ctx, kind, plan)
	printSummary(rt.logger, summary)
	if err != nil {
		return fmt.Errorf("failed to plan %s: %w", kind, err)
	}

	if dryRunGC {
		rt.logger.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if summary.Skipped == 0 {
		rt.logger.Info("Nothing to delete.")
		return nil
	}

	// Step 2: Apply (if confirmed)
	if !confirmDestructiveAction(summary.Skipped) {
		rt.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	summary, err = rt.service.Run(ctx, kind, opts)
	printSummary(rt.logger, summary)
	if err != nil {
		return fmt.Errorf("%s pass aborted: %w", kind, err)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%s pass finished with %d failed items", kind, summary.Failed)
	}
	return nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(count int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  %d items will be deleted. Type 'yes' to confirm: ", count)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
