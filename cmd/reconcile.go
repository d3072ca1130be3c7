package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"asset-variants/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for reconcile variants command
	purgeVariants   bool
	dryRunVariants  bool
	profileVariants string
	yesConfirm      bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile generated variants between the ledger and storage",
	Long: `Reconcile variants to detect ledger records without objects and
objects without ledger records. Supports an optional purge of both.`,
}

// variantsReconcileCmd performs variant reconciliation with optional purge.
var variantsReconcileCmd = &cobra.Command{
	Use:   "variants",
	Short: "Reconcile variant assets (report + optionally purge)",
	Long: `Reconcile the variant tree of the configured prefix against the ledger.

Reports variants recorded in the ledger whose object is gone, and objects in
the variant tree that no run recorded. Optionally purge both.

Examples:
  # Report only
  reconcile variants

  # Purge with interactive confirmation
  reconcile variants --purge

  # Purge with auto-confirm (non-interactive)
  reconcile variants --purge --yes

  # Show what a purge would do without touching anything
  reconcile variants --purge --dry-run`,
	RunE: runVariantsReconcile,
}

func init() {
	reconcileCmd.AddCommand(variantsReconcileCmd)

	variantsReconcileCmd.Flags().BoolVar(&purgeVariants, "purge", false, "Enable purge (delete ledger records and objects missing their counterpart)")
	variantsReconcileCmd.Flags().BoolVar(&dryRunVariants, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	variantsReconcileCmd.Flags().StringVar(&profileVariants, "profile", "", "Reconcile the variant tree of a quality profile")
	variantsReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runVariantsReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(true, true)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	vcfg, err := rt.cfg.Variant.ResolveProfile(profileVariants)
	if err != nil {
		return err
	}

	// No caching: the CLI always reads the current state.
	spec := &reconcile.Spec{
		Adapter:       reconcile.NewVariantAdapter(rt.ledger, rt.store),
		StoragePrefix: path.Join(vcfg.RootDir, vcfg.NamePrefix),
	}
	opts := reconcile.Options{
		DoPurge: purgeVariants,
		DryRun:  dryRunVariants,
	}

	rt.log.Info("Planning reconciliation...", zap.String("prefix", spec.StoragePrefix))
	plan, err := reconcile.ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	printReconcileReport(rt.log, plan)

	if !purgeVariants {
		rt.log.Info("No actions requested. Use --purge to delete incomplete variants.")
		return nil
	}
	if dryRunVariants {
		rt.log.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		rt.log.Info("No actions required based on current flags.")
		return nil
	}

	if !confirmDestructiveAction() {
		rt.log.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	rt.log.Info("Applying actions...")
	executed, err := reconcile.ApplyPlan(ctx, spec, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan after %d actions: %w", executed, err)
	}
	rt.log.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_ledger", s.MissingLedger),
		zap.Int("missing_storage", s.MissingStorage),
	)

	if len(plan.Actions) == 0 {
		return
	}
	l.Info("Planned actions",
		zap.Int("purge_actions", s.PurgeActions),
		zap.Int("total_actions", len(plan.Actions)),
	)

	maxShow := 5
	if len(plan.Actions) < maxShow {
		maxShow = len(plan.Actions)
	}
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
