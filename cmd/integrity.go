package cmd

import (
	"context"
	"fmt"

	"asset-variants/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the variant storage and ledger",
	Long:  `Checks the variant folder structure, the sidecars of stored variants and the ledger schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), integrityAll)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the variant folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integrityStructure)
	},
}

// sidecarsCmd represents the integrity sidecars command
var sidecarsCmd = &cobra.Command{
	Use:   "sidecars",
	Short: "Find variants stored without import settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integritySidecars)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the ledger database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), integritySchema)
	},
}

type integrityScope int

const (
	integrityAll integrityScope = iota
	integrityStructure
	integritySidecars
	integritySchema
)

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, sidecarsCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
}

func runIntegrityChecks(ctx context.Context, scope integrityScope) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// The schema must be inspected as found, so no migration here.
	rt, err := bootstrap(scope == integritySchema, false)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	svc := integrity.NewService(rt.client, rt.cfg.Storage.Bucket, rt.log, rt.db, rt.cfg.Variant)

	if scope == integrityAll || scope == integrityStructure {
		rt.log.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			rt.log.Info("Structure is intact.")
		} else {
			rt.log.Warn("Missing folders detected", zap.Strings("missing", missing))
			if scope == integrityStructure && fixFlag {
				rt.log.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				rt.log.Info("Structure fixed successfully.")
			} else if scope == integrityStructure {
				rt.log.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if scope == integrityAll || scope == integritySidecars {
		rt.log.Info("Checking variant sidecars...")
		orphans, err := svc.CheckSidecars(ctx)
		if err != nil {
			return fmt.Errorf("sidecar check failed: %w", err)
		}
		if len(orphans) == 0 {
			rt.log.Info("Every variant has its sidecar.")
		} else {
			rt.log.Warn("Variants without sidecar detected", zap.Int("count", len(orphans)), zap.Strings("variants", orphans))
		}
	}

	if scope == integrityAll || scope == integritySchema {
		if rt.db == nil {
			rt.log.Info("Ledger database not connected, skipping schema check.")
			return nil
		}
		rt.log.Info("Checking ledger schema integrity...", zap.String("database", rt.cfg.Database.Name))
		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			rt.log.Info("Ledger schema matches expected definition.")
			return nil
		}
		rt.log.Warn("Ledger schema mismatches found")
		for table, tbl := range report.Tables {
			if len(tbl.MissingColumns) > 0 {
				rt.log.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
			}
			if len(tbl.TypeMismatches) > 0 {
				rt.log.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
			}
		}
		for _, e := range report.Errors {
			rt.log.Error("Inspection Error", zap.String("error", e))
		}
	}
	return nil
}
