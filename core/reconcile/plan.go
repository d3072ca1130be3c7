package reconcile

import (
	"context"
	"fmt"
)

// ReconcileWithPlan reconciles both sources and returns a plan.
// It does NOT execute actions; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec, opts Options) (*Plan, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := resultsFromCache(cache)
	summary, actions := buildPlanFromResults(results, opts)

	return &Plan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions in a plan and returns how many ran.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, spec *Spec, plan *Plan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", spec.Adapter.Name())
	}
	defer InvalidateCache(spec)

	var ledgerKeys, storageKeys []string
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteLedger:
			ledgerKeys = append(ledgerKeys, action.Key)
		case ActionDeleteStorage:
			storageKeys = append(storageKeys, action.Key)
		}
	}

	if len(ledgerKeys) > 0 {
		if batch, ok := mutator.(LedgerBatchDeleter); ok {
			if err := batch.DeleteLedgerBatch(ctx, ledgerKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete ledger keys: %w", err)
			}
			executed += len(ledgerKeys)
		} else {
			for _, key := range ledgerKeys {
				if err := mutator.DeleteLedger(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete ledger key %s: %w", key, err)
				}
				executed++
			}
		}
	}

	if len(storageKeys) > 0 {
		if batch, ok := mutator.(StorageBatchDeleter); ok {
			if err := batch.DeleteStorageBatch(ctx, storageKeys); err != nil {
				return executed, fmt.Errorf("failed to batch delete storage keys: %w", err)
			}
			executed += len(storageKeys)
		} else {
			for _, key := range storageKeys {
				if err := mutator.DeleteStorage(ctx, key); err != nil {
					return executed, fmt.Errorf("failed to delete storage key %s: %w", key, err)
				}
				executed++
			}
		}
	}

	return executed, nil
}

// ReconcileAndApply plans and optionally applies actions.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts Options) (*Plan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, executed, err
}

func buildPlanFromResults(results []Result, opts Options) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalItems = len(results)

	for _, result := range results {
		if result.LedgerPresent && !result.StoragePresent {
			summary.MissingStorage++
		}
		if result.StoragePresent && !result.LedgerPresent {
			summary.MissingLedger++
		}

		if !opts.DoPurge || result.Complete() {
			continue
		}

		// A variant is only kept when both sources agree on it.
		if result.LedgerPresent {
			actions = append(actions, Action{
				Type:   ActionDeleteLedger,
				Key:    result.Key,
				Reason: "missing in: storage",
			})
			summary.PurgeActions++
		}
		if result.StoragePresent {
			actions = append(actions, Action{
				Type:   ActionDeleteStorage,
				Key:    result.Key,
				Reason: "missing in: ledger",
			})
			summary.PurgeActions++
		}
	}

	return summary, actions
}
