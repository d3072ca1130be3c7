package reconcile

import (
	"context"
	"fmt"

	"asset-variants/core/asset"
	"asset-variants/core/ledger"
)

// Ledger is the subset of the ledger repository reconciliation needs.
type Ledger interface {
	Index(ctx context.Context) (map[string]ledger.Record, error)
	Latest(ctx context.Context, variant string) (*ledger.Record, error)
	DeleteByVariants(ctx context.Context, variants []string) (int64, error)
}

// VariantAdapter reconciles ledger records against variant assets in a store.
type VariantAdapter struct {
	ledger Ledger
	store  asset.Store
}

// NewVariantAdapter creates an adapter over a ledger and an asset store.
func NewVariantAdapter(l Ledger, store asset.Store) *VariantAdapter {
	return &VariantAdapter{ledger: l, store: store}
}

// Name implements Adapter.
func (a *VariantAdapter) Name() string {
	return "variants"
}

// LoadLedgerIndex implements Adapter.
func (a *VariantAdapter) LoadLedgerIndex(ctx context.Context) (map[string]LedgerItem, error) {
	return a.ledger.Index(ctx)
}

// LoadStorageSet implements Adapter.
func (a *VariantAdapter) LoadStorageSet(ctx context.Context, prefix string) (map[string]struct{}, error) {
	assets, err := a.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	set := make(map[string]struct{}, len(assets))
	for _, as := range assets {
		set[as.Path] = struct{}{}
	}
	return set, nil
}

// LookupLedger implements Adapter.
func (a *VariantAdapter) LookupLedger(ctx context.Context, key string) (*LedgerItem, error) {
	return a.ledger.Latest(ctx, key)
}

// CheckStorage implements Adapter.
func (a *VariantAdapter) CheckStorage(ctx context.Context, key string) (bool, error) {
	return a.store.Exists(ctx, key)
}

// DeleteLedger implements Mutator.
func (a *VariantAdapter) DeleteLedger(ctx context.Context, key string) error {
	return a.DeleteLedgerBatch(ctx, []string{key})
}

// DeleteLedgerBatch implements LedgerBatchDeleter.
func (a *VariantAdapter) DeleteLedgerBatch(ctx context.Context, keys []string) error {
	_, err := a.ledger.DeleteByVariants(ctx, keys)
	return err
}

// DeleteStorage implements Mutator.
func (a *VariantAdapter) DeleteStorage(ctx context.Context, key string) error {
	return a.store.Delete(ctx, key)
}
