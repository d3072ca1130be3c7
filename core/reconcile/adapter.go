package reconcile

import (
	"context"
)

// Adapter defines how both sources of a reconciliation are loaded.
type Adapter interface {
	// Name returns the unique name of this adapter.
	Name() string

	// LoadLedgerIndex returns the latest ledger item of every variant path.
	LoadLedgerIndex(ctx context.Context) (map[string]LedgerItem, error)

	// LoadStorageSet lists every variant object below prefix.
	// Implementations should list once and avoid per-item HEAD calls.
	LoadStorageSet(ctx context.Context, prefix string) (map[string]struct{}, error)

	// LookupLedger returns the latest ledger item of key, or nil.
	LookupLedger(ctx context.Context, key string) (*LedgerItem, error)

	// CheckStorage checks if a single variant object exists.
	CheckStorage(ctx context.Context, key string) (bool, error)
}

// Mutator is implemented by adapters that can apply a plan.
type Mutator interface {
	DeleteLedger(ctx context.Context, key string) error
	DeleteStorage(ctx context.Context, key string) error
}

// LedgerBatchDeleter deletes many ledger entries at once.
type LedgerBatchDeleter interface {
	DeleteLedgerBatch(ctx context.Context, keys []string) error
}

// StorageBatchDeleter deletes many variant objects at once.
type StorageBatchDeleter interface {
	DeleteStorageBatch(ctx context.Context, keys []string) error
}
