package reconcile

import (
	"time"

	"asset-variants/core/ledger"
)

// LedgerItem is the ledger side of a variant.
type LedgerItem = ledger.Record

// Result represents the reconciliation output for a single variant path.
type Result struct {
	// Key is the variant asset path.
	Key string `json:"key"`

	// Source is the asset the variant was generated from, when recorded.
	Source string `json:"source,omitempty"`

	// Kind is the recorded asset kind.
	Kind string `json:"kind,omitempty"`

	// RunID is the run that last produced the variant.
	RunID string `json:"run_id,omitempty"`

	// LedgerPresent indicates whether the variant is recorded in the ledger.
	LedgerPresent bool `json:"ledger_present"`

	// StoragePresent indicates whether the variant object exists in storage.
	StoragePresent bool `json:"storage_present"`
}

// Complete reports whether the variant is present in both sources.
func (r Result) Complete() bool {
	return r.LedgerPresent && r.StoragePresent
}

// Spec defines the configuration for a reconciliation operation.
type Spec struct {
	// Adapter provides access to both sources.
	Adapter Adapter

	// CacheTTL is the time-to-live for cached indices.
	// If zero, caching is disabled.
	CacheTTL time.Duration

	// StoragePrefix is the variant tree listed in storage, e.g. "Assets/LowRes".
	StoragePrefix string
}

// CacheKey returns a unique key for caching based on spec parameters.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name() + "|" + s.StoragePrefix
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionDeleteLedger deletes the ledger records of a variant.
	ActionDeleteLedger ActionType = "delete_ledger"
	// ActionDeleteStorage deletes a variant object from storage.
	ActionDeleteStorage ActionType = "delete_storage"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the variant path.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Plan contains reconciliation results and planned actions.
type Plan struct {
	// Results contains per-variant reconciliation data.
	Results []Result `json:"results"`

	// Actions contains planned mutation operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// TotalItems is the total number of unique variant paths.
	TotalItems int `json:"total_items"`

	// MissingLedger counts variant objects nobody recorded.
	MissingLedger int `json:"missing_ledger"`

	// MissingStorage counts recorded variants whose object is gone.
	MissingStorage int `json:"missing_storage"`

	// PurgeActions counts planned delete actions.
	PurgeActions int `json:"purge_actions"`
}

// Options controls reconcile behavior.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge enables deletion of entries missing in the other source.
	DoPurge bool

	// Confirmed indicates the caller has confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}
