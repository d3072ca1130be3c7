package reconcile

import (
	"context"
	"testing"

	"asset-variants/core/asset"
	"asset-variants/core/ledger"
	"asset-variants/core/store/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	records map[string]ledger.Record
	deleted [][]string
}

func (f *fakeLedger) Index(ctx context.Context) (map[string]ledger.Record, error) {
	out := make(map[string]ledger.Record, len(f.records))
	for k, v := range f.records {
		out[k] = v
	}
	return out, nil
}

func (f *fakeLedger) Latest(ctx context.Context, variant string) (*ledger.Record, error) {
	rec, ok := f.records[variant]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeLedger) DeleteByVariants(ctx context.Context, variants []string) (int64, error) {
	f.deleted = append(f.deleted, variants)
	for _, v := range variants {
		delete(f.records, v)
	}
	return int64(len(variants)), nil
}

func TestVariantAdapter_PurgeRoundTrip(t *testing.T) {
	store := memstore.New()
	store.AddImage("Assets/Art/a.png", asset.KindTexture, 64, 64)
	store.AddImage("Assets/LowRes/Art/LowRes_a.png", asset.KindTexture, 32, 32)
	store.AddImage("Assets/LowRes/Art/LowRes_orphan.png", asset.KindTexture, 32, 32)
	store.AddAudio("Assets/Scenes/LowResTheme.wav", 24000)

	l := &fakeLedger{records: map[string]ledger.Record{
		"Assets/LowRes/Art/LowRes_a.png":    {Source: "Assets/Art/a.png", Variant: "Assets/LowRes/Art/LowRes_a.png", Kind: "texture"},
		"Assets/LowRes/Art/LowRes_gone.png": {Source: "Assets/Art/gone.png", Variant: "Assets/LowRes/Art/LowRes_gone.png", Kind: "texture"},
		"Assets/Scenes/LowResTheme.wav":     {Source: "Assets/Scenes/Theme.wav", Variant: "Assets/Scenes/LowResTheme.wav", Kind: "audio"},
	}}

	adapter := NewVariantAdapter(l, store)
	spec := &Spec{Adapter: adapter, StoragePrefix: "Assets/LowRes"}

	plan, executed, err := ReconcileAndApply(context.Background(), spec, Options{DoPurge: true, Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 4, plan.Summary.TotalItems)
	assert.Equal(t, 1, plan.Summary.MissingLedger)
	assert.Equal(t, 1, plan.Summary.MissingStorage)
	assert.Equal(t, 2, executed)

	assert.Equal(t, [][]string{{"Assets/LowRes/Art/LowRes_gone.png"}}, l.deleted)
	exists, err := store.Exists(context.Background(), "Assets/LowRes/Art/LowRes_orphan.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// A second pass finds nothing left to do.
	plan, err = ReconcileWithPlan(context.Background(), spec, Options{DoPurge: true})
	require.NoError(t, err)
	assert.Empty(t, plan.Actions)
	for _, r := range plan.Results {
		assert.True(t, r.Complete(), r.Key)
	}
}

func TestVariantAdapter_ReconcileOne(t *testing.T) {
	store := memstore.New()
	store.AddImage("Assets/LowRes/LowRes_a.png", asset.KindSprite, 8, 8)
	l := &fakeLedger{records: map[string]ledger.Record{
		"Assets/LowRes/LowRes_a.png": {Source: "Assets/a.png", Variant: "Assets/LowRes/LowRes_a.png", Kind: "sprite", RunID: "r1"},
	}}

	spec := &Spec{Adapter: NewVariantAdapter(l, store), StoragePrefix: "Assets/LowRes"}
	result, err := ReconcileOne(context.Background(), spec, "Assets/LowRes/LowRes_a.png")
	require.NoError(t, err)
	assert.Equal(t, Result{
		Key:            "Assets/LowRes/LowRes_a.png",
		Source:         "Assets/a.png",
		Kind:           "sprite",
		RunID:          "r1",
		LedgerPresent:  true,
		StoragePresent: true,
	}, *result)
}
