package reconcile

import (
	"context"
	"sort"
)

// ReconcileAll performs a full reconciliation across all variants.
func ReconcileAll(ctx context.Context, spec *Spec) ([]Result, error) {
	cache, err := BuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	return resultsFromCache(cache), nil
}

// ReconcileOne reconciles a single variant path. It answers from the cache
// when caching is enabled and falls back to targeted lookups otherwise.
func ReconcileOne(ctx context.Context, spec *Spec, key string) (*Result, error) {
	if spec.CacheTTL > 0 {
		cache, err := GetOrBuildCache(ctx, spec)
		if err != nil {
			return nil, err
		}
		result := buildResult(key, cache.LedgerIndex, cache.StorageSet)
		return &result, nil
	}

	item, err := spec.Adapter.LookupLedger(ctx, key)
	if err != nil {
		return nil, err
	}
	present, err := spec.Adapter.CheckStorage(ctx, key)
	if err != nil {
		return nil, err
	}

	result := Result{Key: key, LedgerPresent: item != nil, StoragePresent: present}
	if item != nil {
		result.Source = item.Source
		result.Kind = item.Kind
		result.RunID = item.RunID
	}
	return &result, nil
}

func resultsFromCache(cache *Cache) []Result {
	union := buildUnion(cache.LedgerIndex, cache.StorageSet)

	results := make([]Result, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache.LedgerIndex, cache.StorageSet))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})
	return results
}

func buildUnion(ledgerIndex map[string]LedgerItem, storageSet map[string]struct{}) map[string]struct{} {
	union := make(map[string]struct{}, len(ledgerIndex)+len(storageSet))
	for key := range ledgerIndex {
		union[key] = struct{}{}
	}
	for key := range storageSet {
		union[key] = struct{}{}
	}
	return union
}

func buildResult(key string, ledgerIndex map[string]LedgerItem, storageSet map[string]struct{}) Result {
	item, ledgerPresent := ledgerIndex[key]
	_, storagePresent := storageSet[key]

	result := Result{
		Key:            key,
		LedgerPresent:  ledgerPresent,
		StoragePresent: storagePresent,
	}
	if ledgerPresent {
		result.Source = item.Source
		result.Kind = item.Kind
		result.RunID = item.RunID
	}
	return result
}
