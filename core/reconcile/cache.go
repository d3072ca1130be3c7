package reconcile

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache holds pre-built indices for fast targeted reconciliation.
type Cache struct {
	// LedgerIndex is the latest ledger item of every recorded variant.
	LedgerIndex map[string]LedgerItem

	// StorageSet is the set of variant paths present in storage.
	StorageSet map[string]struct{}

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *Cache) IsExpired() bool {
	if c.TTL == 0 {
		return true
	}
	return time.Since(c.Built) > c.TTL
}

type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*Cache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*Cache),
}

// BuildCache loads both indices concurrently without storing the result.
// Recorded variants outside the listed tree (scene variants live next to
// their source) are checked one by one.
func BuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	var (
		ledgerIndex map[string]LedgerItem
		storageSet  map[string]struct{}
		ledgerErr   error
		storageErr  error
		wg          sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		ledgerIndex, ledgerErr = spec.Adapter.LoadLedgerIndex(ctx)
	}()

	go func() {
		defer wg.Done()
		storageSet, storageErr = spec.Adapter.LoadStorageSet(ctx, spec.StoragePrefix)
	}()

	wg.Wait()

	if ledgerErr != nil {
		return nil, ledgerErr
	}
	if storageErr != nil {
		return nil, storageErr
	}

	for key := range ledgerIndex {
		if inTree(spec.StoragePrefix, key) {
			continue
		}
		ok, err := spec.Adapter.CheckStorage(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			storageSet[key] = struct{}{}
		}
	}

	return &Cache{
		LedgerIndex: ledgerIndex,
		StorageSet:  storageSet,
		Built:       time.Now(),
		TTL:         spec.CacheTTL,
	}, nil
}

// GetOrBuildCache returns the stored cache for spec, rebuilding it when it
// is missing or expired. Concurrent rebuilds collapse into one.
func GetOrBuildCache(ctx context.Context, spec *Spec) (*Cache, error) {
	cacheKey := spec.CacheKey()

	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache, nil
		}

		newCache, err := BuildCache(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalCacheStore.mu.Lock()
		globalCacheStore.caches[cacheKey] = newCache
		globalCacheStore.mu.Unlock()

		return newCache, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*Cache), nil
}

// InvalidateCache removes the cache for the given spec from the store.
func InvalidateCache(spec *Spec) {
	cacheKey := spec.CacheKey()
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}

func inTree(prefix, key string) bool {
	return prefix == "" || strings.HasPrefix(key, strings.TrimSuffix(prefix, "/")+"/")
}
