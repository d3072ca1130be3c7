// Package reconcile compares the variant ledger with the variant objects
// actually present in storage.
//
// Both indices are built concurrently: the ledger with a single query, the
// variant tree with a single recursive listing. Recorded variants that live
// outside the tree (scene variants sit next to their source) are checked
// individually. The union of keys yields one Result per variant path.
//
// A Plan lists the purge actions that bring both sources back in agreement:
// ledger rows whose object is gone are deleted, and objects nobody recorded
// are removed. ApplyPlan only executes when the caller confirmed and did not
// ask for a dry run.
//
//	spec := &reconcile.Spec{
//	    Adapter:       reconcile.NewVariantAdapter(ledger.NewRepository(db), store),
//	    StoragePrefix: "Assets/LowRes",
//	    CacheTTL:      5 * time.Minute,
//	}
//	plan, executed, err := reconcile.ReconcileAndApply(ctx, spec, reconcile.Options{DoPurge: true, Confirmed: true})
//
// Cached indices are shared per adapter and prefix; concurrent rebuilds are
// collapsed with singleflight.
package reconcile
