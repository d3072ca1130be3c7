// Package variant implements the asset substitution engine that produces
// reduced-fidelity variants of composites (prefabs), scenes and folders.
//
// # Architecture
//
// The engine is built from five parts:
//
// 1. Processors: one per asset kind (sprite, texture, audio, data, composite).
//    Each knows whether it applies to an asset and how to produce its variant.
//
// 2. Registry: an ordered table of {kind, processor}. The first matching entry
//    wins; assets nobody handles pass through unchanged.
//
// 3. Session: the per-invocation substitution cache and processed-path set.
//    A fresh session is created for every top-level call and passed explicitly.
//
// 4. Walker: an explicit-stack traversal over the reference slots of a
//    document that writes back every substituted reference.
//
// 5. Engine: discovers nested composites depth-first, rewrites them bottom-up,
//    relinks nested instances to their variants and commits the store.
//
// # Usage
//
//	engine := variant.New(store, cfg, logger)
//	report, err := engine.ProcessHierarchy(ctx, "Assets/Prefabs/Player.prefab")
//
// The engine is not safe for concurrent use. Callers must not start a new
// top-level call before the previous one has returned.
package variant
