// Package generator exposes the variant engine over HTTP.
//
// Routes:
//
//	POST /variants/prefab     {"path": "...", "profile": "..."}
//	POST /variants/scene
//	POST /variants/folder
//	GET  /variants/runs/:id
//	GET  /variants/reconcile  ?key= &profile= &purge= &apply=
//
// Runs are serialized because the engine edits the shared store; identical
// requests arriving together share one run. Every successful run is written
// to the ledger when a database is configured.
package generator
