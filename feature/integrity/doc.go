// Package integrity provides system health checks for variant generation.
//
// # Checks Provided
//
//   - Structure: Checks that the asset root and the variant tree exist in the bucket.
//   - Sidecars: Lists variant objects that have no import sidecar, which is what a
//     run interrupted between copying and committing leaves behind.
//   - Schema: Validates that the ledger table matches its gorm model (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/sidecars : Runs sidecar check.
//   - GET /integrity/schema : Runs ledger schema check.
package integrity
