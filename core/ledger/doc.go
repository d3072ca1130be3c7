// Package ledger records every variant the engine produced in MySQL.
//
// Each row maps one source asset to its variant for a given run, together
// with the BLAKE3 digest of the source at generation time. The ledger is the
// database side of variant reconciliation.
package ledger
