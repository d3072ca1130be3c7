// Package memstore implements asset.Store in memory.
//
// Documents are kept serialized, so every Load opens an independent edit
// session and edits only become visible through Save. The store counts the
// mutating calls it receives and the edit sessions left open, which makes it
// the fixture of choice for engine tests.
package memstore
