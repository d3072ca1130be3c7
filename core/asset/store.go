package asset

import "context"

// Store is the host asset store the engine runs against.
//
// Editable contents obtained from Load must be released with Unload on every
// exit path. Implementations are not required to be safe for concurrent use.
type Store interface {
	// Stat resolves the identity and kind of the asset at path.
	// It returns ErrNotFound if nothing exists there.
	Stat(ctx context.Context, path string) (Asset, error)
	// Exists reports whether an artifact exists at path.
	Exists(ctx context.Context, path string) (bool, error)
	// List returns every asset stored under prefix.
	List(ctx context.Context, prefix string) ([]Asset, error)
	// Copy duplicates the asset at src, including its import settings, to dst.
	Copy(ctx context.Context, src, dst string) error
	// Delete removes the artifact at path.
	Delete(ctx context.Context, path string) error

	// Load opens the editable contents of a document asset.
	Load(ctx context.Context, path string) (*Document, error)
	// Save persists doc at doc.Path.
	Save(ctx context.Context, doc *Document) error
	// Unload releases an edit session opened by Load.
	Unload(doc *Document)

	// Instantiate returns a new instance node of the composite at path.
	Instantiate(ctx context.Context, path string) (*Node, error)

	// ImportSettings returns the import parameters of the asset at path.
	ImportSettings(ctx context.Context, path string) (ImportSettings, error)
	// SetImportSettings stores new import parameters and reimports the asset.
	SetImportSettings(ctx context.Context, path string, settings ImportSettings) error

	// Commit persists pending changes and refreshes the store's view.
	Commit(ctx context.Context) error
}

// Digester is implemented by stores that can fingerprint asset contents.
type Digester interface {
	Digest(ctx context.Context, path string) (string, error)
}
