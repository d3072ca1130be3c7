package variant

import (
	"context"

	"asset-variants/core/asset"
)

type entry struct {
	kind      asset.Kind
	processor Processor
}

// Registry is an ordered table of processors keyed by asset kind.
// Resolution is first-match, so more specific entries must be registered first.
type Registry struct {
	entries []entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a processor for kind.
func (r *Registry) Register(kind asset.Kind, p Processor) {
	r.entries = append(r.entries, entry{kind: kind, processor: p})
}

// Resolve returns the first processor registered for a's kind that accepts a,
// or nil when none does.
func (r *Registry) Resolve(a asset.Asset) Processor {
	for _, e := range r.entries {
		if e.kind == a.Kind && e.processor.CanProcess(a) {
			return e.processor
		}
	}
	return nil
}

// ProcessAsset returns the variant of a, or a itself when no processor applies.
func (r *Registry) ProcessAsset(ctx context.Context, sess *Session, a asset.Asset) (asset.Asset, error) {
	p := r.Resolve(a)
	if p == nil {
		return a, nil
	}
	return p.Process(ctx, sess, a)
}

// Kinds returns the registered kinds in resolution order.
func (r *Registry) Kinds() []asset.Kind {
	kinds := make([]asset.Kind, 0, len(r.entries))
	for _, e := range r.entries {
		kinds = append(kinds, e.kind)
	}
	return kinds
}
