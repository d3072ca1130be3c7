package variant

import (
	"context"

	"asset-variants/core/asset"
)

// resolveFunc returns the variant of a composite within a session.
type resolveFunc func(ctx context.Context, sess *Session, a asset.Asset) (asset.Asset, error)

// compositeProcessor handles composites referenced from a property slot
// rather than instanced in the hierarchy.
type compositeProcessor struct {
	resolve resolveFunc
}

func (p *compositeProcessor) Name() string {
	return string(asset.KindComposite)
}

func (p *compositeProcessor) CanProcess(a asset.Asset) bool {
	return a.Kind == asset.KindComposite
}

func (p *compositeProcessor) Process(ctx context.Context, sess *Session, a asset.Asset) (asset.Asset, error) {
	return p.resolve(ctx, sess, a)
}
