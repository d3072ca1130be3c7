package variant

import (
	"context"
	"fmt"

	"asset-variants/core/asset"
)

// dataProcessor duplicates standalone data assets and substitutes the
// references they hold.
type dataProcessor struct {
	base
	visitor func(sess *Session) Visitor
}

func (p *dataProcessor) Name() string {
	return string(asset.KindData)
}

func (p *dataProcessor) CanProcess(a asset.Asset) bool {
	return a.Kind == asset.KindData && p.cfg.ProcessData
}

func (p *dataProcessor) Process(ctx context.Context, sess *Session, a asset.Asset) (asset.Asset, error) {
	return p.process(ctx, sess, a, p.produce)
}

func (p *dataProcessor) produce(ctx context.Context, sess *Session, src asset.Asset, dst string) error {
	if err := p.store.Copy(ctx, src.Path, dst); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src.Path, err)
	}

	doc, err := p.store.Load(ctx, dst)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", dst, err)
	}
	defer p.store.Unload(doc)

	if _, err := Walk(ctx, doc.Root, p.visitor(sess)); err != nil {
		return fmt.Errorf("failed to substitute references of %s: %w", dst, err)
	}
	if err := p.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to save %s: %w", dst, err)
	}
	return nil
}
