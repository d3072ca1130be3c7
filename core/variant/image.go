package variant

import (
	"context"
	"fmt"

	"asset-variants/core/asset"
)

const (
	spriteTextureType = "sprite"
	spriteModeSingle  = "single"
)

// imageProcessor duplicates sprites and textures and reimports them with a
// reduced maximum size and lossy compression.
type imageProcessor struct {
	base
	kind asset.Kind
}

func (p *imageProcessor) Name() string {
	return string(p.kind)
}

func (p *imageProcessor) CanProcess(a asset.Asset) bool {
	return a.Kind == p.kind
}

func (p *imageProcessor) Process(ctx context.Context, sess *Session, a asset.Asset) (asset.Asset, error) {
	return p.process(ctx, sess, a, p.produce)
}

func (p *imageProcessor) produce(ctx context.Context, _ *Session, src asset.Asset, dst string) error {
	if err := p.store.Copy(ctx, src.Path, dst); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src.Path, err)
	}

	current, err := p.store.ImportSettings(ctx, dst)
	if err != nil {
		return fmt.Errorf("failed to read import settings of %s: %w", dst, err)
	}
	settings := p.reduce(current, src)

	if err := p.store.SetImportSettings(ctx, dst, settings); err != nil {
		return fmt.Errorf("failed to reimport %s: %w", dst, err)
	}
	return nil
}

// reduce applies the reduced size and compression to the default settings
// and to every configured platform that carries its own override.
func (p *imageProcessor) reduce(current asset.ImportSettings, src asset.Asset) asset.ImportSettings {
	settings := current.Clone()
	maxSize := ScaledMaxSize(src.MaxDimension(), p.cfg.ImageScaleFactor)

	if p.kind == asset.KindSprite {
		settings.TextureType = spriteTextureType
		settings.SpriteMode = spriteModeSingle
	}
	if maxSize > 0 {
		settings.MaxSize = maxSize
	}
	settings.Compression = asset.CompressionCompressed
	settings.Quality = p.cfg.ImageQuality

	for _, platform := range p.cfg.Platforms {
		ps, ok := settings.Platforms[platform]
		if !ok || !ps.Overridden {
			continue
		}
		if maxSize > 0 {
			ps.MaxSize = maxSize
		}
		ps.Compression = asset.CompressionCompressed
		settings.Platforms[platform] = ps
	}
	return settings
}
