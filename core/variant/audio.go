package variant

import (
	"context"
	"fmt"

	"asset-variants/core/asset"
)

const sampleRateOverride = "override"

// audioProcessor duplicates audio clips and reimports them at a forced sample rate.
type audioProcessor struct {
	base
}

func (p *audioProcessor) Name() string {
	return string(asset.KindAudio)
}

func (p *audioProcessor) CanProcess(a asset.Asset) bool {
	return a.Kind == asset.KindAudio
}

func (p *audioProcessor) Process(ctx context.Context, sess *Session, a asset.Asset) (asset.Asset, error) {
	return p.process(ctx, sess, a, p.produce)
}

func (p *audioProcessor) produce(ctx context.Context, _ *Session, src asset.Asset, dst string) error {
	if err := p.store.Copy(ctx, src.Path, dst); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src.Path, err)
	}

	settings, err := p.store.ImportSettings(ctx, dst)
	if err != nil {
		return fmt.Errorf("failed to read import settings of %s: %w", dst, err)
	}
	settings = settings.Clone()
	settings.SampleRateSetting = sampleRateOverride
	settings.SampleRate = p.cfg.AudioSampleRate
	settings.AudioQuality = p.cfg.AudioQuality
	settings.Codec = p.cfg.AudioCodec

	if err := p.store.SetImportSettings(ctx, dst, settings); err != nil {
		return fmt.Errorf("failed to reimport %s: %w", dst, err)
	}
	return nil
}
