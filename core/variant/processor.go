package variant

import (
	"context"
	"fmt"

	"asset-variants/core/asset"

	"go.uber.org/zap"
)

// Processor produces variants for one kind of asset.
type Processor interface {
	// Name identifies the processor in logs.
	Name() string
	// CanProcess reports whether the processor applies to a. It has no side effects.
	CanProcess(a asset.Asset) bool
	// Process returns the variant of a, producing it on first use within sess.
	Process(ctx context.Context, sess *Session, a asset.Asset) (asset.Asset, error)
}

// produceFunc derives the variant of src at dst. The destination is already clear.
type produceFunc func(ctx context.Context, sess *Session, src asset.Asset, dst string) error

// base carries the procedure shared by every file-backed processor.
type base struct {
	store  asset.Store
	cfg    Config
	logger *zap.Logger
}

func (b *base) isBuiltin(a asset.Asset) bool {
	return a.Builtin || asset.IsBuiltinPath(a.Path, b.cfg.BuiltinPaths)
}

func (b *base) target(src string) string {
	return TargetPath(b.cfg.RootDir, b.cfg.NamePrefix, src)
}

// clearTarget removes a stale artifact left at dst by an earlier run.
func (b *base) clearTarget(ctx context.Context, dst string) error {
	exists, err := b.store.Exists(ctx, dst)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dst, err)
	}
	if !exists {
		return nil
	}
	if err := b.store.Delete(ctx, dst); err != nil {
		return fmt.Errorf("failed to delete stale variant %s: %w", dst, err)
	}
	return nil
}

// process runs the shared procedure: builtin pass-through, cache lookup,
// cycle guard, stale cleanup, production and cache registration.
func (b *base) process(ctx context.Context, sess *Session, src asset.Asset, produce produceFunc) (asset.Asset, error) {
	if b.isBuiltin(src) {
		return src, nil
	}
	if cached, ok := sess.Get(src.Path); ok {
		return cached, nil
	}
	// A reference cycle back to an asset under production resolves to its destination.
	if dst, ok := sess.pending(src.Path); ok {
		return asset.Asset{Path: dst, Kind: src.Kind}, nil
	}

	dst := b.target(src.Path)
	if err := b.clearTarget(ctx, dst); err != nil {
		return asset.Asset{}, err
	}

	sess.begin(src.Path, dst)
	err := produce(ctx, sess, src, dst)
	sess.end(src.Path)
	if err != nil {
		return asset.Asset{}, err
	}
	sess.count(src.Kind)

	processed, err := b.store.Stat(ctx, dst)
	if err != nil {
		return asset.Asset{}, fmt.Errorf("failed to resolve variant %s: %w", dst, err)
	}
	if processed.Path != src.Path {
		sess.Put(src, processed)
	}

	b.logger.Debug("Variant produced",
		zap.String("kind", string(src.Kind)),
		zap.String("source", src.Path),
		zap.String("variant", processed.Path),
	)
	return processed, nil
}
