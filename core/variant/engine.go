package variant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-variants/core/asset"

	"go.uber.org/zap"
)

// Engine produces low fidelity variants of composites and everything they reference.
//
// An Engine runs one top-level call at a time. Concurrent calls on the same
// store, even for different roots, are not supported.
type Engine struct {
	store    asset.Store
	cfg      Config
	logger   *zap.Logger
	base     base
	registry *Registry
}

// New creates an engine over store using cfg.
func New(store asset.Store, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BuiltinPaths == nil {
		cfg.BuiltinPaths = asset.DefaultBuiltinPaths
	}

	e := &Engine{
		store:  store,
		cfg:    cfg,
		logger: logger,
		base:   base{store: store, cfg: cfg, logger: logger},
	}

	e.registry = NewRegistry()
	e.registry.Register(asset.KindSprite, &imageProcessor{base: e.base, kind: asset.KindSprite})
	e.registry.Register(asset.KindTexture, &imageProcessor{base: e.base, kind: asset.KindTexture})
	e.registry.Register(asset.KindAudio, &audioProcessor{base: e.base})
	e.registry.Register(asset.KindData, &dataProcessor{base: e.base, visitor: e.visitor})
	e.registry.Register(asset.KindComposite, &compositeProcessor{resolve: e.referencedComposite})
	return e
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Registry returns the processor table of the engine.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// ProcessAsset returns the variant of a within sess.
func (e *Engine) ProcessAsset(ctx context.Context, sess *Session, a asset.Asset) (asset.Asset, error) {
	return e.registry.ProcessAsset(ctx, sess, a)
}

// ProcessHierarchy rewrites the composite at root and every composite nested
// in it, leaves first, then commits the store.
func (e *Engine) ProcessHierarchy(ctx context.Context, root string) (*Report, error) {
	started := time.Now()
	sess := NewSession()

	rootAsset, err := e.store.Stat(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	if rootAsset.Kind != asset.KindComposite {
		return nil, fmt.Errorf("%s is a %s asset: %w", root, rootAsset.Kind, asset.ErrWrongKind)
	}

	nested, err := e.discover(ctx, rootAsset)
	if err != nil {
		return nil, err
	}
	e.logger.Info("Processing hierarchy",
		zap.String("root", root),
		zap.Int("nested", len(nested)),
		zap.String("session", sess.ID()),
	)

	// Nested composites referring back to the root get its variant path.
	if !e.base.isBuiltin(rootAsset) {
		sess.begin(root, e.base.target(root))
	}
	for _, n := range nested {
		if _, err := e.rewriteComposite(ctx, sess, n, false); err != nil {
			return nil, err
		}
	}
	sess.end(root)

	variant, err := e.rewriteComposite(ctx, sess, rootAsset, true)
	if err != nil {
		return nil, err
	}

	if err := e.store.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit store: %w", err)
	}

	report := newReport(ModePrefab, root, sess, started)
	report.Variant = variant.Path

	e.logger.Info("Hierarchy processed",
		zap.String("root", root),
		zap.String("variant", variant.Path),
		zap.Int("mappings", len(report.Mappings)),
		zap.Duration("duration", report.Duration()),
	)
	return report, nil
}

// discover returns the distinct composites nested below root, every composite
// ordered before the composites that embed it. Missing, builtin and
// non-composite sources are left out. Cycles are cut at the first revisit.
func (e *Engine) discover(ctx context.Context, root asset.Asset) ([]asset.Asset, error) {
	type frame struct {
		asset asset.Asset
		deps  []string
		next  int
	}

	rootDeps, err := e.instanceSources(ctx, root.Path)
	if err != nil {
		return nil, err
	}

	var order []asset.Asset
	visited := map[string]struct{}{root.Path: {}}
	stack := []*frame{{asset: root, deps: rootDeps}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.deps) {
			stack = stack[:len(stack)-1]
			if top.asset.Path != root.Path {
				order = append(order, top.asset)
			}
			continue
		}

		dep := top.deps[top.next]
		top.next++
		if _, seen := visited[dep]; seen {
			continue
		}
		visited[dep] = struct{}{}

		a, err := e.store.Stat(ctx, dep)
		if errors.Is(err, asset.ErrNotFound) {
			e.logger.Warn("Nested composite not found", zap.String("source", dep), zap.String("parent", top.asset.Path))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", dep, err)
		}
		if a.Kind != asset.KindComposite || e.base.isBuiltin(a) {
			continue
		}

		deps, err := e.instanceSources(ctx, a.Path)
		if err != nil {
			return nil, err
		}
		stack = append(stack, &frame{asset: a, deps: deps})
	}
	return order, nil
}

func (e *Engine) instanceSources(ctx context.Context, path string) ([]string, error) {
	var sources []string
	err := e.withDocument(ctx, path, func(doc *asset.Document) error {
		sources = instanceSources(doc.Root)
		return nil
	})
	return sources, err
}

// referencedComposite returns the variant of a composite reached through a
// property slot. The composites nested in src are rewritten first, leaves
// first, so its variant embeds their variants.
func (e *Engine) referencedComposite(ctx context.Context, sess *Session, src asset.Asset) (asset.Asset, error) {
	if e.base.isBuiltin(src) {
		return src, nil
	}
	if sess.IsProcessed(src.Path) {
		if cached, ok := sess.Get(src.Path); ok {
			return cached, nil
		}
	}
	if dst, ok := sess.pending(src.Path); ok {
		return asset.Asset{Path: dst, Kind: src.Kind}, nil
	}

	nested, err := e.discover(ctx, src)
	if err != nil {
		return asset.Asset{}, err
	}
	for _, n := range nested {
		if _, err := e.rewriteComposite(ctx, sess, n, false); err != nil {
			return asset.Asset{}, err
		}
	}
	return e.rewriteComposite(ctx, sess, src, false)
}

// rewriteComposite duplicates src, substitutes every reference in the copy
// and relinks nested instances to their variants. Unless force is set, a
// composite already rewritten in sess is returned from the cache.
func (e *Engine) rewriteComposite(ctx context.Context, sess *Session, src asset.Asset, force bool) (asset.Asset, error) {
	if e.base.isBuiltin(src) {
		return src, nil
	}
	if !force && sess.IsProcessed(src.Path) {
		if cached, ok := sess.Get(src.Path); ok {
			return cached, nil
		}
	}
	if dst, ok := sess.pending(src.Path); ok {
		return asset.Asset{Path: dst, Kind: src.Kind}, nil
	}

	dst := e.base.target(src.Path)
	if err := e.base.clearTarget(ctx, dst); err != nil {
		return asset.Asset{}, err
	}
	if err := e.store.Copy(ctx, src.Path, dst); err != nil {
		return asset.Asset{}, fmt.Errorf("failed to copy %s: %w", src.Path, err)
	}

	sess.begin(src.Path, dst)
	err := e.withDocument(ctx, dst, func(doc *asset.Document) error {
		if _, err := Walk(ctx, doc.Root, e.visitor(sess)); err != nil {
			return err
		}
		if err := e.relink(ctx, sess, doc.Root); err != nil {
			return err
		}
		return e.store.Save(ctx, doc)
	})
	sess.end(src.Path)
	if err != nil {
		return asset.Asset{}, fmt.Errorf("failed to rewrite %s: %w", src.Path, err)
	}
	sess.count(asset.KindComposite)

	processed, err := e.store.Stat(ctx, dst)
	if err != nil {
		return asset.Asset{}, fmt.Errorf("failed to resolve variant %s: %w", dst, err)
	}
	sess.Put(src, processed)
	sess.MarkProcessed(src.Path)

	e.logger.Debug("Composite rewritten",
		zap.String("source", src.Path),
		zap.String("variant", processed.Path),
		zap.Bool("root", force),
	)
	return processed, nil
}

// relink replaces every instance below root whose source has a variant in
// sess by a fresh instance of that variant.
func (e *Engine) relink(ctx context.Context, sess *Session, root *asset.Node) error {
	for _, n := range instanceNodes(root) {
		variant, ok := sess.Get(n.Source)
		if !ok || variant.Kind != asset.KindComposite {
			continue
		}
		fresh, err := e.store.Instantiate(ctx, variant.Path)
		if err != nil {
			return fmt.Errorf("failed to instantiate %s: %w", variant.Path, err)
		}
		replaceInstance(n, fresh)
	}
	return nil
}

// visitor substitutes references through the registry. References to
// missing assets are left untouched.
func (e *Engine) visitor(sess *Session) Visitor {
	return func(ctx context.Context, ref string) (string, error) {
		a, err := e.store.Stat(ctx, ref)
		if errors.Is(err, asset.ErrNotFound) {
			e.logger.Debug("Skipping missing reference", zap.String("path", ref))
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
		}

		processed, err := e.registry.ProcessAsset(ctx, sess, a)
		if err != nil {
			return "", err
		}
		return processed.Path, nil
	}
}

// withDocument loads the document at path, runs fn and always releases it.
func (e *Engine) withDocument(ctx context.Context, path string, fn func(doc *asset.Document) error) error {
	doc, err := e.store.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	defer e.store.Unload(doc)
	return fn(doc)
}
