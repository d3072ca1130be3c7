package variant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-variants/core/asset"

	"go.uber.org/zap"
)

// ProcessScene duplicates the scene next to itself and points every
// composite instance in the copy at a variant of its source. Each distinct
// source is processed by its own ProcessHierarchy call. References held by
// the scene outside of instances are then substituted in one scene session.
func (e *Engine) ProcessScene(ctx context.Context, scenePath string) (*Report, error) {
	started := time.Now()

	src, err := e.store.Stat(ctx, scenePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", scenePath, err)
	}
	if src.Kind != asset.KindScene {
		return nil, fmt.Errorf("%s is a %s asset: %w", scenePath, src.Kind, asset.ErrWrongKind)
	}

	dst := SceneTargetPath(e.cfg.NamePrefix, scenePath)
	if err := e.base.clearTarget(ctx, dst); err != nil {
		return nil, err
	}
	if err := e.store.Copy(ctx, scenePath, dst); err != nil {
		return nil, fmt.Errorf("failed to copy %s: %w", scenePath, err)
	}

	sess := NewSession()
	var nested []*Report
	err = e.withDocument(ctx, dst, func(doc *asset.Document) error {
		variants := make(map[string]string)
		for _, n := range instanceNodes(doc.Root) {
			v, done := variants[n.Source]
			if !done {
				report, err := e.ProcessHierarchy(ctx, n.Source)
				switch {
				case errors.Is(err, asset.ErrNotFound), errors.Is(err, asset.ErrWrongKind):
					e.logger.Warn("Skipping scene instance", zap.String("source", n.Source), zap.Error(err))
				case err != nil:
					return err
				default:
					v = report.Variant
					nested = append(nested, report)
					for _, m := range report.Mappings {
						sess.seed(m)
					}
				}
				variants[n.Source] = v
			}
			if v == "" {
				continue
			}

			fresh, err := e.store.Instantiate(ctx, v)
			if err != nil {
				return fmt.Errorf("failed to instantiate %s: %w", v, err)
			}
			replaceInstance(n, fresh)
		}

		if _, err := Walk(ctx, doc.Root, e.visitor(sess)); err != nil {
			return err
		}
		return e.store.Save(ctx, doc)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite scene %s: %w", scenePath, err)
	}

	if err := e.store.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit store: %w", err)
	}

	report := newReport(ModeScene, scenePath, sess, started)
	report.Variant = dst
	report.Nested = nested

	e.logger.Info("Scene processed",
		zap.String("scene", scenePath),
		zap.String("variant", dst),
		zap.Int("composites", len(nested)),
	)
	return report, nil
}
