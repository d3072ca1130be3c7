package variant

import (
	"context"
	"fmt"
	"sort"
	"time"

	"asset-variants/core/asset"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgressFunc is notified before each composite of a folder batch is
// processed and once more with done == total when the batch completes.
type ProgressFunc func(done, total int, path string)

// ProcessFolder runs ProcessHierarchy on every composite stored under folder,
// skipping variants produced by earlier runs. The first failure aborts the batch.
func (e *Engine) ProcessFolder(ctx context.Context, folder string, progress ProgressFunc) (*Report, error) {
	started := time.Now()

	assets, err := e.store.List(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", folder, err)
	}

	var composites []string
	for _, a := range assets {
		if a.Kind != asset.KindComposite || IsVariantPath(e.cfg.RootDir, e.cfg.NamePrefix, a.Path) {
			continue
		}
		composites = append(composites, a.Path)
	}
	sort.Strings(composites)

	if len(composites) == 0 {
		e.logger.Warn("No composites found", zap.String("folder", folder))
	}

	report := &Report{
		RunID:     uuid.NewString(),
		Mode:      ModeFolder,
		Root:      folder,
		Counts:    make(map[asset.Kind]int),
		StartedAt: started,
	}

	for i, path := range composites {
		if progress != nil {
			progress(i, len(composites), path)
		}
		nested, err := e.ProcessHierarchy(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to process %s: %w", path, err)
		}
		report.Nested = append(report.Nested, nested)
	}
	if progress != nil {
		progress(len(composites), len(composites), "")
	}

	report.FinishedAt = time.Now()
	e.logger.Info("Folder processed",
		zap.String("folder", folder),
		zap.Int("composites", len(composites)),
		zap.Duration("duration", report.Duration()),
	)
	return report, nil
}
