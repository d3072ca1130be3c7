package generator

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"asset-variants/core/asset"
	"asset-variants/core/ledger"
	"asset-variants/core/reconcile"
	"asset-variants/core/variant"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrLedgerDisabled is returned by operations that need the ledger database.
	ErrLedgerDisabled = errors.New("ledger database is not configured")
	// ErrInvalidRequest is returned for malformed generation requests.
	ErrInvalidRequest = errors.New("invalid request")
)

// Request asks for the variants of one asset path.
type Request struct {
	// Path is the prefab, scene or folder to process.
	Path string `json:"path" example:"Assets/Prefabs/Hero.prefab"`
	// Profile optionally names a quality profile.
	Profile string `json:"profile,omitempty" example:"Mobile"`
}

// Service runs the substitution engine against a store and records the
// results in the ledger.
type Service struct {
	store  asset.Store
	cfg    variant.Config
	ledger *ledger.Repository
	logger *zap.Logger
	ttl    time.Duration

	// mu serializes engine runs; the store is not safe for concurrent edits.
	mu sync.Mutex
	sf singleflight.Group
}

// NewService creates a generator service. repo may be nil when no ledger
// database is configured.
func NewService(store asset.Store, cfg variant.Config, repo *ledger.Repository, logger *zap.Logger, reconcileTTL time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		cfg:    cfg,
		ledger: repo,
		logger: logger,
		ttl:    reconcileTTL,
	}
}

// Generate runs one top-level call. Identical concurrent requests share a
// single run; different requests queue behind each other.
func (s *Service) Generate(ctx context.Context, mode variant.Mode, req Request) (*variant.Report, error) {
	req.Path = strings.TrimSuffix(strings.TrimSpace(req.Path), "/")
	if req.Path == "" {
		return nil, fmt.Errorf("%w: path is required", ErrInvalidRequest)
	}
	switch mode {
	case variant.ModePrefab, variant.ModeScene, variant.ModeFolder:
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidRequest, mode)
	}

	key := string(mode) + "|" + req.Path + "|" + req.Profile
	res, err, shared := s.sf.Do(key, func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.run(ctx, mode, req)
	})
	if shared {
		s.logger.Debug("Joined in-flight generation", zap.String("key", key))
	}
	if err != nil {
		return nil, err
	}
	return res.(*variant.Report), nil
}

func (s *Service) run(ctx context.Context, mode variant.Mode, req Request) (*variant.Report, error) {
	cfg, err := s.cfg.ResolveProfile(req.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	l := s.logger.With(zap.String("mode", string(mode)), zap.String("path", req.Path), zap.String("prefix", cfg.NamePrefix))
	engine := variant.New(s.store, cfg, l)

	var report *variant.Report
	switch mode {
	case variant.ModePrefab:
		report, err = engine.ProcessHierarchy(ctx, req.Path)
	case variant.ModeScene:
		report, err = engine.ProcessScene(ctx, req.Path)
	case variant.ModeFolder:
		report, err = engine.ProcessFolder(ctx, req.Path, func(done, total int, p string) {
			if p != "" {
				l.Info("Processing prefab", zap.Int("done", done), zap.Int("total", total), zap.String("prefab", p))
			}
		})
	}
	if err != nil {
		return nil, err
	}

	l.Info("Generation completed",
		zap.String("run_id", report.RunID),
		zap.Int("mappings", len(report.AllMappings())),
		zap.Duration("duration", report.Duration()))

	if err := s.record(ctx, report); err != nil {
		return report, err
	}
	reconcile.InvalidateCache(s.reconcileSpec(cfg))
	return report, nil
}

// record stores the mappings of report in the ledger, with source digests
// when the store can compute them.
func (s *Service) record(ctx context.Context, report *variant.Report) error {
	if s.ledger == nil {
		return nil
	}

	digests := make(map[string]string)
	if d, ok := s.store.(asset.Digester); ok {
		for _, m := range report.AllMappings() {
			if _, done := digests[m.Source]; done {
				continue
			}
			sum, err := d.Digest(ctx, m.Source)
			if err != nil {
				s.logger.Warn("Failed to digest source", zap.String("source", m.Source), zap.Error(err))
				continue
			}
			digests[m.Source] = sum
		}
	}

	if err := s.ledger.Save(ctx, ledger.FromReport(report, digests)); err != nil {
		return fmt.Errorf("failed to record run %s: %w", report.RunID, err)
	}
	return nil
}

// Run returns the ledger records of a run.
func (s *Service) Run(ctx context.Context, runID string) ([]ledger.Record, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	return s.ledger.ListByRun(ctx, runID)
}

// ReconcileOptions selects what Reconcile does with its plan.
type ReconcileOptions struct {
	Profile string
	Purge   bool
	Apply   bool
}

// Reconcile compares the ledger with the variant tree of the configured (or
// profile) prefix. Actions only run when Purge and Apply are both set.
func (s *Service) Reconcile(ctx context.Context, opts ReconcileOptions) (*reconcile.Plan, int, error) {
	if s.ledger == nil {
		return nil, 0, ErrLedgerDisabled
	}
	cfg, err := s.cfg.ResolveProfile(opts.Profile)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	spec := s.reconcileSpec(cfg)
	ropts := reconcile.Options{DoPurge: opts.Purge, Confirmed: opts.Apply, DryRun: !opts.Apply}
	if !opts.Apply {
		plan, err := reconcile.ReconcileWithPlan(ctx, spec, ropts)
		return plan, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return reconcile.ReconcileAndApply(ctx, spec, ropts)
}

// ReconcileOne reports the state of a single variant path.
func (s *Service) ReconcileOne(ctx context.Context, profile, key string) (*reconcile.Result, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	cfg, err := s.cfg.ResolveProfile(profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return reconcile.ReconcileOne(ctx, s.reconcileSpec(cfg), key)
}

func (s *Service) reconcileSpec(cfg variant.Config) *reconcile.Spec {
	return &reconcile.Spec{
		Adapter:       reconcile.NewVariantAdapter(s.ledger, s.store),
		CacheTTL:      s.ttl,
		StoragePrefix: path.Join(cfg.RootDir, cfg.NamePrefix),
	}
}
