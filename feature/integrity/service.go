package integrity

import (
	"context"
	"path"

	"asset-variants/core/storage"
	"asset-variants/core/variant"
	"asset-variants/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	cfg    variant.Config
}

// NewService creates a new integrity service. db may be nil.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg variant.Config) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		cfg:    cfg,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, checks.RequiredFolders(s.cfg))
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSidecars returns the variants stored without a sidecar.
func (s *Service) CheckSidecars(ctx context.Context) ([]string, error) {
	return checks.CheckSidecars(ctx, s.client, s.bucket, path.Join(s.cfg.RootDir, s.cfg.NamePrefix))
}

// CheckSchema verifies the ledger schema.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}
