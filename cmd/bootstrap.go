package cmd

import (
	"context"
	"fmt"

	"asset-variants/core/config"
	"asset-variants/core/database"
	"asset-variants/core/ledger"
	"asset-variants/core/logger"
	"asset-variants/core/storage"
	"asset-variants/core/store/objectstore"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles the dependencies shared by every command.
type runtime struct {
	cfg    *config.Config
	log    *zap.Logger
	client storage.Client
	store  *objectstore.Store
	db     *gorm.DB
	ledger *ledger.Repository
}

// bootstrap loads configuration and opens storage and, when enabled, the
// ledger database. With requireDB a missing or failing database is an error;
// otherwise the command continues without a ledger. migrate brings the ledger
// table up to date before use.
func bootstrap(requireDB, migrate bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	if cfg.Storage.CreateBucket {
		if err := storage.EnsureBucket(context.Background(), client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
	}

	rt := &runtime{
		cfg:    cfg,
		log:    logg,
		client: client,
		store:  objectstore.New(client, cfg.Storage.Bucket, logg, cfg.Variant.BuiltinPaths...),
	}

	if !cfg.Database.Enabled {
		if requireDB {
			return nil, fmt.Errorf("ledger database is disabled; set DATABASE_ENABLED=true")
		}
		return rt, nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		if requireDB {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
		return rt, nil
	}

	repo := ledger.NewRepository(db)
	if migrate {
		if err := repo.Migrate(); err != nil {
			return nil, err
		}
	}
	rt.db = db
	rt.ledger = repo
	logg.Info("Connected to ledger database", zap.String("database", cfg.Database.Name))
	return rt, nil
}
