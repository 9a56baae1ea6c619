package cmd

import (
	"context"
	"fmt"

	"smartwarga/core/config"
	"smartwarga/core/database"
	"smartwarga/core/logger"
	"smartwarga/core/storage"
	"smartwarga/feature/health"
	"smartwarga/feature/resident"
	"smartwarga/feature/sheets"
	sheetSync "smartwarga/feature/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application holds the wired services shared by the server and the CLI.
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	storage   storage.Client
	residents *resident.GormStore
	pusher    *sheetSync.AutoPusher
	sync      *sheetSync.Service
}

// models lists every table the service owns.
func models() []any {
	return []any{&resident.Resident{}, &sheetSync.SyncConfig{}, &sheetSync.SyncLog{}}
}

// healthTables lists the columns checked by GET /health.
func healthTables() []health.Table {
	return []health.Table{
		{Name: resident.Resident{}.TableName(), Columns: resident.Columns()},
		{Name: sheetSync.SyncConfig{}.TableName(), Columns: sheetSync.ConfigColumns()},
		{Name: sheetSync.SyncLog{}.TableName(), Columns: sheetSync.LogColumns()},
	}
}

// loadConfig reads the configuration and builds the logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// bootstrap connects to the database and optional storage, migrates the
// schema and builds the sync services.
func bootstrap(ctx context.Context, cfg *config.Config, l *zap.Logger) (*application, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(db, models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	var (
		client   storage.Client
		archiver *sheetSync.Archiver
	)
	if cfg.Storage.Enabled {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			// Snapshots are best effort; the registry works without them.
			l.Warn("Snapshot bucket unavailable", zap.Error(err))
		}
		archiver = sheetSync.NewArchiver(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
	}

	repo := sheetSync.NewRepository(db)
	residents := resident.NewStore(db)
	opener := sheets.NewAPIOpener()
	fetcher := sheets.NewHTTPFetcher(cfg.Sheets, l)

	return &application{
		cfg:       cfg,
		logger:    l,
		db:        db,
		storage:   client,
		residents: residents,
		pusher:    sheetSync.NewAutoPusher(repo, opener, cfg.Sheets, l),
		sync:      sheetSync.NewService(repo, residents, fetcher, opener, archiver, cfg.Sheets, l),
	}, nil
}

func (a *application) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
