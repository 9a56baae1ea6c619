package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotConfigured is returned when no active sync configuration exists.
var ErrNotConfigured = errors.New("Konfigurasi sinkronisasi tidak ditemukan")

// Repository persists sync configuration and run logs.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ActiveConfig returns the active configuration or ErrNotConfigured.
func (r *Repository) ActiveConfig(ctx context.Context) (*SyncConfig, error) {
	var cfg SyncConfig
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", DefaultConfigID, true).
		Take(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sync config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig upserts the singleton configuration. Last-sync fields of an
// existing row are kept.
func (r *Repository) SaveConfig(ctx context.Context, cfg *SyncConfig) error {
	cfg.ID = DefaultConfigID
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sheet_url", "sheet_id", "sheet_name", "service_account",
			"auto_sync", "sync_interval", "is_active", "updated_at",
		}),
	}).Create(cfg).Error
	if err != nil {
		return fmt.Errorf("failed to save sync config: %w", err)
	}

	saved, err := r.ActiveConfig(ctx)
	if err != nil {
		return err
	}
	*cfg = *saved
	return nil
}

// DeleteConfig removes the configuration. Logs are kept.
func (r *Repository) DeleteConfig(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("id = ?", DefaultConfigID).Delete(&SyncConfig{}).Error; err != nil {
		return fmt.Errorf("failed to delete sync config: %w", err)
	}
	return nil
}

// RecordRun stores the outcome of a run on the configuration row.
func (r *Repository) RecordRun(ctx context.Context, configID string, status RunStatus, count int, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&SyncConfig{}).Where("id = ?", configID).Updates(map[string]any{
		"last_sync_at":     at,
		"last_sync_status": string(status),
		"last_sync_count":  count,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}
	return nil
}

// CreateLog appends a run log.
func (r *Repository) CreateLog(ctx context.Context, log *SyncLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create sync log: %w", err)
	}
	return nil
}

// ListLogs returns the most recent logs, newest first.
func (r *Repository) ListLogs(ctx context.Context, limit int) ([]SyncLog, error) {
	var logs []SyncLog
	q := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync logs: %w", err)
	}
	return logs, nil
}
