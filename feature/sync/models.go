package sync

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultConfigID is the primary key of the singleton sync configuration.
const DefaultConfigID = "default"

// Direction of a sync run.
type Direction string

const (
	DirectionPull          Direction = "pull"
	DirectionPush          Direction = "push"
	DirectionBidirectional Direction = "bidirectional"
)

// RunStatus is the outcome of a sync run.
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunFailed  RunStatus = "failed"
	RunPartial RunStatus = "partial"
)

// SyncConfig describes the linked spreadsheet. An empty ServiceAccount means
// read-only CSV mode.
type SyncConfig struct {
	ID             string     `gorm:"column:id;primaryKey;size:32" json:"id"`
	SheetURL       string     `gorm:"column:sheet_url;type:text" json:"sheetUrl"`
	SheetID        string     `gorm:"column:sheet_id;size:128" json:"sheetId"`
	SheetName      string     `gorm:"column:sheet_name;size:128" json:"sheetName"`
	ServiceAccount string     `gorm:"column:service_account;type:text" json:"-"`
	AutoSync       bool       `gorm:"column:auto_sync" json:"autoSync"`
	SyncInterval   int        `gorm:"column:sync_interval" json:"syncInterval"`
	IsActive       bool       `gorm:"column:is_active" json:"isActive"`
	LastSyncAt     *time.Time `gorm:"column:last_sync_at" json:"lastSyncAt"`
	LastSyncStatus string     `gorm:"column:last_sync_status;size:16" json:"lastSyncStatus"`
	LastSyncCount  int        `gorm:"column:last_sync_count" json:"lastSyncCount"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the table name.
func (SyncConfig) TableName() string {
	return "sync_configs"
}

// HasWriteAccess reports whether a service-account credential is configured.
func (c *SyncConfig) HasWriteAccess() bool {
	return c.ServiceAccount != ""
}

// ConfigView is the public form of a SyncConfig. The credential itself is
// never serialized.
type ConfigView struct {
	SyncConfig
	HasWriteAccess bool `json:"hasWriteAccess"`
	// NextSyncAt is the next auto-sync run, nil when auto-sync is off.
	NextSyncAt *time.Time `json:"nextSyncAt,omitempty"`
}

// View returns the public form of the config.
func (c *SyncConfig) View() *ConfigView {
	return &ConfigView{SyncConfig: *c, HasWriteAccess: c.HasWriteAccess()}
}

// SyncLog is the audit record of one sync run. It is written once, after the
// run completes.
type SyncLog struct {
	ID             string         `gorm:"column:id;primaryKey;size:36" json:"id"`
	SyncConfigID   string         `gorm:"column:sync_config_id;size:32;index" json:"syncConfigId"`
	Direction      Direction      `gorm:"column:direction;size:16" json:"direction"`
	Status         RunStatus      `gorm:"column:status;size:16" json:"status"`
	RecordsPushed  int            `gorm:"column:records_pushed" json:"recordsPushed"`
	RecordsPulled  int            `gorm:"column:records_pulled" json:"recordsPulled"`
	RecordsUpdated int            `gorm:"column:records_updated" json:"recordsUpdated"`
	RecordsFailed  int            `gorm:"column:records_failed" json:"recordsFailed"`
	Message        string         `gorm:"column:message;type:text" json:"message"`
	Details        datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
	StartedAt      time.Time      `gorm:"column:started_at;index" json:"startedAt"`
	CompletedAt    *time.Time     `gorm:"column:completed_at" json:"completedAt"`
}

// TableName overrides the table name.
func (SyncLog) TableName() string {
	return "sync_logs"
}

// BeforeCreate assigns a UUID when none is set.
func (l *SyncLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// ConfigColumns lists the sync_configs columns, used by the health check.
func ConfigColumns() []string {
	return []string{
		"id", "sheet_url", "sheet_id", "sheet_name", "service_account", "auto_sync",
		"sync_interval", "is_active", "last_sync_at", "last_sync_status",
		"last_sync_count", "created_at", "updated_at",
	}
}

// LogColumns lists the sync_logs columns, used by the health check.
func LogColumns() []string {
	return []string{
		"id", "sync_config_id", "direction", "status", "records_pushed",
		"records_pulled", "records_updated", "records_failed", "message",
		"details", "started_at", "completed_at",
	}
}
