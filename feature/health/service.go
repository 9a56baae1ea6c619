package health

import (
	"context"
	"errors"
	"fmt"

	"smartwarga/core/database"
	"smartwarga/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Table names a table and the columns the service relies on.
type Table struct {
	Name    string
	Columns []string
}

// TableReport is the schema check result for one table.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
	Error          string   `json:"error,omitempty"`
}

// Report combines every check.
type Report struct {
	Neighborhood string `json:"neighborhood,omitempty"`

	Healthy  bool                   `json:"healthy"`
	Database CheckResult            `json:"database"`
	Tables   map[string]TableReport `json:"tables"`
	Storage  *CheckResult           `json:"storage,omitempty"`
}

// CheckResult is the outcome of a single reachability check.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Service runs database and storage checks.
type Service struct {
	db     *gorm.DB
	tables []Table
	client storage.Client
	bucket string
	logger *zap.Logger

	neighborhood string
}

// NewService creates a new health service. client may be nil when object
// storage is disabled.
func NewService(db *gorm.DB, tables []Table, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		tables: tables,
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// WithNeighborhood sets the RT/RW label reported alongside the checks.
func (s *Service) WithNeighborhood(label string) *Service {
	s.neighborhood = label
	return s
}

// CheckDatabase pings the underlying connection.
func (s *Service) CheckDatabase(ctx context.Context) error {
	if s.db == nil {
		return errors.New("database connection is nil")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

// CheckSchema reports the missing columns of every registered table.
// The second return value is false when any table is incomplete or could not
// be inspected.
func (s *Service) CheckSchema() (map[string]TableReport, bool) {
	reports := make(map[string]TableReport, len(s.tables))
	ok := true
	for _, t := range s.tables {
		missing, err := database.MissingColumns(s.db, t.Name, t.Columns)
		if err != nil {
			reports[t.Name] = TableReport{MissingColumns: []string{}, Status: "error", Error: err.Error()}
			ok = false
			continue
		}
		rep := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(missing) > 0 {
			rep.MissingColumns = missing
			rep.Status = "error"
			ok = false
		}
		reports[t.Name] = rep
	}
	return reports, ok
}

// StorageEnabled reports whether a storage client was configured.
func (s *Service) StorageEnabled() bool {
	return s.client != nil
}

// CheckStorage verifies that the snapshot bucket exists.
func (s *Service) CheckStorage(ctx context.Context) error {
	if s.client == nil {
		return errors.New("storage is disabled")
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

// Run executes all checks.
func (s *Service) Run(ctx context.Context) Report {
	report := Report{Neighborhood: s.neighborhood, Healthy: true, Database: CheckResult{Status: "ok"}}

	if err := s.CheckDatabase(ctx); err != nil {
		report.Healthy = false
		report.Database = CheckResult{Status: "error", Error: err.Error()}
		report.Tables = map[string]TableReport{}
	} else {
		tables, ok := s.CheckSchema()
		report.Tables = tables
		if !ok {
			report.Healthy = false
		}
	}

	if s.StorageEnabled() {
		res := CheckResult{Status: "ok"}
		if err := s.CheckStorage(ctx); err != nil {
			res = CheckResult{Status: "error", Error: err.Error()}
			report.Healthy = false
		}
		report.Storage = &res
	}
	return report
}
