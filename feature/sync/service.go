package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	gosync "sync"
	"time"

	"smartwarga/core/reconcile"
	"smartwarga/core/utils"
	"smartwarga/feature/resident"
	"smartwarga/feature/sheets"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ErrReadOnly is returned when a write is requested without a credential.
var ErrReadOnly = errors.New("Sheet terhubung dalam mode read-only, konfigurasi Service Account JSON untuk mengirim data ke Google Sheet")

var validate = validator.New()

// AutoScheduler keeps the periodic sync in line with the configuration.
type AutoScheduler interface {
	Schedule(intervalMinutes int) error
	Unschedule()
	Next() time.Time
}

// Result is the outcome of a pull, push or bidirectional run.
type Result struct {
	Success        bool               `json:"success"`
	Direction      Direction          `json:"direction,omitempty"`
	RecordsPushed  int                `json:"recordsPushed"`
	RecordsPulled  int                `json:"recordsPulled"`
	RecordsUpdated int                `json:"recordsUpdated"`
	RecordsFailed  int                `json:"recordsFailed"`
	Message        string             `json:"message"`
	Details        []string           `json:"details,omitempty"`
	DryRun         bool               `json:"dryRun,omitempty"`
	Actions        []reconcile.Action `json:"actions,omitempty"`
}

// TestResult is the outcome of a connection test.
type TestResult struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	RowCount *int     `json:"rowCount,omitempty"`
	Headers  []string `json:"headers,omitempty"`
	Title    string   `json:"title,omitempty"`
}

// ConnectRequest holds the settings of a new spreadsheet link.
type ConnectRequest struct {
	SheetURL       string `json:"sheetUrl" validate:"required"`
	SheetName      string `json:"sheetName" validate:"max=128"`
	ServiceAccount string `json:"serviceAccount"`
	AutoSync       bool   `json:"autoSync"`
	SyncInterval   int    `json:"syncInterval" validate:"gte=0,lte=10080"`
}

// ConnectResult is the outcome of connect.
type ConnectResult struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	WriteAccess bool        `json:"writeAccess"`
	Config      *ConfigView `json:"config,omitempty"`
}

// PullOptions controls a pull.
type PullOptions struct {
	DryRun bool
}

// Service orchestrates spreadsheet syncs. Every public operation converts
// failures into a result with a readable message.
type Service struct {
	repo      *Repository
	residents resident.Store
	fetcher   sheets.Fetcher
	opener    sheets.Opener
	archiver  *Archiver
	scheduler AutoScheduler
	cfg       sheets.Config
	logger    *zap.Logger
	now       func() time.Time

	// runMu serializes pull and push runs.
	runMu gosync.Mutex
}

// NewService creates a sync orchestrator. archiver may be nil.
func NewService(repo *Repository, residents resident.Store, fetcher sheets.Fetcher, opener sheets.Opener, archiver *Archiver, cfg sheets.Config, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		residents: residents,
		fetcher:   fetcher,
		opener:    opener,
		archiver:  archiver,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// SetScheduler attaches the auto-sync scheduler.
func (s *Service) SetScheduler(scheduler AutoScheduler) {
	s.scheduler = scheduler
}

func (s *Service) upstream(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeout())
}

// Test checks a sheet. With a credential it reads the spreadsheet title;
// without one it downloads the CSV and counts the rows.
func (s *Service) Test(ctx context.Context, sheetURL, credential string) TestResult {
	sheetID, ok := sheets.ExtractSheetID(sheetURL)
	if !ok {
		return TestResult{Message: sheets.ErrInvalidURL.Error()}
	}

	ctx, cancel := s.upstream(ctx)
	defer cancel()

	if credential != "" {
		title, err := sheets.TestConnection(ctx, s.opener, []byte(credential), sheetID)
		if err != nil {
			return TestResult{Message: "Gagal terhubung: " + sheets.ErrorMessage(err)}
		}
		return TestResult{Success: true, Title: title, Message: fmt.Sprintf("Koneksi berhasil! Sheet: %q", title)}
	}

	text, err := s.fetcher.FetchCSV(ctx, sheetID)
	if err != nil {
		if errors.Is(err, sheets.ErrSheetNotAccessible) {
			return TestResult{Message: sheets.ErrSheetNotAccessible.Error()}
		}
		return TestResult{Message: "Gagal terhubung: " + err.Error()}
	}

	header, records := ReadCSV(text)
	rows := MapRows(header, records)
	count := len(rows)
	result := TestResult{Success: true, RowCount: &count, Headers: NormalizedHeaders(header)}

	switch {
	case len(header) == 0:
		result.Message = "Koneksi berhasil, tapi tidak ada data yang ditemukan di sheet."
	case !HasField(header, FieldNIK):
		result.Message = "Koneksi berhasil, tapi kolom NIK tidak ditemukan. Pastikan sheet memiliki kolom NIK."
	default:
		result.Message = fmt.Sprintf("Koneksi berhasil! Ditemukan %d baris data (mode read-only).", count)
	}
	return result
}

// Connect validates and stores the spreadsheet link. A supplied credential
// is checked against the sheet before anything is saved.
func (s *Service) Connect(ctx context.Context, req ConnectRequest) ConnectResult {
	req.SheetURL = strings.TrimSpace(req.SheetURL)
	req.ServiceAccount = strings.TrimSpace(req.ServiceAccount)
	if err := validate.Struct(req); err != nil {
		return ConnectResult{Message: "Permintaan tidak valid: " + err.Error()}
	}

	sheetID, ok := sheets.ExtractSheetID(req.SheetURL)
	if !ok {
		return ConnectResult{Message: sheets.ErrInvalidURL.Error()}
	}

	if req.ServiceAccount != "" {
		if _, err := sheets.ParseCredential([]byte(req.ServiceAccount)); err != nil {
			return ConnectResult{Message: "Service Account JSON tidak valid: " + err.Error()}
		}
		tctx, cancel := s.upstream(ctx)
		_, err := sheets.TestConnection(tctx, s.opener, []byte(req.ServiceAccount), sheetID)
		cancel()
		if err != nil {
			return ConnectResult{Message: "Gagal terhubung: " + sheets.ErrorMessage(err)}
		}
	}

	cfg := &SyncConfig{
		SheetURL:       req.SheetURL,
		SheetID:        sheetID,
		SheetName:      strings.TrimSpace(req.SheetName),
		ServiceAccount: req.ServiceAccount,
		AutoSync:       req.AutoSync,
		SyncInterval:   req.SyncInterval,
		IsActive:       true,
	}
	if cfg.SheetName == "" {
		cfg.SheetName = s.cfg.DefaultSheetName
	}
	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = s.cfg.DefaultIntervalMinutes
	}

	if err := s.repo.SaveConfig(ctx, cfg); err != nil {
		s.logger.Error("Failed to save sync config", zap.Error(err))
		return ConnectResult{Message: "Gagal menyimpan konfigurasi: " + err.Error()}
	}
	s.applySchedule(cfg)

	s.logger.Info("Sheet connected",
		zap.String("sheet_id", cfg.SheetID),
		zap.Bool("write_access", cfg.HasWriteAccess()),
		zap.Bool("auto_sync", cfg.AutoSync))

	result := ConnectResult{Success: true, WriteAccess: cfg.HasWriteAccess(), Config: cfg.View()}
	if result.WriteAccess {
		result.Message = "Koneksi berhasil! Anda dapat membaca DAN menulis ke Google Sheet."
	} else {
		result.Message = "Koneksi berhasil (read-only). Untuk menulis ke sheet, konfigurasi Service Account."
	}
	return result
}

// RestoreSchedule registers the auto-sync job for a stored configuration.
// It is called once at startup.
func (s *Service) RestoreSchedule(ctx context.Context) error {
	cfg, err := s.repo.ActiveConfig(ctx)
	if errors.Is(err, ErrNotConfigured) {
		return nil
	}
	if err != nil {
		return err
	}
	s.applySchedule(cfg)
	return nil
}

func (s *Service) applySchedule(cfg *SyncConfig) {
	if s.scheduler == nil {
		return
	}
	if !cfg.AutoSync {
		s.scheduler.Unschedule()
		return
	}
	if err := s.scheduler.Schedule(cfg.SyncInterval); err != nil {
		s.logger.Warn("Failed to schedule auto-sync", zap.Error(err))
	}
}

// Disconnect removes the configuration and stops auto-sync. Logs are kept.
func (s *Service) Disconnect(ctx context.Context) Result {
	if err := s.repo.DeleteConfig(ctx); err != nil {
		return Result{Message: "Gagal memutuskan koneksi: " + err.Error()}
	}
	if s.scheduler != nil {
		s.scheduler.Unschedule()
	}
	s.logger.Info("Sheet disconnected")
	return Result{Success: true, Message: "Koneksi Google Sheet berhasil diputuskan"}
}

// GetConfig returns the active configuration, or nil when none exists.
func (s *Service) GetConfig(ctx context.Context) (*ConfigView, error) {
	cfg, err := s.repo.ActiveConfig(ctx)
	if errors.Is(err, ErrNotConfigured) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	view := cfg.View()
	if cfg.AutoSync && s.scheduler != nil {
		if next := s.scheduler.Next(); !next.IsZero() {
			view.NextSyncAt = &next
		}
	}
	return view, nil
}

// Logs returns the most recent run logs.
func (s *Service) Logs(ctx context.Context) ([]SyncLog, error) {
	return s.repo.ListLogs(ctx, s.cfg.LogLimit)
}

// Pull imports the sheet into the resident store.
func (s *Service) Pull(ctx context.Context, opts PullOptions) Result {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	cfg, err := s.repo.ActiveConfig(ctx)
	if err != nil {
		return Result{Direction: DirectionPull, Message: err.Error()}
	}

	started := s.now()
	res, err := s.pull(ctx, cfg, opts)
	if err != nil {
		res = Result{Direction: DirectionPull, Message: "Gagal mengambil data dari Google Sheet: " + sheets.ErrorMessage(err)}
	}
	if !opts.DryRun {
		s.record(ctx, cfg, started, res)
	}
	return res
}

// Push overwrites the sheet with every resident. This is destructive: rows
// edited only in the sheet since the last pull are lost.
func (s *Service) Push(ctx context.Context) Result {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	cfg, err := s.repo.ActiveConfig(ctx)
	if err != nil {
		return Result{Direction: DirectionPush, Message: err.Error()}
	}
	if !cfg.HasWriteAccess() {
		return Result{Direction: DirectionPush, Message: ErrReadOnly.Error()}
	}

	started := s.now()
	res, err := s.push(ctx, cfg)
	if err != nil {
		res = Result{Direction: DirectionPush, Message: "Gagal mengirim data ke Google Sheet: " + sheets.ErrorMessage(err)}
	}
	if res.RecordsPushed > 0 || !res.Success {
		s.record(ctx, cfg, started, res)
	}
	return res
}

// SyncBoth pulls and then, when a credential is configured, pushes. It is the
// job run by the auto-sync scheduler.
func (s *Service) SyncBoth(ctx context.Context) Result {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	cfg, err := s.repo.ActiveConfig(ctx)
	if err != nil {
		return Result{Direction: DirectionBidirectional, Message: err.Error()}
	}

	started := s.now()
	res, err := s.pull(ctx, cfg, PullOptions{})
	if err != nil {
		res = Result{Message: "Gagal mengambil data dari Google Sheet: " + sheets.ErrorMessage(err)}
	}
	res.Direction = DirectionBidirectional

	if res.Success && cfg.HasWriteAccess() {
		pushed, err := s.push(ctx, cfg)
		if err != nil {
			res.Success = false
			res.Message += "; Gagal mengirim data ke Google Sheet: " + sheets.ErrorMessage(err)
		} else {
			res.RecordsPushed = pushed.RecordsPushed
			res.Message += "; " + pushed.Message
		}
	}

	s.record(ctx, cfg, started, res)
	return res
}

func (s *Service) pull(ctx context.Context, cfg *SyncConfig, opts PullOptions) (Result, error) {
	rows, err := s.readRows(ctx, cfg)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{Success: true, Direction: DirectionPull, DryRun: opts.DryRun, Message: "Tidak ada data di sheet"}, nil
	}

	items := make([]reconcile.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}

	report, err := reconcile.Run(ctx, newResidentAdapter(s.residents, s.cfg.Location()), items, reconcile.Options{DryRun: opts.DryRun})
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Success:        true,
		Direction:      DirectionPull,
		RecordsPulled:  report.Summary.Inserted,
		RecordsUpdated: report.Summary.Updated,
		RecordsFailed:  report.Summary.Failed,
		Details:        report.Errors(),
		DryRun:         opts.DryRun,
	}
	if opts.DryRun {
		res.Actions = report.Actions
		res.Message = fmt.Sprintf("Simulasi: %d data baru, %d diupdate, %d dilewati, %d gagal",
			report.Summary.Inserted, report.Summary.Updated, report.Summary.Skipped, report.Summary.Failed)
		return res, nil
	}

	res.Message = fmt.Sprintf("Berhasil mengambil %d data baru dan mengupdate %d data dari Google Sheet",
		res.RecordsPulled, res.RecordsUpdated)
	if res.RecordsFailed > 0 {
		res.Message += fmt.Sprintf(" (%d baris gagal)", res.RecordsFailed)
	}
	s.logger.Info("Pull completed",
		zap.Int("pulled", res.RecordsPulled),
		zap.Int("updated", res.RecordsUpdated),
		zap.Int("skipped", report.Summary.Skipped),
		zap.Int("failed", res.RecordsFailed))
	return res, nil
}

// readRows reads the sheet through the API when a credential exists and
// through the CSV endpoints otherwise.
func (s *Service) readRows(ctx context.Context, cfg *SyncConfig) ([]Row, error) {
	ctx, cancel := s.upstream(ctx)
	defer cancel()

	if cfg.HasWriteAccess() {
		sheet, err := s.opener.Open(ctx, []byte(cfg.ServiceAccount), cfg.SheetID)
		if err != nil {
			return nil, err
		}
		values, err := sheet.Get(ctx, quoteSheetName(cfg.SheetName))
		if err != nil {
			return nil, err
		}
		_, rows := MapValues(values)
		return rows, nil
	}

	text, err := s.fetcher.FetchCSV(ctx, cfg.SheetID)
	if err != nil {
		return nil, err
	}
	return MapRows(ReadCSV(text)), nil
}

func (s *Service) push(ctx context.Context, cfg *SyncConfig) (Result, error) {
	all, err := s.residents.ListByCreated(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(all) == 0 {
		return Result{Success: true, Direction: DirectionPush, Message: "Tidak ada data warga untuk disinkronkan."}, nil
	}

	values := make([][]any, 0, len(all)+1)
	values = append(values, utils.ToCells(Headers))
	for _, res := range all {
		row := EncodeResident(res)
		values = append(values, utils.ToCells(row.Values()))
	}

	uctx, cancel := s.upstream(ctx)
	defer cancel()

	sheet, err := s.opener.Open(uctx, []byte(cfg.ServiceAccount), cfg.SheetID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	if err := sheet.Clear(uctx, a1(cfg.SheetName, "A1:S")); err != nil {
		return Result{}, err
	}
	if err := sheet.Update(uctx, a1(cfg.SheetName, "A1"), values); err != nil {
		return Result{}, err
	}

	s.logger.Info("Push completed", zap.Int("pushed", len(all)))
	s.archive(ctx, WriteCSV(all))

	return Result{
		Success:       true,
		Direction:     DirectionPush,
		RecordsPushed: len(all),
		Message:       fmt.Sprintf("Berhasil mengirim %d data warga ke Google Sheet!", len(all)),
	}, nil
}

// record writes the run log and the last-sync fields. Failures are logged.
func (s *Service) record(ctx context.Context, cfg *SyncConfig, started time.Time, res Result) {
	completed := s.now()
	status := RunSuccess
	switch {
	case !res.Success:
		status = RunFailed
	case res.RecordsFailed > 0:
		status = RunPartial
	}

	entry := &SyncLog{
		SyncConfigID:   cfg.ID,
		Direction:      res.Direction,
		Status:         status,
		RecordsPushed:  res.RecordsPushed,
		RecordsPulled:  res.RecordsPulled,
		RecordsUpdated: res.RecordsUpdated,
		RecordsFailed:  res.RecordsFailed,
		Message:        res.Message,
		StartedAt:      started,
		CompletedAt:    &completed,
	}
	if len(res.Details) > 0 {
		if raw, err := json.Marshal(res.Details); err == nil {
			entry.Details = datatypes.JSON(raw)
		}
	}

	if err := s.repo.CreateLog(ctx, entry); err != nil {
		s.logger.Warn("Failed to write sync log", zap.Error(err))
	}
	count := res.RecordsPulled + res.RecordsUpdated + res.RecordsPushed
	if err := s.repo.RecordRun(ctx, cfg.ID, status, count, completed); err != nil {
		s.logger.Warn("Failed to update sync config", zap.Error(err))
	}
}

// Export renders every resident as CSV and returns it with its download name.
func (s *Service) Export(ctx context.Context) (string, string, error) {
	all, err := s.residents.ListByCreated(ctx)
	if err != nil {
		return "", "", err
	}
	content := WriteCSV(all)
	s.archive(ctx, content)
	return ExportFilename(s.now()), content, nil
}

// ExportFilename is the download name of an export made at t.
func ExportFilename(t time.Time) string {
	return "sync_warga_" + t.Format("2006-01-02") + ".csv"
}

// Snapshots lists archived CSV snapshots. It returns nil when archiving is off.
func (s *Service) Snapshots(ctx context.Context) ([]Snapshot, error) {
	if s.archiver == nil {
		return nil, nil
	}
	return s.archiver.List(ctx)
}

func (s *Service) archive(ctx context.Context, content string) {
	if s.archiver == nil {
		return
	}
	if _, err := s.archiver.Archive(ctx, content); err != nil {
		s.logger.Warn("Failed to archive sync snapshot", zap.Error(err))
	}
}
