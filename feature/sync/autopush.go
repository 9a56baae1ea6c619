package sync

import (
	"context"
	"errors"
	"strings"

	"smartwarga/core/utils"
	"smartwarga/feature/resident"
	"smartwarga/feature/sheets"

	"go.uber.org/zap"
)

type pushJob struct {
	resident *resident.Resident
	nik      string
}

// AutoPusher mirrors single resident changes into the sheet in the
// background. It implements resident.ChangeNotifier: submissions never block
// and failures are only logged.
type AutoPusher struct {
	repo   *Repository
	opener sheets.Opener
	cfg    sheets.Config
	logger *zap.Logger
	jobs   chan pushJob
}

// NewAutoPusher creates a pusher with a queue of cfg.AutoPushQueue jobs.
func NewAutoPusher(repo *Repository, opener sheets.Opener, cfg sheets.Config, logger *zap.Logger) *AutoPusher {
	size := cfg.AutoPushQueue
	if size <= 0 {
		size = 100
	}
	return &AutoPusher{
		repo:   repo,
		opener: opener,
		cfg:    cfg,
		logger: logger,
		jobs:   make(chan pushJob, size),
	}
}

// ResidentSaved queues an upsert of the resident's row.
func (p *AutoPusher) ResidentSaved(r resident.Resident) {
	p.submit(pushJob{resident: &r, nik: r.NIK})
}

// ResidentDeleted queues clearing of the resident's row.
func (p *AutoPusher) ResidentDeleted(nik string) {
	p.submit(pushJob{nik: nik})
}

func (p *AutoPusher) submit(job pushJob) {
	select {
	case p.jobs <- job:
	default:
		p.logger.Warn("Auto-push queue full, dropping change", zap.String("nik", job.nik))
	}
}

// Run processes queued jobs until ctx is cancelled.
func (p *AutoPusher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			p.handle(ctx, job)
		}
	}
}

func (p *AutoPusher) handle(ctx context.Context, job pushJob) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout())
	defer cancel()

	var err error
	if job.resident != nil {
		err = p.PushOne(ctx, *job.resident)
	} else {
		err = p.DeleteOne(ctx, job.nik)
	}
	if err != nil {
		p.logger.Warn("Auto-push failed", zap.String("nik", job.nik), zap.Error(err))
	}
}

// PushOne overwrites the resident's row, found by scanning column A for the
// NIK, or appends a new row. It does nothing unless auto-sync is on and a
// credential is configured.
func (p *AutoPusher) PushOne(ctx context.Context, r resident.Resident) error {
	cfg, sheet, err := p.open(ctx)
	if sheet == nil || err != nil {
		return err
	}

	rowNum, err := findRow(ctx, sheet, cfg.SheetName, r.NIK)
	if err != nil {
		return err
	}

	row := EncodeResident(r)
	values := [][]any{utils.ToCells(row.Values())}
	if rowNum > 0 {
		return sheet.Update(ctx, rowRange(cfg.SheetName, rowNum), values)
	}
	return sheet.Append(ctx, a1(cfg.SheetName, "A:S"), values)
}

// DeleteOne clears the cells of the resident's row. The row itself stays so
// row numbers seen by concurrent scans do not shift.
func (p *AutoPusher) DeleteOne(ctx context.Context, nik string) error {
	cfg, sheet, err := p.open(ctx)
	if sheet == nil || err != nil {
		return err
	}

	rowNum, err := findRow(ctx, sheet, cfg.SheetName, nik)
	if err != nil || rowNum == 0 {
		return err
	}
	return sheet.Clear(ctx, rowRange(cfg.SheetName, rowNum))
}

// open returns a nil sheet when auto-push does not apply.
func (p *AutoPusher) open(ctx context.Context) (*SyncConfig, sheets.Spreadsheet, error) {
	cfg, err := p.repo.ActiveConfig(ctx)
	if errors.Is(err, ErrNotConfigured) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if !cfg.AutoSync || !cfg.HasWriteAccess() {
		return cfg, nil, nil
	}

	sheet, err := p.opener.Open(ctx, []byte(cfg.ServiceAccount), cfg.SheetID)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, sheet, nil
}

// findRow returns the 1-based sheet row holding nik in column A, skipping the
// header, or 0 when absent.
func findRow(ctx context.Context, sheet sheets.Spreadsheet, sheetName, nik string) (int, error) {
	column, err := sheet.Get(ctx, a1(sheetName, "A:A"))
	if err != nil {
		return 0, err
	}
	for i := 1; i < len(column); i++ {
		if len(column[i]) == 0 {
			continue
		}
		if strings.TrimSpace(utils.ToString(column[i][0])) == nik {
			return i + 1, nil
		}
	}
	return 0, nil
}
