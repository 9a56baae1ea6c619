package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the bidirectional sync on the configured interval. At most
// one job is registered; a tick that fires while the previous run is still
// going is skipped.
type Scheduler struct {
	cron   *cron.Cron
	run    func(ctx context.Context) Result
	logger *zap.Logger

	mu      gosync.Mutex
	entry   cron.EntryID
	active  bool
	minutes int
}

// NewScheduler creates a scheduler that calls run on every tick.
func NewScheduler(run func(ctx context.Context) Result, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger))),
		run:    run,
		logger: logger,
	}
}

// Start begins firing scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Schedule replaces the current job with one firing every intervalMinutes.
func (s *Scheduler) Schedule(intervalMinutes int) error {
	if intervalMinutes <= 0 {
		return fmt.Errorf("invalid auto-sync interval: %d", intervalMinutes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		s.cron.Remove(s.entry)
		s.active = false
	}

	id, err := s.cron.AddFunc(fmt.Sprintf("@every %dm", intervalMinutes), s.tick)
	if err != nil {
		return fmt.Errorf("failed to schedule auto-sync: %w", err)
	}
	s.entry, s.active, s.minutes = id, true, intervalMinutes
	s.logger.Info("Auto-sync scheduled", zap.Int("interval_minutes", intervalMinutes))
	return nil
}

// Unschedule removes the job, if any.
func (s *Scheduler) Unschedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	s.cron.Remove(s.entry)
	s.active = false
	s.logger.Info("Auto-sync stopped")
}

// Next returns the next fire time, or the zero time when nothing is scheduled.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return time.Time{}
	}
	return s.cron.Entry(s.entry).Next
}

// interval returns the scheduled interval in minutes, 0 when inactive.
func (s *Scheduler) interval() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return 0
	}
	return s.minutes
}

func (s *Scheduler) tick() {
	res := s.run(context.Background())
	if !res.Success {
		s.logger.Error("Auto-sync failed", zap.String("message", res.Message))
		return
	}
	s.logger.Info("Auto-sync completed",
		zap.Int("pulled", res.RecordsPulled),
		zap.Int("updated", res.RecordsUpdated),
		zap.Int("pushed", res.RecordsPushed),
		zap.Int("failed", res.RecordsFailed))
}
