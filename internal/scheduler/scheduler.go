package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/ingest"
)

// DefaultRunTimeout bounds a single scheduled import.
const DefaultRunTimeout = 10 * time.Minute

// Job is the work a scheduled tick performs.
type Job interface {
	Run(ctx context.Context) (ingest.Result, error)
}

// Scheduler refreshes the sales collection on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	job      Job
	schedule string
	timeout  time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler validates schedule (standard five-field cron or a
// descriptor such as @every 1h) and returns a scheduler that is not started yet.
func NewScheduler(schedule string, loc *time.Location, job Job, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		job:      job,
		schedule: schedule,
		timeout:  DefaultRunTimeout,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.runImport); err != nil {
		return nil, fmt.Errorf("schedule import %q: %w", schedule, err)
	}
	return s, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running import to return.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runImport() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("previous import still running, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.job.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled import failed", zap.String("source", res.Source), zap.Error(err))
		return
	}
	s.logger.Info("scheduled import completed",
		zap.String("source", res.Source),
		zap.Int("inserted", res.Inserted))
}
