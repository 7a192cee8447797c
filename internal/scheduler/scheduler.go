// Package scheduler re-runs the pipeline on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"MarketLens/internal/pipeline"
	"MarketLens/internal/report"
)

// Runner executes one pipeline run.
type Runner interface {
	Run(ctx context.Context) (*pipeline.Outcome, error)
}

// Sender delivers a digest message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages the cron-driven runs.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   Runner
	Notifier Sender // optional
	Ctx      context.Context
	log      zerolog.Logger

	mu   sync.Mutex
	runs int
}

// NewScheduler creates a new Scheduler. Overlapping ticks are skipped while
// a run is still in progress. notifier may be nil.
func NewScheduler(ctx context.Context, runner Runner, notifier Sender, log zerolog.Logger) *Scheduler {
	log = log.With().Str("component", "scheduler").Logger()
	cl := cronLogger{log: log}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Runner:   runner,
		Notifier: notifier,
		Ctx:      ctx,
		log:      log,
	}
}

// Register adds the analysis run on a cron schedule.
func (s *Scheduler) Register(schedule string) error {
	if _, err := s.Cron.AddFunc(schedule, s.runTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("Scheduler started")
}

// Stop stops the scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info().Msg("Scheduler stopped")
}

// RunNow executes the analysis immediately.
func (s *Scheduler) RunNow() {
	s.runTask()
}

// Runs reports how many runs have been attempted.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) runTask() {
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	s.log.Info().Msg("Running scheduled analysis")
	out, err := s.Runner.Run(s.Ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Analysis run failed")
		s.trySend(fmt.Sprintf("❌ <b>MarketLens run failed</b>\n\n%v", err))
		return
	}
	if out.PersistErr != nil {
		s.log.Warn().Err(out.PersistErr).Msg("Run completed with persistence errors")
	}
	s.trySend(report.Digest(out.Result, out.CacheHit))
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.log.Error().Err(err).Msg("Send notification failed")
	}
}

// cronLogger routes cron's own logging through zerolog.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
