// Package scheduler runs the periodic server jobs (content automation and
// refresh token cleanup) on cron schedules evaluated in the configured time
// zone.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/robfig/cron/v3"
)

// Job is one scheduled unit of work. The context is cancelled when the
// scheduler stops.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	loc     *time.Location
	logger  logging.Logger
	jobCtx  context.Context
	stopJob context.CancelFunc
}

func New(loc *time.Location, logger logging.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	l := logger.With("module", "scheduler")
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLogger{l}), cron.SkipIfStillRunning(cronLogger{l})),
		),
		loc:     loc,
		logger:  l,
		jobCtx:  ctx,
		stopJob: cancel,
	}
}

// Add registers job under a standard five-field cron spec or a descriptor
// such as "@hourly".
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		s.logger.Info(s.jobCtx, "Job started", "job", name)
		if err := job(s.jobCtx); err != nil {
			s.logger.Error(s.jobCtx, "Job failed", "job", name, "error", err)
			return
		}
		s.logger.Info(s.jobCtx, "Job finished", "job", name, "elapsed", time.Since(start).String())
	})
	if err != nil {
		return fmt.Errorf("schedule %s %q: %w", name, spec, err)
	}
	return nil
}

// Len reports the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Next returns the next activation of every job, in registration order.
func (s *Scheduler) Next() []time.Time {
	entries := s.cron.Entries()
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Schedule.Next(time.Now().In(s.loc)))
	}
	return out
}

// Run starts the scheduler and blocks until ctx is done, then cancels the
// running jobs and waits for them to return.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info(ctx, "Starting scheduler", "jobs", s.Len(), "location", s.loc.String())
	s.cron.Start()

	<-ctx.Done()

	s.logger.Info(ctx, "Stopping scheduler...")
	s.stopJob()
	<-s.cron.Stop().Done()
	return nil
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	l logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(context.Background(), msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(context.Background(), msg, append(keysAndValues, "error", err)...)
}
