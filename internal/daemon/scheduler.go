// Package daemon rebuilds documentation on a fixed interval.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsbuild/internal/logfields"
)

// BuildFunc performs one scheduled run.
type BuildFunc func(ctx context.Context) error

// Scheduler wraps a gocron scheduler that never runs two builds at once.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a scheduler limited to one concurrent job.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLimitConcurrentJobs(1, gocron.LimitModeWait))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// SchedulePeriodicBuild registers fn to run every interval. Overlapping runs
// are skipped and rescheduled. When immediately is set the first run starts
// as soon as the scheduler does. ctx is passed to every run.
func (s *Scheduler) SchedulePeriodicBuild(ctx context.Context, name string, interval time.Duration, immediately bool, fn BuildFunc) (string, error) {
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if immediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.execute(ctx, name, fn) }),
		opts...,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create periodic build job: %w", err)
	}
	slog.Info("Scheduled periodic build", logfields.Job(name), slog.Duration("interval", interval))
	return job.ID().String(), nil
}

func (s *Scheduler) execute(ctx context.Context, name string, fn BuildFunc) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	slog.Info("Executing scheduled build", logfields.Job(name))
	if err := fn(ctx); err != nil {
		slog.Error("Scheduled build failed", logfields.Job(name), logfields.Error(err))
		return
	}
	slog.Info("Scheduled build finished",
		logfields.Job(name),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	return s.Stop()
}
