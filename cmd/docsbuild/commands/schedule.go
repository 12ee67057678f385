package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/daemon"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
)

// ScheduleCmd implements the 'schedule' command.
type ScheduleCmd struct {
	TargetArgs `embed:""`

	Interval    time.Duration `help:"Override schedule.interval from the configuration"`
	Sync        bool          `help:"Check out each version's branch before building" default:"true" negatable:""`
	Immediately bool          `help:"Run the first build right away" default:"true" negatable:""`
}

func (s *ScheduleCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	interval := cfg.ScheduleInterval()
	if s.Interval > 0 {
		interval = s.Interval
	}
	if interval < time.Minute {
		return errors.ValidationError("schedule interval must be at least one minute").
			WithContext("interval", interval.String()).
			Build()
	}
	targets, err := s.targets(cfg)
	if err != nil {
		return err
	}

	ctx := g.ctx()
	a, err := newApp(ctx, cfg, appOptions{sync: s.Sync, verbose: root.Verbose})
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := daemon.NewScheduler()
	if err != nil {
		return errors.RuntimeError("cannot create scheduler").WithCause(err).Build()
	}
	_, err = sched.SchedulePeriodicBuild(ctx, "docs-build", interval, s.Immediately, func(ctx context.Context) error {
		_, err := a.service.BuildTargets(ctx, targets)
		a.flushMetrics()
		return err
	})
	if err != nil {
		return errors.RuntimeError("cannot schedule build").WithCause(err).Build()
	}
	return sched.Run(ctx)
}
