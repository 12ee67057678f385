package build

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/eventstore"
	"git.home.luguber.info/inful/docsbuild/internal/logfields"
	"git.home.luguber.info/inful/docsbuild/internal/metrics"
)

// Observer receives callbacks around stage execution and the build lifecycle.
type Observer interface {
	OnBuildStart(report *Report)
	OnStageStart(report *Report, stage StageName)
	OnStageComplete(report *Report, stage StageName, d time.Duration, result StageResult, err error)
	OnBuildComplete(report *Report)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnBuildStart(*Report)                                                  {}
func (NoopObserver) OnStageStart(*Report, StageName)                                       {}
func (NoopObserver) OnStageComplete(*Report, StageName, time.Duration, StageResult, error) {}
func (NoopObserver) OnBuildComplete(*Report)                                               {}

// observers fans callbacks out to several observers in order.
type observers []Observer

func (o observers) OnBuildStart(r *Report) {
	for _, obs := range o {
		obs.OnBuildStart(r)
	}
}

func (o observers) OnStageStart(r *Report, stage StageName) {
	for _, obs := range o {
		obs.OnStageStart(r, stage)
	}
}

func (o observers) OnStageComplete(r *Report, stage StageName, d time.Duration, result StageResult, err error) {
	for _, obs := range o {
		obs.OnStageComplete(r, stage, d, result, err)
	}
}

func (o observers) OnBuildComplete(r *Report) {
	for _, obs := range o {
		obs.OnBuildComplete(r)
	}
}

// recorderObserver adapts metrics.Recorder into an Observer.
type recorderObserver struct{ rec metrics.Recorder }

func (recorderObserver) OnBuildStart(*Report)            {}
func (recorderObserver) OnStageStart(*Report, StageName) {}

func (o recorderObserver) OnStageComplete(r *Report, stage StageName, d time.Duration, result StageResult, _ error) {
	if stage == StageSyncSources {
		o.rec.ObserveSyncDuration(r.Project, d, result == StageResultSuccess)
	}
	o.rec.ObserveStageDuration(string(stage), d)
	o.rec.IncStageResult(string(stage), resultLabel(result))
}

func (o recorderObserver) OnBuildComplete(r *Report) {
	o.rec.ObserveBuildDuration(r.Project, r.Duration())
	o.rec.IncBuildOutcome(r.Project, outcomeLabel(r.Status))
	if r.Status == BuildStatusSuccess {
		o.rec.SetPagesRendered(r.Project, r.Version, r.Pages)
	}
}

func resultLabel(r StageResult) metrics.ResultLabel {
	switch r {
	case StageResultSuccess:
		return metrics.ResultSuccess
	case StageResultCanceled:
		return metrics.ResultCanceled
	default:
		return metrics.ResultFatal
	}
}

func outcomeLabel(s BuildStatus) metrics.BuildOutcomeLabel {
	switch s {
	case BuildStatusSuccess:
		return metrics.BuildOutcomeSuccess
	case BuildStatusCancelled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}

// historyObserver appends build events to an event store. Write failures are
// logged and never fail the build.
type historyObserver struct {
	store eventstore.Store
}

func (o historyObserver) append(r *Report, e *eventstore.BaseEvent, err error) {
	if err == nil {
		// The build context may already be canceled when the last events arrive.
		err = o.store.Append(context.Background(), e)
	}
	if err != nil {
		slog.Warn("Failed to record build event", logfields.BuildID(r.BuildID), logfields.Error(err))
	}
}

func (o historyObserver) OnBuildStart(r *Report) {
	e, err := eventstore.NewBuildStarted(r.BuildID, eventstore.BuildStartedPayload{
		Project: r.Project,
		Version: r.Version,
		Dialect: r.Dialect,
	})
	o.append(r, e, err)
}

func (historyObserver) OnStageStart(*Report, StageName) {}

func (o historyObserver) OnStageComplete(r *Report, stage StageName, d time.Duration, result StageResult, stageErr error) {
	if stage == StageSyncSources && result == StageResultSuccess {
		e, err := eventstore.NewSourceSynced(r.BuildID, eventstore.SourceSyncedPayload{
			Project: r.Project,
			Version: r.Version,
			Branch:  r.Branch,
			Commit:  r.Commit,
		})
		o.append(r, e, err)
	}
	payload := eventstore.StageCompletedPayload{
		Stage:      string(stage),
		Result:     string(result),
		DurationMS: d.Milliseconds(),
	}
	if stageErr != nil {
		payload.Error = stageErr.Error()
	}
	e, err := eventstore.NewStageCompleted(r.BuildID, payload)
	o.append(r, e, err)
}

func (o historyObserver) OnBuildComplete(r *Report) {
	var (
		e   *eventstore.BaseEvent
		err error
	)
	if r.Status == BuildStatusSuccess {
		e, err = eventstore.NewBuildCompleted(r.BuildID, eventstore.BuildCompletedPayload{
			DurationMS:  r.Duration().Milliseconds(),
			Staged:      r.Staged,
			Rendered:    r.Rendered,
			Pages:       r.Pages,
			Fingerprint: r.Fingerprint,
		})
	} else {
		e, err = eventstore.NewBuildFailed(r.BuildID, eventstore.BuildFailedPayload{
			Stage:      string(r.FailedStage),
			Error:      r.Error,
			DurationMS: r.Duration().Milliseconds(),
			Canceled:   r.Status == BuildStatusCancelled,
		})
	}
	o.append(r, e, err)
}
