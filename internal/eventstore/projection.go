package eventstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/logfields"
)

// Build status values tracked by the projection.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusCanceled  = "canceled"
)

// StageSummary is one stage outcome inside a build.
type StageSummary struct {
	Stage    string
	Result   string
	Duration time.Duration
	Error    string
}

// BuildSummary is the read model for one build.
type BuildSummary struct {
	BuildID      string
	Project      string
	Version      string
	Dialect      string
	Status       string
	StartedAt    time.Time
	CompletedAt  time.Time
	Duration     time.Duration
	Staged       int
	Rendered     int
	Pages        int
	Fingerprint  string
	Commit       string
	Stages       []StageSummary
	ErrorStage   string
	ErrorMessage string
}

// Target returns "project@version".
func (b *BuildSummary) Target() string { return b.Project + "@" + b.Version }

// BuildHistoryProjection maintains build summaries derived from events.
type BuildHistoryProjection struct {
	store      Store
	mu         sync.RWMutex
	builds     map[string]*BuildSummary
	history    []*BuildSummary // newest first
	maxHistory int
}

// NewBuildHistoryProjection creates a projection keeping at most maxHistory
// builds. A non-positive limit defaults to 100.
func NewBuildHistoryProjection(store Store, maxHistory int) *BuildHistoryProjection {
	if maxHistory <= 0 {
		maxHistory = 100
	}
	return &BuildHistoryProjection{
		store:      store,
		builds:     make(map[string]*BuildSummary),
		maxHistory: maxHistory,
	}
}

// Rebuild replays every stored event into a fresh projection state.
func (p *BuildHistoryProjection) Rebuild(ctx context.Context) error {
	events, err := p.store.GetRange(ctx, time.Unix(0, 0), time.Now().Add(time.Minute))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.builds = make(map[string]*BuildSummary)
	p.history = nil
	for _, e := range events {
		p.applyEventLocked(e)
	}
	return nil
}

// Apply folds a single event into the projection.
func (p *BuildHistoryProjection) Apply(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyEventLocked(e)
}

func (p *BuildHistoryProjection) applyEventLocked(e Event) {
	switch e.Type() {
	case TypeBuildStarted:
		var payload BuildStartedPayload
		if err := Decode(e, &payload); err != nil {
			p.skip(e, err)
			return
		}
		summary := &BuildSummary{
			BuildID:   e.BuildID(),
			Project:   payload.Project,
			Version:   payload.Version,
			Dialect:   payload.Dialect,
			Status:    StatusRunning,
			StartedAt: e.Timestamp(),
		}
		p.builds[e.BuildID()] = summary
		p.history = append([]*BuildSummary{summary}, p.history...)
		p.trimLocked()

	case TypeSourceSynced:
		var payload SourceSyncedPayload
		if err := Decode(e, &payload); err != nil {
			p.skip(e, err)
			return
		}
		if b := p.builds[e.BuildID()]; b != nil {
			b.Commit = payload.Commit
		}

	case TypeStageCompleted:
		var payload StageCompletedPayload
		if err := Decode(e, &payload); err != nil {
			p.skip(e, err)
			return
		}
		if b := p.builds[e.BuildID()]; b != nil {
			b.Stages = append(b.Stages, StageSummary{
				Stage:    payload.Stage,
				Result:   payload.Result,
				Duration: time.Duration(payload.DurationMS) * time.Millisecond,
				Error:    payload.Error,
			})
		}

	case TypeBuildCompleted:
		var payload BuildCompletedPayload
		if err := Decode(e, &payload); err != nil {
			p.skip(e, err)
			return
		}
		if b := p.builds[e.BuildID()]; b != nil {
			b.Status = StatusSucceeded
			b.CompletedAt = e.Timestamp()
			b.Duration = time.Duration(payload.DurationMS) * time.Millisecond
			b.Staged = payload.Staged
			b.Rendered = payload.Rendered
			b.Pages = payload.Pages
			b.Fingerprint = payload.Fingerprint
		}

	case TypeBuildFailed:
		var payload BuildFailedPayload
		if err := Decode(e, &payload); err != nil {
			p.skip(e, err)
			return
		}
		if b := p.builds[e.BuildID()]; b != nil {
			b.Status = StatusFailed
			if payload.Canceled {
				b.Status = StatusCanceled
			}
			b.CompletedAt = e.Timestamp()
			b.Duration = time.Duration(payload.DurationMS) * time.Millisecond
			b.ErrorStage = payload.Stage
			b.ErrorMessage = payload.Error
		}
	}
}

func (p *BuildHistoryProjection) skip(e Event, err error) {
	slog.Warn("Skipping undecodable history event",
		logfields.BuildID(e.BuildID()),
		slog.String("type", e.Type()),
		logfields.Error(err))
}

func (p *BuildHistoryProjection) trimLocked() {
	if len(p.history) <= p.maxHistory {
		return
	}
	for _, old := range p.history[p.maxHistory:] {
		delete(p.builds, old.BuildID)
	}
	p.history = p.history[:p.maxHistory]
}

// GetHistory returns up to limit builds, newest first. A non-positive limit
// returns everything retained.
func (p *BuildHistoryProjection) GetHistory(limit int) []*BuildSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if limit <= 0 || limit > len(p.history) {
		limit = len(p.history)
	}
	out := make([]*BuildSummary, limit)
	copy(out, p.history[:limit])
	return out
}

// GetBuild returns the summary for a build ID.
func (p *BuildHistoryProjection) GetBuild(buildID string) (*BuildSummary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.builds[buildID]
	return b, ok
}

// GetLastCompletedBuild returns the newest succeeded build for a target.
func (p *BuildHistoryProjection) GetLastCompletedBuild(project, version string) *BuildSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, b := range p.history {
		if b.Status == StatusSucceeded && b.Project == project && b.Version == version {
			return b
		}
	}
	return nil
}
