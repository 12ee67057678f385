package build

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/project"
)

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	BuildStatusRunning   BuildStatus = "running"
	BuildStatusSuccess   BuildStatus = "success"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsTerminal returns true if the status represents a final state.
func (s BuildStatus) IsTerminal() bool {
	return s == BuildStatusSuccess || s == BuildStatusFailed || s == BuildStatusCancelled
}

// Report is the per-build record of what happened.
type Report struct {
	BuildID string
	Project string
	Version string
	Dialect string
	Start   time.Time
	End     time.Time
	Status  BuildStatus

	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]StageResult
	FailedStage    StageName
	Error          string

	Staged      int // source documents written to staging
	Rendered    int // files reported by the renderer
	Pages       int // HTML pages rewritten with front matter
	Files       int // files in the output directory after post-processing
	MetaRemoved int
	Fingerprint string // manifest hash of the output directory

	Branch string // set when the sources were synced before the build
	Commit string
}

func newReport(buildID string, p project.Project, v project.Version) *Report {
	return &Report{
		BuildID:        buildID,
		Project:        p.Slug,
		Version:        v.Slug,
		Dialect:        string(p.Dialect),
		Start:          time.Now(),
		Status:         BuildStatusRunning,
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
	}
}

// Duration returns the wall time of a finished build.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

func (r *Report) recordStage(stage StageName, d time.Duration, result StageResult) {
	r.StageDurations[stage] = d
	r.StageResults[stage] = result
}

// finish derives the final status from err.
func (r *Report) finish(err error) {
	r.End = time.Now()
	if err == nil {
		r.Status = BuildStatusSuccess
		return
	}
	r.Status = BuildStatusFailed
	r.Error = err.Error()
	if se, ok := err.(*StageError); ok {
		r.FailedStage = se.Stage
		if se.Kind == StageErrorCanceled {
			r.Status = BuildStatusCancelled
		}
	}
}

// Summary returns a one-line human readable description.
func (r *Report) Summary() string {
	s := fmt.Sprintf("%s@%s %s in %s: staged=%d rendered=%d pages=%d",
		r.Project, r.Version, r.Status, r.Duration().Round(time.Millisecond), r.Staged, r.Rendered, r.Pages)
	if r.FailedStage != "" {
		s += fmt.Sprintf(" failed_stage=%s", r.FailedStage)
	}
	return s
}
