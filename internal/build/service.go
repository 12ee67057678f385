package build

import (
	"context"
	stdErrors "errors"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsbuild/internal/docs"
	"git.home.luguber.info/inful/docsbuild/internal/eventstore"
	"git.home.luguber.info/inful/docsbuild/internal/logfields"
	"git.home.luguber.info/inful/docsbuild/internal/metrics"
	"git.home.luguber.info/inful/docsbuild/internal/project"
)

// SourceSyncer brings a project's checkout to the branch of a version and
// returns the checked out commit.
type SourceSyncer interface {
	Sync(ctx context.Context, p project.Project, v project.Version) (string, error)
}

// Service builds the documentation of one project version at a time.
// Callers serialize builds for the same target.
type Service struct {
	stager    *docs.Stager
	converter *docs.Converter
	post      *docs.PostProcessor
	syncer    SourceSyncer
	observers observers
	newID     func() string
}

// NewService wires the three pipeline components into a build service.
func NewService(stager *docs.Stager, converter *docs.Converter, post *docs.PostProcessor) *Service {
	return &Service{
		stager:    stager,
		converter: converter,
		post:      post,
		newID:     uuid.NewString,
	}
}

// WithRecorder reports stage and build metrics to rec.
func (s *Service) WithRecorder(rec metrics.Recorder) *Service {
	if rec != nil {
		s.observers = append(s.observers, recorderObserver{rec: rec})
	}
	return s
}

// WithHistory appends build events to store.
func (s *Service) WithHistory(store eventstore.Store) *Service {
	if store != nil {
		s.observers = append(s.observers, historyObserver{store: store})
	}
	return s
}

// WithObserver registers an additional observer.
func (s *Service) WithObserver(obs Observer) *Service {
	if obs != nil {
		s.observers = append(s.observers, obs)
	}
	return s
}

// WithSyncer runs a sync_sources stage ahead of staging for projects that
// have a repository url.
func (s *Service) WithSyncer(syncer SourceSyncer) *Service {
	s.syncer = syncer
	return s
}

// BuildDocs stages, converts and post-processes the documentation of one
// project version. The returned report is never nil; err is the failing
// stage's *StageError.
func (s *Service) BuildDocs(ctx context.Context, p project.Project, v project.Version) (*Report, error) {
	report := newReport(s.newID(), p, v)
	bs := newBuildState(p, v, report)

	logger := slog.With(logfields.BuildID(report.BuildID), logfields.Project(p.Slug), logfields.Version(v.Slug))
	logger.Info("Building documentation", logfields.Dialect(string(p.Dialect)))

	s.observers.OnBuildStart(report)

	stages := NewPipeline().
		AddIf(s.syncer != nil && p.RepositoryURL != "", StageSyncSources, s.syncSources).
		Add(StageSources, s.stageSources).
		Add(StageConvert, s.convert).
		Add(StagePostProcess, s.postProcess).
		Build()

	err := runStages(ctx, bs, stages, s.observers)
	report.finish(err)
	s.observers.OnBuildComplete(report)

	if err != nil {
		logger.Error("Documentation build failed",
			logfields.Stage(string(report.FailedStage)),
			slog.String("status", string(report.Status)),
			logfields.Error(err))
		return report, err
	}
	logger.Info("Documentation build complete",
		logfields.Count(report.Pages),
		logfields.DurationMS(float64(report.Duration().Microseconds())/1000),
		slog.String("fingerprint", report.Fingerprint))
	return report, nil
}

// BuildTargets builds each target in order. Failures do not stop later
// targets; cancellation does.
func (s *Service) BuildTargets(ctx context.Context, targets []project.Target) ([]*Report, error) {
	reports := make([]*Report, 0, len(targets))
	var errs []error
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		report, err := s.BuildDocs(ctx, t.Project, t.Version)
		reports = append(reports, report)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return reports, stdErrors.Join(errs...)
}

func (s *Service) syncSources(ctx context.Context, bs *BuildState) error {
	commit, err := s.syncer.Sync(ctx, bs.Project, bs.Version)
	if err != nil {
		return err
	}
	bs.Report.Branch = bs.Version.Branch()
	bs.Report.Commit = commit
	return nil
}

func (s *Service) stageSources(ctx context.Context, bs *BuildState) error {
	staged, err := s.stager.Stage(ctx, bs.Project, bs.Version)
	if err != nil {
		return err
	}
	bs.Staged = staged
	bs.Report.Staged = len(staged.Files)
	return nil
}

func (s *Service) convert(ctx context.Context, bs *BuildState) error {
	rendered, err := s.converter.Convert(ctx, bs.Project, bs.Version)
	if err != nil {
		return err
	}
	bs.Rendered = rendered
	bs.Report.Rendered = len(rendered)
	return nil
}

func (s *Service) postProcess(ctx context.Context, bs *BuildState) error {
	result, err := s.post.PostProcess(ctx, bs.Project, bs.Version, bs.Rendered)
	if err != nil {
		return err
	}
	bs.Post = result
	bs.Report.Pages = result.Pages
	bs.Report.Files = result.Files
	bs.Report.MetaRemoved = result.MetaRemoved

	manifest, err := docs.BuildManifest(bs.Staged.Paths.Output)
	if err != nil {
		return err
	}
	bs.Report.Fingerprint = manifest.Hash
	return nil
}
