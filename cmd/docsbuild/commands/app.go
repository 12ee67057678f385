package commands

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docsbuild/internal/build"
	"git.home.luguber.info/inful/docsbuild/internal/config"
	"git.home.luguber.info/inful/docsbuild/internal/docs"
	"git.home.luguber.info/inful/docsbuild/internal/eventstore"
	"git.home.luguber.info/inful/docsbuild/internal/frontmatter"
	"git.home.luguber.info/inful/docsbuild/internal/git"
	"git.home.luguber.info/inful/docsbuild/internal/logfields"
	"git.home.luguber.info/inful/docsbuild/internal/metrics"
	"git.home.luguber.info/inful/docsbuild/internal/render"
	"git.home.luguber.info/inful/docsbuild/internal/retry"
)

// app holds the components wired from one configuration.
type app struct {
	cfg      *config.Config
	resolver *docs.Resolver
	syncer   *git.Syncer
	service  *build.Service
	recorder *metrics.PrometheusRecorder
	history  *eventstore.SQLiteStore
}

type appOptions struct {
	sync    bool
	verbose bool
}

func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	a := &app{
		cfg:      cfg,
		resolver: docs.NewResolver(cfg.Paths.ProjectsDir, cfg.Paths.SourceDir, cfg.Paths.StagingDir),
		syncer:   git.NewSyncer(cfg.Paths.ProjectsDir),
	}
	a.syncer.Retry = retry.FromConfig(cfg.Sync)

	filter, err := docs.NewFilter(cfg.Collect.SourceInclude, cfg.Collect.SourceExclude)
	if err != nil {
		return nil, err
	}
	stager := docs.NewStager(a.resolver, filter)

	converter := docs.NewConverter(a.resolver, newBuilder(cfg.Renderer))
	converter.Verbose = opts.verbose

	post := docs.NewPostProcessor(a.resolver, frontmatter.Page{
		Layout:     cfg.FrontMatter.Layout,
		Indexed:    true,
		MenuSlug:   cfg.FrontMatter.MenuSlug,
		DocsPage:   true,
		Permalink:  cfg.FrontMatter.Permalink,
		Controller: cfg.FrontMatter.Controller,
	})
	post.MetaPatterns = cfg.Collect.MetaPatterns

	a.service = build.NewService(stager, converter, post)
	if opts.sync {
		a.service.WithSyncer(a.syncer)
	}

	if cfg.Metrics.Enabled {
		a.recorder = metrics.NewPrometheusRecorder(nil)
		a.service.WithRecorder(a.recorder)
	}
	if cfg.History.Enabled {
		if a.history, err = eventstore.NewSQLiteStore(ctx, cfg.History.Path); err != nil {
			return nil, err
		}
		a.service.WithHistory(a.history)
	}
	return a, nil
}

func newBuilder(rc config.RendererConfig) render.Builder {
	if rc.Kind == config.RendererCommand {
		return render.NewCommandBuilder(rc.Command, rc.Extension)
	}
	return render.NewGoldmarkBuilder()
}

// flushMetrics writes the metrics textfile if one is configured.
func (a *app) flushMetrics() {
	if a.recorder == nil || a.cfg.Metrics.Textfile == "" {
		return
	}
	if err := a.recorder.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		slog.Warn("Failed to write metrics textfile", logfields.Path(a.cfg.Metrics.Textfile), logfields.Error(err))
	}
}

func (a *app) Close() {
	a.flushMetrics()
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			slog.Warn("Failed to close history store", logfields.Error(err))
		}
	}
}
