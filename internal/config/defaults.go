package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/docsbuild/internal/render"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

var defaultAppliers = []DefaultApplier{
	&PathsDefaultApplier{},
	&RendererDefaultApplier{},
	&FrontMatterDefaultApplier{},
	&CollectDefaultApplier{},
	&ObservabilityDefaultApplier{},
	&SyncDefaultApplier{},
	&ProjectsDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// PathsDefaultApplier derives the staging and data roots from the source root.
type PathsDefaultApplier struct{}

func (p *PathsDefaultApplier) Domain() string { return "paths" }

func (p *PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Paths.ProjectsDir == "" {
		cfg.Paths.ProjectsDir = "./projects"
	}
	if cfg.Paths.SourceDir == "" {
		cfg.Paths.SourceDir = "./source"
	}
	if cfg.Paths.StagingDir == "" {
		cfg.Paths.StagingDir = filepath.Join(cfg.Paths.SourceDir, "..", "docs")
	}
	if cfg.Paths.DataDir == "" {
		cfg.Paths.DataDir = filepath.Join(cfg.Paths.SourceDir, "..", "data")
	}
	return nil
}

type RendererDefaultApplier struct{}

func (r *RendererDefaultApplier) Domain() string { return "renderer" }

func (r *RendererDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Renderer.Kind == "" {
		cfg.Renderer.Kind = RendererGoldmark
	}
	if cfg.Renderer.Kind == RendererCommand && len(cfg.Renderer.Command) == 0 {
		cfg.Renderer.Command = append([]string(nil), DefaultRendererCommand...)
	}
	if cfg.Renderer.Extension == "" {
		cfg.Renderer.Extension = ".html"
	}
	return nil
}

type FrontMatterDefaultApplier struct{}

func (f *FrontMatterDefaultApplier) Domain() string { return "frontmatter" }

func (f *FrontMatterDefaultApplier) ApplyDefaults(cfg *Config) error {
	fm := &cfg.FrontMatter
	if fm.Layout == "" {
		fm.Layout = "documentation"
	}
	if fm.MenuSlug == "" {
		fm.MenuSlug = "projects"
	}
	if fm.Permalink == "" {
		fm.Permalink = "none"
	}
	if len(fm.Controller) == 0 {
		fm.Controller = []string{`Doctrine\Website\Controllers\DocumentationController`, "view"}
	}
	return nil
}

type CollectDefaultApplier struct{}

func (c *CollectDefaultApplier) Domain() string { return "collect" }

func (c *CollectDefaultApplier) ApplyDefaults(cfg *Config) error {
	if len(cfg.Collect.SourceInclude) == 0 {
		cfg.Collect.SourceInclude = []string{"*.rst"}
	}
	if len(cfg.Collect.SourceExclude) == 0 {
		cfg.Collect.SourceExclude = []string{"toc.rst"}
	}
	if len(cfg.Collect.MetaPatterns) == 0 {
		cfg.Collect.MetaPatterns = []string{render.MetaFile}
	}
	return nil
}

// ObservabilityDefaultApplier covers logging, metrics, history and schedule.
type ObservabilityDefaultApplier struct{}

func (o *ObservabilityDefaultApplier) Domain() string { return "observability" }

func (o *ObservabilityDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	if cfg.History.Enabled && cfg.History.Path == "" {
		cfg.History.Path = "./docsbuild.db"
	}
	if cfg.Schedule.Interval == "" {
		cfg.Schedule.Interval = "1h"
	}
	return nil
}

// SyncDefaultApplier fills the retry settings used by source sync.
type SyncDefaultApplier struct{}

func (s *SyncDefaultApplier) Domain() string { return "sync" }

func (s *SyncDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Sync.Backoff == "" {
		cfg.Sync.Backoff = RetryBackoffLinear
	}
	if cfg.Sync.InitialDelay == "" {
		cfg.Sync.InitialDelay = "1s"
	}
	if cfg.Sync.MaxDelay == "" {
		cfg.Sync.MaxDelay = "30s"
	}
	return nil
}

// ProjectsDefaultApplier fills per-project fields derived from the slug.
type ProjectsDefaultApplier struct{}

func (p *ProjectsDefaultApplier) Domain() string { return "projects" }

func (p *ProjectsDefaultApplier) ApplyDefaults(cfg *Config) error {
	for i := range cfg.Projects {
		pc := &cfg.Projects[i]
		if pc.DocsSlug == "" {
			pc.DocsSlug = pc.Slug
		}
		if pc.RepositoryName == "" {
			pc.RepositoryName = pc.Slug
		}
		if pc.DocsPath == "" {
			pc.DocsPath = "docs"
		}
	}
	return nil
}
