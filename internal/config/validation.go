package config

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/project"
)

// Validate checks the whole configuration and reports every problem found
// as a single configuration error.
func (c *Config) Validate() error {
	v := &configurationValidator{config: c}
	v.validatePaths()
	v.validateRenderer()
	v.validateSchedule()
	v.validateSync()
	v.validateProjects()
	return v.err()
}

type configurationValidator struct {
	config   *Config
	problems []string
}

func (cv *configurationValidator) addf(format string, args ...any) {
	cv.problems = append(cv.problems, fmt.Sprintf(format, args...))
}

func (cv *configurationValidator) err() error {
	if len(cv.problems) == 0 {
		return nil
	}
	return errors.ConfigError("invalid configuration: "+strings.Join(cv.problems, "; ")).
		WithContext("problems", len(cv.problems)).
		UserAction().
		Build()
}

func (cv *configurationValidator) validatePaths() {
	p := cv.config.Paths
	if p.ProjectsDir == "" {
		cv.addf("paths.projects_dir is required")
	}
	if p.SourceDir == "" {
		cv.addf("paths.source_dir is required")
	}
	if p.StagingDir == "" {
		cv.addf("paths.staging_dir is required")
	}
}

func (cv *configurationValidator) validateRenderer() {
	r := cv.config.Renderer
	kind, err := ParseRendererKind(string(r.Kind))
	if err != nil {
		cv.addf("renderer.kind: %v", err)
		return
	}
	if kind != RendererCommand {
		return
	}
	joined := strings.Join(r.Command, " ")
	if len(r.Command) == 0 {
		cv.addf("renderer.command is required for the command renderer")
	} else if !strings.Contains(joined, "{input}") || !strings.Contains(joined, "{output}") {
		cv.addf("renderer.command must reference {input} and {output}")
	}
	if !strings.HasPrefix(r.Extension, ".") {
		cv.addf("renderer.extension must start with a dot")
	}
}

func (cv *configurationValidator) validateSchedule() {
	d, err := time.ParseDuration(cv.config.Schedule.Interval)
	if err != nil {
		cv.addf("schedule.interval: %v", err)
		return
	}
	if d < time.Minute {
		cv.addf("schedule.interval must be at least 1m")
	}
}

func (cv *configurationValidator) validateSync() {
	s := cv.config.Sync
	if _, err := ParseRetryBackoff(string(s.Backoff)); err != nil {
		cv.addf("sync.backoff: %v", err)
	}
	if s.RetryCount() < 0 {
		cv.addf("sync.retries cannot be negative")
	}
	if d, err := time.ParseDuration(s.InitialDelay); err != nil || d <= 0 {
		cv.addf("sync.initial_delay must be a positive duration")
	}
	if d, err := time.ParseDuration(s.MaxDelay); err != nil || d <= 0 {
		cv.addf("sync.max_delay must be a positive duration")
	}
}

func (cv *configurationValidator) validateProjects() {
	seen := make(map[string]bool, len(cv.config.Projects))
	for i, pc := range cv.config.Projects {
		if pc.Slug == "" {
			cv.addf("projects[%d].slug is required", i)
			continue
		}
		if seen[pc.Slug] {
			cv.addf("projects[%d]: duplicate slug %q", i, pc.Slug)
		}
		seen[pc.Slug] = true
		if !project.IsPathSegment(pc.Slug) {
			cv.addf("projects[%d].slug %q must be a single path segment", i, pc.Slug)
		}
		if !project.IsPathSegment(pc.DocsSlug) {
			cv.addf("projects[%d].docs_slug %q must be a single path segment", i, pc.DocsSlug)
		}
		if pc.RepositoryName != "" && !project.IsPathSegment(pc.RepositoryName) {
			cv.addf("projects[%d].repository_name %q must be a single path segment", i, pc.RepositoryName)
		}
		if _, err := project.ParseDialect(pc.Dialect); err != nil {
			cv.addf("projects[%d].dialect: %v", i, err)
		}
		if len(pc.Versions) == 0 {
			cv.addf("projects[%d] (%s) has no versions", i, pc.Slug)
		}
		versions := make(map[string]bool, len(pc.Versions))
		for j, vc := range pc.Versions {
			if vc.Slug == "" {
				cv.addf("projects[%d].versions[%d].slug is required", i, j)
				continue
			}
			if !project.IsPathSegment(vc.Slug) {
				cv.addf("projects[%d].versions[%d].slug %q must be a single path segment", i, j, vc.Slug)
			}
			if versions[vc.Slug] {
				cv.addf("projects[%d]: duplicate version %q", i, vc.Slug)
			}
			versions[vc.Slug] = true
		}
	}
}

// ScheduleInterval returns the parsed schedule interval.
func (c *Config) ScheduleInterval() time.Duration {
	d, err := time.ParseDuration(c.Schedule.Interval)
	if err != nil {
		return time.Hour
	}
	return d
}
