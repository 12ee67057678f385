package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/docsbuild/internal/docs/errors"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/project"
)

// Locale is the only documentation locale that is built.
const Locale = "en"

// Paths are the three directories involved in building one version.
type Paths struct {
	Staging string
	Output  string
	Source  string // canonical documentation root of the project
}

// LocaleRoot returns the directory holding the source documents.
func (p Paths) LocaleRoot() string {
	return filepath.Join(p.Source, Locale)
}

// Resolver derives build paths from the configured roots.
type Resolver struct {
	ProjectsDir string
	SourceDir   string
	StagingDir  string
}

func NewResolver(projectsDir, sourceDir, stagingDir string) *Resolver {
	return &Resolver{ProjectsDir: projectsDir, SourceDir: sourceDir, StagingDir: stagingDir}
}

// Resolve returns the staging, output and source paths for a version. The
// source path is absolute and free of symlinks.
func (r *Resolver) Resolve(p project.Project, v project.Version) (Paths, error) {
	if p.DocsSlug == "" || v.Slug == "" {
		return Paths{}, errors.ResolutionError("project docs slug and version slug are required").
			WithCause(derrors.ErrInvalidTarget).
			WithContext("project", p.Slug).
			WithContext("version", v.Slug).
			Build()
	}

	staging := filepath.Join(r.StagingDir, p.DocsSlug, Locale, v.Slug)
	output := filepath.Join(r.SourceDir, "projects", p.DocsSlug, Locale, v.Slug)
	// Both directories are cleared recursively, so a slug must never lead
	// them out of their roots or onto a sibling version.
	if !project.IsPathSegment(p.DocsSlug) || !project.IsPathSegment(v.Slug) ||
		!isBelow(r.StagingDir, staging) || !isBelow(r.SourceDir, output) {
		return Paths{}, errors.ResolutionError("project docs slug or version slug escapes the build roots").
			WithCause(derrors.ErrInvalidTarget).
			WithContext("project", p.Slug).
			WithContext("docs_slug", p.DocsSlug).
			WithContext("version", v.Slug).
			Build()
	}

	source, err := r.SourcePath(p)
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		Staging: staging,
		Output:  output,
		Source:  source,
	}, nil
}

// isBelow reports whether path lies strictly inside root.
func isBelow(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || filepath.IsAbs(rel) {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// SourcePath canonicalizes the project's documentation root.
func (r *Resolver) SourcePath(p project.Project) (string, error) {
	raw := p.AbsoluteDocsPath(r.ProjectsDir)
	abs, err := filepath.Abs(raw)
	if err == nil {
		abs, err = filepath.EvalSymlinks(abs)
	}
	if err != nil {
		return "", errors.ResolutionError("cannot resolve documentation path").
			WithCause(fmt.Errorf("%w: %w", derrors.ErrSourceUnresolvable, err)).
			WithContext("project", p.Slug).
			WithContext("path", raw).
			Build()
	}
	return abs, nil
}

// HasDocs reports whether the project ships an English index document.
func (r *Resolver) HasDocs(p project.Project) bool {
	source, err := r.SourcePath(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(source, Locale, "index.rst"))
	return err == nil && !info.IsDir()
}
