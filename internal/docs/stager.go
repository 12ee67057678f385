package docs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/docsbuild/internal/docs/errors"
	"git.home.luguber.info/inful/docsbuild/internal/logfields"
	"git.home.luguber.info/inful/docsbuild/internal/project"
	"git.home.luguber.info/inful/docsbuild/internal/transform"
)

// SidebarFile overrides the generated sidebar when present in the locale root.
const SidebarFile = "sidebar.rst"

// StageResult describes a populated staging directory.
type StageResult struct {
	Paths         Paths
	Files         []string // staged documents relative to the locale root
	CustomSidebar bool
}

// Stager copies a version's sources into a freshly cleared staging
// directory, running the pre-conversion pass on each document.
type Stager struct {
	Resolver  *Resolver
	Collector Collector
	Filter    Filter
}

func NewStager(resolver *Resolver, filter Filter) *Stager {
	return &Stager{Resolver: resolver, Filter: filter}
}

func (s *Stager) Stage(ctx context.Context, p project.Project, v project.Version) (StageResult, error) {
	paths, err := s.Resolver.Resolve(p, v)
	if err != nil {
		return StageResult{}, err
	}
	result := StageResult{Paths: paths}

	if err := resetDir(paths.Staging); err != nil {
		return result, err
	}

	locale := paths.LocaleRoot()
	sidebar, custom, err := readSidebar(locale)
	if err != nil {
		return result, err
	}
	result.CustomSidebar = custom

	files, err := s.Collector.Collect(locale, s.Filter)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		slog.Warn("No documentation sources found", logfields.Project(p.Slug), logfields.Version(v.Slug), logfields.Path(locale))
	}

	rules := transform.DialectRules(p.Dialect)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		rel, err := relativeTo(locale, file)
		if err != nil {
			return result, err
		}
		content, err := readFile(file)
		if err != nil {
			return result, err
		}

		staged := transform.Pre(transform.Document{RelPath: rel, Content: string(content)}, sidebar, rules)
		if err := writeFile(filepath.Join(paths.Staging, filepath.FromSlash(rel)), []byte(staged)); err != nil {
			return result, err
		}
		result.Files = append(result.Files, rel)
		slog.Debug("Staged document", logfields.File(rel))
	}

	slog.Info("Staged documentation",
		logfields.Project(p.Slug),
		logfields.Version(v.Slug),
		logfields.Dialect(string(p.Dialect)),
		logfields.Count(len(result.Files)),
		slog.Bool("custom_sidebar", custom))
	return result, nil
}

func readSidebar(locale string) (string, bool, error) {
	path := filepath.Join(locale, SidebarFile)
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), true, nil
	}
	if os.IsNotExist(err) {
		return transform.DefaultSidebar, false, nil
	}
	return "", false, ioError("cannot read sidebar", derrors.ErrFileReadFailed, path, err)
}
