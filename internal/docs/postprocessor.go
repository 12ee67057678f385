package docs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/docsbuild/internal/docs/errors"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/frontmatter"
	"git.home.luguber.info/inful/docsbuild/internal/logfields"
	"git.home.luguber.info/inful/docsbuild/internal/project"
	"git.home.luguber.info/inful/docsbuild/internal/render"
	"git.home.luguber.info/inful/docsbuild/internal/transform"
)

// DefaultMetaPatterns match the renderer's build metadata artifact.
var DefaultMetaPatterns = []string{render.MetaFile}

// PostResult summarizes a post-processing run.
type PostResult struct {
	Files       int // files left in the output directory
	Pages       int // HTML pages rewritten with front matter
	MetaRemoved int
}

// PostProcessor finalizes rendered output in place.
type PostProcessor struct {
	Resolver  *Resolver
	Collector Collector
	// MetaPatterns match renderer artifacts in the output root. Files in
	// subdirectories are content and never match.
	MetaPatterns []string
	// Page holds the constant front-matter fields shared by every page.
	Page frontmatter.Page
}

func NewPostProcessor(resolver *Resolver, page frontmatter.Page) *PostProcessor {
	return &PostProcessor{Resolver: resolver, MetaPatterns: DefaultMetaPatterns, Page: page}
}

// PostProcess removes metadata artifacts from the output directory and
// rewrites every HTML page. provenance is the renderer's output to source
// mapping and may be nil, in which case pages are traced by their marker.
func (pp *PostProcessor) PostProcess(ctx context.Context, p project.Project, v project.Version, provenance []render.Rendered) (PostResult, error) {
	var result PostResult
	paths, err := pp.Resolver.Resolve(p, v)
	if err != nil {
		return result, err
	}

	removed, err := pp.removeMeta(paths.Output)
	result.MetaRemoved = removed
	if err != nil {
		return result, err
	}

	files, err := pp.Collector.Collect(paths.Output, Filter{})
	if err != nil {
		return result, err
	}

	sources := make(map[string]string, len(provenance))
	for _, r := range provenance {
		sources[absPath(r.Output)] = transform.SourcePath(r.Source)
	}

	page := pp.Page
	page.DocsSlug = p.DocsSlug
	page.DocsVersion = v.Slug

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Files++
		if !transform.IsHTML(file) {
			continue
		}

		data, err := readFile(file)
		if err != nil {
			return result, err
		}
		out, err := transform.Post(transform.PostInput{
			Path:       file,
			Content:    string(data),
			Provenance: sources[absPath(file)],
			Page:       page,
		})
		if err != nil {
			return result, errors.BuildError("cannot trace rendered page to its source").
				WithCause(err).
				WithContext("path", file).
				Build()
		}
		if err := writeFile(file, []byte(out.Content)); err != nil {
			return result, err
		}
		result.Pages++
		slog.Debug("Post-processed page", logfields.File(file), logfields.Source(out.SourceFile), slog.String("title", out.Title))
	}

	slog.Info("Post-processed documentation",
		logfields.Project(p.Slug),
		logfields.Version(v.Slug),
		logfields.Count(result.Pages),
		slog.Int("files", result.Files),
		slog.Int("meta_removed", result.MetaRemoved))
	return result, nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (pp *PostProcessor) removeMeta(dir string) (int, error) {
	if len(pp.MetaPatterns) == 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, ioError("cannot list output directory", derrors.ErrDirWalkFailed, dir, err)
	}
	meta := Filter{Include: pp.MetaPatterns}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !meta.Match(e.Name()) {
			continue
		}
		file := filepath.Join(dir, e.Name())
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return removed, ioError("cannot remove metadata artifact", derrors.ErrFileWriteFailed, file, err)
		}
		removed++
		slog.Debug("Removed renderer artifact", logfields.File(file))
	}
	return removed, nil
}
