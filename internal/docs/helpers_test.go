package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsbuild/internal/frontmatter"
	"git.home.luguber.info/inful/docsbuild/internal/project"
	"git.home.luguber.info/inful/docsbuild/internal/render"
)

type fixture struct {
	root     string
	resolver *Resolver
	project  project.Project
	version  project.Version
}

func newFixture(t *testing.T, sources map[string]string) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root: root,
		resolver: NewResolver(
			filepath.Join(root, "projects"),
			filepath.Join(root, "site", "source"),
			filepath.Join(root, "site", "docs"),
		),
		project: project.Project{
			Slug:           "orm",
			DocsSlug:       "doctrine-orm",
			RepositoryName: "orm-repo",
			DocsPath:       "docs",
			Dialect:        project.DialectCurrent,
		},
		version: project.Version{Slug: "latest"},
	}
	writeFiles(t, filepath.Join(root, "projects", "orm-repo", "docs"), sources)
	return f
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func (f *fixture) paths(t *testing.T) Paths {
	t.Helper()
	paths, err := f.resolver.Resolve(f.project, f.version)
	require.NoError(t, err)
	return paths
}

func readString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func testPage() frontmatter.Page {
	return frontmatter.Page{
		Layout:     "documentation",
		Indexed:    true,
		MenuSlug:   "projects",
		DocsPage:   true,
		Permalink:  "none",
		Controller: []string{"DocumentationController", "view"},
	}
}

// fakeBuilder records calls and writes canned pages.
type fakeBuilder struct {
	recreated *int
	pages     map[string]string // output rel -> content
	sources   map[string]string // output rel -> source rel
	err       error
}

func (b *fakeBuilder) Recreate() render.Builder {
	*b.recreated++
	return b
}

func (b *fakeBuilder) Build(_ context.Context, _, outputDir string, _ render.Options) ([]render.Rendered, error) {
	if b.err != nil {
		return nil, b.err
	}
	var out []render.Rendered
	for rel, content := range b.pages {
		path := filepath.Join(outputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, err
		}
		if src, ok := b.sources[rel]; ok {
			out = append(out, render.Rendered{Output: path, Source: src})
		}
	}
	return out, nil
}
