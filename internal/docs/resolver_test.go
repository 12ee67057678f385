package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsbuild/internal/docs/errors"
	"git.home.luguber.info/inful/docsbuild/internal/foundation/errors"
	"git.home.luguber.info/inful/docsbuild/internal/project"
)

func TestResolve(t *testing.T) {
	f := newFixture(t, map[string]string{"en/index.rst": "Index\n=====\n"})

	paths := f.paths(t)
	assert.Equal(t, filepath.Join(f.root, "site", "docs", "doctrine-orm", "en", "latest"), paths.Staging)
	assert.Equal(t, filepath.Join(f.root, "site", "source", "projects", "doctrine-orm", "en", "latest"), paths.Output)

	want, err := filepath.EvalSymlinks(filepath.Join(f.root, "projects", "orm-repo", "docs"))
	require.NoError(t, err)
	assert.Equal(t, want, paths.Source)
	assert.Equal(t, filepath.Join(want, "en"), paths.LocaleRoot())
}

func TestResolve_FollowsSymlinks(t *testing.T) {
	f := newFixture(t, map[string]string{"en/index.rst": "x"})
	docsDir := filepath.Join(f.root, "projects", "orm-repo", "docs")
	link := filepath.Join(f.root, "projects", "orm-link")
	require.NoError(t, os.Symlink(filepath.Join(f.root, "projects", "orm-repo"), link))
	f.project.RepositoryName = "orm-link"

	paths := f.paths(t)
	want, err := filepath.EvalSymlinks(docsDir)
	require.NoError(t, err)
	assert.Equal(t, want, paths.Source)
}

func TestResolve_MissingSource(t *testing.T) {
	f := newFixture(t, nil)
	f.project.DocsPath = "does-not-exist"

	_, err := f.resolver.Resolve(f.project, f.version)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryResolution))
	assert.ErrorIs(t, err, derrors.ErrSourceUnresolvable)
	assert.Equal(t, errors.SeverityFatal, errors.GetSeverity(err))
}

func TestResolve_RequiresSlugs(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.resolver.Resolve(f.project, project.Version{})
	require.ErrorIs(t, err, derrors.ErrInvalidTarget)
}

func TestHasDocs(t *testing.T) {
	f := newFixture(t, map[string]string{"en/index.rst": "x"})
	assert.True(t, f.resolver.HasDocs(f.project))

	g := newFixture(t, map[string]string{"en/other.rst": "x"})
	assert.False(t, g.resolver.HasDocs(g.project))

	g.project.DocsPath = "missing"
	assert.False(t, g.resolver.HasDocs(g.project))
}

func TestResolve_RejectsSlugsEscapingRoots(t *testing.T) {
	cases := []struct {
		name     string
		docsSlug string
		version  string
	}{
		{"parent docs slug", "../../../etc", "latest"},
		{"nested docs slug", "a/b", "latest"},
		{"dot docs slug", ".", "latest"},
		{"dot version", "doctrine-orm", "."},
		{"parent version", "doctrine-orm", ".."},
		{"backslash version", "doctrine-orm", `x\y`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, map[string]string{"en/index.rst": "x"})
			f.project.DocsSlug = tc.docsSlug

			_, err := f.resolver.Resolve(f.project, project.Version{Slug: tc.version})
			require.Error(t, err)
			assert.ErrorIs(t, err, derrors.ErrInvalidTarget)
			assert.True(t, errors.HasCategory(err, errors.CategoryResolution))
		})
	}
}

func TestStage_DotVersionLeavesSiblingsAlone(t *testing.T) {
	f := newFixture(t, map[string]string{"en/index.rst": "x"})
	sibling := filepath.Join(f.root, "site", "docs", "doctrine-orm", "en", "2.7", "index.rst")
	writeFiles(t, filepath.Dir(sibling), map[string]string{"index.rst": "keep"})

	_, err := NewStager(f.resolver, SourceFilter).Stage(t.Context(), f.project, project.Version{Slug: "."})
	require.ErrorIs(t, err, derrors.ErrInvalidTarget)
	assert.Equal(t, "keep", readString(t, sibling))
}
