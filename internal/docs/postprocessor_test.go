package docs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsbuild/internal/docs/errors"
	"git.home.luguber.info/inful/docsbuild/internal/frontmatter"
	"git.home.luguber.info/inful/docsbuild/internal/render"
)

func fields(t *testing.T, content string) (map[string]any, string) {
	t.Helper()
	doc, err := frontmatter.Split([]byte(content))
	require.NoError(t, err)
	require.True(t, doc.HasFrontMatter)
	m, err := doc.Fields()
	require.NoError(t, err)
	return m, string(doc.Body)
}

func TestPostProcess_RewritesPagesFromMarkers(t *testing.T) {
	f := newFixture(t, map[string]string{"en/index.rst": "x"})
	paths := f.paths(t)
	writeFiles(t, paths.Output, map[string]string{
		"index.html": "<html><body>\n" +
			`<a id="welcome"></a><h1>Welcome</h1>` + "\n" +
			"<p>{{ SOURCE_FILE:/en/index.rst }}</p>\n</body></html>",
		"reference/page.html": "<html><body><p>No heading</p>\n<p>{{ SOURCE_FILE:/en/reference/page.rst }}</p></body></html>",
		"meta.json":           "[]",
		"reference/meta.php":  "<?php",
		"_static/site.css":    "  body{}  ",
	})

	res, err := NewPostProcessor(f.resolver, testPage()).PostProcess(t.Context(), f.project, f.version, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MetaRemoved)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 4, res.Files)

	assert.NoFileExists(t, filepath.Join(paths.Output, "meta.json"))
	assert.Equal(t, "<?php", readString(t, filepath.Join(paths.Output, "reference", "meta.php")))
	assert.Equal(t, "  body{}  ", readString(t, filepath.Join(paths.Output, "_static", "site.css")))

	index, body := fields(t, readString(t, filepath.Join(paths.Output, "index.html")))
	assert.Equal(t, "Welcome", index["title"])
	assert.Equal(t, "/en/index.rst", index["sourceFile"])
	assert.Equal(t, true, index["docsIndex"])
	assert.Equal(t, "doctrine-orm", index["docsSlug"])
	assert.Equal(t, "latest", index["docsVersion"])
	assert.Contains(t, body, `<h1 class="section-header"><a href="#welcome">Welcome<i class="fas fa-link"></i></a></h1>`)
	assert.NotContains(t, body, "SOURCE_FILE")
	assert.NotContains(t, body, "<body>")

	page, _ := fields(t, readString(t, filepath.Join(paths.Output, "reference", "page.html")))
	assert.Equal(t, "", page["title"])
	assert.Equal(t, false, page["docsIndex"])
	assert.Equal(t, "/en/reference/page.rst", page["sourceFile"])
}

func TestPostProcess_ProvenanceSideChannel(t *testing.T) {
	f := newFixture(t, map[string]string{"en/index.rst": "x"})
	paths := f.paths(t)
	writeFiles(t, paths.Output, map[string]string{"guide.html": "<p>lost marker</p>"})

	provenance := []render.Rendered{{Output: filepath.Join(paths.Output, "guide.html"), Source: "guide.rst"}}
	_, err := NewPostProcessor(f.resolver, testPage()).PostProcess(t.Context(), f.project, f.version, provenance)
	require.NoError(t, err)

	page, _ := fields(t, readString(t, filepath.Join(paths.Output, "guide.html")))
	assert.Equal(t, "/en/guide.rst", page["sourceFile"])
}

func TestPostProcess_MissingMarkerFails(t *testing.T) {
	f := newFixture(t, map[string]string{"en/index.rst": "x"})
	paths := f.paths(t)
	writeFiles(t, paths.Output, map[string]string{"orphan.html": "<p>orphan</p>"})

	_, err := NewPostProcessor(f.resolver, testPage()).PostProcess(t.Context(), f.project, f.version, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, derrors.ErrMissingSourceMarker)
}

func TestPostProcess_MissingOutputDirectory(t *testing.T) {
	f := newFixture(t, map[string]string{"en/index.rst": "x"})

	res, err := NewPostProcessor(f.resolver, testPage()).PostProcess(t.Context(), f.project, f.version, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Files)
}

func TestPostProcess_MetaPatternsOnlyMatchOutputRoot(t *testing.T) {
	f := newFixture(t, map[string]string{"en/index.rst": "x"})
	paths := f.paths(t)
	writeFiles(t, paths.Output, map[string]string{
		"meta.php":            "<?php",
		"reference/meta.html": "<h1>Meta</h1>\n<p>{{ SOURCE_FILE:/en/reference/meta.rst }}</p>",
	})

	pp := NewPostProcessor(f.resolver, testPage())
	pp.MetaPatterns = []string{"meta.*"}
	res, err := pp.PostProcess(t.Context(), f.project, f.version, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MetaRemoved)
	assert.Equal(t, 1, res.Pages)

	assert.NoFileExists(t, filepath.Join(paths.Output, "meta.php"))
	page, _ := fields(t, readString(t, filepath.Join(paths.Output, "reference", "meta.html")))
	assert.Equal(t, "Meta", page["title"])
	assert.Equal(t, "/en/reference/meta.rst", page["sourceFile"])
}
