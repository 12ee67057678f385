package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsbuild/internal/frontmatter"
)

func basePage() frontmatter.Page {
	return frontmatter.Page{
		Layout:      "documentation",
		Indexed:     true,
		MenuSlug:    "projects",
		DocsSlug:    "doctrine-orm",
		DocsPage:    true,
		DocsVersion: "latest",
		Permalink:   "none",
		Controller:  []string{"DocumentationController", "view"},
	}
}

func TestExtractBody(t *testing.T) {
	assert.Equal(t, "Hello", ExtractBody("<html><body>Hello</body></html>"))
	assert.Equal(t, "\nHi\n", ExtractBody("<html><body class=\"x\">\nHi\n</body></html>"))
	assert.Equal(t, "<p>no shell</p>", ExtractBody("<p>no shell</p>"))
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Getting Started", ExtractTitle("<body><h1>Getting <em>Started</em></h1><h1>Other</h1></body>"))
	assert.Equal(t, "", ExtractTitle("<body><h2>Only h2</h2></body>"))
	assert.Equal(t, "A & B", ExtractTitle("<h1>A &amp; B</h1>"))
}

func TestRewriteAnchors(t *testing.T) {
	in := `<a id="intro"></a><h1>Intro</h1>` + "\n" + `<a id="setup"></a><h3>Setup</h3>`
	want := `<a class="section-anchor" id="intro" name="intro"></a><h1 class="section-header"><a href="#intro">Intro<i class="fas fa-link"></i></a></h1>` +
		"\n" +
		`<a class="section-anchor" id="setup" name="setup"></a><h3 class="section-header"><a href="#setup">Setup<i class="fas fa-link"></i></a></h3>`
	assert.Equal(t, want, RewriteAnchors(in))
}

func TestRewriteAnchors_MismatchedLevelUntouched(t *testing.T) {
	in := `<a id="x"></a><h2>Odd</h3>`
	assert.Equal(t, in, RewriteAnchors(in))
}

func TestStripSourceMarker_UsesLast(t *testing.T) {
	content := "<p>{{ SOURCE_FILE:/en/quoted.rst }}</p>\n<p>text</p>\n<p>{{ SOURCE_FILE:/en/index.rst }}</p>\n"
	out, path := StripSourceMarker(content)
	assert.Equal(t, "/en/index.rst", path)
	assert.Equal(t, "<p>{{ SOURCE_FILE:/en/quoted.rst }}</p>\n<p>text</p>\n", out)

	_, path = StripSourceMarker("<p>nothing</p>")
	assert.Empty(t, path)
}

func TestPost_HTMLPage(t *testing.T) {
	rendered := "<!DOCTYPE html>\n<html><head><title>x</title></head><body>\n" +
		`<a id="getting-started"></a><h1>Getting Started</h1>` + "\n" +
		"<p>Welcome.</p>\n" +
		"<p>{{ SOURCE_FILE:/en/index.rst }}</p>\n" +
		"</body></html>\n"

	res, err := Post(PostInput{Path: "/out/index.html", Content: rendered, Page: basePage()})
	require.NoError(t, err)
	assert.True(t, res.Rewritten)
	assert.Equal(t, "Getting Started", res.Title)
	assert.Equal(t, "/en/index.rst", res.SourceFile)
	assert.NotContains(t, res.Content, "SOURCE_FILE")
	assert.NotContains(t, res.Content, "<body>")

	doc, err := frontmatter.Split([]byte(res.Content))
	require.NoError(t, err)
	fields, err := doc.Fields()
	require.NoError(t, err)
	assert.Equal(t, "Getting Started", fields["title"])
	assert.Equal(t, "/en/index.rst", fields["sourceFile"])
	assert.Equal(t, true, fields["docsIndex"])
	assert.Equal(t, "doctrine-orm", fields["docsSlug"])
	assert.True(t, strings.HasPrefix(string(doc.Body), `<a class="section-anchor" id="getting-started"`))
}

func TestPost_NoTitle(t *testing.T) {
	res, err := Post(PostInput{
		Path:    "/out/reference/page.html",
		Content: "<p>Body only</p>\n<p>{{ SOURCE_FILE:/en/reference/page.rst }}</p>",
		Page:    basePage(),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Title)
	assert.Contains(t, res.Content, "title: \"\"\n")
	assert.Contains(t, res.Content, "docsIndex: false\n")
}

func TestPost_ProvenanceWinsOverMarker(t *testing.T) {
	res, err := Post(PostInput{
		Path:       "/out/a.html",
		Content:    "<p>x</p><p>{{ SOURCE_FILE:/en/stale.rst }}</p>",
		Provenance: "/en/a.rst",
		Page:       basePage(),
	})
	require.NoError(t, err)
	assert.Equal(t, "/en/a.rst", res.SourceFile)
	assert.NotContains(t, res.Content, "stale.rst\"")
	assert.NotContains(t, res.Content, "{{ SOURCE_FILE")
}

func TestPost_MissingMarker(t *testing.T) {
	_, err := Post(PostInput{Path: "/out/a.html", Content: "<p>x</p>", Page: basePage()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSourceMarker))
}

func TestPost_NonHTMLPassesThrough(t *testing.T) {
	in := "  body { color: red; }  \n"
	res, err := Post(PostInput{Path: "/out/_static/site.css", Content: in})
	require.NoError(t, err)
	assert.False(t, res.Rewritten)
	assert.Equal(t, in, res.Content)
}

func TestIsIndexPage(t *testing.T) {
	assert.True(t, IsIndexPage("/out/index.html"))
	assert.True(t, IsIndexPage("/out/reference/index.html"))
	assert.False(t, IsIndexPage("/out/genindex.html"))
	assert.False(t, IsIndexPage("/out/index.html.bak"))
}

func TestPost_ControlCharacterTitleStaysValidYAML(t *testing.T) {
	res, err := Post(PostInput{
		Path:    "/out/bell.html",
		Content: "<h1>Bell&#7;Title</h1>\n<p>{{ SOURCE_FILE:/en/bell.rst }}</p>",
		Page:    basePage(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bell\aTitle", res.Title)

	doc, err := frontmatter.Split([]byte(res.Content))
	require.NoError(t, err)
	fields, err := doc.Fields()
	require.NoError(t, err)
	assert.Equal(t, "Bell\aTitle", fields["title"])
	assert.Equal(t, false, fields["docsIndex"])
}
