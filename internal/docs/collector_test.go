package docs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_SourceFilter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.rst":           "",
		"toc.rst":             "",
		"reference/intro.rst": "",
		"reference/toc.rst":   "",
		"images/logo.png":     "",
		"notes.txt":           "",
	})

	files, err := Collector{}.Collect(dir, SourceFilter)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "index.rst"),
		filepath.Join(dir, "reference", "intro.rst"),
	}, files)
}

func TestCollect_NoFilterIsLexical(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"b.html": "", "a/z.html": "", "a.html": ""})

	files, err := Collector{}.Collect(dir, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.html"),
		filepath.Join(dir, "a", "z.html"),
		filepath.Join(dir, "b.html"),
	}, files)
}

func TestCollect_MissingDirectory(t *testing.T) {
	files, err := Collector{}.Collect(filepath.Join(t.TempDir(), "absent"), SourceFilter)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFilter(t *testing.T) {
	f, err := NewFilter([]string{"*.html", "*.css"}, []string{"meta.*"})
	require.NoError(t, err)
	assert.True(t, f.Match("index.html"))
	assert.True(t, f.Match("site.css"))
	assert.False(t, f.Match("meta.html"))
	assert.False(t, f.Match("logo.png"))

	_, err = NewFilter([]string{"[unclosed"}, nil)
	require.Error(t, err)
}

func TestCollect_RelativeDirectoryYieldsAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, filepath.Join(root, "docs"), map[string]string{"index.rst": "", "a/b.rst": ""})
	t.Chdir(root)

	files, err := Collector{}.Collect("docs", SourceFilter)
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f), f)
	}
	want, err := filepath.Abs(filepath.Join("docs", "index.rst"))
	require.NoError(t, err)
	assert.Equal(t, want, files[1])
}
