package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildManifest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.html":    "---\ntitle: \"x\"\n---\n<p>a</p>",
		"_static/a.css": "body{}",
	})

	m, err := BuildManifest(dir)
	require.NoError(t, err)
	require.Len(t, m.Files, 2)
	assert.Equal(t, "_static/a.css", m.Files[0].Path)
	assert.NotEmpty(t, m.Hash)

	entry, ok := m.Lookup("index.html")
	require.True(t, ok)
	assert.NotEmpty(t, entry.Fingerprint)

	writeFiles(t, dir, map[string]string{"index.html": "---\ntitle: \"y\"\n---\n<p>a</p>"})
	changed, err := BuildManifest(dir)
	require.NoError(t, err)
	assert.NotEqual(t, m.Hash, changed.Hash)
}

func TestBuildManifest_Empty(t *testing.T) {
	a, err := BuildManifest(t.TempDir())
	require.NoError(t, err)
	b, err := BuildManifest(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, a.Files)
	assert.Equal(t, a.Hash, b.Hash)
}
