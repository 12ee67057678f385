package render

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readMeta(t *testing.T, dir string) []Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, MetaFile))
	require.NoError(t, err)
	var docs []Document
	require.NoError(t, json.Unmarshal(data, &docs))
	return docs
}

func TestGoldmarkBuilder_RendersTree(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeTree(t, in, map[string]string{
		"index.rst":           "Getting Started\n===============\n\nWelcome.\n\nInstall\n-------\n\nRun it.\n\n{{ SOURCE_FILE:/en/index.rst }}\n",
		"reference/intro.rst": "Intro\n=====\n",
		"_static/site.css":    "body{}",
	})

	rendered, err := NewGoldmarkBuilder().Build(t.Context(), in, out, Options{Recursive: true})
	require.NoError(t, err)
	require.Len(t, rendered, 2)
	assert.Equal(t, "index.rst", rendered[0].Source)
	assert.Equal(t, filepath.Join(out, "index.html"), rendered[0].Output)
	assert.Equal(t, "reference/intro.rst", rendered[1].Source)
	assert.Equal(t, filepath.Join(out, "reference", "intro.html"), rendered[1].Output)

	page, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, "<title>Getting Started</title>")
	assert.Contains(t, html, "<body>\n")
	assert.Contains(t, html, `<a id="getting-started"></a><h1>Getting Started</h1>`)
	assert.Contains(t, html, `<a id="install"></a><h2>Install</h2>`)
	assert.Contains(t, html, "<p>{{ SOURCE_FILE:/en/index.rst }}</p>")

	css, err := os.ReadFile(filepath.Join(out, "_static", "site.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(css))

	docs := readMeta(t, out)
	require.Len(t, docs, 2)
	assert.Equal(t, "Getting Started", docs[0].Title)
}

func TestGoldmarkBuilder_NonRecursive(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeTree(t, in, map[string]string{"a.rst": "A\n=\n", "sub/b.rst": "B\n=\n"})

	rendered, err := NewGoldmarkBuilder().Build(t.Context(), in, out, Options{})
	require.NoError(t, err)
	require.Len(t, rendered, 1)
	assert.NoFileExists(t, filepath.Join(out, "sub", "b.html"))
}

func TestGoldmarkBuilder_RecreateDropsState(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeTree(t, in, map[string]string{"a.rst": "A\n=\n"})

	b := NewGoldmarkBuilder()
	_, err := b.Build(t.Context(), in, out, Options{Recursive: true})
	require.NoError(t, err)
	_, err = b.Build(t.Context(), in, out, Options{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, readMeta(t, out), 2)
	assert.Len(t, b.Documents(), 2)

	fresh := b.Recreate()
	_, err = fresh.Build(t.Context(), in, out, Options{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, readMeta(t, out), 1)
}

func TestGoldmarkBuilder_CanceledContext(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	writeTree(t, in, map[string]string{"a.rst": "A\n=\n"})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := NewGoldmarkBuilder().Build(ctx, in, out, Options{Recursive: true})
	require.ErrorIs(t, err, context.Canceled)
}

func TestHeadingIDs(t *testing.T) {
	ids := newHeadingIDs()
	assert.Equal(t, "creme-brulee", string(ids.Generate([]byte("Crème Brûlée!"), 0)))
	assert.Equal(t, "creme-brulee-1", string(ids.Generate([]byte("Creme brulee"), 0)))
	assert.Equal(t, "section", string(ids.Generate([]byte("???"), 0)))

	ids.Put([]byte("setup"))
	assert.Equal(t, "setup-1", string(ids.Generate([]byte("Setup"), 0)))
}
