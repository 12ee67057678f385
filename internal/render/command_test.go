package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandBuilder_RunsPerDocument(t *testing.T) {
	if _, err := os.Stat("/bin/cp"); err != nil {
		t.Skip("cp not available")
	}
	in, out := t.TempDir(), t.TempDir()
	writeTree(t, in, map[string]string{"index.rst": "Title\n=====\n", "guide/setup.rst": "Setup\n"})

	b := NewCommandBuilder([]string{"cp", "{input}", "{output}"}, "")
	rendered, err := b.Build(t.Context(), in, out, Options{Recursive: true})
	require.NoError(t, err)
	require.Len(t, rendered, 2)
	assert.Equal(t, "guide/setup.rst", rendered[0].Source)
	assert.Equal(t, filepath.Join(out, "guide", "setup.html"), rendered[0].Output)

	data, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "Title\n=====\n", string(data))
	assert.Len(t, readMeta(t, out), 2)
}

func TestCommandBuilder_MissingExecutable(t *testing.T) {
	b := NewCommandBuilder([]string{"docsbuild-no-such-renderer", "{input}", "{output}"}, ".html")
	_, err := b.Build(t.Context(), t.TempDir(), t.TempDir(), Options{Recursive: true})
	require.ErrorIs(t, err, ErrRendererNotFound)
}

func TestCommandBuilder_FailingCommand(t *testing.T) {
	if _, err := os.Stat("/bin/false"); err != nil {
		t.Skip("false not available")
	}
	in := t.TempDir()
	writeTree(t, in, map[string]string{"a.rst": "A"})

	b := NewCommandBuilder([]string{"false", "{input}", "{output}"}, ".html")
	_, err := b.Build(t.Context(), in, t.TempDir(), Options{Recursive: true})
	require.ErrorIs(t, err, ErrRenderFailed)
}

func TestCommandBuilder_Recreate(t *testing.T) {
	b := NewCommandBuilder([]string{"cp", "{input}", "{output}"}, ".htm")
	fresh, ok := b.Recreate().(*CommandBuilder)
	require.True(t, ok)
	assert.Equal(t, b.Command, fresh.Command)
	assert.Equal(t, ".htm", fresh.Extension)
	assert.Empty(t, fresh.documents)
}
