package descriptor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yml", "interface: second\ndisplay: default\ncomponents: []\n")
	writeFile(t, dir, "a.yaml", "interface: first\ndisplay: default\ncomponents: []\n")
	writeFile(t, dir, "notes.txt", "not a document")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	docs, err := LoadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first", docs[0].Interface)
	assert.Equal(t, "second", docs[1].Interface)
	assert.Equal(t, filepath.Join(dir, "a.yaml"), docs[0].Path)
}

func TestLoadDirFailsAtomically(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "interface: ok\ndisplay: default\ncomponents: []\n")
	writeFile(t, dir, "b.yaml", "interface: broken\ndisplay: grid\ncomponents: []\n")

	docs, err := LoadDir(context.Background(), dir)
	assert.ErrorIs(t, err, ErrIncompleteGrid)
	assert.Nil(t, docs)
}

func TestLoadDirNotDirectory(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.yaml", "interface: a\ndisplay: default\ncomponents: []\n")

	_, err := LoadDir(context.Background(), path)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
