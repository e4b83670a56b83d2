package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/sika7/editor4ai-go/internal/model"
)

func TestLocalFileFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalFileFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "f.txt")
	content := "line one\nline two\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, content, string(got))
}

func TestLocalFileFSAdapter_WriteFileAtomic(t *testing.T) {
	t.Run("creates a new file with the given mode", func(t *testing.T) {
		adapter := NewLocalFileFSAdapter()

		root := t.TempDir()
		path := filepath.Join(root, "new.txt")

		require.NoError(t, adapter.WriteFileAtomic(m.Path(path), []byte("hello\n"), 0o644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("replaces content and keeps the existing mode", func(t *testing.T) {
		adapter := NewLocalFileFSAdapter()

		root := t.TempDir()
		path := filepath.Join(root, "f.txt")
		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

		require.NoError(t, adapter.WriteFileAtomic(m.Path(path), []byte("new\n"), 0o644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new\n", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		adapter := NewLocalFileFSAdapter()

		root := t.TempDir()
		path := filepath.Join(root, "f.txt")
		require.NoError(t, adapter.WriteFileAtomic(m.Path(path), []byte("x\n"), 0o644))

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "f.txt", entries[0].Name())
	})
}

func TestLocalFileFSAdapter_EvalSymlinks(t *testing.T) {
	adapter := NewLocalFileFSAdapter()

	root := t.TempDir()
	target := filepath.Join(root, "target.txt")
	require.NoError(t, os.WriteFile(target, []byte("x\n"), 0o600))

	link := filepath.Join(root, "link.txt")
	require.NoError(t, os.Symlink(target, link))

	resolved, err := adapter.EvalSymlinks(m.Path(link))
	require.NoError(t, err)

	expected, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, m.Path(expected), resolved)
}

func TestLocalFileFSAdapter_ReadDir(t *testing.T) {
	adapter := NewLocalFileFSAdapter()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o600))

	entries, err := adapter.ReadDir(m.Path(root))
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "b.txt", entries[1].Name())
}
