package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sika7/editor4ai-go/internal/adapter"
	m "github.com/sika7/editor4ai-go/internal/model"
)

// newTestSandbox builds a sandbox over a fresh temp project root.
func newTestSandbox(t *testing.T, patterns []string) (*Sandbox, string) {
	t.Helper()

	root := t.TempDir()

	sandbox, err := NewSandbox(adapter.NewLocalFileFSAdapter(), m.Path(root), patterns, nil)
	require.NoError(t, err)

	return sandbox, string(sandbox.Root())
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(path, 0o750))
}
