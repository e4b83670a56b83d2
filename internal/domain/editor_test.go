package domain

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sika7/editor4ai-go/internal/adapter"
	m "github.com/sika7/editor4ai-go/internal/model"
)

func newTestEditor(t *testing.T, patterns []string) (*Editor, string) {
	t.Helper()

	sandbox, root := newTestSandbox(t, patterns)

	return NewEditor(adapter.NewLocalFileFSAdapter(), sandbox, nil), root
}

func TestEditor_Insert(t *testing.T) {
	t.Run("before places content at the addressed line", func(t *testing.T) {
		editor, root := newTestEditor(t, nil)
		writeTestFile(t, filepath.Join(root, "f.txt"), "a\nb\n")

		_, err := editor.Apply("f.txt", []m.EditOperation{m.Insert(1, "X", false)}, false)
		require.NoError(t, err)

		assert.Equal(t, "X\na\nb\n", readTestFile(t, filepath.Join(root, "f.txt")))
	})

	t.Run("after places content below the addressed line", func(t *testing.T) {
		editor, root := newTestEditor(t, nil)
		writeTestFile(t, filepath.Join(root, "f.txt"), "a\nb\n")

		_, err := editor.Apply("f.txt", []m.EditOperation{m.Insert(1, "X", true)}, false)
		require.NoError(t, err)

		assert.Equal(t, "a\nX\nb\n", readTestFile(t, filepath.Join(root, "f.txt")))
	})

	t.Run("multi-line content becomes multiple lines", func(t *testing.T) {
		editor, root := newTestEditor(t, nil)
		writeTestFile(t, filepath.Join(root, "f.txt"), "a\nb\n")

		_, err := editor.Apply("f.txt", []m.EditOperation{m.Insert(2, "X\nY", false)}, false)
		require.NoError(t, err)

		assert.Equal(t, "a\nX\nY\nb\n", readTestFile(t, filepath.Join(root, "f.txt")))
	})
}

func TestEditor_Replace(t *testing.T) {
	editor, root := newTestEditor(t, nil)
	writeTestFile(t, filepath.Join(root, "f.txt"), "a\nb\nc\n")

	t.Run("single line", func(t *testing.T) {
		_, err := editor.Apply("f.txt", []m.EditOperation{m.Replace(2, 2, "B")}, false)
		require.NoError(t, err)

		assert.Equal(t, "a\nB\nc\n", readTestFile(t, filepath.Join(root, "f.txt")))
	})

	t.Run("range collapses to replacement lines", func(t *testing.T) {
		_, err := editor.Apply("f.txt", []m.EditOperation{m.Replace(1, 3, "only")}, false)
		require.NoError(t, err)

		assert.Equal(t, "only\n", readTestFile(t, filepath.Join(root, "f.txt")))
	})
}

func TestEditor_Delete(t *testing.T) {
	editor, root := newTestEditor(t, nil)
	writeTestFile(t, filepath.Join(root, "f.txt"), "a\nb\nc\nd\n")

	_, err := editor.Apply("f.txt", []m.EditOperation{m.Delete(2, 3)}, false)
	require.NoError(t, err)

	assert.Equal(t, "a\nd\n", readTestFile(t, filepath.Join(root, "f.txt")))
}

func TestEditor_DescendingApplication(t *testing.T) {
	// The outcome must not depend on the order operations were submitted.
	batches := [][]m.EditOperation{
		{m.Replace(2, 2, "B"), m.Delete(4, 4)},
		{m.Delete(4, 4), m.Replace(2, 2, "B")},
	}

	for _, batch := range batches {
		editor, root := newTestEditor(t, nil)
		writeTestFile(t, filepath.Join(root, "f.txt"), "a\nb\nc\nd\ne\n")

		_, err := editor.Apply("f.txt", batch, false)
		require.NoError(t, err)

		assert.Equal(t, "a\nB\nc\ne\n", readTestFile(t, filepath.Join(root, "f.txt")))
	}
}

func TestEditor_BatchValidation(t *testing.T) {
	editor, root := newTestEditor(t, nil)
	original := "a\nb\nc\n"
	writeTestFile(t, filepath.Join(root, "f.txt"), original)

	cases := []struct {
		name string
		ops  []m.EditOperation
	}{
		{"empty batch", nil},
		{"mixed kinds", []m.EditOperation{m.Delete(1, 1), m.Replace(2, 2, "B")}},
		{"zero line", []m.EditOperation{m.Replace(0, 1, "x")}},
		{"inverted range", []m.EditOperation{m.Replace(3, 2, "x")}},
		{"past end of file", []m.EditOperation{m.Delete(2, 9)}},
		{"insert past end of file", []m.EditOperation{m.Insert(4, "x", false)}},
		{"overlapping ranges", []m.EditOperation{m.Replace(1, 2, "x"), m.Replace(2, 3, "y")}},
		{"duplicate insert point", []m.EditOperation{m.Insert(2, "x", false), m.Insert(2, "y", true)}},
		{"one valid one overlapping", []m.EditOperation{m.Delete(1, 1), m.Delete(1, 2)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := editor.Apply("f.txt", tc.ops, false)
			require.ErrorIs(t, err, ErrInvalidRange)

			// The whole batch is rejected: the file is untouched.
			assert.Equal(t, original, readTestFile(t, filepath.Join(root, "f.txt")))
		})
	}
}

func TestEditor_PreviewDoesNotMutate(t *testing.T) {
	editor, root := newTestEditor(t, nil)
	path := filepath.Join(root, "f.txt")
	writeTestFile(t, path, "a\nb\n")

	before, err := os.Stat(path)
	require.NoError(t, err)

	result, err := editor.Apply("f.txt", []m.EditOperation{m.Replace(1, 1, "A")}, true)
	require.NoError(t, err)

	assert.True(t, result.Preview)
	assert.NotEmpty(t, result.Diff)
	assert.Contains(t, result.Message, "No changes were written")

	after, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, "a\nb\n", readTestFile(t, path))
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestEditor_ResultMentionsShiftedLines(t *testing.T) {
	editor, root := newTestEditor(t, nil)
	writeTestFile(t, filepath.Join(root, "f.txt"), "a\n")

	result, err := editor.Apply("f.txt", []m.EditOperation{m.Replace(1, 1, "A")}, false)
	require.NoError(t, err)

	assert.Contains(t, result.Message, "re-read the file")
	assert.Equal(t, m.RelPath("f.txt"), result.Path)
}

func TestEditor_TrailingNewlinePreserved(t *testing.T) {
	t.Run("file with trailing newline keeps it", func(t *testing.T) {
		editor, root := newTestEditor(t, nil)
		writeTestFile(t, filepath.Join(root, "f.txt"), "a\nb\n")

		_, err := editor.Apply("f.txt", []m.EditOperation{m.Replace(1, 1, "A")}, false)
		require.NoError(t, err)

		assert.Equal(t, "A\nb\n", readTestFile(t, filepath.Join(root, "f.txt")))
	})

	t.Run("file without trailing newline stays without", func(t *testing.T) {
		editor, root := newTestEditor(t, nil)
		writeTestFile(t, filepath.Join(root, "f.txt"), "a\nb")

		_, err := editor.Apply("f.txt", []m.EditOperation{m.Replace(1, 1, "A")}, false)
		require.NoError(t, err)

		assert.Equal(t, "A\nb", readTestFile(t, filepath.Join(root, "f.txt")))
	})
}

func TestEditor_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		editor, _ := newTestEditor(t, nil)

		_, err := editor.Apply("gone.txt", []m.EditOperation{m.Delete(1, 1)}, false)
		require.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("excluded file", func(t *testing.T) {
		editor, root := newTestEditor(t, []string{"secret/**"})
		writeTestFile(t, filepath.Join(root, "secret", "f.txt"), "a\n")

		_, err := editor.Apply("secret/f.txt", []m.EditOperation{m.Delete(1, 1)}, false)
		require.ErrorIs(t, err, ErrPathRestricted)
	})

	t.Run("escaping path", func(t *testing.T) {
		editor, _ := newTestEditor(t, nil)

		_, err := editor.Apply("../f.txt", []m.EditOperation{m.Delete(1, 1)}, false)
		require.ErrorIs(t, err, ErrPathEscape)
	})
}

func TestEditor_ErrorTextHidesProjectRoot(t *testing.T) {
	editor, root := newTestEditor(t, nil)
	mustMkdir(t, filepath.Join(root, "sub"))

	// Reading a directory fails inside the OS layer, whose error text
	// names the absolute path.
	_, err := editor.Read("sub", 1, 0)
	require.Error(t, err)

	assert.NotContains(t, err.Error(), root)
	assert.Contains(t, err.Error(), `read "sub"`)

	_, err = editor.Apply("sub", []m.EditOperation{m.Delete(1, 1)}, false)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), root)
}

func TestEditor_Read(t *testing.T) {
	editor, root := newTestEditor(t, nil)
	writeTestFile(t, filepath.Join(root, "f.txt"), "a\nb\nc\nd\n")

	t.Run("numbers every line", func(t *testing.T) {
		content, err := editor.Read("f.txt", 0, 0)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[0], "1\ta")
		assert.Contains(t, lines[3], "4\td")
	})

	t.Run("windows by offset and limit", func(t *testing.T) {
		content, err := editor.Read("f.txt", 2, 2)
		require.NoError(t, err)

		assert.Contains(t, content, "2\tb")
		assert.Contains(t, content, "3\tc")
		assert.NotContains(t, content, "4\td")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := editor.Read("gone.txt", 0, 0)
		require.ErrorIs(t, err, ErrFileNotFound)
	})
}
