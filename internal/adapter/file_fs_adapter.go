// Package adapter contains infrastructure adapters for the editing engine.
package adapter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	m "github.com/sika7/editor4ai-go/internal/model"
)

// FileFSAdapter abstracts the filesystem operations the domain layer relies
// on. It hides direct `os` access so the engine logic can be exercised
// against a fake in tests without touching the disk.
type FileFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFileAtomic replaces the file at path with content in a single
	// rename, so a concurrent reader never observes a half-written file.
	// perm applies only when the file does not exist yet; an existing
	// file keeps its mode.
	WriteFileAtomic(path m.Path, content []byte, perm os.FileMode) error

	// Stat returns metadata for a path so the domain can check existence
	// or distinguish files from directories.
	Stat(path m.Path) (os.FileInfo, error)

	// ReadDir lists the entries of a directory.
	ReadDir(path m.Path) ([]os.DirEntry, error)

	// WalkDir traverses the tree rooted at root in lexical order.
	WalkDir(root m.Path, fn fs.WalkDirFunc) error

	// EvalSymlinks resolves every symlink in path to its real target.
	EvalSymlinks(path m.Path) (m.Path, error)
}

// LocalFileFSAdapter is the concrete FileFSAdapter backed by the local
// filesystem.
type LocalFileFSAdapter struct{}

// NewLocalFileFSAdapter constructs a LocalFileFSAdapter ready to be wired
// into the engine.
func NewLocalFileFSAdapter() *LocalFileFSAdapter {
	return &LocalFileFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalFileFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFileAtomic writes content to a sibling temp file and renames it over
// the target.
func (a *LocalFileFSAdapter) WriteFileAtomic(path m.Path, content []byte, perm os.FileMode) error {
	target := string(path)

	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(target)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return err
	}

	if _, err := tmp.Write(content); err != nil {
		return cleanup(fmt.Errorf("write temp file: %w", err))
	}

	if err := tmp.Chmod(perm); err != nil {
		return cleanup(fmt.Errorf("chmod temp file: %w", err))
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Stat returns os.FileInfo metadata for the given path.
func (a *LocalFileFSAdapter) Stat(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// ReadDir lists directory entries.
func (a *LocalFileFSAdapter) ReadDir(path m.Path) ([]os.DirEntry, error) {
	return os.ReadDir(string(path))
}

// WalkDir traverses the tree rooted at root.
func (a *LocalFileFSAdapter) WalkDir(root m.Path, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(string(root), fn)
}

// EvalSymlinks resolves symlinks in path.
func (a *LocalFileFSAdapter) EvalSymlinks(path m.Path) (m.Path, error) {
	resolved, err := filepath.EvalSymlinks(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(resolved), nil
}
