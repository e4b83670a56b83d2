// Package domain implements the sandboxed file-editing and search engine.
package domain

import (
	"errors"
)

// Engine errors. Callers distinguish them with errors.Is; every error leaving
// this package wraps exactly one of these or an underlying OS error.
var (
	// ErrPathEscape indicates a path that resolves outside the project
	// root, via traversal or a symlink.
	ErrPathEscape = errors.New("path escapes project root")

	// ErrPathRestricted indicates a path denied by an exclusion pattern.
	ErrPathRestricted = errors.New("path matches an excluded pattern")

	// ErrFileNotFound indicates a missing file where one was required.
	ErrFileNotFound = errors.New("file not found")

	// ErrDirectoryNotFound indicates a missing directory where one was
	// required.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrInvalidRange indicates an edit batch with malformed or
	// overlapping line ranges. The whole batch is rejected.
	ErrInvalidRange = errors.New("invalid line range")
)
