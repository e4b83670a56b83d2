package model

// NodeKind distinguishes files from directories in a tree listing.
type NodeKind string

const (
	// NodeFile is a regular file or a symlink (symlinks are never
	// followed, so they always appear as leaves).
	NodeFile NodeKind = "file"

	// NodeDirectory is a directory that was recursed into.
	NodeDirectory NodeKind = "directory"
)

// TreeNode is one entry of a directory tree. Children is nil for files and
// holds the name-sorted entries for directories; an empty directory has a
// non-nil empty slice.
type TreeNode struct {
	Name     string
	Kind     NodeKind
	Children []TreeNode
}
