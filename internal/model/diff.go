package model

// DiffKind classifies a line in a diff.
type DiffKind string

const (
	// DiffEqual marks a line present in both versions.
	DiffEqual DiffKind = "equal"

	// DiffAdded marks a line present only in the new version.
	DiffAdded DiffKind = "added"

	// DiffRemoved marks a line present only in the old version.
	DiffRemoved DiffKind = "removed"
)

// DiffLine is one line of a line-level diff. Line is the 1-based position of
// the text in the version it belongs to: the new document for equal and added
// lines, the old document for removed lines.
type DiffLine struct {
	Kind DiffKind
	Line int
	Text string
}
