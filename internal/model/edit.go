package model

// EditKind identifies the variant of an edit operation.
type EditKind string

const (
	// EditInsert places new lines before or after an existing line.
	EditInsert EditKind = "insert"

	// EditReplace substitutes an inclusive line range with new content.
	EditReplace EditKind = "replace"

	// EditDelete removes an inclusive line range.
	EditDelete EditKind = "delete"
)

// EditOperation is one unit of an edit batch. Kind selects the variant and
// decides which fields are meaningful; the constructors below are the only
// supported way to build one. Line numbers are 1-based.
type EditOperation struct {
	Kind EditKind

	// StartLine is the insertion point for inserts and the first line of
	// the range for replace/delete.
	StartLine int

	// EndLine is the last line of the range for replace/delete. Unused by
	// inserts.
	EndLine int

	// Content holds the new text for insert/replace. Multi-line content is
	// split on newlines when applied.
	Content string

	// After places inserted content after StartLine instead of before it.
	After bool
}

// Insert builds an insert operation at the given line. When after is false
// the new content becomes line atLine; when true it lands just below it.
func Insert(atLine int, content string, after bool) EditOperation {
	return EditOperation{Kind: EditInsert, StartLine: atLine, EndLine: atLine, Content: content, After: after}
}

// Replace builds a replace operation covering startLine..endLine inclusive.
func Replace(startLine, endLine int, content string) EditOperation {
	return EditOperation{Kind: EditReplace, StartLine: startLine, EndLine: endLine, Content: content}
}

// Delete builds a delete operation covering startLine..endLine inclusive.
func Delete(startLine, endLine int) EditOperation {
	return EditOperation{Kind: EditDelete, StartLine: startLine, EndLine: endLine}
}

// EditResult describes the outcome of applying an edit batch.
type EditResult struct {
	// Path is the edited file, relative to the project root.
	Path RelPath

	// Preview reports whether the batch ran in preview mode (nothing was
	// written to disk).
	Preview bool

	// Diff is the line diff between the original and edited document.
	Diff []DiffLine

	// Message carries the human-readable confirmation. It always reminds
	// the caller that line numbers have shifted and the file must be
	// re-read before the next edit.
	Message string
}
