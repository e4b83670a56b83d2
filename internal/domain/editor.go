package domain

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sika7/editor4ai-go/internal/adapter"
	m "github.com/sika7/editor4ai-go/internal/model"
)

// editCaution is appended to every edit response. Callers must not chain
// edits against stale line numbers.
const editCaution = "Line numbers have shifted; re-read the file before issuing another edit against it."

// Editor mutates a file through batches of line-addressed operations. A
// batch holds operations of a single kind and is applied all-or-nothing: a
// single malformed or overlapping range rejects the whole batch before any
// mutation is computed.
type Editor struct {
	fs      adapter.FileFSAdapter
	sandbox *Sandbox
	log     logrus.FieldLogger
}

// NewEditor constructs an Editor confined by the given sandbox.
func NewEditor(fs adapter.FileFSAdapter, sandbox *Sandbox, log logrus.FieldLogger) *Editor {
	return &Editor{fs: fs, sandbox: sandbox, log: ensureLogger(log)}
}

// Apply runs one batch of same-kind operations against the file at path.
// The file must already exist; creating files is a plain write concern, not
// an edit. In preview mode the resulting document is diffed against the
// original and discarded; otherwise it is persisted with an atomic replace.
func (e *Editor) Apply(path string, ops []m.EditOperation, preview bool) (m.EditResult, error) {
	safe, err := e.sandbox.Resolve(path)
	if err != nil {
		return m.EditResult{}, err
	}

	if err := e.sandbox.CheckExcluded(safe, nil); err != nil {
		return m.EditResult{}, err
	}

	data, err := e.fs.ReadFile(safe)
	if err != nil {
		if os.IsNotExist(err) {
			return m.EditResult{}, fmt.Errorf("file %q: %w", e.sandbox.Rel(safe), ErrFileNotFound)
		}

		return m.EditResult{}, e.sandbox.WrapError(err, "read %q", e.sandbox.Rel(safe))
	}

	doc, trailingNewline := splitDocument(string(data))

	if err := validateBatch(ops, len(doc)); err != nil {
		return m.EditResult{}, err
	}

	edited := applyBatch(doc, ops)
	diff := DiffLines(doc, edited)
	rel := e.sandbox.Rel(safe)

	if preview {
		return m.EditResult{
			Path:    rel,
			Preview: true,
			Diff:    diff,
			Message: fmt.Sprintf("Preview of %d operation(s) against %q. No changes were written. %s", len(ops), rel, editCaution),
		}, nil
	}

	if err := e.fs.WriteFileAtomic(safe, []byte(joinDocument(edited, trailingNewline)), 0o644); err != nil {
		return m.EditResult{}, e.sandbox.WrapError(err, "write %q", rel)
	}

	e.log.WithFields(logrus.Fields{"path": string(rel), "operations": len(ops)}).Debug("applied edit batch")

	return m.EditResult{
		Path:    rel,
		Preview: false,
		Diff:    diff,
		Message: fmt.Sprintf("Applied %d operation(s) to %q. %s", len(ops), rel, editCaution),
	}, nil
}

// Read returns the file at path as numbered lines, optionally windowed by a
// 1-based offset and a line limit (limit <= 0 means to the end).
func (e *Editor) Read(path string, offset, limit int) (string, error) {
	safe, err := e.sandbox.Resolve(path)
	if err != nil {
		return "", err
	}

	if err := e.sandbox.CheckExcluded(safe, nil); err != nil {
		return "", err
	}

	data, err := e.fs.ReadFile(safe)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file %q: %w", e.sandbox.Rel(safe), ErrFileNotFound)
		}

		return "", e.sandbox.WrapError(err, "read %q", e.sandbox.Rel(safe))
	}

	doc, _ := splitDocument(string(data))

	if offset < 1 {
		offset = 1
	}

	start := offset - 1
	if start > len(doc) {
		start = len(doc)
	}

	end := len(doc)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var b strings.Builder

	for i := start; i < end; i++ {
		fmt.Fprintf(&b, "%6d\t%s\n", i+1, doc[i])
	}

	return b.String(), nil
}

// splitDocument turns file content into 1-based addressable lines. A final
// newline delimits the last line rather than opening an empty one; whether
// it was present is preserved so a round-trip does not grow the file.
func splitDocument(content string) (lines []string, trailingNewline bool) {
	trailingNewline = strings.HasSuffix(content, "\n")
	if trailingNewline {
		content = strings.TrimSuffix(content, "\n")
	}

	return strings.Split(content, "\n"), trailingNewline
}

// joinDocument is the inverse of splitDocument.
func joinDocument(lines []string, trailingNewline bool) string {
	joined := strings.Join(lines, "\n")
	if trailingNewline {
		joined += "\n"
	}

	return joined
}

// splitContent splits operation content into the lines it contributes. One
// trailing newline is forgiven so "X\n" inserts a single line, not two.
func splitContent(content string) []string {
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func validateBatch(ops []m.EditOperation, lineCount int) error {
	if len(ops) == 0 {
		return fmt.Errorf("empty batch: %w", ErrInvalidRange)
	}

	kind := ops[0].Kind

	type span struct{ start, end int }

	spans := make([]span, 0, len(ops))

	for _, op := range ops {
		if op.Kind != kind {
			return fmt.Errorf("mixed operation kinds %q and %q in one batch: %w", kind, op.Kind, ErrInvalidRange)
		}

		switch op.Kind {
		case m.EditInsert:
			if op.StartLine < 1 || op.StartLine > lineCount {
				return fmt.Errorf("insert at line %d outside 1..%d: %w", op.StartLine, lineCount, ErrInvalidRange)
			}

			spans = append(spans, span{op.StartLine, op.StartLine})
		case m.EditReplace, m.EditDelete:
			if op.StartLine < 1 || op.EndLine < op.StartLine || op.EndLine > lineCount {
				return fmt.Errorf("%s range %d..%d outside 1..%d: %w", op.Kind, op.StartLine, op.EndLine, lineCount, ErrInvalidRange)
			}

			spans = append(spans, span{op.StartLine, op.EndLine})
		default:
			return fmt.Errorf("unknown operation kind %q: %w", op.Kind, ErrInvalidRange)
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	for i := 1; i < len(spans); i++ {
		if spans[i].start <= spans[i-1].end {
			return fmt.Errorf("overlapping ranges %d..%d and %d..%d: %w",
				spans[i-1].start, spans[i-1].end, spans[i].start, spans[i].end, ErrInvalidRange)
		}
	}

	return nil
}

// applyBatch applies a validated batch against a snapshot of the document.
// Operations are sorted by starting line descending and applied back to
// front, so every operation keeps addressing original line numbers and no
// renumbering is needed mid-batch. The input slice is not modified.
func applyBatch(doc []string, ops []m.EditOperation) []string {
	ordered := make([]m.EditOperation, len(ops))
	copy(ordered, ops)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].StartLine > ordered[j].StartLine })

	out := make([]string, len(doc))
	copy(out, doc)

	for _, op := range ordered {
		switch op.Kind {
		case m.EditInsert:
			at := op.StartLine - 1
			if op.After {
				at = op.StartLine
			}

			lines := splitContent(op.Content)
			out = append(out[:at], append(append([]string{}, lines...), out[at:]...)...)
		case m.EditReplace:
			lines := splitContent(op.Content)
			out = append(out[:op.StartLine-1], append(append([]string{}, lines...), out[op.EndLine:]...)...)
		case m.EditDelete:
			out = append(out[:op.StartLine-1], out[op.EndLine:]...)
		}
	}

	return out
}
