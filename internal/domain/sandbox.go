package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"github.com/sika7/editor4ai-go/internal/adapter"
	m "github.com/sika7/editor4ai-go/internal/model"
)

// Sandbox confines every path the engine touches to a single project root
// and evaluates exclusion patterns against it. All other components resolve
// caller-supplied paths through it before reaching the disk; resolution is
// repeated on every call because the filesystem may change between calls.
type Sandbox struct {
	fs       adapter.FileFSAdapter
	root     string
	patterns []string
	log      logrus.FieldLogger
}

// NewSandbox constructs a Sandbox for the given project root. patterns is
// the merged global + per-project exclusion set; a match by any pattern
// denies the path. The root must exist and be a directory.
func NewSandbox(fs adapter.FileFSAdapter, root m.Path, patterns []string, log logrus.FieldLogger) (*Sandbox, error) {
	abs, err := filepath.Abs(string(root))
	if err != nil {
		return nil, fmt.Errorf("project root %q: %w", root, err)
	}

	resolved, err := fs.EvalSymlinks(m.Path(abs))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("project root %q: %w", root, ErrDirectoryNotFound)
		}

		return nil, fmt.Errorf("project root %q: %w", root, err)
	}

	info, err := fs.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("project root %q: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("project root %q is not a directory: %w", root, ErrDirectoryNotFound)
	}

	return &Sandbox{
		fs:       fs,
		root:     string(resolved),
		patterns: patterns,
		log:      ensureLogger(log),
	}, nil
}

// Root returns the canonical absolute project root.
func (s *Sandbox) Root() m.Path {
	return m.Path(s.root)
}

// Resolve converts a caller-supplied logical path into an absolute path that
// is guaranteed to lie inside the project root. The logical root "/" (and the
// empty path) map to the project root itself; other absolute inputs are
// accepted when they already lie under the root and are otherwise treated as
// root-relative. Any ".." segment fails with ErrPathEscape, as does a symlink
// whose real target lies outside the root.
func (s *Sandbox) Resolve(input string) (m.Path, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || trimmed == "/" || trimmed == "." {
		return m.Path(s.root), nil
	}

	if containsParentSegment(trimmed) {
		return "", fmt.Errorf("path %q: %w", input, ErrPathEscape)
	}

	rel := trimmed
	if filepath.IsAbs(trimmed) {
		cleaned := filepath.Clean(trimmed)
		if within(s.root, cleaned) {
			rel, _ = filepath.Rel(s.root, cleaned)
		} else {
			// Treat the input as logical, anchored at the project
			// root rather than the host filesystem.
			rel = strings.TrimPrefix(cleaned, string(filepath.Separator))
		}
	}

	joined := filepath.Join(s.root, rel)
	if !within(s.root, joined) {
		return "", fmt.Errorf("path %q: %w", input, ErrPathEscape)
	}

	resolved, err := s.realpath(joined)
	if err != nil {
		return "", err
	}

	if !within(s.root, resolved) {
		s.log.WithField("path", input).Debug("rejected path escaping project root")

		return "", fmt.Errorf("path %q: %w", input, ErrPathEscape)
	}

	return m.Path(resolved), nil
}

// realpath resolves symlinks in path. A path that does not exist yet is
// resolved through its nearest existing ancestor so the escape check still
// sees the real location.
func (s *Sandbox) realpath(path string) (string, error) {
	resolved, err := s.fs.EvalSymlinks(m.Path(path))
	if err == nil {
		return string(resolved), nil
	}

	if !os.IsNotExist(err) {
		return "", s.WrapError(err, "resolve %q", s.Rel(m.Path(path)))
	}

	parent, err := s.realpath(filepath.Dir(path))
	if err != nil {
		return "", err
	}

	return filepath.Join(parent, filepath.Base(path)), nil
}

// IsExcluded reports whether path matches the sandbox exclusion set merged
// with the extra per-call patterns. Matching is case-sensitive and
// path-segment aware: `*` stays within a segment, `**` crosses segments, and
// a pattern without a separator matches any single segment of the path.
func (s *Sandbox) IsExcluded(path m.Path, extra []string) bool {
	rel := filepath.ToSlash(string(s.Rel(path)))

	for _, group := range [][]string{s.patterns, extra} {
		for _, pattern := range group {
			if matchPattern(filepath.ToSlash(pattern), rel) {
				return true
			}
		}
	}

	return false
}

// CheckExcluded is IsExcluded as a guard: it fails with ErrPathRestricted
// instead of returning a boolean.
func (s *Sandbox) CheckExcluded(path m.Path, extra []string) error {
	if s.IsExcluded(path, extra) {
		s.log.WithField("path", string(s.Rel(path))).Debug("rejected excluded path")

		return fmt.Errorf("path %q: %w", s.Rel(path), ErrPathRestricted)
	}

	return nil
}

// Rel converts an absolute path inside the root to its project-relative
// form. The root itself maps to ".".
func (s *Sandbox) Rel(path m.Path) m.RelPath {
	rel, err := filepath.Rel(s.root, string(path))
	if err != nil || strings.HasPrefix(rel, "..") {
		return m.RelPath(path)
	}

	return m.RelPath(rel)
}

// ToRelative rewrites every occurrence of the absolute project root inside
// text (including inside embedded JSON) with a relative marker so responses
// never reveal the host filesystem layout. This is a plain textual rewrite,
// not a path-aware one: an incidental substring equal to the root is
// rewritten too.
func (s *Sandbox) ToRelative(text string) string {
	text = strings.ReplaceAll(text, s.root+string(filepath.Separator), "")

	return strings.ReplaceAll(text, s.root, ".")
}

// WrapError prefixes err with a formatted message and rewrites any
// occurrence of the absolute project root in its text via ToRelative, so
// wrapped OS errors never reveal the host layout. The original err stays
// reachable through errors.Is and errors.As.
func (s *Sandbox) WrapError(err error, format string, args ...interface{}) error {
	prefix := fmt.Sprintf(format, args...)

	return &redactedError{
		msg:   prefix + ": " + s.ToRelative(err.Error()),
		cause: err,
	}
}

// redactedError carries a sanitized message while keeping the original
// error chain intact.
type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.cause }

func matchPattern(pattern, rel string) bool {
	if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
		return true
	}

	if strings.Contains(pattern, "/") {
		return false
	}

	for _, segment := range strings.Split(rel, "/") {
		if ok, err := doublestar.Match(pattern, segment); err == nil && ok {
			return true
		}
	}

	return false
}

func containsParentSegment(path string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return true
		}
	}

	return false
}

func within(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}
