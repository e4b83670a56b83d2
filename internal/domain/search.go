package domain

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sika7/editor4ai-go/internal/adapter"
	m "github.com/sika7/editor4ai-go/internal/model"
)

const (
	// scanBatchSize is how many files a project scan greps concurrently.
	// Files are batched in path order so results stay deterministic and
	// the match cap can still cut a scan short between batches.
	scanBatchSize = 16

	// maxScanFileSize skips files larger than this during a project scan.
	maxScanFileSize = 1 << 20
)

// Searcher runs pattern scans over a single file or a whole project tree.
// It is read-only and safe to run concurrently with unrelated writes; a
// write landing mid-scan may or may not be reflected in that scan.
type Searcher struct {
	fs      adapter.FileFSAdapter
	sandbox *Sandbox
	log     logrus.FieldLogger
}

// NewSearcher constructs a Searcher confined by the given sandbox.
func NewSearcher(fs adapter.FileFSAdapter, sandbox *Sandbox, log logrus.FieldLogger) *Searcher {
	return &Searcher{fs: fs, sandbox: sandbox, log: ensureLogger(log)}
}

// FileGrep scans one file for pattern. Unlike a tree walk, a direct call
// against an excluded path fails with ErrPathRestricted instead of silently
// skipping it. A binary file yields no matches.
func (s *Searcher) FileGrep(path, pattern string, opts m.SearchOptions) ([]m.SearchMatch, error) {
	safe, err := s.sandbox.Resolve(path)
	if err != nil {
		return nil, err
	}

	if err := s.sandbox.CheckExcluded(safe, opts.Exclude); err != nil {
		return nil, err
	}

	matcher, err := newLineMatcher(pattern, opts)
	if err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(safe)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %q: %w", s.sandbox.Rel(safe), ErrFileNotFound)
		}

		return nil, s.sandbox.WrapError(err, "stat %q", s.sandbox.Rel(safe))
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory, not a file: %w", s.sandbox.Rel(safe), ErrFileNotFound)
	}

	data, err := s.fs.ReadFile(safe)
	if err != nil {
		return nil, s.sandbox.WrapError(err, "read %q", s.sandbox.Rel(safe))
	}

	if isBinary(data) {
		return nil, nil
	}

	return scanLines(s.sandbox.Rel(safe), data, matcher, opts), nil
}

// ProjectGrep walks the tree under rootPath ("" or "/" for the project
// root) and applies the per-file match logic to every included file.
// Excluded and binary files are skipped silently; results are ordered by
// file path and then line number regardless of filesystem enumeration
// order.
func (s *Searcher) ProjectGrep(rootPath, pattern string, opts m.SearchOptions) ([]m.SearchMatch, error) {
	safe, err := s.sandbox.Resolve(rootPath)
	if err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(safe)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("directory %q: %w", s.sandbox.Rel(safe), ErrDirectoryNotFound)
		}

		return nil, s.sandbox.WrapError(err, "stat %q", s.sandbox.Rel(safe))
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory: %w", s.sandbox.Rel(safe), ErrDirectoryNotFound)
	}

	matcher, err := newLineMatcher(pattern, opts)
	if err != nil {
		return nil, err
	}

	files, err := s.collectFiles(safe, opts)
	if err != nil {
		return nil, err
	}

	var results []m.SearchMatch

	for start := 0; start < len(files); start += scanBatchSize {
		end := start + scanBatchSize
		if end > len(files) {
			end = len(files)
		}

		batch := make([][]m.SearchMatch, end-start)

		var g errgroup.Group

		for i, path := range files[start:end] {
			i, path := i, path

			g.Go(func() error {
				batch[i] = s.scanPath(path, matcher, opts)

				return nil
			})
		}

		_ = g.Wait()

		for _, matches := range batch {
			results = append(results, matches...)
		}

		if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
			break
		}
	}

	if opts.MaxResults > 0 && len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	s.log.WithFields(logrus.Fields{"files": len(files), "matches": len(results)}).Debug("project scan finished")

	return results, nil
}

// collectFiles walks the tree and returns the sorted candidate files:
// not excluded, matching the type filter, small enough to scan.
func (s *Searcher) collectFiles(root m.Path, opts m.SearchOptions) ([]m.Path, error) {
	var files []m.Path

	err := s.fs.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if path != string(root) && s.sandbox.IsExcluded(m.Path(path), opts.Exclude) {
				return fs.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if s.sandbox.IsExcluded(m.Path(path), opts.Exclude) {
			return nil
		}

		if !matchesFileType(path, opts.FileTypes) {
			return nil
		}

		if info, err := d.Info(); err == nil && info.Size() > maxScanFileSize {
			return nil
		}

		files = append(files, m.Path(path))

		return nil
	})
	if err != nil {
		return nil, s.sandbox.WrapError(err, "walk %q", s.sandbox.Rel(root))
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// scanPath greps one file during a tree walk. Unreadable and binary files
// are skipped, not fatal.
func (s *Searcher) scanPath(path m.Path, matcher *lineMatcher, opts m.SearchOptions) []m.SearchMatch {
	data, err := s.fs.ReadFile(path)
	if err != nil || isBinary(data) {
		return nil
	}

	return scanLines(s.sandbox.Rel(path), data, matcher, opts)
}

// scanLines applies the matcher to each line, attaching up to opts.Context
// surrounding lines clipped at the file boundaries.
func scanLines(rel m.RelPath, data []byte, matcher *lineMatcher, opts m.SearchOptions) []m.SearchMatch {
	lines, _ := splitDocument(string(data))

	var matches []m.SearchMatch

	for i, line := range lines {
		if opts.MaxResults > 0 && len(matches) >= opts.MaxResults {
			break
		}

		ok, captures := matcher.match(line)
		if !ok {
			continue
		}

		match := m.SearchMatch{
			Path:     rel,
			Line:     i + 1,
			Text:     line,
			Captures: captures,
		}

		if opts.Context > 0 {
			lo := i - opts.Context
			if lo < 0 {
				lo = 0
			}

			hi := i + opts.Context
			if hi > len(lines)-1 {
				hi = len(lines) - 1
			}

			match.Before = append([]string{}, lines[lo:i]...)
			match.After = append([]string{}, lines[i+1:hi+1]...)
		}

		matches = append(matches, match)
	}

	return matches
}

// lineMatcher tests a single line against the compiled pattern.
type lineMatcher struct {
	re      *regexp.Regexp
	literal string
	lower   bool
}

func newLineMatcher(pattern string, opts m.SearchOptions) (*lineMatcher, error) {
	if !opts.Regex {
		literal := pattern
		if !opts.CaseSensitive {
			literal = strings.ToLower(literal)
		}

		return &lineMatcher{literal: literal, lower: !opts.CaseSensitive}, nil
	}

	expr := pattern
	if !opts.CaseSensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	return &lineMatcher{re: re}, nil
}

func (lm *lineMatcher) match(line string) (bool, []string) {
	if lm.re == nil {
		haystack := line
		if lm.lower {
			haystack = strings.ToLower(haystack)
		}

		return strings.Contains(haystack, lm.literal), nil
	}

	if lm.re.NumSubexp() == 0 {
		return lm.re.MatchString(line), nil
	}

	groups := lm.re.FindStringSubmatch(line)
	if groups == nil {
		return false, nil
	}

	return true, groups[1:]
}

// isBinary sniffs for a null byte in the first 512 bytes.
func isBinary(data []byte) bool {
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}

	return bytes.ContainsRune(sample, 0)
}

// matchesFileType applies the extension allow-list; empty allows everything.
func matchesFileType(path string, types []string) bool {
	if len(types) == 0 {
		return true
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	for _, t := range types {
		if strings.TrimPrefix(t, ".") == ext {
			return true
		}
	}

	return false
}
