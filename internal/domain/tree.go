package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sika7/editor4ai-go/internal/adapter"
	m "github.com/sika7/editor4ai-go/internal/model"
)

// TreeBuilder enumerates a directory recursively under the sandbox
// exclusion rules. Symlinked directories are listed as leaves and never
// followed, so cyclic links cannot recurse forever.
type TreeBuilder struct {
	fs      adapter.FileFSAdapter
	sandbox *Sandbox
	log     logrus.FieldLogger
}

// NewTreeBuilder constructs a TreeBuilder confined by the given sandbox.
func NewTreeBuilder(fs adapter.FileFSAdapter, sandbox *Sandbox, log logrus.FieldLogger) *TreeBuilder {
	return &TreeBuilder{fs: fs, sandbox: sandbox, log: ensureLogger(log)}
}

// Generate builds the tree rooted at path ("" or "/" for the project root),
// skipping every entry that matches the merged exclusion set. Entries are
// name-sorted so output is stable across runs.
func (t *TreeBuilder) Generate(path string, exclude []string) (m.TreeNode, error) {
	safe, err := t.sandbox.Resolve(path)
	if err != nil {
		return m.TreeNode{}, err
	}

	if err := t.sandbox.CheckExcluded(safe, exclude); err != nil {
		return m.TreeNode{}, err
	}

	info, err := t.fs.Stat(safe)
	if err != nil {
		if os.IsNotExist(err) {
			return m.TreeNode{}, fmt.Errorf("directory %q: %w", t.sandbox.Rel(safe), ErrDirectoryNotFound)
		}

		return m.TreeNode{}, t.sandbox.WrapError(err, "stat %q", t.sandbox.Rel(safe))
	}

	if !info.IsDir() {
		return m.TreeNode{}, fmt.Errorf("%q is not a directory: %w", t.sandbox.Rel(safe), ErrDirectoryNotFound)
	}

	name := string(t.sandbox.Rel(safe))

	children, err := t.list(safe, exclude)
	if err != nil {
		return m.TreeNode{}, err
	}

	return m.TreeNode{Name: name, Kind: m.NodeDirectory, Children: children}, nil
}

func (t *TreeBuilder) list(dir m.Path, exclude []string) ([]m.TreeNode, error) {
	entries, err := t.fs.ReadDir(dir)
	if err != nil {
		return nil, t.sandbox.WrapError(err, "list %q", t.sandbox.Rel(dir))
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	nodes := make([]m.TreeNode, 0, len(entries))

	for _, entry := range entries {
		child := m.Path(filepath.Join(string(dir), entry.Name()))
		if t.sandbox.IsExcluded(child, exclude) {
			continue
		}

		// ReadDir does not follow symlinks, so a link to a directory
		// reports as a non-dir and stays a leaf.
		if entry.IsDir() {
			grandchildren, err := t.list(child, exclude)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, m.TreeNode{Name: entry.Name(), Kind: m.NodeDirectory, Children: grandchildren})

			continue
		}

		nodes = append(nodes, m.TreeNode{Name: entry.Name(), Kind: m.NodeFile})
	}

	return nodes, nil
}

// Render serializes a tree as indented text, one entry per line, with
// directories suffixed by a separator.
func Render(node m.TreeNode) string {
	var b strings.Builder

	renderNode(&b, node, 0)

	return b.String()
}

func renderNode(b *strings.Builder, node m.TreeNode, depth int) {
	name := node.Name
	if node.Kind == m.NodeDirectory {
		name += "/"
	}

	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", depth), name)

	for _, child := range node.Children {
		renderNode(b, child, depth+1)
	}
}
