package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	m "github.com/sika7/editor4ai-go/internal/model"
)

// StyledUI implements UI with lipgloss-colored output for terminals.
type StyledUI struct {
	output io.Writer

	pathStyle    lipgloss.Style
	dirStyle     lipgloss.Style
	addedStyle   lipgloss.Style
	removedStyle lipgloss.Style
	contextStyle lipgloss.Style
}

// NewStyledUI creates a new StyledUI writing to output.
func NewStyledUI(output io.Writer) *StyledUI {
	return &StyledUI{
		output:       output,
		pathStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		dirStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		addedStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		removedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		contextStyle: lipgloss.NewStyle().Faint(true),
	}
}

// DisplayRead prints numbered file content or the error.
func (s *StyledUI) DisplayRead(content string, err error) error {
	if err != nil {
		s.printf("read error: %v\n", err)

		return err
	}

	s.printf("%s", content)

	return nil
}

// DisplayMatches prints matches with highlighted paths and faint context.
func (s *StyledUI) DisplayMatches(matches []m.SearchMatch, err error) error {
	if err != nil {
		s.printf("search error: %v\n", err)

		return err
	}

	if len(matches) == 0 {
		s.printf("no matches\n")

		return nil
	}

	for _, match := range matches {
		contextStart := match.Line - len(match.Before)
		for i, line := range match.Before {
			s.printf("%s\n", s.contextStyle.Render(fmt.Sprintf("%s-%d- %s", match.Path, contextStart+i, line)))
		}

		s.printf("%s:%d: %s\n", s.pathStyle.Render(string(match.Path)), match.Line, match.Text)

		for i, line := range match.After {
			s.printf("%s\n", s.contextStyle.Render(fmt.Sprintf("%s-%d- %s", match.Path, match.Line+1+i, line)))
		}
	}

	s.printf("\n%d match(es)\n", len(matches))

	return nil
}

// DisplayTree prints the tree with bold directory names.
func (s *StyledUI) DisplayTree(node m.TreeNode, err error) error {
	if err != nil {
		s.printf("tree error: %v\n", err)

		return err
	}

	s.renderNode(node, 0)

	return nil
}

func (s *StyledUI) renderNode(node m.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)

	if node.Kind == m.NodeDirectory {
		s.printf("%s%s\n", indent, s.dirStyle.Render(node.Name+"/"))
	} else {
		s.printf("%s%s\n", indent, node.Name)
	}

	for _, child := range node.Children {
		s.renderNode(child, depth+1)
	}
}

// DisplayEdit prints the edit confirmation with a colored diff.
func (s *StyledUI) DisplayEdit(result m.EditResult, err error) error {
	if err != nil {
		s.printf("edit error: %v\n", err)

		return err
	}

	s.printf("%s\n", result.Message)

	for _, line := range result.Diff {
		switch line.Kind {
		case m.DiffAdded:
			s.printf("%s\n", s.addedStyle.Render(fmt.Sprintf("+ %4d  %s", line.Line, line.Text)))
		case m.DiffRemoved:
			s.printf("%s\n", s.removedStyle.Render(fmt.Sprintf("- %4d  %s", line.Line, line.Text)))
		case m.DiffEqual:
			s.printf("%s\n", s.contextStyle.Render(fmt.Sprintf("  %4d  %s", line.Line, line.Text)))
		}
	}

	return nil
}

func (s *StyledUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.output, format, args...)
}
