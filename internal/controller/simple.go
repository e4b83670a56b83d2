package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sika7/editor4ai-go/internal/domain"
	m "github.com/sika7/editor4ai-go/internal/model"
)

// SimpleUI implements UI as plain text using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayRead prints numbered file content or the error.
func (s *SimpleUI) DisplayRead(content string, err error) error {
	if err != nil {
		s.printf("read error: %v\n", err)

		return err
	}

	s.printf("%s", content)

	return nil
}

// DisplayMatches prints matches in grep -n form followed by a per-file
// summary table.
func (s *SimpleUI) DisplayMatches(matches []m.SearchMatch, err error) error {
	if err != nil {
		s.printf("search error: %v\n", err)

		return err
	}

	if len(matches) == 0 {
		s.printf("no matches\n")

		return nil
	}

	perFile := make(map[string]int)

	for _, match := range matches {
		perFile[string(match.Path)]++

		contextStart := match.Line - len(match.Before)
		for i, line := range match.Before {
			s.printf("%s-%d- %s\n", match.Path, contextStart+i, line)
		}

		s.printf("%s:%d: %s\n", match.Path, match.Line, match.Text)

		for i, line := range match.After {
			s.printf("%s-%d- %s\n", match.Path, match.Line+1+i, line)
		}
	}

	paths := make([]string, 0, len(perFile))
	for path := range perFile {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Matches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, path := range paths {
		table.Append([]string{path, fmt.Sprintf("%d", perFile[path])})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(paths)),
		fmt.Sprintf("%d", len(matches)),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayTree prints the rendered directory tree or the error.
func (s *SimpleUI) DisplayTree(node m.TreeNode, err error) error {
	if err != nil {
		s.printf("tree error: %v\n", err)

		return err
	}

	s.printf("%s", domain.Render(node))

	return nil
}

// DisplayEdit prints the edit confirmation and its diff, or the error.
func (s *SimpleUI) DisplayEdit(result m.EditResult, err error) error {
	if err != nil {
		s.printf("edit error: %v\n", err)

		return err
	}

	s.printf("%s\n", result.Message)

	if len(result.Diff) > 0 {
		s.printf("%s", domain.FormatDiff(result.Diff))
	}

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
