package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/sika7/editor4ai-go/internal/model"
)

var grepNoRegexFlag bool
var grepIgnoreCaseFlag bool
var grepContextFlag int
var grepMaxResultsFlag int
var grepTypesFlag []string
var grepExcludeFlag []string

func init() {
	rootCmd.AddCommand(newGrepCmd())
}

func newGrepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grep PATTERN [PATH]",
		Short: "Search file contents within the project",
		Long: `Search a single file or the whole project tree for a pattern.
When PATH names a file, only that file is scanned; when it names a
directory (or is omitted), the tree below it is scanned and excluded
files are skipped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			eng, err := buildEngine()
			if err != nil {
				return err
			}

			pattern := args[0]

			path := ""
			if len(args) > 1 {
				path = args[1]
			}

			opts := m.DefaultSearchOptions()
			opts.Regex = !grepNoRegexFlag
			opts.CaseSensitive = !grepIgnoreCaseFlag
			opts.Context = grepContextFlag
			opts.MaxResults = grepMaxResultsFlag
			opts.FileTypes = grepTypesFlag
			opts.Exclude = grepExcludeFlag

			matches, err := grepTarget(eng, path, pattern, opts)

			return ui.DisplayMatches(matches, err)
		},
	}

	cmd.Flags().BoolVar(&grepNoRegexFlag, "no-regex", false, "match the pattern as a literal substring")
	cmd.Flags().BoolVarP(&grepIgnoreCaseFlag, "ignore-case", "i", false, "case-insensitive matching")
	cmd.Flags().IntVarP(&grepContextFlag, "context", "C", 0, "lines of context around each match")
	cmd.Flags().IntVar(&grepMaxResultsFlag, "max-results", 100, "cap on total matches (0 for unlimited)")
	cmd.Flags().StringSliceVarP(&grepTypesFlag, "type", "t", nil, "file extension allow-list (e.g. go,md)")
	cmd.Flags().StringSliceVarP(&grepExcludeFlag, "exclude", "e", nil, "extra exclusion glob patterns for this call")

	return cmd
}

// grepTarget picks single-file or project-wide scanning based on what the
// path points at.
func grepTarget(eng *engine, path, pattern string, opts m.SearchOptions) ([]m.SearchMatch, error) {
	safe, err := eng.sandbox.Resolve(path)
	if err != nil {
		return nil, err
	}

	if info, err := fsAdapter.Stat(safe); err == nil && !info.IsDir() {
		return eng.searcher.FileGrep(path, pattern, opts)
	}

	return eng.searcher.ProjectGrep(path, pattern, opts)
}
