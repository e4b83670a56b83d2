package cmd

import (
	"github.com/spf13/cobra"
)

var treeExcludeFlag []string

func init() {
	rootCmd.AddCommand(newTreeCmd())
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [PATH]",
		Short: "Show the directory tree of the project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eng, err := buildEngine()
			if err != nil {
				return err
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			node, err := eng.tree.Generate(path, treeExcludeFlag)

			return ui.DisplayTree(node, err)
		},
	}

	cmd.Flags().StringSliceVarP(&treeExcludeFlag, "exclude", "e", nil, "extra exclusion glob patterns for this call")

	return cmd
}
