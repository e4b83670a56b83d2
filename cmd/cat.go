package cmd

import (
	"github.com/spf13/cobra"
)

var catOffsetFlag int
var catLimitFlag int

func init() {
	rootCmd.AddCommand(newCatCmd())
}

func newCatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat PATH",
		Short: "Print a project file as numbered lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eng, err := buildEngine()
			if err != nil {
				return err
			}

			content, err := eng.editor.Read(args[0], catOffsetFlag, catLimitFlag)

			return ui.DisplayRead(content, err)
		},
	}

	cmd.Flags().IntVar(&catOffsetFlag, "offset", 1, "1-based line to start from")
	cmd.Flags().IntVar(&catLimitFlag, "limit", 0, "maximum number of lines (0 for all)")

	return cmd
}
