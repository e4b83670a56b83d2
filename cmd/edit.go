package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/sika7/editor4ai-go/internal/model"
)

var editPreviewFlag bool
var editAfterFlag bool
var editLineFlag int
var editStartFlag int
var editEndFlag int
var editContentFlag string

func init() {
	rootCmd.AddCommand(newEditCmd())
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Apply line-addressed edits to a project file",
		Long: `Edit a file by 1-based line number. The file must already exist.
With --preview the resulting diff is shown and nothing is written.
Line numbers shift after every applied edit; re-read the file before
editing it again.`,
	}

	cmd.PersistentFlags().BoolVar(&editPreviewFlag, "preview", false, "show the diff without writing the file")

	cmd.AddCommand(newInsertCmd(), newReplaceCmd(), newDeleteCmd())

	return cmd
}

func newInsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert PATH",
		Short: "Insert content before or after a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEdit(args[0], m.Insert(editLineFlag, editContentFlag, editAfterFlag))
		},
	}

	cmd.Flags().IntVarP(&editLineFlag, "line", "l", 0, "1-based line to insert at")
	cmd.Flags().BoolVar(&editAfterFlag, "after", false, "insert after the line instead of before it")
	cmd.Flags().StringVar(&editContentFlag, "content", "", "content to insert (may be multi-line)")
	_ = cmd.MarkFlagRequired("line")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func newReplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace PATH",
		Short: "Replace an inclusive line range with new content",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEdit(args[0], m.Replace(editStartFlag, editEndFlag, editContentFlag))
		},
	}

	cmd.Flags().IntVar(&editStartFlag, "start", 0, "first line of the range")
	cmd.Flags().IntVar(&editEndFlag, "end", 0, "last line of the range")
	cmd.Flags().StringVar(&editContentFlag, "content", "", "replacement content (may be multi-line)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete PATH",
		Short: "Delete an inclusive line range",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEdit(args[0], m.Delete(editStartFlag, editEndFlag))
		},
	}

	cmd.Flags().IntVar(&editStartFlag, "start", 0, "first line of the range")
	cmd.Flags().IntVar(&editEndFlag, "end", 0, "last line of the range")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runEdit(path string, op m.EditOperation) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	result, err := eng.editor.Apply(path, []m.EditOperation{op}, editPreviewFlag)

	return ui.DisplayEdit(result, err)
}
