package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sika7/editor4ai-go/internal/config"
)

func init() {
	rootCmd.AddCommand(newProjectsCmd())
}

func newProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects in the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}

			names := cfg.Names()
			sort.Strings(names)

			for _, name := range names {
				marker := " "
				if name == cfg.CurrentProject {
					marker = "*"
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, name, cfg.Projects[name].Root)
			}

			return nil
		},
	}
}
