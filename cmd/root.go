// Package cmd provides the root command and CLI setup for editor4ai.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sika7/editor4ai-go/internal/adapter"
	"github.com/sika7/editor4ai-go/internal/config"
	"github.com/sika7/editor4ai-go/internal/controller"
	"github.com/sika7/editor4ai-go/internal/domain"
	m "github.com/sika7/editor4ai-go/internal/model"
)

var fsAdapter adapter.FileFSAdapter
var log *logrus.Logger
var ui controller.UI

func init() {
	fsAdapter = adapter.NewLocalFileFSAdapter()
	log = logrus.New()
	log.SetLevel(logrus.WarnLevel)
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

var configFlag string
var projectFlag string
var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editor4ai",
		Short: "Sandboxed file editing and search for AI agents",
		Long: `editor4ai lets an automation client inspect and mutate files inside a
single project directory without ever reaching outside it. Every path is
resolved against the project root and checked against exclusion patterns
before it touches the disk.

Projects are declared in a YAML registry (default ./editor4ai.yaml or
~/.config/editor4ai/config.yaml):

  current_project: myapp
  excluded: [".git/**", "node_modules/**"]
  projects:
    myapp:
      root: /path/to/myapp
      excluded: ["dist/**"]`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verboseFlag {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to the project registry")
	cmd.PersistentFlags().StringVarP(&projectFlag, "project", "P", "", "project name (defaults to current_project)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	return cmd
}

// engine bundles the components built for one resolved project.
type engine struct {
	sandbox  *domain.Sandbox
	editor   *domain.Editor
	searcher *domain.Searcher
	tree     *domain.TreeBuilder
}

// buildEngine resolves the selected project from the registry and constructs
// the sandboxed components for it.
func buildEngine() (*engine, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}

	root, excluded, err := cfg.Project(projectFlag)
	if err != nil {
		return nil, err
	}

	sandbox, err := domain.NewSandbox(fsAdapter, m.Path(root), excluded, log)
	if err != nil {
		return nil, err
	}

	return &engine{
		sandbox:  sandbox,
		editor:   domain.NewEditor(fsAdapter, sandbox, log),
		searcher: domain.NewSearcher(fsAdapter, sandbox, log),
		tree:     domain.NewTreeBuilder(fsAdapter, sandbox, log),
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
