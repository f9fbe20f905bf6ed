package commands

import (
	"github.com/spf13/cobra"

	"ctf/internal/cli"
	"ctf/internal/config"
	"ctf/internal/execution"
	"ctf/internal/parser"
	"ctf/internal/registry"
	"ctf/internal/storage"
	"ctf/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Classify *ClassifyCommand
	List     *ListCommand
	View     *ViewCommand
	History  *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	statusParser := parser.NewStatusParser()
	loader := registry.NewXMLLoader()
	runner := execution.NewRunner()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	browser := ui.NewSectionBrowser()

	return &Commands{
		Classify: NewClassifyCommand(cfg, statusParser, loader, runner, jsonStorage, formatter, openMySQL),
		List:     NewListCommand(cfg, jsonStorage, formatter),
		View:     NewViewCommand(jsonStorage, browser),
		History:  NewHistoryCommand(cfg, formatter, openMySQL),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Update config with flags after parsing
	applyFlags := func(cmd *cobra.Command, args []string) error {
		return cfg.Apply(flags.ToConfigFlags())
	}

	// Classify command
	classifyCmd := &cobra.Command{
		Use:     "classify [report...]",
		Short:   "Classify test suite status reports",
		Long:    "Remove expected failures, split FAIL into its sub-check categories and write the summary report. Without arguments the status reports in the test root are classified.",
		RunE:    c.Classify.Execute,
		PreRunE: applyFlags,
	}
	classifyCmd.Flags().StringVarP(&flags.TestInfo, "test-info", "f", "", "YAML file describing the test suite run")
	classifyCmd.Flags().BoolVarP(&flags.Detailed, "detailed", "d", false, "Write a detailed report with namelist and history diagnostics")
	classifyCmd.Flags().StringVar(&flags.Machine, "machine", "", "Machine the tests ran on")
	classifyCmd.Flags().StringVar(&flags.Compiler, "compiler", "", "Compiler the tests were built with")
	classifyCmd.Flags().StringVarP(&flags.ExpectedFail, "expected-fail", "x", "", "Expected failures XML file")
	classifyCmd.Flags().StringVarP(&flags.TestRoot, "test-root", "t", "", "Directory holding the test cases and status reports")
	classifyCmd.Flags().StringVar(&flags.Baseline, "baseline", "", "Baseline tag the tests were compared against")
	classifyCmd.Flags().StringVar(&flags.BaselineRoot, "baseline-root", "", "Directory holding the baselines")
	classifyCmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Summary file (default test-summary.<name>.txt in the test root)")
	classifyCmd.Flags().BoolVar(&flags.History, "history", false, "Record the run in the MySQL run history")
	rootCmd.AddCommand(classifyCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List the sections of the last run",
		Long:    "Print the classified sections saved by the last classify run",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.Section, "section", "s", "", "Only print this section (e.g. fail, nlcomp, compare_hist)")
	listCmd.Flags().BoolVar(&flags.All, "all", false, "Include passing tests and empty sections")
	rootCmd.AddCommand(listCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:     "view",
		Short:   "Browse the last run interactively",
		Long:    "Display the classified tests of the last run in an interactive viewer",
		RunE:    c.View.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(viewCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recorded classify runs",
		Long:    "List the runs recorded in the MySQL run history, newest first",
		RunE:    c.History.Execute,
		PreRunE: applyFlags,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", config.DefaultHistoryLimit, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
