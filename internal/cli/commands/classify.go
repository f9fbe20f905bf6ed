package commands

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ctf/internal/classify"
	"ctf/internal/config"
	"ctf/internal/diagnostics"
	"ctf/internal/discovery"
	"ctf/internal/domain"
	"ctf/internal/execution"
	"ctf/internal/parser"
	"ctf/internal/registry"
	"ctf/internal/report"
	"ctf/internal/storage"
	"ctf/internal/ui"
)

// HistoryOpener connects to the run history store
type HistoryOpener func(cfg config.DatabaseConfig) (storage.HistoryStore, error)

func openMySQL(cfg config.DatabaseConfig) (storage.HistoryStore, error) {
	return storage.OpenMySQL(cfg)
}

// ClassifyCommand handles the classify command
type ClassifyCommand struct {
	config      *config.Config
	parser      parser.Parser
	loader      registry.Loader
	executor    execution.Executor
	storage     storage.Storage
	formatter   *ui.Formatter
	openHistory HistoryOpener
}

// NewClassifyCommand creates a new ClassifyCommand
func NewClassifyCommand(
	cfg *config.Config,
	p parser.Parser,
	loader registry.Loader,
	executor execution.Executor,
	st storage.Storage,
	formatter *ui.Formatter,
	openHistory HistoryOpener,
) *ClassifyCommand {
	return &ClassifyCommand{
		config:      cfg,
		parser:      p,
		loader:      loader,
		executor:    executor,
		storage:     st,
		formatter:   formatter,
		openHistory: openHistory,
	}
}

// Execute runs the command
func (cc *ClassifyCommand) Execute(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg := cc.config

	if err := cfg.Validate(); err != nil {
		return err
	}

	reports, err := cc.findReports(args)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		color.Yellow("No status reports to classify")
		return nil
	}

	reg, err := cc.loader.Load(cfg.ExpectedFail, cfg.Machine, cfg.Compiler)
	if err != nil {
		return fmt.Errorf("failed to load expected failures: %w", err)
	}

	detailed := cfg.Flags.Detailed
	classifier := classify.NewClassifier(cc.diagnoser(), detailed)
	renderer := report.NewRenderer(detailed, execution.NewRebuilder(cc.executor, cfg.GetTestRoot()))

	summaryPath := cfg.GetSummaryPath()
	color.Cyan("Writing failure summary to: %s", summaryPath)
	file, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()
	out := bufio.NewWriter(file)

	run := &domain.RunSummary{}
	progress := ui.NewProgressBar(len(reports))
	clean, failing := 0, 0

	for _, path := range reports {
		status, err := cc.parser.ParseFile(path)
		if err != nil {
			return err
		}

		res := classifier.Classify(status, reg)
		header := report.Header{ReportPath: path, RegistryPath: cfg.ExpectedFail, Tests: len(status.Lines)}
		if err := renderer.Render(out, header, res); err != nil {
			return err
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("failed to write summary file: %w", err)
		}

		summary := report.Summarize(header, reg, res)
		summary.Machine, summary.Compiler = cfg.Machine, cfg.Compiler
		run.Reports = append(run.Reports, summary)

		failures := report.Failures(summary)
		if failures == 0 {
			clean++
		} else {
			failing++
		}
		run.Meta.TotalTests += summary.TotalTests
		run.Meta.Failures += failures
		run.Meta.Miscategorized += len(summary.Miscategorized)
		progress.Update(clean, failing)
	}
	progress.Finish()

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close summary file: %w", err)
	}

	duration := time.Since(start)
	run.Meta.TotalReports = len(reports)
	run.Meta.Detailed = detailed
	run.Meta.SummaryFile = summaryPath
	run.Meta.Duration = duration.String()
	run.Meta.DurationSeconds = duration.Seconds()
	run.Meta.Timestamp = time.Now().Format(time.RFC3339)

	if err := cc.storage.Save(run); err != nil {
		return fmt.Errorf("failed to save run summary: %w", err)
	}

	if cfg.Flags.History {
		if err := cc.record(run); err != nil {
			return err
		}
	}

	cc.formatter.PrintSummary(run)
	return nil
}

// findReports returns the reports named on the command line, or the status
// reports found in the test root
func (cc *ClassifyCommand) findReports(args []string) ([]string, error) {
	if len(args) > 0 {
		for _, path := range args {
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("could not find status report: %s", path)
			}
		}
		return args, nil
	}

	reports, err := discovery.NewReportFinder(cc.config.ReportPattern).Find(cc.config.GetTestRoot())
	if err != nil {
		return nil, fmt.Errorf("failed to find status reports: %w", err)
	}
	log.WithFields(log.Fields{"root": cc.config.GetTestRoot(), "reports": len(reports)}).Info("found status reports")
	return reports, nil
}

// diagnoser builds the detailed-mode checks once the test root is known
func (cc *ClassifyCommand) diagnoser() classify.Diagnoser {
	if !cc.config.Flags.Detailed {
		return nil
	}
	namelists := diagnostics.NewNamelistChecker(cc.config,
		discovery.NewScanner(discovery.NamelistPattern, nil),
		discovery.NewFilter(cc.config.NamelistInclude, cc.config.NamelistExclude))
	return diagnostics.NewDiagnoser(namelists, diagnostics.NewHistChecker(cc.config.GetTestRoot()))
}

func (cc *ClassifyCommand) record(run *domain.RunSummary) error {
	history, err := cc.openHistory(cc.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer history.Close()

	if err := history.Record(run); err != nil {
		return fmt.Errorf("failed to record run history: %w", err)
	}
	log.WithField("database", cc.config.Database.Name).Info("recorded run history")
	return nil
}
