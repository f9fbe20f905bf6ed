package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"ctf/internal/config"
	"ctf/internal/ui"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config      *config.Config
	formatter   *ui.Formatter
	openHistory HistoryOpener
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, formatter *ui.Formatter, openHistory HistoryOpener) *HistoryCommand {
	return &HistoryCommand{
		config:      cfg,
		formatter:   formatter,
		openHistory: openHistory,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	limit := hc.config.Flags.Limit
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}

	history, err := hc.openHistory(hc.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer history.Close()

	runs, err := history.Recent(limit)
	if err != nil {
		return err
	}
	hc.formatter.PrintHistory(runs)
	return nil
}
