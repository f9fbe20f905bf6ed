package commands

import (
	"github.com/spf13/cobra"

	"ctf/internal/config"
	"ctf/internal/storage"
	"ctf/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	summary, err := lc.storage.Load()
	if err != nil {
		return err
	}
	return lc.formatter.PrintSections(summary, lc.config.Flags.Section, lc.config.Flags.All)
}
