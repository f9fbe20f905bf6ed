package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ctf/internal/cli"
	"ctf/internal/cli/commands"
	"ctf/internal/config"
)

var version = "dev"

func main() {
	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	rootCmd := &cobra.Command{
		Use:   "ctf",
		Short: "Climate model test result filter",
		Long: `Classifies the status reports of a climate model test suite run: removes the
expected failures, splits generic FAIL results into throughput, baseline
generation, memory, namelist and history comparison failures, and writes a
summary report in a fixed section order.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.Debug {
				log.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
