package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/card-statement-extractor/internal/config"
)

// rootOptions carries the persistent flags and what is loaded from them
// before any subcommand runs.
type rootOptions struct {
	version    string
	configFile string
	banksFile  string
	logLevel   string

	settings *config.Settings
	registry *config.Registry
	log      *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(version string) *cobra.Command {
	o := &rootOptions{version: version}

	rootCmd := &cobra.Command{
		Use:   "card-statement-extractor",
		Short: "Extract credit-card statement movements into CSV, XLSX or JSON",
		Long: `Card Statement Extractor
by Insight Delivered (QEA AutoLens)

Reads credit-card statement PDFs, extracts every movement with its date,
receipt, description, installment, cardholder and amount, and checks the
statement balance against the sum of its movements.`,
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.configFile, "config", "", "settings file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&o.banksFile, "banks", "", "YAML file with bank definitions")
	rootCmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newExtractCommand(o))
	rootCmd.AddCommand(newServeCommand(o))
	rootCmd.AddCommand(newBanksCommand(o))
	rootCmd.AddCommand(newHistoryCommand(o))

	return rootCmd
}

// load reads settings, applies flag overrides and builds the logger and the
// bank registry.
func (o *rootOptions) load(cmd *cobra.Command) error {
	s, err := config.LoadSettings(o.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("banks") {
		s.BanksFile = o.banksFile
	}
	if cmd.Flags().Changed("log-level") {
		s.LogLevel = o.logLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	o.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if o.registry, err = s.Banks(); err != nil {
		return err
	}
	o.settings = s
	return nil
}

// Execute runs the CLI until it finishes or the process is interrupted.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand(version).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
