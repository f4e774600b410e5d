// Package main implements the nativedb command line.
//
// Commands: check validates a source tree, layout prints struct layouts, generate writes
// bindings, export dumps the database as JSON. Configuration comes from nativedb.yaml,
// overridden by flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/nativedb/pkg/config"
	"github.com/GriffinCanCode/nativedb/pkg/database"
	"github.com/GriffinCanCode/nativedb/pkg/logger"
)

const version = "0.1.0"

var (
	configPath string
	inputDir   string
	workers    int
	logLevel   string
	verbose    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nativedb",
	Short: "nativedb - native function database compiler",
	Long: `nativedb parses native documentation, enum and struct sources into one
validated database, then computes struct layouts and generates bindings.

Commands:
  check     Parse and validate a source tree
  layout    Print computed struct layouts
  generate  Write bindings for a target language
  export    Dump the database as JSON
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show nativedb version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "nativedb version %s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default ./"+config.FileName+" when present)")
	flags.StringVarP(&inputDir, "input", "i", "", "source tree to read")
	flags.IntVarP(&workers, "workers", "j", 0, "parallel parsers (0 = one per CPU)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr with source locations")

	rootCmd.AddCommand(checkCmd, layoutCmd, generateCmd, exportCmd, versionCmd)
}

// setup loads the config file, applies flag overrides and initializes logging
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = inputDir
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if verbose {
		logger.InitDev()
		return nil
	}
	return logger.Init(cfg.Logger())
}

// load builds the database from the configured input tree
func load(ctx context.Context) (*database.Result, error) {
	info, err := os.Stat(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s is not a directory", cfg.Input)
	}
	logger.Info("Loading sources", "input", cfg.Input, "workers", cfg.Workers)
	return database.LoadFS(ctx, os.DirFS(cfg.Input), database.Options{Workers: cfg.Workers})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
