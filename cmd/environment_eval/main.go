// Package main provides the environment_eval command: the evaluation HTTP
// API server plus maintenance commands for the evaluation store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/environment-evaluator/internal/config"
)

var (
	configFile   string
	verbose      bool
	outputFormat string

	appConfig *config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "environment_eval",
	Short: "Living environment evaluation service",
	Long: "environment_eval asks a language model to evaluate survey answers about a living " +
		"environment, extracts the score, main problems and key improvement areas from the " +
		"answer, and stores the result in PostgreSQL.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "Output format: json or text")
}

// setup loads configuration and builds the logger for every subcommand.
func setup(_ *cobra.Command, _ []string) error {
	if outputFormat != "json" && outputFormat != "text" {
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	l, err := newLogger(level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
