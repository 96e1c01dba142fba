// Package main provides the resume_extractor command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-extractor/internal/config"
	"github.com/jonathan/resume-extractor/internal/logger"
)

// app carries the loaded configuration to every subcommand
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "resume_extractor",
		Short: "Résumé profile extractor",
		Long: "resume_extractor turns a résumé (PDF, HTML or text, local or remote) into a structured " +
			"profile. Pattern matching runs first; the generative model is only consulted when the " +
			"pattern-based record is not complete enough.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML or JSON config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (overrides config)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: json or pretty (overrides config)")

	root.AddCommand(
		newExtractCmd(a),
		newLinksCmd(a),
		newScoreCmd(a),
		newValidateCmd(a),
		newSchemaCmd(a),
	)
	return root
}

// load reads the config, applies flag overrides and initializes logging
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Init(cfg.Log)
	a.cfg = cfg
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
