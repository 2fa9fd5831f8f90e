package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/schemescreen/internal/config"
	"github.com/gyeh/schemescreen/internal/exitcode"
	"github.com/gyeh/schemescreen/internal/logging"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "schemescreen",
	Short: "Public health-insurance scheme eligibility screening",
	Long: "Screens patient profiles captured during consultations against Indian public " +
		"health-insurance schemes, one profile at a time or in Parquet batches stored in Postgres.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("SCHEMESCREEN_DB_URL"), "Postgres connection string (or set SCHEMESCREEN_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&configPath, "config", "", "YAML file with thresholds and scheme subset")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	if configPath == "" {
		return nil
	}
	if err := cfg.LoadFromFile(configPath); err != nil {
		log := newLogger()
		log.Error().Err(err).Str("config", configPath).Msg("config load failed")
		os.Exit(exitcode.UsageError)
	}
	return nil
}

// newLogger builds the command logger from --log-format and --log-level.
func newLogger() zerolog.Logger {
	level, _ := logging.ParseLevel(cfg.LogLevel)
	return logging.New(os.Stderr, cfg.LogFormat, level)
}
