package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gyeh/schemescreen/internal/db"
	"github.com/gyeh/schemescreen/internal/exitcode"
	"github.com/gyeh/schemescreen/internal/screening"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a Parquet batch of profiles into the database",
	RunE:  runScreen,
}

func init() {
	f := screenCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet file (required)")
	f.BoolVar(&cfg.Force, "force", false, "Re-screen even if file SHA already completed")
	f.BoolVar(&cfg.DeriveVerification, "derive-verification", false, "Derive the SECC pre-check for rows without verification columns")
	_ = screenCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	log := newLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN, log)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := screening.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *screening.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("screening failed")
			os.Exit(exitcode.ForPhase(pe.Phase))
		}
		log.Error().Err(err).Msg("screening failed")
		os.Exit(exitcode.EvaluateError)
	}

	if summary.AlreadyScreened {
		fmt.Printf("Already screened: batch %s (use --force to re-screen)\n", summary.BatchID)
		return nil
	}

	fmt.Printf("Screening complete: %d profiles, %d result rows (%.1fs)\n",
		summary.ProfilesRead-summary.ProfilesRejected, summary.RowsWritten, summary.DurationTotal.Seconds())
	schemes := make([]string, 0, len(summary.EligibleByScheme))
	for id := range summary.EligibleByScheme {
		schemes = append(schemes, id)
	}
	sort.Strings(schemes)
	for _, id := range schemes {
		fmt.Printf("  %-12s %d eligible\n", id, summary.EligibleByScheme[id])
	}

	if summary.ProfilesRejected > 0 {
		log.Warn().Int64("rejected", summary.ProfilesRejected).Msg("some profiles were rejected")
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
