package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gyeh/schemescreen/internal/eligibility"
	"github.com/gyeh/schemescreen/internal/exitcode"
	"github.com/gyeh/schemescreen/internal/screening"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and band distribution (no writes)",
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to Parquet file (required)")
	f.IntVar(&cfg.SampleSize, "sample", 1000, "Profiles to evaluate (0 = all)")
	f.BoolVar(&cfg.DeriveVerification, "derive-verification", false, "Derive the SECC pre-check for rows without verification columns")
	_ = planCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := newLogger()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	engine, err := cfg.Engine()
	if err != nil {
		log.Error().Err(err).Msg("scheme selection failed")
		os.Exit(exitcode.UsageError)
	}

	res, err := screening.Plan(cfg.FilePath, engine, int64(cfg.SampleSize), cfg.DeriveVerification)
	if err != nil {
		log.Error().Err(err).Msg("plan failed")
		os.Exit(exitcode.ValidationError)
	}

	fmt.Println("=== schemescreen plan ===")
	fmt.Printf("File:       %s\n", res.FilePath)
	fmt.Printf("SHA-256:    %s\n", res.FileSHA256)
	fmt.Printf("Size:       %d bytes\n", res.FileSize)
	fmt.Printf("Profiles:   %d\n", res.NumRows)
	fmt.Printf("Sampled:    %d (%d without profile_id)\n", res.Sampled, res.Rejected)
	fmt.Println()
	fmt.Println("Band distribution (sampled):")
	fmt.Printf("  %-12s %9s %9s %9s\n", "scheme", "eligible", "likely", "not")

	ids := make([]string, 0, len(res.Bands))
	for id := range res.Bands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		b := res.Bands[id]
		fmt.Printf("  %-12s %9d %9d %9d\n", id,
			b[eligibility.BandEligible], b[eligibility.BandLikelyNotEligible], b[eligibility.BandNotEligible])
	}
	fmt.Println("\nSchema validation: OK")

	return nil
}
