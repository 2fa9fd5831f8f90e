// mkfixture writes a deterministic synthetic Parquet file of patient profiles
// for batch screening runs, or prints column coverage of an existing file.
// Usage: go run ./cmd/mkfixture --out testdata/profiles.parquet --rows 500 --seed 1
package main

import (
	"flag"
	"fmt"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/schemescreen/internal/fixture"
	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/parquetread"
)

func main() {
	out := flag.String("out", "testdata/profiles.parquet", "output parquet")
	rows := flag.Int("rows", 500, "profiles to generate")
	seed := flag.Uint64("seed", 1, "generator seed")
	check := flag.String("check", "", "only print column coverage of this parquet file")
	flag.Parse()

	if *check != "" {
		if err := printCoverage(*check); err != nil {
			fmt.Fprintf(os.Stderr, "check: %v\n", err)
			os.Exit(1)
		}
		return
	}

	profiles := fixture.Generate(*rows, *seed)

	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create output: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	writer := goparquet.NewGenericWriter[model.ProfileRow](outFile)
	if _, err := writer.Write(profiles); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close writer: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d profiles to %s (seed %d)\n", len(profiles), *out, *seed)
}

func printCoverage(path string) error {
	r, err := parquetread.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := parquetread.ValidateSchema(r.Schema()); err != nil {
		return err
	}

	present := make(map[string]int)
	total := 0
	err = r.Each(1024, func(row *model.ProfileRow) error {
		total++
		for col, set := range coverage(row) {
			if set {
				present[col]++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Profiles: %d\n", total)
	for _, col := range model.ProfileColumns() {
		fmt.Printf("  %-28s %d\n", col, present[col])
	}
	return nil
}

func coverage(row *model.ProfileRow) map[string]bool {
	set := func(s *string) bool { return s != nil && *s != "" }
	return map[string]bool{
		"name":                       set(row.Name),
		"age":                        set(row.Age),
		"gender":                     set(row.Gender),
		"chief_complaint":            set(row.ChiefComplaint),
		"symptoms":                   set(row.Symptoms),
		"medical_history":            set(row.MedicalHistory),
		"tentative_doctor_diagnosis": set(row.TentativeDoctorDiagnosis),
		"initial_llm_diagnosis":      set(row.InitialLLMDiagnosis),
		"temperature":                set(row.Temperature),
		"blood_pressure":             set(row.BloodPressure),
		"pulse":                      set(row.Pulse),
		"spo2":                       set(row.SpO2),
		"ration_card_type":           set(row.RationCardType),
		"income_bracket":             set(row.IncomeBracket),
		"occupation":                 set(row.Occupation),
		"caste_category":             set(row.CasteCategory),
		"housing_type":               set(row.HousingType),
		"location":                   set(row.Location),
		"pmjay_verified":             row.PMJAYVerified != nil,
		"state_verified":             row.StateVerified != nil,
		"transcript":                 set(row.Transcript),
	}
}
