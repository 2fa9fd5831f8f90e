package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/schemescreen/internal/eligibility"
	"github.com/gyeh/schemescreen/internal/exitcode"
	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/normalize"
)

var (
	schemeID string
	checked  []string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Screen one profile and print the ranked workspace",
	RunE:  runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&cfg.ProfilePath, "profile", "", "Path to profile JSON or YAML (required)")
	f.StringVar(&cfg.TranscriptPath, "transcript", "", "Path to transcript events JSON")
	f.StringVar(&cfg.OutputFormat, "format", "text", "Output format: text or json")
	f.BoolVar(&cfg.DeriveVerification, "derive-verification", false, "Derive the SECC pre-check when the profile carries no verification")
	f.StringVar(&schemeID, "scheme", "", "Show field highlighting and outstanding documents for one scheme")
	f.StringSliceVar(&checked, "checked", nil, "Document ids already ticked (with --scheme)")
	_ = evaluateCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	log := newLogger()

	if err := cfg.ValidateProfile(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	engine, err := cfg.Engine()
	if err != nil {
		log.Error().Err(err).Msg("scheme selection failed")
		os.Exit(exitcode.UsageError)
	}

	profile, err := readProfile(cfg.ProfilePath)
	if err != nil {
		log.Error().Err(err).Msg("failed to read profile")
		os.Exit(exitcode.ValidationError)
	}

	var transcript []model.TranscriptEvent
	if cfg.TranscriptPath != "" {
		if transcript, err = readTranscript(cfg.TranscriptPath); err != nil {
			log.Error().Err(err).Msg("failed to read transcript")
			os.Exit(exitcode.ValidationError)
		}
	}

	profile = normalize.ReplayTranscript(profile, transcript)
	if cfg.DeriveVerification {
		profile = eligibility.WithDerivedVerification(profile)
	}
	ws := engine.BuildWorkspace(profile, transcript)

	var focus *eligibility.SchemeEvaluation
	if schemeID != "" {
		if focus = ws.Scheme(schemeID); focus == nil {
			log.Error().Str("scheme", schemeID).Msg("scheme not in catalogue")
			os.Exit(exitcode.UsageError)
		}
	}

	log.Debug().
		Int("schemes", len(ws.Schemes)).
		Int("eligible", len(ws.Eligible())).
		Msg("workspace built")

	if cfg.OutputFormat == "json" {
		return writeJSON(os.Stdout, ws, focus)
	}
	writeReport(os.Stdout, ws, focus)
	return nil
}

// readProfile decodes a JSON or YAML record into a profile. Field names
// follow the snake_case profile keys and their aliases.
func readProfile(path string) (model.PatientProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PatientProfile{}, fmt.Errorf("read profile: %w", err)
	}
	raw := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return model.PatientProfile{}, fmt.Errorf("parse profile: %w", err)
	}
	return normalize.ProfileFromMap(raw), nil
}

func readTranscript(path string) ([]model.TranscriptEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var events []model.TranscriptEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}
	return events, nil
}

type focusView struct {
	Scheme      *eligibility.SchemeEvaluation                   `json:"scheme"`
	FieldStatus map[model.FieldKey]eligibility.FieldMatchStatus `json:"field_status"`
	Outstanding []eligibility.DocumentResult                    `json:"outstanding_documents"`
}

func writeJSON(w io.Writer, ws eligibility.Workspace, focus *eligibility.SchemeEvaluation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if focus == nil {
		return enc.Encode(ws)
	}
	view := focusView{
		Scheme:      focus,
		FieldStatus: make(map[model.FieldKey]eligibility.FieldMatchStatus),
		Outstanding: focus.OutstandingDocuments(checkedSet()),
	}
	for _, key := range model.AllFieldKeys {
		view.FieldStatus[key] = eligibility.FieldStatus(key, focus)
	}
	return enc.Encode(view)
}

func writeReport(w io.Writer, ws eligibility.Workspace, focus *eligibility.SchemeEvaluation) {
	fmt.Fprintln(w, "=== patient ===")
	for _, f := range ws.PatientFields {
		marker := ""
		if focus != nil {
			switch eligibility.FieldStatus(f.Key, focus) {
			case eligibility.FieldMatch:
				marker = " [match]"
			case eligibility.FieldMismatch:
				marker = " [mismatch]"
			}
		}
		fmt.Fprintf(w, "  %-28s %s%s\n", f.Label, f.Value, marker)
	}

	schemes := ws.Schemes
	if focus != nil {
		schemes = []eligibility.SchemeEvaluation{*focus}
	}
	for i, s := range schemes {
		fmt.Fprintf(w, "\n%d. %s  %s  (%d/%d criteria, %d/%d documents)\n",
			i+1, s.Name, s.EligibilityBand, s.MetCriteriaCount, s.TotalCriteriaCount,
			s.AvailableDocumentCount, s.TotalDocumentCount)
		for _, c := range s.Criteria {
			mark := "✗"
			if c.Met {
				mark = "✓"
			}
			fmt.Fprintf(w, "   %s %s\n", mark, c.Label)
		}
		if focus != nil {
			for _, d := range s.OutstandingDocuments(checkedSet()) {
				fmt.Fprintf(w, "   outstanding: %s (%s)\n", d.Name, d.ID)
			}
		}
		if s.Disclaimer != "" {
			fmt.Fprintf(w, "   note: %s\n", s.Disclaimer)
		}
	}
}

func checkedSet() map[string]bool {
	set := make(map[string]bool, len(checked))
	for _, id := range checked {
		set[id] = true
	}
	return set
}
