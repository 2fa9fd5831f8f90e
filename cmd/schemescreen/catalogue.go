package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/schemescreen/internal/exitcode"
)

var catalogueCmd = &cobra.Command{
	Use:     "catalogue",
	Aliases: []string{"catalog"},
	Short:   "List schemes with their criteria and documents",
	RunE:    runCatalogue,
}

func init() {
	catalogueCmd.Flags().StringVar(&cfg.OutputFormat, "format", "text", "Output format: text or json")
	rootCmd.AddCommand(catalogueCmd)
}

type catalogueEntry struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Rule      string          `json:"rule"`
	Criteria  []catalogueItem `json:"criteria"`
	Documents []catalogueItem `json:"documents"`
}

type catalogueItem struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Field  string `json:"field,omitempty"`
	Manual bool   `json:"manual,omitempty"`
}

func runCatalogue(cmd *cobra.Command, args []string) error {
	log := newLogger()

	engine, err := cfg.Engine()
	if err != nil {
		log.Error().Err(err).Msg("scheme selection failed")
		os.Exit(exitcode.UsageError)
	}

	var entries []catalogueEntry
	for _, def := range engine.Catalogue.Schemes() {
		e := catalogueEntry{ID: def.ID, Name: def.Name, Rule: def.Rule.Kind}
		for _, c := range def.Criteria {
			e.Criteria = append(e.Criteria, catalogueItem{ID: c.ID, Text: c.Label, Field: string(c.FieldKey)})
		}
		for _, d := range def.Documents {
			e.Documents = append(e.Documents, catalogueItem{ID: d.ID, Text: d.Name, Manual: d.ManualOnly()})
		}
		entries = append(entries, e)
	}

	if cfg.OutputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  [%s]\n", e.ID, e.Name, e.Rule)
		for _, c := range e.Criteria {
			fmt.Printf("    criterion %-24s %s\n", c.ID, c.Text)
		}
		for _, d := range e.Documents {
			mode := "inferred"
			if d.Manual {
				mode = "manual"
			}
			fmt.Printf("    document  %-24s %s (%s)\n", d.ID, d.Text, mode)
		}
		fmt.Println()
	}
	return nil
}
