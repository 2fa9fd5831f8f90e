package config

import (
	"fmt"
	"os"

	"github.com/gyeh/schemescreen/internal/eligibility"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for a schemescreen run.
type Config struct {
	DSN                string
	FilePath           string // Parquet batch file (plan, screen)
	ProfilePath        string // JSON/YAML profile (evaluate)
	TranscriptPath     string // JSON transcript events (evaluate)
	LogFormat          string // "text" or "json"
	LogLevel           string
	OutputFormat       string // "text" or "json"
	Force              bool
	DeriveVerification bool     // fill missing verification snapshots from SECC rules
	SampleSize         int      // profiles examined by plan
	SchemeIDs          []string `yaml:"schemes"` // subset of catalogue ids; empty means all
	Thresholds         ThresholdConfig
}

// ThresholdConfig overrides the engine's numeric cut-offs. Zero values keep
// the defaults.
type ThresholdConfig struct {
	SeniorAge            int   `yaml:"senior_age"`
	LowIncomeAnnual      int64 `yaml:"low_income_annual"`
	ESICMonthlyWage      int64 `yaml:"esic_monthly_wage"`
	MonthlyIncomeCeiling int64 `yaml:"monthly_income_ceiling"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Schemes    []string        `yaml:"schemes"`
	Thresholds ThresholdConfig `yaml:"thresholds"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	c.SchemeIDs = yc.Schemes
	c.Thresholds = yc.Thresholds
	if err := c.validateThresholds(); err != nil {
		return err
	}
	return c.validateSchemes()
}

// validateSchemes checks that every entry in SchemeIDs is a catalogue id.
// If SchemeIDs is empty, it defaults to every catalogue scheme.
func (c *Config) validateSchemes() error {
	if len(c.SchemeIDs) == 0 {
		defs := eligibility.DefaultCatalogue().Schemes()
		c.SchemeIDs = make([]string, len(defs))
		for i, def := range defs {
			c.SchemeIDs[i] = def.ID
		}
		return nil
	}
	for _, id := range c.SchemeIDs {
		if _, ok := eligibility.DefaultCatalogue().Lookup(id); !ok {
			return fmt.Errorf("unknown scheme %q in config", id)
		}
	}
	return nil
}

func (c *Config) validateThresholds() error {
	t := c.Thresholds
	if t.SeniorAge < 0 || t.LowIncomeAnnual < 0 || t.ESICMonthlyWage < 0 || t.MonthlyIncomeCeiling < 0 {
		return fmt.Errorf("thresholds must not be negative")
	}
	return nil
}

// EngineThresholds merges the configured overrides onto the engine defaults.
func (c *Config) EngineThresholds() eligibility.Thresholds {
	t := eligibility.DefaultThresholds()
	if c.Thresholds.SeniorAge > 0 {
		t.SeniorAge = c.Thresholds.SeniorAge
	}
	if c.Thresholds.LowIncomeAnnual > 0 {
		t.LowIncomeAnnual = c.Thresholds.LowIncomeAnnual
	}
	if c.Thresholds.ESICMonthlyWage > 0 {
		t.ESICMonthlyWage = c.Thresholds.ESICMonthlyWage
	}
	if c.Thresholds.MonthlyIncomeCeiling > 0 {
		t.Income.MonthlyCeiling = c.Thresholds.MonthlyIncomeCeiling
	}
	return t
}

// Engine builds an eligibility engine restricted to SchemeIDs and using the
// configured thresholds.
func (c *Config) Engine() (*eligibility.Engine, error) {
	cat, err := eligibility.DefaultCatalogue().Subset(c.SchemeIDs)
	if err != nil {
		return nil, err
	}
	return &eligibility.Engine{Catalogue: cat, Thresholds: c.EngineThresholds()}, nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or SCHEMESCREEN_DB_URL is required")
	}
	return nil
}

// ValidateProfile checks the inputs of a single-profile evaluation.
func (c *Config) ValidateProfile() error {
	if c.ProfilePath == "" {
		return fmt.Errorf("--profile is required")
	}
	if _, err := os.Stat(c.ProfilePath); err != nil {
		return fmt.Errorf("profile not accessible: %w", err)
	}
	if c.TranscriptPath != "" {
		if _, err := os.Stat(c.TranscriptPath); err != nil {
			return fmt.Errorf("transcript not accessible: %w", err)
		}
	}
	switch c.OutputFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.OutputFormat)
	}
	return nil
}
