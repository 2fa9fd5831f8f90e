package screening

import (
	"errors"
	"fmt"
	"os"

	"github.com/gyeh/schemescreen/internal/eligibility"
	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/normalize"
	"github.com/gyeh/schemescreen/internal/parquetread"
)

// PlanResult is the dry-run report for a batch file.
type PlanResult struct {
	FilePath   string
	FileSHA256 string
	FileSize   int64
	NumRows    int64
	Sampled    int64
	Rejected   int64
	// Bands counts sampled verdicts per scheme id and band.
	Bands map[string]map[eligibility.Band]int64
}

var errSampleFull = errors.New("sample complete")

// Plan validates a batch file and evaluates up to sampleSize profiles
// without touching the database.
func Plan(path string, engine *eligibility.Engine, sampleSize int64, deriveVerification bool) (*PlanResult, error) {
	sha, err := normalize.FileHash(path)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	reader, err := parquetread.Open(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	res := &PlanResult{
		FilePath:   path,
		FileSHA256: sha,
		FileSize:   stat.Size(),
		NumRows:    reader.NumRows(),
		Bands:      make(map[string]map[eligibility.Band]int64),
	}
	if sampleSize <= 0 || sampleSize > res.NumRows {
		sampleSize = res.NumRows
	}
	if sampleSize == 0 {
		return res, nil
	}

	err = reader.Each(readBatchSize, func(row *model.ProfileRow) error {
		res.Sampled++
		if row.ProfileID == "" {
			res.Rejected++
		} else {
			profile, transcript := normalize.ToProfile(row)
			if deriveVerification {
				profile = eligibility.WithDerivedVerification(profile)
			}
			for _, s := range engine.BuildWorkspace(profile, transcript).Schemes {
				if res.Bands[s.ID] == nil {
					res.Bands[s.ID] = make(map[eligibility.Band]int64)
				}
				res.Bands[s.ID][s.EligibilityBand]++
			}
		}
		if res.Sampled >= sampleSize {
			return errSampleFull
		}
		return nil
	})
	if err != nil && !errors.Is(err, errSampleFull) {
		return nil, fmt.Errorf("read sample: %w", err)
	}
	return res, nil
}
