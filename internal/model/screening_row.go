package model

import "github.com/google/uuid"

// ScreeningRow is the DB-ready result of evaluating one scheme for one
// profile. Ratios are stored as basis points to keep the column integral.
type ScreeningRow struct {
	BatchID     uuid.UUID
	ProfileID   string
	ProfileHash []byte

	SchemeID   string
	SchemeName string
	Rank       int32

	Eligible      bool
	Band          string
	MetCriteria   int32
	TotalCriteria int32
	MetRatioBPS   int32
	AvailableDocs int32
	TotalDocs     int32
	UnmetCriteria []string
	MissingDocs   []string
}

// ScreeningColumns returns the ordered column names for COPY into
// screen.scheme_results.
func ScreeningColumns() []string {
	return []string{
		"batch_id",
		"profile_id",
		"profile_hash",
		"scheme_id",
		"scheme_name",
		"rank",
		"eligible",
		"band",
		"met_criteria",
		"total_criteria",
		"met_ratio_bps",
		"available_documents",
		"total_documents",
		"unmet_criteria",
		"missing_documents",
	}
}

// CopyValues returns the row values in the same order as ScreeningColumns(),
// suitable for pgx CopyFromSource.
func (r *ScreeningRow) CopyValues() []any {
	return []any{
		r.BatchID,
		r.ProfileID,
		r.ProfileHash,
		r.SchemeID,
		r.SchemeName,
		r.Rank,
		r.Eligible,
		r.Band,
		r.MetCriteria,
		r.TotalCriteria,
		r.MetRatioBPS,
		r.AvailableDocs,
		r.TotalDocs,
		r.UnmetCriteria,
		r.MissingDocs,
	}
}
