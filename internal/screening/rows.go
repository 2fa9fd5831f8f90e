package screening

import (
	"math"

	"github.com/google/uuid"

	"github.com/gyeh/schemescreen/internal/eligibility"
	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/normalize"
)

// EvaluateRow screens one Parquet profile and returns its result rows in
// ranked order. With deriveVerification set, a row without verification
// columns gets the SECC pre-check before evaluation.
func EvaluateRow(batchID uuid.UUID, row *model.ProfileRow, engine *eligibility.Engine, deriveVerification bool) []*model.ScreeningRow {
	profile, transcript := normalize.ToProfile(row)
	if deriveVerification {
		profile = eligibility.WithDerivedVerification(profile)
	}
	ws := engine.BuildWorkspace(profile, transcript)
	return ScreeningRows(batchID, row.ProfileID, normalize.ProfileHash(profile, transcript), ws)
}

// ScreeningRows flattens a workspace into one DB row per scheme. Rank is
// 1-based in workspace order.
func ScreeningRows(batchID uuid.UUID, profileID string, hash []byte, ws eligibility.Workspace) []*model.ScreeningRow {
	out := make([]*model.ScreeningRow, len(ws.Schemes))
	for i, s := range ws.Schemes {
		unmet := make([]string, 0, s.TotalCriteriaCount-s.MetCriteriaCount)
		for _, c := range s.UnmetCriteria() {
			unmet = append(unmet, c.ID)
		}
		missing := make([]string, 0, s.TotalDocumentCount-s.AvailableDocumentCount)
		for _, d := range s.OutstandingDocuments(nil) {
			missing = append(missing, d.ID)
		}

		out[i] = &model.ScreeningRow{
			BatchID:       batchID,
			ProfileID:     profileID,
			ProfileHash:   hash,
			SchemeID:      s.ID,
			SchemeName:    s.Name,
			Rank:          int32(i + 1),
			Eligible:      s.Eligible,
			Band:          string(s.EligibilityBand),
			MetCriteria:   int32(s.MetCriteriaCount),
			TotalCriteria: int32(s.TotalCriteriaCount),
			MetRatioBPS:   int32(math.Round(s.MetCriteriaRatio * 10000)),
			AvailableDocs: int32(s.AvailableDocumentCount),
			TotalDocs:     int32(s.TotalDocumentCount),
			UnmetCriteria: unmet,
			MissingDocs:   missing,
		}
	}
	return out
}
