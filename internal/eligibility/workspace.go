package eligibility

import (
	"sort"

	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/normalize"
)

// NotCaptured is displayed for any absent profile field.
const NotCaptured = "Not captured"

// PatientField is one display row of the profile projection.
type PatientField struct {
	Key   model.FieldKey `json:"key"`
	Label string         `json:"label"`
	Value string         `json:"value"`
}

// Workspace is the full screening result for one profile.
type Workspace struct {
	PatientFields []PatientField     `json:"patient_fields"`
	Schemes       []SchemeEvaluation `json:"schemes"`
}

// Eligible returns the eligible schemes in ranked order.
func (w Workspace) Eligible() []SchemeEvaluation {
	var out []SchemeEvaluation
	for _, s := range w.Schemes {
		if s.Eligible {
			out = append(out, s)
		}
	}
	return out
}

// Scheme returns the evaluation for the given scheme id, or nil.
func (w Workspace) Scheme(id string) *SchemeEvaluation {
	for i := range w.Schemes {
		if w.Schemes[i].ID == id {
			return &w.Schemes[i]
		}
	}
	return nil
}

// Engine binds a catalogue to the thresholds used when building contexts.
type Engine struct {
	Catalogue  *Catalogue
	Thresholds Thresholds
}

// NewEngine returns an engine over the default catalogue and thresholds.
func NewEngine() *Engine {
	return &Engine{Catalogue: DefaultCatalogue(), Thresholds: DefaultThresholds()}
}

// BuildWorkspace builds one context, evaluates every catalogue scheme against
// it and ranks the results.
func (e *Engine) BuildWorkspace(p model.PatientProfile, transcript []model.TranscriptEvent) Workspace {
	ctx := BuildContext(p, transcript, e.Thresholds)

	var defs []SchemeDefinition
	if e.Catalogue != nil {
		defs = e.Catalogue.schemes
	}
	schemes := make([]SchemeEvaluation, len(defs))
	for i, def := range defs {
		schemes[i] = Evaluate(def, ctx)
	}
	RankSchemes(schemes)

	return Workspace{
		PatientFields: patientFields(p, ctx),
		Schemes:       schemes,
	}
}

// BuildWorkspace runs the default engine.
func BuildWorkspace(p model.PatientProfile, transcript []model.TranscriptEvent) Workspace {
	return NewEngine().BuildWorkspace(p, transcript)
}

// RankSchemes sorts evaluations in place by band, then met ratio and met
// count descending, then name and id ascending. The order is total, so
// identical inputs always rank identically.
func RankSchemes(schemes []SchemeEvaluation) {
	sort.SliceStable(schemes, func(i, j int) bool {
		a, b := schemes[i], schemes[j]
		if ra, rb := a.EligibilityBand.Rank(), b.EligibilityBand.Rank(); ra != rb {
			return ra < rb
		}
		if a.MetCriteriaRatio != b.MetCriteriaRatio {
			return a.MetCriteriaRatio > b.MetCriteriaRatio
		}
		if a.MetCriteriaCount != b.MetCriteriaCount {
			return a.MetCriteriaCount > b.MetCriteriaCount
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

// FieldMatchStatus says how a profile field relates to a scheme's criteria.
type FieldMatchStatus string

const (
	FieldMatch    FieldMatchStatus = "match"
	FieldMismatch FieldMatchStatus = "mismatch"
	FieldNeutral  FieldMatchStatus = "neutral"
)

// FieldStatus returns match when every criterion tied to key is met,
// mismatch when at least one tied criterion is unmet, and neutral when the
// scheme has no criterion for key or scheme is nil.
func FieldStatus(key model.FieldKey, scheme *SchemeEvaluation) FieldMatchStatus {
	if scheme == nil {
		return FieldNeutral
	}
	related := 0
	for _, c := range scheme.Criteria {
		if c.FieldKey != key {
			continue
		}
		related++
		if !c.Met {
			return FieldMismatch
		}
	}
	if related == 0 {
		return FieldNeutral
	}
	return FieldMatch
}

func patientFields(p model.PatientProfile, ctx *Context) []PatientField {
	military := "No"
	if ctx.IsDefenseBeneficiary {
		military = "Yes"
	}
	pregnancy := "Not present"
	if ctx.IsPregnant {
		pregnancy = "Present in consultation"
	}
	verification := "Not available"
	if ctx.BackendPMJAYEligible || ctx.BackendStateEligible {
		verification = "Available"
	}

	return []PatientField{
		{Key: model.FieldName, Label: "Name", Value: orNotCaptured(p.Name)},
		{Key: model.FieldGender, Label: "Gender", Value: orNotCaptured(p.Gender)},
		{Key: model.FieldAge, Label: "Age", Value: orNotCaptured(p.Age)},
		{Key: model.FieldLocation, Label: "Location", Value: orNotCaptured(p.Location)},
		{Key: model.FieldOccupation, Label: "Occupation", Value: orNotCaptured(p.Occupation)},
		{Key: model.FieldRationCardType, Label: "Ration card type", Value: orNotCaptured(p.RationCardType)},
		{Key: model.FieldIncomeBracket, Label: "Income bracket", Value: orNotCaptured(p.IncomeBracket)},
		{Key: model.FieldCasteCategory, Label: "Caste category", Value: orNotCaptured(p.CasteCategory)},
		{Key: model.FieldHousingType, Label: "Housing type", Value: orNotCaptured(p.HousingType)},
		{Key: model.FieldMilitaryStatus, Label: "Military/veteran status", Value: military},
		{Key: model.FieldPregnancyStatus, Label: "Pregnancy marker", Value: pregnancy},
		{Key: model.FieldSchemeVerification, Label: "Backend scheme verification", Value: verification},
	}
}

func orNotCaptured(v *string) string {
	if s := normalize.ToText(v); s != "" {
		return s
	}
	return NotCaptured
}
