package eligibility

import "github.com/gyeh/schemescreen/internal/model"

// Band is the three-way eligibility confidence classification.
type Band string

const (
	BandEligible          Band = "eligible"
	BandLikelyNotEligible Band = "likely_not_eligible"
	BandNotEligible       Band = "not_eligible"
)

// LikelyRatio is the met-criteria ratio at or above which a non-eligible
// scheme is reported as a near miss rather than a clear non-match.
const LikelyRatio = 0.75

// Disclaimer accompanies every eligible verdict.
const Disclaimer = "Signal-based match: profile markers are treated as preliminary. " +
	"Exact scheme criteria and document classes need manual verification."

// Rank orders bands for sorting: eligible first.
func (b Band) Rank() int {
	switch b {
	case BandEligible:
		return 0
	case BandLikelyNotEligible:
		return 1
	default:
		return 2
	}
}

// CriterionResult is one evaluated criterion.
type CriterionResult struct {
	ID          string         `json:"id"`
	FieldKey    model.FieldKey `json:"field_key"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Met         bool           `json:"met"`
}

// DocumentResult is one evaluated document requirement.
type DocumentResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Available  bool   `json:"available"`
	ManualOnly bool   `json:"manual_only"`
	Evidence   string `json:"evidence"`
}

// SchemeEvaluation is the verdict for one scheme against one context.
type SchemeEvaluation struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	Description            string            `json:"description"`
	Eligible               bool              `json:"eligible"`
	EligibilityBand        Band              `json:"eligibility_band"`
	RuleKind               string            `json:"rule_kind"`
	MetCriteriaCount       int               `json:"met_criteria_count"`
	TotalCriteriaCount     int               `json:"total_criteria_count"`
	MetCriteriaRatio       float64           `json:"met_criteria_ratio"`
	AvailableDocumentCount int               `json:"available_document_count"`
	TotalDocumentCount     int               `json:"total_document_count"`
	Criteria               []CriterionResult `json:"criteria"`
	RequiredDocuments      []DocumentResult  `json:"required_documents"`
	Disclaimer             string            `json:"disclaimer,omitempty"`
}

// Evaluate applies one scheme definition to a built context. Criteria and
// documents are reported in definition order.
func Evaluate(def SchemeDefinition, ctx *Context) SchemeEvaluation {
	criteria := make([]CriterionResult, len(def.Criteria))
	met := 0
	for i, c := range def.Criteria {
		ok := test(c.Test, ctx)
		if ok {
			met++
		}
		criteria[i] = CriterionResult{
			ID:          c.ID,
			FieldKey:    c.FieldKey,
			Label:       c.Label,
			Description: c.Description,
			Met:         ok,
		}
	}

	docs := make([]DocumentResult, len(def.Documents))
	available := 0
	for i, d := range def.Documents {
		ok := test(d.Test, ctx)
		evidence := d.EvidenceWhenMissing
		if ok {
			available++
			evidence = d.EvidenceWhenPresent
		}
		docs[i] = DocumentResult{
			ID:         d.ID,
			Name:       d.Name,
			Available:  ok,
			ManualOnly: d.ManualOnly(),
			Evidence:   evidence,
		}
	}

	eligible := def.Rule.Apply(criteria, ctx)
	ratio := 0.0
	if len(criteria) > 0 {
		ratio = float64(met) / float64(len(criteria))
	}

	ev := SchemeEvaluation{
		ID:                     def.ID,
		Name:                   def.Name,
		Description:            def.Description,
		Eligible:               eligible,
		EligibilityBand:        BandFor(eligible, ratio),
		RuleKind:               def.Rule.Kind,
		MetCriteriaCount:       met,
		TotalCriteriaCount:     len(criteria),
		MetCriteriaRatio:       ratio,
		AvailableDocumentCount: available,
		TotalDocumentCount:     len(docs),
		Criteria:               criteria,
		RequiredDocuments:      docs,
	}
	if eligible {
		ev.Disclaimer = Disclaimer
	}
	return ev
}

// BandFor classifies a verdict: eligible, else a near miss when at least
// LikelyRatio of criteria are met, else not eligible.
func BandFor(eligible bool, ratio float64) Band {
	switch {
	case eligible:
		return BandEligible
	case ratio >= LikelyRatio:
		return BandLikelyNotEligible
	default:
		return BandNotEligible
	}
}

func test(p Predicate, ctx *Context) bool {
	if p == nil || ctx == nil {
		return false
	}
	return p(ctx)
}

// MetCriteria returns the criteria that were met, in definition order.
func (e SchemeEvaluation) MetCriteria() []CriterionResult {
	return filterCriteria(e.Criteria, true)
}

// UnmetCriteria returns the criteria that were not met, in definition order.
func (e SchemeEvaluation) UnmetCriteria() []CriterionResult {
	return filterCriteria(e.Criteria, false)
}

// OutstandingDocuments lists documents neither inferred from the profile nor
// ticked in checked, which maps document id to the caller-owned checkbox
// state for this scheme. A nil map means nothing has been ticked.
func (e SchemeEvaluation) OutstandingDocuments(checked map[string]bool) []DocumentResult {
	var out []DocumentResult
	for _, d := range e.RequiredDocuments {
		if d.Available || checked[d.ID] {
			continue
		}
		out = append(out, d)
	}
	return out
}

func filterCriteria(items []CriterionResult, met bool) []CriterionResult {
	var out []CriterionResult
	for _, c := range items {
		if c.Met == met {
			out = append(out, c)
		}
	}
	return out
}
