package eligibility

import "github.com/gyeh/schemescreen/internal/model"

// Predicate is a pure test over a built context.
type Predicate func(*Context) bool

// CriterionDefinition is one named, explainable eligibility test tied to a
// patient field for highlighting.
type CriterionDefinition struct {
	ID          string
	FieldKey    model.FieldKey
	Label       string
	Description string
	Test        Predicate
}

// DocumentDefinition is one required document. A nil Test marks a
// manual-only document that can never be inferred from the profile.
type DocumentDefinition struct {
	ID                  string
	Name                string
	EvidenceWhenPresent string
	EvidenceWhenMissing string
	Test                Predicate
}

// ManualOnly reports whether the document can only be satisfied by an
// external checkbox.
func (d DocumentDefinition) ManualOnly() bool {
	return d.Test == nil
}

// SchemeDefinition is one catalogue entry: its criteria, its document
// checklist and the rule composing criterion results into one verdict.
type SchemeDefinition struct {
	ID          string
	Name        string
	Description string
	Criteria    []CriterionDefinition
	Documents   []DocumentDefinition
	Rule        Rule
}

// manual builds a manual-only document whose evidence text is the same for
// both outcomes.
func manual(id, name, evidence string) DocumentDefinition {
	return DocumentDefinition{
		ID:                  id,
		Name:                name,
		EvidenceWhenPresent: evidence,
		EvidenceWhenMissing: evidence,
	}
}
