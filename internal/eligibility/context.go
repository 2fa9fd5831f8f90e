package eligibility

import (
	"strings"

	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/normalize"
)

// Thresholds are the numeric cut-offs used while deriving context signals.
type Thresholds struct {
	SeniorAge       int   // age at or above which a patient is a senior citizen
	LowIncomeAnnual int64 // annual household income at or below which income is low
	ESICMonthlyWage int64 // ESI Act monthly wage ceiling
	Income          normalize.IncomePolicy
}

// DefaultThresholds returns the cut-offs the catalogue was written against.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SeniorAge:       60,
		LowIncomeAnnual: 200000,
		ESICMonthlyWage: 21000,
		Income:          normalize.DefaultIncomePolicy(),
	}
}

// Keyword sets behind the context signals.
var (
	womanTerms        = normalize.Keywords{"female", "woman", "f"}
	pregnancyTerms    = normalize.Keywords{"pregnan", "antenatal", "gestation", "labour pain", "delivery"}
	priorityRation    = normalize.Keywords{"bpl", "antyodaya", "aay", "yellow", "phh", "priority"}
	scStTerms         = normalize.Keywords{"sc", "st", "scheduled caste", "scheduled tribe"}
	kuchaTerms        = normalize.Keywords{"kucha", "kutcha", "mud", "thatch"}
	manualLaborTerms  = normalize.Keywords{"labor", "labour", "manual", "daily wage", "migrant worker"}
	esicTerms         = normalize.Keywords{"employee", "worker", "factory", "industrial", "staff", "salaried", "private job"}
	governmentTerms   = normalize.Keywords{"government", "govt", "central service", "state service", "pensioner"}
	defenseTerms      = normalize.Keywords{"veteran", "ex-serviceman", "defence", "defense", "army", "navy", "air force"}
	lowIncomeFallback = normalize.Keywords{"below", "under", "low income", "less than"}
)

// Context is the flattened set of signals derived from one profile and
// transcript. It is rebuilt for every evaluation and never mutated.
type Context struct {
	ClinicalText  string
	Location      string
	Age           *int
	MonthlyIncome *int64
	AnnualIncome  *int64

	HasIdentity        bool
	HasAge             bool
	HasGender          bool
	HasRationCard      bool
	HasIncomeBracket   bool
	HasOccupation      bool
	HasCasteCategory   bool
	HasHousingType     bool
	HasDiagnosis       bool
	HasClinicalSummary bool
	HasVitals          bool

	IsWoman              bool
	IsPregnant           bool
	IsSeniorCitizen      bool
	IsPriorityRationCard bool
	IsScOrSt             bool
	IsKuchaHousing       bool
	IsManualLabor        bool
	IsESICOccupation     bool
	IsGovernmentEmployee bool
	IsDefenseBeneficiary bool
	IsLowIncome          bool

	BackendPMJAYEligible bool
	BackendStateEligible bool

	thresholds Thresholds
}

// Thresholds returns the cut-offs the context was built with.
func (c *Context) Thresholds() Thresholds {
	return c.thresholds
}

// MonthlyIncomeAtMost reports whether a parsed monthly income exists and is
// no greater than limit. Unknown income is never treated as zero.
func (c *Context) MonthlyIncomeAtMost(limit int64) bool {
	return c.MonthlyIncome != nil && *c.MonthlyIncome <= limit
}

// LocatedIn reports whether the residence location matches any of the
// given state names or codes.
func (c *Context) LocatedIn(state normalize.Keywords) bool {
	return state.Match(c.Location)
}

// BuildContext derives the eligibility context. It is a pure function of its
// inputs: identical inputs give identical contexts and nothing is modified.
func BuildContext(p model.PatientProfile, transcript []model.TranscriptEvent, t Thresholds) *Context {
	clinical := clinicalText(p, transcript)

	gender := normalize.ToLowerText(p.Gender)
	occupation := normalize.ToLowerText(p.Occupation)
	ration := normalize.ToLowerText(p.RationCardType)
	caste := normalize.ToLowerText(p.CasteCategory)
	housing := normalize.ToLowerText(p.HousingType)
	incomeText := normalize.ToLowerText(p.IncomeBracket)

	age := normalize.ParseAge(p.Age)
	monthly := normalize.ParseMonthlyIncome(incomeText, t.Income)
	annual := normalize.ParseAnnualIncome(incomeText, t.Income)

	hasDiagnosis := normalize.ToText(p.TentativeDoctorDiagnosis) != "" || normalize.ToText(p.InitialLLMDiagnosis) != ""
	hasAge := normalize.ToText(p.Age) != ""
	hasGender := gender != ""

	isLowIncome := lowIncomeFallback.Match(incomeText)
	if annual != nil {
		isLowIncome = *annual <= t.LowIncomeAnnual
	}

	return &Context{
		ClinicalText:  clinical,
		Location:      normalize.ToLowerText(p.Location),
		Age:           age,
		MonthlyIncome: monthly,
		AnnualIncome:  annual,

		HasIdentity:        normalize.ToText(p.Name) != "" && hasAge && hasGender,
		HasAge:             hasAge,
		HasGender:          hasGender,
		HasRationCard:      ration != "",
		HasIncomeBracket:   incomeText != "",
		HasOccupation:      occupation != "",
		HasCasteCategory:   caste != "",
		HasHousingType:     housing != "",
		HasDiagnosis:       hasDiagnosis,
		HasClinicalSummary: normalize.ToText(p.ChiefComplaint) != "" || hasDiagnosis || len(nonEmpty(p.Symptoms)) > 0,
		HasVitals:          hasVitals(p.Vitals),

		IsWoman:              womanTerms.Match(gender),
		IsPregnant:           pregnancyTerms.Match(clinical),
		IsSeniorCitizen:      age != nil && *age >= t.SeniorAge,
		IsPriorityRationCard: priorityRation.Match(ration) || normalize.HasAffirmativeSignal(ration),
		IsScOrSt:             scStTerms.Match(caste) || normalize.HasAffirmativeSignal(caste),
		IsKuchaHousing:       kuchaTerms.Match(housing) || normalize.HasAffirmativeSignal(housing),
		IsManualLabor:        manualLaborTerms.Match(occupation) || normalize.HasAffirmativeSignal(occupation),
		IsESICOccupation:     esicTerms.Match(occupation),
		IsGovernmentEmployee: governmentTerms.Match(occupation),
		IsDefenseBeneficiary: defenseTerms.Match(occupation),
		IsLowIncome:          isLowIncome,

		BackendPMJAYEligible: p.SchemeVerification.PMJAYEligible(),
		BackendStateEligible: p.SchemeVerification.StateEligible(),

		thresholds: t,
	}
}

// clinicalText joins complaint, diagnoses, symptoms, history and every text
// utterance of the transcript into one lower-cased corpus.
func clinicalText(p model.PatientProfile, transcript []model.TranscriptEvent) string {
	parts := []string{
		normalize.ToText(p.ChiefComplaint),
		normalize.ToText(p.TentativeDoctorDiagnosis),
		normalize.ToText(p.InitialLLMDiagnosis),
		strings.Join(nonEmpty(p.Symptoms), " "),
		strings.Join(nonEmpty(p.MedicalHistory), " "),
	}
	for _, ev := range transcript {
		if ev.Type == model.TranscriptText {
			parts = append(parts, strings.TrimSpace(ev.Content))
		}
	}
	return normalize.CollapseSpace(strings.Join(parts, " "))
}

func hasVitals(v *model.Vitals) bool {
	if v == nil {
		return false
	}
	return normalize.ToText(v.BloodPressure) != "" ||
		normalize.ToText(v.Pulse) != "" ||
		normalize.ToText(v.Temperature) != "" ||
		normalize.ToText(v.SpO2) != ""
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
