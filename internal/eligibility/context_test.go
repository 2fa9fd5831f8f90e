package eligibility

import (
	"testing"

	"github.com/gyeh/schemescreen/internal/model"
)

func strPtr(s string) *string { return &s }

func TestBuildContext_EmptyProfile(t *testing.T) {
	ctx := BuildContext(model.PatientProfile{}, nil, DefaultThresholds())

	flags := map[string]bool{
		"HasIdentity":          ctx.HasIdentity,
		"HasAge":               ctx.HasAge,
		"HasRationCard":        ctx.HasRationCard,
		"HasClinicalSummary":   ctx.HasClinicalSummary,
		"HasVitals":            ctx.HasVitals,
		"IsPriorityRationCard": ctx.IsPriorityRationCard,
		"IsScOrSt":             ctx.IsScOrSt,
		"IsLowIncome":          ctx.IsLowIncome,
		"IsPregnant":           ctx.IsPregnant,
		"BackendPMJAYEligible": ctx.BackendPMJAYEligible,
	}
	for name, v := range flags {
		if v {
			t.Errorf("%s should be false for an empty profile", name)
		}
	}
	if ctx.Age != nil || ctx.MonthlyIncome != nil || ctx.AnnualIncome != nil {
		t.Error("expected no parsed age or income")
	}
}

func TestBuildContext_Signals(t *testing.T) {
	p := model.PatientProfile{
		Name:           strPtr("Meena"),
		Age:            strPtr("62 years"),
		Gender:         strPtr("Female"),
		ChiefComplaint: strPtr("Swelling of feet"),
		RationCardType: strPtr("Antyodaya"),
		IncomeBracket:  strPtr("₹8,000 per month"),
		Occupation:     strPtr("Daily wage construction labour"),
		CasteCategory:  strPtr("Scheduled Tribe"),
		HousingType:    strPtr("Kutcha house"),
		Vitals:         &model.Vitals{BloodPressure: strPtr("150/95")},
	}
	transcript := []model.TranscriptEvent{
		{Type: model.TranscriptText, Content: "She is in her second trimester of pregnancy"},
		{Type: model.TranscriptUpdate, Field: "pulse", Value: "90"},
	}
	ctx := BuildContext(p, transcript, DefaultThresholds())

	checks := map[string]bool{
		"HasIdentity":          ctx.HasIdentity,
		"HasClinicalSummary":   ctx.HasClinicalSummary,
		"HasVitals":            ctx.HasVitals,
		"IsWoman":              ctx.IsWoman,
		"IsPregnant":           ctx.IsPregnant,
		"IsSeniorCitizen":      ctx.IsSeniorCitizen,
		"IsPriorityRationCard": ctx.IsPriorityRationCard,
		"IsScOrSt":             ctx.IsScOrSt,
		"IsKuchaHousing":       ctx.IsKuchaHousing,
		"IsManualLabor":        ctx.IsManualLabor,
		"IsLowIncome":          ctx.IsLowIncome,
	}
	for name, v := range checks {
		if !v {
			t.Errorf("expected %s to be true", name)
		}
	}
	if ctx.MonthlyIncome == nil || *ctx.MonthlyIncome != 8000 {
		t.Errorf("expected monthly income 8000, got %v", ctx.MonthlyIncome)
	}
	if ctx.AnnualIncome == nil || *ctx.AnnualIncome != 96000 {
		t.Errorf("expected annual income 96000, got %v", ctx.AnnualIncome)
	}
	if ctx.IsGovernmentEmployee || ctx.IsDefenseBeneficiary {
		t.Error("labourer must not be flagged as government or defense")
	}
}

func TestBuildContext_CasteWordBoundary(t *testing.T) {
	ctx := BuildContext(model.PatientProfile{CasteCategory: strPtr("Christian")}, nil, DefaultThresholds())
	if ctx.IsScOrSt {
		t.Error("christian must not be read as ST")
	}
	ctx = BuildContext(model.PatientProfile{CasteCategory: strPtr("SC")}, nil, DefaultThresholds())
	if !ctx.IsScOrSt {
		t.Error("expected SC to be detected")
	}
}

func TestBuildContext_LowIncome(t *testing.T) {
	cases := []struct {
		income string
		want   bool
	}{
		{"1.5 lakh per annum", true},
		{"₹15,000 per month", true},
		{"₹20,000 per month", false},
		{"5 lakh", false},
		{"below poverty line", true},
		{"not disclosed", false},
	}
	for _, c := range cases {
		ctx := BuildContext(model.PatientProfile{IncomeBracket: strPtr(c.income)}, nil, DefaultThresholds())
		if ctx.IsLowIncome != c.want {
			t.Errorf("income %q: IsLowIncome = %v, want %v", c.income, ctx.IsLowIncome, c.want)
		}
	}
}

func TestBuildContext_HugeIncomeIsNotLow(t *testing.T) {
	p := model.PatientProfile{
		Occupation:    strPtr("factory worker"),
		IncomeBracket: strPtr("99999999999999 crore per month"),
	}
	ctx := BuildContext(p, nil, DefaultThresholds())
	if ctx.MonthlyIncome != nil || ctx.AnnualIncome != nil {
		t.Errorf("expected unknown income, got monthly=%v annual=%v", ctx.MonthlyIncome, ctx.AnnualIncome)
	}
	if ctx.IsLowIncome {
		t.Error("an out-of-range income must not read as low income")
	}
	def, _ := DefaultCatalogue().Lookup("esic")
	if Evaluate(def, ctx).Eligible {
		t.Error("an out-of-range income must not satisfy the ESIC wage criterion")
	}
}

func TestBuildContext_NegatedAffirmative(t *testing.T) {
	ctx := BuildContext(model.PatientProfile{RationCardType: strPtr("No card")}, nil, DefaultThresholds())
	if ctx.IsPriorityRationCard {
		t.Error("'No card' must not be a priority ration marker")
	}
	if !ctx.HasRationCard {
		t.Error("a captured ration value still counts as captured")
	}
	ctx = BuildContext(model.PatientProfile{RationCardType: strPtr("BPL - Yes")}, nil, DefaultThresholds())
	if !ctx.IsPriorityRationCard {
		t.Error("expected BPL - Yes to be a priority marker")
	}
}

func TestBuildContext_UsesThresholds(t *testing.T) {
	p := model.PatientProfile{Age: strPtr("58")}
	if BuildContext(p, nil, DefaultThresholds()).IsSeniorCitizen {
		t.Error("58 is not senior under defaults")
	}
	th := DefaultThresholds()
	th.SeniorAge = 55
	ctx := BuildContext(p, nil, th)
	if !ctx.IsSeniorCitizen {
		t.Error("58 should be senior at threshold 55")
	}
	if ctx.Thresholds().SeniorAge != 55 {
		t.Errorf("context did not keep thresholds: %+v", ctx.Thresholds())
	}
}

func TestBuildContext_DoesNotModifyInput(t *testing.T) {
	p := model.PatientProfile{Location: strPtr("  Kerala  "), Symptoms: []string{" fever ", ""}}
	BuildContext(p, nil, DefaultThresholds())
	if *p.Location != "  Kerala  " || p.Symptoms[0] != " fever " || len(p.Symptoms) != 2 {
		t.Errorf("input profile was modified: %+v", p)
	}
}
