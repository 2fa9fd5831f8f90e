package eligibility

import (
	"testing"

	"github.com/gyeh/schemescreen/internal/model"
)

func keralaProfile() model.PatientProfile {
	return model.PatientProfile{
		Name:           strPtr("Anitha"),
		Gender:         strPtr("F"),
		RationCardType: strPtr("BPL"),
		CasteCategory:  strPtr("SC"),
		Location:       strPtr("Thrissur, Kerala"),
	}
}

func TestBuildWorkspace_RankingIsDeterministic(t *testing.T) {
	p := keralaProfile()
	first := BuildWorkspace(p, nil)
	second := BuildWorkspace(p, nil)

	if len(first.Schemes) != DefaultCatalogue().Len() {
		t.Fatalf("expected %d schemes, got %d", DefaultCatalogue().Len(), len(first.Schemes))
	}
	for i := range first.Schemes {
		if first.Schemes[i].ID != second.Schemes[i].ID {
			t.Fatalf("rank %d differs: %s vs %s", i, first.Schemes[i].ID, second.Schemes[i].ID)
		}
	}
}

func TestBuildWorkspace_EligibleFirst(t *testing.T) {
	ws := BuildWorkspace(keralaProfile(), nil)

	if ws.Schemes[0].ID != "kasp" || ws.Schemes[1].ID != "pmjay" {
		t.Fatalf("expected kasp then pmjay first, got %s, %s", ws.Schemes[0].ID, ws.Schemes[1].ID)
	}
	if got := len(ws.Eligible()); got != 2 {
		t.Errorf("expected 2 eligible schemes, got %d", got)
	}
	for i := 1; i < len(ws.Schemes); i++ {
		if ws.Schemes[i-1].EligibilityBand.Rank() > ws.Schemes[i].EligibilityBand.Rank() {
			t.Errorf("band order violated at %d", i)
		}
	}
	if ws.Scheme("echs") == nil || ws.Scheme("nope") != nil {
		t.Error("Scheme lookup by id is wrong")
	}
}

func TestRankSchemes_TieBreaks(t *testing.T) {
	schemes := []SchemeEvaluation{
		{ID: "z", Name: "Beta", EligibilityBand: BandNotEligible, MetCriteriaRatio: 0.5, MetCriteriaCount: 1},
		{ID: "b", Name: "Alpha", EligibilityBand: BandNotEligible, MetCriteriaRatio: 0.5, MetCriteriaCount: 1},
		{ID: "a", Name: "Alpha", EligibilityBand: BandNotEligible, MetCriteriaRatio: 0.5, MetCriteriaCount: 1},
		{ID: "c", Name: "Gamma", EligibilityBand: BandNotEligible, MetCriteriaRatio: 0.5, MetCriteriaCount: 2},
		{ID: "d", Name: "Delta", EligibilityBand: BandLikelyNotEligible, MetCriteriaRatio: 0.75, MetCriteriaCount: 3},
		{ID: "e", Name: "Epsilon", EligibilityBand: BandEligible, MetCriteriaRatio: 0.25, MetCriteriaCount: 1},
	}
	RankSchemes(schemes)

	want := []string{"e", "d", "c", "a", "b", "z"}
	for i, id := range want {
		if schemes[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, schemes[i].ID)
		}
	}
}

func TestEngine_Subset(t *testing.T) {
	cat, err := DefaultCatalogue().Subset([]string{"echs", "pmjay"})
	if err != nil {
		t.Fatalf("Subset: %v", err)
	}
	e := &Engine{Catalogue: cat, Thresholds: DefaultThresholds()}
	ws := e.BuildWorkspace(model.PatientProfile{}, nil)
	if len(ws.Schemes) != 2 {
		t.Fatalf("expected 2 schemes, got %d", len(ws.Schemes))
	}
	// Ties on band, ratio and count fall back to name.
	if ws.Schemes[0].ID != "pmjay" {
		t.Errorf("expected Ayushman Bharat PM-JAY before ECHS, got %s", ws.Schemes[0].ID)
	}
}

func TestFieldStatus(t *testing.T) {
	if got := FieldStatus(model.FieldLocation, nil); got != FieldNeutral {
		t.Errorf("nil scheme: expected neutral, got %s", got)
	}

	ws := BuildWorkspace(keralaProfile(), nil)
	kasp := ws.Scheme("kasp")
	cases := []struct {
		key  model.FieldKey
		want FieldMatchStatus
	}{
		{model.FieldLocation, FieldMatch},
		{model.FieldRationCardType, FieldMatch},
		{model.FieldIncomeBracket, FieldMismatch},
		{model.FieldMilitaryStatus, FieldNeutral},
	}
	for _, c := range cases {
		if got := FieldStatus(c.key, kasp); got != c.want {
			t.Errorf("FieldStatus(%s) = %s, want %s", c.key, got, c.want)
		}
	}
}

func TestPatientFields(t *testing.T) {
	transcript := []model.TranscriptEvent{{Type: model.TranscriptText, Content: "Antenatal checkup due"}}
	ws := BuildWorkspace(keralaProfile(), transcript)

	if len(ws.PatientFields) != len(model.AllFieldKeys) {
		t.Fatalf("expected %d fields, got %d", len(model.AllFieldKeys), len(ws.PatientFields))
	}
	values := make(map[model.FieldKey]string)
	for _, f := range ws.PatientFields {
		values[f.Key] = f.Value
	}
	if values[model.FieldAge] != NotCaptured {
		t.Errorf("expected age not captured, got %q", values[model.FieldAge])
	}
	if values[model.FieldLocation] != "Thrissur, Kerala" {
		t.Errorf("unexpected location %q", values[model.FieldLocation])
	}
	if values[model.FieldPregnancyStatus] != "Present in consultation" {
		t.Errorf("unexpected pregnancy value %q", values[model.FieldPregnancyStatus])
	}
	if values[model.FieldMilitaryStatus] != "No" {
		t.Errorf("unexpected military value %q", values[model.FieldMilitaryStatus])
	}
	if values[model.FieldSchemeVerification] != "Not available" {
		t.Errorf("unexpected verification value %q", values[model.FieldSchemeVerification])
	}
}
