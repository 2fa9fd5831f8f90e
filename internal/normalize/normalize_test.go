package normalize

import (
	"bytes"
	"testing"

	"github.com/gyeh/schemescreen/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func TestApplyUpdate_DoesNotMutateInput(t *testing.T) {
	base := model.PatientProfile{
		Location: strPtr("Pune"),
		Vitals:   &model.Vitals{Pulse: strPtr("80")},
	}
	updated := ApplyUpdate(base, model.TranscriptEvent{
		Type:  model.TranscriptUpdate,
		Field: "bp",
		Value: "120/80",
	})

	if base.Vitals.BloodPressure != nil {
		t.Fatal("input vitals were modified")
	}
	if updated.Vitals == base.Vitals {
		t.Fatal("updated profile shares the input vitals pointer")
	}
	if got := ToText(updated.Vitals.BloodPressure); got != "120/80" {
		t.Errorf("expected bp 120/80, got %q", got)
	}
	if got := ToText(updated.Vitals.Pulse); got != "80" {
		t.Errorf("expected pulse kept, got %q", got)
	}
}

func TestApplyUpdate_IgnoresTextAndUnknown(t *testing.T) {
	base := model.PatientProfile{Name: strPtr("Asha")}
	got := ApplyUpdate(base, model.TranscriptEvent{Type: model.TranscriptText, Content: "name is Meena"})
	if ToText(got.Name) != "Asha" {
		t.Errorf("text event changed the profile: %q", ToText(got.Name))
	}
	got = ApplyUpdate(base, model.TranscriptEvent{Type: model.TranscriptUpdate, Field: "shoe_size", Value: "9"})
	if ToText(got.Name) != "Asha" {
		t.Errorf("unknown field changed the profile")
	}
}

func TestReplayTranscript_LastUpdateWins(t *testing.T) {
	events := []model.TranscriptEvent{
		{Type: model.TranscriptUpdate, Field: "income", Value: "10000 per month"},
		{Type: model.TranscriptText, Content: "patient corrects income"},
		{Type: model.TranscriptUpdate, Field: "income_bracket", Value: "12000 per month"},
		{Type: model.TranscriptUpdate, Field: "age", Value: 52.0},
	}
	p := ReplayTranscript(model.PatientProfile{}, events)
	if got := ToText(p.IncomeBracket); got != "12000 per month" {
		t.Errorf("expected last income update, got %q", got)
	}
	if got := ToText(p.Age); got != "52" {
		t.Errorf("expected numeric age stringified, got %q", got)
	}
}

func TestProfileFromMap(t *testing.T) {
	p := ProfileFromMap(map[string]any{
		"name":       "Lakshmi",
		"age":        float64(64),
		"symptoms":   []any{"breathlessness", "fatigue"},
		"caste":      "ST",
		"vitals":     map[string]any{"spo2": "93%", "temp": 99.1},
		"unexpected": "ignored",
		"scheme_eligibility": map[string]any{
			"pmjay":        map[string]any{"eligible": true, "reasons": []any{"D4"}, "confidence": 0.8},
			"state_scheme": map[string]any{"eligible": "false"},
		},
	})

	if ToText(p.Name) != "Lakshmi" || ToText(p.Age) != "64" {
		t.Errorf("unexpected demographics: %q %q", ToText(p.Name), ToText(p.Age))
	}
	if len(p.Symptoms) != 2 {
		t.Errorf("expected 2 symptoms, got %v", p.Symptoms)
	}
	if ToText(p.CasteCategory) != "ST" {
		t.Errorf("caste alias not applied")
	}
	if p.Vitals == nil || ToText(p.Vitals.SpO2) != "93%" || ToText(p.Vitals.Temperature) != "99.1" {
		t.Errorf("unexpected vitals: %+v", p.Vitals)
	}
	if !p.SchemeVerification.PMJAYEligible() {
		t.Error("expected PM-JAY verified")
	}
	if p.SchemeVerification.StateEligible() {
		t.Error("expected state scheme not verified")
	}
	if p.SchemeVerification.PMJAY.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", p.SchemeVerification.PMJAY.Confidence)
	}
}

func TestToProfile(t *testing.T) {
	row := &model.ProfileRow{
		ProfileID:     "p-1",
		Name:          strPtr(" Ravi "),
		Gender:        strPtr(""),
		Symptoms:      strPtr("fever;cough"),
		Pulse:         strPtr("88"),
		PMJAYVerified: boolPtr(true),
		Transcript:    strPtr("doctor: since when?\n\npatient: two days"),
	}
	p, transcript := ToProfile(row)

	if ToText(p.Name) != "Ravi" {
		t.Errorf("expected trimmed name, got %q", ToText(p.Name))
	}
	if p.Gender != nil {
		t.Error("expected empty gender to be absent")
	}
	if len(p.Symptoms) != 2 {
		t.Errorf("expected 2 symptoms, got %v", p.Symptoms)
	}
	if p.Vitals == nil || ToText(p.Vitals.Pulse) != "88" {
		t.Errorf("expected pulse vitals, got %+v", p.Vitals)
	}
	if !p.SchemeVerification.PMJAYEligible() || p.SchemeVerification.StateScheme != nil {
		t.Errorf("unexpected verification snapshot: %+v", p.SchemeVerification)
	}
	if len(transcript) != 2 || transcript[1].Content != "patient: two days" {
		t.Errorf("unexpected transcript: %+v", transcript)
	}
}

func TestToProfile_NoVitalsNoVerification(t *testing.T) {
	p, transcript := ToProfile(&model.ProfileRow{ProfileID: "p-2", Age: strPtr("40")})
	if p.Vitals != nil {
		t.Error("expected nil vitals")
	}
	if p.SchemeVerification != nil {
		t.Error("expected nil verification")
	}
	if transcript != nil {
		t.Errorf("expected no transcript events, got %v", transcript)
	}
}

func TestProfileHash_Stable(t *testing.T) {
	p := model.PatientProfile{Name: strPtr("Asha"), Location: strPtr("Kerala")}
	tr := []model.TranscriptEvent{{Type: model.TranscriptText, Content: "fever"}}

	h1 := ProfileHash(p, tr)
	h2 := ProfileHash(p, tr)
	if !bytes.Equal(h1, h2) {
		t.Fatal("hash is not stable")
	}
	p.Location = strPtr("Odisha")
	if bytes.Equal(h1, ProfileHash(p, tr)) {
		t.Fatal("hash did not change with location")
	}
}
