package eligibility

import (
	"testing"

	"github.com/gyeh/schemescreen/internal/model"
)

func TestDeriveVerification_Deprivation(t *testing.T) {
	snap := DeriveVerification(model.PatientProfile{
		HousingType:   strPtr("Kucha"),
		CasteCategory: strPtr("Scheduled Caste"),
	})
	if !snap.PMJAYEligible() {
		t.Fatal("expected PM-JAY pre-check to pass")
	}
	if len(snap.PMJAY.Reasons) != 2 {
		t.Errorf("expected 2 reasons, got %v", snap.PMJAY.Reasons)
	}
	if snap.PMJAY.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", snap.PMJAY.Confidence)
	}
	if !snap.StateEligible() {
		t.Error("state pre-check should follow PM-JAY")
	}
}

func TestDeriveVerification_RationProxy(t *testing.T) {
	snap := DeriveVerification(model.PatientProfile{RationCardType: strPtr("bpl")})
	if !snap.PMJAYEligible() || snap.PMJAY.Confidence != 0.9 {
		t.Fatalf("unexpected result: %+v", snap.PMJAY)
	}
	if snap.PMJAY.Reasons[0] != "Proxy Inclusion: BPL card holder" {
		t.Errorf("unexpected reason %q", snap.PMJAY.Reasons[0])
	}
}

func TestDeriveVerification_SeniorOnly(t *testing.T) {
	snap := DeriveVerification(model.PatientProfile{Age: strPtr("71"), HousingType: strPtr("pucca")})
	if snap.PMJAYEligible() {
		t.Error("no deprivation marker: PM-JAY should fail")
	}
	if snap.PMJAY.Confidence != 0.5 {
		t.Errorf("expected base confidence 0.5, got %v", snap.PMJAY.Confidence)
	}
	if !snap.StateEligible() {
		t.Error("expected senior citizen state eligibility")
	}
}

func TestWithDerivedVerification_KeepsExisting(t *testing.T) {
	existing := &model.SchemeVerificationSnapshot{PMJAY: &model.VerificationResult{Eligible: false}}
	p := model.PatientProfile{HousingType: strPtr("kucha"), SchemeVerification: existing}
	if got := WithDerivedVerification(p); got.SchemeVerification != existing {
		t.Error("existing snapshot was replaced")
	}

	p.SchemeVerification = nil
	got := WithDerivedVerification(p)
	if !got.SchemeVerification.PMJAYEligible() {
		t.Error("expected derived PM-JAY eligibility")
	}
	if p.SchemeVerification != nil {
		t.Error("input profile was modified")
	}
}

func TestDeriveVerification_KuchaHousingIsExact(t *testing.T) {
	for _, housing := range []string{"Kucha", " mud ", "THATCH"} {
		snap := DeriveVerification(model.PatientProfile{HousingType: strPtr(housing)})
		if !snap.PMJAYEligible() {
			t.Errorf("housing %q should meet D1", housing)
		}
	}
	for _, housing := range []string{"Kutcha house", "kucha walls", "semi-pucca with mud floor"} {
		snap := DeriveVerification(model.PatientProfile{HousingType: strPtr(housing)})
		if snap.PMJAYEligible() {
			t.Errorf("housing %q should not meet D1", housing)
		}
	}
}
