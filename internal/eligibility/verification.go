package eligibility

import (
	"strings"

	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/normalize"
)

// SECC 2011 rural deprivation markers used by the PM-JAY pre-check.
var (
	automaticInclusion = normalize.Keywords{"manual scavenger", "scavenger", "destitute", "beggar", "bonded labor", "bonded labour"}
	seccScSt           = normalize.Keywords{"sc", "st", "scheduled"}
	seccLabour         = normalize.Keywords{"labor", "labour"}
	seccRationProxy    = normalize.Keywords{"bpl", "antyodaya", "aay", "yellow"}
)

// D1 needs the housing value to be exactly one of these, so "Kutcha house"
// or "semi-pucca with mud floor" does not qualify.
var seccKuchaHousing = map[string]bool{"kucha": true, "mud": true, "thatch": true}

// DeriveVerification computes the rural PM-JAY and state-scheme pre-check
// that an upstream verification service would otherwise supply. It is only
// used by callers that explicitly want it; BuildContext never derives flags
// on its own.
func DeriveVerification(p model.PatientProfile) model.SchemeVerificationSnapshot {
	occupation := normalize.ToLowerText(p.Occupation)
	housing := normalize.ToLowerText(p.HousingType)
	caste := normalize.ToLowerText(p.CasteCategory)
	ration := normalize.ToLowerText(p.RationCardType)

	pmjay := &model.VerificationResult{Confidence: 0.5}
	include := func(reason string, confidence float64) {
		pmjay.Eligible = true
		pmjay.Reasons = append(pmjay.Reasons, reason)
		pmjay.Confidence = confidence
	}

	if automaticInclusion.Match(occupation) {
		include("Automatic Inclusion: Vulnerable occupational group", 0.9)
	}
	if seccKuchaHousing[strings.TrimSpace(housing)] {
		include("D1: Living in kucha walls and kucha roof", 0.8)
	}
	if seccScSt.Match(caste) {
		include("D4: SC/ST household member identified", 0.8)
	}
	if seccLabour.Match(occupation) {
		include("D5: Landless household deriving income from casual manual labour", 0.8)
	}
	if seccRationProxy.Match(ration) {
		include("Proxy Inclusion: "+strings.ToUpper(ration)+" card holder", 0.9)
	}

	state := &model.VerificationResult{Eligible: pmjay.Eligible}
	if age := normalize.ParseAge(p.Age); age != nil && *age >= 60 {
		state.Eligible = true
		state.Reasons = []string{"Senior Citizen medical aid eligibility"}
	} else if pmjay.Eligible {
		state.Reasons = append([]string(nil), pmjay.Reasons...)
	}

	return model.SchemeVerificationSnapshot{PMJAY: pmjay, StateScheme: state}
}

// WithDerivedVerification returns p with a derived verification snapshot
// when it carries none. An existing external snapshot is kept as-is.
func WithDerivedVerification(p model.PatientProfile) model.PatientProfile {
	if p.SchemeVerification != nil {
		return p
	}
	snap := DeriveVerification(p)
	p.SchemeVerification = &snap
	return p
}
