package normalize

import (
	"strconv"
	"strings"

	"github.com/gyeh/schemescreen/internal/model"
)

// ToProfile converts a Parquet-read ProfileRow into the engine's profile and
// transcript inputs. Empty columns become absent fields.
func ToProfile(row *model.ProfileRow) (model.PatientProfile, []model.TranscriptEvent) {
	p := model.PatientProfile{
		Name:   optStr(row.Name),
		Age:    optStr(row.Age),
		Gender: optStr(row.Gender),

		ChiefComplaint:           optStr(row.ChiefComplaint),
		Symptoms:                 SplitList(row.Symptoms),
		MedicalHistory:           SplitList(row.MedicalHistory),
		TentativeDoctorDiagnosis: optStr(row.TentativeDoctorDiagnosis),
		InitialLLMDiagnosis:      optStr(row.InitialLLMDiagnosis),

		RationCardType: optStr(row.RationCardType),
		IncomeBracket:  optStr(row.IncomeBracket),
		Occupation:     optStr(row.Occupation),
		CasteCategory:  optStr(row.CasteCategory),
		HousingType:    optStr(row.HousingType),
		Location:       optStr(row.Location),
	}

	vitals := model.Vitals{
		Temperature:   optStr(row.Temperature),
		BloodPressure: optStr(row.BloodPressure),
		Pulse:         optStr(row.Pulse),
		SpO2:          optStr(row.SpO2),
	}
	if vitals != (model.Vitals{}) {
		p.Vitals = &vitals
	}

	// Verification columns are only present when an upstream check ran.
	if row.PMJAYVerified != nil || row.StateVerified != nil {
		snap := &model.SchemeVerificationSnapshot{}
		if row.PMJAYVerified != nil {
			snap.PMJAY = &model.VerificationResult{Eligible: *row.PMJAYVerified}
		}
		if row.StateVerified != nil {
			snap.StateScheme = &model.VerificationResult{Eligible: *row.StateVerified}
		}
		p.SchemeVerification = snap
	}

	var transcript []model.TranscriptEvent
	for _, line := range strings.Split(ToText(row.Transcript), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			transcript = append(transcript, model.TranscriptEvent{Type: model.TranscriptText, Content: line})
		}
	}
	return p, transcript
}

// ProfileFromMap builds a profile from a loosely-typed record such as a
// decoded JSON or YAML document. Unknown keys are ignored and scalar values
// of any type are stringified.
func ProfileFromMap(raw map[string]any) model.PatientProfile {
	var p model.PatientProfile
	for key, v := range raw {
		setField(&p, key, v)
	}
	return p
}

// ApplyUpdate returns a copy of p with a structured field-update event
// applied. Text events and unknown fields leave the profile unchanged.
// The input profile is never modified.
func ApplyUpdate(p model.PatientProfile, ev model.TranscriptEvent) model.PatientProfile {
	if ev.Type != model.TranscriptUpdate || ev.Field == "" {
		return p
	}
	if p.Vitals != nil {
		v := *p.Vitals
		p.Vitals = &v
	}
	if p.SchemeVerification != nil {
		s := *p.SchemeVerification
		p.SchemeVerification = &s
	}
	setField(&p, ev.Field, ev.Value)
	return p
}

// ReplayTranscript applies every update event in order to a copy of base.
func ReplayTranscript(base model.PatientProfile, events []model.TranscriptEvent) model.PatientProfile {
	p := base
	for _, ev := range events {
		p = ApplyUpdate(p, ev)
	}
	return p
}

func setField(p *model.PatientProfile, key string, v any) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "name":
		p.Name = OptText(v)
	case "age":
		p.Age = OptText(v)
	case "gender":
		p.Gender = OptText(v)
	case "chief_complaint":
		p.ChiefComplaint = OptText(v)
	case "symptoms":
		p.Symptoms = TextList(v)
	case "medical_history":
		p.MedicalHistory = TextList(v)
	case "family_history":
		p.FamilyHistory = TextList(v)
	case "allergies":
		p.Allergies = TextList(v)
	case "medications":
		p.Medications = TextList(v)
	case "tentative_doctor_diagnosis", "diagnosis":
		p.TentativeDoctorDiagnosis = OptText(v)
	case "initial_llm_diagnosis":
		p.InitialLLMDiagnosis = OptText(v)
	case "ration_card_type", "ration_card":
		p.RationCardType = OptText(v)
	case "income_bracket", "income":
		p.IncomeBracket = OptText(v)
	case "occupation":
		p.Occupation = OptText(v)
	case "caste_category", "caste":
		p.CasteCategory = OptText(v)
	case "housing_type", "housing":
		p.HousingType = OptText(v)
	case "location":
		p.Location = OptText(v)
	case "vitals":
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		for k, vv := range m {
			setField(p, k, vv)
		}
	case "temperature", "temp":
		vitals(p).Temperature = OptText(v)
	case "blood_pressure", "bp":
		vitals(p).BloodPressure = OptText(v)
	case "pulse":
		vitals(p).Pulse = OptText(v)
	case "spo2":
		vitals(p).SpO2 = OptText(v)
	case "respiratory_rate":
		vitals(p).RespiratoryRate = OptText(v)
	case "scheme_eligibility", "scheme_verification":
		p.SchemeVerification = verificationSnapshot(v)
	default:
		return false
	}
	return true
}

func vitals(p *model.PatientProfile) *model.Vitals {
	if p.Vitals == nil {
		p.Vitals = &model.Vitals{}
	}
	return p.Vitals
}

func verificationSnapshot(v any) *model.SchemeVerificationSnapshot {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	snap := &model.SchemeVerificationSnapshot{
		PMJAY:       verificationResult(m["pmjay"]),
		StateScheme: verificationResult(m["state_scheme"]),
	}
	if snap.PMJAY == nil && snap.StateScheme == nil {
		return nil
	}
	return snap
}

func verificationResult(v any) *model.VerificationResult {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	r := &model.VerificationResult{
		Eligible: boolValue(m["eligible"]),
		Reasons:  TextList(m["reasons"]),
	}
	if c, err := strconv.ParseFloat(Text(m["confidence"]), 64); err == nil {
		r.Confidence = c
	}
	return r
}

// boolValue accepts a real bool or its canonical text form. Anything else is
// false; external verification flags are trusted only when unambiguous.
func boolValue(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	b, err := strconv.ParseBool(Text(v))
	return err == nil && b
}

func optStr(s *string) *string {
	t := ToText(s)
	if t == "" {
		return nil
	}
	return &t
}
