package model

// PatientProfile is a sparse patient record captured during a consultation.
// Every field is optional and may be filled in any order; consumers must go
// through the normalize package rather than reading raw values directly.
type PatientProfile struct {
	Name   *string `json:"name,omitempty" yaml:"name,omitempty"`
	Age    *string `json:"age,omitempty" yaml:"age,omitempty"`
	Gender *string `json:"gender,omitempty" yaml:"gender,omitempty"`

	// Clinical
	ChiefComplaint           *string  `json:"chief_complaint,omitempty" yaml:"chief_complaint,omitempty"`
	Symptoms                 []string `json:"symptoms,omitempty" yaml:"symptoms,omitempty"`
	Vitals                   *Vitals  `json:"vitals,omitempty" yaml:"vitals,omitempty"`
	MedicalHistory           []string `json:"medical_history,omitempty" yaml:"medical_history,omitempty"`
	FamilyHistory            []string `json:"family_history,omitempty" yaml:"family_history,omitempty"`
	Allergies                []string `json:"allergies,omitempty" yaml:"allergies,omitempty"`
	TentativeDoctorDiagnosis *string  `json:"tentative_doctor_diagnosis,omitempty" yaml:"tentative_doctor_diagnosis,omitempty"`
	InitialLLMDiagnosis      *string  `json:"initial_llm_diagnosis,omitempty" yaml:"initial_llm_diagnosis,omitempty"`
	Medications              []string `json:"medications,omitempty" yaml:"medications,omitempty"`

	// Socioeconomic
	RationCardType *string `json:"ration_card_type,omitempty" yaml:"ration_card_type,omitempty"`
	IncomeBracket  *string `json:"income_bracket,omitempty" yaml:"income_bracket,omitempty"`
	Occupation     *string `json:"occupation,omitempty" yaml:"occupation,omitempty"`
	CasteCategory  *string `json:"caste_category,omitempty" yaml:"caste_category,omitempty"`
	HousingType    *string `json:"housing_type,omitempty" yaml:"housing_type,omitempty"`
	Location       *string `json:"location,omitempty" yaml:"location,omitempty"`

	// SchemeVerification is a pre-computed snapshot from an external
	// verification call. It is trusted as-is when present.
	SchemeVerification *SchemeVerificationSnapshot `json:"scheme_eligibility,omitempty" yaml:"scheme_eligibility,omitempty"`
}

// Vitals holds free-text vital signs as captured.
type Vitals struct {
	Temperature     *string `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	BloodPressure   *string `json:"blood_pressure,omitempty" yaml:"blood_pressure,omitempty"`
	Pulse           *string `json:"pulse,omitempty" yaml:"pulse,omitempty"`
	SpO2            *string `json:"spo2,omitempty" yaml:"spo2,omitempty"`
	RespiratoryRate *string `json:"respiratory_rate,omitempty" yaml:"respiratory_rate,omitempty"`
}

// SchemeVerificationSnapshot carries externally verified eligibility per
// scheme family.
type SchemeVerificationSnapshot struct {
	PMJAY       *VerificationResult `json:"pmjay,omitempty" yaml:"pmjay,omitempty"`
	StateScheme *VerificationResult `json:"state_scheme,omitempty" yaml:"state_scheme,omitempty"`
}

// VerificationResult is one scheme family's verification outcome.
type VerificationResult struct {
	Eligible   bool     `json:"eligible" yaml:"eligible"`
	Reasons    []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
	Confidence float64  `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// PMJAYEligible reports the verified PM-JAY flag; nil-safe.
func (s *SchemeVerificationSnapshot) PMJAYEligible() bool {
	return s != nil && s.PMJAY != nil && s.PMJAY.Eligible
}

// StateEligible reports the verified state-scheme flag; nil-safe.
func (s *SchemeVerificationSnapshot) StateEligible() bool {
	return s != nil && s.StateScheme != nil && s.StateScheme.Eligible
}
