package model

// ProfileRow mirrors the Parquet schema for one patient profile in a batch
// screening file. List fields are stored as ";"-joined text and the
// transcript as newline-joined utterances; normalize.ToProfile expands them.
type ProfileRow struct {
	ProfileID string `parquet:"profile_id"`

	// Demographics
	Name   *string `parquet:"name,optional"`
	Age    *string `parquet:"age,optional"`
	Gender *string `parquet:"gender,optional"`

	// Clinical
	ChiefComplaint           *string `parquet:"chief_complaint,optional"`
	Symptoms                 *string `parquet:"symptoms,optional"`
	MedicalHistory           *string `parquet:"medical_history,optional"`
	TentativeDoctorDiagnosis *string `parquet:"tentative_doctor_diagnosis,optional"`
	InitialLLMDiagnosis      *string `parquet:"initial_llm_diagnosis,optional"`
	Temperature              *string `parquet:"temperature,optional"`
	BloodPressure            *string `parquet:"blood_pressure,optional"`
	Pulse                    *string `parquet:"pulse,optional"`
	SpO2                     *string `parquet:"spo2,optional"`

	// Socioeconomic
	RationCardType *string `parquet:"ration_card_type,optional"`
	IncomeBracket  *string `parquet:"income_bracket,optional"`
	Occupation     *string `parquet:"occupation,optional"`
	CasteCategory  *string `parquet:"caste_category,optional"`
	HousingType    *string `parquet:"housing_type,optional"`
	Location       *string `parquet:"location,optional"`

	// External verification flags
	PMJAYVerified *bool `parquet:"pmjay_verified,optional"`
	StateVerified *bool `parquet:"state_verified,optional"`

	Transcript *string `parquet:"transcript,optional"`
}

// ProfileColumns lists the profile-bearing Parquet columns (everything but
// profile_id). A usable batch file must carry at least one of them.
func ProfileColumns() []string {
	return []string{
		"name", "age", "gender",
		"chief_complaint", "symptoms", "medical_history",
		"tentative_doctor_diagnosis", "initial_llm_diagnosis",
		"temperature", "blood_pressure", "pulse", "spo2",
		"ration_card_type", "income_bracket", "occupation",
		"caste_category", "housing_type", "location",
		"pmjay_verified", "state_verified", "transcript",
	}
}
