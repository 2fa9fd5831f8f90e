package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gyeh/schemescreen/internal/model"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FieldsHash computes a stable SHA-256 over a set of named values.
// Fields are sorted by key name then concatenated with null separators.
func FieldsHash(fields map[string]string) []byte {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(fields[k]))
		h.Write([]byte{0})
	}
	return h.Sum(nil)
}

// ProfileHash fingerprints the screening-relevant content of a profile and
// its transcript, so identical inputs can be recognised across batches.
func ProfileHash(p model.PatientProfile, transcript []model.TranscriptEvent) []byte {
	fields := map[string]string{
		"name":                       ToText(p.Name),
		"age":                        ToText(p.Age),
		"gender":                     ToText(p.Gender),
		"chief_complaint":            ToText(p.ChiefComplaint),
		"symptoms":                   strings.Join(p.Symptoms, ";"),
		"medical_history":            strings.Join(p.MedicalHistory, ";"),
		"tentative_doctor_diagnosis": ToText(p.TentativeDoctorDiagnosis),
		"initial_llm_diagnosis":      ToText(p.InitialLLMDiagnosis),
		"ration_card_type":           ToText(p.RationCardType),
		"income_bracket":             ToText(p.IncomeBracket),
		"occupation":                 ToText(p.Occupation),
		"caste_category":             ToText(p.CasteCategory),
		"housing_type":               ToText(p.HousingType),
		"location":                   ToText(p.Location),
		"pmjay_verified":             fmt.Sprint(p.SchemeVerification.PMJAYEligible()),
		"state_verified":             fmt.Sprint(p.SchemeVerification.StateEligible()),
	}
	if v := p.Vitals; v != nil {
		fields["vitals"] = strings.Join([]string{
			ToText(v.Temperature), ToText(v.BloodPressure), ToText(v.Pulse), ToText(v.SpO2),
		}, ";")
	}
	var lines []string
	for _, ev := range transcript {
		if ev.Type == model.TranscriptText {
			lines = append(lines, strings.TrimSpace(ev.Content))
		}
	}
	fields["transcript"] = strings.Join(lines, "\n")
	return FieldsHash(fields)
}
