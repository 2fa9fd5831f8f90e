// Package fixture generates synthetic patient profiles for batch screening
// tests and sample files. Output is fully determined by the seed.
package fixture

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gyeh/schemescreen/internal/model"
)

var (
	names       = []string{"Asha", "Ravi", "Meena", "Arul", "Lakshmi", "Suresh", "Fatima", "Joseph", "Pooja", "Manoj"}
	genders     = []string{"Female", "Male", "F", "M"}
	locations   = []string{"Thrissur, Kerala", "Pune, Maharashtra", "Chennai, TN", "Hyderabad, Telangana", "Cuttack, Odisha", "Jaipur, Rajasthan", "Lucknow", "Bhopal"}
	occupations = []string{"Daily wage labourer", "Factory worker", "Government school teacher", "Retired army havildar", "Farmer", "Salaried staff", "Homemaker", "Pensioner"}
	rationCards = []string{"BPL", "Antyodaya", "APL", "PHH", "No card", "Yes"}
	incomes     = []string{"₹8,000 per month", "18000", "1.5 lakh per annum", "30000", "5 lakh", "below poverty line", "not disclosed"}
	castes      = []string{"SC", "ST", "OBC", "General"}
	housing     = []string{"Kucha", "Pucca", "Semi-pucca", "Thatched hut"}
	complaints  = []string{"Fever for three days", "Chest pain on exertion", "Swelling of feet", "Cough with sputum", "Abdominal pain"}
	diagnoses   = []string{"Viral fever", "Stable angina", "Iron deficiency anaemia", "Lower respiratory tract infection", "Acute gastritis"}
	utterances  = []string{
		"doctor: how long have you had this?",
		"patient: about a week",
		"doctor: any other illness at home?",
		"patient: she is pregnant, second trimester",
		"patient: I work at a construction site",
	}
)

// Generate returns n synthetic profile rows. Roughly one field in five is
// left empty so screening sees sparse records.
func Generate(n int, seed uint64) []model.ProfileRow {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rows := make([]model.ProfileRow, n)
	for i := range rows {
		rows[i] = profile(r, i)
	}
	return rows
}

func profile(r *rand.Rand, i int) model.ProfileRow {
	pick := func(options []string) *string {
		if r.IntN(5) == 0 {
			return nil
		}
		s := options[r.IntN(len(options))]
		return &s
	}
	age := fmt.Sprintf("%d", 18+r.IntN(70))

	row := model.ProfileRow{
		ProfileID:                fmt.Sprintf("P%06d", i+1),
		Name:                     pick(names),
		Age:                      pick([]string{age}),
		Gender:                   pick(genders),
		ChiefComplaint:           pick(complaints),
		TentativeDoctorDiagnosis: pick(diagnoses),
		RationCardType:           pick(rationCards),
		IncomeBracket:            pick(incomes),
		Occupation:               pick(occupations),
		CasteCategory:            pick(castes),
		HousingType:              pick(housing),
		Location:                 pick(locations),
	}
	if r.IntN(2) == 0 {
		row.BloodPressure = pick([]string{"120/80", "140/90", "110/70"})
		row.Pulse = pick([]string{"72", "88", "104"})
	}
	if r.IntN(4) == 0 {
		v := r.IntN(2) == 0
		row.PMJAYVerified = &v
	}

	var lines []string
	for j := r.IntN(len(utterances) + 1); j > 0; j-- {
		lines = append(lines, utterances[r.IntN(len(utterances))])
	}
	if len(lines) > 0 {
		t := strings.Join(lines, "\n")
		row.Transcript = &t
	}
	return row
}
