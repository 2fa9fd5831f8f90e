package eligibility

import (
	"github.com/gyeh/schemescreen/internal/model"
	"github.com/gyeh/schemescreen/internal/normalize"
)

// Residence keywords per state scheme. Short codes match whole words only.
var (
	maharashtra     = normalize.Keywords{"maharashtra", "mh"}
	telanganaAndhra = normalize.Keywords{"telangana", "tg", "andhra", "andhra pradesh", "ap"}
	tamilNadu       = normalize.Keywords{"tamil nadu", "tn"}
	kerala          = normalize.Keywords{"kerala", "kl"}
	odisha          = normalize.Keywords{"odisha", "orissa", "od"}
	rajasthan       = normalize.Keywords{"rajasthan", "rj"}
)

const stateResidenceNote = "State-specific scheme; out-of-state residence is treated as not eligible."

// Shared predicates.
func rationMarker(c *Context) bool { return c.HasRationCard || c.IsPriorityRationCard }
func lowIncome(c *Context) bool { return c.IsLowIncome }
func identity(c *Context) bool { return c.HasIdentity }
func ageRecorded(c *Context) bool { return c.HasAge }
func governmentService(c *Context) bool { return c.IsGovernmentEmployee }
func defenseService(c *Context) bool { return c.IsDefenseBeneficiary }
func clinicalSummary(c *Context) bool { return c.HasClinicalSummary }
func diagnosis(c *Context) bool { return c.HasDiagnosis }
func vitalsSheet(c *Context) bool { return c.HasVitals }
func pmjayVerified(c *Context) bool { return c.BackendPMJAYEligible }

func residentOf(state normalize.Keywords) Predicate {
	return func(c *Context) bool { return c.LocatedIn(state) }
}

func identityDocument(id string) DocumentDefinition {
	return DocumentDefinition{
		ID:                  id,
		Name:                "Identity proof (name, age, gender)",
		EvidenceWhenPresent: "Identity fields are complete in patient biodata.",
		EvidenceWhenMissing: "Name, age, and gender must all be present.",
		Test:                identity,
	}
}

func clinicalDocuments(prefix string) []DocumentDefinition {
	return []DocumentDefinition{
		{
			ID:                  prefix + "-clinical",
			Name:                "Clinical consultation summary",
			EvidenceWhenPresent: "Clinical summary is available.",
			EvidenceWhenMissing: "Clinical summary is incomplete.",
			Test:                clinicalSummary,
		},
		{
			ID:                  prefix + "-diagnosis",
			Name:                "Treating doctor diagnosis note",
			EvidenceWhenPresent: "Diagnosis/impression is available.",
			EvidenceWhenMissing: "Diagnosis/impression is missing.",
			Test:                diagnosis,
		},
		{
			ID:                  prefix + "-vitals",
			Name:                "Vitals/investigation sheet",
			EvidenceWhenPresent: "Vitals/investigation values are present.",
			EvidenceWhenMissing: "Vitals/investigation data is missing.",
			Test:                vitalsSheet,
		},
	}
}

func builtinSchemes() []SchemeDefinition {
	return []SchemeDefinition{
		pmjayScheme(),
		esicScheme(),
		mjpjayScheme(),
		aarogyasriScheme(),
		cmchisScheme(),
		kaspScheme(),
		bskyScheme(),
		rghsScheme(),
		cghsScheme(),
		echsScheme(),
	}
}

func pmjayScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "pmjay",
		Name:        "Ayushman Bharat PM-JAY",
		Description: "Rural deprivation and vulnerable household based public coverage.",
		Criteria: []CriterionDefinition{
			{
				ID:          "pmjay-ration",
				FieldKey:    model.FieldRationCardType,
				Label:       "Ration/deprivation marker is present.",
				Description: "Any explicit yes/present marker is treated as preliminary support; exact card category is verified at filing.",
				Test:        func(c *Context) bool { return c.IsPriorityRationCard },
			},
			{
				ID:          "pmjay-caste",
				FieldKey:    model.FieldCasteCategory,
				Label:       "SC/ST category marker captured.",
				Description: "SC/ST deprivation marker supports PM-JAY eligibility review.",
				Test:        func(c *Context) bool { return c.IsScOrSt },
			},
			{
				ID:          "pmjay-labor",
				FieldKey:    model.FieldOccupation,
				Label:       "Occupation indicates manual labour vulnerability.",
				Description: "Casual/manual labour households are considered under deprivation logic.",
				Test:        func(c *Context) bool { return c.IsManualLabor },
			},
			{
				ID:          "pmjay-housing",
				FieldKey:    model.FieldHousingType,
				Label:       "Housing type indicates kutcha/kucha dwelling.",
				Description: "Kutcha housing is a common deprivation proxy.",
				Test:        func(c *Context) bool { return c.IsKuchaHousing },
			},
			{
				ID:          "pmjay-backend",
				FieldKey:    model.FieldSchemeVerification,
				Label:       "Backend PM-JAY verification is positive.",
				Description: "Realtime PM-JAY check from the scribe stream is marked eligible.",
				Test:        pmjayVerified,
			},
		},
		Documents: []DocumentDefinition{
			identityDocument("pmjay-identity"),
			{
				ID:                  "pmjay-rationproof",
				Name:                "Ration/deprivation proof",
				EvidenceWhenPresent: "Ration/deprivation indicator exists in patient profile.",
				EvidenceWhenMissing: "Ration/deprivation evidence is not available yet.",
				Test: func(c *Context) bool {
					return c.HasRationCard || c.IsScOrSt || c.IsKuchaHousing || c.IsManualLabor
				},
			},
			{
				ID:                  "pmjay-verification",
				Name:                "PM-JAY verification response",
				EvidenceWhenPresent: "Backend PM-JAY verification is available.",
				EvidenceWhenMissing: "No positive PM-JAY backend verification found.",
				Test:                pmjayVerified,
			},
			{
				ID:                  "pmjay-clinical",
				Name:                "Clinical consultation summary",
				EvidenceWhenPresent: "Chief complaint/symptoms/diagnosis are captured.",
				EvidenceWhenMissing: "Clinical summary is incomplete.",
				Test:                clinicalSummary,
			},
		},
		Rule: DisjunctiveOverride("pmjay-backend", pmjayVerified),
	}
}

func esicScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "esic",
		Name:        "Employees' State Insurance (ESIC)",
		Description: "Contributory insurance for eligible workers under the ESI Act wage criteria.",
		Criteria: []CriterionDefinition{
			{
				ID:          "esic-occupation",
				FieldKey:    model.FieldOccupation,
				Label:       "Occupation indicates worker/employee profile.",
				Description: "ESIC generally applies to insured workers in covered employment.",
				Test:        func(c *Context) bool { return c.IsESICOccupation || c.IsManualLabor },
			},
			{
				ID:          "esic-income",
				FieldKey:    model.FieldIncomeBracket,
				Label:       "Monthly wage appears within ESI threshold (~₹21,000).",
				Description: "Screening uses captured income text; final wage validation happens at enrollment.",
				Test:        func(c *Context) bool { return c.MonthlyIncomeAtMost(c.Thresholds().ESICMonthlyWage) },
			},
			{
				ID:          "esic-age",
				FieldKey:    model.FieldAge,
				Label:       "Age is recorded for insurance enrollment.",
				Description: "Age capture is required for beneficiary records.",
				Test:        ageRecorded,
			},
		},
		Documents: []DocumentDefinition{
			manual("esic-ip", "ESIC insurance number / Pehchan details", "Tick after ESIC card/IP number is verified."),
			manual("esic-employer", "Employer certificate / employment proof", "Tick after employer proof is uploaded."),
			manual("esic-wage", "Recent wage slip or wage declaration", "Tick after wage proof is uploaded."),
			manual("esic-id", "Identity proof (Aadhaar/ID)", "Tick after identity proof is uploaded."),
		},
		Rule: ConjunctivePair("esic-occupation", "esic-income"),
	}
}

func mjpjayScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "mjpjay",
		Name:        "Mahatma Jyotiba Phule Jan Arogya Yojana (MJPJAY)",
		Description: "Maharashtra public health assurance scheme for eligible vulnerable households.",
		Criteria: []CriterionDefinition{
			{
				ID:          "mjpjay-ration",
				FieldKey:    model.FieldRationCardType,
				Label:       "Ration/deprivation marker is present.",
				Description: "Screening uses yes/priority ration indicators.",
				Test:        rationMarker,
			},
			{
				ID:          "mjpjay-income",
				FieldKey:    model.FieldIncomeBracket,
				Label:       "Income appears within low-income coverage range.",
				Description: "Income capture supports preliminary scheme fit.",
				Test:        lowIncome,
			},
			{
				ID:          "mjpjay-vulnerability",
				FieldKey:    model.FieldOccupation,
				Label:       "Occupation/housing reflects vulnerability marker.",
				Description: "Manual labour or kutcha housing improves screening confidence.",
				Test:        func(c *Context) bool { return c.IsManualLabor || c.IsKuchaHousing },
			},
			{
				ID:          "mjpjay-location",
				FieldKey:    model.FieldLocation,
				Label:       "Residence location indicates Maharashtra.",
				Description: stateResidenceNote,
				Test:        residentOf(maharashtra),
			},
		},
		Documents: []DocumentDefinition{
			manual("mjpjay-ration-card", "Eligible ration card / family card", "Tick after eligible ration/family card copy is uploaded."),
			manual("mjpjay-residence", "State residence proof", "Tick after state residence proof is uploaded."),
			manual("mjpjay-id", "Identity proof", "Tick after identity proof is uploaded."),
			manual("mjpjay-clinical", "Treating doctor advice/discharge summary", "Tick after clinical documents are uploaded."),
		},
		Rule: GatedMajority("mjpjay-location", 2),
	}
}

func aarogyasriScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "aarogyasri",
		Name:        "Aarogyasri Health Care Trust Scheme",
		Description: "State tertiary-care coverage model for low-income families (Aarogyasri model).",
		Criteria: []CriterionDefinition{
			{
				ID:          "aarogyasri-ration",
				FieldKey:    model.FieldRationCardType,
				Label:       "Ration/BPL-style marker is present.",
				Description: "Aarogyasri screening commonly uses ration/economic markers.",
				Test:        rationMarker,
			},
			{
				ID:          "aarogyasri-income",
				FieldKey:    model.FieldIncomeBracket,
				Label:       "Income appears within low-income range.",
				Description: "Low-income capture supports eligibility screening.",
				Test:        lowIncome,
			},
			{
				ID:          "aarogyasri-identity",
				FieldKey:    model.FieldName,
				Label:       "Patient identity fields are captured.",
				Description: "Identity completeness required for package processing.",
				Test:        identity,
			},
			{
				ID:          "aarogyasri-location",
				FieldKey:    model.FieldLocation,
				Label:       "Residence location indicates Telangana/Andhra Pradesh.",
				Description: stateResidenceNote,
				Test:        residentOf(telanganaAndhra),
			},
		},
		Documents: []DocumentDefinition{
			manual("aarogyasri-ration", "Ration/BPL card proof", "Tick after ration/BPL proof is uploaded."),
			manual("aarogyasri-residence", "State residence proof", "Tick after residence proof is uploaded."),
			manual("aarogyasri-id", "Aadhaar/identity proof", "Tick after identity proof is uploaded."),
			manual("aarogyasri-clinical", "Clinical summary and investigation reports", "Tick after clinical reports are uploaded."),
		},
		Rule: GatedMajority("aarogyasri-location", 2),
	}
}

func cmchisScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "cmchis",
		Name:        "Chief Minister's Comprehensive Health Insurance Scheme (CMCHIS)",
		Description: "Tamil Nadu public insurance scheme for eligible income-card based households.",
		Criteria: []CriterionDefinition{
			{
				ID:          "cmchis-income",
				FieldKey:    model.FieldIncomeBracket,
				Label:       "Income appears within public coverage range.",
				Description: "CMCHIS screening considers household income limits.",
				Test:        lowIncome,
			},
			{
				ID:          "cmchis-ration",
				FieldKey:    model.FieldRationCardType,
				Label:       "Ration/family card indicator is captured.",
				Description: "Family/ration card capture supports preliminary fit.",
				Test:        rationMarker,
			},
			{
				ID:          "cmchis-identity",
				FieldKey:    model.FieldName,
				Label:       "Identity fields are complete.",
				Description: "Identity completeness is needed for claim packet creation.",
				Test:        identity,
			},
			{
				ID:          "cmchis-location",
				FieldKey:    model.FieldLocation,
				Label:       "Residence location indicates Tamil Nadu.",
				Description: stateResidenceNote,
				Test:        residentOf(tamilNadu),
			},
		},
		Documents: []DocumentDefinition{
			manual("cmchis-income-proof", "Income certificate", "Tick after income certificate is uploaded."),
			manual("cmchis-family-card", "Family/ration card", "Tick after family/ration card is uploaded."),
			manual("cmchis-id", "Identity proof", "Tick after identity proof is uploaded."),
			manual("cmchis-clinical", "Procedure recommendation and clinical record", "Tick after clinical recommendation is uploaded."),
		},
		Rule: GatedMajority("cmchis-location", 2),
	}
}

func kaspScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "kasp",
		Name:        "Karunya Arogya Suraksha Padhathi (KASP)",
		Description: "Kerala assurance scheme aligned to PM-JAY style coverage for eligible families.",
		Criteria: []CriterionDefinition{
			{
				ID:          "kasp-ration",
				FieldKey:    model.FieldRationCardType,
				Label:       "Ration/NFSA-style marker is captured.",
				Description: "Ration status is a key screening signal.",
				Test:        rationMarker,
			},
			{
				ID:          "kasp-income",
				FieldKey:    model.FieldIncomeBracket,
				Label:       "Income indicates financially vulnerable household.",
				Description: "Low-income household marker supports KASP screening.",
				Test:        lowIncome,
			},
			{
				ID:          "kasp-vulnerability",
				FieldKey:    model.FieldCasteCategory,
				Label:       "Vulnerability proxy (SC/ST/manual labour/housing) is present.",
				Description: "Multiple vulnerability indicators improve eligibility confidence.",
				Test:        func(c *Context) bool { return c.IsScOrSt || c.IsManualLabor || c.IsKuchaHousing },
			},
			{
				ID:          "kasp-location",
				FieldKey:    model.FieldLocation,
				Label:       "Residence location indicates Kerala.",
				Description: stateResidenceNote,
				Test:        residentOf(kerala),
			},
		},
		Documents: []DocumentDefinition{
			manual("kasp-ration", "Ration/NFSA card", "Tick after ration/NFSA card is uploaded."),
			manual("kasp-id", "Aadhaar/identity proof", "Tick after identity proof is uploaded."),
			manual("kasp-residence", "State residence proof", "Tick after residence proof is uploaded."),
			manual("kasp-clinical", "Clinical package recommendation", "Tick after package recommendation is uploaded."),
		},
		Rule: GatedMajority("kasp-location", 2),
	}
}

func bskyScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "bsky",
		Name:        "Biju Swasthya Kalyan Yojana (BSKY)",
		Description: "Odisha health assurance scheme for eligible households, commonly linked to NFSA/SFSS lists.",
		Criteria: []CriterionDefinition{
			{
				ID:          "bsky-ration",
				FieldKey:    model.FieldRationCardType,
				Label:       "Ration/smart-card style marker is present.",
				Description: "NFSA/SFSS-style beneficiary identification often uses card-based records.",
				Test:        rationMarker,
			},
			{
				ID:          "bsky-income",
				FieldKey:    model.FieldIncomeBracket,
				Label:       "Income indicates vulnerable household.",
				Description: "Income marker is used as preliminary screening signal.",
				Test:        lowIncome,
			},
			{
				ID:          "bsky-identity",
				FieldKey:    model.FieldName,
				Label:       "Identity fields are captured.",
				Description: "Identity completeness required for claim packet.",
				Test:        identity,
			},
			{
				ID:          "bsky-location",
				FieldKey:    model.FieldLocation,
				Label:       "Residence location indicates Odisha.",
				Description: stateResidenceNote,
				Test:        residentOf(odisha),
			},
		},
		Documents: []DocumentDefinition{
			manual("bsky-card", "BSKY/NFSA/SFSS beneficiary card proof", "Tick after beneficiary card proof is uploaded."),
			manual("bsky-id", "Identity proof", "Tick after identity proof is uploaded."),
			manual("bsky-residence", "State residence proof", "Tick after residence proof is uploaded."),
			manual("bsky-clinical", "Clinical summary and discharge/investigation papers", "Tick after clinical papers are uploaded."),
		},
		Rule: GatedMajority("bsky-location", 2),
	}
}

func rghsScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "rghs",
		Name:        "Rajasthan Government Health Scheme (RGHS)",
		Description: "Cashless model for eligible state government employees and pensioners.",
		Criteria: []CriterionDefinition{
			{
				ID:          "rghs-occupation",
				FieldKey:    model.FieldOccupation,
				Label:       "Occupation indicates government employee/pensioner.",
				Description: "RGHS beneficiary categories include government service and pensioners.",
				Test:        governmentService,
			},
			{
				ID:          "rghs-age",
				FieldKey:    model.FieldAge,
				Label:       "Age is captured.",
				Description: "Age capture needed for registration packet.",
				Test:        ageRecorded,
			},
			{
				ID:          "rghs-location",
				FieldKey:    model.FieldLocation,
				Label:       "Residence location indicates Rajasthan.",
				Description: stateResidenceNote,
				Test:        residentOf(rajasthan),
			},
		},
		Documents: []DocumentDefinition{
			manual("rghs-card", "RGHS card / employee ID", "Tick after RGHS card/employee ID is uploaded."),
			manual("rghs-service", "Service certificate / pension PPO", "Tick after service or PPO proof is uploaded."),
			manual("rghs-id", "Identity proof", "Tick after identity proof is uploaded."),
			manual("rghs-clinical", "Clinical consultation summary", "Tick after clinical summary is uploaded."),
		},
		// Government service is the qualifying status; residence still gates.
		Rule: ConjunctivePair("rghs-occupation", "rghs-location"),
	}
}

func cghsScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "cghs",
		Name:        "CGHS",
		Description: "Central Government Health Scheme for govt employees/pensioners.",
		Criteria: []CriterionDefinition{
			{
				ID:          "cghs-occupation",
				FieldKey:    model.FieldOccupation,
				Label:       "Occupation indicates government service/pensioner.",
				Description: "CGHS is linked to central/state government service entitlements.",
				Test:        governmentService,
			},
			{
				ID:          "cghs-gender",
				FieldKey:    model.FieldGender,
				Label:       "Gender value is recorded.",
				Description: "Demographic completeness required for scheme packet.",
				Test:        func(c *Context) bool { return c.HasGender },
			},
		},
		Documents: append([]DocumentDefinition{
			identityDocument("cghs-identity"),
			{
				ID:                  "cghs-beneficiary",
				Name:                "CGHS beneficiary/service proof",
				EvidenceWhenPresent: "Occupation suggests government service eligibility.",
				EvidenceWhenMissing: "Government service/pension marker not found.",
				Test:                governmentService,
			},
		}, clinicalDocuments("cghs")...),
		Rule: Single("cghs-occupation"),
	}
}

func echsScheme() SchemeDefinition {
	return SchemeDefinition{
		ID:          "echs",
		Name:        "ECHS",
		Description: "Ex-Servicemen Contributory Health Scheme for defense beneficiaries.",
		Criteria: []CriterionDefinition{
			{
				ID:          "echs-defense",
				FieldKey:    model.FieldMilitaryStatus,
				Label:       "Military/veteran beneficiary marker is present.",
				Description: "ECHS requires defense/veteran beneficiary status.",
				Test:        defenseService,
			},
			{
				ID:          "echs-age",
				FieldKey:    model.FieldAge,
				Label:       "Age value is recorded.",
				Description: "Demographic completeness required for ECHS form.",
				Test:        ageRecorded,
			},
		},
		Documents: append([]DocumentDefinition{
			identityDocument("echs-identity"),
			{
				ID:                  "echs-beneficiary",
				Name:                "ECHS card / veteran service proof",
				EvidenceWhenPresent: "Military/veteran marker is available from occupation.",
				EvidenceWhenMissing: "Military/veteran marker is missing.",
				Test:                defenseService,
			},
		}, clinicalDocuments("echs")...),
		Rule: Single("echs-defense"),
	}
}
