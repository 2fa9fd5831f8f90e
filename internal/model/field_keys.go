package model

// FieldKey names a patient-data field that criteria can be tied to for
// match highlighting.
type FieldKey string

const (
	FieldName               FieldKey = "name"
	FieldGender             FieldKey = "gender"
	FieldAge                FieldKey = "age"
	FieldLocation           FieldKey = "location"
	FieldOccupation         FieldKey = "occupation"
	FieldRationCardType     FieldKey = "ration_card_type"
	FieldCasteCategory      FieldKey = "caste_category"
	FieldHousingType        FieldKey = "housing_type"
	FieldIncomeBracket      FieldKey = "income_bracket"
	FieldMilitaryStatus     FieldKey = "military_status"
	FieldPregnancyStatus    FieldKey = "pregnancy_status"
	FieldSchemeVerification FieldKey = "scheme_verification"
)

// AllFieldKeys lists the field keys in display order.
var AllFieldKeys = []FieldKey{
	FieldName,
	FieldGender,
	FieldAge,
	FieldLocation,
	FieldOccupation,
	FieldRationCardType,
	FieldIncomeBracket,
	FieldCasteCategory,
	FieldHousingType,
	FieldMilitaryStatus,
	FieldPregnancyStatus,
	FieldSchemeVerification,
}

// FieldKeyByName returns the FieldKey for the given name, or ok=false.
func FieldKeyByName(name string) (FieldKey, bool) {
	for _, k := range AllFieldKeys {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}
