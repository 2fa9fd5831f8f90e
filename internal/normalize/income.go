package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMonthlyIncomeCeiling is the largest figure treated as already
// monthly when income text carries no period marker. Above it the figure is
// taken as annual. The value is a screening heuristic, not a sourced rule.
const DefaultMonthlyIncomeCeiling int64 = 50000

// IncomePolicy controls how period-less income figures are interpreted.
type IncomePolicy struct {
	MonthlyCeiling int64
}

// DefaultIncomePolicy returns the policy using DefaultMonthlyIncomeCeiling.
func DefaultIncomePolicy() IncomePolicy {
	return IncomePolicy{MonthlyCeiling: DefaultMonthlyIncomeCeiling}
}

// Thousands separators are accepted in both western (15,000) and Indian
// (1,50,000) grouping.
var (
	numberToken  = regexp.MustCompile(`\d+(?:,\d+)*(?:\.\d+)?`)
	thousandUnit = regexp.MustCompile(`^\s*k\b`)
)

var (
	monthlyMarkers = []string{"month", "/m", "per mensem"}
	annualMarkers  = []string{"year", "annual", "annum", "/y", "p.a"}
)

// ParseIncomeAmount extracts the first number in free-form income text and
// applies any unit word: lakh ×100,000, crore ×10,000,000, a trailing k
// ×1,000. Returns nil when the text has no number or the amount does not fit
// in an int64.
func ParseIncomeAmount(text string) *int64 {
	raw := strings.ToLower(strings.TrimSpace(text))
	if raw == "" {
		return nil
	}
	loc := numberToken.FindStringIndex(raw)
	if loc == nil {
		return nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw[loc[0]:loc[1]], ",", ""), 64)
	if err != nil {
		return nil
	}

	switch {
	case strings.Contains(raw, "lakh") || hasWord(raw, "lac") || hasWord(raw, "lacs"):
		value *= 100000
	case strings.Contains(raw, "crore"):
		value *= 10000000
	case thousandUnit.MatchString(raw[loc[1]:]):
		value *= 1000
	}

	value = math.Round(value)
	if value >= math.MaxInt64 {
		return nil
	}
	n := int64(value)
	return &n
}

// ParseMonthlyIncome converts free-form income text into a monthly figure.
// Text marked monthly is kept, text marked annual is divided by 12, and
// unmarked figures up to policy.MonthlyCeiling are taken as monthly.
// Returns nil when no amount can be parsed.
func ParseMonthlyIncome(text string, policy IncomePolicy) *int64 {
	amount := ParseIncomeAmount(text)
	if amount == nil {
		return nil
	}
	monthly := *amount
	if !isMonthlyFigure(text, *amount, policy) {
		monthly = perMonth(*amount)
	}
	return &monthly
}

// ParseAnnualIncome is the yearly counterpart of ParseMonthlyIncome, using
// the same period rules. Annual figures are returned without the
// divide-then-multiply rounding loss.
func ParseAnnualIncome(text string, policy IncomePolicy) *int64 {
	amount := ParseIncomeAmount(text)
	if amount == nil {
		return nil
	}
	annual := *amount
	if isMonthlyFigure(text, *amount, policy) {
		if annual > math.MaxInt64/12 {
			return nil
		}
		annual *= 12
	}
	return &annual
}

func isMonthlyFigure(text string, amount int64, policy IncomePolicy) bool {
	raw := strings.ToLower(text)
	switch {
	case containsSubstring(raw, monthlyMarkers) || hasWord(raw, "pm"):
		return true
	case containsSubstring(raw, annualMarkers) || hasWord(raw, "pa") || hasWord(raw, "yr"):
		return false
	default:
		return amount <= policy.MonthlyCeiling
	}
}

func perMonth(annual int64) int64 {
	return int64(math.Round(float64(annual) / 12))
}

func containsSubstring(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
