package eligibility

// Rule composes criterion results (and, where needed, the raw context) into
// a single eligibility verdict.
type Rule struct {
	// Kind names the composition pattern, for display and auditing.
	Kind string
	// Refs lists the criterion ids the rule depends on by name.
	Refs []string

	apply func(results []CriterionResult, ctx *Context) bool
}

// Rule kinds.
const (
	RuleDisjunctiveOverride = "disjunctive_override"
	RuleConjunctivePair     = "conjunctive_pair"
	RuleGatedMajority       = "gated_majority"
	RuleSingle              = "single"
)

// Apply evaluates the rule. A zero Rule is never satisfied.
func (r Rule) Apply(results []CriterionResult, ctx *Context) bool {
	if r.apply == nil {
		return false
	}
	return r.apply(results, ctx)
}

// DisjunctiveOverride is satisfied when the external verification signal is
// positive, or when any criterion other than verifiedID is met. The external
// signal short-circuits local heuristics without being the only path.
func DisjunctiveOverride(verifiedID string, verified Predicate) Rule {
	return Rule{
		Kind: RuleDisjunctiveOverride,
		Refs: []string{verifiedID},
		apply: func(results []CriterionResult, ctx *Context) bool {
			if ctx != nil && verified(ctx) {
				return true
			}
			for _, r := range results {
				if r.Met && r.ID != verifiedID {
					return true
				}
			}
			return false
		},
	}
}

// ConjunctivePair is satisfied only when both named criteria are met.
func ConjunctivePair(a, b string) Rule {
	return Rule{
		Kind: RuleConjunctivePair,
		Refs: []string{a, b},
		apply: func(results []CriterionResult, _ *Context) bool {
			return isMet(results, a) && isMet(results, b)
		},
	}
}

// GatedMajority is satisfied only when the gate criterion is met and at
// least minOthers of the remaining criteria are met. State schemes use it
// with the residence criterion as the gate.
func GatedMajority(gateID string, minOthers int) Rule {
	return Rule{
		Kind: RuleGatedMajority,
		Refs: []string{gateID},
		apply: func(results []CriterionResult, _ *Context) bool {
			if !isMet(results, gateID) {
				return false
			}
			others := 0
			for _, r := range results {
				if r.Met && r.ID != gateID {
					others++
				}
			}
			return others >= minOthers
		},
	}
}

// Single is satisfied when one named criterion is met.
func Single(id string) Rule {
	return Rule{
		Kind: RuleSingle,
		Refs: []string{id},
		apply: func(results []CriterionResult, _ *Context) bool {
			return isMet(results, id)
		},
	}
}

// isMet reports whether the named criterion is present and met. A missing
// id counts as not met.
func isMet(results []CriterionResult, id string) bool {
	for _, r := range results {
		if r.ID == id {
			return r.Met
		}
	}
	return false
}
