package normalize

import (
	"strings"
	"unicode"
)

var affirmativeTokens = map[string]bool{
	"yes":       true,
	"y":         true,
	"haan":      true,
	"ha":        true,
	"present":   true,
	"available": true,
	"true":      true,
	"verified":  true,
	"exists":    true,
}

var negators = map[string]bool{
	"no":    true,
	"not":   true,
	"never": true,
}

// words splits lower-cased text into letter/digit runs. Underscores, dashes
// and punctuation all act as separators.
func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func hasWord(s, word string) bool {
	for _, w := range words(s) {
		if w == word {
			return true
		}
	}
	return false
}

// HasAffirmativeSignal reports whether free text colloquially means "yes",
// e.g. "BPL - Yes" or "ration_card: available". Unlike plain token-set
// matching, a token directly preceded by no/not/never does not count, so
// "not available" is false.
func HasAffirmativeSignal(text string) bool {
	prev := ""
	for _, w := range words(text) {
		if affirmativeTokens[w] && !negators[prev] {
			return true
		}
		prev = w
	}
	return false
}

// Keywords is a named keyword set matched against normalized text.
// Keywords of three characters or fewer ("sc", "tn", "f") must match a whole
// word; longer keywords match anywhere, so "pregnan" finds "pregnancy".
type Keywords []string

// Match reports whether text contains any keyword.
func (k Keywords) Match(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	var ws []string
	for _, kw := range k {
		if len(kw) <= 3 {
			if ws == nil {
				ws = words(lower)
			}
			for _, w := range ws {
				if w == kw {
					return true
				}
			}
			continue
		}
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
