package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// ToText dereferences and trims a nullable string. Nil yields "".
func ToText(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

// ToLowerText is ToText followed by lower-casing.
func ToLowerText(v *string) string {
	return strings.ToLower(ToText(v))
}

// Text stringifies a loosely-typed scalar (as decoded from JSON or YAML) and
// trims it. Nil yields "". Lists are joined with a single space.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case *string:
		return ToText(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := Text(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case []string:
		return strings.TrimSpace(strings.Join(t, " "))
	case map[string]any:
		// Nested objects are never a scalar field value.
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// OptText returns a pointer to the trimmed text of v, or nil if it is empty.
func OptText(v any) *string {
	s := Text(v)
	if s == "" {
		return nil
	}
	return &s
}

// TextList converts a loosely-typed list into trimmed, non-empty strings.
// A bare scalar becomes a one-element list.
func TextList(v any) []string {
	var out []string
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		for _, s := range t {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range t {
			if s := Text(item); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := Text(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitList splits a ";"-joined column value into trimmed, non-empty items.
func SplitList(v *string) []string {
	s := ToText(v)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CollapseSpace lower-cases and collapses runs of whitespace.
func CollapseSpace(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(strings.ToLower(s), " "))
}

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// ParseAge parses the leading integer of an age value such as "45" or
// "45 years". Returns nil when there is no leading integer or it is negative.
func ParseAge(v *string) *int {
	m := leadingInt.FindString(ToText(v))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
