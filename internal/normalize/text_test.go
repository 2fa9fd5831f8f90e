package normalize

import "testing"

func strPtr(s string) *string { return &s }

func TestParseAge(t *testing.T) {
	cases := []struct {
		in   *string
		want int
	}{
		{strPtr("45"), 45},
		{strPtr(" 67 years"), 67},
		{strPtr("+30"), 30},
		{strPtr("0"), 0},
	}
	for _, c := range cases {
		got := ParseAge(c.in)
		if got == nil || *got != c.want {
			t.Errorf("ParseAge(%q) = %v, want %d", *c.in, got, c.want)
		}
	}
}

func TestParseAge_Invalid(t *testing.T) {
	for _, in := range []*string{nil, strPtr(""), strPtr("unknown"), strPtr("-4"), strPtr("about 40")} {
		if got := ParseAge(in); got != nil {
			t.Errorf("expected nil, got %d", *got)
		}
	}
}

func TestText(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"  Ravi ", "Ravi"},
		{strPtr(" x "), "x"},
		{float64(45), "45"},
		{37.5, "37.5"},
		{true, "true"},
		{[]any{"fever", " ", "cough"}, "fever cough"},
		{map[string]any{"a": 1}, ""},
	}
	for _, c := range cases {
		if got := Text(c.in); got != c.want {
			t.Errorf("Text(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOptText_EmptyIsNil(t *testing.T) {
	if OptText("   ") != nil {
		t.Error("expected nil for blank text")
	}
	if got := OptText(12.0); got == nil || *got != "12" {
		t.Errorf("expected 12, got %v", got)
	}
}

func TestTextList(t *testing.T) {
	got := TextList([]any{"fever", "", 3.0})
	if len(got) != 2 || got[0] != "fever" || got[1] != "3" {
		t.Errorf("unexpected list: %v", got)
	}
	got = TextList("cough")
	if len(got) != 1 || got[0] != "cough" {
		t.Errorf("expected scalar to become one item, got %v", got)
	}
	if TextList(nil) != nil {
		t.Error("expected nil for nil input")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(strPtr("fever; cough;;  headache "))
	if len(got) != 3 || got[2] != "headache" {
		t.Errorf("unexpected split: %v", got)
	}
	if SplitList(nil) != nil {
		t.Error("expected nil for nil input")
	}
}
