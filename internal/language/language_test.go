package language

import "testing"

func TestToISO2(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"zh", "zh"},
		{"zho", "zh"},
		{"chi", "zh"},
		{"Chinese", "zh"},
		{"ENG", "en"},
		{"xx", "xx"},
		{"gibberish", ""},
	}
	for _, tc := range cases {
		if got := ToISO2(tc.in); got != tc.want {
			t.Fatalf("ToISO2(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRegionTags(t *testing.T) {
	got, err := Normalize("zh-TW")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got != "zh" {
		t.Fatalf("Normalize(zh-TW) = %q, want zh", got)
	}

	if _, err := Normalize(""); err == nil {
		t.Fatal("expected error for empty code")
	}
	if _, err := Normalize("not a language"); err == nil {
		t.Fatal("expected error for unparseable code")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("ja"); got != "Japanese" {
		t.Fatalf("DisplayName(ja) = %q", got)
	}
	if got := DisplayName(""); got != "Unknown" {
		t.Fatalf("DisplayName empty = %q", got)
	}
	if got := DisplayName("qq"); got != "QQ" {
		t.Fatalf("DisplayName(qq) = %q", got)
	}
}
