package inflect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		lemma, form string
		want        Segmentation
	}{
		{"amō__", "amāre", Segmentation{
			StemIn: "amō", SuffixIn: "__",
			StemOut: "amā", SuffixOut: "re",
		}},
		{"__ab", "zzab", Segmentation{
			PrefixIn: "__", StemIn: "ab",
			PrefixOut: "zz", StemOut: "ab",
		}},
		{"rosa", "rosa", Segmentation{StemIn: "rosa", StemOut: "rosa"}},
		// Overlapping edges: the prefix gives way.
		{"a___", "___b", Segmentation{
			PrefixIn: "a", SuffixIn: "___",
			PrefixOut: "_", SuffixOut: "__b",
		}},
		{"___", "abc", Segmentation{SuffixIn: "___", SuffixOut: "abc"}},
	}
	for _, tt := range tests {
		got := Segment(tt.lemma, tt.form)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Segment(%q, %q) mismatch (-want +got):\n%s", tt.lemma, tt.form, diff)
		}
		if in := got.PrefixIn + got.StemIn + got.SuffixIn; in != tt.lemma {
			t.Errorf("Segment(%q, %q): lemma parts join to %q", tt.lemma, tt.form, in)
		}
		if out := got.PrefixOut + got.StemOut + got.SuffixOut; out != tt.form {
			t.Errorf("Segment(%q, %q): form parts join to %q", tt.lemma, tt.form, out)
		}
	}
}

func TestExtractAmo(t *testing.T) {
	prefix, suffix := Extract("amō", "amāre")

	wantSuffix := []Rule{
		{">", ">"},
		{">", "e>"},
		{">", "re>"},
		{"amō>", "amāre>"},
		{"mō>", "māre>"},
		{"ō>", "āre>"},
	}
	if diff := cmp.Diff(wantSuffix, suffix); diff != "" {
		t.Errorf("suffix rules mismatch (-want +got):\n%s", diff)
	}

	wantPrefix := []Rule{
		{"<", "<"},
		{"<a", "<a"},
		{"<am", "<am"},
	}
	if diff := cmp.Diff(wantPrefix, prefix); diff != "" {
		t.Errorf("prefix rules mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractAlwaysYieldsBareAnchor(t *testing.T) {
	pairs := [][2]string{
		{"amō", "amat"},
		{"rēx", "rēgum"},
		{"ferō", "tulī"},
		{"a", "a"},
	}
	for _, p := range pairs {
		_, suffix := Extract(p[0], p[1])
		found := false
		for _, r := range suffix {
			if r.Input == EndAnchor {
				found = true
			}
			if r.Input[len(r.Input)-1:] != EndAnchor || r.Output[len(r.Output)-1:] != EndAnchor {
				t.Errorf("%q/%q: suffix rule %v is not end-anchored", p[0], p[1], r)
			}
		}
		if !found {
			t.Errorf("%q/%q: no rule with bare end anchor in %v", p[0], p[1], suffix)
		}
	}
}

func TestRuleContext(t *testing.T) {
	tests := []struct {
		r    Rule
		want string
	}{
		{Rule{"ō>", "āre>"}, "ō"},
		{Rule{">", "e>"}, ""},
		{Rule{"<am", "<am"}, "am"},
	}
	for _, tt := range tests {
		if got := tt.r.Context(); got != tt.want {
			t.Errorf("%v.Context() = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestExtractEmptyLemma(t *testing.T) {
	prefix, suffix := Extract("", "abc")
	want := []Rule{
		{">", ">"},
		{">", "abc>"},
		{">", "bc>"},
		{">", "c>"},
	}
	if diff := cmp.Diff(want, suffix); diff != "" {
		t.Errorf("suffix rules mismatch (-want +got):\n%s", diff)
	}
	if len(prefix) != 0 {
		t.Errorf("prefix rules = %v, want none", prefix)
	}

	a := NewApplier(Train([]Triple{{Lemma: "", MSD: "X", Form: "abc"}}, Bias{}, RuleCosts), nil, nil)
	got, err := a.Apply("", "X")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "abc" {
		t.Errorf(`Apply("", "X") = %q, want "abc"`, got)
	}
}
