package inflect

import (
	"testing"
	"unicode/utf8"
)

func TestHammingAlign(t *testing.T) {
	tests := []struct {
		s, t     string
		src, tgt string
		cost     float64
	}{
		{"amō", "amāre", "amō__", "amāre", 3},
		{"puella", "puellae", "puella_", "puellae", 1},
		{"ab", "zzab", "__ab", "zzab", 2},
		{"rosa", "rosa", "rosa", "rosa", 0},
		// "_ab_"/"__ba" and "__ab"/"__ba" both score 2; the first wins.
		{"ab", "ba", "ab_", "_ba", 2},
	}
	for _, tt := range tests {
		a := HammingAlign(tt.s, tt.t)
		if a.Source != tt.src || a.Target != tt.tgt || a.Cost != tt.cost {
			t.Errorf("HammingAlign(%q, %q) = %q/%q (%v), want %q/%q (%v)",
				tt.s, tt.t, a.Source, a.Target, a.Cost, tt.src, tt.tgt, tt.cost)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		s, t     string
		costs    Costs
		src, tgt string
		cost     float64
	}{
		{"amō", "amāre", RuleCosts, "amō__", "amāre", 3.1},
		{"amō", "amat", RuleCosts, "amō_", "amat", 2.1},
		{"", "abc", DefaultCosts, "___", "abc", 3},
		{"abc", "", DefaultCosts, "abc", "___", 3},
		{"", "", DefaultCosts, "", "", 0},
		{"lupus", "lupus", RuleCosts, "lupus", "lupus", 0},
	}
	for _, tt := range tests {
		a := Levenshtein(tt.s, tt.t, tt.costs)
		if a.Source != tt.src || a.Target != tt.tgt {
			t.Errorf("Levenshtein(%q, %q) = %q/%q, want %q/%q", tt.s, tt.t, a.Source, a.Target, tt.src, tt.tgt)
		}
		if units(a.Cost) != units(tt.cost) {
			t.Errorf("Levenshtein(%q, %q) cost = %v, want %v", tt.s, tt.t, a.Cost, tt.cost)
		}
	}
}

func TestLevenshteinKitten(t *testing.T) {
	a := Levenshtein("kitten", "sitting", DefaultCosts)
	if a.Cost != 3 {
		t.Errorf("cost = %v, want 3", a.Cost)
	}
}

func TestAlignmentProperties(t *testing.T) {
	pairs := [][2]string{
		{"amō", "amābāmus"},
		{"rēx", "rēgis"},
		{"ferō", "tulī"},
		{"sum", "fuērunt"},
		{"", "x"},
		{"puella", "puellārum"},
		{"zzab", "ab"},
	}
	for _, p := range pairs {
		for _, a := range []Alignment{HammingAlign(p[0], p[1]), Levenshtein(p[0], p[1], RuleCosts)} {
			if StripGaps(a.Source) != p[0] || StripGaps(a.Target) != p[1] {
				t.Errorf("%q/%q: alignment %q/%q does not round-trip", p[0], p[1], a.Source, a.Target)
			}
			if utf8.RuneCountInString(a.Source) != utf8.RuneCountInString(a.Target) {
				t.Errorf("%q/%q: sides differ in length: %q/%q", p[0], p[1], a.Source, a.Target)
			}
			src, tgt := []rune(a.Source), []rune(a.Target)
			for i := range src {
				if src[i] == Gap && tgt[i] == Gap {
					t.Errorf("%q/%q: gap-on-gap column at %d", p[0], p[1], i)
				}
			}
		}

		x := Levenshtein(p[0], p[1], RuleCosts)
		y := Levenshtein(p[0], p[1], RuleCosts)
		if x != y {
			t.Errorf("%q/%q: alignment is not deterministic: %v vs %v", p[0], p[1], x, y)
		}
		back := Levenshtein(p[1], p[0], RuleCosts)
		if units(x.Cost) != units(back.Cost) {
			t.Errorf("%q/%q: cost %v differs from reverse cost %v", p[0], p[1], x.Cost, back.Cost)
		}
		if (x.Cost == 0) != (p[0] == p[1]) {
			t.Errorf("%q/%q: cost %v", p[0], p[1], x.Cost)
		}
	}
}
