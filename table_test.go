package inflect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const nfin = "V;NFIN;ACT;PRS"

func trainVerbs(t *testing.T) *Model {
	t.Helper()
	return Train([]Triple{
		{Lemma: "amō", MSD: nfin, Form: "amāre"},
		{Lemma: "laudō", MSD: nfin, Form: "laudāre"},
	}, Bias{}, RuleCosts)
}

func TestTrainCounts(t *testing.T) {
	m := trainVerbs(t)

	tests := []struct {
		r    Rule
		want int
	}{
		{Rule{"ō>", "āre>"}, 2},
		{Rule{">", ">"}, 2},
		{Rule{">", "re>"}, 2},
		{Rule{"amō>", "amāre>"}, 1},
		{Rule{"laudō>", "laudāre>"}, 1},
		{Rule{"xō>", "xāre>"}, 0},
	}
	for _, tt := range tests {
		if got := m.Suffix.Count(nfin, tt.r); got != tt.want {
			t.Errorf("Count(%v) = %d, want %d", tt.r, got, tt.want)
		}
	}
	if !m.Knows(nfin) {
		t.Errorf("model does not know %s", nfin)
	}
	if m.Knows("N;NOM;SG") {
		t.Errorf("model knows an MSD it was never trained on")
	}
	if diff := cmp.Diff([]string{nfin}, m.MSDs()); diff != "" {
		t.Errorf("MSDs mismatch (-want +got):\n%s", diff)
	}
}

func TestRuleTableRules(t *testing.T) {
	m := trainVerbs(t)
	got := m.Suffix.Rules(nfin)[:4]
	want := []RuleCount{
		{Rule{">", ">"}, 2},
		{Rule{">", "e>"}, 2},
		{Rule{">", "re>"}, 2},
		{Rule{"ō>", "āre>"}, 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rules mismatch (-want +got):\n%s", diff)
	}
	if n := len(m.Suffix.Rules("N;NOM;SG")); n != 0 {
		t.Errorf("Rules of unknown MSD returned %d entries", n)
	}
}

func TestRuleTableSize(t *testing.T) {
	tab := make(RuleTable)
	tab.Record("A", Rule{">", "s>"})
	tab.Record("A", Rule{">", "s>"})
	tab.Record("A", Rule{">", ">"})
	tab.Record("B", Rule{">", ">"})

	if got := tab.Size(); got != 3 {
		t.Errorf("Size() = %d, want 3", got)
	}
	if got := tab.Count("A", Rule{">", "s>"}); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
	if diff := cmp.Diff([]string{"A", "B"}, tab.MSDs()); diff != "" {
		t.Errorf("MSDs mismatch (-want +got):\n%s", diff)
	}
}

func TestTrainReversed(t *testing.T) {
	m := Train([]Triple{{Lemma: "ab", MSD: "X", Form: "zzab"}}, Bias{Prefix: 2}, RuleCosts)
	if got := m.Suffix.Count("X", Rule{"ba>", "bazz>"}); got != 1 {
		t.Errorf("reversed rule count = %d, want 1; rules: %v", got, m.Suffix.Rules("X"))
	}
}
