package inflect

import "sort"

// RuleKind tells prefix rules from suffix rules.
type RuleKind uint8

const (
	PrefixRules RuleKind = iota
	SuffixRules
)

func (k RuleKind) String() string {
	if k == PrefixRules {
		return "prefix"
	}
	return "suffix"
}

// Model is a trained rule set: one table of prefix rules and one of
// suffix rules, both keyed by MSD. A Model is read-only once training
// is done and may be shared between goroutines.
type Model struct {
	Prefix RuleTable
	Suffix RuleTable
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Prefix: make(RuleTable),
		Suffix: make(RuleTable),
	}
}

// Table returns the table holding rules of kind k.
func (m *Model) Table(k RuleKind) RuleTable {
	if k == PrefixRules {
		return m.Prefix
	}
	return m.Suffix
}

// Knows reports whether any rule was learned for msd.
func (m *Model) Knows(msd string) bool {
	return m.Prefix.Has(msd) || m.Suffix.Has(msd)
}

// MSDs returns every MSD known to either table, sorted.
func (m *Model) MSDs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range []RuleTable{m.Prefix, m.Suffix} {
		for msd := range t {
			if !seen[msd] {
				seen[msd] = true
				out = append(out, msd)
			}
		}
	}
	sort.Strings(out)
	return out
}
