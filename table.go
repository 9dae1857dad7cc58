package inflect

import "sort"

// RuleTable counts how often each rule was extracted, per MSD.
type RuleTable map[string]map[Rule]int

// RuleCount is a rule together with its frequency.
type RuleCount struct {
	Rule
	Count int
}

// Record increments the count of r under msd, creating the MSD bucket on
// first use.
func (t RuleTable) Record(msd string, r Rule) {
	bucket, ok := t[msd]
	if !ok {
		bucket = make(map[Rule]int)
		t[msd] = bucket
	}
	bucket[r]++
}

// Has reports whether msd has a bucket in the table.
func (t RuleTable) Has(msd string) bool {
	_, ok := t[msd]
	return ok
}

// Count returns the frequency of r under msd.
func (t RuleTable) Count(msd string, r Rule) int {
	return t[msd][r]
}

// Size returns the number of distinct (MSD, rule) keys.
func (t RuleTable) Size() int {
	n := 0
	for _, bucket := range t {
		n += len(bucket)
	}
	return n
}

// MSDs returns the table's MSDs in sorted order.
func (t RuleTable) MSDs() []string {
	out := make([]string, 0, len(t))
	for msd := range t {
		out = append(out, msd)
	}
	sort.Strings(out)
	return out
}

// Rules lists the rules recorded under msd, most frequent first, ties in
// input/output order.
func (t RuleTable) Rules(msd string) []RuleCount {
	bucket := t[msd]
	out := make([]RuleCount, 0, len(bucket))
	for r, c := range bucket {
		out = append(out, RuleCount{Rule: r, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Input != out[j].Input {
			return out[i].Input < out[j].Input
		}
		return out[i].Output < out[j].Output
	})
	return out
}

// Train builds a model from the training triples in one pass. When bias
// says the language is prefixing, lemma and form are reversed before
// rule extraction.
func Train(triples []Triple, bias Bias, c Costs) *Model {
	m := NewModel()
	for _, t := range triples {
		m.Add(t, bias.Prefixing(), c)
	}
	return m
}

// Add extracts the rules of one triple and records them.
func (m *Model) Add(t Triple, reversed bool, c Costs) {
	lemma, form := t.Lemma, t.Form
	if reversed {
		lemma, form = Reverse(lemma), Reverse(form)
	}
	a := Levenshtein(lemma, form, c)
	prefix, suffix := ExtractRules(Segment(a.Source, a.Target))
	for _, r := range prefix {
		m.Prefix.Record(t.MSD, r)
	}
	for _, r := range suffix {
		m.Suffix.Record(t.MSD, r)
	}
}
