package inflect

import (
	"sort"
	"strings"
)

// Rule is a string rewrite learned from one lemma/form pair. Suffix
// rules end with EndAnchor, prefix rules start with StartAnchor, so that
// a rule only ever matches at the matching edge of a bracketed lemma.
type Rule struct {
	Input  string
	Output string
}

// Context returns the input pattern without its anchor. The rule with an
// empty context is the most general one a pair produces.
func (r Rule) Context() string {
	s := strings.TrimPrefix(r.Input, StartAnchor)
	return strings.TrimSuffix(s, EndAnchor)
}

func (r Rule) String() string {
	return r.Input + " → " + r.Output
}

// Segmentation splits an aligned lemma/form pair into prefix, stem and
// suffix. Leading gap runs bound the prefix and trailing gap runs bound
// the suffix; the stem is everything in between. Segments keep their
// gap fillers.
type Segmentation struct {
	PrefixIn, StemIn, SuffixIn    string
	PrefixOut, StemOut, SuffixOut string
}

// Segment cuts an alignment into prefix, stem and suffix. The prefix
// edge is the longer leading gap run of the two sides and the suffix
// edge the longer trailing run. If the two edges overlap the prefix
// gives way: the suffix keeps the whole overlap and the parts still
// concatenate to the aligned strings.
func Segment(alignedLemma, alignedForm string) Segmentation {
	al, af := []rune(alignedLemma), []rune(alignedForm)
	n := len(al)

	lead := max(leadingGaps(al), leadingGaps(af))
	trail := max(trailingGaps(al), trailingGaps(af))
	if lead+trail > n {
		lead = n - trail
	}
	end := n - trail

	return Segmentation{
		PrefixIn:  string(al[:lead]),
		StemIn:    string(al[lead:end]),
		SuffixIn:  string(al[end:]),
		PrefixOut: string(af[:lead]),
		StemOut:   string(af[lead:end]),
		SuffixOut: string(af[end:]),
	}
}

// Extract aligns lemma with form under RuleCosts and returns the prefix
// and suffix rules the pair supports. See ExtractRules.
func Extract(lemma, form string) (prefix, suffix []Rule) {
	a := Levenshtein(lemma, form, RuleCosts)
	return ExtractRules(Segment(a.Source, a.Target))
}

// ExtractRules turns a segmentation into rules.
//
// Suffix rules pair every tail of stem+suffix+">" on the lemma side with
// the tail of the same length on the form side, from the whole string
// down to the bare end anchor. Prefix rules pair "<"+prefix extended by
// each proper prefix of the form stem, on both sides. Gap fillers are
// removed and duplicates collapsed; rules come back sorted.
func ExtractRules(seg Segmentation) (prefix, suffix []Rule) {
	ins := []rune(seg.StemIn + seg.SuffixIn + EndAnchor)
	outs := []rune(seg.StemOut + seg.SuffixOut + EndAnchor)
	seen := make(map[Rule]bool)
	for i := 0; i < min(len(ins), len(outs)); i++ {
		r := Rule{
			Input:  StripGaps(string(ins[i:])),
			Output: StripGaps(string(outs[i:])),
		}
		if !seen[r] {
			seen[r] = true
			suffix = append(suffix, r)
		}
	}

	stem := []rune(seg.StemOut)
	seen = make(map[Rule]bool)
	for i := 0; i < len(stem); i++ {
		r := Rule{
			Input:  StripGaps(StartAnchor + seg.PrefixIn + string(stem[:i])),
			Output: StripGaps(StartAnchor + seg.PrefixOut + string(stem[:i])),
		}
		if !seen[r] {
			seen[r] = true
			prefix = append(prefix, r)
		}
	}

	sortRules(prefix)
	sortRules(suffix)
	return prefix, suffix
}

func sortRules(rs []Rule) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Input != rs[j].Input {
			return rs[i].Input < rs[j].Input
		}
		return rs[i].Output < rs[j].Output
	})
}
