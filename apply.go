package inflect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoInfinitive is returned when the conjugation override needs the
// infinitive of a lemma that the reference corpus does not contain.
var ErrNoInfinitive = errors.New("no infinitive recorded for lemma")

// Applier picks and applies the best learned rule for a (lemma, MSD)
// pair. It works on strings as given: for prefixing languages the
// caller reverses the lemma before and the result after.
type Applier struct {
	model       *Model
	conj        *Conjugation
	infinitives InfinitiveIndex
}

// NewApplier returns an applier over model. conj and infinitives may be
// nil, which disables the conjugation override.
func NewApplier(model *Model, conj *Conjugation, infinitives InfinitiveIndex) *Applier {
	return &Applier{model: model, conj: conj, infinitives: infinitives}
}

// Apply predicts the form of lemma for msd.
//
// An MSD no rule was learned for yields the lemma itself. Otherwise the
// conjugation override gets the first say, then suffix rules, then
// prefix rules.
func (a *Applier) Apply(lemma, msd string) (string, error) {
	if !a.model.Knows(msd) {
		return lemma, nil
	}

	if a.conj != nil && a.conj.Applies(lemma, msd) {
		inf, ok := a.infinitives[lemma]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrNoInfinitive, lemma)
		}
		if form, ok := a.conj.inflect(lemma, msd, inf); ok {
			return form, nil
		}
	}

	base := StartAnchor + lemma + EndAnchor
	if r, ok := bestSuffixRule(a.model.Suffix[msd], base); ok {
		return stripAnchors(strings.ReplaceAll(base, r.Input, r.Output)), nil
	}
	if r, ok := bestPrefixRule(a.model.Prefix[msd], base); ok {
		return stripAnchors(strings.ReplaceAll(base, r.Input, r.Output)), nil
	}
	return lemma, nil
}

// bestSuffixRule returns the matching rule with the longest input,
// breaking ties by frequency and then by the longer output.
func bestSuffixRule(bucket map[Rule]int, base string) (Rule, bool) {
	var best Rule
	bestCount, found := 0, false
	for r, c := range bucket {
		if !strings.Contains(base, r.Input) {
			continue
		}
		if !found || suffixBetter(r, c, best, bestCount) {
			best, bestCount, found = r, c, true
		}
	}
	return best, found
}

func suffixBetter(r Rule, c int, best Rule, bestCount int) bool {
	if l, bl := runeLen(r.Input), runeLen(best.Input); l != bl {
		return l > bl
	}
	if c != bestCount {
		return c > bestCount
	}
	if l, bl := runeLen(r.Output), runeLen(best.Output); l != bl {
		return l > bl
	}
	return lexicallyFirst(r, best)
}

// bestPrefixRule returns the most frequent matching rule. Pattern
// length plays no part here.
func bestPrefixRule(bucket map[Rule]int, base string) (Rule, bool) {
	var best Rule
	bestCount, found := 0, false
	for r, c := range bucket {
		if !strings.Contains(base, r.Input) {
			continue
		}
		if !found || c > bestCount || (c == bestCount && lexicallyFirst(r, best)) {
			best, bestCount, found = r, c, true
		}
	}
	return best, found
}

// lexicallyFirst settles otherwise equal candidates so that map order
// never shows in the result.
func lexicallyFirst(r, other Rule) bool {
	if r.Output != other.Output {
		return r.Output < other.Output
	}
	return r.Input < other.Input
}
