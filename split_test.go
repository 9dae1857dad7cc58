package inflect

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func splitCorpus() []Triple {
	var out []Triple
	for i := 0; i < 24; i++ {
		l := fmt.Sprintf("noun%d", i)
		out = append(out,
			Triple{Lemma: l, MSD: "N;NOM;SG", Form: l},
			Triple{Lemma: l, MSD: "N;GEN;SG", Form: l + "ī"})
	}
	for i := 0; i < 12; i++ {
		l := fmt.Sprintf("verb%dō", i)
		out = append(out,
			Triple{Lemma: l, MSD: nfin, Form: l + "re"},
			Triple{Lemma: l, MSD: prs3sg, Form: l + "t"})
	}
	return out
}

func lemmaSet(ts []Triple) map[string]bool {
	s := make(map[string]bool)
	for _, t := range ts {
		s[t.Lemma] = true
	}
	return s
}

func TestSplit(t *testing.T) {
	corpus := splitCorpus()
	opts := SplitOptions{DevFraction: 1.0 / 12, TestFraction: 1.0 / 12, Seed: 56}
	train, dev, test := Split(corpus, opts)

	assert.Len(t, train, 60)
	assert.Len(t, dev, 6)
	assert.Len(t, test, 6)

	tr, dv, ts := lemmaSet(train), lemmaSet(dev), lemmaSet(test)
	for l := range dv {
		assert.False(t, tr[l] || ts[l], "lemma %s appears in more than one set", l)
	}
	for l := range ts {
		assert.False(t, tr[l], "lemma %s appears in train and test", l)
	}

	// Stratified: each set gets its share of every category.
	for _, set := range [][]Triple{dev, test} {
		counts := make(map[PartOfSpeech]int)
		for l := range lemmaSet(set) {
			for _, tr := range set {
				if tr.Lemma == l {
					counts[tr.POS()]++
					break
				}
			}
		}
		assert.Equal(t, map[PartOfSpeech]int{POSNoun: 2, POSVerb: 1}, counts)
	}

	train2, dev2, test2 := Split(corpus, opts)
	assert.Equal(t, train, train2)
	assert.Equal(t, dev, dev2)
	assert.Equal(t, test, test2)
}

func TestSplitNoHeldOut(t *testing.T) {
	corpus := splitCorpus()
	train, dev, test := Split(corpus, SplitOptions{})
	assert.Equal(t, corpus, train)
	assert.Empty(t, dev)
	assert.Empty(t, test)
}
