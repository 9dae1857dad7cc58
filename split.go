package inflect

import (
	"math"
	"math/rand/v2"
	"sort"
)

// SplitOptions sizes a train/dev/test split.
type SplitOptions struct {
	DevFraction  float64
	TestFraction float64
	Seed         uint64
}

// Split partitions triples into train, dev and test sets by lemma, so
// that all forms of a lemma land in the same set. Lemmas are shuffled
// and cut separately for each part of speech, which keeps the category
// mix of the three sets close to that of the whole corpus. Triples keep
// their corpus order inside each set.
func Split(triples []Triple, opts SplitOptions) (train, dev, test []Triple) {
	var order []string
	byLemma := make(map[string][]Triple)
	byPOS := make(map[PartOfSpeech][]string)
	for _, t := range triples {
		if _, ok := byLemma[t.Lemma]; !ok {
			order = append(order, t.Lemma)
			byPOS[t.POS()] = append(byPOS[t.POS()], t.Lemma)
		}
		byLemma[t.Lemma] = append(byLemma[t.Lemma], t)
	}

	poses := make([]string, 0, len(byPOS))
	for p := range byPOS {
		poses = append(poses, string(p))
	}
	sort.Strings(poses)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	set := make(map[string]int, len(order))
	for _, p := range poses {
		lemmas := append([]string(nil), byPOS[PartOfSpeech(p)]...)
		rng.Shuffle(len(lemmas), func(i, j int) {
			lemmas[i], lemmas[j] = lemmas[j], lemmas[i]
		})
		nTest := int(math.Round(float64(len(lemmas)) * opts.TestFraction))
		nDev := int(math.Round(float64(len(lemmas)) * opts.DevFraction))
		for i, l := range lemmas {
			switch {
			case i < nTest:
				set[l] = 2
			case i < nTest+nDev:
				set[l] = 1
			}
		}
	}

	for _, l := range order {
		switch set[l] {
		case 2:
			test = append(test, byLemma[l]...)
		case 1:
			dev = append(dev, byLemma[l]...)
		default:
			train = append(train, byLemma[l]...)
		}
	}
	return train, dev, test
}
