package inflect

import (
	"bufio"
	"fmt"
	"io"
)

// Evaluate inflects every triple and scores the guesses against the gold
// forms. When w is non-nil each guess is written to it as
// "lemma\tMSD\tform". An error from the conjugation override aborts the
// run.
func (in *Inflector) Evaluate(triples []Triple, w io.Writer) (*Report, error) {
	var bw *bufio.Writer
	if w != nil {
		bw = bufio.NewWriter(w)
	}

	rep := &Report{ByPOS: make(map[PartOfSpeech]*Score)}
	for _, t := range triples {
		form, err := in.Inflect(t.Lemma, t.MSD)
		if err != nil {
			return nil, fmt.Errorf("inflect %q for %s: %w", t.Lemma, t.MSD, err)
		}

		pos := t.POS()
		ps, ok := rep.ByPOS[pos]
		if !ok {
			ps = &Score{}
			rep.ByPOS[pos] = ps
		}
		for _, s := range []*Score{&rep.Score, ps} {
			s.Total++
			if form == t.Form {
				s.Correct++
			}
			if LooseKey(form) == LooseKey(t.Form) {
				s.Loose++
			}
		}

		if bw != nil {
			if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", t.Lemma, t.MSD, form); err != nil {
				return nil, fmt.Errorf("write prediction: %w", err)
			}
		}
	}

	if bw != nil {
		if err := bw.Flush(); err != nil {
			return nil, fmt.Errorf("write prediction: %w", err)
		}
	}
	return rep, nil
}
