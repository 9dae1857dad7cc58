package inflect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLine is returned for a corpus line that does not hold
// exactly three tab-separated fields.
var ErrMalformedLine = errors.New("malformed corpus line")

// Triple is one training or evaluation record.
type Triple struct {
	Lemma string
	MSD   string
	Form  string
}

// Columns names the order of the three fields in a corpus file.
type Columns string

const (
	// LemmaMSDForm is the layout the system reads and writes.
	LemmaMSDForm Columns = "lemma,msd,form"
	// LemmaFormMSD is the UniMorph release layout.
	LemmaFormMSD Columns = "lemma,form,msd"
)

// Valid reports whether c is a known layout.
func (c Columns) Valid() bool {
	return c == LemmaMSDForm || c == LemmaFormMSD
}

// parseTriple splits a corpus line into a Triple.
func parseTriple(line string, cols Columns) (Triple, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != 3 {
		return Triple{}, fmt.Errorf("%w: %d fields", ErrMalformedLine, len(parts))
	}
	if cols == LemmaFormMSD {
		return Triple{Lemma: parts[0], MSD: parts[2], Form: parts[1]}, nil
	}
	return Triple{Lemma: parts[0], MSD: parts[1], Form: parts[2]}, nil
}

// Compound reports whether the MSD bundles several descriptors with "+".
// Such entries are dropped before training.
func (t Triple) Compound() bool {
	return strings.Contains(t.MSD, "+")
}

// POS returns the part of speech encoded in the MSD.
func (t Triple) POS() PartOfSpeech {
	return POSOf(t.MSD)
}

// POSOf reads the part of speech from an MSD, whose first feature is
// the category.
func POSOf(msd string) PartOfSpeech {
	cat, _, _ := strings.Cut(msd, ";")
	switch PartOfSpeech(cat) {
	case POSNoun, POSProperNoun, POSAdjective, POSVerb, POSParticiple:
		return PartOfSpeech(cat)
	default:
		return POSUnknown
	}
}
