package inflect

import "strings"

// Ending rewrites the end of a citation form: Strip is removed and Add
// appended.
type Ending struct {
	Strip string
	Add   string
}

// Conjugation describes the verb override used to tell Latin first
// conjugation verbs from third conjugation ones. Both cite their
// present first person singular in -ō, so the lemma alone does not say
// which paradigm applies; the infinitive does.
type Conjugation struct {
	// Verb is the MSD prefix that marks verbal descriptors.
	Verb string
	// Theme is the lemma ending that makes a verb ambiguous.
	Theme string
	// Infinitive is the MSD feature identifying the infinitive entry of
	// a lemma in the reference corpus.
	Infinitive string
	// First is the infinitive ending of the tabulated conjugation. Any
	// other infinitive (third conjugation -ere included) is left to the
	// learned rules.
	First string
	// Exceptions lists infinitives for which the override never fires.
	Exceptions []string
	// Paradigm maps an MSD to the first-conjugation ending that
	// realises it.
	Paradigm map[string]Ending
}

// firstConjugation covers the active paradigm of -āre verbs.
var firstConjugation = map[string]Ending{
	"V;IND;ACT;PRS;1;SG":       {"ō", "ō"},
	"V;IND;ACT;PRS;2;SG":       {"ō", "ās"},
	"V;IND;ACT;PRS;3;SG":       {"ō", "at"},
	"V;IND;ACT;PRS;1;PL":       {"ō", "āmus"},
	"V;IND;ACT;PRS;2;PL":       {"ō", "ātis"},
	"V;IND;ACT;PRS;3;PL":       {"ō", "ant"},
	"V;IND;ACT;PST;IPFV;1;SG":  {"ō", "ābam"},
	"V;IND;ACT;PST;IPFV;2;SG":  {"ō", "ābās"},
	"V;IND;ACT;PST;IPFV;3;SG":  {"ō", "ābat"},
	"V;IND;ACT;PST;IPFV;1;PL":  {"ō", "ābāmus"},
	"V;IND;ACT;PST;IPFV;2;PL":  {"ō", "ābātis"},
	"V;IND;ACT;PST;IPFV;3;PL":  {"ō", "ābant"},
	"V;IND;ACT;FUT;1;SG":       {"ō", "ābō"},
	"V;IND;ACT;FUT;2;SG":       {"ō", "ābis"},
	"V;IND;ACT;FUT;3;SG":       {"ō", "ābit"},
	"V;IND;ACT;FUT;1;PL":       {"ō", "ābimus"},
	"V;IND;ACT;FUT;2;PL":       {"ō", "ābitis"},
	"V;IND;ACT;FUT;3;PL":       {"ō", "ābunt"},
	"V;SBJV;ACT;PRS;1;SG":      {"ō", "em"},
	"V;SBJV;ACT;PRS;2;SG":      {"ō", "ēs"},
	"V;SBJV;ACT;PRS;3;SG":      {"ō", "et"},
	"V;SBJV;ACT;PRS;1;PL":      {"ō", "ēmus"},
	"V;SBJV;ACT;PRS;2;PL":      {"ō", "ētis"},
	"V;SBJV;ACT;PRS;3;PL":      {"ō", "ent"},
	"V;SBJV;ACT;PST;IPFV;1;SG": {"ō", "ārem"},
	"V;SBJV;ACT;PST;IPFV;2;SG": {"ō", "ārēs"},
	"V;SBJV;ACT;PST;IPFV;3;SG": {"ō", "āret"},
	"V;SBJV;ACT;PST;IPFV;1;PL": {"ō", "ārēmus"},
	"V;SBJV;ACT;PST;IPFV;2;PL": {"ō", "ārētis"},
	"V;SBJV;ACT;PST;IPFV;3;PL": {"ō", "ārent"},
	"V;IMP;ACT;PRS;2;SG":       {"ō", "ā"},
	"V;IMP;ACT;PRS;2;PL":       {"ō", "āte"},
	"V;IMP;ACT;FUT;2;SG":       {"ō", "ātō"},
	"V;IMP;ACT;FUT;3;SG":       {"ō", "ātō"},
	"V;IMP;ACT;FUT;2;PL":       {"ō", "ātōte"},
	"V;IMP;ACT;FUT;3;PL":       {"ō", "antō"},
	"V;NFIN;ACT;PRS":           {"ō", "āre"},
	"V;V.PTCP;ACT;PRS":         {"ō", "āns"},
	"V;V.MSDR;GEN":             {"ō", "andī"},
	"V;V.MSDR;DAT":             {"ō", "andō"},
	"V;V.MSDR;ACC":             {"ō", "andum"},
	"V;V.MSDR;ABL":             {"ō", "andō"},
}

// LatinConjugation returns the override for Latin -ō verbs. exceptions
// lists infinitives the override must leave to the learned rules.
func LatinConjugation(exceptions ...string) *Conjugation {
	return &Conjugation{
		Verb:       "V;",
		Theme:      "ō",
		Infinitive: "NFIN",
		First:      "āre",
		Exceptions: exceptions,
		Paradigm:   firstConjugation,
	}
}

// Applies reports whether the override has to look at lemma for msd.
func (c *Conjugation) Applies(lemma, msd string) bool {
	return strings.HasPrefix(msd, c.Verb) && strings.HasSuffix(lemma, c.Theme)
}

// inflect returns the first-conjugation form of lemma for msd given its
// infinitive. ok is false when the learned rules must decide instead:
// the infinitive is an exception, belongs to the third conjugation (no
// paradigm is tabulated for it), or the MSD is not in the table.
func (c *Conjugation) inflect(lemma, msd, infinitive string) (string, bool) {
	for _, e := range c.Exceptions {
		if infinitive == e {
			return "", false
		}
	}
	if !strings.HasSuffix(infinitive, c.First) {
		return "", false
	}
	end, ok := c.Paradigm[msd]
	if !ok || !strings.HasSuffix(lemma, end.Strip) {
		return "", false
	}
	return strings.TrimSuffix(lemma, end.Strip) + end.Add, true
}

// InfinitiveIndex maps a lemma to its infinitive as recorded in a
// reference corpus.
type InfinitiveIndex map[string]string

// IndexInfinitives records, for every lemma, the form of its first
// triple whose MSD contains feature.
func IndexInfinitives(triples []Triple, feature string) InfinitiveIndex {
	idx := make(InfinitiveIndex)
	for _, t := range triples {
		if !strings.Contains(t.MSD, feature) {
			continue
		}
		if _, ok := idx[t.Lemma]; !ok {
			idx[t.Lemma] = t.Form
		}
	}
	return idx
}
