package inflect

import "strings"

// Bias holds the gap totals collected by DetectDirection. Prefix sums
// the leading gap runs of every Hamming alignment, Suffix the trailing
// ones.
type Bias struct {
	Prefix int
	Suffix int
}

// Prefixing reports whether the language changes word beginnings more
// than word endings. Prefixing languages are processed on reversed
// strings.
func (b Bias) Prefixing() bool {
	return b.Prefix > b.Suffix
}

// DetectDirection Hamming-aligns every lemma with its form and sums the
// leading and trailing gap runs of both sides. Pairs whose alignment
// contains a space or a hyphen are multiword or compound entries and are
// not counted.
func DetectDirection(triples []Triple) Bias {
	var b Bias
	for _, t := range triples {
		a := HammingAlign(t.Lemma, t.Form)
		if strings.ContainsAny(a.Source, " -") || strings.ContainsAny(a.Target, " -") {
			continue
		}
		src, tgt := []rune(a.Source), []rune(a.Target)
		b.Prefix += leadingGaps(src) + leadingGaps(tgt)
		b.Suffix += trailingGaps(src) + trailingGaps(tgt)
	}
	return b
}
