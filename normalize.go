package inflect

import (
	"strings"
	"unicode/utf8"
)

// Gap is the filler rune used in alignments for an inserted or deleted
// position.
const Gap = '_'

// Anchors delimiting a lemma while rules are matched against it.
const (
	StartAnchor = "<"
	EndAnchor   = ">"
)

// atoneReplacer removes vowel quantity marks (macrons and breves).
var atoneReplacer = strings.NewReplacer(
	"\u0101", "a", // ā
	"\u0103", "a", // ă
	"\u0113", "e", // ē
	"\u0115", "e", // ĕ
	"\u012b", "i", // ī
	"\u012d", "i", // ĭ
	"\u014d", "o", // ō
	"\u014f", "o", // ŏ
	"\u016b", "u", // ū
	"\u016d", "u", // ŭ
	"\u0233", "y", // ȳ
	"\u0100", "A", // Ā
	"\u0102", "A", // Ă
	"\u0112", "E", // Ē
	"\u0114", "E", // Ĕ
	"\u012a", "I", // Ī
	"\u012c", "I", // Ĭ
	"\u014c", "O", // Ō
	"\u014e", "O", // Ŏ
	"\u016a", "U", // Ū
	"\u016c", "U", // Ŭ
	"\u0232", "Y", // Ȳ
	"\u0306", "", // combining breve
	"\u0304", "", // combining macron
)

// Atone strips vowel-quantity diacritics from s.
func Atone(s string) string {
	return atoneReplacer.Replace(s)
}

// deramiseReplacer maps j/v spellings to i/u and expands æ/œ.
var deramiseReplacer = strings.NewReplacer(
	"J", "I",
	"j", "i",
	"v", "u",
	"V", "U",
	"\u00e6", "ae", // æ
	"\u00c6", "Ae", // Æ
	"\u0153", "oe", // œ
	"\u0152", "Oe", // Œ
)

// Deramise converts j→i, v→u and expands the æ/œ ligatures.
func Deramise(s string) string {
	return deramiseReplacer.Replace(s)
}

// LooseKey is the comparison key used for quantity-insensitive scoring:
// two forms that differ only in macrons, breves or j/v spelling share
// the same key.
func LooseKey(s string) string {
	return Atone(Deramise(s))
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// StripGaps removes every gap filler from s.
func StripGaps(s string) string {
	return strings.ReplaceAll(s, string(Gap), "")
}

// stripAnchors removes the rule anchors from a bracketed lemma.
func stripAnchors(s string) string {
	s = strings.ReplaceAll(s, StartAnchor, "")
	return strings.ReplaceAll(s, EndAnchor, "")
}

// leadingGaps counts the gap fillers at the start of s.
func leadingGaps(s []rune) int {
	n := 0
	for n < len(s) && s[n] == Gap {
		n++
	}
	return n
}

// trailingGaps counts the gap fillers at the end of s.
func trailingGaps(s []rune) int {
	n := 0
	for n < len(s) && s[len(s)-1-n] == Gap {
		n++
	}
	return n
}

// runeLen is the length used when comparing rule patterns.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
