package inflect

import "math"

// Alignment is a character-level correspondence between two strings.
// Source and Target have the same rune length; Gap marks a position
// with no counterpart on that side.
type Alignment struct {
	Source string
	Target string
	// Cost is the edit cost of the alignment. HammingAlign reports the
	// mismatch count of the padded strings.
	Cost float64
}

// Costs are the per-operation weights of the Levenshtein aligner.
type Costs struct {
	Insert     float64 `yaml:"insert"`
	Delete     float64 `yaml:"delete"`
	Substitute float64 `yaml:"substitute"`
}

// DefaultCosts weighs every edit operation equally.
var DefaultCosts = Costs{Insert: 1, Delete: 1, Substitute: 1}

// RuleCosts makes a substitution slightly dearer than one insertion or
// deletion, so that among equally long edits the aligner prefers
// explicit 0:x / x:0 columns over x:y columns.
var RuleCosts = Costs{Insert: 1, Delete: 1, Substitute: 1.1}

// costScale converts float costs into integer units so that equal sums
// compare equal.
const costScale = 1_000_000

func units(c float64) int64 {
	return int64(math.Round(c * costScale))
}

// hamming counts positions where a and b differ. Both have equal length.
func hamming(a, b []rune) int {
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}

// padded returns lead gaps, s, then trail gaps.
func padded(lead int, s []rune, trail int) []rune {
	out := make([]rune, 0, lead+len(s)+trail)
	for i := 0; i < lead; i++ {
		out = append(out, Gap)
	}
	out = append(out, s...)
	for i := 0; i < trail; i++ {
		out = append(out, Gap)
	}
	return out
}

// HammingAlign aligns s and t by sliding one against the other inside
// gap padding and keeping the placement with the fewest positional
// mismatches. Placements of s against a right-shifted t are tried
// first, then placements of t against a right-shifted s; on equal
// scores the first placement found wins. Columns where both sides hold
// a gap are removed from the result.
func HammingAlign(s, t string) Alignment {
	sr, tr := []rune(s), []rune(t)
	m, n := len(sr), len(tr)

	best := m + n + 1
	var bu, bl []rune

	lower := padded(m, tr, 0)
	for upad := 0; upad <= n; upad++ {
		upper := padded(upad, sr, n-upad)
		if score := hamming(upper, lower); score < best {
			bu, bl, best = upper, lower, score
		}
	}

	upper := padded(n, sr, 0)
	for lpad := 0; lpad <= m; lpad++ {
		lower := padded(m-lpad, tr, lpad)
		if score := hamming(upper, lower); score < best {
			bu, bl, best = upper, lower, score
		}
	}

	src := make([]rune, 0, len(bu))
	tgt := make([]rune, 0, len(bl))
	for i := range bu {
		if bu[i] == Gap && bl[i] == Gap {
			continue
		}
		src = append(src, bu[i])
		tgt = append(tgt, bl[i])
	}
	return Alignment{Source: string(src), Target: string(tgt), Cost: float64(best)}
}

// traceback moves stored per cell of the Levenshtein table.
const (
	moveSubstitute uint8 = iota
	moveInsert
	moveDelete
)

// Levenshtein computes a minimum-cost alignment of s and t.
//
// The table is indexed by the lengths of the remaining suffixes: cell
// (i, j) holds the cheapest cost of aligning s[i:] with t[j:]. It is
// filled bottom-up in a single flat slice, then walked from (0, 0) to
// emit the alignment. Ties prefer substitute-or-match, then insert,
// then delete, so the output is a function of the inputs alone.
func Levenshtein(s, t string, c Costs) Alignment {
	sr, tr := []rune(s), []rune(t)
	m, n := len(sr), len(tr)
	ins, del, sub := units(c.Insert), units(c.Delete), units(c.Substitute)

	w := n + 1
	cost := make([]int64, (m+1)*w)
	move := make([]uint8, (m+1)*w)

	for j := n - 1; j >= 0; j-- {
		cost[m*w+j] = cost[m*w+j+1] + ins
		move[m*w+j] = moveInsert
	}
	for i := m - 1; i >= 0; i-- {
		cost[i*w+n] = cost[(i+1)*w+n] + del
		move[i*w+n] = moveDelete

		for j := n - 1; j >= 0; j-- {
			step := int64(0)
			if sr[i] != tr[j] {
				step = sub
			}
			best, mv := step+cost[(i+1)*w+j+1], moveSubstitute
			if v := ins + cost[i*w+j+1]; v < best {
				best, mv = v, moveInsert
			}
			if v := del + cost[(i+1)*w+j]; v < best {
				best, mv = v, moveDelete
			}
			cost[i*w+j] = best
			move[i*w+j] = mv
		}
	}

	src := make([]rune, 0, m+n)
	tgt := make([]rune, 0, m+n)
	i, j := 0, 0
	for i < m || j < n {
		switch move[i*w+j] {
		case moveSubstitute:
			src = append(src, sr[i])
			tgt = append(tgt, tr[j])
			i++
			j++
		case moveInsert:
			src = append(src, Gap)
			tgt = append(tgt, tr[j])
			j++
		case moveDelete:
			src = append(src, sr[i])
			tgt = append(tgt, Gap)
			i++
		}
	}

	return Alignment{
		Source: string(src),
		Target: string(tgt),
		Cost:   float64(cost[0]) / costScale,
	}
}
