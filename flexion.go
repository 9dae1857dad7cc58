package inflect

import "sort"

// InflectionTable predicts lemma's form for every MSD the model knows.
// With pos set, only MSDs of that part of speech are filled.
func (in *Inflector) InflectionTable(lemma string, pos PartOfSpeech) (*InflectionTable, error) {
	table := &InflectionTable{
		Lemma: lemma,
		Cells: make(map[string]string),
	}
	for _, msd := range in.MSDs() {
		if pos != "" && POSOf(msd) != pos {
			continue
		}
		form, err := in.Inflect(lemma, msd)
		if err != nil {
			return nil, err
		}
		table.Cells[msd] = form
	}
	return table, nil
}

// Forms returns the distinct forms of the table, each at the position
// of the first MSD (in sorted order) that produces it.
func (t *InflectionTable) Forms() []string {
	msds := make([]string, 0, len(t.Cells))
	for msd := range t.Cells {
		msds = append(msds, msd)
	}
	sort.Strings(msds)

	seen := make(map[string]bool, len(msds))
	var forms []string
	for _, msd := range msds {
		if f := t.Cells[msd]; !seen[f] {
			seen[f] = true
			forms = append(forms, f)
		}
	}
	return forms
}
