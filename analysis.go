package inflect

// PartOfSpeech is the grammatical category read from an MSD.
type PartOfSpeech string

const (
	POSNoun       PartOfSpeech = "N"
	POSProperNoun PartOfSpeech = "PROPN"
	POSAdjective  PartOfSpeech = "ADJ"
	POSVerb       PartOfSpeech = "V"
	POSParticiple PartOfSpeech = "V.PTCP"
	POSUnknown    PartOfSpeech = "-"
)

// Prediction is the inflector's answer for one (lemma, MSD) pair.
type Prediction struct {
	Lemma string
	MSD   string
	Form  string
}

// Score counts correct guesses over a set of predictions.
type Score struct {
	Correct int
	// Loose counts guesses that match once vowel quantity and j/v
	// spelling are ignored.
	Loose int
	Total int
}

// Accuracy returns Correct/Total, or 0 for an empty score.
func (s Score) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// LooseAccuracy returns Loose/Total, or 0 for an empty score.
func (s Score) LooseAccuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Loose) / float64(s.Total)
}

// Report is the outcome of an evaluation run.
type Report struct {
	Score
	// ByPOS breaks the score down by part of speech.
	ByPOS map[PartOfSpeech]*Score
}

// InflectionTable holds the predicted paradigm of a lemma.
type InflectionTable struct {
	Lemma string
	// Cells maps each known MSD to the predicted form.
	Cells map[string]string
}
