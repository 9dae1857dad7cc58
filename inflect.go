// Package inflect is a non-neural baseline for morphological
// inflection. It learns prefix and suffix rewrite rules from
// (lemma, MSD, form) triples by aligning each lemma with its inflected
// form, counts them per MSD, and predicts new forms by applying the
// longest, most frequent matching rule.
package inflect

import "go.uber.org/zap"

// Inflector predicts inflected forms from a trained model. It hides the
// direction handling: for prefixing languages strings are reversed on
// the way in and the way out.
type Inflector struct {
	model *Model
	bias  Bias

	conj        *Conjugation
	infinitives InfinitiveIndex

	applier *Applier
	logger  *zap.Logger
}

// Option configures an Inflector.
type Option func(*Inflector)

// WithLogger sets the logger used for per-prediction debug output.
func WithLogger(l *zap.Logger) Option {
	return func(in *Inflector) {
		in.logger = l
	}
}

// WithConjugation enables the verb override with the given infinitive
// index.
func WithConjugation(c *Conjugation, infinitives InfinitiveIndex) Option {
	return func(in *Inflector) {
		in.conj = c
		in.infinitives = infinitives
	}
}

// New returns an inflector over a trained model.
func New(model *Model, bias Bias, opts ...Option) *Inflector {
	in := &Inflector{
		model:  model,
		bias:   bias,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(in)
	}
	in.applier = NewApplier(model, in.conj, in.infinitives)
	return in
}

// Model returns the underlying rule tables.
func (in *Inflector) Model() *Model {
	return in.model
}

// Bias returns the direction bias the model was trained under.
func (in *Inflector) Bias() Bias {
	return in.bias
}

// MSDs returns every MSD the model has rules for.
func (in *Inflector) MSDs() []string {
	return in.model.MSDs()
}

// Inflect predicts the form of lemma for msd. The only error is
// ErrNoInfinitive from the conjugation override.
func (in *Inflector) Inflect(lemma, msd string) (string, error) {
	src := lemma
	if in.bias.Prefixing() {
		src = Reverse(lemma)
	}
	form, err := in.applier.Apply(src, msd)
	if err != nil {
		return "", err
	}
	if in.bias.Prefixing() {
		form = Reverse(form)
	}
	in.logger.Debug("inflected", zap.String("lemma", lemma), zap.String("msd", msd), zap.String("form", form))
	return form, nil
}

// Predict is Inflect returning a Prediction.
func (in *Inflector) Predict(lemma, msd string) (Prediction, error) {
	form, err := in.Inflect(lemma, msd)
	if err != nil {
		return Prediction{}, err
	}
	return Prediction{Lemma: lemma, MSD: msd, Form: form}, nil
}
