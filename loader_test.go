package inflect

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const trainCorpus = `amō	V;NFIN;ACT;PRS	amāre
amō	V;IND;ACT;PRS;3;SG	amat

laudō	V;NFIN;ACT;PRS	laudāre
rosa	N;NOM;PL	rosae
rosa	N;GEN;SG+N;DAT;SG	rosae
`

func TestReadCorpus(t *testing.T) {
	got, err := ReadCorpus(strings.NewReader(trainCorpus), DefaultFormat)
	require.NoError(t, err)
	assert.Len(t, got, 5, "blank lines are skipped")
	assert.Equal(t, Triple{Lemma: "amō", MSD: nfin, Form: "amāre"}, got[0])

	skipped, err := ReadCorpus(strings.NewReader(trainCorpus), Format{Columns: LemmaMSDForm, SkipCompound: true})
	require.NoError(t, err)
	assert.Len(t, skipped, 4)
	for _, tr := range skipped {
		assert.False(t, tr.Compound(), "compound entry %v kept", tr)
	}
}

func TestReadCorpusColumns(t *testing.T) {
	got, err := ReadCorpus(strings.NewReader("amō\tamāre\tV;NFIN;ACT;PRS\n"), Format{Columns: LemmaFormMSD})
	require.NoError(t, err)
	want := []Triple{{Lemma: "amō", MSD: nfin, Form: "amāre"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("triples mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCorpusMalformed(t *testing.T) {
	_, err := ReadCorpus(strings.NewReader("amō\tV;NFIN;ACT;PRS\tamāre\namō\tamat\n"), DefaultFormat)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedLine))
	assert.Contains(t, err.Error(), "line 2")
}

func TestWriteCorpus(t *testing.T) {
	triples, err := ReadCorpus(strings.NewReader(trainCorpus), DefaultFormat)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, WriteCorpus(&sb, triples))
	again, err := ReadCorpus(strings.NewReader(sb.String()), DefaultFormat)
	require.NoError(t, err)
	assert.Equal(t, triples, again)
}

func TestPOSOf(t *testing.T) {
	tests := map[string]PartOfSpeech{
		"N;NOM;SG":          POSNoun,
		"PROPN;ACC;SG":      POSProperNoun,
		"ADJ;NOM;SG;MASC":   POSAdjective,
		nfin:                POSVerb,
		"V.PTCP;PST;NOM;SG": POSParticiple,
		"ADV":               POSUnknown,
		"":                  POSUnknown,
	}
	for msd, want := range tests {
		if got := POSOf(msd); got != want {
			t.Errorf("POSOf(%q) = %q, want %q", msd, got, want)
		}
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestOpenBuildsThenReusesCache(t *testing.T) {
	dir := t.TempDir()
	train := filepath.Join(dir, "lat.trn")
	writeFile(t, train, trainCorpus)
	cache := NewCache(filepath.Join(dir, "cache"))

	opts := Options{
		TrainPath: train,
		Format:    Format{Columns: LemmaMSDForm, SkipCompound: true},
		Cache:     cache,
		Logger:    zaptest.NewLogger(t),
	}
	first, err := Open(opts)
	require.NoError(t, err)
	for _, p := range cache.Paths() {
		assert.FileExists(t, p)
	}
	assert.False(t, first.Bias().Prefixing())

	form, err := first.Inflect("cantō", nfin)
	require.NoError(t, err)
	assert.Equal(t, "cantāre", form)

	// The training corpus is not read again once the cache is complete.
	opts.TrainPath = filepath.Join(dir, "missing.trn")
	second, err := Open(opts)
	require.NoError(t, err)
	if diff := cmp.Diff(first.Model(), second.Model()); diff != "" {
		t.Errorf("cached model mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, first.Bias(), second.Bias())
}

func TestOpenWithoutCache(t *testing.T) {
	dir := t.TempDir()
	train := filepath.Join(dir, "lat.trn")
	writeFile(t, train, trainCorpus)

	in, err := Open(Options{TrainPath: train, Format: DefaultFormat})
	require.NoError(t, err)
	assert.True(t, in.Model().Knows(nfin))

	_, err = Open(Options{TrainPath: filepath.Join(dir, "missing.trn"), Format: DefaultFormat})
	assert.Error(t, err)
}

func TestOpenWithConjugation(t *testing.T) {
	dir := t.TempDir()
	train := filepath.Join(dir, "lat.trn")
	ref := filepath.Join(dir, "lat.dev")
	writeFile(t, train, trainCorpus)
	writeFile(t, ref, "portō\tV;NFIN;ACT;PRS\tportāre\nregō\tV;NFIN;ACT;PRS\tregere\n")

	in, err := Open(Options{
		TrainPath:     train,
		ReferencePath: ref,
		Format:        DefaultFormat,
		Conjugation:   LatinConjugation("Icarūsa"),
	})
	require.NoError(t, err)

	form, err := in.Inflect("portō", prs3sg)
	require.NoError(t, err)
	assert.Equal(t, "portat", form)

	_, err = in.Inflect("cantō", prs3sg)
	assert.ErrorIs(t, err, ErrNoInfinitive)
}

func TestOpenCorruptCache(t *testing.T) {
	dir := t.TempDir()
	train := filepath.Join(dir, "lat.trn")
	writeFile(t, train, trainCorpus)
	cache := NewCache(dir)
	require.NoError(t, cache.SaveBias(Bias{Suffix: 1}))
	writeFile(t, filepath.Join(dir, cache.PrefixFile), "garbage")
	writeFile(t, filepath.Join(dir, cache.SuffixFile), "garbage")

	_, err := Open(Options{TrainPath: train, Format: DefaultFormat, Cache: cache})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete the cache")
}

func TestOpenCacheOnly(t *testing.T) {
	dir := t.TempDir()
	train := filepath.Join(dir, "lat.trn")
	writeFile(t, train, trainCorpus)
	cache := NewCache(filepath.Join(dir, "cache"))
	opts := Options{TrainPath: train, Format: DefaultFormat, Cache: cache, CacheOnly: true}

	// Only the bias is there: no training, nothing written.
	require.NoError(t, cache.SaveBias(Bias{Suffix: 6}))
	_, err := Open(opts)
	require.ErrorIs(t, err, ErrCacheMissing)
	assert.False(t, cache.HasModel())

	require.NoError(t, cache.Clear())
	_, err = Open(opts)
	require.ErrorIs(t, err, ErrCacheMissing)
	assert.NoFileExists(t, filepath.Join(cache.Dir, cache.BiasFile))

	opts.CacheOnly = false
	built, err := Open(opts)
	require.NoError(t, err)

	opts.CacheOnly = true
	opts.TrainPath = filepath.Join(dir, "missing.trn")
	cached, err := Open(opts)
	require.NoError(t, err)
	if diff := cmp.Diff(built.Model(), cached.Model()); diff != "" {
		t.Errorf("cached model mismatch (-want +got):\n%s", diff)
	}

	_, err = Open(Options{TrainPath: train, Format: DefaultFormat, CacheOnly: true})
	assert.ErrorIs(t, err, ErrCacheMissing)
}
