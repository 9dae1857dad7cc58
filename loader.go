package inflect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Format describes how corpus files are laid out.
type Format struct {
	Columns Columns
	// SkipCompound drops triples whose MSD contains "+".
	SkipCompound bool
}

// DefaultFormat reads lemma, MSD, form and keeps every line.
var DefaultFormat = Format{Columns: LemmaMSDForm}

// ReadCorpus parses tab-separated triples from r. Blank lines are
// skipped; any other line without exactly three fields is an error.
func ReadCorpus(r io.Reader, f Format) ([]Triple, error) {
	var out []Triple
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		t, err := parseTriple(line, f.Columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if f.SkipCompound && t.Compound() {
			continue
		}
		out = append(out, t)
	}
	return out, sc.Err()
}

// ReadCorpusFile reads the corpus at path.
func ReadCorpusFile(path string, f Format) ([]Triple, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	triples, err := ReadCorpus(file, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return triples, nil
}

// WriteCorpus writes triples as lemma, MSD, form lines.
func WriteCorpus(w io.Writer, triples []Triple) error {
	bw := bufio.NewWriter(w)
	for _, t := range triples {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\n", t.Lemma, t.MSD, t.Form); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Options configures Open.
type Options struct {
	// TrainPath is the training corpus. It is only read when the cache
	// cannot supply the bias or the model.
	TrainPath string
	// ReferencePath is the corpus searched for infinitives by the
	// conjugation override.
	ReferencePath string
	Format        Format
	// Cache holds the bias and rule tables between runs; nil disables
	// caching.
	Cache *Cache
	// CacheOnly makes Open fail with ErrCacheMissing rather than train
	// when the cache is incomplete. Nothing is written in this mode.
	CacheOnly bool
	Costs Costs
	// Conjugation enables the verb override when non-nil.
	Conjugation *Conjugation
	Logger      *zap.Logger
}

// Open returns an inflector for opts, reusing cached artifacts when they
// exist and building and caching them otherwise.
func Open(opts Options) (*Inflector, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.CacheOnly && opts.Cache == nil {
		return nil, fmt.Errorf("%w: no cache configured", ErrCacheMissing)
	}

	var train []Triple
	loadTrain := func() ([]Triple, error) {
		if train != nil {
			return train, nil
		}
		t, err := ReadCorpusFile(opts.TrainPath, opts.Format)
		if err != nil {
			return nil, err
		}
		log.Info("training corpus loaded", zap.String("path", opts.TrainPath), zap.Int("triples", len(t)))
		train = t
		return train, nil
	}

	bias, err := loadBias(opts, loadTrain, log)
	if err != nil {
		return nil, err
	}
	model, err := loadModel(opts, bias, loadTrain, log)
	if err != nil {
		return nil, err
	}

	inOpts := []Option{WithLogger(log)}
	if opts.Conjugation != nil {
		ref, err := ReadCorpusFile(opts.ReferencePath, opts.Format)
		if err != nil {
			return nil, fmt.Errorf("load reference corpus: %w", err)
		}
		idx := IndexInfinitives(ref, opts.Conjugation.Infinitive)
		log.Info("infinitive index built", zap.String("path", opts.ReferencePath), zap.Int("lemmas", len(idx)))
		inOpts = append(inOpts, WithConjugation(opts.Conjugation, idx))
	}
	return New(model, bias, inOpts...), nil
}

func loadBias(opts Options, loadTrain func() ([]Triple, error), log *zap.Logger) (Bias, error) {
	if opts.Cache != nil {
		b, err := opts.Cache.LoadBias()
		if err == nil {
			log.Info("direction bias loaded from cache", zap.Int("prefix", b.Prefix), zap.Int("suffix", b.Suffix))
			return b, nil
		}
		if !errors.Is(err, ErrCacheMissing) || opts.CacheOnly {
			return Bias{}, err
		}
	}

	train, err := loadTrain()
	if err != nil {
		return Bias{}, err
	}
	b := DetectDirection(train)
	log.Info("direction bias computed",
		zap.Int("prefix", b.Prefix),
		zap.Int("suffix", b.Suffix),
		zap.Bool("prefixing", b.Prefixing()))

	if opts.Cache != nil {
		if err := opts.Cache.SaveBias(b); err != nil {
			return Bias{}, err
		}
	}
	return b, nil
}

func loadModel(opts Options, bias Bias, loadTrain func() ([]Triple, error), log *zap.Logger) (*Model, error) {
	if opts.Cache != nil {
		m, err := opts.Cache.LoadModel()
		if err == nil {
			log.Info("rule tables loaded from cache",
				zap.Int("prefix_rules", m.Prefix.Size()),
				zap.Int("suffix_rules", m.Suffix.Size()))
			return m, nil
		}
		if opts.CacheOnly && errors.Is(err, ErrCacheMissing) {
			return nil, err
		}
		if !errors.Is(err, ErrCacheMissing) {
			return nil, fmt.Errorf("%w (delete the cache to rebuild)", err)
		}
	}

	train, err := loadTrain()
	if err != nil {
		return nil, err
	}
	costs := opts.Costs
	if costs == (Costs{}) {
		costs = RuleCosts
	}
	m := Train(train, bias, costs)
	log.Info("rule tables built",
		zap.Int("msds", len(m.MSDs())),
		zap.Int("prefix_rules", m.Prefix.Size()),
		zap.Int("suffix_rules", m.Suffix.Size()))

	if opts.Cache != nil {
		if err := opts.Cache.SaveModel(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}
