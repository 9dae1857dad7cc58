package inflect

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
)

// ErrCacheMissing is returned when a cache artifact does not exist yet.
var ErrCacheMissing = errors.New("cache artifact missing")

// tableMagic tags serialized rule tables.
const tableMagic = "INFR1"

// tableFile is the on-disk form of a RuleTable.
type tableFile struct {
	Magic   string
	Kind    RuleKind
	Entries []tableEntry
}

type tableEntry struct {
	MSD    string
	Input  string
	Output string
	Count  int
}

// WriteTable serializes t as a gzip-compressed gob stream. Entries are
// written in sorted order so equal tables give equal bytes.
func WriteTable(w io.Writer, kind RuleKind, t RuleTable) error {
	f := tableFile{Magic: tableMagic, Kind: kind}
	for _, msd := range t.MSDs() {
		for r, c := range t[msd] {
			f.Entries = append(f.Entries, tableEntry{MSD: msd, Input: r.Input, Output: r.Output, Count: c})
		}
	}
	sort.Slice(f.Entries, func(i, j int) bool {
		a, b := f.Entries[i], f.Entries[j]
		if a.MSD != b.MSD {
			return a.MSD < b.MSD
		}
		if a.Input != b.Input {
			return a.Input < b.Input
		}
		return a.Output < b.Output
	})

	zw := gzip.NewWriter(w)
	if err := gob.NewEncoder(zw).Encode(&f); err != nil {
		return fmt.Errorf("encode %s rules: %w", kind, err)
	}
	return zw.Close()
}

// ReadTable decodes a table written by WriteTable.
func ReadTable(r io.Reader) (RuleKind, RuleTable, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return 0, nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer zr.Close()

	var f tableFile
	if err := gob.NewDecoder(zr).Decode(&f); err != nil {
		return 0, nil, fmt.Errorf("decode rules: %w", err)
	}
	if f.Magic != tableMagic {
		return 0, nil, fmt.Errorf("bad rule table signature %q", f.Magic)
	}
	t := make(RuleTable)
	for _, e := range f.Entries {
		bucket, ok := t[e.MSD]
		if !ok {
			bucket = make(map[Rule]int)
			t[e.MSD] = bucket
		}
		bucket[Rule{Input: e.Input, Output: e.Output}] = e.Count
	}
	return f.Kind, t, nil
}

// Cache stores the direction bias and the trained rule tables between
// runs. Nothing checks the artifacts against the corpus they were built
// from: after the corpus changes the operator must Clear the cache.
type Cache struct {
	Dir        string
	BiasFile   string
	PrefixFile string
	SuffixFile string
}

// NewCache returns a cache in dir using the default file names.
func NewCache(dir string) *Cache {
	return &Cache{
		Dir:        dir,
		BiasFile:   "prefsuffbias",
		PrefixFile: "prules.gob",
		SuffixFile: "srules.gob",
	}
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.Dir, name)
}

// Paths returns the artifact paths: bias, prefix rules, suffix rules.
func (c *Cache) Paths() []string {
	return []string{c.path(c.BiasFile), c.path(c.PrefixFile), c.path(c.SuffixFile)}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadBias reads the two-line bias file: prefix score, then suffix score.
func (c *Cache) LoadBias() (Bias, error) {
	f, err := os.Open(c.path(c.BiasFile))
	if err != nil {
		if os.IsNotExist(err) {
			return Bias{}, ErrCacheMissing
		}
		return Bias{}, fmt.Errorf("open %s: %w", c.BiasFile, err)
	}
	defer f.Close()

	var vals [2]int
	sc := bufio.NewScanner(f)
	for i := range vals {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return Bias{}, fmt.Errorf("read %s: %w", c.BiasFile, err)
			}
			return Bias{}, fmt.Errorf("read %s: expected 2 lines, got %d", c.BiasFile, i)
		}
		v, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			return Bias{}, fmt.Errorf("parse %s line %d: %w", c.BiasFile, i+1, err)
		}
		vals[i] = v
	}
	return Bias{Prefix: vals[0], Suffix: vals[1]}, nil
}

// SaveBias writes b in the two-line format LoadBias reads.
func (c *Cache) SaveBias(b Bias) error {
	data := fmt.Sprintf("%d\n%d\n", b.Prefix, b.Suffix)
	return c.writeFile(c.BiasFile, func(w io.Writer) error {
		_, err := io.WriteString(w, data)
		return err
	})
}

// HasModel reports whether both rule artifacts exist.
func (c *Cache) HasModel() bool {
	return exists(c.path(c.PrefixFile)) && exists(c.path(c.SuffixFile))
}

// LoadModel reads both rule tables. It returns ErrCacheMissing unless
// both artifacts exist.
func (c *Cache) LoadModel() (*Model, error) {
	if !c.HasModel() {
		return nil, ErrCacheMissing
	}
	m := NewModel()
	for _, name := range []string{c.PrefixFile, c.SuffixFile} {
		kind, t, err := loadTable(c.path(name))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		if kind == PrefixRules {
			m.Prefix = t
		} else {
			m.Suffix = t
		}
	}
	return m, nil
}

// loadTable maps the file read-only and decodes it in place.
func loadTable(path string) (RuleKind, RuleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return 0, nil, fmt.Errorf("mmap: %w", err)
	}
	defer m.Unmap()

	return ReadTable(bytes.NewReader(m))
}

// SaveModel writes both rule tables.
func (c *Cache) SaveModel(m *Model) error {
	if err := c.writeFile(c.PrefixFile, func(w io.Writer) error {
		return WriteTable(w, PrefixRules, m.Prefix)
	}); err != nil {
		return err
	}
	return c.writeFile(c.SuffixFile, func(w io.Writer) error {
		return WriteTable(w, SuffixRules, m.Suffix)
	})
}

// writeFile writes name through a temporary file and renames it into
// place, so readers never see a half-written artifact.
func (c *Cache) writeFile(name string, write func(io.Writer) error) error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.Dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), c.path(name)); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

// Clear deletes every artifact, forcing the next run to recompute the
// bias and retrain.
func (c *Cache) Clear() error {
	for _, p := range c.Paths() {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}
