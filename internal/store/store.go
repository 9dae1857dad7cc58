// Package store exports trained rule tables to SQLite so they can be
// inspected with ordinary SQL tooling.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cours-de-latin/inflect"
)

const schema = `
CREATE TABLE IF NOT EXISTS rules (
	kind   TEXT    NOT NULL,
	msd    TEXT    NOT NULL,
	input  TEXT    NOT NULL,
	output TEXT    NOT NULL,
	count  INTEGER NOT NULL,
	PRIMARY KEY (kind, msd, input, output)
);
CREATE INDEX IF NOT EXISTS rules_msd ON rules (msd, kind);
CREATE TABLE IF NOT EXISTS bias (
	prefix INTEGER NOT NULL,
	suffix INTEGER NOT NULL
);
`

// Store is a SQLite database holding one model.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Export replaces the stored model with m and bias b.
func (s *Store) Export(ctx context.Context, m *inflect.Model, b inflect.Bias) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rules`); err != nil {
		return fmt.Errorf("clear rules: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bias`); err != nil {
		return fmt.Errorf("clear bias: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO bias (prefix, suffix) VALUES (?, ?)`, b.Prefix, b.Suffix); err != nil {
		return fmt.Errorf("insert bias: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO rules (kind, msd, input, output, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, kind := range []inflect.RuleKind{inflect.PrefixRules, inflect.SuffixRules} {
		t := m.Table(kind)
		for _, msd := range t.MSDs() {
			for r, c := range t[msd] {
				if _, err := stmt.ExecContext(ctx, kind.String(), msd, r.Input, r.Output, c); err != nil {
					return fmt.Errorf("insert %s rule %s: %w", kind, r, err)
				}
			}
		}
	}
	return tx.Commit()
}

// Load reads the stored model back.
func (s *Store) Load(ctx context.Context) (*inflect.Model, inflect.Bias, error) {
	var b inflect.Bias
	err := s.db.QueryRowContext(ctx, `SELECT prefix, suffix FROM bias LIMIT 1`).Scan(&b.Prefix, &b.Suffix)
	if err != nil && err != sql.ErrNoRows {
		return nil, b, fmt.Errorf("query bias: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, msd, input, output, count FROM rules`)
	if err != nil {
		return nil, b, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	m := inflect.NewModel()
	for rows.Next() {
		var kind, msd string
		var r inflect.Rule
		var count int
		if err := rows.Scan(&kind, &msd, &r.Input, &r.Output, &count); err != nil {
			return nil, b, fmt.Errorf("scan rule: %w", err)
		}
		t := m.Suffix
		if kind == inflect.PrefixRules.String() {
			t = m.Prefix
		}
		if t[msd] == nil {
			t[msd] = make(map[inflect.Rule]int)
		}
		t[msd][r] = count
	}
	return m, b, rows.Err()
}

// TopRules returns the n most frequent rules of kind for msd, ties in
// input/output order. A negative n returns them all.
func (s *Store) TopRules(ctx context.Context, kind inflect.RuleKind, msd string, n int) ([]inflect.RuleCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT input, output, count FROM rules WHERE kind = ? AND msd = ?
		 ORDER BY count DESC, input, output LIMIT ?`,
		kind.String(), msd, n)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var out []inflect.RuleCount
	for rows.Next() {
		var rc inflect.RuleCount
		if err := rows.Scan(&rc.Input, &rc.Output, &rc.Count); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
