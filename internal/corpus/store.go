// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus keeps numbered verses and their dotless form in SQLite so
// they can be looked up by number or searched by skeleton.
// Implements: verse store (ingest, lookup, search, export).
package corpus

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/dotless/internal/dotless"
	"github.com/pdiddy/dotless/pkg/types"
)

const dbFile = "corpus.db"

// ErrNotFound is returned by Lookup when no verse has the given number.
var ErrNotFound = errors.New("verse not found")

// Store manages the corpus SQLite database.
type Store struct {
	db         *sql.DB
	m          *dotless.Map
	maxResults int
}

// Open opens or creates the corpus database at cfg.Dir/corpus.db. Text is
// normalized with m, or the built-in map when m is nil.
func Open(cfg types.CorpusConfig, m *dotless.Map) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating corpus directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if m == nil {
		m = dotless.Default()
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, m: m, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS verses (
			surah INTEGER NOT NULL,
			ayah INTEGER NOT NULL,
			text TEXT NOT NULL,
			dotless TEXT NOT NULL,
			PRIMARY KEY (surah, ayah)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_verses_dotless ON verses(dotless)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from an ingest run.
type IngestSummary struct {
	Stored  int
	Skipped int
}

// Total returns the number of lines read.
func (s IngestSummary) Total() int {
	return s.Stored + s.Skipped
}

// Ingest reads `<surah>|<ayah>|<text>` lines from r and stores each verse
// with its dotless form, replacing earlier rows with the same number. Lines
// without numeric numbering are skipped and reported to w. The whole run is
// one transaction.
func (s *Store) Ingest(ctx context.Context, r io.Reader, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO verses (surah, ayah, text, dotless) VALUES (?, ?, ?, ?)
		 ON CONFLICT(surah, ayah) DO UPDATE SET text=excluded.text, dotless=excluded.dotless`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, rerr := br.ReadString('\n')
		if len(line) > 0 {
			v, perr := s.parseVerse(line)
			if perr != nil {
				fmt.Fprintf(w, "skipped line %d: %v\n", lineNo, perr)
				summary.Skipped++
			} else {
				if _, err := stmt.ExecContext(ctx, v.Surah, v.Ayah, v.Text, v.Dotless); err != nil {
					return summary, fmt.Errorf("storing %d:%d: %w", v.Surah, v.Ayah, err)
				}
				summary.Stored++
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return summary, fmt.Errorf("reading input: %w", rerr)
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "\nstored: %d, skipped: %d\n", summary.Stored, summary.Skipped)
	return summary, nil
}

func (s *Store) parseVerse(line string) (types.Verse, error) {
	rec, ok := dotless.ParseRecord(line)
	if !ok {
		return types.Verse{}, errors.New("no verse numbering")
	}
	surah, err := strconv.Atoi(strings.TrimSpace(rec.Surah))
	if err != nil || surah <= 0 {
		return types.Verse{}, fmt.Errorf("bad surah number %q", rec.Surah)
	}
	ayah, err := strconv.Atoi(strings.TrimSpace(rec.Ayah))
	if err != nil || ayah <= 0 {
		return types.Verse{}, fmt.Errorf("bad ayah number %q", rec.Ayah)
	}
	return types.Verse{
		Surah:   surah,
		Ayah:    ayah,
		Text:    rec.Text,
		Dotless: s.m.Normalize(rec.Text),
	}, nil
}

// Lookup returns the verse with the given number.
func (s *Store) Lookup(ctx context.Context, surah, ayah int) (types.Verse, error) {
	v := types.Verse{Surah: surah, Ayah: ayah}
	err := s.db.QueryRowContext(ctx,
		`SELECT text, dotless FROM verses WHERE surah = ? AND ayah = ?`, surah, ayah,
	).Scan(&v.Text, &v.Dotless)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Verse{}, fmt.Errorf("%d:%d: %w", surah, ayah, ErrNotFound)
		}
		return types.Verse{}, fmt.Errorf("looking up %d:%d: %w", surah, ayah, err)
	}
	return v, nil
}

// Search normalizes query and returns verses whose dotless text contains it,
// in surah and ayah order. Dotted and dotless spellings of a query therefore
// find the same verses. A limit of zero uses the store default.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Verse, error) {
	q := strings.TrimSpace(s.m.Normalize(query))
	if q == "" {
		return nil, errors.New("search query is empty after normalization")
	}
	if limit <= 0 {
		limit = s.maxResults
	}
	return s.query(ctx,
		`SELECT surah, ayah, text, dotless FROM verses
		 WHERE instr(dotless, ?) > 0
		 ORDER BY surah, ayah LIMIT ?`, q, limit)
}

// Count returns the number of stored verses.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM verses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting verses: %w", err)
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]types.Verse, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var verses []types.Verse
	for rows.Next() {
		var v types.Verse
		if err := rows.Scan(&v.Surah, &v.Ayah, &v.Text, &v.Dotless); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		verses = append(verses, v)
	}
	return verses, rows.Err()
}
