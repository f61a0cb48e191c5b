// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store appends run results to a SQLite database. It is write-only output
// alongside the CSV: nothing is ever read back to short-circuit fetching.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the results database at path and ensures the
// schema exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening results database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating results schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			started TEXT NOT NULL,
			row_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			pmid TEXT PRIMARY KEY,
			title TEXT,
			publication_date TEXT,
			authors TEXT,
			companies TEXT,
			corresponding_email TEXT,
			last_run_id INTEGER REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_last_run ON papers(last_run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores one run and its rows in a single transaction. Papers
// already present from earlier runs are overwritten with the fresh values.
func (s *Store) RecordRun(ctx context.Context, query string, rows []Row) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, started, row_count) VALUES (?, ?, ?)`,
		query, time.Now().UTC().Format(time.RFC3339), len(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO papers (pmid, title, publication_date, authors, companies, corresponding_email, last_run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pmid) DO UPDATE SET
			title = excluded.title,
			publication_date = excluded.publication_date,
			authors = excluded.authors,
			companies = excluded.companies,
			corresponding_email = excluded.corresponding_email,
			last_run_id = excluded.last_run_id`)
	if err != nil {
		return 0, fmt.Errorf("preparing paper insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.PubmedID, row.Title, row.PublicationDate,
			strings.Join(row.Authors, multiValueSeparator),
			strings.Join(row.Companies, multiValueSeparator),
			row.CorrespondingEmail, runID,
		); err != nil {
			return 0, fmt.Errorf("inserting paper %s: %w", row.PubmedID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunCount returns the number of recorded runs.
func (s *Store) RunCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}
