// Package store handles SQLite persistence for per-language dictionaries.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver.
)

var (
	// ErrLanguageNotFound reports an operation against a language that has
	// no dictionary yet.
	ErrLanguageNotFound = errors.New("language not found")
	// ErrLanguageExists reports a creation attempt for a language that
	// already has a dictionary.
	ErrLanguageExists = errors.New("language already exists")
	// ErrWordNotFound reports a removal of a word the dictionary does not
	// contain.
	ErrWordNotFound = errors.New("word not found")
)

// Word is a dictionary entry ready for insertion: the normalized word and
// its precomputed pattern fingerprint.
type Word struct {
	Text    string
	Pattern string
}

// Store wraps SQLite access for dictionary data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS languages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			language_id INTEGER NOT NULL REFERENCES languages(id) ON DELETE CASCADE,
			word TEXT NOT NULL,
			pattern TEXT NOT NULL,
			UNIQUE (language_id, word)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_words_language_pattern ON words(language_id, pattern);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// languageID resolves a language name inside any querier (db or tx).
func languageID(ctx context.Context, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}, language string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM languages WHERE name = ?`, language).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%q: %w", language, ErrLanguageNotFound)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateLanguage registers a new language with an empty dictionary.
func (s *Store) CreateLanguage(ctx context.Context, language string) error {
	exists, err := s.HasLanguage(ctx, language)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%q: %w", language, ErrLanguageExists)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO languages (name) VALUES (?)`, language)
	return err
}

// DeleteLanguage removes a language and every word of its dictionary.
func (s *Store) DeleteLanguage(ctx context.Context, language string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	id, err := languageID(ctx, tx, language)
	if err != nil {
		return err
	}
	// SQLite keeps foreign keys off by default, so cascade by hand.
	if _, err = tx.ExecContext(ctx, `DELETE FROM words WHERE language_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM languages WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Languages lists every registered language in creation order. Attack and
// identification scans follow this order, so it has to be stable.
func (s *Store) Languages(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM languages ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var languages []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		languages = append(languages, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return languages, nil
}

// HasLanguage reports whether a language is registered.
func (s *Store) HasLanguage(ctx context.Context, language string) (bool, error) {
	_, err := languageID(ctx, s.db, language)
	if errors.Is(err, ErrLanguageNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddWords inserts words into a language dictionary in one transaction.
// Words already present are left untouched, so repeated imports stay
// idempotent.
func (s *Store) AddWords(ctx context.Context, language string, words []Word) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	id, err := languageID(ctx, tx, language)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO words (language_id, word, pattern) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, word := range words {
		if _, err = stmt.ExecContext(ctx, id, word.Text, word.Pattern); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RemoveWord deletes one word from a language dictionary.
func (s *Store) RemoveWord(ctx context.Context, language, word string) error {
	id, err := languageID(ctx, s.db, language)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM words WHERE language_id = ? AND word = ?`, id, word)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%q: %w", word, ErrWordNotFound)
	}
	return nil
}

// WordExists reports whether a language dictionary contains word.
func (s *Store) WordExists(ctx context.Context, language, word string) (bool, error) {
	id, err := languageID(ctx, s.db, language)
	if err != nil {
		return false, err
	}
	var one int
	err = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM words WHERE language_id = ? AND word = ?`, id, word).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// WordsWithPattern returns every word of a language sharing a pattern
// fingerprint, in lexical order.
func (s *Store) WordsWithPattern(ctx context.Context, language, pattern string) ([]string, error) {
	id, err := languageID(ctx, s.db, language)
	if err != nil {
		return nil, err
	}
	return s.queryWords(ctx,
		`SELECT word FROM words WHERE language_id = ? AND pattern = ? ORDER BY word ASC`,
		id, pattern)
}

// AllWords returns every word of a language in insertion order.
func (s *Store) AllWords(ctx context.Context, language string) ([]string, error) {
	id, err := languageID(ctx, s.db, language)
	if err != nil {
		return nil, err
	}
	return s.queryWords(ctx,
		`SELECT word FROM words WHERE language_id = ? ORDER BY id ASC`, id)
}

// WordCount returns how many words a language dictionary holds.
func (s *Store) WordCount(ctx context.Context, language string) (int, error) {
	id, err := languageID(ctx, s.db, language)
	if err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM words WHERE language_id = ?`, id).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) queryWords(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
