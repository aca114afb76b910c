package cache

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cache_words (
	seq INTEGER PRIMARY KEY,
	word TEXT UNIQUE NOT NULL
);

CREATE TABLE IF NOT EXISTS cache_entries (
	word TEXT NOT NULL,
	context TEXT NOT NULL,
	replacement TEXT NOT NULL,
	PRIMARY KEY(word, context)
);
`

// SQLiteBackend stores the cache in two tables of a SQLite database and
// rewrites them in a single transaction on every save.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLiteBackend opens (or creates) the database at path.
func OpenSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite cache schema: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// Load reads words in insertion order and attaches their contexts.
func (b *SQLiteBackend) Load(ctx context.Context) (*Snapshot, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT word FROM cache_words ORDER BY seq")
	if err != nil {
		return nil, err
	}
	s := &Snapshot{}
	pos := make(map[string]int)
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			rows.Close()
			return nil, err
		}
		pos[w] = len(s.Words)
		s.Words = append(s.Words, Entry{Word: w, Contexts: make(map[string]string)})
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = b.db.QueryContext(ctx, "SELECT word, context, replacement FROM cache_entries")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var w, c, r string
		if err := rows.Scan(&w, &c, &r); err != nil {
			return nil, err
		}
		if i, ok := pos[w]; ok {
			s.Words[i].Contexts[c] = r
		}
	}
	return s, rows.Err()
}

// Save replaces both tables with s.
func (b *SQLiteBackend) Save(ctx context.Context, s *Snapshot) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cache_entries"); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM cache_words"); err != nil {
		return err
	}
	wordStmt, err := tx.PrepareContext(ctx, "INSERT INTO cache_words(seq, word) VALUES(?, ?)")
	if err != nil {
		return err
	}
	defer wordStmt.Close()
	entryStmt, err := tx.PrepareContext(ctx, "INSERT INTO cache_entries(word, context, replacement) VALUES(?, ?, ?)")
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	for i, e := range s.Words {
		if _, err := wordStmt.ExecContext(ctx, i, e.Word); err != nil {
			return fmt.Errorf("sqlite cache word %q: %w", e.Word, err)
		}
		for c, r := range e.Contexts {
			if _, err := entryStmt.ExecContext(ctx, e.Word, c, r); err != nil {
				return fmt.Errorf("sqlite cache entry %q: %w", e.Word, err)
			}
		}
	}
	return tx.Commit()
}
