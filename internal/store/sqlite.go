// ABOUTME: SQLite implementation of NoteStore using modernc.org/sqlite
// ABOUTME: Always opens a private in-memory database so notes end with the process

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Ensure SQLiteStore implements NoteStore.
var _ NoteStore = (*SQLiteStore)(nil)

// memoryDSN keeps the database private to the single pooled connection.
const memoryDSN = ":memory:"

// SQLiteStore implements NoteStore on an in-memory SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens a fresh in-memory database, creates the schema
// and inserts the seed notes in order.
func NewSQLiteStore(seed ...Note) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Every connection to :memory: gets its own database, so the pool
	// must never grow past one or drop its idle connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := s.seed(seed); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding notes: %w", err)
	}

	logger.Info("SQLite store initialized", "dsn", memoryDSN, "seeded", len(seed))
	return s, nil
}

// createSchema creates the notes table.
// seq records insertion order; id is the client-visible identifier.
func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			seq  INTEGER PRIMARY KEY AUTOINCREMENT,
			id   INTEGER NOT NULL UNIQUE,
			text TEXT NOT NULL
		);
	`)
	return err
}

// seed inserts notes only when the table is empty.
func (s *SQLiteStore) seed(notes []Note) error {
	if len(notes) == 0 {
		return nil
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, n := range notes {
		if _, err := s.db.Exec(`INSERT INTO notes (id, text) VALUES (?, ?)`, n.ID, n.Text); err != nil {
			return fmt.Errorf("inserting note %d: %w", n.ID, err)
		}
	}
	return nil
}

// List returns all notes in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text FROM notes ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	notes := []Note{}
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Text); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Create derives the next id from the last row and inserts the note
// within one transaction.
func (s *SQLiteStore) Create(ctx context.Context, text string) (Note, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Note{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var last *Note
	var lastID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM notes ORDER BY seq DESC LIMIT 1`).Scan(&lastID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return Note{}, fmt.Errorf("reading last note: %w", err)
	default:
		last = &Note{ID: lastID}
	}

	note := Note{ID: nextID(last), Text: text}
	if _, err := tx.ExecContext(ctx, `INSERT INTO notes (id, text) VALUES (?, ?)`, note.ID, note.Text); err != nil {
		return Note{}, fmt.Errorf("inserting note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Note{}, fmt.Errorf("committing note: %w", err)
	}
	return note, nil
}

// Delete removes the note with the given id and returns it.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) (Note, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Note{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var seq int64
	note := Note{}
	err = tx.QueryRowContext(ctx, `SELECT seq, id, text FROM notes WHERE id = ? ORDER BY seq LIMIT 1`, id).
		Scan(&seq, &note.ID, &note.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, fmt.Errorf("finding note: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE seq = ?`, seq); err != nil {
		return Note{}, fmt.Errorf("deleting note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Note{}, fmt.Errorf("committing delete: %w", err)
	}
	return note, nil
}

// Close closes the database, discarding all notes.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
