// ABOUTME: NoteStore interface and the Note record shared by all store backends
// ABOUTME: Defines id derivation and the welcome note seeded at process start

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested note does not exist
var ErrNotFound = errors.New("not found")

// Note is a short text note. Notes are never mutated after creation.
type Note struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// WelcomeNote is the record a fresh server starts with.
var WelcomeNote = Note{ID: 1, Text: "Welcome to Codespace demo!"}

// NoteStore holds notes as an ordered sequence.
// Implementations must make each operation atomic relative to the others.
type NoteStore interface {
	// List returns every live note in insertion order. The result is never nil.
	List(ctx context.Context) ([]Note, error)

	// Create appends a note with the next id and returns it.
	// The text is stored verbatim; callers validate it.
	Create(ctx context.Context, text string) (Note, error)

	// Delete removes the note with the given id and returns it.
	// Returns ErrNotFound if no such note exists.
	Delete(ctx context.Context, id int64) (Note, error)

	// Close releases backend resources.
	Close() error
}

// nextID derives a new id from the last note in insertion order.
// This is not a counter: deleting the last note lets its id be handed out again.
func nextID(last *Note) int64 {
	if last == nil {
		return 1
	}
	return last.ID + 1
}
