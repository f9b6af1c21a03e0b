// ABOUTME: In-memory NoteStore backed by an ordered slice
// ABOUTME: Default backend; all data is lost when the process exits

package store

import (
	"context"
	"slices"
	"sync"
)

// Ensure MemoryStore implements NoteStore.
var _ NoteStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory NoteStore.
type MemoryStore struct {
	mu    sync.RWMutex
	notes []Note
}

// NewMemoryStore creates a MemoryStore holding the given seed notes in order.
func NewMemoryStore(seed ...Note) *MemoryStore {
	return &MemoryStore{
		notes: slices.Clone(seed),
	}
}

// List returns a copy of all notes in insertion order.
func (m *MemoryStore) List(ctx context.Context) ([]Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Note, len(m.notes))
	copy(result, m.notes)
	return result, nil
}

// Create appends a new note.
func (m *MemoryStore) Create(ctx context.Context, text string) (Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var last *Note
	if len(m.notes) > 0 {
		last = &m.notes[len(m.notes)-1]
	}

	note := Note{ID: nextID(last), Text: text}
	m.notes = append(m.notes, note)
	return note, nil
}

// Delete removes the first note whose id matches.
func (m *MemoryStore) Delete(ctx context.Context, id int64) (Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.notes, func(n Note) bool { return n.ID == id })
	if idx == -1 {
		return Note{}, ErrNotFound
	}

	removed := m.notes[idx]
	m.notes = slices.Delete(m.notes, idx, idx+1)
	return removed, nil
}

// Close is a no-op for the memory backend.
func (m *MemoryStore) Close() error {
	return nil
}
