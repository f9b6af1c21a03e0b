// Package store holds the notes served by notes-server.
//
// # Architecture
//
// NoteStore is the single interface the HTTP layer depends on. Two backends
// implement it:
//
//   - MemoryStore: an ordered slice guarded by a sync.RWMutex (default)
//   - SQLiteStore: a private in-memory SQLite database via modernc.org/sqlite
//
// Neither backend survives a restart.
//
// # Identifiers
//
// A new note's id is the id of the last note in insertion order plus one, or 1
// when the store is empty. Deleting the last note and then creating another
// reuses its id.
//
// # Error Handling
//
//   - ErrNotFound: Delete was called with an id no live note has
//
// All methods accept context.Context; only SQLiteStore uses it.
//
// # Testing
//
// Both backends run the same contract suite (see store_test.go):
//
//	s := store.NewMemoryStore()
//	s, err := store.NewSQLiteStore(store.WelcomeNote)
package store
