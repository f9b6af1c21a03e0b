// Package server exposes the note store over HTTP.
//
// # Routes
//
//	GET    /health          liveness, plain "OK"
//	GET    /api/notes       list notes in insertion order
//	POST   /api/notes       create a note from {"text": "..."} or text=...
//	DELETE /api/notes/{id}  delete a note by id
//	/                       static assets (embedded or static.dir)
//
// # Errors
//
// Failures are JSON objects with a single "error" key:
//
//	400 {"error": "text required"}         text missing or empty
//	400 {"error": "invalid request body"}  body could not be decoded
//	404 {"error": "not found"}             no note with that id
//	500 {"error": "internal server error"} store failure (logged)
//
// # Lifecycle
//
// Server owns the NoteStore it is given. Run blocks until its context is
// canceled, then shuts the HTTP server down and closes the store.
package server
