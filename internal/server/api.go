// ABOUTME: HTTP API handlers for listing, creating, and deleting notes
// ABOUTME: Translates store results and errors into JSON responses with status codes

package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/2389/notes-server/internal/store"
)

// maxBodyBytes caps request bodies for POST /api/notes.
const maxBodyBytes = 1 << 20

var (
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
)

// createNoteRequest is the request body for POST /api/notes.
// Text is a pointer so an absent field can be told apart from a decode failure.
type createNoteRequest struct {
	Text *string `json:"text"`
}

// handleListNotes handles GET /api/notes.
// It returns every note in insertion order.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list notes", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.sendJSON(w, http.StatusOK, notes)
}

// handleCreateNote handles POST /api/notes.
// Accepts a JSON or form-urlencoded body with a non-empty text field.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	req, err := parseCreateRequest(w, r)
	if errors.Is(err, errBodyTooLarge) {
		s.sendJSONError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	if err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Text == nil || *req.Text == "" {
		s.sendJSONError(w, http.StatusBadRequest, "text required")
		return
	}

	note, err := s.store.Create(r.Context(), *req.Text)
	if err != nil {
		s.logger.Error("failed to create note", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.logger.Debug("note created", "id", note.ID)
	s.sendJSON(w, http.StatusOK, note)
}

// handleDeleteNote handles DELETE /api/notes/{id}.
// An id that does not parse matches no note and yields 404.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseNoteID(r.PathValue("id"))
	if !ok {
		s.sendJSONError(w, http.StatusNotFound, "not found")
		return
	}

	note, err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.sendJSONError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to delete note", "error", err, "id", id)
		s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.logger.Debug("note deleted", "id", note.ID)
	s.sendJSON(w, http.StatusOK, note)
}

// parseCreateRequest decodes a createNoteRequest from a JSON or
// form-urlencoded body. Other content types decode as an empty request,
// as does an empty JSON body.
func parseCreateRequest(w http.ResponseWriter, r *http.Request) (*createNoteRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req createNoteRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		err := json.NewDecoder(r.Body).Decode(&req)
		if err == nil || errors.Is(err, io.EOF) {
			return &req, nil
		}
		if isMaxBytesError(err) {
			return nil, errBodyTooLarge
		}
		return nil, errInvalidBody

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			if isMaxBytesError(err) {
				return nil, errBodyTooLarge
			}
			return nil, errInvalidBody
		}
		if r.PostForm.Has("text") {
			text := r.PostForm.Get("text")
			req.Text = &text
		}
		return &req, nil

	default:
		return &req, nil
	}
}

func isMaxBytesError(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// parseNoteID reads the leading integer of a path segment: optional leading
// whitespace, an optional sign, then base-10 digits up to the first non-digit.
// "12abc" yields 12. A segment with no leading digits, or one that overflows
// int64, reports false.
func parseNoteID(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// sendJSON writes v as a JSON response with the given status.
func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	s.sendJSON(w, status, map[string]string{"error": message})
}
