package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/notes-server/internal/config"
	"github.com/2389/notes-server/internal/store"
)

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestStaticIndexServedAtRoot(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Notes</title>")
}

func TestStaticMissingFile(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/missing.png", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestID_Generated(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/api/notes", "", "")

	id := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err, "generated request id should be a UUID")
}

func TestRequestID_Echoed(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestRequestID_InContext(t *testing.T) {
	var seen string
	h := withRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-456")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-456", seen)
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestOpenStore(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.Default()
			cfg.Store.Backend = backend

			s, err := OpenStore(cfg)
			require.NoError(t, err)
			defer s.Close()

			notes, err := s.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []store.Note{store.WelcomeNote}, notes)
		})
	}
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "postgres"

	_, err := OpenStore(cfg)
	assert.Error(t, err)
}

// closeTrackingStore records whether Close was called.
type closeTrackingStore struct {
	*store.MemoryStore
	closed bool
}

func (c *closeTrackingStore) Close() error {
	c.closed = true
	return nil
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	notes := &closeTrackingStore{MemoryStore: store.NewMemoryStore(store.WelcomeNote)}
	srv := New(config.Default(), notes, testLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := fmt.Sprintf("http://%s/api/notes", ln.Addr().String())
	resp, err := http.Get(url)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1,"text":"Welcome to Codespace demo!"}]`, string(body))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	assert.True(t, notes.closed, "store should be closed on shutdown")
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Server.Host = host
	_, err = fmt.Sscan(portStr, &cfg.Server.Port)
	require.NoError(t, err)

	notes := &closeTrackingStore{MemoryStore: store.NewMemoryStore()}
	srv := New(cfg, notes, testLogger())

	err = srv.Run(context.Background())
	assert.Error(t, err, "port already in use")
	assert.True(t, notes.closed)
}
