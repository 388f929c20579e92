package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shubGupta10/notenest/internal/docstore"
	"github.com/shubGupta10/notenest/internal/identity"
)

func TestGetMapsMissingDocumentToErrNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "document not found"})
	}))
	defer server.Close()

	backend := New(server.URL, WithToken("t"))
	if _, err := backend.Get(context.Background(), "notes", "absent"); !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateMapsConflict(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "document id already exists"})
	}))
	defer server.Close()

	backend := New(server.URL, WithToken("t"))
	_, err := backend.Create(context.Background(), "entries", "e1", map[string]any{"status": true}, nil)
	if !errors.Is(err, docstore.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestTransientFailuresAreRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "temporary"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"total": 0, "documents": []any{}})
	}))
	defer server.Close()

	backend := New(server.URL, WithToken("t"))
	documents, err := backend.List(context.Background(), "notes", nil)
	if err != nil {
		t.Fatalf("expected the retried request to succeed, got %v", err)
	}
	if len(documents) != 0 {
		t.Fatalf("unexpected documents %+v", documents)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected three attempts, got %d", calls.Load())
	}
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid filter"})
	}))
	defer server.Close()

	backend := New(server.URL, WithToken("t"))
	if _, err := backend.List(context.Background(), "notes", nil); err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt for a 400, got %d", calls.Load())
	}
}

func TestCreateSessionStoresBearerToken(t *testing.T) {
	t.Parallel()

	var sawAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/account/sessions/token":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "session-1", "userId": "user-1", "provider": "dev", "token": "bearer-1",
			})
		case r.Method == http.MethodGet && r.URL.Path == "/v1/account/sessions/current":
			sawAuthorization = r.Header.Get("Authorization")
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "session-1", "userId": "user-1"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	var observed []string
	backend := New(server.URL, WithTokenListener(func(token string) {
		observed = append(observed, token)
	}))

	session, err := backend.CreateSession(context.Background(), "user-1", "secret")
	if err != nil {
		t.Fatalf("CreateSession() unexpected error: %v", err)
	}
	if session.ID != "session-1" {
		t.Fatalf("unexpected session %+v", session)
	}
	if backend.Token() != "bearer-1" {
		t.Fatalf("expected the token to be stored, got %q", backend.Token())
	}
	if len(observed) != 1 || observed[0] != "bearer-1" {
		t.Fatalf("expected the listener to see the token, got %v", observed)
	}

	if _, err := backend.GetSession(context.Background()); err != nil {
		t.Fatalf("GetSession() unexpected error: %v", err)
	}
	if sawAuthorization != "Bearer bearer-1" {
		t.Fatalf("expected the bearer header, got %q", sawAuthorization)
	}
}

func TestGetSessionWithoutTokenShortCircuits(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected no request without a token")
	}))
	defer server.Close()

	backend := New(server.URL)
	if _, err := backend.GetSession(context.Background()); !errors.Is(err, identity.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if err := backend.DeleteSession(context.Background()); !errors.Is(err, identity.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
