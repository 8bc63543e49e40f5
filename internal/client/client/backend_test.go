package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/tokenstore"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/logging"
)

// fakeBackend emulates the parts of the API the client relies on.
type fakeBackend struct {
	srv *httptest.Server

	mu            sync.Mutex
	validAccess   string
	validRefresh  string
	nextAccess    string
	nextRefresh   string
	refreshStatus int
	lastAuth      string
	lastRequestID string
	lastBody      string
	lastForm      map[string]string
	avatarType    string

	refreshCalls atomic.Int32
	hits         atomic.Int32
}

func newFakeBackend(t *testing.T, opts ...func(*fakeBackend)) *fakeBackend {
	t.Helper()

	b := &fakeBackend{validAccess: "A2", validRefresh: "R1", nextAccess: "A2"}
	for _, opt := range opts {
		opt(b)
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b.hits.Add(1)
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/auth/connexion", b.login)
	r.Post("/auth", b.register)
	r.Post("/auth/refresh-token/{userID}", b.refresh)
	r.Get("/auth/me", b.guard(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "ok",
			"data":    map[string]any{"idUtilisateur": "U1", "pseudo": "rakoto", "role": "CLIENT"},
		})
	}))
	r.Get("/rubriques", b.guard(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "ok",
			"data":    []map[string]any{{"idRubrique": "r1", "libelle": "Cyclones"}},
		})
	}))
	r.Post("/rubriques", b.guard(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.lastBody = string(body)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{"rubrique": json.RawMessage(body)})
	}))
	r.Get("/forbidden", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]any{"statusCode": 403, "message": "Forbidden resource"})
	})
	r.Delete("/broken", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"statusCode": 500, "message": []string{"a", "b"}})
	})

	b.srv = httptest.NewServer(r)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) guard(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.lastAuth = r.Header.Get("Authorization")
		b.lastRequestID = r.Header.Get("X-Request-ID")
		ok := b.lastAuth == "Bearer "+b.validAccess || (b.validAccess == "" && b.lastAuth == "")
		b.mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401, "message": "Unauthorized"})
			return
		}
		h(w, r)
	}
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"motDePasse"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"statusCode": 400, "message": err.Error()})
		return
	}

	switch {
	case req.Email == "empty@bngrc.mg":
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "data": map[string]any{}})
	case req.Email == "bare@bngrc.mg":
		writeJSON(w, http.StatusOK, map[string]any{"accessToken": "A1", "refreshToken": "R1"})
	case req.Password != "secret1":
		writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401, "message": "Identifiants invalides"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "data": map[string]any{
			"accessToken":  "A1",
			"refreshToken": "R1",
			"utilisateur":  map[string]any{"idUtilisateur": "U1", "email": req.Email, "role": "CLIENT"},
		}})
	}
}

func (b *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"statusCode": 400, "message": err.Error()})
		return
	}

	form := make(map[string]string)
	for k, v := range r.MultipartForm.Value {
		form[k] = v[0]
	}

	b.mu.Lock()
	b.lastForm = form
	if files := r.MultipartForm.File["avatar"]; len(files) > 0 {
		b.avatarType = files[0].Header.Get("Content-Type")
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Inscription réussie", "data": map[string]any{
		"idUtilisateur": "U1",
		"pseudo":        form["pseudo"],
		"email":         form["email"],
		"role":          "CLIENT",
		"statut":        "ATTENTE",
	}})
}

func (b *fakeBackend) registered() (map[string]string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastForm, b.avatarType
}

func (b *fakeBackend) refresh(w http.ResponseWriter, r *http.Request) {
	b.refreshCalls.Add(1)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.refreshStatus != 0 {
		writeJSON(w, b.refreshStatus, map[string]any{"statusCode": b.refreshStatus, "message": "Invalid refresh token"})
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+b.validRefresh || chi.URLParam(r, "userID") != "U1" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401, "message": "Invalid refresh token"})
		return
	}

	data := map[string]any{"accessToken": b.nextAccess}
	if b.nextRefresh != "" {
		data["refreshToken"] = b.nextRefresh
	}
	b.validAccess = b.nextAccess
	writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "data": data})
}

func (b *fakeBackend) seen() (auth, requestID, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAuth, b.lastRequestID, b.lastBody
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newSession seeds a store with the A1/R1/U1 session.
func newSession(t *testing.T) *tokenstore.MemoryStore {
	t.Helper()
	ctx := context.Background()
	s := tokenstore.NewMemoryStore()
	if err := s.SetTokens(ctx, "A1", "R1"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetUserID(ctx, "U1"); err != nil {
		t.Fatal(err)
	}
	return s
}

func newClients(b *fakeBackend, store tokenstore.Store) (*AuthClient, *APIClient) {
	log := logging.Discard()
	auth := NewAuthClient(b.srv.URL, store, log)
	api := NewAPIClient(b.srv.URL, store, auth, log)
	return auth, api
}
