package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/client"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/tokenstore"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/logging"
)

// newTestAPI serves r and returns a client logged in as "A1".
func newTestAPI(t *testing.T, r chi.Router) *client.APIClient {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	store := tokenstore.NewMemoryStore()
	if err := store.SetTokens(t.Context(), "A1", "R1"); err != nil {
		t.Fatal(err)
	}
	log := logging.Discard()
	auth := client.NewAuthClient(srv.URL, store, log)
	return client.NewAPIClient(srv.URL, store, auth, log)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		t.Errorf("decode body: %v", err)
	}
	return m
}
