package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_SendsStoredBearer(t *testing.T) {
	b := newFakeBackend(t)
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.SetTokens(context.Background(), "A2", "R1"))
	_, api := newClients(b, store)

	var out []models.Rubrique
	require.NoError(t, api.GetJSON(context.Background(), "/rubriques", nil, Data, &out))

	auth, reqID, _ := b.seen()
	assert.Equal(t, "Bearer A2", auth)
	assert.NotEmpty(t, reqID)
	assert.Equal(t, int32(0), b.refreshCalls.Load())
	require.Len(t, out, 1)
	assert.Equal(t, "Cyclones", out[0].Libelle)
}

func TestAPIClient_NoTokenSendsNoHeader(t *testing.T) {
	b := newFakeBackend(t, func(b *fakeBackend) { b.validAccess = "" })
	store := tokenstore.NewMemoryStore()
	_, api := newClients(b, store)

	var out []models.Rubrique
	err := api.GetJSON(context.Background(), "/rubriques", nil, Data, &out)
	require.NoError(t, err)
	auth, _, _ := b.seen()
	assert.Empty(t, auth)
}

func TestAPIClient_RenewsOnceAndReplays(t *testing.T) {
	b := newFakeBackend(t)
	store := newSession(t)
	_, api := newClients(b, store)

	in := models.RubriqueInput{Libelle: "Inondations", Description: "Zones à risque"}
	var out models.Rubrique
	err := api.SendJSON(context.Background(), http.MethodPost, "/rubriques", in, Field("rubrique"), &out)
	require.NoError(t, err)

	auth, _, body := b.seen()
	assert.Equal(t, int32(1), b.refreshCalls.Load())
	assert.Equal(t, "Bearer A2", auth)
	assert.JSONEq(t, `{"libelle":"Inondations","description":"Zones à risque"}`, body)
	assert.Equal(t, "Inondations", out.Libelle)

	at, _ := store.AccessToken(context.Background())
	rt, _ := store.RefreshToken(context.Background())
	uid, _ := store.UserID(context.Background())
	assert.Equal(t, "A2", at)
	assert.Equal(t, "R1", rt)
	assert.Equal(t, "U1", uid)
}

func TestTokenTransport_RetriedRequestIsNotRenewed(t *testing.T) {
	b := newFakeBackend(t)
	store := newSession(t)
	_, api := newClients(b, store)

	req, err := http.NewRequestWithContext(withRetried(context.Background()), http.MethodGet, b.srv.URL+"/rubriques", nil)
	require.NoError(t, err)

	resp, err := api.transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(0), b.refreshCalls.Load())

	at, _ := store.AccessToken(context.Background())
	assert.Equal(t, "A1", at)
}

func TestAPIClient_RenewalFailureEndsSession(t *testing.T) {
	b := newFakeBackend(t, func(b *fakeBackend) { b.refreshStatus = http.StatusUnauthorized })
	store := newSession(t)
	_, api := newClients(b, store)

	var fired atomic.Int32
	var cause error
	api.OnSessionExpired(func(_ context.Context, err error) {
		fired.Add(1)
		cause = err
	})

	var out []models.Rubrique
	err := api.GetJSON(context.Background(), "/rubriques", nil, Data, &out)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSessionExpired)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid refresh token", apiErr.Message)

	assert.Equal(t, int32(1), fired.Load())
	require.ErrorAs(t, cause, &apiErr)
	assert.False(t, tokenstore.IsAuthenticated(context.Background(), store))
	rt, _ := store.RefreshToken(context.Background())
	uid, _ := store.UserID(context.Background())
	assert.Empty(t, rt)
	assert.Empty(t, uid)
}

func TestAPIClient_MissingRefreshTokenEndsSession(t *testing.T) {
	b := newFakeBackend(t)
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.SetTokens(context.Background(), "A1", ""))
	_, api := newClients(b, store)

	var fired atomic.Int32
	api.OnSessionExpired(func(context.Context, error) { fired.Add(1) })

	err := api.GetJSON(context.Background(), "/rubriques", nil, Data, &[]models.Rubrique{})
	require.ErrorIs(t, err, ErrSessionExpired)
	require.ErrorIs(t, err, ErrNoRefreshToken)
	assert.Equal(t, int32(0), b.refreshCalls.Load())
	assert.Equal(t, int32(1), fired.Load())
	assert.False(t, tokenstore.IsAuthenticated(context.Background(), store))
}

func TestAPIClient_ConcurrentUnauthorizedShareOneRenewal(t *testing.T) {
	b := newFakeBackend(t)
	store := newSession(t)
	_, api := newClients(b, store)

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var out []models.Rubrique
			errs <- api.GetJSON(context.Background(), "/rubriques", nil, Data, &out)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), b.refreshCalls.Load())
}

func TestAPIClient_OtherErrorsPropagate(t *testing.T) {
	b := newFakeBackend(t)
	store := newSession(t)
	_, api := newClients(b, store)

	err := api.GetJSON(context.Background(), "/forbidden", nil, Data, &struct{}{})
	require.True(t, IsStatus(err, http.StatusForbidden))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Forbidden resource", apiErr.Message)

	err = api.Delete(context.Background(), "/broken")
	require.True(t, IsStatus(err, http.StatusInternalServerError))
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "a; b", apiErr.Message)

	assert.Equal(t, int32(0), b.refreshCalls.Load())
	assert.True(t, tokenstore.IsAuthenticated(context.Background(), store))
}

func TestAPIClient_NetworkErrorIsUnavailable(t *testing.T) {
	b := newFakeBackend(t)
	store := newSession(t)
	_, api := newClients(b, store)
	b.srv.Close()

	err := api.GetJSON(context.Background(), "/rubriques", nil, Data, &[]models.Rubrique{})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.True(t, tokenstore.IsAuthenticated(context.Background(), store))
}

func TestAPIClient_URL(t *testing.T) {
	api := NewAPIClient("http://localhost:3001/serviceterritoriale/", tokenstore.NewMemoryStore(), nil, nil)
	assert.Equal(t, "http://localhost:3001/serviceterritoriale/fichier/f1/telecharger", api.URL("/fichier/f1/telecharger"))
}
