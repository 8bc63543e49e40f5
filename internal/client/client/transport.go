package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/tokenstore"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/common"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Refresher renews the access token. *AuthClient implements it.
type Refresher interface {
	RefreshToken(ctx context.Context) (string, error)
}

// SessionExpiredFunc is called once per failed renewal, after the store has
// been cleared. err is the renewal failure.
type SessionExpiredFunc func(ctx context.Context, err error)

type retriedKey struct{}

func withRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

func isRetried(ctx context.Context) bool {
	v, _ := ctx.Value(retriedKey{}).(bool)
	return v
}

// tokenTransport attaches the stored access token to each request and
// recovers from a 401 by renewing the token once and replaying the request.
type tokenTransport struct {
	base      http.RoundTripper
	store     tokenstore.Store
	refresher Refresher
	log       logging.Logger

	group singleflight.Group

	mu        sync.RWMutex
	onExpired SessionExpiredFunc
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.store.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}

	resp, err := t.send(req, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || isRetried(ctx) {
		return resp, nil
	}

	// A body that cannot be replayed leaves the 401 to the caller.
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return resp, nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	fresh, err := t.renew(ctx, token)
	if err != nil {
		return nil, err
	}

	retry := req.Clone(withRetried(ctx))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay body: %w", err)
		}
		retry.Body = body
	}
	return t.send(retry, fresh)
}

func (t *tokenTransport) send(req *http.Request, token string) (*http.Response, error) {
	r := req.Clone(req.Context())
	if token != "" {
		r.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	} else {
		r.Header.Del(common.AuthorizationHeaderName)
	}

	reqID := r.Header.Get(common.RequestIDHeaderName)
	if reqID == "" {
		reqID = uuid.NewString()
		r.Header.Set(common.RequestIDHeaderName, reqID)
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		t.log.Warn(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "request_id", reqID, "error", err)
		return nil, err
	}

	t.log.Debug(r.Context(), "request sent",
		"method", r.Method, "path", r.URL.Path, "status", resp.StatusCode,
		"request_id", reqID, "retried", isRetried(r.Context()))
	return resp, nil
}

// renew returns a usable access token after a 401 obtained with stale.
// Concurrent callers share a single renewal. When another request already
// replaced stale, the current token is returned without renewing again.
func (t *tokenTransport) renew(ctx context.Context, stale string) (string, error) {
	ch := t.group.DoChan("refresh", func() (any, error) {
		// The renewal outlives any single caller's cancellation.
		rctx := context.WithoutCancel(ctx)

		current, err := t.store.AccessToken(rctx)
		if err == nil && current != "" && current != stale {
			return current, nil
		}

		fresh, err := t.refresher.RefreshToken(rctx)
		if err != nil {
			t.log.Warn(rctx, "token renewal failed", "error", err)
			t.expire(rctx, err)
			return "", err
		}
		t.log.Info(rctx, "access token renewed")
		return fresh, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", fmt.Errorf("%w: %w", ErrSessionExpired, res.Err)
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// expire clears the session and notifies the hook.
func (t *tokenTransport) expire(ctx context.Context, cause error) {
	if err := t.store.Clear(ctx); err != nil {
		t.log.Error(ctx, "failed to clear session", "error", err)
	}

	t.mu.RLock()
	hook := t.onExpired
	t.mu.RUnlock()

	if hook != nil {
		hook(ctx, cause)
	}
}

func (t *tokenTransport) setOnExpired(fn SessionExpiredFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExpired = fn
}
