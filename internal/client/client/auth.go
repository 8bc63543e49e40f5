package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/tokenstore"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/common"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/logging"
)

// Option configures AuthClient and APIClient.
type Option func(*options)

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
}

func defaultOptions() options {
	return options{timeout: 30 * time.Second, transport: http.DefaultTransport}
}

// WithTimeout bounds every HTTP exchange, including a replayed request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// AuthClient calls the /auth endpoints and keeps the token store in sync
// with their answers.
type AuthClient struct {
	baseURL string
	http    *http.Client
	store   tokenstore.Store
	log     logging.Logger
}

func NewAuthClient(baseURL string, store tokenstore.Store, log logging.Logger, opts ...Option) *AuthClient {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &AuthClient{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/auth",
		http:    &http.Client{Transport: o.transport, Timeout: o.timeout},
		store:   store,
		log:     log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"motDePasse"`
}

type tokenPayload struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *models.User `json:"utilisateur"`
}

// Login exchanges credentials for a session and persists it.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	respBody, err := c.do(ctx, http.MethodPost, "/connexion", "", bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var p tokenPayload
	if err := Data(respBody, &p); err != nil || p.AccessToken == "" {
		return nil, &AuthError{Op: "login", Err: ErrInvalidResponse}
	}

	if err := c.persist(ctx, &p); err != nil {
		return nil, err
	}
	return &models.Session{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, User: p.User}, nil
}

func (c *AuthClient) persist(ctx context.Context, p *tokenPayload) error {
	if err := c.store.SetTokens(ctx, p.AccessToken, p.RefreshToken); err != nil {
		return err
	}
	if p.User != nil && p.User.ID != "" {
		if err := c.store.SetUserID(ctx, p.User.ID); err != nil {
			return err
		}
	}
	return nil
}

// Avatar is an optional profile picture.
type Avatar struct {
	FileName string
	Data     []byte
}

type RegisterRequest struct {
	Pseudo          string
	Email           string
	Password        string
	ConfirmPassword string
	Avatar          *Avatar
}

// RegisterResult holds the created account. Session is nil unless the
// server logged the new user in itself, which it normally does not.
type RegisterResult struct {
	User    *models.User
	Session *models.Session
}

// Register creates an account. It does not log in; see
// services.AuthService.Register for the register-then-login flow.
func (c *AuthClient) Register(ctx context.Context, r RegisterRequest) (*RegisterResult, error) {
	form := NewForm().
		Field("pseudo", r.Pseudo).
		Field("email", r.Email).
		Field("motDePasse", r.Password).
		FieldIfSet("confirmationMotDePasse", r.ConfirmPassword)
	if r.Avatar != nil {
		form.File("avatar", r.Avatar.FileName, r.Avatar.Data)
	}

	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}

	respBody, err := c.do(ctx, http.MethodPost, "", "", bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	var p tokenPayload
	if err := DataOrRaw(respBody, &p); err != nil {
		return nil, &AuthError{Op: "register", Err: ErrInvalidResponse}
	}

	if p.AccessToken != "" {
		if err := c.persist(ctx, &p); err != nil {
			return nil, err
		}
		return &RegisterResult{
			User:    p.User,
			Session: &models.Session{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, User: p.User},
		}, nil
	}

	var u models.User
	if err := DataOrRaw(respBody, &u); err != nil {
		return nil, &AuthError{Op: "register", Err: ErrInvalidResponse}
	}
	return &RegisterResult{User: &u}, nil
}

// CurrentUser fetches the profile of the stored session.
func (c *AuthClient) CurrentUser(ctx context.Context) (*models.User, error) {
	token, err := c.store.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, &AuthError{Op: "current user", Err: ErrUnauthenticated}
	}

	respBody, err := c.do(ctx, http.MethodGet, "/me", token, nil, "")
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	var u models.User
	if err := DataOrRaw(respBody, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RefreshToken obtains a new access token with the stored refresh token and
// user id. It persists the answer but never clears the store: deciding what
// a failure means is up to the caller.
func (c *AuthClient) RefreshToken(ctx context.Context) (string, error) {
	refresh, err := c.store.RefreshToken(ctx)
	if err != nil {
		return "", err
	}
	userID, err := c.store.UserID(ctx)
	if err != nil {
		return "", err
	}
	if refresh == "" || userID == "" {
		return "", &AuthError{Op: "refresh token", Err: ErrNoRefreshToken}
	}

	respBody, err := c.do(ctx, http.MethodPost, "/refresh-token/"+url.PathEscape(userID), refresh,
		strings.NewReader("{}"), "application/json")
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}

	var p tokenPayload
	if err := Data(respBody, &p); err != nil || p.AccessToken == "" {
		return "", &AuthError{Op: "refresh token", Err: ErrInvalidResponse}
	}

	if err := c.store.SetTokens(ctx, p.AccessToken, p.RefreshToken); err != nil {
		return "", err
	}
	return p.AccessToken, nil
}

func (c *AuthClient) do(ctx context.Context, method, path, bearer string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "auth request", "method", method, "path", "/auth"+path, "status", resp.StatusCode)

	if !isSuccess(resp.StatusCode) {
		return nil, newAPIError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return respBody, nil
}
