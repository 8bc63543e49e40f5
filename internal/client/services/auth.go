package services

import (
	"context"
	"fmt"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/client"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/tokenstore"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/logging"
)

// Authenticator is the part of client.AuthClient the service needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, r client.RegisterRequest) (*client.RegisterResult, error)
	CurrentUser(ctx context.Context) (*models.User, error)
}

// AuthService manages the user session.
//
// Register is two explicit steps: CreateAccount, then Login with the same
// credentials when the server did not open a session itself.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	CreateAccount(ctx context.Context, in RegisterInput) (*client.RegisterResult, error)
	Register(ctx context.Context, in RegisterInput) (*models.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	Restore(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) bool
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type RegisterInput struct {
	Pseudo          string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
	Avatar          *client.Avatar
}

type authService struct {
	auth  Authenticator
	store tokenstore.Store
	log   logging.Logger
}

func NewAuthService(auth Authenticator, store tokenstore.Store, log logging.Logger) AuthService {
	return &authService{auth: auth, store: store, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := validateStruct(loginInput{Email: email, Password: password}); err != nil {
		return nil, err
	}
	return s.auth.Login(ctx, email, password)
}

// CreateAccount registers the user without logging in.
func (s *authService) CreateAccount(ctx context.Context, in RegisterInput) (*client.RegisterResult, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	return s.auth.Register(ctx, client.RegisterRequest{
		Pseudo:          in.Pseudo,
		Email:           in.Email,
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
		Avatar:          in.Avatar,
	})
}

// Register creates the account and opens a session for it.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.Session, error) {
	res, err := s.CreateAccount(ctx, in)
	if err != nil {
		return nil, err
	}
	if res.Session != nil {
		return res.Session, nil
	}

	s.log.Debug(ctx, "account created without session, logging in")

	sess, err := s.auth.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, fmt.Errorf("account created but login failed: %w", err)
	}
	return sess, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.auth.CurrentUser(ctx)
}

// Restore resumes a stored session at start-up. It returns nil, nil when
// nothing is stored. A session the server refuses is cleared.
func (s *authService) Restore(ctx context.Context) (*models.User, error) {
	if !tokenstore.IsAuthenticated(ctx, s.store) {
		return nil, nil
	}

	u, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.log.Warn(ctx, "stored session rejected", "error", err)
		if cerr := s.store.Clear(ctx); cerr != nil {
			return nil, fmt.Errorf("clear session: %w", cerr)
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) IsAuthenticated(ctx context.Context) bool {
	return tokenstore.IsAuthenticated(ctx, s.store)
}
