package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/client"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
)

// UserService covers account administration and the own-profile update.
type UserService interface {
	List(ctx context.Context, page, limit int, search string) (*models.UsersPage, error)
	Validate(ctx context.Context, userID string) (*models.User, error)
	Reject(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, in models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, in ProfileInput) (*models.User, error)
}

// ProfileInput holds the own-profile changes. Empty fields are left as is.
type ProfileInput struct {
	Pseudo   string `validate:"omitempty,min=2"`
	Email    string `validate:"omitempty,email"`
	Password string `validate:"omitempty,min=6"`
	Avatar   *client.Avatar
}

type userService struct {
	api API
}

func NewUserService(api API) UserService {
	return &userService{api: api}
}

func (s *userService) List(ctx context.Context, page, limit int, search string) (*models.UsersPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	q := url.Values{
		"page":   {strconv.Itoa(page)},
		"limit":  {strconv.Itoa(limit)},
		"search": {search},
	}

	var out models.UsersPage
	if err := s.api.GetJSON(ctx, "/auth", q, client.Raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate accepts a pending account.
func (s *userService) Validate(ctx context.Context, userID string) (*models.User, error) {
	st := models.StatusActive
	return s.Update(ctx, userID, models.UserUpdate{Status: &st})
}

// Reject refuses a pending account.
func (s *userService) Reject(ctx context.Context, userID string) (*models.User, error) {
	st := models.StatusRejected
	return s.Update(ctx, userID, models.UserUpdate{Status: &st})
}

func (s *userService) Update(ctx context.Context, userID string, in models.UserUpdate) (*models.User, error) {
	var out models.User
	if err := s.api.SendJSON(ctx, http.MethodPatch, "/auth/"+id(userID), in, client.DataOrRaw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	return s.api.Delete(ctx, "/auth/"+id(userID))
}

// UpdateProfile changes the logged in user's own profile.
func (s *userService) UpdateProfile(ctx context.Context, in ProfileInput) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	form := client.NewForm().
		FieldIfSet("pseudo", in.Pseudo).
		FieldIfSet("email", in.Email).
		FieldIfSet("motDePasse", in.Password)
	if in.Avatar != nil {
		form.File("avatar", in.Avatar.FileName, in.Avatar.Data)
	}

	var out models.User
	if err := s.api.SendMultipart(ctx, http.MethodPatch, "/auth/profile", form, client.DataOrRaw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
