package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/client"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/services"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/common"
)

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.svc.Auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	return a.startSession(ctx, sess)
}

// startSession records the user of a fresh session, fetching it when the
// login answer did not include it.
func (a *App) startSession(ctx context.Context, sess *models.Session) error {
	u := sess.User
	if u == nil || u.Role == "" {
		var err error
		if u, err = a.svc.Auth.CurrentUser(ctx); err != nil {
			return err
		}
	}

	a.setUser(u)
	a.notify.Success("Logged in as %s", displayName(u))
	return nil
}

// Register creates an account, then logs into it.
func (a *App) Register(ctx context.Context, _ []string) error {
	pseudo, err := GetSimpleText(a.reader, "Pseudo", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Password (min 6 characters)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	avatar, err := a.askAvatar()
	if err != nil {
		return err
	}

	sess, err := a.svc.Auth.Register(ctx, services.RegisterInput{
		Pseudo:          pseudo,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirmation),
		Avatar:          avatar,
	})
	if err != nil {
		return err
	}

	a.notify.Success("Account created")
	return a.startSession(ctx, sess)
}

// askAvatar reads an optional avatar path; an empty answer means none.
func (a *App) askAvatar() (*client.Avatar, error) {
	path, err := GetSimpleText(a.reader, "Avatar image path (empty for none)", a.out)
	if err != nil || path == "" {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}
	return &client.Avatar{FileName: filepath.Base(path), Data: data}, nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.svc.Auth.Logout(ctx); err != nil {
		return err
	}
	a.setUser(nil)
	a.notify.Info("Logged out")
	return nil
}

// WhoAmI prints the account of the session and when its access token
// expires. The expiry is read from the token without verifying it.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, err := a.svc.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.setUser(u)

	fmt.Fprintf(a.out, "Pseudo:  %s\nEmail:   %s\nRole:    %s\nStatus:  %s\n", u.Pseudo, u.Email, u.Role, u.Status)

	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}
	if exp, ok := tokenExpiry(token); ok {
		fmt.Fprintf(a.out, "Token:   expires %s\n", exp.Local().Format(time.DateTime))
	}
	return nil
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Profile edits the own profile. Empty answers keep the current value.
func (a *App) Profile(ctx context.Context, _ []string) error {
	pseudo, err := GetSimpleText(a.reader, "New pseudo (empty to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "New email (empty to keep)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("New password (empty to keep)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	avatar, err := a.askAvatar()
	if err != nil {
		return err
	}

	u, err := a.svc.Users.UpdateProfile(ctx, services.ProfileInput{
		Pseudo:   pseudo,
		Email:    email,
		Password: string(password),
		Avatar:   avatar,
	})
	if err != nil {
		return err
	}

	// The profile endpoint may answer with a partial user; keep the role.
	if cur := a.currentUser(); cur != nil && u.Role == "" {
		u.Role = cur.Role
	}
	a.setUser(u)
	a.notify.Success("Profile updated")
	return nil
}

func displayName(u *models.User) string {
	if u.Pseudo != "" {
		return u.Pseudo
	}
	return u.Email
}
