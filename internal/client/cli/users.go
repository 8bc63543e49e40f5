package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
)

const usersPageSize = 10

// Users lists accounts: users [page] [search...].
func (a *App) Users(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			page = n
			args = args[1:]
		}
	}

	p, err := a.svc.Users.List(ctx, page, usersPageSize, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printUsers(a.out, p)
	return nil
}

func (a *App) ValidateUser(ctx context.Context, args []string) error {
	if _, err := a.svc.Users.Validate(ctx, args[0]); err != nil {
		return err
	}
	a.notify.Success("Account %s accepted", args[0])
	return a.Users(ctx, nil)
}

func (a *App) RejectUser(ctx context.Context, args []string) error {
	if _, err := a.svc.Users.Reject(ctx, args[0]); err != nil {
		return err
	}
	a.notify.Success("Account %s rejected", args[0])
	return a.Users(ctx, nil)
}

func (a *App) SetUserRole(ctx context.Context, args []string) error {
	role := models.Role(strings.ToUpper(args[1]))
	if role != models.RoleAdmin && role != models.RoleClient {
		return fmt.Errorf("unknown role %q", args[1])
	}

	if _, err := a.svc.Users.Update(ctx, args[0], models.UserUpdate{Role: &role}); err != nil {
		return err
	}
	a.notify.Success("Account %s is now %s", args[0], role)
	return a.Users(ctx, nil)
}

func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if cur := a.currentUser(); cur != nil && cur.ID == args[0] {
		return errors.New("you cannot delete your own account")
	}
	if !confirm(a.reader, fmt.Sprintf("Delete account %s?", args[0]), a.out) {
		a.notify.Info("Cancelled")
		return nil
	}
	if err := a.svc.Users.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.notify.Success("Account deleted")
	return a.Users(ctx, nil)
}
