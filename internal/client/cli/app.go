package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/client"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/config"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/services"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/tokenstore"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/logging"
)

// Services groups what the App drives.
type Services struct {
	Auth    services.AuthService
	Catalog services.CatalogService
	Files   services.FileService
	Users   services.UserService
}

type App struct {
	config *config.Config
	svc    Services
	tokens tokenstore.Store
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer
	notify *notifier

	mu   sync.RWMutex
	user *models.User
}

func NewApp(cfg *config.Config, svc Services, tokens tokenstore.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		config: cfg,
		svc:    svc,
		tokens: tokens,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
		notify: newNotifier(out),
	}
}

// Run restores the stored session, if any, and blocks in the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "BNGRC service territoriale (type 'help' for commands)")

	a.restore(ctx)

	runREPL(ctx, &shell{
		commands: a.commands(),
		level:    a.access,
		status:   a.status,
		report:   a.report,
		in:       a.reader,
		out:      a.out,
	})
}

func (a *App) restore(ctx context.Context) {
	u, err := a.svc.Auth.Restore(ctx)
	if err != nil {
		a.notify.Error("Stored session is no longer valid, please log in again")
		return
	}
	if u != nil {
		a.setUser(u)
		a.notify.Info("Welcome back, %s", u.Pseudo)
	}
}

// SessionExpired is registered with client.APIClient.OnSessionExpired. The
// store is already cleared when it runs.
func (a *App) SessionExpired(ctx context.Context, err error) {
	a.setUser(nil)
	a.log.Info(ctx, "session expired", "error", err)
	a.notify.Error("Your session has expired, please log in again")
}

func (a *App) currentUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
}

func (a *App) access() access {
	u := a.currentUser()
	switch {
	case u == nil:
		return accessGuest
	case u.IsAdmin():
		return accessAdmin
	default:
		return accessMember
	}
}

func (a *App) status() string {
	u := a.currentUser()
	if u == nil {
		return ""
	}
	if u.IsAdmin() {
		return fmt.Sprintf("(%s admin)", u.Pseudo)
	}
	return fmt.Sprintf("(%s)", u.Pseudo)
}

// report prints a command failure. A session expiry was already announced
// by SessionExpired.
func (a *App) report(err error) {
	if errors.Is(err, client.ErrSessionExpired) {
		return
	}
	a.notify.Error("%s", describe(err))
}

func describe(err error) string {
	var (
		verr   *services.ValidationError
		apiErr *client.APIError
	)
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return apiErr.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	default:
		return err.Error()
	}
}

func (a *App) commands() []command {
	return []command{
		{name: "login", help: "log in", level: accessGuest, run: a.Login},
		{name: "register", help: "create an account", level: accessGuest, run: a.Register},

		{name: "whoami", help: "show the current account", level: accessMember, run: a.WhoAmI},
		{name: "profile", help: "edit your profile", level: accessMember, run: a.Profile},
		{name: "logout", help: "log out", level: accessMember, run: a.Logout},
		{name: "rubriques", usage: "[search]", help: "list rubriques", level: accessMember, run: a.Rubriques},
		{name: "show", usage: "<rubrique>", help: "show a rubrique with its types and files", level: accessMember, minArgs: 1, run: a.Show},
		{name: "files", usage: "<type>", help: "list the files of a type", level: accessMember, minArgs: 1, run: a.Files},
		{name: "file", usage: "<file>", help: "show file details", level: accessMember, minArgs: 1, run: a.File},
		{name: "download", usage: "<file> [dir]", help: "save a file locally", level: accessMember, minArgs: 1, run: a.Download},

		{name: "rubrique-add", help: "create a rubrique", level: accessAdmin, run: a.AddRubrique},
		{name: "rubrique-edit", usage: "<rubrique>", help: "edit a rubrique", level: accessAdmin, minArgs: 1, run: a.EditRubrique},
		{name: "rubrique-del", usage: "<rubrique>", help: "delete a rubrique", level: accessAdmin, minArgs: 1, run: a.DeleteRubrique},
		{name: "type-add", usage: "<rubrique>", help: "add a type to a rubrique", level: accessAdmin, minArgs: 1, run: a.AddType},
		{name: "type-edit", usage: "<rubrique> <type>", help: "rename a type", level: accessAdmin, minArgs: 2, run: a.EditType},
		{name: "type-del", usage: "<rubrique> <type>", help: "delete a type", level: accessAdmin, minArgs: 2, run: a.DeleteType},
		{name: "upload", usage: "<type> <path>", help: "upload a file to a type", level: accessAdmin, minArgs: 2, run: a.Upload},
		{name: "file-del", usage: "<type> <file>", help: "delete a file", level: accessAdmin, minArgs: 2, run: a.DeleteFile},
		{name: "users", usage: "[page] [search]", help: "list accounts", level: accessAdmin, run: a.Users},
		{name: "user-validate", usage: "<user>", help: "accept a pending account", level: accessAdmin, minArgs: 1, run: a.ValidateUser},
		{name: "user-reject", usage: "<user>", help: "reject a pending account", level: accessAdmin, minArgs: 1, run: a.RejectUser},
		{name: "user-role", usage: "<user> <ADMIN|CLIENT>", help: "change an account role", level: accessAdmin, minArgs: 2, run: a.SetUserRole},
		{name: "user-del", usage: "<user>", help: "delete an account", level: accessAdmin, minArgs: 1, run: a.DeleteUser},
	}
}
