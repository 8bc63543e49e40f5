package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/services"
)

// Rubriques lists rubriques, filtered when a search term is given.
func (a *App) Rubriques(ctx context.Context, args []string) error {
	list, err := a.svc.Catalog.SearchRubriques(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printRubriques(a.out, list)
	return nil
}

// Show prints a rubrique with its types and their files.
func (a *App) Show(ctx context.Context, args []string) error {
	r, err := a.svc.Catalog.GetRubriqueWithDetails(ctx, args[0])
	if err != nil {
		return err
	}
	printRubriqueTree(a.out, r)
	return nil
}

func (a *App) Files(ctx context.Context, args []string) error {
	files, err := a.svc.Files.List(ctx, args[0])
	if err != nil {
		return err
	}
	printFiles(a.out, files, "")
	return nil
}

// File prints the details of a file, its preview kind and download address.
func (a *App) File(ctx context.Context, args []string) error {
	f, err := a.svc.Files.Details(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Name:     %s\nType:     %s\nKind:     %s\nSize:     %s\n",
		f.Nom, f.Type, services.KindOf(f.Nom), formatSize(f.Taille))
	if !f.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Created:  %s\n", f.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(a.out, "Download: %s\n", a.svc.Files.DownloadURL(f.ID))
	return nil
}

// Download saves a file into the configured directory or the one given.
func (a *App) Download(ctx context.Context, args []string) error {
	dir := a.config.DownloadDir
	if len(args) > 1 {
		dir = args[1]
	}

	path, err := a.svc.Files.Save(ctx, args[0], dir)
	if err != nil {
		return err
	}
	a.notify.Success("Saved to %s", path)
	return nil
}

func (a *App) askRubrique(cur *models.Rubrique) (models.RubriqueInput, error) {
	libellePrompt, descPrompt := "Libelle", "Description"
	if cur != nil {
		libellePrompt = fmt.Sprintf("Libelle [%s] (empty to keep)", cur.Libelle)
		descPrompt = "Description (empty to keep)"
	}

	libelle, err := GetSimpleText(a.reader, libellePrompt, a.out)
	if err != nil {
		return models.RubriqueInput{}, err
	}
	desc, err := GetMultiline(a.reader, descPrompt, a.out)
	if err != nil {
		return models.RubriqueInput{}, err
	}
	return models.RubriqueInput{Libelle: libelle, Description: desc}, nil
}

func (a *App) AddRubrique(ctx context.Context, _ []string) error {
	in, err := a.askRubrique(nil)
	if err != nil {
		return err
	}
	if in.Libelle == "" {
		return errors.New("libelle is required")
	}

	r, err := a.svc.Catalog.CreateRubrique(ctx, in)
	if err != nil {
		return err
	}
	a.notify.Success("Rubrique %q created", r.Libelle)
	return a.Rubriques(ctx, nil)
}

func (a *App) EditRubrique(ctx context.Context, args []string) error {
	cur, err := a.svc.Catalog.GetRubrique(ctx, args[0])
	if err != nil {
		return err
	}

	in, err := a.askRubrique(cur)
	if err != nil {
		return err
	}
	if in == (models.RubriqueInput{}) {
		a.notify.Info("Nothing to change")
		return nil
	}

	if _, err := a.svc.Catalog.UpdateRubrique(ctx, cur.ID, in); err != nil {
		return err
	}
	a.notify.Success("Rubrique updated")
	return a.Rubriques(ctx, nil)
}

func (a *App) DeleteRubrique(ctx context.Context, args []string) error {
	if !confirm(a.reader, fmt.Sprintf("Delete rubrique %s with all its types and files?", args[0]), a.out) {
		a.notify.Info("Cancelled")
		return nil
	}
	if err := a.svc.Catalog.DeleteRubrique(ctx, args[0]); err != nil {
		return err
	}
	a.notify.Success("Rubrique deleted")
	return a.Rubriques(ctx, nil)
}

func (a *App) AddType(ctx context.Context, args []string) error {
	nom, err := GetSimpleText(a.reader, "Type name", a.out)
	if err != nil {
		return err
	}
	if nom == "" {
		return errors.New("type name is required")
	}

	t, err := a.svc.Catalog.CreateType(ctx, args[0], nom)
	if err != nil {
		return err
	}
	a.notify.Success("Type %q created", t.Nom)
	return a.Show(ctx, args[:1])
}

func (a *App) EditType(ctx context.Context, args []string) error {
	nom, err := GetSimpleText(a.reader, "New type name", a.out)
	if err != nil {
		return err
	}
	if nom == "" {
		a.notify.Info("Nothing to change")
		return nil
	}

	if _, err := a.svc.Catalog.UpdateType(ctx, args[1], nom); err != nil {
		return err
	}
	a.notify.Success("Type renamed")
	return a.Show(ctx, args[:1])
}

func (a *App) DeleteType(ctx context.Context, args []string) error {
	if !confirm(a.reader, fmt.Sprintf("Delete type %s and its files?", args[1]), a.out) {
		a.notify.Info("Cancelled")
		return nil
	}
	if err := a.svc.Catalog.DeleteType(ctx, args[1]); err != nil {
		return err
	}
	a.notify.Success("Type deleted")
	return a.Show(ctx, args[:1])
}

func (a *App) Upload(ctx context.Context, args []string) error {
	f, err := a.svc.Files.Upload(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	a.notify.Success("Uploaded %s", f.Nom)
	return a.Files(ctx, args[:1])
}

func (a *App) DeleteFile(ctx context.Context, args []string) error {
	if !confirm(a.reader, fmt.Sprintf("Delete file %s?", args[1]), a.out) {
		a.notify.Info("Cancelled")
		return nil
	}
	if err := a.svc.Files.Delete(ctx, args[1]); err != nil {
		return err
	}
	a.notify.Success("File deleted")
	return a.Files(ctx, args[:1])
}
