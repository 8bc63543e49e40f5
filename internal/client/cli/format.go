package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/services"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printRubriques(w io.Writer, rubriques []models.Rubrique) {
	if len(rubriques) == 0 {
		fmt.Fprintln(w, "No rubrique found")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tLIBELLE\tDESCRIPTION")
	for _, r := range rubriques {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.Libelle, truncate(r.Description, 60))
	}
	_ = tw.Flush()
}

func printFiles(w io.Writer, files []models.Fichier, indent string) {
	if len(files) == 0 {
		fmt.Fprintln(w, indent+"(no file)")
		return
	}
	tw := newTable(w)
	for _, f := range files {
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\n", indent, f.ID, f.Nom, services.KindOf(f.Nom), formatSize(f.Taille))
	}
	_ = tw.Flush()
}

func printRubriqueTree(w io.Writer, r *models.Rubrique) {
	fmt.Fprintf(w, "%s  [%s]\n", r.Libelle, r.ID)
	if r.Description != "" {
		fmt.Fprintln(w, r.Description)
	}
	if len(r.TypeRubriques) == 0 {
		fmt.Fprintln(w, "  (no type)")
		return
	}
	for _, t := range r.TypeRubriques {
		fmt.Fprintf(w, "  %s  [%s]\n", t.Nom, t.ID)
		printFiles(w, t.Fichiers, "    ")
	}
}

func printUsers(w io.Writer, page *models.UsersPage) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPSEUDO\tEMAIL\tROLE\tSTATUS")
	for _, u := range page.Data {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Pseudo, u.Email, u.Role, u.Status)
	}
	_ = tw.Flush()

	pages := 1
	if page.Limit > 0 {
		pages = (page.Total + page.Limit - 1) / page.Limit
	}
	fmt.Fprintf(w, "page %d/%d, %d account(s)\n", page.Page, max(pages, 1), page.Total)
}

func formatSize(n int64) string {
	const mb = 1024 * 1024
	switch {
	case n <= 0:
		return "-"
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < mb:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/mb)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
