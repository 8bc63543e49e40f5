package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/client"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// CatalogService manages rubriques and their types.
type CatalogService interface {
	ListRubriques(ctx context.Context) ([]models.Rubrique, error)
	SearchRubriques(ctx context.Context, query string) ([]models.Rubrique, error)
	GetRubrique(ctx context.Context, rubriqueID string) (*models.Rubrique, error)
	GetRubriqueWithDetails(ctx context.Context, rubriqueID string) (*models.Rubrique, error)
	CreateRubrique(ctx context.Context, in models.RubriqueInput) (*models.Rubrique, error)
	UpdateRubrique(ctx context.Context, rubriqueID string, in models.RubriqueInput) (*models.Rubrique, error)
	DeleteRubrique(ctx context.Context, rubriqueID string) error

	ListTypes(ctx context.Context, rubriqueID string) ([]models.TypeRubrique, error)
	CreateType(ctx context.Context, rubriqueID, nom string) (*models.TypeRubrique, error)
	UpdateType(ctx context.Context, typeID, nom string) (*models.TypeRubrique, error)
	DeleteType(ctx context.Context, typeID string) error
}

type catalogService struct {
	api   API
	files FileService
}

func NewCatalogService(api API, files FileService) CatalogService {
	return &catalogService{api: api, files: files}
}

func (s *catalogService) ListRubriques(ctx context.Context) ([]models.Rubrique, error) {
	var out []models.Rubrique
	q := url.Values{"limit": {listLimit}}
	if err := s.api.GetJSON(ctx, "/rubriques", q, client.Data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchRubriques lists rubriques whose libelle or description contains
// query, ignoring case. An empty query returns everything.
func (s *catalogService) SearchRubriques(ctx context.Context, query string) ([]models.Rubrique, error) {
	all, err := s.ListRubriques(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRubriques(all, query), nil
}

func FilterRubriques(rubriques []models.Rubrique, query string) []models.Rubrique {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rubriques
	}

	out := make([]models.Rubrique, 0, len(rubriques))
	for _, r := range rubriques {
		if strings.Contains(strings.ToLower(r.Libelle), q) || strings.Contains(strings.ToLower(r.Description), q) {
			out = append(out, r)
		}
	}
	return out
}

func (s *catalogService) GetRubrique(ctx context.Context, rubriqueID string) (*models.Rubrique, error) {
	var out models.Rubrique
	if err := s.api.GetJSON(ctx, "/rubriques/"+id(rubriqueID), nil, client.Field("rubrique"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRubriqueWithDetails returns the rubrique with its types and the files
// of each type. Files are fetched concurrently; the first failure wins.
func (s *catalogService) GetRubriqueWithDetails(ctx context.Context, rubriqueID string) (*models.Rubrique, error) {
	r, err := s.GetRubrique(ctx, rubriqueID)
	if err != nil {
		return nil, err
	}

	types, err := s.ListTypes(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range types {
		g.Go(func() error {
			files, err := s.files.List(gctx, types[i].ID)
			if err != nil {
				return err
			}
			types[i].Fichiers = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.TypeRubriques = types
	return r, nil
}

func (s *catalogService) CreateRubrique(ctx context.Context, in models.RubriqueInput) (*models.Rubrique, error) {
	var out models.Rubrique
	if err := s.api.SendJSON(ctx, http.MethodPost, "/rubriques", in, client.Field("rubrique"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *catalogService) UpdateRubrique(ctx context.Context, rubriqueID string, in models.RubriqueInput) (*models.Rubrique, error) {
	var out models.Rubrique
	if err := s.api.SendJSON(ctx, http.MethodPatch, "/rubriques/"+id(rubriqueID), in, client.Field("rubrique"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *catalogService) DeleteRubrique(ctx context.Context, rubriqueID string) error {
	return s.api.Delete(ctx, "/rubriques/"+id(rubriqueID))
}

func (s *catalogService) ListTypes(ctx context.Context, rubriqueID string) ([]models.TypeRubrique, error) {
	var out []models.TypeRubrique
	q := url.Values{"limit": {listLimit}}
	if err := s.api.GetJSON(ctx, "/type-rubrique/"+id(rubriqueID), q, client.Data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type typeInput struct {
	Nom        string `json:"nomTypeRubrique"`
	RubriqueID string `json:"idRubrique,omitempty"`
}

func (s *catalogService) CreateType(ctx context.Context, rubriqueID, nom string) (*models.TypeRubrique, error) {
	var out models.TypeRubrique
	in := typeInput{Nom: nom, RubriqueID: rubriqueID}
	if err := s.api.SendJSON(ctx, http.MethodPost, "/type-rubrique", in, client.Field("typeRubrique"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *catalogService) UpdateType(ctx context.Context, typeID, nom string) (*models.TypeRubrique, error) {
	var out models.TypeRubrique
	in := typeInput{Nom: nom}
	if err := s.api.SendJSON(ctx, http.MethodPatch, "/type-rubrique/"+id(typeID), in, client.Field("typeRubrique"), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *catalogService) DeleteType(ctx context.Context, typeID string) error {
	return s.api.Delete(ctx, "/type-rubrique/"+id(typeID))
}
