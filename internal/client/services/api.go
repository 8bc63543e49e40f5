package services

import (
	"context"
	"net/url"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/client"
)

// API is the part of client.APIClient the domain services use.
type API interface {
	GetJSON(ctx context.Context, path string, query url.Values, unwrap client.Unwrap, out any) error
	SendJSON(ctx context.Context, method, path string, in any, unwrap client.Unwrap, out any) error
	SendMultipart(ctx context.Context, method, path string, form *client.Form, unwrap client.Unwrap, out any) error
	Delete(ctx context.Context, path string) error
	GetBinary(ctx context.Context, path string) (*client.Download, error)
	URL(path string) string
}

// listLimit is the page size asked for catalog listings; the portal shows
// everything on one page.
const listLimit = "100"

func id(s string) string {
	return url.PathEscape(s)
}
