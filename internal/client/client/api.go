package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/tokenstore"
	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/logging"
)

// APIClient performs authenticated calls against the API.
type APIClient struct {
	baseURL   string
	http      *http.Client
	transport *tokenTransport
}

func NewAPIClient(baseURL string, store tokenstore.Store, refresher Refresher, log logging.Logger, opts ...Option) *APIClient {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	tt := &tokenTransport{base: o.transport, store: store, refresher: refresher, log: log}
	return &APIClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		http:      &http.Client{Transport: tt, Timeout: o.timeout},
		transport: tt,
	}
}

// OnSessionExpired registers the function run after a failed renewal has
// cleared the session.
func (c *APIClient) OnSessionExpired(fn SessionExpiredFunc) {
	c.transport.setOnExpired(fn)
}

// URL returns the absolute address of path.
func (c *APIClient) URL(path string) string {
	return c.baseURL + path
}

// GetJSON fetches path and unwraps the answer into out.
func (c *APIClient) GetJSON(ctx context.Context, path string, query url.Values, unwrap Unwrap, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return unwrap(body, out)
}

// SendJSON sends in as a JSON body. out may be nil when the answer is not
// needed.
func (c *APIClient) SendJSON(ctx context.Context, method, path string, in any, unwrap Unwrap, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	body, err := c.do(ctx, method, path, payload, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return unwrap(body, out)
}

// SendMultipart sends form as multipart/form-data.
func (c *APIClient) SendMultipart(ctx context.Context, method, path string, form *Form, unwrap Unwrap, out any) error {
	payload, contentType, err := form.encode()
	if err != nil {
		return err
	}

	body, err := c.do(ctx, method, path, payload, contentType)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return unwrap(body, out)
}

func (c *APIClient) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, "")
	return err
}

// Download is file content fetched from the API.
type Download struct {
	Data        []byte
	ContentType string
	FileName    string
}

// GetBinary fetches file content. An error disguised as a JSON body is
// reported as such; an embedded 401 ends the session.
func (c *APIClient) GetBinary(ctx context.Context, path string) (*Download, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, newAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	verdict, apiErr := classifyBinary(contentType, data)
	switch verdict {
	case binaryExpired:
		c.transport.expire(ctx, ErrSessionExpired)
		return nil, ErrSessionExpired
	case binaryFailed:
		return nil, apiErr
	}

	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = mimetype.Detect(data).String()
	}
	return &Download{Data: data, ContentType: contentType, FileName: fileNameOf(resp.Header)}, nil
}

func fileNameOf(h http.Header) string {
	cd := h.Get("Content-Disposition")
	if cd == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(cd)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func (c *APIClient) send(ctx context.Context, method, path string, payload []byte, contentType string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	return resp, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, payload []byte, contentType string) ([]byte, error) {
	resp, err := c.send(ctx, method, path, payload, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, newAPIError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
