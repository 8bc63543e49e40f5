package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/client/models"
)

// maxErrorBody bounds how much of an error answer is read.
const maxErrorBody = 1 << 20

// Unwrap extracts the payload of a response body into v.
type Unwrap func(body []byte, v any) error

// Raw decodes the whole body.
func Raw(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// Field decodes the value stored under key, failing when it is missing.
func Field(key string) Unwrap {
	return func(body []byte, v any) error {
		raw, ok, err := lookup(body, key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidResponse, key)
		}
		return Raw(raw, v)
	}
}

// DataOrRaw decodes the "data" member when present and the whole body
// otherwise. Some endpoints answer with an envelope, others with the bare
// resource.
func DataOrRaw(body []byte, v any) error {
	raw, ok, err := lookup(body, "data")
	if err != nil {
		return err
	}
	if ok {
		return Raw(raw, v)
	}
	return Raw(body, v)
}

// Data decodes the "data" member of the standard envelope, failing when the
// body is not an envelope or carries no data.
func Data(body []byte, v any) error {
	var env models.Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return fmt.Errorf("%w: missing %q", ErrInvalidResponse, "data")
	}
	return Raw(env.Data, v)
}

func lookup(body []byte, key string) (json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	raw, ok := obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false, nil
	}
	return raw, true, nil
}

// errorBody is the error shape emitted by the API. message is a string or,
// for validation failures, a list of strings.
type errorBody struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
}

func (b errorBody) text() string {
	if msg := messageText(b.Message); msg != "" {
		return msg
	}
	return b.Error
}

func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

func parseErrorBody(body []byte) errorBody {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	return eb
}

// newAPIError consumes resp.Body.
func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{Status: resp.StatusCode, Message: parseErrorBody(body).text()}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
