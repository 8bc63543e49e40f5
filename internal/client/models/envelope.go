package models

import "encoding/json"

// Envelope is the standard response body of the API: a human readable
// message, the payload and optional pagination metadata.
type Envelope[T any] struct {
	Message    json.RawMessage `json:"message,omitempty"`
	Data       T               `json:"data"`
	Meta       *Meta           `json:"meta,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
}

type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages,omitempty"`
}
