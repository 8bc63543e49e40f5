package client

import (
	"mime"
	"net/http"
	"strings"
)

type binaryVerdict int

const (
	binaryContent binaryVerdict = iota
	binaryExpired
	binaryFailed
)

// classifyBinary decides what a file download really returned. The server
// sometimes reports an error with a JSON body where file bytes were
// expected; an embedded statusCode of 401 means the session is gone.
//
// A JSON body without an error status is treated as file content.
func classifyBinary(contentType string, body []byte) (binaryVerdict, *APIError) {
	if !isJSONMediaType(contentType) {
		return binaryContent, nil
	}

	eb := parseErrorBody(body)
	switch {
	case eb.StatusCode == http.StatusUnauthorized:
		return binaryExpired, nil
	case eb.StatusCode >= 400:
		return binaryFailed, &APIError{Status: eb.StatusCode, Message: eb.text()}
	}
	return binaryContent, nil
}

func isJSONMediaType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
