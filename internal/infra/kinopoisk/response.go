package infra_kinopoisk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/humanbelnik/kinoswap/searchqa/internal/model"
)

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// APIError is the error document of the API. Message is either a string or
// a list of strings depending on the failure.
type APIError struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
}

func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Page decodes the body as a paginated movie list.
func (r *Response) Page() (*model.MoviesPage, error) {
	var page model.MoviesPage
	if err := json.Unmarshal(r.Body, &page); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return &page, nil
}

// Fields decodes the top level of a JSON object body without interpreting
// the values.
func (r *Response) Fields() (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrMalformedBody)
	}
	return fields, nil
}

// HasList reports whether the top-level field exists and holds a JSON array.
func (r *Response) HasList(field string) bool {
	fields, err := r.Fields()
	if err != nil {
		return false
	}
	raw, ok := fields[field]
	if !ok {
		return false
	}
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func (r *Response) APIError() (*APIError, error) {
	var apiErr APIError
	if err := json.Unmarshal(r.Body, &apiErr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return &apiErr, nil
}

func (e *APIError) Messages() []string {
	var list []string
	if err := json.Unmarshal(e.Message, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(e.Message, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}
