// Package problem renders RFC 7807 problem details for the JSON API.
package problem

import (
	"encoding/json"
	"net/http"
)

const ContentType = "application/problem+json"

// Problem type URLs.
const (
	TypeValidation = "https://1031exchangefortworth.com/problems/validation-error"
	TypeNotFound   = "https://1031exchangefortworth.com/problems/not-found"
	TypeBadRequest = "https://1031exchangefortworth.com/problems/bad-request"
	TypeInternal   = "https://1031exchangefortworth.com/problems/internal-error"
)

// Details is the problem+json body.
type Details struct {
	Type     string              `json:"type,omitempty"`
	Title    string              `json:"title"`
	Status   int                 `json:"status"`
	Detail   string              `json:"detail,omitempty"`
	Instance string              `json:"instance,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

// New builds a Details value; fieldErrors is copied.
func New(status int, title, detail, problemType string, fieldErrors map[string][]string) Details {
	d := Details{
		Type:   problemType,
		Title:  title,
		Status: status,
		Detail: detail,
	}
	if len(fieldErrors) > 0 {
		d.Errors = make(map[string][]string, len(fieldErrors))
		for field, messages := range fieldErrors {
			d.Errors[field] = append([]string(nil), messages...)
		}
	}
	return d
}

// Write encodes d with the problem content type and d.Status.
func Write(w http.ResponseWriter, d Details) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(d.Status)
	_ = json.NewEncoder(w).Encode(d)
}

// WriteJSON encodes v as application/json with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
