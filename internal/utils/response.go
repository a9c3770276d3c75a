package utils

import (
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ContentTypeJSON    = "application/json"
	ContentTypeProblem = "application/problem+json"
)

// RespondWithJSON for successful cases
func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, ContentTypeJSON, payload)
}

// RespondWithProblem writes an error body with the problem content type.
func RespondWithProblem(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, ContentTypeProblem, payload)
}

func writeJSON(w http.ResponseWriter, status int, contentType string, payload any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		Logger.WithError(err).WithField("status", status).Error("Failed to encode JSON response")
	}
}

// DecodeJSON reads a single JSON document from the request body into dst.
// Any failure is returned as a BadRequest fault.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return NewBadRequest("Request body is required.")
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return NewBadRequest("Request body is required.")
	default:
		return &Fault{Kind: FaultBadRequest, Message: "Request body is not valid JSON.", Err: err}
	}
}

// DecodeBytes unmarshals a JSON document with the same codec used for responses.
func DecodeBytes(b []byte, dst any) error {
	return json.Unmarshal(b, dst)
}
