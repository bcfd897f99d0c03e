// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the JSON request/response helpers shared by all
// feature handlers, including the mapping from apperr kinds to HTTP status
// codes.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/standin/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies. Nothing in this API legitimately
// approaches this.
const maxBodyBytes = 1 << 20

// errorBody is the wire shape for all failures.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error's kind to its HTTP status code.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps err to a status and writes the standard error body.
// Internal failures are logged with their cause; the caller only sees a
// generic message.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.Error(err))
	}
	Write(w, status, errorBody{
		Error:   string(apperr.KindOf(err)),
		Message: apperr.MessageOf(err),
	})
}

// WriteUnauthorized writes the 401 body used by the token middleware.
func WriteUnauthorized(w http.ResponseWriter, msg string) {
	Write(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: msg})
}

// WriteTooManyRequests writes the 429 body used by the login limiter.
func WriteTooManyRequests(w http.ResponseWriter, msg string) {
	Write(w, http.StatusTooManyRequests, errorBody{Error: "rate_limited", Message: msg})
}

// Decode reads a JSON body into dst, returning a Validation error on
// malformed or oversized input.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("malformed JSON body")
	}
	// Trailing garbage after the object is also malformed.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.Validation("malformed JSON body")
	}
	return nil
}
