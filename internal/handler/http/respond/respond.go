// Package respond writes JSON responses and turns errors into them.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// MessageBody is the {"message": ...} envelope used by every non-entity response.
type MessageBody struct {
	Message string `json:"message"`
}

// Message writes {"message": msg} with the given status code.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, MessageBody{Message: msg})
}

// HTTPError is an error that knows the status it should be answered with.
type HTTPError struct {
	Code    int
	Message string // shown to the client
	Err     error  // logged, never shown
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, msg string, err error) *HTTPError {
	return &HTTPError{Code: code, Message: msg, Err: err}
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by the error.
func (e *HTTPError) StatusCode() int {
	return e.Code
}

type statusCoder interface {
	StatusCode() int
}

// StatusOf returns the status of the first error in the chain that carries
// one, when it lies within 400..599. Anything else is 500.
func StatusOf(err error) int {
	var sc statusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code < 600 {
			return code
		}
	}
	return http.StatusInternalServerError
}
