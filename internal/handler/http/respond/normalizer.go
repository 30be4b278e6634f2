package respond

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"article-inventory/internal/handler/http/clientip"
	"article-inventory/internal/handler/http/requestid"
)

const internalServerError = "Internal Server Error"

// ErrorBody is the response body written by ErrorNormalizer.
type ErrorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// PanicError carries a recovered panic value and the stack it was raised on.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorNormalizer is the last stop for every error a handler cannot answer
// itself. It logs the failure and writes {"message": ...} with the status
// carried by the error, or 500.
type ErrorNormalizer struct {
	Logger *slog.Logger
	// Production hides the stack trace from response bodies.
	Production bool
}

// Handle logs err and writes the normalized response.
func (n *ErrorNormalizer) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = errors.New(internalServerError)
	}

	stack := debug.Stack()
	var pe *PanicError
	if errors.As(err, &pe) && len(pe.Stack) > 0 {
		stack = pe.Stack
	}

	msg := SanitizeError(err)
	status := StatusOf(err)

	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Error("Unhandled API Error",
		slog.String("message", msg),
		slog.String("stack", string(stack)),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.String("ip", clientip.FromRequest(r)),
		slog.String("request_id", requestid.FromContext(r.Context())),
		slog.Int("status", status))

	if msg == "" {
		msg = internalServerError
	}
	body := ErrorBody{Message: msg}
	if !n.Production {
		body.Stack = string(stack)
	}
	JSON(w, status, body)
}
