// Package validate checks one part of a request against a schema before the
// handler runs.
//
// A Gate parses the body, path parameters or query string with a Schema. On
// success the coerced value is stored in the request context and read back
// with Value. Violations are answered with 400 and a list of errors.
// Anything else (malformed JSON, oversized body) goes to the ErrorHandler.
package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"article-inventory/internal/handler/http/clientip"
	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/observability/metrics"
)

// Target names the part of the request a schema applies to.
type Target string

const (
	Body   Target = "body"
	Params Target = "params"
	Query  Target = "query"
)

// FailedMessage is the top-level message of a 400 validation response.
const FailedMessage = "Validation failed"

// Violation codes.
const (
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodeInvalidType = "invalid_type"
	CodeCustom      = "custom"
)

// Violation is one failed rule. Path locates the offending field.
type Violation struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
}

// FailureBody is written for a request with violations.
type FailureBody struct {
	Message string      `json:"message"`
	Errors  []Violation `json:"errors"`
}

// Fragment is the raw input handed to a schema. Body is set for the Body
// target; Lookup reads a path parameter or query value otherwise.
type Fragment struct {
	Body   []byte
	Lookup func(name string) string
}

// Result is either a Value, a non-empty list of Violations, or an Err that
// is not the client's fault in a way the schema can describe.
type Result[T any] struct {
	Value      T
	Violations []Violation
	Err        error
}

// Valid wraps a successfully parsed value.
func Valid[T any](v T) Result[T] { return Result[T]{Value: v} }

// Invalid reports violations.
func Invalid[T any](vs ...Violation) Result[T] { return Result[T]{Violations: vs} }

// Failed reports an unexpected error.
func Failed[T any](err error) Result[T] { return Result[T]{Err: err} }

// Schema parses and validates a Fragment into a T.
type Schema[T any] interface {
	Parse(Fragment) Result[T]
}

// SchemaFunc adapts a function to Schema.
type SchemaFunc[T any] func(Fragment) Result[T]

func (f SchemaFunc[T]) Parse(in Fragment) Result[T] { return f(in) }

// ErrorHandler answers errors the gate cannot answer itself.
type ErrorHandler interface {
	Handle(w http.ResponseWriter, r *http.Request, err error)
}

type ctxKey struct{ target Target }

// Value returns the value stored by the Gate for target.
func Value[T any](r *http.Request, target Target) (T, bool) {
	v, ok := r.Context().Value(ctxKey{target}).(T)
	return v, ok
}

// WithValue stores v as the validated value for target. Gate uses it; tests
// use it to call handlers directly.
func WithValue[T any](ctx context.Context, target Target, v T) context.Context {
	return context.WithValue(ctx, ctxKey{target}, v)
}

// Gate returns middleware that validates target with schema.
func Gate[T any](schema Schema[T], target Target, errs ErrorHandler, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			frag, err := fragment(r, target)
			if err != nil {
				logger.Error("failed to read request for validation",
					slog.String("target", string(target)),
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
				errs.Handle(w, r, err)
				return
			}

			res := schema.Parse(frag)
			switch {
			case res.Err != nil:
				logger.Error("unexpected error during validation",
					slog.String("target", string(target)),
					slog.String("path", r.URL.Path),
					slog.Any("error", res.Err))
				errs.Handle(w, r, res.Err)

			case len(res.Violations) > 0:
				logger.Warn("validation failed",
					slog.String("target", string(target)),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.String("ip", clientip.FromRequest(r)),
					slog.Any("errors", res.Violations))
				metrics.RecordValidationRejection(string(target))
				respond.JSON(w, http.StatusBadRequest, FailureBody{
					Message: FailedMessage,
					Errors:  res.Violations,
				})

			default:
				next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), target, res.Value)))
			}
		})
	}
}

func fragment(r *http.Request, target Target) (Fragment, error) {
	switch target {
	case Body:
		if r.Body == nil {
			return Fragment{}, nil
		}
		b, err := io.ReadAll(r.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return Fragment{}, respond.NewHTTPError(http.StatusRequestEntityTooLarge,
					fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), err)
			}
			return Fragment{}, fmt.Errorf("read request body: %w", err)
		}
		return Fragment{Body: b}, nil
	case Params:
		return Fragment{Lookup: r.PathValue}, nil
	case Query:
		return Fragment{Lookup: r.URL.Query().Get}, nil
	default:
		return Fragment{}, fmt.Errorf("unknown validation target %q", target)
	}
}
