// Package http assembles the HTTP surface of the article inventory: the
// router, the middleware chain, and the operational endpoints.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"article-inventory/internal/handler/http/clientip"
	"article-inventory/internal/handler/http/requestid"
	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/handler/http/responsewriter"
)

// Logging logs one line per completed request with its status, size,
// duration, request id and trace id.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := responsewriter.Wrap(w)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			span := trace.SpanFromContext(r.Context())
			logger.Info("request completed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("trace_id", span.SpanContext().TraceID().String()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("query", r.URL.RawQuery),
				slog.String("ip", clientip.FromRequest(r)),
				slog.String("user_agent", r.Header.Get("User-Agent")),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", duration),
				slog.String("duration_ms", fmt.Sprintf("%.2f", duration.Seconds()*1000)),
			)
		})
	}
}

// Recover turns a panic into a normalized 500 response. If the handler had
// already started its response, the panic is only logged.
func Recover(errs *respond.ErrorNormalizer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := responsewriter.Wrap(w)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				pe := &respond.PanicError{Value: rec, Stack: debug.Stack()}
				if rw.Written() {
					logger.Error("panic after response started",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(pe.Stack)))
					return
				}
				errs.Handle(rw, r, pe)
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

// LimitRequestBody caps request bodies at maxBytes. Reading past the limit
// fails with *http.MaxBytesError, which the body validation gate answers
// with 413.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestDebug logs method, URL, matched route, path parameters and query at
// debug level. It must wrap the ServeMux directly: the mux records the
// matched pattern on the request it is given, and the log line is written
// after dispatch.
func RequestDebug(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			logger.Debug("request",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("route", r.Pattern),
				slog.Any("params", pathParams(r)),
				slog.Any("query", r.URL.Query()))
		})
	}
}

// pathParams reads every {name} wildcard of the matched pattern.
func pathParams(r *http.Request) map[string]string {
	params := map[string]string{}
	rest := r.Pattern
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return params
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return params
		}
		name := strings.TrimSuffix(rest[open+1:open+end], "...")
		if name != "$" {
			params[name] = r.PathValue(name)
		}
		rest = rest[open+end+1:]
	}
}
