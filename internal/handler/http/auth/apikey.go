// Package auth guards mutating routes with a single shared API key sent in
// the x-api-key header.
package auth

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"article-inventory/internal/handler/http/clientip"
	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/observability/metrics"
)

// HeaderAPIKey carries the client's key.
const HeaderAPIKey = "x-api-key"

// Response messages.
const (
	MissingKeyMessage = "Unauthorized: missing API key."
	InvalidKeyMessage = "Unauthorized: invalid API key."
)

// ErrMissingSecret is returned when no secret is configured.
var ErrMissingSecret = errors.New("auth: API_KEY_SECRET is not set")

// APIKeyGate rejects requests whose x-api-key does not equal the secret.
type APIKeyGate struct {
	secret []byte
	logger *slog.Logger
}

// NewAPIKeyGate returns ErrMissingSecret for an empty secret.
func NewAPIKeyGate(secret string, logger *slog.Logger) (*APIKeyGate, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &APIKeyGate{secret: []byte(secret), logger: logger}, nil
}

// Middleware answers 401 for a missing or wrong key and calls next otherwise.
func (g *APIKeyGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(HeaderAPIKey)

		if key == "" {
			g.reject(w, r, "missing", MissingKeyMessage)
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), g.secret) != 1 {
			g.reject(w, r, "invalid", InvalidKeyMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *APIKeyGate) reject(w http.ResponseWriter, r *http.Request, reason, msg string) {
	g.logger.Warn("unauthorized access attempt",
		slog.String("reason", reason),
		slog.String("path", r.URL.Path),
		slog.String("ip", clientip.FromRequest(r)))
	metrics.RecordAuthRejection(reason)
	respond.Message(w, http.StatusUnauthorized, msg)
}
