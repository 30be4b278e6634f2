package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"article-inventory/internal/handler/http/article"
	"article-inventory/internal/handler/http/auth"
	"article-inventory/internal/handler/http/requestid"
	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/observability/tracing"
	artUC "article-inventory/internal/usecase/article"

	_ "article-inventory/docs" // registers the OpenAPI document with swag
)

// DocsPath is where the Swagger UI is mounted.
const DocsPath = "/api-docs/"

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Articles     artUC.Service
	APIKey       *auth.APIKeyGate
	Pool         PoolChecker
	Errors       *respond.ErrorNormalizer
	Limiter      *RateLimiter
	CORS         CORSConfig
	MaxBodyBytes int64
	// Debug enables RequestDebug logging.
	Debug   bool
	Version string
	Logger  *slog.Logger
}

// NewRouter builds the route table and wraps it in the middleware chain:
// CORS, request id, tracing, rate limit, logging, panic recovery, body limit
// and metrics, outermost first.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errs := cfg.Errors
	if errs == nil {
		errs = &respond.ErrorNormalizer{Logger: logger}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", RootHandler)
	mux.Handle("GET /health", &HealthHandler{Version: cfg.Version})
	mux.Handle("GET /ready", &ReadyHandler{Pool: cfg.Pool, Version: cfg.Version})
	mux.Handle("GET /metrics", MetricsHandler())
	mux.Handle("GET "+DocsPath, httpSwagger.Handler(httpSwagger.URL(DocsPath+"doc.json")))
	article.Register(mux, cfg.Articles, cfg.APIKey, errs, logger)

	var h http.Handler = mux
	if cfg.Debug {
		h = RequestDebug(logger)(h)
	}
	h = Metrics(h)
	if cfg.MaxBodyBytes > 0 {
		h = LimitRequestBody(cfg.MaxBodyBytes)(h)
	}
	h = Recover(errs, logger)(h)
	h = Logging(logger)(h)
	if cfg.Limiter != nil {
		h = cfg.Limiter.Limit(h)
	}
	h = tracing.Middleware(h)
	h = requestid.Middleware(h)
	h = CORS(cfg.CORS)(h)
	return h
}
