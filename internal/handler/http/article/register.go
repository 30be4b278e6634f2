package article

import (
	"log/slog"
	"net/http"

	"article-inventory/internal/handler/http/auth"
	"article-inventory/internal/handler/http/validate"
	artUC "article-inventory/internal/usecase/article"
)

var (
	createSchema = validate.NewStructSchema[CreateArticleRequest](fieldMessages)
	updateSchema = validate.NewStructSchema[UpdateArticleRequest](fieldMessages)
)

// Register mounts the article routes on mux. Mutating routes pass the API key
// gate first, then the path parameter gate, then the body gate.
func Register(mux *http.ServeMux, svc artUC.Service, gate *auth.APIKeyGate, errs validate.ErrorHandler, logger *slog.Logger) {
	idGate := validate.Gate[int64](validate.IDSchema, validate.Params, errs, logger)
	queryGate := validate.Gate[validate.ListQuery](validate.ListQuerySchema, validate.Query, errs, logger)
	createGate := validate.Gate[CreateArticleRequest](createSchema, validate.Body, errs, logger)
	updateGate := validate.Gate[UpdateArticleRequest](updateSchema, validate.Body, errs, logger)

	mux.Handle("GET /api/articles", queryGate(ListHandler{Svc: svc, Errors: errs}))
	mux.Handle("GET /api/articles/{id}", idGate(GetHandler{Svc: svc, Errors: errs}))

	mux.Handle("POST /api/articles",
		gate.Middleware(createGate(CreateHandler{Svc: svc, Errors: errs})))
	mux.Handle("PATCH /api/articles/{id}",
		gate.Middleware(idGate(updateGate(UpdateHandler{Svc: svc, Errors: errs}))))
	mux.Handle("PATCH /api/articles/{id}/deactivate",
		gate.Middleware(idGate(DeactivateHandler{Svc: svc, Errors: errs})))
}
