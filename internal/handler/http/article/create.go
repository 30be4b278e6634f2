package article

import (
	"errors"
	"net/http"

	"article-inventory/internal/domain/entity"
	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/handler/http/validate"
	artUC "article-inventory/internal/usecase/article"
)

// errNoInput means a handler was reached without its validation gate.
var errNoInput = errors.New("validated input missing from request context")

type CreateHandler struct {
	Svc    artUC.Service
	Errors validate.ErrorHandler
}

// ServeHTTP creates an article
// @Summary      Create article
// @Description  Creates a new active article
// @Tags         articles
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        article body CreateArticleRequest true "Article"
// @Success      201 {object} DTO
// @Failure      400 {object} validate.FailureBody "Validation failed"
// @Failure      401 {object} respond.MessageBody "Missing or invalid API key"
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := validate.Value[CreateArticleRequest](r, validate.Body)
	if !ok {
		h.Errors.Handle(w, r, errNoInput)
		return
	}

	a, err := h.Svc.Create(r.Context(), entity.CreateArticle{
		Name:  *req.Name,
		Brand: *req.Brand,
	})
	if err != nil {
		h.Errors.Handle(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(a))
}
