package article

import (
	"net/http"

	"article-inventory/internal/handler/http/pathutil"
	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/handler/http/validate"
	artUC "article-inventory/internal/usecase/article"
)

const invalidIDMessage = "Invalid article ID."

type UpdateHandler struct {
	Svc    artUC.Service
	Errors validate.ErrorHandler
}

// ServeHTTP updates an article
// @Summary      Update article
// @Description  Applies the fields present in the body. An empty body returns the article unchanged. is_active true reactivates.
// @Tags         articles
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Article ID"
// @Param        article body UpdateArticleRequest true "Fields to change"
// @Success      200 {object} DTO
// @Failure      400 {object} validate.FailureBody "Validation failed"
// @Failure      401 {object} respond.MessageBody "Missing or invalid API key"
// @Failure      404 {object} respond.MessageBody "Article not found for update."
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id} [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, invalidIDMessage)
		return
	}
	req, ok := validate.Value[UpdateArticleRequest](r, validate.Body)
	if !ok {
		h.Errors.Handle(w, r, errNoInput)
		return
	}

	a, err := h.Svc.Update(r.Context(), id, req.toEntity())
	if err != nil {
		h.Errors.Handle(w, r, err)
		return
	}
	if a == nil {
		respond.Message(w, http.StatusNotFound, "Article not found for update.")
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a))
}

// articleID prefers the id stored by the params gate and falls back to
// parsing the path value.
func articleID(r *http.Request) (int64, bool) {
	if id, ok := validate.Value[int64](r, validate.Params); ok {
		return id, true
	}
	id, err := pathutil.ParseID(r.PathValue("id"))
	return id, err == nil
}
