package article

import (
	"net/http"

	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/handler/http/validate"
	artUC "article-inventory/internal/usecase/article"
)

type DeactivateHandler struct {
	Svc    artUC.Service
	Errors validate.ErrorHandler
}

// ServeHTTP deactivates an article
// @Summary      Deactivate article
// @Description  Marks the article inactive. Records are never deleted.
// @Tags         articles
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id path int true "Article ID"
// @Success      200 {object} respond.MessageBody "Article deactivated successfully."
// @Failure      400 {object} validate.FailureBody "Invalid id"
// @Failure      401 {object} respond.MessageBody "Missing or invalid API key"
// @Failure      404 {object} respond.MessageBody "Article not found for deactivation."
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id}/deactivate [patch]
func (h DeactivateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(r)
	if !ok {
		respond.Message(w, http.StatusBadRequest, invalidIDMessage)
		return
	}

	found, err := h.Svc.Deactivate(r.Context(), id)
	if err != nil {
		h.Errors.Handle(w, r, err)
		return
	}
	if !found {
		respond.Message(w, http.StatusNotFound, "Article not found for deactivation.")
		return
	}
	respond.Message(w, http.StatusOK, "Article deactivated successfully.")
}
