package article

import (
	"net/http"

	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/handler/http/validate"
	artUC "article-inventory/internal/usecase/article"
)

type GetHandler struct {
	Svc    artUC.Service
	Errors validate.ErrorHandler
}

// ServeHTTP returns one article
// @Summary      Get article
// @Description  Returns the article with the given id, active or not
// @Tags         articles
// @Produce      json
// @Param        id path int true "Article ID"
// @Success      200 {object} DTO
// @Failure      400 {object} validate.FailureBody "Invalid id"
// @Failure      404 {object} respond.MessageBody "Article not found."
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := validate.Value[int64](r, validate.Params)
	if !ok {
		h.Errors.Handle(w, r, errNoInput)
		return
	}

	a, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		h.Errors.Handle(w, r, err)
		return
	}
	if a == nil {
		respond.Message(w, http.StatusNotFound, "Article not found.")
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a))
}
