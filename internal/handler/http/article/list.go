package article

import (
	"net/http"

	"article-inventory/internal/handler/http/respond"
	"article-inventory/internal/handler/http/validate"
	"article-inventory/internal/repository"
	artUC "article-inventory/internal/usecase/article"
)

type ListHandler struct {
	Svc    artUC.Service
	Errors validate.ErrorHandler
}

// ServeHTTP lists articles split by activity
// @Summary      List articles
// @Description  Returns matching articles partitioned into active and inactive, ordered by id
// @Tags         articles
// @Produce      json
// @Param        name       query string false "Name filter (substring unless exactMatch)"
// @Param        exactMatch query string false "\"true\" for an exact name match"
// @Success      200 {object} ListDTO
// @Failure      500 {object} respond.ErrorBody
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q, _ := validate.Value[validate.ListQuery](r, validate.Query)

	// The activity filter is never pushed down; both partitions are returned.
	list, err := h.Svc.Find(r.Context(), repository.ArticleFilter{
		Name:       q.Name,
		ExactMatch: q.ExactMatch,
	})
	if err != nil {
		h.Errors.Handle(w, r, err)
		return
	}

	out := ListDTO{Active: []DTO{}, Inactive: []DTO{}}
	for _, a := range list {
		if a.IsActive {
			out.Active = append(out.Active, toDTO(a))
		} else {
			out.Inactive = append(out.Inactive, toDTO(a))
		}
	}
	respond.JSON(w, http.StatusOK, out)
}
