// Package article provides the HTTP handlers for the /api/articles routes.
// Input arrives already validated by the gates installed in Register.
package article

import (
	"strings"
	"time"

	"article-inventory/internal/domain/entity"
)

// CreateArticleRequest is the body of POST /api/articles.
type CreateArticleRequest struct {
	Name  *string `json:"name" validate:"required,min=3,max=200" example:"Mechanical Keyboard"`
	Brand *string `json:"brand" validate:"required,min=2,max=200" example:"LogiTech"`
}

// Normalize trims name and brand before the length rules run.
func (r *CreateArticleRequest) Normalize() {
	trim(r.Name)
	trim(r.Brand)
}

// UpdateArticleRequest is the body of PATCH /api/articles/{id}. Absent and
// null fields are left untouched.
type UpdateArticleRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitnil,min=3,max=200" example:"Wireless Keyboard"`
	Brand    *string `json:"brand,omitempty" validate:"omitnil,min=2,max=200" example:"Logitech"`
	IsActive *bool   `json:"is_active,omitempty" example:"true"`
}

// Normalize trims the present string fields.
func (r *UpdateArticleRequest) Normalize() {
	trim(r.Name)
	trim(r.Brand)
}

func (r UpdateArticleRequest) toEntity() entity.UpdateArticle {
	return entity.UpdateArticle{Name: r.Name, Brand: r.Brand, IsActive: r.IsActive}
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// DTO is the JSON shape of an article.
type DTO struct {
	ID         int64     `json:"id" example:"1"`
	Name       string    `json:"name" example:"Mechanical Keyboard"`
	Brand      string    `json:"brand" example:"LogiTech"`
	ModifiedAt time.Time `json:"modified_at" example:"2025-10-26T12:00:00Z"`
	IsActive   bool      `json:"is_active" example:"true"`
}

// ListDTO partitions the list result by activity.
type ListDTO struct {
	Active   []DTO `json:"active"`
	Inactive []DTO `json:"inactive"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:         a.ID,
		Name:       a.Name,
		Brand:      a.Brand,
		ModifiedAt: a.ModifiedAt,
		IsActive:   a.IsActive,
	}
}

var fieldMessages = map[string]string{
	"name.required":  "Name is required.",
	"name.min":       "Name must be at least 3 characters long.",
	"name.max":       "Name must be at most 200 characters long.",
	"brand.required": "Brand is required.",
	"brand.min":      "Brand must be at least 2 characters long.",
	"brand.max":      "Brand must be at most 200 characters long.",
}
