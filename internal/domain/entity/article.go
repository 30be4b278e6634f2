// Package entity defines the core domain entities of the article inventory.
// It holds the Article record, the mutation inputs accepted for it, and the
// domain-level errors shared by the persistence and use case layers.
package entity

import "time"

// Article represents an inventory article.
// ID and ModifiedAt are assigned by the store and never set by callers.
type Article struct {
	ID         int64
	Name       string
	Brand      string
	ModifiedAt time.Time
	IsActive   bool
}

// CreateArticle is the input for creating a new article.
// New articles always start active.
type CreateArticle struct {
	Name  string
	Brand string
}

// UpdateArticle is a partial update. Nil fields are left untouched.
type UpdateArticle struct {
	Name     *string
	Brand    *string
	IsActive *bool
}

// IsEmpty reports whether the update carries no settable field.
func (u UpdateArticle) IsEmpty() bool {
	return u.Name == nil && u.Brand == nil && u.IsActive == nil
}
