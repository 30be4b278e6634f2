package repository

import (
	"context"
	"time"

	"article-inventory/internal/domain/entity"
)

// ArticleRecord is an article row as read from the store.
// IsActive holds the flag exactly as the driver returned it
// (bool, int64, []byte or string depending on the dialect).
type ArticleRecord struct {
	ID         int64     `db:"id"`
	Name       string    `db:"name"`
	Brand      string    `db:"brand"`
	ModifiedAt time.Time `db:"modified_at"`
	IsActive   any       `db:"is_active"`
}

// ArticleFilter narrows Find. A nil Name matches every name and a nil IsActive
// matches both states. ExactMatch switches the name predicate from substring
// to equality.
type ArticleFilter struct {
	Name       *string
	IsActive   *bool
	ExactMatch bool
}

type ArticleRepository interface {
	// Create inserts an active article and returns the stored row.
	Create(ctx context.Context, in entity.CreateArticle) (*ArticleRecord, error)
	// FindByID returns (nil, nil) when no row has the id.
	FindByID(ctx context.Context, id int64) (*ArticleRecord, error)
	Find(ctx context.Context, filter ArticleFilter) ([]*ArticleRecord, error)
	// Update sets only the fields present in in. It returns (nil, nil) when
	// the id does not exist.
	Update(ctx context.Context, id int64, in entity.UpdateArticle) (*ArticleRecord, error)
	// Deactivate reports whether a row was affected.
	Deactivate(ctx context.Context, id int64) (bool, error)
}
