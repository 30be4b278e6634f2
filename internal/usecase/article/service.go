// Package article provides the use cases for inventory articles.
// It turns stored rows into domain articles and records business metrics.
// Input validation happens before the service is called.
package article

import (
	"context"
	"fmt"
	"log/slog"

	"article-inventory/internal/domain/entity"
	"article-inventory/internal/observability/logging"
	"article-inventory/internal/observability/metrics"
	"article-inventory/internal/repository"
)

// Service provides article management use cases.
// Not-found outcomes are reported as (nil, nil) or false, never as errors.
type Service struct {
	Repo   repository.ArticleRepository
	Logger *slog.Logger
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	return logging.WithRequestID(ctx, l)
}

// Create stores a new active article.
func (s *Service) Create(ctx context.Context, in entity.CreateArticle) (*entity.Article, error) {
	rec, err := s.Repo.Create(ctx, in)
	if err != nil {
		s.log(ctx).Error("create article failed",
			slog.String("name", in.Name),
			slog.String("brand", in.Brand),
			slog.Any("error", err))
		return nil, fmt.Errorf("create article: %w", err)
	}

	metrics.RecordArticleCreated()
	return toEntity(rec), nil
}

// Get returns the article with id, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	rec, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		s.log(ctx).Error("get article failed", slog.Int64("id", id), slog.Any("error", err))
		return nil, fmt.Errorf("get article: %w", err)
	}
	return toEntity(rec), nil
}

// Find returns the articles matching filter, ordered by id.
func (s *Service) Find(ctx context.Context, filter repository.ArticleFilter) ([]*entity.Article, error) {
	recs, err := s.Repo.Find(ctx, filter)
	if err != nil {
		s.log(ctx).Error("find articles failed",
			slog.Any("name", filter.Name),
			slog.Bool("exact_match", filter.ExactMatch),
			slog.Any("error", err))
		return nil, fmt.Errorf("find articles: %w", err)
	}

	out := make([]*entity.Article, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toEntity(rec))
	}
	return out, nil
}

// Update applies the fields present in in. It returns nil when the article
// does not exist. Setting IsActive to true reactivates a deactivated article.
func (s *Service) Update(ctx context.Context, id int64, in entity.UpdateArticle) (*entity.Article, error) {
	rec, err := s.Repo.Update(ctx, id, in)
	if err != nil {
		s.log(ctx).Error("update article failed", slog.Int64("id", id), slog.Any("error", err))
		return nil, fmt.Errorf("update article: %w", err)
	}
	if rec != nil && !in.IsEmpty() {
		metrics.RecordArticleUpdated()
	}
	return toEntity(rec), nil
}

// Deactivate marks the article inactive and reports whether it existed.
func (s *Service) Deactivate(ctx context.Context, id int64) (bool, error) {
	ok, err := s.Repo.Deactivate(ctx, id)
	if err != nil {
		s.log(ctx).Error("deactivate article failed", slog.Int64("id", id), slog.Any("error", err))
		return false, fmt.Errorf("deactivate article: %w", err)
	}
	if ok {
		metrics.RecordArticleDeactivated()
	}
	return ok, nil
}
