// Package sqldb implements the repositories on top of the shared db.Pool.
// Statements are written with "?" placeholders and work on every dialect the
// pool supports.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"article-inventory/internal/domain/entity"
	"article-inventory/internal/infra/db"
	"article-inventory/internal/repository"
)

const selectArticle = `SELECT id, name, brand, modified_at, is_active FROM articles`

type ArticleRepo struct {
	pool   *db.Pool
	logger *slog.Logger
}

func NewArticleRepo(pool *db.Pool, logger *slog.Logger) repository.ArticleRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleRepo{pool: pool, logger: logger}
}

func (repo *ArticleRepo) fail(op string, id int64, err error) error {
	attrs := []any{slog.String("op", op), slog.Any("error", err)}
	if id != 0 {
		attrs = append(attrs, slog.Int64("id", id))
	}
	repo.logger.Error("article store operation failed", attrs...)
	return &entity.PersistenceError{Op: op, ID: id, Err: err}
}

// Create inserts and reads the row back on one reserved connection.
func (repo *ArticleRepo) Create(ctx context.Context, in entity.CreateArticle) (*repository.ArticleRecord, error) {
	const stmt = `INSERT INTO articles (name, brand, is_active) VALUES (?, ?, TRUE)`

	conn, err := repo.pool.Acquire(ctx)
	if err != nil {
		return nil, repo.fail("Create", 0, err)
	}
	defer conn.Release()

	id, err := conn.Insert(ctx, stmt, in.Name, in.Brand)
	if err != nil {
		return nil, repo.fail("Create", 0, err)
	}
	if id <= 0 {
		return nil, repo.fail("Create", 0, errors.New("store returned no generated id"))
	}

	rec, err := repo.findByID(ctx, conn, "Create", id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, repo.fail("Create", id, errors.New("inserted row could not be read back"))
	}
	return rec, nil
}

func (repo *ArticleRepo) FindByID(ctx context.Context, id int64) (*repository.ArticleRecord, error) {
	return repo.findByID(ctx, repo.pool, "FindByID", id)
}

// rowReader is satisfied by both the pool and a reserved connection.
type rowReader interface {
	QueryRow(ctx context.Context, dest any, stmt string, args ...any) error
}

func (repo *ArticleRepo) findByID(ctx context.Context, r rowReader, op string, id int64) (*repository.ArticleRecord, error) {
	var rec repository.ArticleRecord
	err := r.QueryRow(ctx, &rec, selectArticle+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, repo.fail(op, id, err)
	}
	return &rec, nil
}

func (repo *ArticleRepo) Find(ctx context.Context, filter repository.ArticleFilter) ([]*repository.ArticleRecord, error) {
	where, args := buildFindWhere(filter, repo.pool.LikeOperator())

	recs := make([]*repository.ArticleRecord, 0)
	if err := repo.pool.Query(ctx, &recs, selectArticle+" "+where+" ORDER BY id", args...); err != nil {
		return nil, repo.fail("Find", 0, err)
	}
	return recs, nil
}

func (repo *ArticleRepo) Update(ctx context.Context, id int64, in entity.UpdateArticle) (*repository.ArticleRecord, error) {
	assignments, args := buildUpdateSet(in)
	if len(assignments) == 0 {
		return repo.FindByID(ctx, id)
	}

	stmt := `UPDATE articles SET ` + strings.Join(assignments, ", ") + ` WHERE id = ?`
	res, err := repo.pool.Exec(ctx, stmt, append(args, id)...)
	if err != nil {
		return nil, repo.fail("Update", id, err)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return repo.FindByID(ctx, id)
}

// Deactivate only touches active rows, so a repeated call affects nothing and
// reports false while the row stays inactive.
func (repo *ArticleRepo) Deactivate(ctx context.Context, id int64) (bool, error) {
	const stmt = `UPDATE articles SET is_active = FALSE, modified_at = CURRENT_TIMESTAMP WHERE id = ? AND is_active = TRUE`

	res, err := repo.pool.Exec(ctx, stmt, id)
	if err != nil {
		return false, repo.fail("Deactivate", id, err)
	}
	return res.RowsAffected > 0, nil
}
