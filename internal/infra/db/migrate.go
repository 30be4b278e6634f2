package db

import (
	"context"
	"fmt"
)

var createArticles = map[string]string{
	"mysql": `
CREATE TABLE IF NOT EXISTS articles (
    id          INT AUTO_INCREMENT PRIMARY KEY,
    name        VARCHAR(255) NOT NULL,
    brand       VARCHAR(255) NOT NULL,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    is_active   BOOLEAN DEFAULT TRUE
)`,
	"postgresql": `
CREATE TABLE IF NOT EXISTS articles (
    id          SERIAL PRIMARY KEY,
    name        VARCHAR(255) NOT NULL,
    brand       VARCHAR(255) NOT NULL,
    modified_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    is_active   BOOLEAN NOT NULL DEFAULT TRUE
)`,
	"sqlite": `
CREATE TABLE IF NOT EXISTS articles (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    brand       TEXT NOT NULL,
    modified_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    is_active   BOOLEAN NOT NULL DEFAULT 1
)`,
}

const dropArticles = `DROP TABLE IF EXISTS articles`

// MigrateUp creates the articles table if it does not exist.
func MigrateUp(ctx context.Context, p *Pool) error {
	ddl, ok := createArticles[p.dialect.name]
	if !ok {
		return fmt.Errorf("%w: no schema for %s", ErrUnsupportedDriver, p.dialect.name)
	}
	if _, err := p.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create articles table: %w", err)
	}
	return nil
}

// MigrateDown drops the articles table and everything in it.
func MigrateDown(ctx context.Context, p *Pool) error {
	if _, err := p.Exec(ctx, dropArticles); err != nil {
		return fmt.Errorf("drop articles table: %w", err)
	}
	return nil
}
