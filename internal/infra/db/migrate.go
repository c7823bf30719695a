package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS user_accounts (
    id            BIGSERIAL PRIMARY KEY,
    user_id       VARCHAR(50)  NOT NULL UNIQUE,
    user_password VARCHAR(255) NOT NULL,
    email         VARCHAR(100),
    nickname      VARCHAR(100),
    memo          VARCHAR(255),
    created_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
    created_by    VARCHAR(100) NOT NULL,
    modified_at   TIMESTAMPTZ  NOT NULL DEFAULT now(),
    modified_by   VARCHAR(100) NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS articles (
    id              BIGSERIAL PRIMARY KEY,
    user_account_id BIGINT        NOT NULL REFERENCES user_accounts(id),
    title           VARCHAR(255)  NOT NULL,
    content         VARCHAR(10000) NOT NULL,
    hashtag         VARCHAR(255),
    created_at      TIMESTAMPTZ   NOT NULL DEFAULT now(),
    created_by      VARCHAR(100)  NOT NULL,
    modified_at     TIMESTAMPTZ   NOT NULL DEFAULT now(),
    modified_by     VARCHAR(100)  NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS article_comments (
    id              BIGSERIAL PRIMARY KEY,
    article_id      BIGINT       NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    user_account_id BIGINT       NOT NULL REFERENCES user_accounts(id),
    content         VARCHAR(500) NOT NULL,
    created_at      TIMESTAMPTZ  NOT NULL DEFAULT now(),
    created_by      VARCHAR(100) NOT NULL,
    modified_at     TIMESTAMPTZ  NOT NULL DEFAULT now(),
    modified_by     VARCHAR(100) NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(title)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_hashtag ON articles(hashtag)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_created_by ON articles(created_by)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_user_account_id ON articles(user_account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_article_comments_article_id ON article_comments(article_id, created_at)`,
}

// postgresSearchIndexes speed up ILIKE. They need pg_trgm, which may be
// unavailable without superuser rights, so failures are only logged.
var postgresSearchIndexes = []string{
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
	`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_content_gin ON articles USING gin(content gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_user_accounts_nickname_gin ON user_accounts USING gin(nickname gin_trgm_ops)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS user_accounts (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id       TEXT     NOT NULL UNIQUE,
    user_password TEXT     NOT NULL,
    email         TEXT,
    nickname      TEXT,
    memo          TEXT,
    created_at    DATETIME NOT NULL,
    created_by    TEXT     NOT NULL,
    modified_at   DATETIME NOT NULL,
    modified_by   TEXT     NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS articles (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    user_account_id INTEGER  NOT NULL REFERENCES user_accounts(id),
    title           TEXT     NOT NULL,
    content         TEXT     NOT NULL,
    hashtag         TEXT,
    created_at      DATETIME NOT NULL,
    created_by      TEXT     NOT NULL,
    modified_at     DATETIME NOT NULL,
    modified_by     TEXT     NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS article_comments (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    article_id      INTEGER  NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    user_account_id INTEGER  NOT NULL REFERENCES user_accounts(id),
    content         TEXT     NOT NULL,
    created_at      DATETIME NOT NULL,
    created_by      TEXT     NOT NULL,
    modified_at     DATETIME NOT NULL,
    modified_by     TEXT     NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_title ON articles(title)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_hashtag ON articles(hashtag)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_user_account_id ON articles(user_account_id)`,
	`CREATE INDEX IF NOT EXISTS idx_article_comments_article_id ON article_comments(article_id, created_at)`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS article_comments`,
	`DROP TABLE IF EXISTS articles`,
	`DROP TABLE IF EXISTS user_accounts`,
}

// MigrateUp creates the tables and indexes for dialect. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	var stmts []string
	switch dialect {
	case DialectPostgres:
		stmts = postgresSchema
	case DialectSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("migrate up: unsupported dialect %q", dialect)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	}

	if dialect == DialectPostgres {
		for _, stmt := range postgresSearchIndexes {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				slog.Warn("skipping trigram search index", slog.Any("error", err))
				break
			}
		}
	}
	return nil
}

// MigrateDown drops every table created by MigrateUp, children first.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	}
	return nil
}
