package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"project-board/internal/dbx"
	"project-board/internal/domain/entity"
	"project-board/internal/repository"
)

const articleFrom = `
FROM articles a
INNER JOIN user_accounts u ON u.id = a.user_account_id`

// ArticleRepo implements repository.ArticleRepository using SQLite.
type ArticleRepo struct {
	db           dbx.DBTX
	queryBuilder *ArticleQueryBuilder
}

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db dbx.DBTX) repository.ArticleRepository {
	return &ArticleRepo{db: db, queryBuilder: NewArticleQueryBuilder()}
}

func (repo *ArticleRepo) FindByID(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `
SELECT ` + articleColumns + articleFrom + `
WHERE a.id = ?
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: QueryRowContext: %w", err)
	}
	return &article, nil
}

func (repo *ArticleRepo) FindAll(ctx context.Context, req repository.PageRequest) (repository.Page[entity.Article], error) {
	return repo.findPage(ctx, "FindAll", "", nil, req)
}

func (repo *ArticleRepo) FindByTitleContaining(ctx context.Context, title string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	where, args := repo.queryBuilder.Contains("a.title", title)
	return repo.findPage(ctx, "FindByTitleContaining", where, args, req)
}

func (repo *ArticleRepo) FindByContentContaining(ctx context.Context, content string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	where, args := repo.queryBuilder.Contains("a.content", content)
	return repo.findPage(ctx, "FindByContentContaining", where, args, req)
}

func (repo *ArticleRepo) FindByUserIDContaining(ctx context.Context, userID string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	where, args := repo.queryBuilder.Contains("u.user_id", userID)
	return repo.findPage(ctx, "FindByUserIDContaining", where, args, req)
}

func (repo *ArticleRepo) FindByNicknameContaining(ctx context.Context, nickname string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	where, args := repo.queryBuilder.Contains("u.nickname", nickname)
	return repo.findPage(ctx, "FindByNicknameContaining", where, args, req)
}

func (repo *ArticleRepo) FindByHashtag(ctx context.Context, hashtag string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	where, args := repo.queryBuilder.Equals("a.hashtag", hashtag)
	return repo.findPage(ctx, "FindByHashtag", where, args, req)
}

func (repo *ArticleRepo) findPage(ctx context.Context, op, where string, args []any, req repository.PageRequest) (repository.Page[entity.Article], error) {
	countQuery := "SELECT COUNT(*)" + articleFrom + "\n" + where
	var total int64
	if err := repo.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return repository.Page[entity.Article]{}, fmt.Errorf("%s: count: %w", op, err)
	}
	if total == 0 || int64(req.Offset()) >= total {
		return repository.NewPage[entity.Article](nil, req, total), nil
	}

	limit, limitArgs := repo.queryBuilder.LimitOffset(req)
	query := "SELECT " + articleColumns + articleFrom + "\n" + where +
		"\nORDER BY " + repo.queryBuilder.OrderBy(req.Sort) + "\n" + limit

	rows, err := repo.db.QueryContext(ctx, query, append(append([]any{}, args...), limitArgs...)...)
	if err != nil {
		return repository.Page[entity.Article]{}, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]entity.Article, 0, req.Size)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return repository.Page[entity.Article]{}, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[entity.Article]{}, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return repository.NewPage(articles, req, total), nil
}

func (repo *ArticleRepo) FindAllDistinctHashtags(ctx context.Context) ([]string, error) {
	const query = `
SELECT DISTINCT hashtag
FROM articles
WHERE hashtag IS NOT NULL AND hashtag <> ''
ORDER BY hashtag`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("FindAllDistinctHashtags: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	hashtags := make([]string, 0, 16)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("FindAllDistinctHashtags: Scan: %w", err)
		}
		hashtags = append(hashtags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindAllDistinctHashtags: rows.Err: %w", err)
	}
	return hashtags, nil
}

func (repo *ArticleRepo) Save(ctx context.Context, article *entity.Article) error {
	if article.ID == 0 {
		const query = `
INSERT INTO articles (user_account_id, title, content, hashtag, created_at, created_by, modified_at, modified_by)
VALUES ((SELECT id FROM user_accounts WHERE user_id = ?), ?, ?, ?, ?, ?, ?, ?)`
		res, err := repo.db.ExecContext(ctx, query,
			article.UserAccount.UserID,
			article.Title,
			article.Content,
			toNullString(article.Hashtag),
			article.CreatedAt,
			article.CreatedBy,
			article.ModifiedAt,
			article.ModifiedBy,
		)
		if err != nil {
			return fmt.Errorf("Save: insert: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("Save: LastInsertId: %w", err)
		}
		article.ID = id
		return nil
	}

	const query = `
UPDATE articles
SET title = ?, content = ?, hashtag = ?, modified_at = ?, modified_by = ?
WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query,
		article.Title,
		article.Content,
		toNullString(article.Hashtag),
		article.ModifiedAt,
		article.ModifiedBy,
		article.ID,
	)
	if err != nil {
		return fmt.Errorf("Save: update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Save: update article %d: %w", article.ID, entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleRepo) DeleteByIDAndUserID(ctx context.Context, id int64, userID string) (int64, error) {
	const query = `
DELETE FROM articles
WHERE id = ?
  AND user_account_id = (SELECT id FROM user_accounts WHERE user_id = ?)`
	res, err := repo.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("DeleteByIDAndUserID: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByIDAndUserID: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
