package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"project-board/internal/dbx"
	"project-board/internal/domain/entity"
	"project-board/internal/repository"
)

const commentFrom = `
FROM article_comments c
INNER JOIN user_accounts u ON u.id = c.user_account_id`

type ArticleCommentRepo struct {
	db dbx.DBTX
}

func NewArticleCommentRepo(db dbx.DBTX) repository.ArticleCommentRepository {
	return &ArticleCommentRepo{db: db}
}

func (repo *ArticleCommentRepo) FindByID(ctx context.Context, id int64) (*entity.ArticleComment, error) {
	const query = `
SELECT ` + commentColumns + commentFrom + `
WHERE c.id = $1
LIMIT 1`
	comment, err := scanComment(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return &comment, nil
}

func (repo *ArticleCommentRepo) FindByArticleID(ctx context.Context, articleID int64) ([]entity.ArticleComment, error) {
	const query = `
SELECT ` + commentColumns + commentFrom + `
WHERE c.article_id = $1
ORDER BY c.created_at ASC, c.id ASC`
	rows, err := repo.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("FindByArticleID: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]entity.ArticleComment, 0, 16)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("FindByArticleID: Scan: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (repo *ArticleCommentRepo) Save(ctx context.Context, comment *entity.ArticleComment) error {
	if comment.ID == 0 {
		const query = `
INSERT INTO article_comments (article_id, user_account_id, content, created_at, created_by, modified_at, modified_by)
VALUES ($1, (SELECT id FROM user_accounts WHERE user_id = $2), $3, $4, $5, $6, $7)
RETURNING id`
		err := repo.db.QueryRowContext(ctx, query,
			comment.ArticleID,
			comment.UserAccount.UserID,
			comment.Content,
			comment.CreatedAt,
			comment.CreatedBy,
			comment.ModifiedAt,
			comment.ModifiedBy,
		).Scan(&comment.ID)
		if err != nil {
			return fmt.Errorf("Save: insert: %w", err)
		}
		return nil
	}

	const query = `
UPDATE article_comments
SET content = $1, modified_at = $2, modified_by = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query, comment.Content, comment.ModifiedAt, comment.ModifiedBy, comment.ID)
	if err != nil {
		return fmt.Errorf("Save: update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Save: update comment %d: %w", comment.ID, entity.ErrNotFound)
	}
	return nil
}

func (repo *ArticleCommentRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	const query = `DELETE FROM article_comments WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("DeleteByID: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByID: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *ArticleCommentRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM article_comments`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// CountByArticleIDs counts comments for a batch of articles in one query.
func (repo *ArticleCommentRepo) CountByArticleIDs(ctx context.Context, articleIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	const query = `
SELECT article_id, COUNT(*)
FROM article_comments
WHERE article_id = ANY($1)
GROUP BY article_id`
	rows, err := repo.db.QueryContext(ctx, query, pq.Array(articleIDs))
	if err != nil {
		return nil, fmt.Errorf("CountByArticleIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("CountByArticleIDs: Scan: %w", err)
		}
		result[id] = n
	}
	return result, rows.Err()
}
