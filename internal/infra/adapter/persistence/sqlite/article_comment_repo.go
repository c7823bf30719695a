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

const commentFrom = `
FROM article_comments c
INNER JOIN user_accounts u ON u.id = c.user_account_id`

// ArticleCommentRepo implements repository.ArticleCommentRepository using SQLite.
type ArticleCommentRepo struct {
	db dbx.DBTX
}

// NewArticleCommentRepo creates a new SQLite-backed comment repository.
func NewArticleCommentRepo(db dbx.DBTX) repository.ArticleCommentRepository {
	return &ArticleCommentRepo{db: db}
}

func (repo *ArticleCommentRepo) FindByID(ctx context.Context, id int64) (*entity.ArticleComment, error) {
	const query = `
SELECT ` + commentColumns + commentFrom + `
WHERE c.id = ?
LIMIT 1`
	comment, err := scanComment(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: QueryRowContext: %w", err)
	}
	return &comment, nil
}

func (repo *ArticleCommentRepo) FindByArticleID(ctx context.Context, articleID int64) ([]entity.ArticleComment, error) {
	const query = `
SELECT ` + commentColumns + commentFrom + `
WHERE c.article_id = ?
ORDER BY c.created_at ASC, c.id ASC`
	rows, err := repo.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("FindByArticleID: QueryContext: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("FindByArticleID: rows.Err: %w", err)
	}
	return comments, nil
}

func (repo *ArticleCommentRepo) Save(ctx context.Context, comment *entity.ArticleComment) error {
	if comment.ID == 0 {
		const query = `
INSERT INTO article_comments (article_id, user_account_id, content, created_at, created_by, modified_at, modified_by)
VALUES (?, (SELECT id FROM user_accounts WHERE user_id = ?), ?, ?, ?, ?, ?)`
		res, err := repo.db.ExecContext(ctx, query,
			comment.ArticleID,
			comment.UserAccount.UserID,
			comment.Content,
			comment.CreatedAt,
			comment.CreatedBy,
			comment.ModifiedAt,
			comment.ModifiedBy,
		)
		if err != nil {
			return fmt.Errorf("Save: insert: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("Save: LastInsertId: %w", err)
		}
		comment.ID = id
		return nil
	}

	const query = `
UPDATE article_comments
SET content = ?, modified_at = ?, modified_by = ?
WHERE id = ?`
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
	res, err := repo.db.ExecContext(ctx, `DELETE FROM article_comments WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("DeleteByID: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByID: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *ArticleCommentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM article_comments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// CountByArticleIDs counts comments for a batch of articles with an IN list.
func (repo *ArticleCommentRepo) CountByArticleIDs(ctx context.Context, articleIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	query := `
SELECT article_id, COUNT(*)
FROM article_comments
WHERE article_id IN (` + inPlaceholders(len(articleIDs)) + `)
GROUP BY article_id`
	args := make([]any, len(articleIDs))
	for i, id := range articleIDs {
		args[i] = id
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("CountByArticleIDs: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("CountByArticleIDs: Scan: %w", err)
		}
		result[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CountByArticleIDs: rows.Err: %w", err)
	}
	return result, nil
}
