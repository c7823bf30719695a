package repository

import (
	"context"

	"project-board/internal/domain/entity"
)

type ArticleCommentRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.ArticleComment, error)
	// FindByArticleID returns the comments of an article, oldest first.
	FindByArticleID(ctx context.Context, articleID int64) ([]entity.ArticleComment, error)
	Save(ctx context.Context, comment *entity.ArticleComment) error
	DeleteByID(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
	// CountByArticleIDs returns comment counts keyed by article id.
	// Articles without comments are absent from the map.
	CountByArticleIDs(ctx context.Context, articleIDs []int64) (map[int64]int64, error)
}
