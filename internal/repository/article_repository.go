package repository

import (
	"context"

	"project-board/internal/domain/entity"
)

// ArticleRepository persists articles. Finders return (nil, nil) when nothing matches.
// Every article is loaded together with its owning user account.
type ArticleRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Article, error)
	FindAll(ctx context.Context, req PageRequest) (Page[entity.Article], error)
	// FindByTitleContaining and the other *Containing finders match a
	// case-insensitive substring of the named field.
	FindByTitleContaining(ctx context.Context, title string, req PageRequest) (Page[entity.Article], error)
	FindByContentContaining(ctx context.Context, content string, req PageRequest) (Page[entity.Article], error)
	FindByUserIDContaining(ctx context.Context, userID string, req PageRequest) (Page[entity.Article], error)
	FindByNicknameContaining(ctx context.Context, nickname string, req PageRequest) (Page[entity.Article], error)
	// FindByHashtag matches the hashtag exactly.
	FindByHashtag(ctx context.Context, hashtag string, req PageRequest) (Page[entity.Article], error)
	FindAllDistinctHashtags(ctx context.Context) ([]string, error)
	// Save inserts the article when ID is zero and updates it otherwise.
	// On insert the generated ID is written back to the entity.
	Save(ctx context.Context, article *entity.Article) error
	// DeleteByIDAndUserID deletes the article only when userID owns it and
	// returns the number of deleted rows.
	DeleteByIDAndUserID(ctx context.Context, id int64, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
