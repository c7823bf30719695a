// Package api serves the read-only JSON view of the board under /api.
//
// Articles, their comments and the hashtag list are exposed. User accounts
// are not: every /api/userAccounts route answers 404.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"project-board/internal/common/pagination"
	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/handler/http/respond"
	"project-board/internal/repository"
	artUC "project-board/internal/usecase/article"
)

// ArticleService is the read side of the article service.
type ArticleService interface {
	GetArticleWithComments(ctx context.Context, articleID int64) (dto.ArticleWithCommentsDTO, error)
	GetArticle(ctx context.Context, articleID int64) (dto.ArticleDTO, error)
	SearchArticles(ctx context.Context, searchType entity.SearchType, keyword string, req repository.PageRequest) (repository.Page[dto.ArticleDTO], error)
	GetHashtags(ctx context.Context) ([]string, error)
}

// CommentService lists the comments of one article.
type CommentService interface {
	SearchArticleComments(ctx context.Context, articleID int64) ([]dto.ArticleCommentDTO, error)
}

var (
	errArticleNotFound = errors.New("article not found")
	errNotFound        = errors.New("not found")
)

// Routes bundles what Register needs.
type Routes struct {
	Articles   ArticleService
	Comments   CommentService
	Pagination pagination.Config
	Logger     *slog.Logger
}

// Register mounts the API routes on mux.
func Register(mux *http.ServeMux, rt Routes) {
	logger := rt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mux.Handle("GET /api/articles", ListHandler{Svc: rt.Articles, PaginationCfg: rt.Pagination, Logger: logger})
	mux.Handle("GET /api/articles/{id}", GetHandler{Svc: rt.Articles})
	mux.Handle("GET /api/articles/{id}/articleComments", CommentsHandler{Articles: rt.Articles, Comments: rt.Comments})
	mux.Handle("GET /api/hashtags", HashtagsHandler{Svc: rt.Articles})

	hidden := http.HandlerFunc(notFound)
	mux.Handle("/api/userAccounts", hidden)
	mux.Handle("/api/userAccounts/", hidden)
	mux.Handle("/api/", hidden)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	respond.Error(w, http.StatusNotFound, errNotFound)
}

// articleError writes the JSON error for a failed article lookup.
func articleError(w http.ResponseWriter, err error) {
	if errors.Is(err, artUC.ErrArticleNotFound) || errors.Is(err, entity.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, errArticleNotFound)
		return
	}
	respond.SafeError(w, http.StatusInternalServerError, err)
}
