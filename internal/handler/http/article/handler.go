// Package article serves the board's article pages: the list, search and
// hashtag views, the detail page, and the authenticated create, edit and
// delete forms.
package article

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"project-board/internal/common/pagination"
	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/handler/http/auth"
	"project-board/internal/handler/http/view"
	"project-board/internal/observability/logging"
	"project-board/internal/repository"
	artUC "project-board/internal/usecase/article"
)

// Service is the part of the article service the pages use.
type Service interface {
	SearchArticles(ctx context.Context, searchType entity.SearchType, keyword string, req repository.PageRequest) (repository.Page[dto.ArticleDTO], error)
	SearchArticlesViaHashtag(ctx context.Context, hashtag string, req repository.PageRequest) (repository.Page[dto.ArticleDTO], error)
	GetArticleWithComments(ctx context.Context, articleID int64) (dto.ArticleWithCommentsDTO, error)
	GetArticle(ctx context.Context, articleID int64) (dto.ArticleDTO, error)
	GetArticleCount(ctx context.Context) (int64, error)
	GetHashtags(ctx context.Context) ([]string, error)
	CountComments(ctx context.Context, articleIDs []int64) (map[int64]int64, error)
	SaveArticle(ctx context.Context, actor string, d dto.ArticleDTO) (int64, error)
	UpdateArticle(ctx context.Context, actor string, articleID int64, u dto.ArticleUpdateDTO) error
	DeleteArticle(ctx context.Context, articleID int64, userID string) error
}

// Handler holds the dependencies of the article pages.
type Handler struct {
	Svc        Service
	View       *view.Renderer
	Pagination pagination.Config
	Logger     *slog.Logger
}

// Register mounts the article pages on mux. Form and delete routes require a
// signed-in user.
func Register(mux *http.ServeMux, h Handler) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/articles", http.StatusFound)
	})

	mux.HandleFunc("GET /articles", h.Index)
	mux.HandleFunc("GET /articles/search", h.Search)
	mux.HandleFunc("GET /articles/search-hashtag", h.SearchHashtag)
	mux.HandleFunc("GET /articles/{id}", h.Detail)

	mux.Handle("GET /articles/form", auth.RequireUser(http.HandlerFunc(h.NewForm)))
	mux.Handle("POST /articles/form", auth.RequireUser(http.HandlerFunc(h.Create)))
	mux.Handle("GET /articles/{id}/form", auth.RequireUser(http.HandlerFunc(h.EditForm)))
	mux.Handle("POST /articles/{id}/form", auth.RequireUser(http.HandlerFunc(h.Update)))
	mux.Handle("POST /articles/{id}/delete", auth.RequireUser(http.HandlerFunc(h.Delete)))
}

func (h Handler) logger(ctx context.Context) *slog.Logger {
	l := h.Logger
	if l == nil {
		l = slog.Default()
	}
	return logging.WithRequestID(ctx, l)
}

// fail renders the error page for err. Not-found and validation failures
// keep their message; anything else is logged and shown as a bare 500.
func (h Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	viewer := auth.Viewer(r.Context())
	switch {
	case errors.Is(err, artUC.ErrInvalidOwner):
		h.View.Error(w, viewer, http.StatusForbidden, "your account no longer exists")
	case artUC.IsNotFound(err):
		h.View.Error(w, viewer, http.StatusNotFound, "article not found")
	default:
		if ve, ok := entity.AsValidationError(err); ok {
			h.View.Error(w, viewer, http.StatusBadRequest, ve.Message)
			return
		}
		h.logger(r.Context()).Error("article page failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		h.View.Error(w, viewer, http.StatusInternalServerError, "")
	}
}
