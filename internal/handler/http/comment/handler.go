// Package comment handles the comment form posts on the article page.
package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/handler/http/auth"
	"project-board/internal/handler/http/pathutil"
	"project-board/internal/handler/http/view"
	"project-board/internal/observability/logging"
	commentUC "project-board/internal/usecase/comment"
)

// Service is the part of the comment service the handlers use.
type Service interface {
	SaveArticleComment(ctx context.Context, actor string, d dto.ArticleCommentDTO) (int64, error)
	DeleteOwnArticleComment(ctx context.Context, commentID int64, userID string) error
}

// Handler serves POST /comments/new and POST /comments/{id}/delete.
type Handler struct {
	Svc    Service
	View   *view.Renderer
	Logger *slog.Logger
}

// Register mounts the comment routes. Both require a signed-in user.
func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("POST /comments/new", auth.RequireUser(http.HandlerFunc(h.Create)))
	mux.Handle("POST /comments/{id}/delete", auth.RequireUser(http.HandlerFunc(h.Delete)))
}

func articlePath(id int64) string { return fmt.Sprintf("/articles/%d", id) }

// Create saves the posted comment and returns to its article.
func (h Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	articleID, ok := h.articleID(w, r)
	if !ok {
		return
	}

	id, err := h.Svc.SaveArticleComment(r.Context(), p.UserID, dto.ArticleCommentDTO{
		ArticleID:   articleID,
		UserAccount: dto.UserAccountDTO{UserID: p.UserID},
		Content:     r.PostForm.Get("content"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger(r.Context()).Info("comment created",
		slog.Int64("commentId", id),
		slog.Int64("articleId", articleID),
		slog.String("userId", p.UserID))
	http.Redirect(w, r, articlePath(articleID), http.StatusFound)
}

// Delete removes the comment when the signed-in user wrote it and returns to
// the article named by the articleId form field.
func (h Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	commentID, err := pathutil.PathID(r, "id")
	if err != nil {
		h.View.Error(w, auth.Viewer(r.Context()), http.StatusNotFound, "comment not found")
		return
	}
	articleID, ok := h.articleID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteOwnArticleComment(r.Context(), commentID, p.UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, articlePath(articleID), http.StatusFound)
}

func (h Handler) articleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if err := r.ParseForm(); err != nil {
		h.View.Error(w, auth.Viewer(r.Context()), http.StatusBadRequest, "malformed form")
		return 0, false
	}
	id, err := pathutil.ParseID(r.PostForm.Get("articleId"))
	if err != nil {
		h.View.Error(w, auth.Viewer(r.Context()), http.StatusBadRequest, "articleId is invalid")
		return 0, false
	}
	return id, true
}

func (h Handler) logger(ctx context.Context) *slog.Logger {
	l := h.Logger
	if l == nil {
		l = slog.Default()
	}
	return logging.WithRequestID(ctx, l)
}

func (h Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	viewer := auth.Viewer(r.Context())
	switch {
	case errors.Is(err, commentUC.ErrEmptyContent):
		h.View.Error(w, viewer, http.StatusBadRequest, "a comment needs some content")
	case errors.Is(err, commentUC.ErrArticleNotFound):
		h.View.Error(w, viewer, http.StatusNotFound, "article not found")
	case errors.Is(err, commentUC.ErrInvalidOwner):
		h.View.Error(w, viewer, http.StatusForbidden, "your account no longer exists")
	default:
		if ve, ok := entity.AsValidationError(err); ok {
			h.View.Error(w, viewer, http.StatusBadRequest, ve.Message)
			return
		}
		h.logger(r.Context()).Error("comment request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		h.View.Error(w, viewer, http.StatusInternalServerError, "")
	}
}
