package api

import (
	"net/http"

	"project-board/internal/dto"
	"project-board/internal/handler/http/pathutil"
	"project-board/internal/handler/http/respond"
)

type CommentsHandler struct {
	Articles ArticleService
	Comments CommentService
}

// ServeHTTP lists the comments of an article.
// @Summary      List article comments
// @Tags         comments
// @Produce      json
// @Param        id path int true "Article id"
// @Success      200 {array}  dto.ArticleCommentDTO
// @Failure      404 {object} map[string]string "Article not found"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /articles/{id}/articleComments [get]
func (h CommentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusNotFound, errArticleNotFound)
		return
	}
	ctx := r.Context()

	// comments of a missing article are a 404, not an empty list
	if _, err := h.Articles.GetArticle(ctx, id); err != nil {
		articleError(w, err)
		return
	}
	comments, err := h.Comments.SearchArticleComments(ctx, id)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if comments == nil {
		comments = []dto.ArticleCommentDTO{}
	}
	respond.JSON(w, http.StatusOK, comments)
}
