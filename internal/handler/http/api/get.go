package api

import (
	"net/http"

	"project-board/internal/handler/http/pathutil"
	"project-board/internal/handler/http/respond"
)

type GetHandler struct{ Svc ArticleService }

// ServeHTTP returns one article with its comments.
// @Summary      Get article
// @Description  Returns the article and all of its comments, oldest comment first.
// @Tags         articles
// @Produce      json
// @Param        id path int true "Article id"
// @Success      200 {object} dto.ArticleWithCommentsDTO
// @Failure      404 {object} map[string]string "Article not found"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		respond.Error(w, http.StatusNotFound, errArticleNotFound)
		return
	}

	article, err := h.Svc.GetArticleWithComments(r.Context(), id)
	if err != nil {
		articleError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, article)
}
