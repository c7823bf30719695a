package api

import (
	"net/http"

	"project-board/internal/handler/http/respond"
)

type HashtagsHandler struct{ Svc ArticleService }

// ServeHTTP lists the distinct hashtags in use.
// @Summary      List hashtags
// @Tags         articles
// @Produce      json
// @Success      200 {array}  string
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /hashtags [get]
func (h HashtagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Svc.GetHashtags(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if tags == nil {
		tags = []string{}
	}
	respond.JSON(w, http.StatusOK, tags)
}
