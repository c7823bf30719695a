package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"project-board/internal/common/pagination"
	"project-board/internal/domain/entity"
	"project-board/internal/handler/http/requestid"
	"project-board/internal/handler/http/respond"
	"project-board/internal/observability/logging"
)

type ListHandler struct {
	Svc           ArticleService
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP lists articles.
// @Summary      List articles
// @Description  Returns one page of articles, optionally filtered by a search field and keyword.
// @Tags         articles
// @Produce      json
// @Param        page         query  int     false  "Page number (0-based)" default(0) minimum(0)
// @Param        size         query  int     false  "Page size" default(10) minimum(1) maximum(100)
// @Param        sort         query  string  false  "Sort order as field,dir" default(createdAt,desc)
// @Param        searchType   query  string  false  "Search field" Enums(TITLE, CONTENT, ID, NICKNAME, HASHTAG)
// @Param        searchValue  query  string  false  "Search keyword"
// @Success      200 {object} pagination.Response[dto.ArticleDTO]
// @Failure      400 {object} map[string]string "Invalid query parameters"
// @Failure      500 {object} map[string]string "Internal server error"
// @Router       /articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	req, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		pagination.RecordError("validation")
		respond.Error(w, http.StatusBadRequest, err)
		return
	}
	q := r.URL.Query()
	searchType, err := entity.ParseSearchType(q.Get("searchType"))
	if err != nil {
		pagination.RecordError("validation")
		respond.Error(w, http.StatusBadRequest, err)
		return
	}
	keyword := strings.TrimSpace(q.Get("searchValue"))
	if keyword != "" && searchType == 0 {
		searchType = entity.SearchTypeTitle
	}

	pagination.LogRequest(logger, reqID, "", req)

	page, err := h.Svc.SearchArticles(ctx, searchType, keyword, req)
	if err != nil {
		if ve, ok := entity.AsValidationError(err); ok {
			respond.Error(w, http.StatusBadRequest, ve)
			return
		}
		pagination.LogError(logger, reqID, req, err, "database")
		pagination.RecordError("database")
		pagination.RecordRequest(http.StatusInternalServerError, req.Page)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.FromPage(page))

	elapsed := time.Since(start)
	pagination.RecordRequest(http.StatusOK, req.Page)
	pagination.RecordDuration("api_list", elapsed.Seconds())
	pagination.LogResponse(logger, reqID, req, len(page.Content), elapsed, http.StatusOK)
}
