package article

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"project-board/internal/common/pagination"
	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/handler/http/auth"
	"project-board/internal/handler/http/requestid"
	"project-board/internal/handler/http/view"
)

// Index renders GET /articles, optionally filtered by searchType and searchValue.
func (h Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.searchPage(w, r, view.PageArticleIndex, "Articles")
}

// Search renders GET /articles/search with the same parameters as Index.
func (h Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.searchPage(w, r, view.PageArticleSearch, "Search")
}

func (h Handler) searchPage(w http.ResponseWriter, r *http.Request, page, title string) {
	ctx := r.Context()
	start := time.Now()
	logger := h.logger(ctx)
	reqID := requestid.FromContext(ctx)

	req, err := pagination.ParseQueryParams(r, h.Pagination)
	if err != nil {
		pagination.RecordError("validation")
		h.View.Error(w, auth.Viewer(ctx), http.StatusBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	searchType, err := entity.ParseSearchType(q.Get("searchType"))
	if err != nil {
		pagination.RecordError("validation")
		h.fail(w, r, err)
		return
	}
	keyword := strings.TrimSpace(q.Get("searchValue"))
	if keyword != "" && searchType == 0 {
		searchType = entity.SearchTypeTitle
	}

	viewer := auth.Viewer(ctx)
	pagination.LogRequest(logger, reqID, viewer.UserID, req)

	articles, err := h.Svc.SearchArticles(ctx, searchType, keyword, req)
	if err != nil {
		pagination.LogError(logger, reqID, req, err, "database")
		pagination.RecordError("database")
		h.fail(w, r, err)
		return
	}

	model := view.ArticleList{
		Base:                 view.Base{PageTitle: title, Viewer: viewer},
		Path:                 r.URL.Path,
		Articles:             articles,
		PaginationBarNumbers: pagination.BarNumbers(articles.Number, articles.TotalPages(), h.Pagination.BarLength),
		SearchValue:          keyword,
		CommentCounts:        h.commentCounts(r, articles.Content),
	}
	if keyword != "" {
		model.SearchType = searchType.String()
	}
	h.View.Render(w, http.StatusOK, page, model)

	duration := time.Since(start)
	pagination.RecordRequest(http.StatusOK, req.Page)
	pagination.RecordDuration(page, duration.Seconds())
	pagination.LogResponse(logger, reqID, req, len(articles.Content), duration, http.StatusOK)
}

// SearchHashtag renders GET /articles/search-hashtag: every hashtag in use and
// the articles tagged with searchValue. Without a searchValue the page lists
// only the hashtags.
func (h Handler) SearchHashtag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := h.logger(ctx)
	reqID := requestid.FromContext(ctx)

	req, err := pagination.ParseQueryParams(r, h.Pagination)
	if err != nil {
		pagination.RecordError("validation")
		h.View.Error(w, auth.Viewer(ctx), http.StatusBadRequest, err.Error())
		return
	}
	hashtag := strings.TrimSpace(r.URL.Query().Get("searchValue"))

	articles, err := h.Svc.SearchArticlesViaHashtag(ctx, hashtag, req)
	if err != nil {
		pagination.RecordError("database")
		h.fail(w, r, err)
		return
	}
	hashtags, err := h.Svc.GetHashtags(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.View.Render(w, http.StatusOK, view.PageArticleHashtag, view.ArticleList{
		Base:                 view.Base{PageTitle: "Hashtags", Viewer: auth.Viewer(ctx)},
		Path:                 r.URL.Path,
		Articles:             articles,
		PaginationBarNumbers: pagination.BarNumbers(articles.Number, articles.TotalPages(), h.Pagination.BarLength),
		SearchType:           entity.SearchTypeHashtag.String(),
		SearchValue:          hashtag,
		Hashtags:             hashtags,
		CommentCounts:        h.commentCounts(r, articles.Content),
	})

	duration := time.Since(start)
	pagination.RecordRequest(http.StatusOK, req.Page)
	pagination.RecordDuration(view.PageArticleHashtag, duration.Seconds())
	pagination.LogResponse(logger, reqID, req, len(articles.Content), duration, http.StatusOK)
}

// commentCounts loads the comment column. A failure only hides the column.
func (h Handler) commentCounts(r *http.Request, articles []dto.ArticleDTO) map[int64]int64 {
	if len(articles) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.ID)
	}
	counts, err := h.Svc.CountComments(r.Context(), ids)
	if err != nil {
		h.logger(r.Context()).Warn("comment counts unavailable", slog.Any("error", err))
		return nil
	}
	if counts == nil {
		counts = map[int64]int64{}
	}
	return counts
}
