package article

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"project-board/internal/dto"
	"project-board/internal/handler/http/auth"
	"project-board/internal/handler/http/pathutil"
	"project-board/internal/handler/http/view"
)

// Detail renders GET /articles/{id}: the article, its comments and the
// total article count. The two reads run concurrently.
func (h Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		h.View.Error(w, auth.Viewer(r.Context()), http.StatusNotFound, "article not found")
		return
	}

	var (
		article dto.ArticleWithCommentsDTO
		total   int64
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		article, err = h.Svc.GetArticleWithComments(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.Svc.GetArticleCount(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}

	h.View.Render(w, http.StatusOK, view.PageArticleDetail, view.ArticleDetail{
		Base:            view.Base{PageTitle: article.Title, Viewer: auth.Viewer(r.Context())},
		Article:         article.ArticleDTO,
		ArticleComments: article.ArticleComments,
		TotalCount:      total,
	})
}
