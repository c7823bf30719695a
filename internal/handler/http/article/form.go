package article

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/handler/http/auth"
	"project-board/internal/handler/http/pathutil"
	"project-board/internal/handler/http/view"
)

type articleForm struct {
	Title   string
	Content string
	Hashtag string
}

func readForm(r *http.Request) (articleForm, error) {
	if err := r.ParseForm(); err != nil {
		return articleForm{}, err
	}
	return articleForm{
		Title:   strings.TrimSpace(r.PostForm.Get("title")),
		Content: r.PostForm.Get("content"),
		Hashtag: NormalizeHashtag(r.PostForm.Get("hashtag")),
	}, nil
}

// NormalizeHashtag trims h and prefixes "#" when missing. Blank stays blank.
func NormalizeHashtag(h string) string {
	h = strings.TrimSpace(h)
	if h == "" || strings.HasPrefix(h, "#") {
		return h
	}
	return "#" + h
}

func (f articleForm) hashtag() *string {
	if f.Hashtag == "" {
		return nil
	}
	h := f.Hashtag
	return &h
}

func formModel(viewer view.Viewer, status string, id int64, f articleForm) view.ArticleForm {
	m := view.ArticleForm{
		Base:       view.Base{PageTitle: "New article", Viewer: viewer},
		FormStatus: status,
		Action:     "/articles/form",
		Title:      f.Title,
		Content:    f.Content,
		Hashtag:    f.Hashtag,
	}
	if status == view.FormUpdate {
		m.PageTitle = "Edit article"
		m.ArticleID = id
		m.Action = fmt.Sprintf("/articles/%d/form", id)
	}
	return m
}

// rejectForm re-renders the form with a validation message, or falls back to
// fail for any other error.
func (h Handler) rejectForm(w http.ResponseWriter, r *http.Request, model view.ArticleForm, err error) {
	if ve, ok := entity.AsValidationError(err); ok {
		model.Error = ve.Message
		h.View.Render(w, http.StatusBadRequest, view.PageArticleForm, model)
		return
	}
	h.fail(w, r, err)
}

// NewForm renders the empty create form.
func (h Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.View.Render(w, http.StatusOK, view.PageArticleForm,
		formModel(auth.Viewer(r.Context()), view.FormCreate, 0, articleForm{}))
}

// Create saves a new article owned by the signed-in user and returns to the list.
func (h Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	f, err := readForm(r)
	if err != nil {
		h.View.Error(w, auth.Viewer(r.Context()), http.StatusBadRequest, "malformed form")
		return
	}

	id, err := h.Svc.SaveArticle(r.Context(), p.UserID, dto.ArticleDTO{
		UserAccount: dto.UserAccountDTO{UserID: p.UserID},
		Title:       f.Title,
		Content:     f.Content,
		Hashtag:     f.hashtag(),
	})
	if err != nil {
		h.rejectForm(w, r, formModel(auth.Viewer(r.Context()), view.FormCreate, 0, f), err)
		return
	}
	h.logger(r.Context()).Info("article created",
		slog.Int64("articleId", id),
		slog.String("userId", p.UserID))
	http.Redirect(w, r, "/articles", http.StatusFound)
}

// EditForm renders the form filled with the stored article. Only the owner
// may open it.
func (h Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	viewer := auth.Viewer(r.Context())
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		h.View.Error(w, viewer, http.StatusNotFound, "article not found")
		return
	}
	article, err := h.Svc.GetArticle(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if article.UserAccount.UserID != viewer.UserID {
		h.View.Error(w, viewer, http.StatusForbidden, "only the author can edit this article")
		return
	}
	h.View.Render(w, http.StatusOK, view.PageArticleForm, formModel(viewer, view.FormUpdate, id, articleForm{
		Title:   article.Title,
		Content: article.Content,
		Hashtag: article.HashtagValue(),
	}))
}

// Update applies the form to the article and returns to its page. The service
// ignores edits from anyone but the owner.
func (h Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		h.View.Error(w, auth.Viewer(r.Context()), http.StatusNotFound, "article not found")
		return
	}
	f, err := readForm(r)
	if err != nil {
		h.View.Error(w, auth.Viewer(r.Context()), http.StatusBadRequest, "malformed form")
		return
	}

	err = h.Svc.UpdateArticle(r.Context(), p.UserID, id, dto.ArticleUpdateDTO{
		UserID:  p.UserID,
		Title:   &f.Title,
		Content: &f.Content,
		Hashtag: f.hashtag(),
	})
	if err != nil {
		h.rejectForm(w, r, formModel(auth.Viewer(r.Context()), view.FormUpdate, id, f), err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/articles/%d", id), http.StatusFound)
}

// Delete removes the article when the signed-in user owns it.
func (h Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	id, err := pathutil.PathID(r, "id")
	if err != nil {
		h.View.Error(w, auth.Viewer(r.Context()), http.StatusNotFound, "article not found")
		return
	}
	if err := h.Svc.DeleteArticle(r.Context(), id, p.UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/articles", http.StatusFound)
}
