package article_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"project-board/internal/common/pagination"
	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/handler/http/article"
	"project-board/internal/handler/http/auth"
	"project-board/internal/handler/http/view"
	"project-board/internal/repository"
)

type searchCall struct {
	searchType entity.SearchType
	keyword    string
	req        repository.PageRequest
}

type updateCall struct {
	actor string
	id    int64
	dto   dto.ArticleUpdateDTO
}

// stubService records calls and returns canned values.
type stubService struct {
	page        repository.Page[dto.ArticleDTO]
	article     dto.ArticleWithCommentsDTO
	count       int64
	hashtags    []string
	counts      map[int64]int64
	countErr    error
	err         error
	saveErr     error
	savedID     int64
	searches    []searchCall
	hashtagArgs []string
	saved       []dto.ArticleDTO
	savedBy     []string
	updates     []updateCall
	deletes     [][2]any
}

func (s *stubService) SearchArticles(_ context.Context, st entity.SearchType, kw string, req repository.PageRequest) (repository.Page[dto.ArticleDTO], error) {
	s.searches = append(s.searches, searchCall{st, kw, req})
	if s.err != nil {
		return repository.Page[dto.ArticleDTO]{}, s.err
	}
	p := s.page
	p.Number, p.Size, p.Sort = req.Page, req.Size, req.Sort
	return p, nil
}

func (s *stubService) SearchArticlesViaHashtag(_ context.Context, hashtag string, req repository.PageRequest) (repository.Page[dto.ArticleDTO], error) {
	s.hashtagArgs = append(s.hashtagArgs, hashtag)
	if s.err != nil {
		return repository.Page[dto.ArticleDTO]{}, s.err
	}
	if hashtag == "" {
		return repository.EmptyPage[dto.ArticleDTO](req), nil
	}
	p := s.page
	p.Number, p.Size, p.Sort = req.Page, req.Size, req.Sort
	return p, nil
}

func (s *stubService) GetArticleWithComments(context.Context, int64) (dto.ArticleWithCommentsDTO, error) {
	return s.article, s.err
}

func (s *stubService) GetArticle(context.Context, int64) (dto.ArticleDTO, error) {
	return s.article.ArticleDTO, s.err
}

func (s *stubService) GetArticleCount(context.Context) (int64, error) { return s.count, nil }

func (s *stubService) GetHashtags(context.Context) ([]string, error) { return s.hashtags, nil }

func (s *stubService) CountComments(context.Context, []int64) (map[int64]int64, error) {
	return s.counts, s.countErr
}

func (s *stubService) SaveArticle(_ context.Context, actor string, d dto.ArticleDTO) (int64, error) {
	s.savedBy = append(s.savedBy, actor)
	s.saved = append(s.saved, d)
	return s.savedID, s.saveErr
}

func (s *stubService) UpdateArticle(_ context.Context, actor string, id int64, u dto.ArticleUpdateDTO) error {
	s.updates = append(s.updates, updateCall{actor, id, u})
	return s.saveErr
}

func (s *stubService) DeleteArticle(_ context.Context, id int64, userID string) error {
	s.deletes = append(s.deletes, [2]any{id, userID})
	return s.err
}

var created = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func sampleArticle(id int64, owner, title string) dto.ArticleDTO {
	return dto.ArticleDTO{
		ID:          id,
		UserAccount: dto.UserAccountDTO{UserID: owner, Nickname: strings.ToUpper(owner)},
		Title:       title,
		Content:     "body of " + title,
		Hashtag:     strPtr("#go"),
		AuditDTO:    dto.AuditDTO{CreatedAt: created, CreatedBy: owner, ModifiedAt: created, ModifiedBy: owner},
	}
}

func samplePage(n int, total int64) repository.Page[dto.ArticleDTO] {
	content := make([]dto.ArticleDTO, 0, n)
	for i := 1; i <= n; i++ {
		content = append(content, sampleArticle(int64(i), "uno", "title "+string(rune('a'+i-1))))
	}
	return repository.Page[dto.ArticleDTO]{Content: content, TotalElements: total}
}

// newServer mounts the article pages. A non-empty userID signs the request in.
func newServer(svc article.Service, userID string) http.Handler {
	mux := http.NewServeMux()
	article.Register(mux, article.Handler{
		Svc:        svc,
		View:       view.MustNew(nil),
		Pagination: pagination.DefaultConfig(),
	})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" {
			r = r.WithContext(auth.WithPrincipal(r.Context(), auth.Principal{UserID: userID, Nickname: strings.ToUpper(userID)}))
		}
		mux.ServeHTTP(w, r)
	})
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}
