package article_test

import (
	"context"
	"sort"
	"strings"

	"project-board/internal/domain/entity"
	"project-board/internal/repository"
)

/* ───────── stubs ───────── */

// stubArticles is an in-memory ArticleRepository that records every call.
type stubArticles struct {
	data   map[int64]*entity.Article
	nextID int64
	calls  []string
	err    error
}

func newStubArticles(articles ...entity.Article) *stubArticles {
	s := &stubArticles{data: map[int64]*entity.Article{}, nextID: 1}
	for i := range articles {
		a := articles[i]
		s.data[a.ID] = &a
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	return s
}

func (s *stubArticles) page(name string, req repository.PageRequest, keep func(a *entity.Article) bool) (repository.Page[entity.Article], error) {
	s.calls = append(s.calls, name)
	if s.err != nil {
		return repository.Page[entity.Article]{}, s.err
	}
	var out []entity.Article
	for _, a := range s.sorted() {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return repository.NewPage(out, req, int64(len(out))), nil
}

func (s *stubArticles) sorted() []*entity.Article {
	out := make([]*entity.Article, 0, len(s.data))
	for _, a := range s.data {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *stubArticles) FindByID(_ context.Context, id int64) (*entity.Article, error) {
	s.calls = append(s.calls, "FindByID")
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *stubArticles) FindAll(_ context.Context, req repository.PageRequest) (repository.Page[entity.Article], error) {
	return s.page("FindAll", req, func(*entity.Article) bool { return true })
}

func (s *stubArticles) FindByTitleContaining(_ context.Context, v string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	return s.page("FindByTitleContaining:"+v, req, func(a *entity.Article) bool { return strings.Contains(a.Title, v) })
}

func (s *stubArticles) FindByContentContaining(_ context.Context, v string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	return s.page("FindByContentContaining:"+v, req, func(a *entity.Article) bool { return strings.Contains(a.Content, v) })
}

func (s *stubArticles) FindByUserIDContaining(_ context.Context, v string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	return s.page("FindByUserIDContaining:"+v, req, func(a *entity.Article) bool { return strings.Contains(a.UserAccount.UserID, v) })
}

func (s *stubArticles) FindByNicknameContaining(_ context.Context, v string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	return s.page("FindByNicknameContaining:"+v, req, func(a *entity.Article) bool { return strings.Contains(a.UserAccount.Nickname, v) })
}

func (s *stubArticles) FindByHashtag(_ context.Context, v string, req repository.PageRequest) (repository.Page[entity.Article], error) {
	return s.page("FindByHashtag:"+v, req, func(a *entity.Article) bool { return a.Hashtag != nil && *a.Hashtag == v })
}

func (s *stubArticles) FindAllDistinctHashtags(_ context.Context) ([]string, error) {
	s.calls = append(s.calls, "FindAllDistinctHashtags")
	if s.err != nil {
		return nil, s.err
	}
	seen := map[string]bool{}
	out := []string{}
	for _, a := range s.sorted() {
		if a.Hashtag != nil && *a.Hashtag != "" && !seen[*a.Hashtag] {
			seen[*a.Hashtag] = true
			out = append(out, *a.Hashtag)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *stubArticles) Save(_ context.Context, a *entity.Article) error {
	s.calls = append(s.calls, "Save")
	if s.err != nil {
		return s.err
	}
	if a.ID == 0 {
		a.ID = s.nextID
		s.nextID++
	}
	cp := *a
	s.data[a.ID] = &cp
	return nil
}

func (s *stubArticles) DeleteByIDAndUserID(_ context.Context, id int64, userID string) (int64, error) {
	s.calls = append(s.calls, "DeleteByIDAndUserID")
	if s.err != nil {
		return 0, s.err
	}
	a, ok := s.data[id]
	if !ok || a.UserAccount.UserID != userID {
		return 0, nil
	}
	delete(s.data, id)
	return 1, nil
}

func (s *stubArticles) Count(_ context.Context) (int64, error) {
	s.calls = append(s.calls, "Count")
	return int64(len(s.data)), s.err
}

type stubComments struct {
	byArticle map[int64][]entity.ArticleComment
	err       error
}

func (s *stubComments) FindByID(context.Context, int64) (*entity.ArticleComment, error) {
	return nil, s.err
}

func (s *stubComments) FindByArticleID(_ context.Context, articleID int64) ([]entity.ArticleComment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]entity.ArticleComment{}, s.byArticle[articleID]...), nil
}

func (s *stubComments) Save(context.Context, *entity.ArticleComment) error { return s.err }

func (s *stubComments) DeleteByID(context.Context, int64) (int64, error) { return 0, s.err }

func (s *stubComments) Count(context.Context) (int64, error) { return 0, s.err }

func (s *stubComments) CountByArticleIDs(_ context.Context, ids []int64) (map[int64]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := map[int64]int64{}
	for _, id := range ids {
		if n := len(s.byArticle[id]); n > 0 {
			out[id] = int64(n)
		}
	}
	return out, nil
}

type stubUsers struct {
	data map[string]entity.UserAccount
	err  error
}

func newStubUsers(users ...entity.UserAccount) *stubUsers {
	s := &stubUsers{data: map[string]entity.UserAccount{}}
	for _, u := range users {
		s.data[u.UserID] = u
	}
	return s
}

func (s *stubUsers) FindByUserID(_ context.Context, userID string) (*entity.UserAccount, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.data[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *stubUsers) Save(_ context.Context, u *entity.UserAccount) error {
	if s.err != nil {
		return s.err
	}
	s.data[u.UserID] = *u
	return nil
}

func (s *stubUsers) Count(context.Context) (int64, error) { return int64(len(s.data)), s.err }

// stubTx hands the same repositories to every unit of work.
type stubTx struct {
	repos    repository.Repositories
	calls    int
	readOnly []bool
}

func (t *stubTx) Do(_ context.Context, readOnly bool, fn func(repository.Repositories) error) error {
	t.calls++
	t.readOnly = append(t.readOnly, readOnly)
	return fn(t.repos)
}
