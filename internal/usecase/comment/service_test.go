package comment_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/repository"
	commentUC "project-board/internal/usecase/comment"
)

/* ───────── stubs ───────── */

type stubArticles struct {
	repository.ArticleRepository // unused methods panic
	ids                          map[int64]bool
}

func (s *stubArticles) FindByID(_ context.Context, id int64) (*entity.Article, error) {
	if !s.ids[id] {
		return nil, nil
	}
	return &entity.Article{ID: id}, nil
}

type stubComments struct {
	data   map[int64]entity.ArticleComment
	nextID int64
	err    error
}

func (s *stubComments) FindByID(_ context.Context, id int64) (*entity.ArticleComment, error) {
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *stubComments) FindByArticleID(_ context.Context, articleID int64) ([]entity.ArticleComment, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []entity.ArticleComment{}
	for _, c := range s.data {
		if c.ArticleID == articleID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *stubComments) Save(_ context.Context, c *entity.ArticleComment) error {
	if s.err != nil {
		return s.err
	}
	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	}
	s.data[c.ID] = *c
	return nil
}

func (s *stubComments) DeleteByID(_ context.Context, id int64) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if _, ok := s.data[id]; !ok {
		return 0, nil
	}
	delete(s.data, id)
	return 1, nil
}

func (s *stubComments) Count(context.Context) (int64, error) { return int64(len(s.data)), s.err }

func (s *stubComments) CountByArticleIDs(context.Context, []int64) (map[int64]int64, error) {
	return nil, s.err
}

type stubUsers struct {
	repository.UserAccountRepository
	data map[string]entity.UserAccount
}

func (s *stubUsers) FindByUserID(_ context.Context, userID string) (*entity.UserAccount, error) {
	u, ok := s.data[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type stubTx struct{ repos repository.Repositories }

func (t *stubTx) Do(_ context.Context, _ bool, fn func(repository.Repositories) error) error {
	return fn(t.repos)
}

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newService() (*commentUC.Service, *stubComments) {
	comments := &stubComments{data: map[int64]entity.ArticleComment{}}
	tx := &stubTx{repos: repository.Repositories{
		Articles:        &stubArticles{ids: map[int64]bool{1: true}},
		ArticleComments: comments,
		UserAccounts: &stubUsers{data: map[string]entity.UserAccount{
			"heechan": {ID: 1, UserID: "heechan", Nickname: "hee"},
			"uno":     {ID: 2, UserID: "uno"},
		}},
	}}
	return &commentUC.Service{Tx: tx, Now: func() time.Time { return now }}, comments
}

func newComment(articleID int64, userID, content string) dto.ArticleCommentDTO {
	return dto.ArticleCommentDTO{
		ArticleID:   articleID,
		UserAccount: dto.UserAccountDTO{UserID: userID},
		Content:     content,
	}
}

/* ───────── tests ───────── */

func TestService_SaveArticleComment(t *testing.T) {
	svc, comments := newService()

	id, err := svc.SaveArticleComment(context.Background(), "heechan", newComment(1, "heechan", "test comment"))
	require.NoError(t, err)

	saved := comments.data[id]
	assert.Equal(t, int64(1), saved.ArticleID)
	assert.Equal(t, "test comment", saved.Content)
	assert.Equal(t, "hee", saved.UserAccount.Nickname)
	assert.Equal(t, now, saved.CreatedAt)
	assert.Equal(t, "heechan", saved.CreatedBy)
}

func TestService_SaveArticleComment_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      dto.ArticleCommentDTO
		wantErr error
		wantMsg string
	}{
		{name: "unknown article", in: newComment(404, "heechan", "hi"), wantErr: commentUC.ErrArticleNotFound, wantMsg: "articleId: 404"},
		{name: "unknown author", in: newComment(1, "ghost", "hi"), wantErr: commentUC.ErrInvalidOwner, wantMsg: "ghost"},
		{name: "blank content", in: newComment(1, "heechan", "  "), wantErr: commentUC.ErrEmptyContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, comments := newService()

			_, err := svc.SaveArticleComment(context.Background(), "heechan", tt.in)

			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.Empty(t, comments.data)
		})
	}
}

func TestService_SaveArticleComment_TooLong(t *testing.T) {
	svc, _ := newService()
	long := make([]byte, entity.MaxCommentLength+1)
	for i := range long {
		long[i] = 'x'
	}

	_, err := svc.SaveArticleComment(context.Background(), "heechan", newComment(1, "heechan", string(long)))

	_, ok := entity.AsValidationError(err)
	assert.True(t, ok)
}

func TestService_SearchArticleComments_Ordered(t *testing.T) {
	svc, comments := newService()
	comments.data[5] = entity.ArticleComment{ID: 5, ArticleID: 1, Content: "later", Audit: entity.Audit{CreatedAt: now.Add(time.Minute)}}
	comments.data[9] = entity.ArticleComment{ID: 9, ArticleID: 1, Content: "first", Audit: entity.Audit{CreatedAt: now}}
	comments.data[3] = entity.ArticleComment{ID: 3, ArticleID: 2, Content: "other article", Audit: entity.Audit{CreatedAt: now}}

	got, err := svc.SearchArticleComments(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "later", got[1].Content)

	none, err := svc.SearchArticleComments(context.Background(), 404)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestService_DeleteArticleComment(t *testing.T) {
	svc, comments := newService()
	comments.data[1] = entity.ArticleComment{ID: 1, ArticleID: 1}

	require.NoError(t, svc.DeleteArticleComment(context.Background(), 1))
	assert.Empty(t, comments.data)

	assert.NoError(t, svc.DeleteArticleComment(context.Background(), 1))
}

func TestService_DeleteOwnArticleComment(t *testing.T) {
	svc, comments := newService()
	comments.data[1] = entity.ArticleComment{ID: 1, ArticleID: 1, UserAccount: entity.UserAccount{UserID: "heechan"}}

	require.NoError(t, svc.DeleteOwnArticleComment(context.Background(), 1, "uno"))
	assert.Contains(t, comments.data, int64(1))

	require.NoError(t, svc.DeleteOwnArticleComment(context.Background(), 1, "heechan"))
	assert.NotContains(t, comments.data, int64(1))

	assert.NoError(t, svc.DeleteOwnArticleComment(context.Background(), 1, "heechan"))
}

func TestService_UpdateArticleComment(t *testing.T) {
	svc, comments := newService()
	comments.data[1] = entity.ArticleComment{
		ID: 1, ArticleID: 1, Content: "old",
		UserAccount: entity.UserAccount{UserID: "heechan"},
		Audit:       entity.Audit{CreatedAt: now.Add(-time.Hour), CreatedBy: "heechan"},
	}

	require.NoError(t, svc.UpdateArticleComment(context.Background(), "uno", 1, "hijack"))
	assert.Equal(t, "old", comments.data[1].Content)

	require.NoError(t, svc.UpdateArticleComment(context.Background(), "heechan", 1, "new"))
	assert.Equal(t, "new", comments.data[1].Content)
	assert.Equal(t, now, comments.data[1].ModifiedAt)
	assert.Equal(t, now.Add(-time.Hour), comments.data[1].CreatedAt)

	assert.NoError(t, svc.UpdateArticleComment(context.Background(), "heechan", 404, "new"))
	assert.ErrorIs(t, svc.UpdateArticleComment(context.Background(), "heechan", 1, ""), commentUC.ErrEmptyContent)
}

func TestService_StoreError(t *testing.T) {
	svc, comments := newService()
	comments.err = errors.New("db down")

	_, err := svc.SearchArticleComments(context.Background(), 1)
	assert.Error(t, err)
	assert.Error(t, svc.DeleteArticleComment(context.Background(), 1))
}
