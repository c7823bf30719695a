package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validArticle() Article {
	return Article{
		UserAccount: UserAccount{UserID: "heechan", Nickname: "hee"},
		Title:       "new article",
		Content:     "new content",
		Hashtag:     strPtr("#java"),
	}
}

func TestArticle_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(a *Article)
		wantField string
	}{
		{name: "valid", mutate: func(a *Article) {}},
		{name: "nil hashtag is allowed", mutate: func(a *Article) { a.Hashtag = nil }},
		{name: "blank title", mutate: func(a *Article) { a.Title = "  " }, wantField: "title"},
		{name: "long title", mutate: func(a *Article) { a.Title = strings.Repeat("a", MaxTitleLength+1) }, wantField: "title"},
		{name: "empty content", mutate: func(a *Article) { a.Content = "" }, wantField: "content"},
		{name: "long content", mutate: func(a *Article) { a.Content = strings.Repeat("a", MaxContentLength+1) }, wantField: "content"},
		{name: "long hashtag", mutate: func(a *Article) { a.Hashtag = strPtr(strings.Repeat("#", MaxHashtagLength+1)) }, wantField: "hashtag"},
		{name: "korean title at the limit", mutate: func(a *Article) { a.Title = strings.Repeat("가", MaxTitleLength) }},
		{name: "korean title over the limit", mutate: func(a *Article) { a.Title = strings.Repeat("가", MaxTitleLength+1) }, wantField: "title"},
		{name: "korean content at the limit", mutate: func(a *Article) { a.Content = strings.Repeat("글", MaxContentLength) }},
		{name: "korean hashtag at the limit", mutate: func(a *Article) { a.Hashtag = strPtr("#" + strings.Repeat("자", MaxHashtagLength-1)) }},
		{name: "missing owner", mutate: func(a *Article) { a.UserAccount = UserAccount{} }, wantField: "userId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArticle()
			tt.mutate(&a)
			err := a.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			ve, ok := AsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestArticle_IsOwnedBy(t *testing.T) {
	a := validArticle()
	assert.True(t, a.IsOwnedBy("heechan"))
	assert.False(t, a.IsOwnedBy("someone"))
	assert.False(t, a.IsOwnedBy(""))

	var orphan Article
	assert.False(t, orphan.IsOwnedBy(""))
}

func TestArticle_HashtagValue(t *testing.T) {
	a := validArticle()
	assert.Equal(t, "#java", a.HashtagValue())
	a.Hashtag = nil
	assert.Equal(t, "", a.HashtagValue())
}

func TestAudit_Stamp(t *testing.T) {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	modified := created.Add(time.Hour)

	var audit Audit
	audit.Stamp("heechan", created)
	assert.Equal(t, created, audit.CreatedAt)
	assert.Equal(t, "heechan", audit.CreatedBy)
	assert.Equal(t, created, audit.ModifiedAt)

	audit.Stamp("other", modified)
	assert.Equal(t, created, audit.CreatedAt)
	assert.Equal(t, "heechan", audit.CreatedBy)
	assert.Equal(t, modified, audit.ModifiedAt)
	assert.Equal(t, "other", audit.ModifiedBy)
}

func TestArticleComment_Validate(t *testing.T) {
	ok := ArticleComment{ArticleID: 1, Content: "nice", UserAccount: UserAccount{UserID: "heechan"}}
	assert.NoError(t, ok.Validate())
	assert.True(t, ok.IsWrittenBy("heechan"))
	assert.False(t, ok.IsWrittenBy("other"))

	noArticle := ok
	noArticle.ArticleID = 0
	ve, isVE := AsValidationError(noArticle.Validate())
	require.True(t, isVE)
	assert.Equal(t, "articleId", ve.Field)

	blank := ok
	blank.Content = "\t"
	ve, isVE = AsValidationError(blank.Validate())
	require.True(t, isVE)
	assert.Equal(t, "content", ve.Field)

	long := ok
	long.Content = strings.Repeat("x", MaxCommentLength+1)
	assert.Error(t, long.Validate())

	korean := ok
	korean.Content = strings.Repeat("댓", MaxCommentLength)
	assert.NoError(t, korean.Validate())
	korean.Content += "글"
	assert.Error(t, korean.Validate())
}
