package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-board/internal/domain/entity"
	"project-board/internal/infra/adapter/persistence/sqlite"
)

func TestArticleCommentRepo_SaveFindDelete(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, conn, "heechan", "hee")
	a := seedArticle(t, conn, owner, "t", "c", nil, baseTime)
	repo := sqlite.NewArticleCommentRepo(conn)

	later := entity.ArticleComment{ArticleID: a.ID, UserAccount: owner, Content: "second", Audit: audit("heechan", baseTime.Add(time.Minute))}
	earlier := entity.ArticleComment{ArticleID: a.ID, UserAccount: owner, Content: "first", Audit: audit("heechan", baseTime)}
	require.NoError(t, repo.Save(ctx, &later))
	require.NoError(t, repo.Save(ctx, &earlier))

	list, err := repo.FindByArticleID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "second", list[1].Content)
	assert.Equal(t, "hee", list[0].UserAccount.Nickname)

	got, err := repo.FindByID(ctx, later.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ArticleID)

	got.Content = "edited"
	got.ModifiedBy = "heechan"
	require.NoError(t, repo.Save(ctx, got))
	edited, err := repo.FindByID(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", edited.Content)

	n, err := repo.DeleteByID(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteByID(ctx, later.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	missing, err := repo.FindByID(ctx, later.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestArticleCommentRepo_FindByArticleID_Empty(t *testing.T) {
	conn := newTestDB(t)

	list, err := sqlite.NewArticleCommentRepo(conn).FindByArticleID(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestArticleCommentRepo_Save_UnknownArticle(t *testing.T) {
	conn := newTestDB(t)
	owner := seedUser(t, conn, "heechan", "hee")

	c := entity.ArticleComment{ArticleID: 404, UserAccount: owner, Content: "x", Audit: audit("heechan", baseTime)}
	err := sqlite.NewArticleCommentRepo(conn).Save(context.Background(), &c)
	assert.Error(t, err)
}

func TestArticleCommentRepo_CountByArticleIDs(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, conn, "heechan", "hee")
	a1 := seedArticle(t, conn, owner, "t1", "c", nil, baseTime)
	a2 := seedArticle(t, conn, owner, "t2", "c", nil, baseTime)
	repo := sqlite.NewArticleCommentRepo(conn)
	for i := 0; i < 3; i++ {
		c := entity.ArticleComment{ArticleID: a1.ID, UserAccount: owner, Content: "c", Audit: audit("heechan", baseTime)}
		require.NoError(t, repo.Save(ctx, &c))
	}

	got, err := repo.CountByArticleIDs(ctx, []int64{a1.ID, a2.ID})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int64{a1.ID: 3}, got)

	empty, err := repo.CountByArticleIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
