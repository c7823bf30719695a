package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"project-board/internal/domain/entity"
	"project-board/internal/infra/adapter/persistence/sqlite"
	"project-board/internal/infra/db"
	"project-board/internal/repository"
)

var baseTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, db.Options{
		Driver: db.DriverSQLitePure,
		DSN:    ":memory:",
		Pool:   db.DefaultConnectionConfig(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(ctx, conn, db.DialectSQLite))
	return conn
}

func audit(actor string, at time.Time) entity.Audit {
	return entity.Audit{CreatedAt: at, CreatedBy: actor, ModifiedAt: at, ModifiedBy: actor}
}

func seedUser(t *testing.T, conn *sql.DB, userID, nickname string) entity.UserAccount {
	t.Helper()
	u := entity.UserAccount{
		UserID:       userID,
		PasswordHash: "hash",
		Email:        userID + "@example.com",
		Nickname:     nickname,
		Audit:        audit(userID, baseTime),
	}
	require.NoError(t, sqlite.NewUserAccountRepo(conn).Save(context.Background(), &u))
	return u
}

func seedArticle(t *testing.T, conn *sql.DB, owner entity.UserAccount, title, content string, hashtag *string, at time.Time) entity.Article {
	t.Helper()
	a := entity.Article{
		UserAccount: owner,
		Title:       title,
		Content:     content,
		Hashtag:     hashtag,
		Audit:       audit(owner.UserID, at),
	}
	require.NoError(t, sqlite.NewArticleRepo(conn).Save(context.Background(), &a))
	return a
}

func firstPage(size int) repository.PageRequest {
	return repository.PageRequest{Page: 0, Size: size}
}

func ids(articles []entity.Article) []int64 {
	out := make([]int64, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}
