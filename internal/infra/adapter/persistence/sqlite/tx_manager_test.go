package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-board/internal/dbx"
	"project-board/internal/domain/entity"
	"project-board/internal/infra/adapter/persistence/sqlite"
	"project-board/internal/repository"
)

func TestTxManager_CommitAndRollback(t *testing.T) {
	conn := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, conn, "heechan", "hee")
	m := sqlite.NewTxManager(conn, nil)

	err := m.Do(ctx, false, func(repos repository.Repositories) error {
		a := entity.Article{UserAccount: owner, Title: "kept", Content: "c", Audit: audit("heechan", baseTime)}
		return repos.Articles.Save(ctx, &a)
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = m.Do(ctx, false, func(repos repository.Repositories) error {
		a := entity.Article{UserAccount: owner, Title: "dropped", Content: "c", Audit: audit("heechan", baseTime)}
		if err := repos.Articles.Save(ctx, &a); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	err = m.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		count, err = repos.Articles.Count(ctx)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTxManager_Guard(t *testing.T) {
	conn := newTestDB(t)
	calls := 0
	m := sqlite.NewTxManager(conn, func(tx dbx.DBTX) dbx.DBTX {
		calls++
		return tx
	})

	err := m.Do(context.Background(), true, func(repos repository.Repositories) error {
		_, err := repos.UserAccounts.Count(context.Background())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
