package main

import (
	"context"
	"go/format"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"project-board/internal/infra/adapter/persistence/sqlite"
	"project-board/internal/infra/db"
	"project-board/internal/observability/logging"
	"project-board/internal/repository"
	accountUC "project-board/internal/usecase/account"
)

func newTx(t *testing.T) repository.TxManager {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, db.Options{Driver: db.DriverSQLitePure, DSN: ":memory:", Pool: db.DefaultConnectionConfig()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(ctx, conn, db.DialectSQLite))
	return sqlite.NewTxManager(conn, nil)
}

func TestSeedBoard(t *testing.T) {
	ctx := context.Background()
	tx := newTx(t)
	logger := logging.NewConsoleLogger(io.Discard, "error", "test")

	res, err := seedBoard(ctx, tx, bcrypt.MinCost, logger)
	require.NoError(t, err)
	assert.Equal(t, seedResult{Users: 3, Articles: 5, Comments: 4}, res)

	var hashtags []string
	require.NoError(t, tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		hashtags, err = repos.Articles.FindAllDistinctHashtags(ctx)
		return err
	}))
	assert.ElementsMatch(t, []string{"#notice", "#go", "#java"}, hashtags)

	accounts := &accountUC.Service{Tx: tx}
	u, err := accounts.Authenticate(ctx, "uno", seedPassword)
	require.NoError(t, err)
	assert.Equal(t, "Uno", u.Nickname)
}

func TestSeedBoard_SecondRunAddsNothing(t *testing.T) {
	ctx := context.Background()
	tx := newTx(t)
	logger := logging.NewConsoleLogger(io.Discard, "error", "test")

	_, err := seedBoard(ctx, tx, bcrypt.MinCost, logger)
	require.NoError(t, err)

	res, err := seedBoard(ctx, tx, bcrypt.MinCost, logger)
	require.NoError(t, err)
	assert.Equal(t, seedResult{}, res)
}

func TestLoadConfig_SkipsServerChecks(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:board.db")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestSeedSourceIsFormatted(t *testing.T) {
	src, err := os.ReadFile("seed.go")
	require.NoError(t, err)

	formatted, err := format.Source(src)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(src), "seed.go is not gofmt-formatted")
}
