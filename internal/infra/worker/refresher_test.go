package worker

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-board/internal/domain/entity"
	"project-board/internal/infra/adapter/persistence/sqlite"
	"project-board/internal/infra/db"
	"project-board/internal/observability/metrics"
	"project-board/internal/repository"
	"project-board/internal/resilience/retry"
)

func newBoard(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, db.Options{Driver: db.DriverSQLitePure, DSN: ":memory:", Pool: db.DefaultConnectionConfig()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(ctx, conn, db.DialectSQLite))

	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	audit := entity.Audit{CreatedAt: at, CreatedBy: "uno", ModifiedAt: at, ModifiedBy: "uno"}
	repos := sqlite.NewRepositories(conn)

	uno := entity.UserAccount{UserID: "uno", PasswordHash: "h", Email: "uno@example.com", Nickname: "Uno", Audit: audit}
	dos := entity.UserAccount{UserID: "dos", PasswordHash: "h", Email: "dos@example.com", Nickname: "Dos", Audit: audit}
	require.NoError(t, repos.UserAccounts.Save(ctx, &uno))
	require.NoError(t, repos.UserAccounts.Save(ctx, &dos))

	for i, tag := range []string{"#go", "#go", "#java"} {
		a := entity.Article{UserAccount: uno, Title: "t", Content: "c", Hashtag: &tag, Audit: audit}
		require.NoError(t, repos.Articles.Save(ctx, &a))
		if i == 0 {
			c := entity.ArticleComment{ArticleID: a.ID, UserAccount: dos, Content: "hi", Audit: audit}
			require.NoError(t, repos.ArticleComments.Save(ctx, &c))
		}
	}
	return conn
}

func TestRefresh(t *testing.T) {
	conn := newBoard(t)
	m := NewMetrics()
	m.MustRegister(prometheus.NewRegistry())
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	before := testutil.ToFloat64(metrics.StatsRefreshTotal.WithLabelValues("success"))

	r := &StatsRefresher{
		Tx:      sqlite.NewTxManager(conn, nil),
		Pool:    conn,
		Metrics: m,
		now:     func() time.Time { return now },
	}
	totals, err := r.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, metrics.BoardTotals{Articles: 3, ArticleComments: 1, UserAccounts: 2, Hashtags: 2}, totals)
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.ArticlesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ArticleCommentsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.UserAccountsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.HashtagsTotal))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StatsRefreshTotal.WithLabelValues("success")))
	assert.Equal(t, float64(now.Unix()), testutil.ToFloat64(m.LastSuccess))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}

type failingTx struct{ err error }

func (f failingTx) Do(context.Context, bool, func(repository.Repositories) error) error { return f.err }

func TestRefresh_FailureKeepsGauges(t *testing.T) {
	metrics.UpdateBoardTotals(metrics.BoardTotals{Articles: 7})
	before := testutil.ToFloat64(metrics.StatsRefreshTotal.WithLabelValues("failure"))
	m := NewMetrics()

	r := &StatsRefresher{Tx: failingTx{errors.New("database is locked")}, Metrics: m}
	_, err := r.Refresh(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh board stats")
	assert.Equal(t, 7.0, testutil.ToFloat64(metrics.ArticlesTotal))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.StatsRefreshTotal.WithLabelValues("failure")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.LastSuccess))
}

func TestRefresh_RetriesTransientFailures(t *testing.T) {
	fast := retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}

	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   bool
	}{
		{name: "bad conn then success", errs: []error{driver.ErrBadConn, nil}, wantCalls: 2},
		{name: "bad conn every time", errs: []error{driver.ErrBadConn, driver.ErrBadConn, driver.ErrBadConn}, wantCalls: 3, wantErr: true},
		{name: "non-transient error is not retried", errs: []error{errors.New("no such table: articles")}, wantCalls: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			tx := txFunc(func() error {
				err := tt.errs[calls]
				calls++
				return err
			})

			_, err := (&StatsRefresher{Tx: tx, Retry: fast}).Refresh(context.Background())

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRefresh_DefaultRetryConfig(t *testing.T) {
	calls := 0
	tx := txFunc(func() error {
		calls++
		if calls == 1 {
			return driver.ErrBadConn
		}
		return nil
	})

	_, err := (&StatsRefresher{Tx: tx}).Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRefresh_NilMetricsAndPool(t *testing.T) {
	r := &StatsRefresher{Tx: sqlite.NewTxManager(newBoard(t), nil), Timeout: time.Second}
	_, err := r.Refresh(context.Background())
	assert.NoError(t, err)
}

func TestRun_InvalidSpec(t *testing.T) {
	r := &StatsRefresher{Tx: failingTx{}}
	err := r.Run(context.Background(), "every now and then")
	assert.Error(t, err)
}

func TestRun_RefreshesImmediatelyAndStops(t *testing.T) {
	calls := make(chan struct{}, 4)
	tx := txFunc(func() error {
		calls <- struct{}{}
		return errors.New("count failed")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- (&StatsRefresher{Tx: tx}).Run(ctx, "@every 1h") }()

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("no refresh on start")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type txFunc func() error

func (f txFunc) Do(context.Context, bool, func(repository.Repositories) error) error { return f() }
