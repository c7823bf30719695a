// Package worker runs the board's scheduled background jobs.
//
// The only job is StatsRefresher: on a cron schedule it counts articles,
// comments, accounts and distinct hashtags in one read-only transaction and
// publishes them as Prometheus gauges alongside the connection pool stats.
package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"project-board/internal/handler/http/respond"
	"project-board/internal/observability/metrics"
	"project-board/internal/repository"
	"project-board/internal/resilience/retry"
	"project-board/pkg/config"
)

// PoolStatser reports connection pool usage. *sql.DB satisfies it.
type PoolStatser interface {
	Stats() sql.DBStats
}

// StatsRefresher refreshes the board gauges.
type StatsRefresher struct {
	Tx      repository.TxManager
	Pool    PoolStatser // optional
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics *Metrics // optional
	// Retry governs transient connection failures; zero means retry.DBConfig().
	Retry retry.Config

	now func() time.Time
}

func (r *StatsRefresher) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *StatsRefresher) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// Refresh counts the board once and updates the gauges. The gauges are left
// untouched when any count fails.
func (r *StatsRefresher) Refresh(ctx context.Context) (metrics.BoardTotals, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	start := r.clock()

	retryCfg := r.Retry
	if retryCfg.MaxAttempts <= 0 {
		retryCfg = retry.DBConfig()
	}

	var totals metrics.BoardTotals
	err := retry.WithBackoff(ctx, retryCfg, func() error {
		return r.Tx.Do(ctx, true, func(repos repository.Repositories) error {
			var err error
			if totals.Articles, err = repos.Articles.Count(ctx); err != nil {
				return fmt.Errorf("count articles: %w", err)
			}
			if totals.ArticleComments, err = repos.ArticleComments.Count(ctx); err != nil {
				return fmt.Errorf("count article comments: %w", err)
			}
			if totals.UserAccounts, err = repos.UserAccounts.Count(ctx); err != nil {
				return fmt.Errorf("count user accounts: %w", err)
			}
			tags, err := repos.Articles.FindAllDistinctHashtags(ctx)
			if err != nil {
				return fmt.Errorf("list hashtags: %w", err)
			}
			totals.Hashtags = len(tags)
			return nil
		})
	})

	elapsed := r.clock().Sub(start)
	metrics.RecordStatsRefresh(err == nil)
	r.Metrics.observe(elapsed, err == nil, r.clock())
	if r.Pool != nil {
		st := r.Pool.Stats()
		metrics.UpdateDBConnectionStats(st.InUse, st.Idle)
	}
	if err != nil {
		return metrics.BoardTotals{}, fmt.Errorf("refresh board stats: %w", err)
	}

	metrics.UpdateBoardTotals(totals)
	r.logger().Debug("board stats refreshed",
		slog.Int64("articles", totals.Articles),
		slog.Int64("article_comments", totals.ArticleComments),
		slog.Int64("user_accounts", totals.UserAccounts),
		slog.Int("hashtags", totals.Hashtags),
		slog.Duration("duration", elapsed))
	return totals, nil
}

// Run refreshes once, then on every tick of spec until ctx is cancelled.
// Overlapping ticks are skipped. Run returns after the running job finishes.
func (r *StatsRefresher) Run(ctx context.Context, spec string) error {
	schedule, err := config.ParseCronSpec(spec)
	if err != nil {
		return fmt.Errorf("stats refresher: invalid cron spec %q: %w", spec, err)
	}

	logger := r.logger()
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLogger{logger}),
		cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
	)
	c.Schedule(schedule, cron.FuncJob(func() { r.runOnce(ctx) }))

	r.runOnce(ctx)
	c.Start()
	logger.Info("stats refresher started", slog.String("schedule", spec))

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("stats refresher stopped")
	return nil
}

func (r *StatsRefresher) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := r.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
		r.logger().Error("stats refresh failed", slog.String("error", respond.SanitizeError(err)))
	}
}

// cronLogger routes cron's logging into slog. Info is debug level since
// cron logs every schedule and wake-up.
type cronLogger struct{ l *slog.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
