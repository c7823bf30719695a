package metrics

import "time"

// Mutation operations.
const (
	OpCreate        = "create"
	OpUpdate        = "update"
	OpDelete        = "delete"
	OpCommentCreate = "comment_create"
	OpCommentUpdate = "comment_update"
	OpCommentDelete = "comment_delete"
)

// Mutation outcomes. Only OutcomeApplied changes stored data.
const (
	OutcomeApplied       = "applied"
	OutcomeNotFound      = "not_found"
	OutcomeOwnerMismatch = "owner_mismatch"
	OutcomeNoMatch       = "no_match" // delete matched no row
	OutcomeFailed        = "failed"
)

// RecordArticleMutation counts one article or comment write attempt.
func RecordArticleMutation(op, outcome string) {
	ArticleMutationsTotal.WithLabelValues(op, outcome).Inc()
}

// RecordLoginAttempt counts one login attempt.
func RecordLoginAttempt(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordStatsRefresh counts one refresher run. Status is "success" or "failure".
func RecordStatsRefresh(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	StatsRefreshTotal.WithLabelValues(status).Inc()
}

// BoardTotals is a snapshot of the board's row counts.
type BoardTotals struct {
	Articles        int64
	ArticleComments int64
	UserAccounts    int64
	Hashtags        int
}

// UpdateBoardTotals sets every board gauge from one snapshot.
// It should be called periodically to reflect the current state.
func UpdateBoardTotals(t BoardTotals) {
	ArticlesTotal.Set(float64(t.Articles))
	ArticleCommentsTotal.Set(float64(t.ArticleComments))
	UserAccountsTotal.Set(float64(t.UserAccounts))
	HashtagsTotal.Set(float64(t.Hashtags))
}

// RecordDBQuery records the duration of one database statement.
// Operation is the statement kind: "query", "query_row" or "exec".
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
