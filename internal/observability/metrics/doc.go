// Package metrics provides the Prometheus metrics registry and recording helpers.
//
// It centralizes:
//   - HTTP request metrics (duration, count, size)
//   - Board metrics (article, comment, user and hashtag totals, mutation outcomes, logins)
//   - Database pool and query metrics
//
// All metrics register with the Prometheus default registry and are exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "project-board/internal/observability/metrics"
//
//	func saveArticle(ctx context.Context) error {
//	    // ... persist ...
//	    metrics.RecordArticleMutation(metrics.OpCreate, metrics.OutcomeApplied)
//	    return nil
//	}
//
// Statement durations (db_query_duration_seconds) are recorded by the
// circuit breaker wrapping the connection pool, labelled query, query_row
// or exec.
package metrics
