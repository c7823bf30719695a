// Package resilience groups the fault-tolerance helpers used around the
// database: a circuit breaker that stops hammering an unhealthy store and
// retry with exponential backoff for transient connection failures.
//
//	breaker := circuitbreaker.NewDBCircuitBreaker(db, circuitbreaker.DBConfig())
//	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
//	    return txManager.Do(ctx, true, countBoard)
//	})
//
// The stats refresher in internal/infra/worker retries its read-only count
// transaction this way.
package resilience
