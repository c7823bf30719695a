package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "project-board"

// Tracer returns the board's tracer from the current global provider.
//
//	ctx, span := tracing.Tracer().Start(ctx, "article.search")
//	defer span.End()
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
