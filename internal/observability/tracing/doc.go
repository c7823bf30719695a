// Package tracing wires OpenTelemetry into the board.
//
// Setup installs an SDK tracer provider that samples by trace id ratio and
// hands finished spans to the application logger. Middleware starts one
// server span per request and continues W3C trace context from the caller.
package tracing
