package observability

import (
	"context"
	"net/http"

	"go-chi-calculator/internal/handlers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Failure describes an error being returned to an HTTP client.
type Failure struct {
	Operation string
	Message   string
	Status    int
	Err       error
}

// RecordError marks span as failed, bumps counter, logs with trace context
// and writes the JSON error response.
func RecordError(ctx context.Context, w http.ResponseWriter, span trace.Span, counter metric.Int64Counter, f Failure) {
	span.RecordError(f.Err)
	span.SetStatus(codes.Error, f.Message)

	counter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", f.Operation)))

	level := zap.ErrorLevel
	if f.Status < http.StatusInternalServerError {
		level = zap.WarnLevel
	}
	if ce := LoggerWithTrace(ctx).Check(level, f.Message); ce != nil {
		ce.Write(
			zap.String("operation", f.Operation),
			zap.Int("status", f.Status),
			zap.Error(f.Err),
			zap.String("request_id", RequestIDFromContext(ctx)),
		)
	}

	handlers.WriteError(w, f.Status, f.Message)
}
