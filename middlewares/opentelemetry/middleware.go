// Package opentelemetry starts one span per statement.
package opentelemetry

import (
	"context"
	"fmt"

	"github.com/gopsql/balala"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gopsql/balala/middlewares/opentelemetry"

type MiddlewareBuilder struct {
	Tracer trace.Tracer
}

func (m MiddlewareBuilder) Build() balala.Middleware {
	if m.Tracer == nil {
		m.Tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	return func(next balala.Handler) balala.Handler {
		return func(ctx context.Context, stmt *balala.Statement) *balala.Outcome {
			// span name: SELECT-user
			spanCtx, span := m.Tracer.Start(ctx, fmt.Sprintf("%s-%s", stmt.Type, stmt.Table))
			defer span.End()
			// args are left out, they can be large
			span.SetAttributes(
				attribute.String("sql", stmt.SQL),
				attribute.String("table", stmt.Table),
				attribute.String("component", "balala"),
			)
			if len(stmt.Batch) > 0 {
				span.SetAttributes(attribute.Int("batch.size", len(stmt.Batch)))
			}
			out := next(spanCtx, stmt)
			if out.Err != nil {
				span.RecordError(out.Err)
			}
			return out
		}
	}
}
