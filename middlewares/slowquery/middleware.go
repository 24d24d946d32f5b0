// Package slowquery logs statements that take longer than a threshold.
package slowquery

import (
	"context"
	"fmt"
	"time"

	"github.com/gopsql/balala"
	"github.com/gopsql/logger"
)

type MiddlewareBuilder struct {
	threshold time.Duration
	logFunc   func(stmt *balala.Statement, elapsed time.Duration)
}

// NewMiddlewareBuilder logs statements slower than threshold with
// logger.Warning. Use LogFunc to log elsewhere.
func NewMiddlewareBuilder(threshold time.Duration, l logger.Logger) *MiddlewareBuilder {
	return &MiddlewareBuilder{
		threshold: threshold,
		logFunc: func(stmt *balala.Statement, elapsed time.Duration) {
			if l == nil {
				return
			}
			l.Warning(fmt.Sprintf("slow query (%s): %s", elapsed, stmt.SQL), stmt.Args)
		},
	}
}

func (m *MiddlewareBuilder) LogFunc(fn func(stmt *balala.Statement, elapsed time.Duration)) *MiddlewareBuilder {
	m.logFunc = fn
	return m
}

func (m MiddlewareBuilder) Build() balala.Middleware {
	return func(next balala.Handler) balala.Handler {
		return func(ctx context.Context, stmt *balala.Statement) *balala.Outcome {
			start := time.Now()
			defer func() {
				elapsed := time.Since(start)
				if elapsed < m.threshold {
					return
				}
				m.logFunc(stmt, elapsed)
			}()
			return next(ctx, stmt)
		}
	}
}
