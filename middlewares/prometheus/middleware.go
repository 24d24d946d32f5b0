// Package prometheus records statement latency in a prometheus summary
// labeled by statement type and table.
package prometheus

import (
	"context"
	"time"

	"github.com/gopsql/balala"
	"github.com/prometheus/client_golang/prometheus"
)

type MiddlewareBuilder struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string
	// Registerer defaults to prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

func (m MiddlewareBuilder) Build() balala.Middleware {
	vector := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: m.Namespace,
		Subsystem: m.Subsystem,
		Name:      m.Name,
		Help:      m.Help,
		Objectives: map[float64]float64{
			0.5:   0.01,
			0.75:  0.01,
			0.90:  0.01,
			0.99:  0.001,
			0.999: 0.0001,
		},
	}, []string{"type", "table"})
	registerer := m.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	registerer.MustRegister(vector)
	return func(next balala.Handler) balala.Handler {
		return func(ctx context.Context, stmt *balala.Statement) *balala.Outcome {
			start := time.Now()
			defer func() {
				vector.WithLabelValues(string(stmt.Type), stmt.Table).
					Observe(float64(time.Since(start).Milliseconds()))
			}()
			return next(ctx, stmt)
		}
	}
}
