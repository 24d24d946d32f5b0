package prometheus

import (
	"context"
	"testing"

	"github.com/gopsql/balala"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareBuilder_Build(t *testing.T) {
	registry := prometheus.NewRegistry()
	mw := MiddlewareBuilder{
		Namespace:  "balala",
		Subsystem:  "test",
		Name:       "sql_ms",
		Help:       "statement latency",
		Registerer: registry,
	}.Build()
	handler := mw(func(ctx context.Context, stmt *balala.Statement) *balala.Outcome {
		return &balala.Outcome{}
	})

	ctx := context.Background()
	handler(ctx, &balala.Statement{Type: balala.TypeSelect, Table: "user"})
	handler(ctx, &balala.Statement{Type: balala.TypeSelect, Table: "user"})
	handler(ctx, &balala.Statement{Type: balala.TypeInsert, Table: "order"})

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "balala_test_sql_ms", families[0].GetName())

	counts := map[string]uint64{}
	for _, m := range families[0].GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		counts[labels["type"]+" "+labels["table"]] = m.GetSummary().GetSampleCount()
	}
	assert.Equal(t, map[string]uint64{"SELECT user": 2, "INSERT order": 1}, counts)
}
