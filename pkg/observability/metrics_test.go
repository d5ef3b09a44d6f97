package observability_test

import (
	"testing"

	"github.com/aretw0/compact"
	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/dsl"
	"github.com/aretw0/compact/pkg/observability"
	"github.com/aretw0/compact/pkg/plugins"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	profile := dsl.Combine(dsl.Named("name", dsl.Value("").Use(plugins.SetValue())))
	engine := compact.Create(dsl.Combine(
		dsl.Named("count", dsl.Value(0).Use(plugins.SetValue())),
		dsl.Named("profile", profile.Default(nil)),
	), compact.WithHooks(metrics.Hooks()))

	set, err := engine.Actions().Slice("count").Do("setValue", 1)
	require.NoError(t, err)
	rename, err := engine.Actions().Slice("profile").Slice("name").Do("setValue", "ada")
	require.NoError(t, err)

	state := engine.Reduce(nil, set)
	state = engine.Reduce(state, set)
	state = engine.Reduce(state, rename)
	engine.Reduce(state, domain.Action{Type: "actions/whatever"})

	assert.Equal(t, 1.0, count(t, metrics.Actions.WithLabelValues(set.Type, "applied")))
	assert.Equal(t, 1.0, count(t, metrics.Actions.WithLabelValues(set.Type, "unchanged")))
	assert.Equal(t, 1.0, count(t, metrics.Actions.WithLabelValues(rename.Type, "unchanged")))
	assert.Equal(t, 1.0, count(t, metrics.Actions.WithLabelValues("unknown", "ignored")))
	assert.Equal(t, 1.0, count(t, metrics.Warnings.WithLabelValues("engine", "profile")))

	families, err := reg.Gather()
	require.NoError(t, err)
	series := 0
	for _, f := range families {
		series += len(f.GetMetric())
	}
	assert.Equal(t, 5, series)
}

func TestMetrics_CountsPluginWarnings(t *testing.T) {
	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	todos := dsl.List(dsl.ListSpec{Key: dsl.KeyField("id")}).Use(plugins.List(plugins.WithHooks(metrics.Hooks())))
	engine := compact.Create(dsl.Combine(dsl.Named("todos", todos)), compact.WithHooks(metrics.Hooks()))

	remove, err := engine.Actions().Slice("todos").Do("remove", "missing")
	require.NoError(t, err)
	engine.Reduce(nil, remove)

	assert.Equal(t, 1.0, count(t, metrics.Warnings.WithLabelValues("list", "")))
	assert.Equal(t, 1.0, count(t, metrics.Actions.WithLabelValues(remove.Type, "unchanged")))
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)

	m, err := observability.NewMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, m.Actions)
}

func count(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
