package observability

import (
	"strings"
	"testing"
	"time"

	"github.com/annel0/blockverse/internal/state"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorldMetrics("test", reg)

	m.Observe(Snapshot{
		Registries:    map[string]int{"Block Registry": 2},
		AssetsTracked: 2,
		State:         state.Loading,
		EventsSent:    2,
		EventsApplied: 0,
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registryEntries.WithLabelValues("Block Registry")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.assetsTracked))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.gameState))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsSent))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.eventsApplied))

	m.Observe(Snapshot{
		Registries:    map[string]int{"Block Registry": 2},
		AssetsTracked: 2,
		State:         state.Running,
		EventsSent:    2,
		EventsApplied: 2,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.gameState))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsSent), "Повторный снимок не увеличивает счётчик")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsApplied))
}

func TestWorldMetrics_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorldMetrics("test", reg)
	m.Observe(Snapshot{AssetsTracked: 3})
	m.ObserveTick(2 * time.Millisecond)

	expected := `
# HELP test_assets_tracked Количество ресурсов, от загрузки которых зависит запуск.
# TYPE test_assets_tracked gauge
test_assets_tracked 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_assets_tracked"))

	count, err := testutil.GatherAndCount(reg, "test_tick_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWorldMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWorldMetrics("test", reg)
	assert.Panics(t, func() { NewWorldMetrics("test", reg) })
}
