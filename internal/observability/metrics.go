package observability

import (
	"sync"
	"time"

	"github.com/annel0/blockverse/internal/state"
	"github.com/prometheus/client_golang/prometheus"
)

// Snapshot состояние мира на конец тика
type Snapshot struct {
	Registries    map[string]int // имя реестра -> количество записей
	AssetsTracked int
	State         state.GameState
	EventsSent    uint64 // накопительные значения из EventStats
	EventsApplied uint64
}

// WorldMetrics Prometheus-метрики состояния мира.
//
// Метрики:
// * registry_entries{registry}: gauge
// * assets_tracked: gauge
// * game_state: gauge (0 Loading, 1 Running)
// * register_events_sent_total, register_events_applied_total: counter
// * tick_duration_seconds: histogram
type WorldMetrics struct {
	registryEntries *prometheus.GaugeVec
	assetsTracked   prometheus.Gauge
	gameState       prometheus.Gauge
	eventsSent      prometheus.Counter
	eventsApplied   prometheus.Counter
	tickDuration    prometheus.Histogram

	mu          sync.Mutex
	lastSent    uint64
	lastApplied uint64
}

// NewWorldMetrics создаёт метрики и регистрирует их в reg
func NewWorldMetrics(namespace string, reg prometheus.Registerer) *WorldMetrics {
	m := &WorldMetrics{
		registryEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_entries",
			Help:      "Количество записей в реестре.",
		}, []string{"registry"}),
		assetsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "assets_tracked",
			Help:      "Количество ресурсов, от загрузки которых зависит запуск.",
		}),
		gameState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "game_state",
			Help:      "Текущее состояние игры (0 Loading, 1 Running).",
		}),
		eventsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "register_events_sent_total",
			Help:      "Отправлено событий регистрации.",
		}),
		eventsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "register_events_applied_total",
			Help:      "Применено событий регистрации.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Длительность тика планировщика.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}

	reg.MustRegister(m.registryEntries, m.assetsTracked, m.gameState,
		m.eventsSent, m.eventsApplied, m.tickDuration)
	return m
}

// Observe обновляет метрики по снимку. Счётчики растут на разницу с прошлым снимком.
func (m *WorldMetrics) Observe(s Snapshot) {
	for name, n := range s.Registries {
		m.registryEntries.WithLabelValues(name).Set(float64(n))
	}
	m.assetsTracked.Set(float64(s.AssetsTracked))
	m.gameState.Set(float64(s.State))

	m.mu.Lock()
	defer m.mu.Unlock()

	if s.EventsSent > m.lastSent {
		m.eventsSent.Add(float64(s.EventsSent - m.lastSent))
		m.lastSent = s.EventsSent
	}
	if s.EventsApplied > m.lastApplied {
		m.eventsApplied.Add(float64(s.EventsApplied - m.lastApplied))
		m.lastApplied = s.EventsApplied
	}
}

// ObserveTick записывает длительность тика
func (m *WorldMetrics) ObserveTick(d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
}
