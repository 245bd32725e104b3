package registry

import (
	"context"
	"sync"
	"time"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/google/uuid"
)

// RegisterEvent запрос на регистрацию значения в реестре.
// EventID и Source нужны только для диагностики.
type RegisterEvent[K comparable, V any] struct {
	EventID   string
	Source    string
	EmittedAt time.Time
	Key       K
	Val       V
}

// NewRegisterEvent создаёт событие регистрации с новым UUID
func NewRegisterEvent[K comparable, V any](source string, key K, val V) RegisterEvent[K, V] {
	return RegisterEvent[K, V]{
		EventID:   uuid.NewString(),
		Source:    source,
		EmittedAt: time.Now().UTC(),
		Key:       key,
		Val:       val,
	}
}

// EventStats агрегированные счётчики очереди
type EventStats struct {
	Sent    uint64
	Drained uint64
	Pending int
}

// Events очередь событий: много отправителей, одна точка разбора за тик.
// Порядок событий сохраняется в порядке вызовов Send.
type Events[E any] struct {
	mu      sync.Mutex
	pending []E
	stats   EventStats
}

// NewEvents создаёт пустую очередь
func NewEvents[E any]() *Events[E] {
	return &Events[E]{}
}

// Send добавляет событие в очередь
func (q *Events[E]) Send(ev E) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.stats.Sent++
	q.mu.Unlock()
}

// Drain забирает все события, отправленные с прошлого разбора
func (q *Events[E]) Drain() []E {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := q.pending
	q.pending = nil
	q.stats.Drained += uint64(len(drained))
	return drained
}

// Len возвращает количество неразобранных событий
func (q *Events[E]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Stats возвращает снимок счётчиков
func (q *Events[E]) Stats() EventStats {
	q.mu.Lock()
	defer q.mu.Unlock()

	s := q.stats
	s.Pending = len(q.pending)
	return s
}

// ApplyPending регистрирует события в порядке их отправки.
// Дедупликации нет: повторный id приводит к panic реестра.
func ApplyPending[K comparable, V any](reg *Registry[K, V], events []RegisterEvent[K, V]) {
	for _, ev := range events {
		logging.Trace("[%s] register %v from %s (event %s)", reg.Name(), ev.Key, ev.Source, ev.EventID)
		reg.Register(ev.Key, ev.Val)
	}
}

// HandleRegisterEvents возвращает систему, которая раз в тик разбирает очередь и применяет события
func HandleRegisterEvents[K comparable, V any](reg *Registry[K, V], queue *Events[RegisterEvent[K, V]]) func(ctx context.Context) {
	return func(ctx context.Context) {
		events := queue.Drain()
		if len(events) == 0 {
			return
		}
		ApplyPending(reg, events)
		logging.Debug("[%s] применено %d событий регистрации, всего записей: %d", reg.Name(), len(events), reg.Len())
	}
}
