package state

import (
	"sync"

	"github.com/annel0/blockverse/internal/logging"
)

// GameState глобальное состояние процесса
type GameState int

const (
	// Loading начальное состояние: ресурсы ещё загружаются
	Loading GameState = iota
	// Running терминальное состояние: все отслеживаемые ресурсы загружены
	Running
)

func (s GameState) String() string {
	switch s {
	case Loading:
		return "Loading"
	case Running:
		return "Running"
	default:
		return "Unknown"
	}
}

// Machine конечный автомат Loading -> Running.
//
// Переход ставится в очередь через Set и применяется планировщиком в начале
// следующего тика (ApplyTransition). Обратного перехода нет.
type Machine struct {
	mu      sync.RWMutex
	current GameState
	next    *GameState
	entered bool
}

// NewMachine создаёт автомат в состоянии Loading
func NewMachine() *Machine {
	return &Machine{current: Loading}
}

// Current возвращает текущее состояние
func (m *Machine) Current() GameState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is проверяет текущее состояние
func (m *Machine) Is(s GameState) bool {
	return m.Current() == s
}

// Pending возвращает поставленный в очередь переход, если он есть
func (m *Machine) Pending() (GameState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.next == nil {
		return m.current, false
	}
	return *m.next, true
}

// Set ставит переход в очередь. Возврат в Loading после Running игнорируется.
func (m *Machine) Set(next GameState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if next == Loading && (m.current == Running || (m.next != nil && *m.next == Running)) {
		logging.Warn("⚠️ Попытка вернуть состояние в %s после %s проигнорирована", next, Running)
		return
	}
	m.next = &next
}

// ApplyTransition применяет поставленный переход.
// Первый вызов всегда "входит" в начальное состояние, чтобы сработали его OnEnter-системы.
func (m *Machine) ApplyTransition() (GameState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.entered {
		m.entered = true
		if m.next != nil {
			m.current = *m.next
			m.next = nil
		}
		return m.current, true
	}

	if m.next == nil {
		return m.current, false
	}

	next := *m.next
	m.next = nil
	if next == m.current {
		return m.current, false
	}

	logging.Info("🔀 Состояние изменено: %s -> %s", m.current, next)
	m.current = next
	return m.current, true
}
