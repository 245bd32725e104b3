package registry

import (
	"fmt"
	"sync"
)

// Registry отображение id -> метаданные с семантикой "вставка один раз".
//
// Реестр хранит статические описания контента (типы блоков), известные при сборке.
// Повторная регистрация id и чтение незарегистрированного id вызывают panic.
type Registry[K comparable, V any] struct {
	name    string
	mu      sync.RWMutex
	entries map[K]V
}

// Entry пара id -> значение для диагностических снимков
type Entry[K comparable, V any] struct {
	Key K
	Val V
}

// NewRegistry создаёт пустой реестр с именем для диагностики
func NewRegistry[K comparable, V any](name string) *Registry[K, V] {
	return &Registry[K, V]{
		name:    name,
		entries: make(map[K]V),
	}
}

// Name возвращает имя реестра
func (r *Registry[K, V]) Name() string {
	return r.name
}

// Register добавляет значение по id. Если id уже занят - panic.
func (r *Registry[K, V]) Register(id K, val V) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[id]; ok {
		panic(fmt.Sprintf("[%s] Tried to register %v at id %v but %v was already registered to that id",
			r.name, val, id, existing))
	}
	r.entries[id] = val
}

// Get возвращает значение по id. Если id не зарегистрирован - panic.
func (r *Registry[K, V]) Get(id K) V {
	r.mu.RLock()
	defer r.mu.RUnlock()

	val, ok := r.entries[id]
	if !ok {
		panic(fmt.Sprintf("[%s] No value found at key %v", r.name, id))
	}
	return val
}

// Lookup возвращает значение без panic.
// Предназначен для внешних поверхностей (HTTP), где id приходит от пользователя.
func (r *Registry[K, V]) Lookup(id K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	val, ok := r.entries[id]
	return val, ok
}

// Contains проверяет, зарегистрирован ли id
func (r *Registry[K, V]) Contains(id K) bool {
	_, ok := r.Lookup(id)
	return ok
}

// Len возвращает количество записей
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Entries возвращает снимок всех записей; порядок не определён
func (r *Registry[K, V]) Entries() []Entry[K, V] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Entry[K, V], 0, len(r.entries))
	for k, v := range r.entries {
		result = append(result, Entry[K, V]{Key: k, Val: v})
	}
	return result
}
