package assets

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/google/uuid"
)

// HandleID непрозрачный идентификатор загружаемого ресурса
type HandleID uuid.UUID

func (id HandleID) String() string {
	return uuid.UUID(id).String()
}

// Handle нетипизированная ссылка на внешний ресурс (например, текстуру)
type Handle struct {
	ID   HandleID
	Path string
}

// LoadState состояние загрузки ресурса или группы ресурсов
type LoadState int

const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "NotLoaded"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

type entry struct {
	handle Handle
	state  LoadState
	data   []byte
	err    error
}

// Server асинхронно загружает файлы ресурсов из корневого каталога.
//
// Каждый путь загружается один раз: повторный Load возвращает тот же Handle.
// Состояние загрузки опрашивается через LoadState/GroupLoadState, ожидания нет.
type Server struct {
	root string

	mu      sync.RWMutex
	entries map[HandleID]*entry
	byPath  map[string]HandleID

	wg     sync.WaitGroup
	sem    chan struct{}
	closed bool
}

// NewServer создаёт сервер ресурсов; параллельных чтений не больше workers
func NewServer(root string, workers int) *Server {
	if workers <= 0 {
		workers = 4
	}
	return &Server{
		root:    root,
		entries: make(map[HandleID]*entry),
		byPath:  make(map[string]HandleID),
		sem:     make(chan struct{}, workers),
	}
}

// Load запрашивает загрузку ресурса и сразу возвращает его Handle
func (s *Server) Load(path string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byPath[path]; ok {
		return s.entries[id].handle
	}

	h := Handle{ID: HandleID(uuid.New()), Path: path}
	e := &entry{handle: h, state: Loading}
	s.entries[h.ID] = e
	s.byPath[path] = h.ID

	if s.closed {
		e.state = Failed
		e.err = fmt.Errorf("сервер ресурсов закрыт")
		return h
	}

	s.wg.Add(1)
	go s.load(e)

	return h
}

func (s *Server) load(e *entry) {
	defer s.wg.Done()

	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	full := filepath.Join(s.root, filepath.FromSlash(e.handle.Path))
	data, err := os.ReadFile(full)
	if err == nil && filepath.Ext(full) == ".png" {
		// Проверяем только заголовок: пиксели декодирует потребитель
		_, err = png.DecodeConfig(bytes.NewReader(data))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		e.state = Failed
		e.err = err
		logging.Warn("⚠️ Ошибка загрузки ресурса %s: %v", e.handle.Path, err)
		return
	}

	e.state = Loaded
	e.data = data
	logging.Debug("Ресурс загружен: %s (%d байт)", e.handle.Path, len(data))
}

// LoadState возвращает состояние загрузки одного ресурса
func (s *Server) LoadState(id HandleID) LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return NotLoaded
	}
	return e.state
}

// GroupLoadState возвращает агрегированное состояние группы ресурсов.
// Пустая группа считается загруженной; NotLoaded и Failed имеют приоритет над Loading.
func (s *Server) GroupLoadState(ids []HandleID) LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := Loaded
	for _, id := range ids {
		e, ok := s.entries[id]
		if !ok {
			return NotLoaded
		}
		switch e.state {
		case Loaded:
			continue
		case Loading:
			result = Loading
		case Failed:
			return Failed
		case NotLoaded:
			return NotLoaded
		}
	}
	return result
}

// Bytes возвращает содержимое загруженного ресурса
func (s *Server) Bytes(id HandleID) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || e.state != Loaded {
		return nil, false
	}
	return e.data, true
}

// Err возвращает ошибку загрузки ресурса, если она была
func (s *Server) Err(id HandleID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[id]; ok {
		return e.err
	}
	return nil
}

// Handles возвращает все запрошенные ресурсы
func (s *Server) Handles() []Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Handle, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e.handle)
	}
	return result
}

// Wait блокируется до завершения всех начатых загрузок
func (s *Server) Wait() {
	s.wg.Wait()
}

// Close запрещает новые загрузки и дожидается текущих
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.wg.Wait()
}
