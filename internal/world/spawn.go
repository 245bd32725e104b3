package world

import (
	"context"
	"sync"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/voxel/chunk"
)

// SpawnCoords координаты стартового чанка
var SpawnCoords = vec.Zero

// Spawn хранит единственный стартовый чанк мира.
// Пишет его планировщик, читает диагностический HTTP сервер.
type Spawn struct {
	mu     sync.RWMutex
	coords vec.Vec3
	chunk  *chunk.ChunkBuffer
}

// NewSpawn создаёт пустое хранилище стартового чанка
func NewSpawn() *Spawn {
	return &Spawn{}
}

// Set сохраняет сгенерированный чанк
func (s *Spawn) Set(coords vec.Vec3, buf *chunk.ChunkBuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coords = coords
	s.chunk = buf
}

// Chunk возвращает стартовый чанк и его координаты; nil, пока он не сгенерирован
func (s *Spawn) Chunk() (*chunk.ChunkBuffer, vec.Vec3) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunk, s.coords
}

// Ready возвращает true, если стартовый чанк сгенерирован
func (s *Spawn) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunk != nil
}

// SpawnSystem OnEnter(Running) система: генерирует стартовый чанк
func SpawnSystem(gen *Generator, spawn *Spawn) func(ctx context.Context) {
	return func(ctx context.Context) {
		buf := gen.GenerateChunk(SpawnCoords)
		spawn.Set(SpawnCoords, buf)

		logging.Info("🏔️ Стартовый чанк %s готов: %d блоков", SpawnCoords, buf.Len())
	}
}
