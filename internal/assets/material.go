package assets

import (
	"image/color"
	"sync"

	"github.com/google/uuid"
)

// MaterialHandle ссылка на материал в хранилище Materials
type MaterialHandle uuid.UUID

func (h MaterialHandle) String() string {
	return uuid.UUID(h).String()
}

// StandardMaterial описание материала блока.
// Текстура может быть ещё не загружена: готовность отслеживает AssetTracker.
type StandardMaterial struct {
	BaseColorTexture *Handle
	BaseColor        color.RGBA
}

// Materials хранилище материалов
type Materials struct {
	mu        sync.RWMutex
	materials map[MaterialHandle]StandardMaterial
}

// NewMaterials создаёт пустое хранилище материалов
func NewMaterials() *Materials {
	return &Materials{
		materials: make(map[MaterialHandle]StandardMaterial),
	}
}

// Add сохраняет материал и возвращает ссылку на него
func (m *Materials) Add(material StandardMaterial) MaterialHandle {
	h := MaterialHandle(uuid.New())

	m.mu.Lock()
	m.materials[h] = material
	m.mu.Unlock()

	return h
}

// Get возвращает материал по ссылке
func (m *Materials) Get(h MaterialHandle) (StandardMaterial, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	material, ok := m.materials[h]
	return material, ok
}

// Len возвращает количество материалов
func (m *Materials) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.materials)
}
