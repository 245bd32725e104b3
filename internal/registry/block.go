package registry

import (
	"fmt"

	"github.com/annel0/blockverse/internal/assets"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/voxel"
)

// BlockRegistryName имя реестра блоков в диагностике
const BlockRegistryName = "Block Registry"

// BlockRegistryInfo метаданные типа блока
type BlockRegistryInfo struct {
	Name           string
	MaterialHandle assets.MaterialHandle
}

// String печатает только имя: ссылка на материал в диагностике бесполезна
func (b BlockRegistryInfo) String() string {
	return fmt.Sprintf("BlockRegistryInfo { name: %q }", b.Name)
}

// BlockRegistry реестр типов блоков
type BlockRegistry = Registry[voxel.BlockMaterialID, BlockRegistryInfo]

// BlockRegisterEvent событие регистрации типа блока
type BlockRegisterEvent = RegisterEvent[voxel.BlockMaterialID, BlockRegistryInfo]

// BlockEvents очередь событий регистрации блоков
type BlockEvents = Events[BlockRegisterEvent]

// NewBlockRegistry создаёт пустой реестр блоков
func NewBlockRegistry() *BlockRegistry {
	return NewRegistry[voxel.BlockMaterialID, BlockRegistryInfo](BlockRegistryName)
}

// NewBlockEvents создаёт очередь событий регистрации блоков
func NewBlockEvents() *BlockEvents {
	return NewEvents[BlockRegisterEvent]()
}

// BlockDefinition описание блока, из которого строятся метаданные
type BlockDefinition struct {
	ID      voxel.BlockMaterialID
	Name    string
	Texture string
}

// DefaultBlocks стандартный набор блоков
func DefaultBlocks() []BlockDefinition {
	return []BlockDefinition{
		{ID: 1, Name: "stone", Texture: "textures/block/stone.png"},
		{ID: 2, Name: "dirt", Texture: "textures/block/dirt.png"},
	}
}

// TextureLoader запуск асинхронной загрузки текстуры (assets.Server)
type TextureLoader interface {
	Load(path string) assets.Handle
}

// BlockProducer строит метаданные блоков и отправляет события регистрации.
// Реестр напрямую не трогает: события применяет HandleRegisterEvents.
type BlockProducer struct {
	Definitions []BlockDefinition
	Loader      TextureLoader
	Materials   *assets.Materials
	Tracker     *AssetTracker
	Events      *BlockEvents
}

// RegisterBlocks запрашивает текстуры, отслеживает их загрузку и отправляет события.
// Материал ссылается на ещё не загруженную текстуру: готовность проверяет трекер.
func (p *BlockProducer) RegisterBlocks() {
	logging.Info("🧱 Registering blocks (%d)", len(p.Definitions))

	for _, def := range p.Definitions {
		texture := p.Loader.Load(def.Texture)
		p.Tracker.Track(texture)

		materialHandle := p.Materials.Add(assets.StandardMaterial{
			BaseColorTexture: &texture,
		})

		p.Events.Send(NewRegisterEvent("register_blocks", def.ID, BlockRegistryInfo{
			Name:           def.Name,
			MaterialHandle: materialHandle,
		}))
	}
}
