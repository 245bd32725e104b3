package world

import (
	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/registry"
	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/voxel"
	"github.com/annel0/blockverse/internal/voxel/chunk"
)

// Generator генерирует ландшафт чанков по шуму Перлина
type Generator struct {
	cfg      config.WorldConfig
	blocks   *registry.BlockRegistry
	noise    *util.Noise
	maxLevel int
}

// NewGenerator создаёт генератор мира.
// Реестр блоков читается только в GenerateChunk: к этому моменту он уже заполнен.
func NewGenerator(cfg config.WorldConfig, blocks *registry.BlockRegistry) *Generator {
	return &Generator{
		cfg:      cfg,
		blocks:   blocks,
		noise:    util.NewNoise(cfg.Seed),
		maxLevel: chunk.ChunkHeight - 1,
	}
}

// HeightAt возвращает высоту поверхности (первый пустой y) для глобальных координат столбца
func (g *Generator) HeightAt(globalX, globalZ int) int {
	// Координаты для шума (масштабированные)
	noiseX := float64(globalX) * g.cfg.NoiseScale
	noiseZ := float64(globalZ) * g.cfg.NoiseScale

	n := g.noise.Noise2D(noiseX, noiseZ)*2 - 1
	height := g.cfg.BaseHeight + int(n*float64(g.cfg.Amplitude))

	// y=0 всегда занят слоем пола, верхний слой всегда пустой
	return min(max(height, 1), g.maxLevel)
}

// GenerateChunk генерирует чанк по его координатам (в чанках).
//
// Слой y=0 заполняется блоком пола одним FillExtent. Выше каждый столбец
// заполняется камнем, а верхние SurfaceDepth блоков до высоты поверхности
// покрываются поверхностным блоком. Незарегистрированный id блока приводит к panic реестра.
func (g *Generator) GenerateChunk(coords vec.Vec3) *chunk.ChunkBuffer {
	fill := g.validBlock(g.cfg.FillBlock)
	stone := g.validBlock(g.cfg.StoneBlock)
	surface := g.validBlock(g.cfg.SurfaceBlock)

	buf := chunk.NewEmpty()

	// Слой "пол"
	buf.FillExtent(
		chunk.ExtentFromMinAndShape(vec.Zero, vec.New(chunk.ChunkLength, 1, chunk.ChunkLength)),
		fill,
	)

	globalStartX := coords.X * chunk.ChunkLength
	globalStartZ := coords.Z * chunk.ChunkLength

	for z := 0; z < chunk.ChunkLength; z++ {
		for x := 0; x < chunk.ChunkLength; x++ {
			height := g.HeightAt(globalStartX+x, globalStartZ+z)
			surfaceStart := max(height-g.cfg.SurfaceDepth, 1)

			// Пустые области (высота 1 или глубина 0) FillExtent пропускает
			buf.FillExtent(
				chunk.ExtentFromMinAndShape(vec.New(x, 1, z), vec.New(1, surfaceStart-1, 1)),
				stone,
			)
			buf.FillExtent(
				chunk.ExtentFromMinAndShape(vec.New(x, surfaceStart, z), vec.New(1, height-surfaceStart, 1)),
				surface,
			)
		}
	}

	logging.Debug("🌍 Чанк %s сгенерирован (seed=%d)", coords, g.noise.Seed())
	return buf
}

func (g *Generator) validBlock(id voxel.BlockMaterialID) voxel.Voxel {
	if id != voxel.EmptyBlockID {
		// Проверка инварианта: Get вызывает panic для незарегистрированного id
		g.blocks.Get(id)
	}
	return voxel.FromBlockID(id)
}
