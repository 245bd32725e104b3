package main

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/state"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/voxel"
	"github.com/annel0/blockverse/internal/voxel/chunk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTexture(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 1, 1))))
}

// startGame выполняет первый тик (регистрация блоков), дожидается загрузки
// текстур и прогоняет ещё ticks тиков
func startGame(t *testing.T, root string, ticks int) (*game, *prometheus.Registry) {
	t.Helper()

	cfg := config.Default()
	cfg.Assets.Root = root

	reg := prometheus.NewRegistry()
	g := buildGame(cfg, reg)
	t.Cleanup(g.Close)

	ctx := context.Background()
	g.app.Tick(ctx)
	g.assets.Wait()
	for i := 0; i < ticks; i++ {
		g.app.Tick(ctx)
	}
	return g, reg
}

func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.NotEmpty(t, mf.GetMetric())
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("метрика %s не найдена", name)
	return 0
}

func assertSpawned(t *testing.T, g *game) {
	t.Helper()

	assert.Equal(t, state.Running, g.machine.Current())
	assert.Equal(t, 2, g.blocks.Len())
	require.True(t, g.spawn.Ready())

	buf, coords := g.spawn.Chunk()
	assert.Equal(t, vec.Zero, coords)
	for z := 0; z < chunk.ChunkLength; z++ {
		for x := 0; x < chunk.ChunkLength; x++ {
			assert.Equal(t, voxel.BlockMaterialID(1), buf.VoxelAt(vec.New(x, 0, z)).BlockID, "Пол (x=%d z=%d)", x, z)
			assert.True(t, buf.VoxelAt(vec.New(x, chunk.ChunkHeight-1, z)).IsEmpty(), "Верхний слой пуст (x=%d z=%d)", x, z)
		}
	}
}

func TestBuildGame_ReachesRunningWhenTexturesLoad(t *testing.T) {
	root := t.TempDir()
	writeTexture(t, root, "textures/block/stone.png")
	writeTexture(t, root, "textures/block/dirt.png")

	// Тик 2 ставит переход в очередь, тик 3 входит в Running и генерирует чанк
	g, reg := startGame(t, root, 2)
	assertSpawned(t, g)

	assert.Equal(t, 1.0, gaugeValue(t, reg, "blockverse_game_state"))
	assert.Equal(t, 2.0, gaugeValue(t, reg, "blockverse_assets_tracked"))
	assert.Equal(t, uint64(3), g.app.TickCount())
}

func TestBuildGame_ShippedAssetsLoad(t *testing.T) {
	g, _ := startGame(t, filepath.Join("..", "..", "assets"), 2)
	assertSpawned(t, g)
}

func TestBuildGame_MissingTexturesStayLoading(t *testing.T) {
	g, reg := startGame(t, t.TempDir(), 20)

	assert.Equal(t, state.Loading, g.machine.Current())
	assert.False(t, g.spawn.Ready())
	assert.Equal(t, 2, g.blocks.Len(), "Регистрация не зависит от загрузки текстур")
	assert.Equal(t, 0.0, gaugeValue(t, reg, "blockverse_game_state"))
}

func TestBuildGame_DuplicateBlockIDIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.Root = t.TempDir()
	cfg.Assets.Blocks = append(cfg.Assets.Blocks, config.BlockConfig{ID: 1, Name: "cobble", Texture: "textures/block/cobble.png"})

	g := buildGame(cfg, prometheus.NewRegistry())
	t.Cleanup(g.Close)

	assert.PanicsWithValue(t,
		`[Block Registry] Tried to register BlockRegistryInfo { name: "cobble" } at id 1 but BlockRegistryInfo { name: "stone" } was already registered to that id`,
		func() { g.app.Tick(context.Background()) })
}

func TestBlockDefinitions(t *testing.T) {
	defs := blockDefinitions(config.Default().Assets.Blocks)

	require.Len(t, defs, 2)
	assert.Equal(t, voxel.BlockMaterialID(2), defs[1].ID)
	assert.Equal(t, "dirt", defs[1].Name)
	assert.Equal(t, "textures/block/dirt.png", defs[1].Texture)
}
