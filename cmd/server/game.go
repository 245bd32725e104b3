package main

import (
	"context"

	"github.com/annel0/blockverse/internal/api"
	"github.com/annel0/blockverse/internal/app"
	"github.com/annel0/blockverse/internal/assets"
	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/observability"
	"github.com/annel0/blockverse/internal/registry"
	"github.com/annel0/blockverse/internal/state"
	"github.com/annel0/blockverse/internal/voxel"
	"github.com/annel0/blockverse/internal/world"
	"github.com/prometheus/client_golang/prometheus"
)

// game связывает подсистемы мира с планировщиком
type game struct {
	cfg *config.Config

	assets  *assets.Server
	machine *state.Machine
	blocks  *registry.BlockRegistry
	events  *registry.BlockEvents
	tracker *registry.AssetTracker
	spawn   *world.Spawn
	metrics *observability.WorldMetrics
	app     *app.App
}

// buildGame создаёт подсистемы и регистрирует системы по фазам тика:
//
//	OnEnter(Loading): register_blocks
//	OnEnter(Running): spawn_chunk
//	Update:           handle_register_events
//	Last:             move_state_to_running (только в Loading), observe_world
func buildGame(cfg *config.Config, reg prometheus.Registerer) *game {
	g := &game{
		cfg:     cfg,
		assets:  assets.NewServer(cfg.Assets.Root, 4),
		machine: state.NewMachine(),
		blocks:  registry.NewBlockRegistry(),
		events:  registry.NewBlockEvents(),
		tracker: registry.NewAssetTracker(),
		spawn:   world.NewSpawn(),
		metrics: observability.NewWorldMetrics(cfg.Server.MetricsNamespace, reg),
	}

	producer := &registry.BlockProducer{
		Definitions: blockDefinitions(cfg.Assets.Blocks),
		Loader:      g.assets,
		Materials:   assets.NewMaterials(),
		Tracker:     g.tracker,
		Events:      g.events,
	}
	generator := world.NewGenerator(cfg.World, g.blocks)

	g.app = app.New(g.machine)
	g.app.AddOnEnter(state.Loading, "register_blocks", func(ctx context.Context) {
		producer.RegisterBlocks()
	})
	g.app.AddOnEnter(state.Running, "spawn_chunk", world.SpawnSystem(generator, g.spawn))
	g.app.AddUpdate("handle_register_events", registry.HandleRegisterEvents(g.blocks, g.events))
	g.app.AddLast("move_state_to_running",
		registry.MoveStateToRunningWhenAllAssetsLoaded(g.assets, g.tracker, g.machine),
		app.InState(g.machine, state.Loading))
	g.app.AddLast("observe_world", g.observe)
	g.app.OnTickDone(g.metrics.ObserveTick)

	return g
}

func (g *game) observe(ctx context.Context) {
	stats := g.events.Stats()
	g.metrics.Observe(observability.Snapshot{
		Registries:    map[string]int{g.blocks.Name(): g.blocks.Len()},
		AssetsTracked: g.tracker.Len(),
		State:         g.machine.Current(),
		EventsSent:    stats.Sent,
		EventsApplied: stats.Drained,
	})
}

// statusConfig зависимости диагностического сервера
func (g *game) statusConfig(logger *logging.Logger) api.Config {
	return api.Config{
		Port:      g.cfg.Server.GetStatusPort(),
		Namespace: g.cfg.Server.MetricsNamespace,
		Machine:   g.machine,
		Blocks:    g.blocks,
		Events:    g.events,
		Assets:    g.assets,
		Tracker:   g.tracker,
		Spawn:     g.spawn,
		TickCount: g.app.TickCount,
		Logger:    logger,
	}
}

// Close дожидается начатых загрузок ресурсов
func (g *game) Close() {
	g.assets.Close()
}

func blockDefinitions(blocks []config.BlockConfig) []registry.BlockDefinition {
	defs := make([]registry.BlockDefinition, 0, len(blocks))
	for _, b := range blocks {
		defs = append(defs, registry.BlockDefinition{
			ID:      voxel.BlockMaterialID(b.ID),
			Name:    b.Name,
			Texture: b.Texture,
		})
	}
	return defs
}
