package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/blockverse/internal/api"
	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (default: $BLOCKVERSE_CONFIG or built-in defaults)")
	flag.Parse()

	// os.Exit только после того, как отработали все defer в run
	os.Exit(run(*configPath))
}

func run(configPath string) int {
	startTime := time.Now()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("❌ Ошибка загрузки конфигурации: %v", err)
		return 1
	}

	// === ЛОГИРОВАНИЕ ===
	consoleLevel, err := logging.ParseLevel(cfg.Logging.ConsoleLevel)
	if err != nil {
		log.Printf("⚠️ %v, используется INFO", err)
	}
	fileLevel, err := logging.ParseLevel(cfg.Logging.FileLevel)
	if err != nil {
		log.Printf("⚠️ %v, используется INFO", err)
	}
	logging.Configure(cfg.Logging.Dir, consoleLevel, fileLevel)

	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Printf("❌ Ошибка инициализации логирования: %v", err)
		return 1
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🎮 Запуск Blockverse...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === ТЕЛЕМЕТРИЯ ===
	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry)
		if err != nil {
			logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Error("❌ Ошибка остановки OpenTelemetry: %v", err)
				}
			}()
		}
	}

	// === МИР ===
	g := buildGame(cfg, prometheus.DefaultRegisterer)
	defer g.Close()

	// === ДИАГНОСТИКА ===
	gin.SetMode(gin.ReleaseMode)
	status := api.NewStatusServer(g.statusConfig(logging.GetComponentLogger("http")))

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return g.app.Run(gctx, cfg.Tick.TickInterval())
	})
	group.Go(func() error {
		return status.Run(gctx)
	})

	logging.Info("✅ Все сервисы запущены (тик %s, ресурсы %s, диагностика :%d)",
		cfg.Tick.TickInterval(), cfg.Assets.Root, cfg.Server.GetStatusPort())

	if err := group.Wait(); err != nil {
		logging.Error("❌ Сервер остановлен с ошибкой: %v", err)
		return 1
	}

	logging.Info("👋 Сервер успешно остановлен после %d тиков (%s)", g.app.TickCount(), time.Since(startTime))
	return 0
}
