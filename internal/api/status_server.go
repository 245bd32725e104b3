package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/annel0/blockverse/internal/assets"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/middleware"
	"github.com/annel0/blockverse/internal/registry"
	"github.com/annel0/blockverse/internal/state"
	"github.com/annel0/blockverse/internal/world"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// AssetStates статусы загрузки ресурсов (assets.Server)
type AssetStates interface {
	LoadState(id assets.HandleID) assets.LoadState
	GroupLoadState(ids []assets.HandleID) assets.LoadState
	Handles() []assets.Handle
}

// Config зависимости диагностического сервера
type Config struct {
	Port      int
	Namespace string

	Machine   *state.Machine
	Blocks    *registry.BlockRegistry
	Events    *registry.BlockEvents
	Assets    AssetStates
	Tracker   *registry.AssetTracker
	Spawn     *world.Spawn
	TickCount func() uint64
	Logger    *logging.Logger // nil: глобальный логгер

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// StatusServer HTTP сервер только для чтения: здоровье, готовность, реестр, ресурсы, стартовый чанк
type StatusServer struct {
	cfg        Config
	router     *gin.Engine
	httpServer *http.Server
	metrics    *ServerMetrics
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewStatusServer создаёт сервер и настраивает маршруты
func NewStatusServer(cfg Config) *StatusServer {
	if cfg.Namespace == "" {
		cfg.Namespace = "blockverse"
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // panic обработчика не роняет процесс

	// === Observability middleware ===
	router.Use(otelgin.Middleware(cfg.Namespace + "_status"))
	router.Use(middleware.NewRequestLogger(cfg.Logger).Handler())

	promMw := middleware.NewPrometheusMiddleware(cfg.Namespace, cfg.Registerer)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, cfg.Gatherer)

	s := &StatusServer{
		cfg:     cfg,
		router:  router,
		metrics: NewServerMetrics(),
	}
	s.setupRoutes()
	return s
}

func (s *StatusServer) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ready", s.handleReady)

	api := s.router.Group("/api")
	{
		api.GET("/blocks", s.handleBlocks)
		api.GET("/blocks/:id", s.handleBlock)
		api.GET("/assets", s.handleAssets)
		api.GET("/chunk/spawn", s.handleSpawnChunk)
		api.GET("/chunk/spawn/column/:x/:z", s.handleSpawnColumn)
		api.GET("/server", s.handleServerInfo)
	}
}

// Handler возвращает http.Handler (удобно в тестах)
func (s *StatusServer) Handler() http.Handler {
	return s.router
}

// Run запускает сервер и останавливает его при отмене контекста
func (s *StatusServer) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("🌐 Диагностический сервер запущен на http://localhost%s", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("ошибка диагностического сервера: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info("🛑 Остановка диагностического сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки диагностического сервера: %w", err)
	}
	return <-errCh
}
