package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	World     WorldConfig     `yaml:"world"`
	Assets    AssetsConfig    `yaml:"assets"`
	Tick      TickConfig      `yaml:"tick"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
}

// WorldConfig параметры генерации стартового чанка
type WorldConfig struct {
	Seed         int64   `yaml:"seed"`
	FillBlock    uint8   `yaml:"fill_block"`    // слой y=0
	StoneBlock   uint8   `yaml:"stone_block"`   // толща под поверхностью
	SurfaceBlock uint8   `yaml:"surface_block"` // верхние SurfaceDepth блоков столбца
	SurfaceDepth int     `yaml:"surface_depth"`
	BaseHeight   int     `yaml:"base_height"`
	Amplitude    int     `yaml:"amplitude"`
	NoiseScale   float64 `yaml:"noise_scale"`
}

// BlockConfig описание одного типа блока
type BlockConfig struct {
	ID      uint8  `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Texture string `yaml:"texture" json:"texture"`
}

type AssetsConfig struct {
	Root   string        `yaml:"root"`
	Blocks []BlockConfig `yaml:"blocks"`
}

type TickConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

type ServerConfig struct {
	StatusPort       int    `yaml:"status_port"`
	MetricsNamespace string `yaml:"metrics_namespace"`
}

// TelemetryConfig параметры OpenTelemetry трассировки тиков и HTTP
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Service     string  `yaml:"service"`
	Version     string  `yaml:"version"`
	Environment string  `yaml:"environment"`
	Endpoint    string  `yaml:"endpoint"`     // host:port OTLP HTTP; пусто - OTEL_EXPORTER_OTLP_ENDPOINT или localhost:4318
	SampleRatio float64 `yaml:"sample_ratio"` // доля трассируемых тиков, 0..1
}

// Default возвращает конфигурацию по умолчанию: камень и земля, как в исходном наборе блоков
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Dir:          "logs",
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
		World: WorldConfig{
			Seed:         12345,
			FillBlock:    1,
			StoneBlock:   1,
			SurfaceBlock: 2,
			SurfaceDepth: 3,
			BaseHeight:   64,
			Amplitude:    24,
			NoiseScale:   0.05,
		},
		Assets: AssetsConfig{
			Root: "assets",
			Blocks: []BlockConfig{
				{ID: 1, Name: "stone", Texture: "textures/block/stone.png"},
				{ID: 2, Name: "dirt", Texture: "textures/block/dirt.png"},
			},
		},
		Tick: TickConfig{IntervalMs: 50},
		Server: ServerConfig{
			MetricsNamespace: "blockverse",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Service:     "blockverse",
			Version:     "dev",
			Environment: "development",
			SampleRatio: 1.0,
		},
	}
}

// TickInterval возвращает интервал тика
func (t TickConfig) TickInterval() time.Duration {
	return time.Duration(t.IntervalMs) * time.Millisecond
}

// GetStatusPort возвращает порт диагностического HTTP сервера с поддержкой fallback значений
func (s *ServerConfig) GetStatusPort() int {
	return getPortWithEnvFallback(s.StatusPort, "BLOCKVERSE_STATUS_PORT", 8089)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	// Используем дефолтное значение
	return defaultPort
}

// Validate проверяет конфигурацию на ошибки, которые можно исправить без пересборки.
// Повторяющиеся id блоков здесь не проверяются: это нарушение контракта реестра.
func (c *Config) Validate() error {
	var errs []error

	if c.Tick.IntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("tick.interval_ms должен быть > 0, получено %d", c.Tick.IntervalMs))
	}
	if len(c.Assets.Blocks) == 0 {
		errs = append(errs, errors.New("assets.blocks: не задано ни одного блока"))
	}
	for i, b := range c.Assets.Blocks {
		if b.ID == 0 {
			errs = append(errs, fmt.Errorf("assets.blocks[%d]: id 0 зарезервирован за пустым вокселем", i))
		}
		if b.Name == "" {
			errs = append(errs, fmt.Errorf("assets.blocks[%d]: пустое имя", i))
		}
		if b.Texture == "" {
			errs = append(errs, fmt.Errorf("assets.blocks[%d] (%s): не задана текстура", i, b.Name))
		}
	}
	if len(c.Assets.Blocks) > 0 {
		if err := validateBlockCatalog(c.Assets.Blocks); err != nil {
			errs = append(errs, fmt.Errorf("assets.blocks: %w", err))
		}
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio должен быть в диапазоне 0..1, получено %g", c.Telemetry.SampleRatio))
	}
	if c.World.SurfaceDepth < 0 {
		errs = append(errs, fmt.Errorf("world.surface_depth не может быть отрицательным"))
	}
	if c.World.BaseHeight <= 0 {
		errs = append(errs, fmt.Errorf("world.base_height должен быть > 0, получено %d", c.World.BaseHeight))
	}

	return errors.Join(errs...)
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV BLOCKVERSE_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("BLOCKVERSE_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан - использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация %s: %w", path, err)
	}

	return cfg, nil
}
