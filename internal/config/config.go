// config предоставляет структуру конфигурации mensa-scraper
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env"     env:"ENV"        env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	GRPC     GRPCConfig    `yaml:"grpc"`
	DB       DBConfig      `yaml:"db"`
	Scraper  ScraperConfig `yaml:"scraper"`
	Ingest   IngestConfig  `yaml:"ingest"`
	Limits   LimitsConfig  `yaml:"limits"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	// Request — таймаут одного запроса к сайту столовой.
	Request time.Duration `yaml:"request" env:"REQUEST_TIMEOUT" env-default:"15s"`
	// Service — дедлайн входящих HTTP/gRPC-запросов.
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// GRPCConfig — сетевые настройки gRPC-сервера (health).
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50053"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// Addr возвращает адрес в формате host:port.
func (g HTTPConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
	// SkipMigrate отключает встроенные миграции перед работой. Нулевое значение: миграции включены.
	SkipMigrate bool `yaml:"skip_migrate" env:"DB_SKIP_MIGRATE"`
}

// ShouldMigrate сообщает, нужно ли применять миграции.
// override — явно заданный флаг -migrate (nil, если флаг не передан), он важнее конфига.
func (d DBConfig) ShouldMigrate(override *bool) bool {
	if override != nil {
		return *override
	}

	return !d.SkipMigrate
}

// ScraperConfig — параметры опроса сайта столовых.
type ScraperConfig struct {
	BaseURL      string `yaml:"base_url"       env:"SCRAPER_BASE_URL"       env-default:"https://www.studierendenwerk-pb.de/gastronomie/speiseplaene/"`
	ImageBaseURL string `yaml:"image_base_url" env:"SCRAPER_IMAGE_BASE_URL" env-default:"https://www.studierendenwerk-pb.de/"`
	UserAgent    string `yaml:"user_agent"     env:"SCRAPER_USER_AGENT"     env-default:"mensa-upb-stats/1.0"`
	// Concurrency — сколько страниц загружается одновременно.
	Concurrency int `yaml:"concurrency" env:"SCRAPER_CONCURRENCY" env-default:"4"`
	// RPS — ограничение запросов в секунду к источнику, 0 — без ограничения.
	RPS float64 `yaml:"rps" env:"SCRAPER_RPS" env-default:"0"`
	// LookaheadDays — размер окна планирования, включая сегодня.
	LookaheadDays int `yaml:"lookahead_days" env:"SCRAPER_LOOKAHEAD_DAYS" env-default:"7"`
	// ExcludedCanteens — идентификаторы столовых, которые не опрашиваются.
	// ENV EXCLUDED_CANTEENS, разделитель — запятая. Неизвестные идентификаторы игнорируются.
	ExcludedCanteens []string `yaml:"excluded_canteens" env:"EXCLUDED_CANTEENS" env-separator:","`
	// Timezone — зона, в которой считается «сегодня».
	Timezone string `yaml:"timezone" env:"SCRAPER_TIMEZONE" env-default:"Europe/Berlin"`
}

// Location возвращает зону Timezone (UTC, если зона не загружается).
func (s ScraperConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// IngestConfig — параметры периодического прогона в режиме serve.
type IngestConfig struct {
	Interval time.Duration `yaml:"interval" env:"INGEST_INTERVAL" env-default:"6h"`
}

// LimitsConfig — серверные лимиты на выдачу.
type LimitsConfig struct {
	// Применяется при запросе с limit=0.
	Default int `yaml:"default" env:"DEFAULT_LIMIT" env-default:"200"`
	// Верхняя граница для limit.
	Max int `yaml:"max" env:"MAX_LIMIT" env-default:"1000"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	var (
		c   *Config
		err error
	)

	switch envPath := os.Getenv("CONFIG_PATH"); {
	case path != "":
		c, err = tryRead(path)
	case envPath != "":
		c, err = tryRead(envPath)
	default:
		if _, statErr := os.Stat("local.yaml"); statErr == nil {
			if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
				return nil, fmt.Errorf("failed to read local.yaml: %w", err)
			}
			c = &cfg
			break
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
		c = &cfg
	}

	if err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if c.Scraper.BaseURL == "" {
		return fmt.Errorf("scraper.base_url is required")
	}
	if c.Scraper.Concurrency < 1 {
		return fmt.Errorf("scraper.concurrency must be >= 1")
	}
	if c.Scraper.RPS < 0 {
		return fmt.Errorf("scraper.rps must be >= 0")
	}
	if c.Scraper.LookaheadDays < 1 {
		return fmt.Errorf("scraper.lookahead_days must be >= 1")
	}
	if _, err := time.LoadLocation(c.Scraper.Timezone); err != nil {
		return fmt.Errorf("scraper.timezone: %w", err)
	}
	if c.Ingest.Interval < time.Minute {
		return fmt.Errorf("ingest.interval must be at least 1m")
	}
	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}
	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}
	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}
	return nil
}
