// service содержит бизнес-логику mensa-scraper: планирование работы,
// оркестрацию скрейпинга, сохранение и выборку блюд.
package service

import (
	"errors"
	"time"

	"github.com/pribylovaa/mensa-upb-stats/internal/config"
	"github.com/pribylovaa/mensa-upb-stats/internal/metrics"
	"github.com/pribylovaa/mensa-upb-stats/internal/storage"
)

var (
	// ErrInvalidArgument - некорректные входные аргументы.
	// Транспорт: 400 Bad Request.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotMigrated - схема БД не создана.
	// Транспорт: 503 Service Unavailable.
	ErrNotMigrated = errors.New("storage not migrated")
)

// Service — описывает бизнес-логику mensa-scraper.
type Service struct {
	storage storage.Storage
	cfg     config.Config
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithMetrics подключает prometheus-метрики.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		cfg:     cfg,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// today — текущая календарная дата в зоне из конфига.
func (s *Service) today() time.Time {
	return s.now().In(s.cfg.Scraper.Location())
}
