// metrics — prometheus-метрики пайплайна скрейпинга.
// Все методы безопасны для nil *Metrics: сервис и скрейпер работают и без метрик.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Значения метки result.
const (
	ResultOK        = "ok"
	ResultError     = "error"
	ResultInserted  = "inserted"
	ResultDuplicate = "duplicate"
)

// Metrics — набор коллекторов mensa-scraper.
type Metrics struct {
	Scrapes        *prometheus.CounterVec
	Upserts        *prometheus.CounterVec
	ScrapeDuration *prometheus.HistogramVec
	PlannedItems   prometheus.Gauge
}

// New создаёт коллекторы и регистрирует их в reg (если reg != nil).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mensa_scrapes_total",
			Help: "Menu page scrapes by canteen and result.",
		}, []string{"canteen", "result"}),
		Upserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mensa_meals_upserted_total",
			Help: "Meal upserts by canteen and result (inserted, duplicate, error).",
		}, []string{"canteen", "result"}),
		ScrapeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mensa_scrape_duration_seconds",
			Help:    "Duration of a single menu page fetch and parse.",
			Buckets: prometheus.DefBuckets,
		}, []string{"canteen"}),
		PlannedItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mensa_planned_items",
			Help: "Work items planned by the last ingest run.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Scrapes, m.Upserts, m.ScrapeDuration, m.PlannedItems)
	}

	return m
}

// ObserveScrape учитывает результат и длительность одного скрейпа.
func (m *Metrics) ObserveScrape(canteen string, took time.Duration, err error) {
	if m == nil {
		return
	}

	result := ResultOK
	if err != nil {
		result = ResultError
	}

	m.Scrapes.WithLabelValues(canteen, result).Inc()
	m.ScrapeDuration.WithLabelValues(canteen).Observe(took.Seconds())
}

// ObserveUpsert учитывает исход сохранения одного блюда.
func (m *Metrics) ObserveUpsert(canteen string, inserted bool, err error) {
	if m == nil {
		return
	}

	result := ResultInserted
	switch {
	case err != nil:
		result = ResultError
	case !inserted:
		result = ResultDuplicate
	}

	m.Upserts.WithLabelValues(canteen, result).Inc()
}

// SetPlanned выставляет размер последнего плана.
func (m *Metrics) SetPlanned(n int) {
	if m == nil {
		return
	}

	m.PlannedItems.Set(float64(n))
}
