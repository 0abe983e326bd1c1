package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/mensa-upb-stats/internal/models"
	"github.com/pribylovaa/mensa-upb-stats/pkg/log"
)

// LookaheadDates возвращает days календарных дат, начиная с today включительно.
// Даты нормализуются models.Day (полночь UTC той же календарной даты).
func LookaheadDates(today time.Time, days int) []time.Time {
	if days <= 0 {
		return nil
	}

	start := models.Day(today)
	out := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}

	return out
}

// PlanWork строит список пар для скрейпинга.
//
// Правила:
//   - декартово произведение dates × AllCanteens(), порядок: дата, затем столовая;
//   - пары из persisted пропускаются;
//   - столовые из excluded пропускаются, неизвестные идентификаторы игнорируются;
//   - оба фильтра применяются независимо.
func PlanWork(dates []time.Time, persisted map[models.PairKey]struct{}, excluded []string) []models.WorkItem {
	skip := make(map[models.Canteen]struct{}, len(excluded))
	for _, id := range excluded {
		if c, err := models.ParseCanteen(id); err == nil {
			skip[c] = struct{}{}
		}
	}

	canteens := models.AllCanteens()
	out := make([]models.WorkItem, 0, len(dates)*len(canteens))

	for _, date := range dates {
		for _, c := range canteens {
			if _, ok := skip[c]; ok {
				continue
			}

			item := models.WorkItem{Date: date, Canteen: c}
			if _, ok := persisted[item.Key()]; ok {
				continue
			}

			out = append(out, item)
		}
	}

	return out
}

// Plan вычисляет работу на окно cfg.Scraper.LookaheadDays, начиная с today.
// Уже сохранённые пары берутся из хранилища, исключения — из cfg.Scraper.ExcludedCanteens.
func (s *Service) Plan(ctx context.Context, today time.Time) ([]models.WorkItem, error) {
	const op = "service.planner.Plan"

	lg := log.From(ctx)

	dates := LookaheadDates(today, s.cfg.Scraper.LookaheadDays)
	if len(dates) == 0 {
		return nil, nil
	}

	persisted, err := s.storage.PersistedPairs(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		lg.Error("plan_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: persisted_pairs: %w", op, err)
	}

	items := PlanWork(dates, persisted, s.cfg.Scraper.ExcludedCanteens)
	s.metrics.SetPlanned(len(items))

	lg.Info("plan_ok",
		slog.String("op", op),
		slog.String("from", dates[0].Format(models.DayLayout)),
		slog.String("to", dates[len(dates)-1].Format(models.DayLayout)),
		slog.Int("persisted", len(persisted)),
		slog.Int("excluded", len(s.cfg.Scraper.ExcludedCanteens)),
		slog.Int("items", len(items)),
	)

	return items, nil
}
