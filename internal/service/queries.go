package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/mensa-upb-stats/internal/models"
	"github.com/pribylovaa/mensa-upb-stats/internal/storage"
	"github.com/pribylovaa/mensa-upb-stats/pkg/log"
)

// ListMeals возвращает сохранённые блюда за день с нормализацией лимита по конфигу.
//
// Правила:
// - day — дата в формате YYYY-MM-DD, обязательна;
// - canteen == "" -> все столовые, иначе идентификатор из справочника;
// - limit <= 0 -> cfg.Limits.Default, limit > max -> cfg.Limits.Max.
//
// Ошибки:
// - ErrInvalidArgument — битая дата или неизвестная столовая;
// - ErrNotMigrated — схема не создана (маппинг storage.ErrNotMigrated);
// - прочие ошибки стораджа — обёрнутые и прокинуты наверх.
func (s *Service) ListMeals(ctx context.Context, day, canteen string, limit int) ([]models.Meal, error) {
	const op = "service.queries.ListMeals"

	lg := log.From(ctx)
	lg.Info("list_meals_request",
		slog.String("op", op),
		slog.String("date", day),
		slog.String("canteen", canteen),
		slog.Int("limit", limit),
	)

	date, err := time.Parse(models.DayLayout, strings.TrimSpace(day))
	if err != nil {
		return nil, fmt.Errorf("%s: date %q: %w", op, day, ErrInvalidArgument)
	}

	filter := models.MealFilter{Date: date, Limit: limit}

	if canteen = strings.TrimSpace(canteen); canteen != "" {
		c, err := models.ParseCanteen(canteen)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
		}
		filter.Canteen = c.Identifier()
	}

	if filter.Limit <= 0 {
		filter.Limit = s.cfg.Limits.Default
	}
	if s.cfg.Limits.Max > 0 && filter.Limit > s.cfg.Limits.Max {
		filter.Limit = s.cfg.Limits.Max
	}

	meals, err := s.storage.ListMeals(ctx, filter)
	if err != nil {
		if errors.Is(err, storage.ErrNotMigrated) {
			lg.Warn("list_meals_not_migrated", slog.String("op", op))

			return nil, fmt.Errorf("%s: %w", op, ErrNotMigrated)
		}

		lg.Error("list_meals_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("list_meals_ok",
		slog.String("op", op),
		slog.Int("items", len(meals)),
	)

	return meals, nil
}
