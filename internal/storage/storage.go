// storage определяет контракты доступа к БД для mensa-scraper.
package storage

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_storage.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/mensa-upb-stats/internal/models"
)

var (
	// ErrNotMigrated — схема БД не создана (таблица meals отсутствует).
	ErrNotMigrated = errors.New("schema not migrated")
)

// MealStorage описывает операции над сохранёнными блюдами.
type MealStorage interface {
	// UpsertMeal сохраняет блюдо, ключ — (date, canteenID, dish.Name).
	// Повторный ключ — no-op без ошибки: inserted=false.
	UpsertMeal(ctx context.Context, date time.Time, canteenID string, dish models.Dish) (inserted bool, err error)
	// PersistedPairs возвращает пары (дата, столовая), для которых в [from, to] уже есть блюда.
	PersistedPairs(ctx context.Context, from, to time.Time) (map[models.PairKey]struct{}, error)
	// ListMeals возвращает блюда за дату, опционально только одной столовой.
	ListMeals(ctx context.Context, filter models.MealFilter) ([]models.Meal, error)
}

// Storage задаёт контракт доступа к хранилищу для сервиса.
type Storage interface {
	MealStorage
	Close()
}
