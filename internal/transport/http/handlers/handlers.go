// handlers — REST-эндпойнты чтения сохранённых блюд и проверки здоровья.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/pribylovaa/mensa-upb-stats/internal/models"
)

// MealService — то, что хендлерам нужно от сервисного слоя.
type MealService interface {
	ListMeals(ctx context.Context, day, canteen string, limit int) ([]models.Meal, error)
}

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	svc   MealService
	ready *atomic.Bool
	db    Pinger
}

// New создаёт Handlers. ready и db могут быть nil:
// тогда /healthz считает сервис готовым и не проверяет БД.
func New(svc MealService, ready *atomic.Bool, db Pinger) *Handlers {
	return &Handlers{svc: svc, ready: ready, db: db}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
