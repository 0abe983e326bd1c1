package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/mensa-upb-stats/internal/metrics"
	"github.com/pribylovaa/mensa-upb-stats/internal/models"
	"github.com/pribylovaa/mensa-upb-stats/internal/service"
	"github.com/pribylovaa/mensa-upb-stats/internal/transport/http/handlers"
)

type call struct {
	day, canteen string
	limit        int
}

// fakeService — MealService, который запоминает аргументы и отдаёт заданный результат.
type fakeService struct {
	got   call
	meals []models.Meal
	err   error
}

func (f *fakeService) ListMeals(_ context.Context, day, canteen string, limit int) ([]models.Meal, error) {
	f.got = call{day: day, canteen: canteen, limit: limit}
	return f.meals, f.err
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(svc handlers.MealService, ready *atomic.Bool, db handlers.Pinger) http.Handler {
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	return NewRouter(handlers.New(svc, ready, db), Options{
		Logger:  discardLogger(),
		Timeout: time.Second,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestListCanteens(t *testing.T) {
	t.Parallel()

	rr := do(t, newTestRouter(&fakeService{}, nil, nil), "/canteens")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var got []handlers.CanteenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 8)
	require.Equal(t, handlers.CanteenResponse{
		ID:  "forum",
		URL: "https://www.studierendenwerk-pb.de/gastronomie/speiseplaene/forum/",
	}, got[0])
	require.Equal(t, "atrium", got[7].ID)
}

func TestListMeals_OK(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	created := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	svc := &fakeService{meals: []models.Meal{{
		ID:             id,
		Date:           time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		Canteen:        "forum",
		Name:           "Lasagne",
		Category:       models.CategoryMain,
		PriceStudents:  decimal.RequireFromString("3.5"),
		PriceEmployees: models.SentinelPrice,
		PriceGuests:    models.SentinelPrice,
		Vegetarian:     true,
		CreatedAt:      created,
	}}}

	rr := do(t, newTestRouter(svc, nil, nil), "/meals?date=2024-05-06&canteen=forum&limit=10")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, call{day: "2024-05-06", canteen: "forum", limit: 10}, svc.got)

	var got handlers.MealsListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)

	m := got.Items[0]
	require.Equal(t, id.String(), m.ID)
	require.Equal(t, "2024-05-06", m.Date)
	require.Equal(t, "main", m.Category)
	require.NotNil(t, m.Prices.Students)
	require.Equal(t, "3.50", *m.Prices.Students)
	require.Nil(t, m.Prices.Employees)
	require.Nil(t, m.Prices.Guests)
	require.True(t, m.Vegetarian)
	require.Equal(t, []string{}, m.Extras)
	require.True(t, created.Equal(m.CreatedAt))
}

func TestListMeals_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"bad limit", "/meals?date=2024-05-06&limit=ten", nil, http.StatusBadRequest, "invalid_argument"},
		{"invalid argument", "/meals?date=bad", fmt.Errorf("svc: %w", service.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"not migrated", "/meals?date=2024-05-06", fmt.Errorf("svc: %w", service.ErrNotMigrated), http.StatusServiceUnavailable, "unavailable"},
		{"internal", "/meals?date=2024-05-06", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := do(t, newTestRouter(&fakeService{err: tt.svcErr}, nil, nil), tt.target)
			require.Equal(t, tt.wantStatus, rr.Code)

			var env struct {
				Error struct {
					Code      string `json:"code"`
					RequestID string `json:"request_id"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
			require.Equal(t, tt.wantCode, env.Error.Code)
			require.Equal(t, rr.Header().Get("X-Request-Id"), env.Error.RequestID)
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	var ready atomic.Bool

	h := newTestRouter(&fakeService{}, &ready, fakePinger{})
	require.Equal(t, http.StatusOK, do(t, h, "/livez").Code)
	require.Equal(t, http.StatusServiceUnavailable, do(t, h, "/healthz").Code)

	ready.Store(true)
	require.Equal(t, http.StatusOK, do(t, h, "/healthz").Code)

	down := newTestRouter(&fakeService{}, &ready, fakePinger{err: errors.New("db down")})
	require.Equal(t, http.StatusServiceUnavailable, do(t, down, "/healthz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	rr := do(t, newTestRouter(&fakeService{}, nil, nil), "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "mensa_planned_items")
}
