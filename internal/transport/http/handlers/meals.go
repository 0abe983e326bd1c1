package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pribylovaa/mensa-upb-stats/internal/models"
	"github.com/pribylovaa/mensa-upb-stats/internal/service"
	apierrors "github.com/pribylovaa/mensa-upb-stats/internal/transport/http/errors"
)

// CanteenResponse — элемент справочника столовых.
type CanteenResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PricesResponse — цены блюда; отсутствующая цена — null.
type PricesResponse struct {
	Students  *string `json:"students"`
	Employees *string `json:"employees"`
	Guests    *string `json:"guests"`
}

// MealResponse — сохранённое блюдо в ответе API.
type MealResponse struct {
	ID         string         `json:"id"`
	Date       string         `json:"date"`
	Canteen    string         `json:"canteen"`
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	ImageURL   string         `json:"image_url,omitempty"`
	Prices     PricesResponse `json:"prices"`
	Vegan      bool           `json:"vegan"`
	Vegetarian bool           `json:"vegetarian"`
	Extras     []string       `json:"extras"`
	CreatedAt  time.Time      `json:"created_at"`
}

// MealsListResponse — ответ GET /meals.
type MealsListResponse struct {
	Items []MealResponse `json:"items"`
}

// ListCanteens отдаёт справочник столовых в фиксированном порядке.
func (h *Handlers) ListCanteens(w http.ResponseWriter, _ *http.Request) {
	all := models.AllCanteens()

	out := make([]CanteenResponse, 0, len(all))
	for _, c := range all {
		out = append(out, CanteenResponse{ID: c.Identifier(), URL: c.URL()})
	}

	writeJSON(w, http.StatusOK, out)
}

// ListMeals — GET /meals?date=YYYY-MM-DD&canteen=<id>&limit=N.
func (h *Handlers) ListMeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var limit int
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("limit: %w", service.ErrInvalidArgument))
			return
		}
		limit = n
	}

	meals, err := h.svc.ListMeals(r.Context(), q.Get("date"), q.Get("canteen"), limit)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	resp := MealsListResponse{Items: make([]MealResponse, 0, len(meals))}
	for _, m := range meals {
		resp.Items = append(resp.Items, mealToResponse(m))
	}

	writeJSON(w, http.StatusOK, resp)
}

func mealToResponse(m models.Meal) MealResponse {
	extras := m.Extras
	if extras == nil {
		extras = []string{}
	}

	return MealResponse{
		ID:       m.ID.String(),
		Date:     m.Date.Format(models.DayLayout),
		Canteen:  m.Canteen,
		Name:     m.Name,
		Category: string(m.Category),
		ImageURL: m.ImageURL,
		Prices: PricesResponse{
			Students:  models.FormatPrice(m.PriceStudents),
			Employees: models.FormatPrice(m.PriceEmployees),
			Guests:    models.FormatPrice(m.PriceGuests),
		},
		Vegan:      m.Vegan,
		Vegetarian: m.Vegetarian,
		Extras:     extras,
		CreatedAt:  m.CreatedAt,
	}
}
