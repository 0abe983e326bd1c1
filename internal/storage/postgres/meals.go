package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/mensa-upb-stats/internal/models"
)

// UpsertMeal сохраняет блюдо с ключом (date, canteen, name).
//
// Особенности:
//   - существующая строка не меняется (ON CONFLICT DO NOTHING), inserted=false;
//   - отсутствующие цены сохраняются как models.SentinelPrice;
//   - vegetarian хранится как vegan || vegetarian;
//   - пустой ImageURL -> NULL.
func (s *Storage) UpsertMeal(ctx context.Context, date time.Time, canteenID string, dish models.Dish) (bool, error) {
	const op = "storage.postgres.UpsertMeal"

	extras := dish.Extras
	if extras == nil {
		extras = []string{}
	}

	tag, err := s.db.Exec(ctx, `
	INSERT INTO meals (date, canteen, name, dish_type, image_src,
		price_students, price_employees, price_guests, vegan, vegetarian, extras)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (date, canteen, name) DO NOTHING
	`, models.Day(date), canteenID, dish.Name, string(dish.Category), nullIfEmpty(dish.ImageURL),
		dish.StudentPrice(), dish.EmployeePrice(), dish.GuestPrice(),
		dish.IsVegan(), dish.IsVegan() || dish.IsVegetarian(), extras)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return tag.RowsAffected() == 1, nil
}

// PersistedPairs возвращает пары (дата, столовая), по которым в [from, to] есть хотя бы одно блюдо.
func (s *Storage) PersistedPairs(ctx context.Context, from, to time.Time) (map[models.PairKey]struct{}, error) {
	const op = "storage.postgres.PersistedPairs"

	rows, err := s.db.Query(ctx, `
	SELECT DISTINCT date, canteen
	FROM meals
	WHERE date BETWEEN $1 AND $2
	`, models.Day(from), models.Day(to))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}
	defer rows.Close()

	out := make(map[models.PairKey]struct{})
	for rows.Next() {
		var (
			date    time.Time
			canteen string
		)
		if scanErr := rows.Scan(&date, &canteen); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		out[models.PairKey{Day: date.Format(models.DayLayout), Canteen: canteen}] = struct{}{}
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, mapErr(rows.Err()))
	}

	return out, nil
}

// ListMeals возвращает блюда за дату в порядке (canteen, created_at, id).
// Пустой filter.Canteen -> все столовые. Limit <= 0 трактуется как 1.
func (s *Storage) ListMeals(ctx context.Context, filter models.MealFilter) ([]models.Meal, error) {
	const op = "storage.postgres.ListMeals"

	limit := filter.Limit
	if limit <= 0 {
		limit = 1
	}

	rows, err := s.db.Query(ctx, `
	SELECT id, date, canteen, name, dish_type, image_src,
		price_students, price_employees, price_guests, vegan, vegetarian, extras, created_at
	FROM meals
	WHERE date = $1 AND ($2 = '' OR canteen = $2)
	ORDER BY canteen, created_at, id
	LIMIT $3
	`, models.Day(filter.Date), filter.Canteen, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	meals, err := pgx.CollectRows(rows, scanMeal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapErr(err))
	}

	return meals, nil
}

func scanMeal(row pgx.CollectableRow) (models.Meal, error) {
	var (
		m        models.Meal
		category string
		image    *string
	)

	err := row.Scan(
		&m.ID,
		&m.Date,
		&m.Canteen,
		&m.Name,
		&category,
		&image,
		&m.PriceStudents,
		&m.PriceEmployees,
		&m.PriceGuests,
		&m.Vegan,
		&m.Vegetarian,
		&m.Extras,
		&m.CreatedAt,
	)
	if err != nil {
		return models.Meal{}, fmt.Errorf("scan row: %w", err)
	}

	m.Category = models.Category(category)
	if image != nil {
		m.ImageURL = *image
	}
	m.CreatedAt = m.CreatedAt.UTC()

	return m, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
