package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

// TestDish_SameAs — порядок extras не важен, остальные поля сравниваются строго.
func TestDish_SameAs(t *testing.T) {
	t.Parallel()

	base := Dish{
		Name:          "Curry",
		PriceStudents: ptr("3,50 €"),
		Extras:        []string{"vegan", "spicy"},
		Category:      CategoryMain,
	}

	tests := []struct {
		name  string
		other Dish
		want  bool
	}{
		{
			name:  "extras in other order",
			other: Dish{Name: "Curry", PriceStudents: ptr("3,50 €"), Extras: []string{"spicy", "vegan"}},
			want:  true,
		},
		{
			name:  "category and image ignored",
			other: Dish{Name: "Curry", PriceStudents: ptr("3,50 €"), Extras: []string{"vegan", "spicy"}, Category: CategorySide, ImageURL: "x"},
			want:  true,
		},
		{
			name:  "different name",
			other: Dish{Name: "Curry ", PriceStudents: ptr("3,50 €"), Extras: []string{"vegan", "spicy"}},
			want:  false,
		},
		{
			name:  "price missing on one side",
			other: Dish{Name: "Curry", Extras: []string{"vegan", "spicy"}},
			want:  false,
		},
		{
			name:  "different guest price",
			other: Dish{Name: "Curry", PriceStudents: ptr("3,50 €"), PriceGuests: ptr("5,00 €"), Extras: []string{"vegan", "spicy"}},
			want:  false,
		},
		{
			name:  "extras multiset differs",
			other: Dish{Name: "Curry", PriceStudents: ptr("3,50 €"), Extras: []string{"vegan", "vegan"}},
			want:  false,
		},
		{
			name:  "extras length differs",
			other: Dish{Name: "Curry", PriceStudents: ptr("3,50 €"), Extras: []string{"vegan"}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, base.SameAs(tt.other))
			require.Equal(t, tt.want, tt.other.SameAs(base), "SameAs must be symmetric")
		})
	}
}

// TestDish_SameAs_DoesNotReorderExtras — сравнение не мутирует исходные срезы.
func TestDish_SameAs_DoesNotReorderExtras(t *testing.T) {
	t.Parallel()

	a := Dish{Name: "X", Extras: []string{"z", "a"}}
	b := Dish{Name: "X", Extras: []string{"a", "z"}}

	require.True(t, a.SameAs(b))
	require.Equal(t, []string{"z", "a"}, a.Extras)
}

// TestDish_Flags — флаги vegan/vegetarian читаются из extras.
func TestDish_Flags(t *testing.T) {
	t.Parallel()

	require.True(t, Dish{Extras: []string{"vegan"}}.IsVegan())
	require.False(t, Dish{Extras: []string{"vegan"}}.IsVegetarian())
	require.True(t, Dish{Extras: []string{"spicy", "vegetarian"}}.IsVegetarian())
	require.False(t, Dish{}.IsVegan())
}

// TestDay_KeepsCalendarDate — дата из локальной зоны не сдвигается при переводе в UTC-полночь.
func TestDay_KeepsCalendarDate(t *testing.T) {
	t.Parallel()

	berlin := time.FixedZone("CEST", 2*3600)
	got := Day(time.Date(2025, 6, 3, 0, 30, 0, 0, berlin))
	require.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), got)

	item := WorkItem{Date: got, Canteen: Forum}
	require.Equal(t, PairKey{Day: "2025-06-03", Canteen: "forum"}, item.Key())
}
