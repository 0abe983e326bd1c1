package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNormalizePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *string
		want string
	}{
		{name: "comma with euro", in: ptr("3,50 €"), want: "3.50"},
		{name: "two-digit euro", in: ptr("12,00 €"), want: "12.00"},
		{name: "nil", in: nil, want: "999.99"},
		{name: "empty", in: ptr(""), want: "999.99"},
		{name: "only euro sign", in: ptr(" € "), want: "999.99"},
		{name: "garbage", in: ptr("abc"), want: "999.99"},
		{name: "euro without space", in: ptr("2,10€"), want: "2.10"},
		{name: "surrounding whitespace", in: ptr("  4,5 €\n"), want: "4.50"},
		{name: "dot decimal", in: ptr("1.25"), want: "1.25"},
		{name: "rounded to two digits", in: ptr("1,255 €"), want: "1.26"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizePrice(tt.in)
			require.Equal(t, tt.want, got.StringFixed(2))
			require.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

// TestDish_PriceShortcuts — отсутствующие цены превращаются в сигнальное значение.
func TestDish_PriceShortcuts(t *testing.T) {
	t.Parallel()

	d := Dish{Name: "Lasagne", PriceStudents: ptr("3,50 €"), PriceEmployees: ptr("5,10 €")}

	require.Equal(t, "3.50", d.StudentPrice().StringFixed(2))
	require.Equal(t, "5.10", d.EmployeePrice().StringFixed(2))
	require.True(t, d.GuestPrice().Equal(SentinelPrice))
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	require.Nil(t, FormatPrice(SentinelPrice))
	require.Nil(t, FormatPrice(decimal.RequireFromString("999.990")))

	got := FormatPrice(decimal.RequireFromString("3.5"))
	require.NotNil(t, got)
	require.Equal(t, "3.50", *got)

	got = FormatPrice(decimal.Zero)
	require.NotNil(t, got)
	require.Equal(t, "0.00", *got)
}
