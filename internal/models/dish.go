package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Category — группа блюд на странице меню.
type Category string

const (
	CategoryMain    Category = "main"
	CategorySide    Category = "side"
	CategoryDessert Category = "dessert"
)

// Метки extras, влияющие на флаги vegan/vegetarian.
const (
	ExtraVegan      = "vegan"
	ExtraVegetarian = "vegetarian"
)

// Dish — одно блюдо, извлечённое из строки таблицы меню.
//
// Особенности:
//   - Name непустой после TrimSpace (иначе запись не создаётся);
//   - цены хранятся «сырыми» строками, нормализация — через NormalizePrice;
//   - Extras — в порядке документа, дубликаты допустимы;
//   - после создания не изменяется.
type Dish struct {
	// Name — название блюда.
	Name string
	// ImageURL — абсолютная ссылка на фото, пустая если фото нет.
	ImageURL string
	// PriceStudents — цена для студентов, nil если не указана.
	PriceStudents *string
	// PriceEmployees — цена для сотрудников, nil если не указана.
	PriceEmployees *string
	// PriceGuests — цена для гостей, nil если не указана.
	PriceGuests *string
	// Extras — метки блюда (title у иконок), например "vegan".
	Extras []string
	// Category — группа, из которой взята строка.
	Category Category
}

// SameAs сравнивает блюда для дедупликации: имя, три цены и extras как мультимножество.
// Категория и картинка не участвуют.
func (d Dish) SameAs(other Dish) bool {
	if d.Name != other.Name {
		return false
	}

	if !equalPtr(d.PriceStudents, other.PriceStudents) ||
		!equalPtr(d.PriceEmployees, other.PriceEmployees) ||
		!equalPtr(d.PriceGuests, other.PriceGuests) {
		return false
	}

	if len(d.Extras) != len(other.Extras) {
		return false
	}

	a := slices.Clone(d.Extras)
	b := slices.Clone(other.Extras)
	slices.Sort(a)
	slices.Sort(b)

	return slices.Equal(a, b)
}

// IsVegan сообщает, помечено ли блюдо как веганское.
func (d Dish) IsVegan() bool {
	return slices.Contains(d.Extras, ExtraVegan)
}

// IsVegetarian сообщает, помечено ли блюдо как вегетарианское.
// Веганское блюдо при сохранении тоже считается вегетарианским (см. storage).
func (d Dish) IsVegetarian() bool {
	return slices.Contains(d.Extras, ExtraVegetarian)
}

// StudentPrice — нормализованная цена для студентов.
func (d Dish) StudentPrice() decimal.Decimal { return NormalizePrice(d.PriceStudents) }

// EmployeePrice — нормализованная цена для сотрудников.
func (d Dish) EmployeePrice() decimal.Decimal { return NormalizePrice(d.PriceEmployees) }

// GuestPrice — нормализованная цена для гостей.
func (d Dish) GuestPrice() decimal.Decimal { return NormalizePrice(d.PriceGuests) }

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
