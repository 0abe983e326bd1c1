package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayLayout — формат даты в запросах к источнику, в ключах и в API.
const DayLayout = "2006-01-02"

// Day приводит момент времени к календарной дате (полночь UTC) в его собственной зоне.
// Так дата из Europe/Berlin не «съезжает» на соседние сутки при сохранении в DATE.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WorkItem — пара (дата, столовая), ожидающая скрейпинга.
// Вычисляется заново на каждый прогон и не сохраняется.
type WorkItem struct {
	Date    time.Time
	Canteen Canteen
}

// Key возвращает ключ пары в формате хранилища.
func (w WorkItem) Key() PairKey {
	return PairKey{Day: w.Date.Format(DayLayout), Canteen: w.Canteen.Identifier()}
}

// PairKey — уже сохранённая пара (дата, идентификатор столовой).
// Canteen — строка как в БД: неизвестные идентификаторы просто ни с чем не совпадут.
type PairKey struct {
	Day     string
	Canteen string
}

// Meal — сохранённое блюдо, как его читает HTTP API.
//
// Особенности:
//   - ID — UUIDv4 (генерируется БД);
//   - Date — календарная дата (полночь UTC);
//   - отсутствующие цены хранятся как SentinelPrice.
type Meal struct {
	ID             uuid.UUID
	Date           time.Time
	Canteen        string
	Name           string
	Category       Category
	ImageURL       string
	PriceStudents  decimal.Decimal
	PriceEmployees decimal.Decimal
	PriceGuests    decimal.Decimal
	Vegan          bool
	Vegetarian     bool
	Extras         []string
	CreatedAt      time.Time
}

// MealFilter — параметры выборки блюд.
//
// Особенности:
//   - Canteen == "" -> все столовые;
//   - Limit <= 0 нормализуется сервисным слоем.
type MealFilter struct {
	Date    time.Time
	Canteen string
	Limit   int
}
