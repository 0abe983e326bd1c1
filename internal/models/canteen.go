// models содержит доменные сущности сервиса сбора меню столовых.
// Эти типы используются слоями скрейпинга, бизнес-логики, хранилища и транспорта.
package models

import (
	"errors"
	"fmt"
)

// ErrUnknownCanteen — строковый идентификатор не принадлежит закрытому набору столовых.
var ErrUnknownCanteen = errors.New("unknown canteen identifier")

// DefaultMenuBaseURL — базовый адрес страниц меню Studierendenwerk Paderborn.
const DefaultMenuBaseURL = "https://www.studierendenwerk-pb.de/gastronomie/speiseplaene/"

// Canteen — одна из столовых закрытого набора.
//
// Особенности:
//   - нулевое значение не является валидной столовой;
//   - набор фиксирован, регистрация новых значений во время работы не поддерживается.
type Canteen uint8

const (
	Forum Canteen = iota + 1
	Academica
	Picknick
	BonaVista
	GrillCafe
	ZM2
	Basilica
	Atrium
)

// canteenInfo — строка таблицы справочника.
type canteenInfo struct {
	id   string
	path string
}

// directory — исчерпывающая таблица справочника в порядке перечисления.
var directory = [...]struct {
	canteen Canteen
	info    canteenInfo
}{
	{Forum, canteenInfo{id: "forum", path: "forum/"}},
	{Academica, canteenInfo{id: "academica", path: "mensa-academica/"}},
	{Picknick, canteenInfo{id: "picknick", path: "picknick/"}},
	{BonaVista, canteenInfo{id: "bona-vista", path: "bona-vista/"}},
	{GrillCafe, canteenInfo{id: "grillcafe", path: "grillcafe/"}},
	{ZM2, canteenInfo{id: "zm2", path: "mensa-zm2/"}},
	{Basilica, canteenInfo{id: "basilica", path: "mensa-basilica-hamm/"}},
	{Atrium, canteenInfo{id: "atrium", path: "mensa-atrium-lippstadt/"}},
}

// byIdentifier — обратный индекс для ParseCanteen.
var byIdentifier = func() map[string]Canteen {
	m := make(map[string]Canteen, len(directory))
	for _, row := range directory {
		m[row.info.id] = row.canteen
	}

	return m
}()

// AllCanteens возвращает все столовые в фиксированном порядке перечисления.
// Каждый вызов возвращает новый срез.
func AllCanteens() []Canteen {
	out := make([]Canteen, 0, len(directory))
	for _, row := range directory {
		out = append(out, row.canteen)
	}

	return out
}

// ParseCanteen разбирает идентификатор столовой.
// Для строки вне закрытого набора возвращает ошибку, обёрнутую вокруг ErrUnknownCanteen.
func ParseCanteen(s string) (Canteen, error) {
	if c, ok := byIdentifier[s]; ok {
		return c, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCanteen, s)
}

func (c Canteen) info() (canteenInfo, bool) {
	if c < Forum || c > Atrium {
		return canteenInfo{}, false
	}

	return directory[c-1].info, true
}

// Identifier возвращает стабильный идентификатор (ключ в БД).
func (c Canteen) Identifier() string {
	info, ok := c.info()
	if !ok {
		return ""
	}

	return info.id
}

// Path возвращает путь страницы меню относительно базового адреса.
func (c Canteen) Path() string {
	info, ok := c.info()
	if !ok {
		return ""
	}

	return info.path
}

// URL возвращает канонический адрес страницы меню.
func (c Canteen) URL() string {
	if c.Path() == "" {
		return ""
	}

	return DefaultMenuBaseURL + c.Path()
}

// Valid сообщает, принадлежит ли значение закрытому набору.
func (c Canteen) Valid() bool {
	_, ok := c.info()
	return ok
}

func (c Canteen) String() string {
	if id := c.Identifier(); id != "" {
		return id
	}

	return fmt.Sprintf("canteen(%d)", uint8(c))
}
