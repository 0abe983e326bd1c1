package menu

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pribylovaa/mensa-upb-stats/internal/models"
)

// DefaultImageBaseURL — база для относительных ссылок на фото блюд.
const DefaultImageBaseURL = "https://www.studierendenwerk-pb.de/"

// Метки цен на странице меню.
const (
	labelStudents  = "Studierende"
	labelEmployees = "Bedienstete"
	labelGuests    = "Gäste"
)

var defaultImageBase = mustParseURL(DefaultImageBaseURL)

// ExtractDish строит Dish из одной строки таблицы меню с базой картинок по умолчанию.
// Категорию задаёт вызывающий: строка сама её не содержит.
// ok=false, если у строки нет названия — ожидаемый исход, не ошибка.
func ExtractDish(row *goquery.Selection, category models.Category) (models.Dish, bool) {
	return extractDish(row, category, defaultImageBase)
}

func extractDish(row *goquery.Selection, category models.Category, imageBase *url.URL) (models.Dish, bool) {
	nameNode := row.Find(".desc h4").First()
	if nameNode.Length() == 0 {
		return models.Dish{}, false
	}

	name := strings.TrimSpace(nameNode.Text())
	if name == "" {
		return models.Dish{}, false
	}

	dish := models.Dish{
		Name:     name,
		ImageURL: imageURL(row, imageBase),
		Extras:   extras(row),
		Category: category,
	}

	// Первая встреченная метка выигрывает.
	row.Find(".desc .price").Each(func(_ int, price *goquery.Selection) {
		label, value, ok := priceEntry(price)
		if !ok {
			return
		}

		switch label {
		case labelStudents:
			if dish.PriceStudents == nil {
				dish.PriceStudents = &value
			}
		case labelEmployees:
			if dish.PriceEmployees == nil {
				dish.PriceEmployees = &value
			}
		case labelGuests:
			if dish.PriceGuests == nil {
				dish.PriceGuests = &value
			}
		}
	})

	return dish, true
}

// priceEntry разбирает <div class="price"><strong>Studierende:</strong> 3,50 €</div>.
// Метка — текст первого <strong> без двоеточия в конце, значение — последний текстовый узел.
func priceEntry(price *goquery.Selection) (label, value string, ok bool) {
	strong := price.Find("strong").First()
	if strong.Length() == 0 {
		return "", "", false
	}

	label = strings.TrimSuffix(strings.TrimSpace(strong.Text()), ":")

	nodes := price.Contents()
	if nodes.Length() == 0 {
		return "", "", false
	}

	last := nodes.Last().Get(0)
	if last.Type != html.TextNode {
		return "", "", false
	}

	return label, strings.TrimSpace(last.Data), true
}

func imageURL(row *goquery.Selection, base *url.URL) string {
	src, ok := row.Find(".img img").First().Attr("src")
	if !ok {
		return ""
	}

	ref, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return ""
	}

	return base.ResolveReference(ref).String()
}

// extras собирает title у иконок в порядке документа, дубликаты сохраняются.
func extras(row *goquery.Selection) []string {
	var out []string
	row.Find(".desc .buttons").Children().Each(func(_ int, s *goquery.Selection) {
		if title, ok := s.Attr("title"); ok {
			out = append(out, title)
		}
	})

	return out
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}

	return u
}
