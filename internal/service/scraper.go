package service

import (
	"context"

	"github.com/pribylovaa/mensa-upb-stats/internal/models"
)

// Scraper описывает источник меню, который загружает страницы для набора пар
// (дата, столовая) и возвращает извлечённые блюда.
//
// Требования к реализации:
// 1) на каждую пару — ровно один ScrapeResult, затем канал закрывается;
// 2) порядок результатов не гарантируется;
// 3) внутри одной пары блюда идут main -> side -> dessert в порядке строк;
// 4) реализация обязана уважать ctx (отмена/таймауты).
type Scraper interface {
	ScrapeMany(ctx context.Context, items []models.WorkItem) <-chan ScrapeResult
}

// ScrapeResult — результат скрейпинга одной пары.
// Если Err != nil, Dishes не используются.
type ScrapeResult struct {
	Item   models.WorkItem
	Dishes []models.Dish
	Err    error
}
