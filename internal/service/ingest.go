package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/mensa-upb-stats/internal/models"
	"github.com/pribylovaa/mensa-upb-stats/pkg/log"
)

// Summary — итог одного прогона оркестратора.
type Summary struct {
	// Items — сколько пар было передано скрейперу.
	Items int
	// Scraped — пары, загруженные без ошибки.
	Scraped int
	// Failed — пары с ошибкой загрузки (отброшены).
	Failed int
	// Dishes — сколько блюд передано consumer.
	Dishes int
}

// ConsumeFunc обрабатывает один успешный результат скрейпинга.
type ConsumeFunc func(ctx context.Context, res ScrapeResult)

// Orchestrate прогоняет items через scraper и отдаёт успешные результаты consume по одному.
//
// Особенности:
//   - неудачные пары логируются (scrape_failed), считаются и отбрасываются, повторов нет;
//   - consume вызывается последовательно из горутины вызывающего;
//   - канал вычитывается до конца даже после отмены ctx.
func (s *Service) Orchestrate(ctx context.Context, scraper Scraper, items []models.WorkItem, consume ConsumeFunc) Summary {
	const op = "service.ingest.Orchestrate"

	lg := log.From(ctx)
	sum := Summary{Items: len(items)}

	if len(items) == 0 {
		return sum
	}

	for res := range scraper.ScrapeMany(ctx, items) {
		if res.Err != nil {
			sum.Failed++
			lg.Warn("scrape_failed",
				slog.String("op", op),
				slog.String("canteen", res.Item.Canteen.Identifier()),
				slog.String("date", res.Item.Date.Format(models.DayLayout)),
				slog.String("err", res.Err.Error()),
			)
			continue
		}

		sum.Scraped++
		sum.Dishes += len(res.Dishes)

		if consume != nil {
			consume(ctx, res)
		}
	}

	return sum
}

// IngestWeek — один прогон с дедупликацией: Plan на окно от сегодняшней даты,
// затем Orchestrate с сохранением блюд.
func (s *Service) IngestWeek(ctx context.Context, scraper Scraper) (Summary, error) {
	const op = "service.ingest.IngestWeek"

	ctx, _ = log.With(ctx, slog.String("run_id", uuid.NewString()))

	items, err := s.Plan(ctx, s.today())
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.run(ctx, op, scraper, items), nil
}

// IngestToday опрашивает все столовые на сегодняшнюю дату без планирования:
// уже сохранённые блюда отсеет UpsertMeal.
func (s *Service) IngestToday(ctx context.Context, scraper Scraper) Summary {
	const op = "service.ingest.IngestToday"

	ctx, _ = log.With(ctx, slog.String("run_id", uuid.NewString()))

	today := models.Day(s.today())
	canteens := models.AllCanteens()

	items := make([]models.WorkItem, 0, len(canteens))
	for _, c := range canteens {
		items = append(items, models.WorkItem{Date: today, Canteen: c})
	}
	s.metrics.SetPlanned(len(items))

	return s.run(ctx, op, scraper, items)
}

// StartIngest запускает периодический IngestWeek с интервалом cfg.Ingest.Interval.
//
// Особенности:
//   - первый прогон выполняется сразу;
//   - ошибка прогона логируется, цикл продолжается;
//   - останавливается по ctx.
func (s *Service) StartIngest(ctx context.Context, scraper Scraper) error {
	const op = "service.ingest.StartIngest"

	interval := s.cfg.Ingest.Interval
	if interval <= 0 {
		return fmt.Errorf("%s: ingest interval must be positive", op)
	}

	lg := log.From(ctx)
	lg.Info("ingest_loop_start",
		slog.String("op", op),
		slog.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick := func() {
		if _, err := s.IngestWeek(ctx, scraper); err != nil {
			lg.Warn("ingest_tick_error",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
	}

	tick()

	for {
		select {
		case <-ctx.Done():
			lg.Info("ingest_loop_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			tick()
		}
	}
}

func (s *Service) run(ctx context.Context, op string, scraper Scraper, items []models.WorkItem) Summary {
	lg := log.From(ctx)
	started := s.now()

	lg.Info("ingest_start",
		slog.String("op", op),
		slog.Int("items", len(items)),
	)

	sum := s.Orchestrate(ctx, scraper, items, s.saveMenu)

	lg.Info("ingest_done",
		slog.String("op", op),
		slog.Int("items", sum.Items),
		slog.Int("scraped", sum.Scraped),
		slog.Int("failed", sum.Failed),
		slog.Int("dishes", sum.Dishes),
		slog.Duration("took", s.now().Sub(started)),
	)

	return sum
}

// saveMenu сохраняет блюда одной пары по порядку.
// Ошибка сохранения блюда логируется и не останавливает остальные блюда.
func (s *Service) saveMenu(ctx context.Context, res ScrapeResult) {
	const op = "service.ingest.saveMenu"

	lg := log.From(ctx)
	canteen := res.Item.Canteen.Identifier()
	date := models.Day(res.Item.Date)

	var inserted, duplicates, failed int

	for _, dish := range res.Dishes {
		ok, err := s.storage.UpsertMeal(ctx, date, canteen, dish)
		s.metrics.ObserveUpsert(canteen, ok, err)

		switch {
		case err != nil:
			failed++
			lg.Warn("meal_upsert_failed",
				slog.String("op", op),
				slog.String("canteen", canteen),
				slog.String("date", date.Format(models.DayLayout)),
				slog.String("name", dish.Name),
				slog.String("err", err.Error()),
			)
		case ok:
			inserted++
		default:
			duplicates++
		}
	}

	lg.Debug("menu_saved",
		slog.String("op", op),
		slog.String("canteen", canteen),
		slog.String("date", date.Format(models.DayLayout)),
		slog.Int("inserted", inserted),
		slog.Int("duplicates", duplicates),
		slog.Int("failed", failed),
	)
}
