// menu реализует service.Scraper для страниц меню Studierendenwerk Paderborn:
// загрузка HTML по (столовая, дата), поиск трёх групп строк и извлечение блюд.
package menu

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/time/rate"

	"github.com/pribylovaa/mensa-upb-stats/internal/metrics"
	"github.com/pribylovaa/mensa-upb-stats/internal/models"
	"github.com/pribylovaa/mensa-upb-stats/internal/service"
	"github.com/pribylovaa/mensa-upb-stats/pkg/log"
)

// DateParam — имя параметра запроса с датой (формат YYYY-MM-DD).
const DateParam = "tx_pamensa_mensa[date]"

// dishGroup — группа строк таблицы и её категория.
type dishGroup struct {
	category models.Category
	selector cascadia.Selector
}

// groups компилируются при инициализации пакета, битый селектор паникует.
var groups = []dishGroup{
	{models.CategoryMain, cascadia.MustCompile("table.table-dishes.main-dishes > tbody > tr.odd > td.description > div.row")},
	{models.CategorySide, cascadia.MustCompile("table.table-dishes.side-dishes > tbody > tr.odd > td.description > div.row")},
	{models.CategoryDessert, cascadia.MustCompile("table.table-dishes.soups > tbody > tr.odd > td.description > div.row")},
}

// Options — параметры Scraper. Нулевые значения заменяются дефолтами.
type Options struct {
	// BaseURL — база страниц меню, к ней добавляется путь столовой.
	BaseURL string
	// ImageBaseURL — база для относительных ссылок на фото.
	ImageBaseURL string
	// UserAgent — заголовок User-Agent запросов.
	UserAgent string
	// MaxConcurrent — сколько страниц загружается одновременно.
	MaxConcurrent int
	// RPS — ограничение запросов в секунду, 0 — без ограничения.
	RPS float64
	// Metrics — необязательные метрики скрейпов.
	Metrics *metrics.Metrics
}

// Scraper загружает и разбирает страницы меню.
//
// Параллелизм ScrapeMany ограничен семафором maxConc. HTTP-клиент настраивается извне
// (таймауты, прокси и т.д.) и разделяется между всеми запросами.
type Scraper struct {
	client    *http.Client
	baseURL   string
	imageBase *url.URL
	userAgent string
	maxConc   int
	limiter   *rate.Limiter
	metrics   *metrics.Metrics
}

// New создаёт новый Scraper.
func New(client *http.Client, opts Options) (*Scraper, error) {
	const op = "menu.New"

	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = models.DefaultMenuBaseURL
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}

	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = DefaultImageBaseURL
	}
	imageBase, err := url.Parse(opts.ImageBaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: image base url: %w", op, err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}

	var limiter *rate.Limiter
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), 1)
	}

	return &Scraper{
		client:    client,
		baseURL:   opts.BaseURL,
		imageBase: imageBase,
		userAgent: opts.UserAgent,
		maxConc:   opts.MaxConcurrent,
		limiter:   limiter,
		metrics:   opts.Metrics,
	}, nil
}

// ScrapeMany загружает меню для всех пар конкурентно и отдаёт результаты в канал.
// На каждую пару приходит ровно один ScrapeResult, порядок — по завершению.
// Канал закрывается после обработки всех пар.
func (s *Scraper) ScrapeMany(ctx context.Context, items []models.WorkItem) <-chan service.ScrapeResult {
	output := make(chan service.ScrapeResult)

	go func() {
		defer close(output)

		sem := make(chan struct{}, s.maxConc)
		var wg sync.WaitGroup

		for _, item := range items {
			select {
			case <-ctx.Done():
				// Оставшиеся пары всё равно получают результат с ошибкой контекста.
				wg.Add(1)
				go func() {
					defer wg.Done()
					output <- service.ScrapeResult{Item: item, Err: ctx.Err()}
				}()
				continue
			case sem <- struct{}{}:
			}

			wg.Add(1)
			go func() {
				defer func() {
					<-sem
					wg.Done()
				}()

				started := time.Now()
				dishes, err := s.Scrape(ctx, item.Date, item.Canteen)
				s.metrics.ObserveScrape(item.Canteen.Identifier(), time.Since(started), err)

				output <- service.ScrapeResult{Item: item, Dishes: dishes, Err: err}
			}()
		}

		wg.Wait()
	}()

	return output
}

// Scrape загружает меню одной столовой на одну дату.
// Блюда идут в порядке main -> side -> dessert, внутри группы — в порядке строк.
func (s *Scraper) Scrape(ctx context.Context, date time.Time, canteen models.Canteen) ([]models.Dish, error) {
	const op = "menu.Scrape"

	lg := log.From(ctx)

	if !canteen.Valid() {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUnknownCanteen)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: rate_wait: %w", op, err)
		}
	}

	target := s.requestURL(date, canteen)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	lg.Debug("scrape_request",
		slog.String("op", op),
		slog.String("canteen", canteen.Identifier()),
		slog.String("date", date.Format(models.DayLayout)),
	)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: parse_html: %w", op, err)
	}

	dishes := s.extractAll(doc)

	lg.Debug("scrape_done",
		slog.String("op", op),
		slog.String("canteen", canteen.Identifier()),
		slog.String("date", date.Format(models.DayLayout)),
		slog.Int("dishes", len(dishes)),
	)

	return dishes, nil
}

// extractAll прогоняет три группы строк через экстрактор.
func (s *Scraper) extractAll(doc *goquery.Document) []models.Dish {
	var out []models.Dish

	for _, g := range groups {
		doc.FindMatcher(g.selector).Each(func(_ int, row *goquery.Selection) {
			if dish, ok := extractDish(row, g.category, s.imageBase); ok {
				out = append(out, dish)
			}
		})
	}

	return out
}

// requestURL собирает адрес страницы столовой с датой в query.
func (s *Scraper) requestURL(date time.Time, canteen models.Canteen) string {
	q := url.Values{}
	q.Set(DateParam, date.Format(models.DayLayout))

	return s.baseURL + canteen.Path() + "?" + q.Encode()
}
