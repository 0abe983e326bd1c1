// http собирает HTTP API mensa-scraper поверх chi.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/mensa-upb-stats/internal/transport/http/handlers"
	"github.com/pribylovaa/mensa-upb-stats/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// Metrics — обработчик /metrics (promhttp); nil — эндпойнт не регистрируется.
	Metrics http.Handler
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(h *handlers.Handlers, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(opts.Logger),
		middleware.RequestID(), // до логирования: id попадает в attrs
		middleware.Logging(opts.Logger),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	root.Get("/livez", h.Livez)
	root.Get("/healthz", h.Healthz)
	if opts.Metrics != nil {
		root.Handle("/metrics", opts.Metrics)
	}

	root.Get("/canteens", h.ListCanteens)
	root.Get("/meals", h.ListMeals)

	return root
}
