package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "github.com/pribylovaa/mensa-upb-stats/internal/transport/http/errors"
)

var errPanic = errors.New("panic in handler")

// Recover — самый внешний мидлвар: паника хендлера превращается в 500/internal
// с JSON-конвертом, на клиент уходит только request_id.
// Стоит снаружи Logging, поэтому пишет в base, а не в логгер запроса.
func Recover(base *slog.Logger) Middleware {
	const op = "transport.http.Recover"

	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				base.LogAttrs(r.Context(), slog.LevelError, "http_panic_recovered",
					slog.String("op", op),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", r.Header.Get(HeaderRequestID)),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				apierrors.WriteError(w, r, errPanic)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
