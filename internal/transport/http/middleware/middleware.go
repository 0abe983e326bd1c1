// middleware — net/http мидлвары HTTP API mensa-scraper.
// Порядок в роутере: Recover -> RequestID -> Logging -> Timeout.
package middleware

import (
	"net/http"
)

// Middleware оборачивает http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain оборачивает h так, что mws[0] оказывается самым внешним.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}

// statusWriter запоминает код ответа и число записанных байт для лога запроса.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(p)
	w.count += n
	return n, err
}

// Unwrap нужен http.ResponseController (Flush, SetWriteDeadline).
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
