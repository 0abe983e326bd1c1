package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pribylovaa/mensa-upb-stats/pkg/log"
)

// Livez — процесс жив.
func (h *Handlers) Livez(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Healthz — сервис готов: флаг ready выставлен и БД отвечает.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil && !h.ready.Load() {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			log.From(r.Context()).Warn("healthz_db_unavailable", slog.String("err", err.Error()))
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
