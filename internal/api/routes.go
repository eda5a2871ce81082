package api

import (
	"net/http"

	"status-dashboard/internal/logs"
)

func RegisterRoutes(mux *http.ServeMux, h *Handler, hub *Hub, logger *logs.Logger) (http.Handler, error) {
	static, err := staticFS()
	if err != nil {
		return nil, err
	}

	// View APIs
	mux.HandleFunc("GET /api/view", h.GetView)
	mux.HandleFunc("GET /api/config/data-sources", h.GetDataSources)
	mux.Handle("GET /ws", hub)

	// Observability APIs
	mux.HandleFunc("GET /api/logs", h.GetLogs)
	mux.HandleFunc("GET /metrics", h.GetMetrics)
	mux.HandleFunc("GET /health", h.GetHealth)

	// UI
	mux.Handle("GET /", http.FileServer(http.FS(static)))

	return Chain(
		mux,
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
	), nil
}
