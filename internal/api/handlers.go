package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"status-dashboard/internal/diagnose"
	"status-dashboard/internal/logs"
	"status-dashboard/internal/metrics"
	"status-dashboard/internal/poller"
	"status-dashboard/internal/view"
)

const defaultLogLines = 50

// ViewSource is the board the handlers read from.
type ViewSource interface {
	Current() view.Dashboard
}

// PollerStatus reports the poll loop for /health.
type PollerStatus interface {
	State() poller.State
	Running() bool
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	board       ViewSource
	poller      PollerStatus
	logger      *logs.Logger
	dataSources map[string]*string
	metrics     http.Handler
	analyzer    *diagnose.Analyzer
}

// NewHandler creates a new API handler. reg backs /metrics together with
// the Go runtime and process collectors.
func NewHandler(
	board ViewSource,
	p PollerStatus,
	logger *logs.Logger,
	reg *metrics.Registry,
	dataSources map[string]*string,
) *Handler {
	prom := prometheus.NewRegistry()
	prom.MustRegister(
		reg,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Handler{
		board:       board,
		poller:      p,
		logger:      logger,
		dataSources: dataSources,
		metrics:     promhttp.HandlerFor(prom, promhttp.HandlerOpts{}),
		analyzer:    diagnose.NewAnalyzer(reg, logger),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

/* ---------------- GET /api/view ---------------- */

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.board.Current())
}

/* ---------------- GET /api/logs?n= ---------------- */

func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	n := defaultLogLines
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			http.Error(w, "n must be a non-negative integer", http.StatusBadRequest)
			return
		}
		n = v
	}
	writeJSON(w, h.logger.GetLast(n))
}

/* ---------------- GET /api/config/data-sources ---------------- */

func (h *Handler) GetDataSources(w http.ResponseWriter, r *http.Request) {
	out := h.dataSources
	if out == nil {
		out = map[string]*string{}
	}
	writeJSON(w, out)
}

/* ---------------- GET /metrics ---------------- */

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

/* ---------------- GET /health ---------------- */

// The endpoint answers 200 whatever the backend or the self report says.
type healthResponse struct {
	Status  string          `json:"status"`
	Poller  poller.State    `json:"poller"`
	Running bool            `json:"running"`
	Self    diagnose.Report `json:"self"`
}

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status:  "ok",
		Poller:  h.poller.State(),
		Running: h.poller.Running(),
		Self:    h.analyzer.Analyze(),
	})
}
