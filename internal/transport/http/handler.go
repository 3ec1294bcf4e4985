// Package httptransport exposes the latest run over HTTP for presentation
// and scraping. It is a thin read-only surface; all checking happens in the
// runner.
package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"helixcheck/internal/report"
	"helixcheck/internal/runner"
)

// ResultProvider hands back the most recent run result, or nil before the
// first run completes.
type ResultProvider func() *runner.Result

// Handler serves run status, findings, and Prometheus metrics.
type Handler struct {
	findings *report.Memory
	latest   ResultProvider
	logger   *slog.Logger
}

// New constructs the HTTP handler over the in-memory findings sink.
func New(findings *report.Memory, latest ResultProvider, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{findings: findings, latest: latest, logger: logger}
}

// Register mounts all endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealthz)
	r.Get("/report", h.handleReport)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// NewRouter wires a standalone router around the handler.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// reportResponse is the JSON envelope for GET /report.
type reportResponse struct {
	RunID    string           `json:"run_id"`
	Passed   bool             `json:"passed"`
	Verdicts []runner.Verdict `json:"verdicts"`
	Findings []report.Finding `json:"findings"`
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	result := h.latest()
	if result == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no run has completed yet"})
		return
	}

	resp := reportResponse{
		RunID:    result.RunID.String(),
		Passed:   result.Passed(),
		Verdicts: result.Verdicts,
		Findings: h.findings.Findings(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.ErrorContext(r.Context(), "encode report", slog.Any("error", err))
	}
}
