package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"feednbounce-backend/internal/feedback"
	"feednbounce-backend/internal/models"
)

// AdminHandler serves the dashboard endpoints. Route wiring puts JWTAuth
// and RequireAdmin in front of every method here.
type AdminHandler struct {
	agg *feedback.Aggregator
	log zerolog.Logger
}

func NewAdminHandler(agg *feedback.Aggregator, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{agg: agg, log: log}
}

// --- GET /api/admin/stats ---

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.agg.Stats(r.Context())
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- GET /api/admin/sentiments ---

func (h *AdminHandler) GetSentiments(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.agg.SentimentBreakdown(r.Context())
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

// --- GET /api/admin/feedbacks ---

func (h *AdminHandler) GetFeedbacks(w http.ResponseWriter, r *http.Request) {
	enriched, err := h.agg.ListEnriched(r.Context())
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}
	if enriched == nil {
		enriched = []models.EnrichedFeedback{}
	}
	writeJSON(w, http.StatusOK, enriched)
}
