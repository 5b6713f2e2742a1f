package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"feednbounce-backend/internal/feedback"
	"feednbounce-backend/internal/middleware"
	"feednbounce-backend/internal/models"
)

type FeedbackHandler struct {
	svc *feedback.Service
	log zerolog.Logger
}

func NewFeedbackHandler(svc *feedback.Service, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, log: log}
}

type SubmitFeedbackRequest struct {
	Category string `json:"category" validate:"required,oneof=product service"`
	ItemName string `json:"item_name" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

// --- POST /api/feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	var req SubmitFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.log, err)
		return
	}

	if _, err := h.svc.Submit(r.Context(), ident, feedback.SubmitInput{
		Category: req.Category,
		ItemName: req.ItemName,
		Message:  req.Message,
	}); err != nil {
		writeAppError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback submitted successfully"})
}

// --- POST /api/feedback/guest ---

func (h *FeedbackHandler) SubmitGuestFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, h.log, err)
		return
	}

	created, err := h.svc.Submit(r.Context(), nil, feedback.SubmitInput{
		Category: req.Category,
		ItemName: req.ItemName,
		Message:  req.Message,
	})
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}

	// The guest id is the submitter's only handle on the record.
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Feedback submitted successfully",
		"guest_id": created.SubmitterID,
	})
}

// --- GET /api/feedback/history ---

func (h *FeedbackHandler) History(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())
	if ident == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	feedbacks, err := h.svc.History(r.Context(), *ident)
	if err != nil {
		writeAppError(w, h.log, err)
		return
	}
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}
	writeJSON(w, http.StatusOK, feedbacks)
}
