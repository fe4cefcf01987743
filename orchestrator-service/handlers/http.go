package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/movieticket/booking-platform/orchestrator-service/application"
	"github.com/movieticket/booking-platform/shared/logging"
	"github.com/pkg/errors"
)

const (
	SagaIDHeader    = "X-Saga-Id"
	maxRequestBytes = 64 << 10
)

// BookingHandlers contains the orchestrator HTTP handlers
type BookingHandlers struct {
	processTopic   *application.ProcessTopic
	getSagaOutcome *application.GetSagaOutcome
}

// NewBookingHandlers creates new booking handlers
func NewBookingHandlers(
	processTopic *application.ProcessTopic,
	getSagaOutcome *application.GetSagaOutcome,
) *BookingHandlers {
	return &BookingHandlers{
		processTopic:   processTopic,
		getSagaOutcome: getSagaOutcome,
	}
}

// RegisterRoutes registers the /api/v1 routes
func (h *BookingHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/processTopic", h.ProcessTopic)
		r.Get("/sagas/{id}", h.GetSagaOutcome)
	})
}

// ProcessTopic runs a booking saga and answers with its plain-text outcome
func (h *BookingHandlers) ProcessTopic(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.processTopic.Execute(r.Context(), body)
	if err != nil {
		if errors.Is(err, application.ErrUnsupportedTopic) || errors.Is(err, application.ErrInvalidPayload) {
			logging.FromContext(r.Context()).WithError(err).Info("rejected inbound message")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(SagaIDHeader, result.SagaID.String())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(result.StatusCode)
	_, _ = io.WriteString(w, result.Message)
}

// GetSagaOutcome handles journaled outcome lookups
func (h *BookingHandlers) GetSagaOutcome(w http.ResponseWriter, r *http.Request) {
	query := &application.GetSagaOutcomeQuery{
		SagaID: chi.URLParam(r, "id"),
	}

	response, err := h.getSagaOutcome.Execute(r.Context(), query)
	if err != nil {
		if errors.Is(err, application.ErrSagaNotFound) {
			http.Error(w, "saga not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
