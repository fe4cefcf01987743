package handlers

import (
	"context"

	"github.com/movieticket/booking-platform/orchestrator-service/application"
	"github.com/movieticket/booking-platform/shared/events"
	"github.com/movieticket/booking-platform/shared/logging"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// BookingEventHandlers starts sagas from queued MovieTicketRequest events
type BookingEventHandlers struct {
	processTopic *application.ProcessTopic
}

// NewBookingEventHandlers creates new booking event handlers
func NewBookingEventHandlers(processTopic *application.ProcessTopic) *BookingEventHandlers {
	return &BookingEventHandlers{processTopic: processTopic}
}

// HandlerID returns the unique identifier for this event handler
func (h *BookingEventHandlers) HandlerID() string {
	return "orchestrator-service-booking-handler"
}

// Handle implements the subscriber's handler interface. A failed saga is not
// an error: the message was processed and must not be redelivered.
func (h *BookingEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	if event.EventType != events.BookingRequestedEvent {
		// Unknown event type, ignore
		return nil
	}

	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.EventType,
	})
	ctx = logging.WithContext(ctx, log)

	correlationID := event.CorrelationID
	if correlationID.IsZero() {
		correlationID = event.ID
	}
	ctx = events.ContextWithCorrelationID(ctx, correlationID)

	payload, err := event.MarshalPayload()
	if err != nil {
		return errors.Wrap(err, "failed to read booking payload")
	}

	result, err := h.processTopic.Execute(ctx, payload)
	if err != nil {
		return errors.Wrap(err, "booking rejected")
	}

	log.WithFields(logrus.Fields{
		"saga_id":     result.SagaID,
		"status_code": result.StatusCode,
	}).Info("queued booking processed")

	return nil
}
