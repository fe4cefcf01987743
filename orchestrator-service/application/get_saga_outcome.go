package application

import (
	"context"
	"time"

	"github.com/movieticket/booking-platform/shared/events"
	"github.com/movieticket/booking-platform/shared/models"
	"github.com/pkg/errors"
)

var ErrSagaNotFound = errors.New("saga not found")

// GetSagaOutcomeQuery represents the query to get a journaled outcome
type GetSagaOutcomeQuery struct {
	SagaID string `json:"saga_id"`
}

// GetSagaOutcomeResponse is the journaled outcome of a finished saga
type GetSagaOutcomeResponse struct {
	EventType  string        `json:"eventType"`
	RecordedAt time.Time     `json:"recordedAt"`
	Outcome    BookingResult `json:"outcome"`
}

// GetSagaOutcome reads the saga journal
type GetSagaOutcome struct {
	store events.EventStore
}

// NewGetSagaOutcome creates the use case. With a nil store every saga is unknown.
func NewGetSagaOutcome(store events.EventStore) *GetSagaOutcome {
	return &GetSagaOutcome{store: store}
}

// Execute returns the latest journaled event for the saga
func (uc *GetSagaOutcome) Execute(ctx context.Context, query *GetSagaOutcomeQuery) (*GetSagaOutcomeResponse, error) {
	sagaID, err := models.NewID(query.SagaID)
	if err != nil {
		return nil, errors.Wrapf(ErrSagaNotFound, "invalid saga ID %q", query.SagaID)
	}

	if uc.store == nil {
		return nil, errors.Wrap(ErrSagaNotFound, "journal disabled")
	}

	evts, err := uc.store.GetEvents(ctx, sagaID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read saga journal")
	}
	if len(evts) == 0 {
		return nil, errors.Wrap(ErrSagaNotFound, sagaID.String())
	}

	last := evts[len(evts)-1]

	var outcome BookingResult
	if err := last.UnmarshalPayload(&outcome); err != nil {
		return nil, errors.Wrap(err, "failed to decode saga outcome")
	}

	return &GetSagaOutcomeResponse{
		EventType:  last.EventType,
		RecordedAt: last.Timestamp,
		Outcome:    outcome,
	}, nil
}
