package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/movieticket/booking-platform/orchestrator-service/domain"
	"github.com/movieticket/booking-platform/shared/events"
	"github.com/pkg/errors"
)

var (
	ErrUnsupportedTopic = errors.New("unsupported topic")
	ErrInvalidPayload   = errors.New("invalid payload")
)

// PayloadValidator checks a raw message against the schema for its topic
type PayloadValidator interface {
	Validate(topicName string, payload []byte) error
}

// Booker runs a booking saga
type Booker interface {
	Execute(ctx context.Context, req *domain.BookingRequest) *BookingResult
}

// ProcessTopic is the inbound entry point: it accepts a topic message, checks
// it and starts a saga when it is a MovieTicketRequest.
type ProcessTopic struct {
	validator PayloadValidator
	booker    Booker
}

func NewProcessTopic(validator PayloadValidator, booker Booker) *ProcessTopic {
	return &ProcessTopic{
		validator: validator,
		booker:    booker,
	}
}

type envelope struct {
	TopicName string `json:"topicName"`
}

// Execute returns ErrUnsupportedTopic or ErrInvalidPayload before any saga
// starts; otherwise it returns the saga's result.
func (uc *ProcessTopic) Execute(ctx context.Context, payload []byte) (*BookingResult, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, errors.Wrap(ErrInvalidPayload, err.Error())
	}

	if env.TopicName != events.BookingRequestedEvent {
		if _, err := domain.ParseTopic(env.TopicName); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedTopic, err)
		}
		return nil, errors.Wrapf(ErrUnsupportedTopic, "%q is sent by the orchestrator, not to it", env.TopicName)
	}

	if err := uc.validator.Validate(env.TopicName, payload); err != nil {
		return nil, errors.Wrap(ErrInvalidPayload, err.Error())
	}

	var req domain.BookingRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, errors.Wrap(ErrInvalidPayload, err.Error())
	}

	return uc.booker.Execute(ctx, &req), nil
}
