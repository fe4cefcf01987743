package events

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/movieticket/booking-platform/shared/models"
)

var ErrInvalidReceiver = errors.New("receiver should be a pointer")

// Topic names the stream an event belongs to
type Topic string

func (t Topic) String() string {
	return string(t)
}

// Metadata carries string attributes alongside an event
type Metadata map[string]string

func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set stores a value. The map must have been created by NewEvent or make.
func (m Metadata) Set(key string, value string) {
	m[key] = value
}

// Event is the envelope used on the wire (SNS, SQS) and in the saga journal
type Event struct {
	ID            models.ID   `json:"id"`
	AggregateID   models.ID   `json:"aggregate_id"`
	Topic         Topic       `json:"topic"`
	EventType     string      `json:"event_type"`
	Version       string      `json:"version"`
	Data          interface{} `json:"data"`
	Metadata      Metadata    `json:"metadata"`
	Timestamp     time.Time   `json:"timestamp"`
	CorrelationID models.ID   `json:"correlation_id"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
}

// EventStore appends and reads events per aggregate
type EventStore interface {
	SaveEvents(ctx context.Context, aggregateID models.ID, events []*Event, expectedVersion int) error
	GetEvents(ctx context.Context, aggregateID models.ID) ([]*Event, error)
}

// NewEvent creates an event whose topic equals its type
func NewEvent(aggregateID models.ID, eventType string, data interface{}) *Event {
	return &Event{
		ID:          models.GenerateUUID(),
		AggregateID: aggregateID,
		Topic:       Topic(eventType),
		EventType:   eventType,
		Version:     "1.0",
		Data:        data,
		Metadata:    make(Metadata),
		Timestamp:   time.Now().UTC(),
	}
}

// WithCorrelationID sets correlation ID
func (e *Event) WithCorrelationID(correlationID models.ID) *Event {
	e.CorrelationID = correlationID
	return e
}

type correlationKey struct{}

// ContextWithCorrelationID ties events published under ctx to the flow that caused them
func ContextWithCorrelationID(ctx context.Context, id models.ID) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFromContext returns the id set by ContextWithCorrelationID
func CorrelationIDFromContext(ctx context.Context) (models.ID, bool) {
	id, ok := ctx.Value(correlationKey{}).(models.ID)
	return id, ok && !id.IsZero()
}

// WithMetadata adds metadata
func (e *Event) WithMetadata(key string, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(Metadata)
	}
	e.Metadata.Set(key, value)
	return e
}

// ToJSON converts event to JSON
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON creates event from JSON
func FromJSON(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	if event.Metadata == nil {
		event.Metadata = make(Metadata)
	}
	return &event, nil
}

// MarshalPayload marshals the event payload
func (e *Event) MarshalPayload() (json.RawMessage, error) {
	if b, ok := e.Data.([]byte); ok {
		return b, nil
	}

	if b, ok := e.Data.(json.RawMessage); ok {
		return b, nil
	}

	return json.Marshal(e.Data)
}

// UnmarshalPayload decodes the payload into v, which must be a pointer
func (e *Event) UnmarshalPayload(v interface{}) error {
	vValue := reflect.ValueOf(v)
	if vValue.Kind() != reflect.Ptr {
		return ErrInvalidReceiver
	}

	vValue = vValue.Elem()
	payloadValue := reflect.ValueOf(e.Data)
	if payloadValue.IsValid() && vValue.Type() == payloadValue.Type() {
		vValue.Set(payloadValue)
		return nil
	}

	raw, err := e.MarshalPayload()
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, v)
}

const (
	// Inbound
	BookingRequestedEvent = "MovieTicketRequest"

	// Saga outcome
	SagaCompletedEvent = "saga.completed"
	SagaFailedEvent    = "saga.failed"
)

// Metadata keys
const (
	CorrelatorIDKey = "correlator_id"
	SagaStateKey    = "saga_state"
)
