package infrastructure

import (
	"context"

	"github.com/movieticket/booking-platform/shared/events"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	_ events.Publisher = (*LogPublisher)(nil)
	_ events.Publisher = (*StoringPublisher)(nil)
)

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct {
	logger *logrus.Logger
}

func NewLogPublisher(logger *logrus.Logger) *LogPublisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	for _, e := range evts {
		p.logger.WithFields(logrus.Fields{
			"event_id":     e.ID,
			"event_type":   e.EventType,
			"aggregate_id": e.AggregateID,
			"metadata":     e.Metadata,
		}).Info("event published")
	}
	return nil
}

// StoringPublisher journals events per aggregate before forwarding them.
// Each aggregate's batch must be the first write to its stream.
type StoringPublisher struct {
	store events.EventStore
	next  events.Publisher
}

func NewStoringPublisher(store events.EventStore, next events.Publisher) *StoringPublisher {
	return &StoringPublisher{store: store, next: next}
}

func (p *StoringPublisher) Publish(ctx context.Context, evts ...*events.Event) error {
	grouped := make(map[string][]*events.Event)
	var order []string
	for _, e := range evts {
		key := e.AggregateID.String()
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], e)
	}

	for _, key := range order {
		batch := grouped[key]
		if err := p.store.SaveEvents(ctx, batch[0].AggregateID, batch, 0); err != nil {
			return errors.Wrapf(err, "failed to journal events for %s", key)
		}
	}

	if p.next == nil {
		return nil
	}
	return p.next.Publish(ctx, evts...)
}
