package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/movieticket/booking-platform/shared/events"
	"github.com/movieticket/booking-platform/shared/models"
	"github.com/pkg/errors"
)

var _ events.EventStore = (*PostgresEventStore)(nil)

// ErrConcurrencyConflict is returned when the stream moved past expectedVersion
var ErrConcurrencyConflict = errors.New("concurrency conflict")

const journalSchema = `
CREATE TABLE IF NOT EXISTS saga_journal (
	id             UUID PRIMARY KEY,
	aggregate_id   UUID NOT NULL,
	event_type     TEXT NOT NULL,
	version        TEXT NOT NULL,
	data           JSONB NOT NULL,
	metadata       JSONB NOT NULL,
	timestamp      TIMESTAMPTZ NOT NULL,
	correlation_id TEXT NOT NULL DEFAULT '',
	stream_version INT NOT NULL,
	UNIQUE (aggregate_id, stream_version)
)`

// PostgresEventStore journals saga events in the saga_journal table
type PostgresEventStore struct {
	db *sqlx.DB
}

// NewPostgresEventStore creates a new PostgresEventStore
func NewPostgresEventStore(db *sqlx.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

// EnsureSchema creates the journal table if missing
func (es *PostgresEventStore) EnsureSchema(ctx context.Context) error {
	if _, err := es.db.ExecContext(ctx, journalSchema); err != nil {
		return errors.Wrap(err, "failed to create saga_journal")
	}
	return nil
}

type postgresEvent struct {
	ID            string    `db:"id"`
	AggregateID   string    `db:"aggregate_id"`
	EventType     string    `db:"event_type"`
	Version       string    `db:"version"`
	Data          []byte    `db:"data"`
	Metadata      []byte    `db:"metadata"`
	Timestamp     time.Time `db:"timestamp"`
	CorrelationID string    `db:"correlation_id"`
	StreamVersion int       `db:"stream_version"`
}

// SaveEvents appends events to the aggregate's stream if it is still at expectedVersion
func (es *PostgresEventStore) SaveEvents(ctx context.Context, aggregateID models.ID, evts []*events.Event, expectedVersion int) error {
	if len(evts) == 0 {
		return nil
	}

	tx, err := es.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	var currentVersion int
	err = tx.GetContext(ctx, &currentVersion,
		"SELECT COALESCE(MAX(stream_version), 0) FROM saga_journal WHERE aggregate_id = $1",
		aggregateID.String())
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, "failed to get current version")
	}

	if currentVersion != expectedVersion {
		return errors.Wrapf(ErrConcurrencyConflict, "expected version %d, got %d", expectedVersion, currentVersion)
	}

	query := `
		INSERT INTO saga_journal (
			id, aggregate_id, event_type, version, data, metadata,
			timestamp, correlation_id, stream_version
		) VALUES (
			:id, :aggregate_id, :event_type, :version, :data, :metadata,
			:timestamp, :correlation_id, :stream_version
		)`

	for i, event := range evts {
		row, err := toPostgres(event, currentVersion+i+1)
		if err != nil {
			return errors.Wrap(err, "failed to convert event")
		}

		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return errors.Wrap(err, "failed to insert event")
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit journal")
}

// GetEvents returns the aggregate's stream in order; empty when unknown
func (es *PostgresEventStore) GetEvents(ctx context.Context, aggregateID models.ID) ([]*events.Event, error) {
	query := `
		SELECT id, aggregate_id, event_type, version, data, metadata,
			   timestamp, correlation_id, stream_version
		FROM saga_journal
		WHERE aggregate_id = $1
		ORDER BY stream_version ASC`

	var rows []postgresEvent
	if err := es.db.SelectContext(ctx, &rows, query, aggregateID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to get events")
	}

	evts := make([]*events.Event, len(rows))
	for i := range rows {
		event, err := toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		evts[i] = event
	}

	return evts, nil
}

func toPostgres(event *events.Event, streamVersion int) (*postgresEvent, error) {
	data, err := event.MarshalPayload()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event data")
	}

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event metadata")
	}

	return &postgresEvent{
		ID:            event.ID.String(),
		AggregateID:   event.AggregateID.String(),
		EventType:     event.EventType,
		Version:       event.Version,
		Data:          data,
		Metadata:      metadata,
		Timestamp:     event.Timestamp,
		CorrelationID: event.CorrelationID.String(),
		StreamVersion: streamVersion,
	}, nil
}

func toDomain(row *postgresEvent) (*events.Event, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid event ID")
	}

	aggregateID, err := models.NewID(row.AggregateID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid aggregate ID")
	}

	var rawMetadata map[string]interface{}
	if err := json.Unmarshal(row.Metadata, &rawMetadata); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal event metadata")
	}

	metadata := make(events.Metadata, len(rawMetadata))
	for k, v := range rawMetadata {
		if str, ok := v.(string); ok {
			metadata.Set(k, str)
		} else {
			metadata.Set(k, fmt.Sprintf("%v", v))
		}
	}

	return &events.Event{
		ID:            id,
		AggregateID:   aggregateID,
		Topic:         events.Topic(row.EventType),
		EventType:     row.EventType,
		Version:       row.Version,
		Data:          json.RawMessage(row.Data),
		Metadata:      metadata,
		Timestamp:     row.Timestamp,
		CorrelationID: models.ID(row.CorrelationID),
	}, nil
}
