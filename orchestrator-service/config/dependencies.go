package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/movieticket/booking-platform/orchestrator-service/application"
	"github.com/movieticket/booking-platform/orchestrator-service/handlers"
	"github.com/movieticket/booking-platform/orchestrator-service/infrastructure"
	"github.com/movieticket/booking-platform/orchestrator-service/schema"
	"github.com/movieticket/booking-platform/shared/events"
	sharedinfra "github.com/movieticket/booking-platform/shared/infrastructure"
	"github.com/movieticket/booking-platform/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Dependencies struct {
	// Database
	DB         *sqlx.DB
	EventStore *sharedinfra.PostgresEventStore

	// Outbound
	Router    *infrastructure.TopicRouter
	Invoker   *infrastructure.ServiceInvoker
	Seating   *infrastructure.SeatingClient
	Payment   *infrastructure.PaymentClient
	Ticket    *infrastructure.TicketingClient
	Gateway   *infrastructure.GatewayClient
	Validator *schema.Validator

	// Use Cases
	OrchestrateBooking *application.OrchestrateBooking
	ProcessTopic       *application.ProcessTopic
	GetSagaOutcome     *application.GetSagaOutcome

	// HTTP Handlers
	BookingHandlers *handlers.BookingHandlers

	// Event Handlers
	BookingEventHandlers *handlers.BookingEventHandlers

	// Infrastructure
	EventPublisher  events.Publisher
	SNSPublisher    *sharedinfra.SNSPublisherAdapter
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.OrchestratorServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			logrus.WithError(err).Warn("failed to initialize telemetry")
			// Continue without telemetry rather than failing
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Routing table and typed clients
	router, err := infrastructure.NewTopicRouter(config.Destinations())
	if err != nil {
		deps.Close()
		return nil, errors.Wrap(err, "failed to build topic router")
	}
	deps.Router = router
	deps.Invoker = infrastructure.NewServiceInvoker(router, config.RequestTimeout)
	deps.Seating = infrastructure.NewSeatingClient(deps.Invoker)
	deps.Payment = infrastructure.NewPaymentClient(deps.Invoker)
	deps.Ticket = infrastructure.NewTicketingClient(deps.Invoker)
	deps.Gateway = infrastructure.NewGatewayClient(deps.Invoker)

	validator, err := schema.NewValidator()
	if err != nil {
		deps.Close()
		return nil, errors.Wrap(err, "failed to compile schemas")
	}
	deps.Validator = validator

	// Outcome publishing: SNS when enabled, otherwise the log
	var publisher events.Publisher = sharedinfra.NewLogPublisher(nil)
	if config.AWS.SNSEnabled {
		snsPublisher, err := sharedinfra.NewSNSPublisherAdapter(ctx, config.AWS.Region, config.AWS.EndpointSNS, config.AWS.SNSTopicArn)
		if err != nil {
			deps.Close()
			return nil, errors.Wrap(err, "failed to create SNS publisher")
		}
		deps.SNSPublisher = snsPublisher
		publisher = snsPublisher
	}

	// Initialize database
	var store events.EventStore
	if config.Database.Enabled {
		db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
		if err != nil {
			deps.Close()
			return nil, errors.Wrap(err, "failed to connect to database")
		}
		deps.DB = db

		eventStore := sharedinfra.NewPostgresEventStore(db)
		if err := eventStore.EnsureSchema(ctx); err != nil {
			deps.Close()
			return nil, errors.Wrap(err, "failed to prepare saga journal")
		}
		deps.EventStore = eventStore
		store = eventStore
		publisher = sharedinfra.NewStoringPublisher(eventStore, publisher)
	}
	deps.EventPublisher = publisher

	// Initialize use cases
	deps.OrchestrateBooking = application.NewOrchestrateBooking(deps.Seating, deps.Payment, deps.Ticket, deps.Gateway, publisher)
	deps.ProcessTopic = application.NewProcessTopic(validator, deps.OrchestrateBooking)
	deps.GetSagaOutcome = application.NewGetSagaOutcome(store)

	// Initialize handlers
	deps.BookingHandlers = handlers.NewBookingHandlers(deps.ProcessTopic, deps.GetSagaOutcome)
	deps.BookingEventHandlers = handlers.NewBookingEventHandlers(deps.ProcessTopic)

	if config.AWS.SQSEnabled {
		eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(ctx, config.AWS.Region, config.AWS.EndpointSQS, config.AWS.SQSQueueURL,
			sharedinfra.WithWorkers(config.AWS.SQSWorkers),
			sharedinfra.WithReaders(config.AWS.SQSReaders),
			sharedinfra.WithWaitTime(config.AWS.SQSWaitTime),
		)
		if err != nil {
			deps.Close()
			return nil, errors.Wrap(err, "failed to create SQS subscriber")
		}
		deps.EventSubscriber = eventSubscriber
	}

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close event subscriber"))
		}
	}

	if d.SNSPublisher != nil {
		if err := d.SNSPublisher.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close event publisher"))
		}
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close database"))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
