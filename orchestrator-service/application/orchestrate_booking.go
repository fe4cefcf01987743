package application

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/movieticket/booking-platform/orchestrator-service/domain"
	"github.com/movieticket/booking-platform/shared/events"
	"github.com/movieticket/booking-platform/shared/logging"
	"github.com/movieticket/booking-platform/shared/models"
	"github.com/movieticket/booking-platform/shared/saga"
	"github.com/movieticket/booking-platform/shared/telemetry"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BookingResult is the terminal outcome of one saga
type BookingResult struct {
	SagaID       models.ID           `json:"sagaId"`
	CorrelatorID int                 `json:"correlatorId"`
	State        saga.State          `json:"state"`
	Stage        domain.FailureStage `json:"stage,omitempty"`
	StatusCode   int                 `json:"statusCode"`
	Message      string              `json:"message"`
	TicketID     *int                `json:"ticketId,omitempty"`
}

// Succeeded reports whether the saga reached RESPONDED
func (r *BookingResult) Succeeded() bool {
	return r.State == saga.StateResponded
}

// OrchestrateBooking drives one booking through seat hold, payment, seat
// confirmation, ticket creation and the gateway reply. The first failing
// step ends the saga; nothing after it is called and nothing is undone.
type OrchestrateBooking struct {
	seating   domain.SeatingService
	payment   domain.PaymentService
	ticketing domain.TicketingService
	gateway   domain.GatewayNotifier
	publisher events.Publisher
}

// NewOrchestrateBooking creates the use case. publisher may be nil.
func NewOrchestrateBooking(
	seating domain.SeatingService,
	payment domain.PaymentService,
	ticketing domain.TicketingService,
	gateway domain.GatewayNotifier,
	publisher events.Publisher,
) *OrchestrateBooking {
	return &OrchestrateBooking{
		seating:   seating,
		payment:   payment,
		ticketing: ticketing,
		gateway:   gateway,
		publisher: publisher,
	}
}

// Execute runs the saga to a terminal state. It never fails: every downstream
// problem becomes a FAILED result with the classified status code.
func (uc *OrchestrateBooking) Execute(ctx context.Context, req *domain.BookingRequest) *BookingResult {
	start := time.Now()
	s := saga.New(req.CorrelatorID)

	ctx = domain.WithCorrelatorID(ctx, req.CorrelatorID)
	ctx = logging.WithContext(ctx, logging.FromContext(ctx).WithFields(logrus.Fields{
		"saga_id":       s.ID.String(),
		"correlator_id": req.CorrelatorID,
	}))

	ctx, span := telemetry.StartSpan(ctx, "saga.booking",
		trace.WithAttributes(
			attribute.String("saga.id", s.ID.String()),
			attribute.Int("saga.correlator_id", req.CorrelatorID),
		),
	)
	defer span.End()

	ticketID := uc.run(ctx, s, req)

	result := uc.result(s, ticketID)
	if !result.Succeeded() {
		span.SetStatus(codes.Error, result.Message)
	}
	span.SetAttributes(
		attribute.String("saga.state", result.State.String()),
		attribute.Int("saga.stage", int(result.Stage)),
	)

	telemetry.RecordCounter(ctx, "saga_total", "Completed sagas by outcome", 1,
		attribute.String("state", result.State.String()),
		attribute.Int("stage", int(result.Stage)),
	)
	telemetry.RecordHistogram(ctx, "saga_duration_seconds", "Saga duration", time.Since(start).Seconds(),
		attribute.String("state", result.State.String()),
	)

	logging.FromContext(ctx).WithFields(logrus.Fields{
		"state":       result.State,
		"stage":       result.Stage,
		"status_code": result.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info(result.Message)

	uc.publishOutcome(ctx, result)

	return result
}

// run returns the ticket id on success, nil once the saga has failed
func (uc *OrchestrateBooking) run(ctx context.Context, s *saga.Saga, req *domain.BookingRequest) *int {
	ok := uc.step(ctx, "seat_hold", func(ctx context.Context) (string, bool) {
		resp, exch := uc.seating.HoldSeat(ctx, req.SeatRequest())
		return describe(resp.Status.String(), exch), resp.Held()
	})
	if !uc.advance(ctx, s, ok, saga.StateSeatHeld, domain.StageSeatHold) {
		return nil
	}

	ok = uc.step(ctx, "payment", func(ctx context.Context) (string, bool) {
		resp, exch := uc.payment.Charge(ctx, req.PaymentRequest())
		return describe(resp.Status.String(), exch), resp.Succeeded()
	})
	if !uc.advance(ctx, s, ok, saga.StatePaymentTaken, domain.StagePayment) {
		return nil
	}

	// a failure here leaves the hold in place and the payment captured
	ok = uc.step(ctx, "seat_confirm", func(ctx context.Context) (string, bool) {
		status, exch := uc.seating.ConfirmSeat(ctx, req.SeatConfirmation())
		return describe(status.String(), exch), status == domain.SeatStatusBooked
	})
	if !uc.advance(ctx, s, ok, saga.StateSeatConfirmed, domain.StageSeatConfirm) {
		return nil
	}

	var ticketID *int
	ok = uc.step(ctx, "ticket", func(ctx context.Context) (string, bool) {
		resp, exch := uc.ticketing.CreateTicket(ctx, req.CreateTicketRequest())
		ticketID = resp.TicketID
		status := "no ticket"
		if resp.Issued() {
			status = strconv.Itoa(*resp.TicketID)
		}
		return describe(status, exch), resp.Issued()
	})
	if !uc.advance(ctx, s, ok, saga.StateTicketCreated, domain.StageTicket) {
		return nil
	}

	ok = uc.step(ctx, "gateway_reply", func(ctx context.Context) (string, bool) {
		exch := uc.gateway.SendMovieTicketResponse(ctx, req.MovieTicketResponse(*ticketID))
		return describe(strconv.Itoa(exch.StatusCode), exch), exch.OK()
	})
	if !uc.advance(ctx, s, ok, saga.StateResponded, domain.StageGatewayReply) {
		return nil
	}

	return ticketID
}

// step runs one downstream call inside its own span and logs its status
// before the caller evaluates the outcome
func (uc *OrchestrateBooking) step(ctx context.Context, name string, call func(context.Context) (string, bool)) bool {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "saga.step."+name)
	defer span.End()

	status, ok := call(ctx)

	logging.FromContext(ctx).WithFields(logrus.Fields{
		"step":   name,
		"status": status,
	}).Info("saga step")

	span.SetAttributes(attribute.String("step.status", status), attribute.Bool("step.ok", ok))
	if !ok {
		span.SetStatus(codes.Error, name+" failed")
	}

	telemetry.RecordHistogram(ctx, "saga_step_duration_seconds", "Saga step duration", time.Since(start).Seconds(),
		attribute.String("step", name),
		attribute.Bool("ok", ok),
	)

	return ok
}

// advance moves the saga to next when ok, otherwise fails it at stage.
// It reports whether the saga may continue.
func (uc *OrchestrateBooking) advance(ctx context.Context, s *saga.Saga, ok bool, next saga.State, stage domain.FailureStage) bool {
	from := s.State

	var err error
	if ok {
		err = s.Advance(next)
	} else {
		err = s.Fail(int(stage))
	}
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("saga transition rejected")
		_ = s.Fail(int(stage))
		return false
	}

	logging.FromContext(ctx).WithFields(logrus.Fields{
		"from": from,
		"to":   s.State,
	}).Debug("saga transition")

	return ok
}

func (uc *OrchestrateBooking) result(s *saga.Saga, ticketID *int) *BookingResult {
	result := &BookingResult{
		SagaID:       s.ID,
		CorrelatorID: s.CorrelatorID,
		State:        s.State,
	}

	if s.State == saga.StateResponded {
		result.StatusCode = http.StatusOK
		result.Message = domain.SuccessMessage
		result.TicketID = ticketID
		return result
	}

	failure := domain.Classify(domain.FailureStage(s.Stage))
	result.Stage = failure.Stage
	result.StatusCode = failure.StatusCode
	result.Message = failure.Message()
	return result
}

func (uc *OrchestrateBooking) publishOutcome(ctx context.Context, result *BookingResult) {
	if uc.publisher == nil {
		return
	}

	eventType := events.SagaCompletedEvent
	if !result.Succeeded() {
		eventType = events.SagaFailedEvent
	}

	correlationID, ok := events.CorrelationIDFromContext(ctx)
	if !ok {
		correlationID = result.SagaID
	}

	event := events.NewEvent(result.SagaID, eventType, result).
		WithCorrelationID(correlationID).
		WithMetadata(events.CorrelatorIDKey, strconv.Itoa(result.CorrelatorID)).
		WithMetadata(events.SagaStateKey, result.State.String())

	if err := uc.publisher.Publish(ctx, event); err != nil {
		logging.FromContext(ctx).WithError(err).Warn("failed to publish saga outcome")
	}
}

func describe(status string, exch domain.Exchange) string {
	if exch.Err != nil {
		return "error: " + exch.Err.Error()
	}
	if status == "" {
		return "HTTP " + strconv.Itoa(exch.StatusCode)
	}
	return status
}
