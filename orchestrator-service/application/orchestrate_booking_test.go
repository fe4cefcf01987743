package application

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/movieticket/booking-platform/orchestrator-service/domain"
	"github.com/movieticket/booking-platform/orchestrator-service/mocks"
	"github.com/movieticket/booking-platform/shared/events"
	"github.com/movieticket/booking-platform/shared/models"
	"github.com/movieticket/booking-platform/shared/saga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type sagaMocks struct {
	seating   *mocks.MockSeatingService
	payment   *mocks.MockPaymentService
	ticketing *mocks.MockTicketingService
	gateway   *mocks.MockGatewayNotifier
	publisher *mocks.MockPublisher
}

func newSagaMocks(t *testing.T) *sagaMocks {
	return &sagaMocks{
		seating:   mocks.NewMockSeatingService(t),
		payment:   mocks.NewMockPaymentService(t),
		ticketing: mocks.NewMockTicketingService(t),
		gateway:   mocks.NewMockGatewayNotifier(t),
		publisher: mocks.NewMockPublisher(t),
	}
}

func (m *sagaMocks) useCase() *OrchestrateBooking {
	return NewOrchestrateBooking(m.seating, m.payment, m.ticketing, m.gateway, m.publisher)
}

func intPtr(i int) *int {
	return &i
}

func inceptionBooking(correlatorID int) *domain.BookingRequest {
	return &domain.BookingRequest{
		TopicName:    "MovieTicketRequest",
		CorrelatorID: correlatorID,
		Movie: domain.Movie{
			MovieName: "Inception",
			Showtime:  domain.NewTimestamp(time.Date(2025, 11, 11, 1, 30, 0, 0, time.UTC)),
			Genre:     domain.GenreSciFi,
		},
		SeatNumber: "E6",
		Price:      12.50,
		Payment: domain.PaymentRequest{
			TopicName:     "PaymentRequest",
			CorrelatorID:  correlatorID,
			PaymentAmount: 12.50,
			Email:         "dummyemail@gmail.com",
			CreditCard:    "6011000990139424",
			CVC:           "321",
		},
	}
}

var ok200 = domain.Exchange{StatusCode: http.StatusOK}

func outcomeEvent(eventType string) interface{} {
	return mock.MatchedBy(func(evt *events.Event) bool {
		return evt.EventType == eventType
	})
}

func TestOrchestrateBooking_Execute(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*sagaMocks)
		expectedState  saga.State
		expectedStage  domain.FailureStage
		expectedCode   int
		expectedMsg    string
		expectedTicket *int
	}{
		{
			name: "every step succeeds",
			setupMocks: func(m *sagaMocks) {
				m.seating.EXPECT().HoldSeat(mock.Anything, mock.MatchedBy(func(r domain.SeatRequest) bool {
					return r.CorrelatorID == 1001 && r.SeatNumber == "E6" && r.MovieName == "Inception"
				})).Return(domain.SeatResponse{CorrelatorID: 1001, Status: domain.SeatStatusHolding}, ok200).Once()
				m.payment.EXPECT().Charge(mock.Anything, mock.MatchedBy(func(r domain.PaymentRequest) bool {
					return r.CorrelatorID == 1001 && r.Email == "dummyemail@gmail.com" && r.CVC == "321"
				})).Return(domain.PaymentResponse{Status: domain.PaymentStatusSuccessful}, ok200).Once()
				m.seating.EXPECT().ConfirmSeat(mock.Anything, domain.SeatConfirmation{CorrelatorID: 1001}).
					Return(domain.SeatStatusBooked, ok200).Once()
				m.ticketing.EXPECT().CreateTicket(mock.Anything, mock.MatchedBy(func(r domain.CreateTicketRequest) bool {
					return r.CorrelatorID == 1001 && r.SeatNumber == "E6"
				})).Return(domain.CreateTicketResponse{CorrelatorID: 1001, TicketID: intPtr(8060001)}, ok200).Once()
				m.gateway.EXPECT().SendMovieTicketResponse(mock.Anything, mock.MatchedBy(func(r domain.MovieTicketResponse) bool {
					return r.CorrelatorID == 1001 && r.TicketID == 8060001 && r.SeatNumber == "E6"
				})).Return(ok200).Once()
				m.publisher.EXPECT().Publish(mock.Anything, outcomeEvent(events.SagaCompletedEvent)).Return(nil).Once()
			},
			expectedState:  saga.StateResponded,
			expectedCode:   http.StatusOK,
			expectedMsg:    "Orchestration completed successfully!",
			expectedTicket: intPtr(8060001),
		},
		{
			name: "seat not held",
			setupMocks: func(m *sagaMocks) {
				m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
					Return(domain.SeatResponse{Status: domain.SeatStatusRejected}, ok200).Once()
				m.publisher.EXPECT().Publish(mock.Anything, outcomeEvent(events.SagaFailedEvent)).Return(nil).Once()
			},
			expectedState: saga.StateFailed,
			expectedStage: domain.StageSeatHold,
			expectedCode:  http.StatusConflict,
			expectedMsg:   "Orchestration failed at the Seating Service (HOLDING)",
		},
		{
			name: "seating unreachable",
			setupMocks: func(m *sagaMocks) {
				m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
					Return(domain.SeatResponse{}, domain.Exchange{Err: errors.New("connection refused")}).Once()
				m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedState: saga.StateFailed,
			expectedStage: domain.StageSeatHold,
			expectedCode:  http.StatusConflict,
			expectedMsg:   "Orchestration failed at the Seating Service (HOLDING)",
		},
		{
			name: "payment declined",
			setupMocks: func(m *sagaMocks) {
				m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
					Return(domain.SeatResponse{Status: domain.SeatStatusHolding}, ok200).Once()
				m.payment.EXPECT().Charge(mock.Anything, mock.Anything).
					Return(domain.PaymentResponse{Status: domain.PaymentStatusDeclined}, ok200).Once()
				m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedState: saga.StateFailed,
			expectedStage: domain.StagePayment,
			expectedCode:  http.StatusBadGateway,
			expectedMsg:   "Orchestration failed at the Payment Service",
		},
		{
			name: "confirmation not booked",
			setupMocks: func(m *sagaMocks) {
				m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
					Return(domain.SeatResponse{Status: domain.SeatStatusHolding}, ok200).Once()
				m.payment.EXPECT().Charge(mock.Anything, mock.Anything).
					Return(domain.PaymentResponse{Status: domain.PaymentStatusSuccessful}, ok200).Once()
				m.seating.EXPECT().ConfirmSeat(mock.Anything, mock.Anything).
					Return(domain.SeatStatusHolding, ok200).Once()
				m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedState: saga.StateFailed,
			expectedStage: domain.StageSeatConfirm,
			expectedCode:  http.StatusInternalServerError,
			expectedMsg:   "Orchestration failed at the Seating Service (BOOKING)",
		},
		{
			name: "ticket id missing despite 200",
			setupMocks: func(m *sagaMocks) {
				m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
					Return(domain.SeatResponse{Status: domain.SeatStatusHolding}, ok200).Once()
				m.payment.EXPECT().Charge(mock.Anything, mock.Anything).
					Return(domain.PaymentResponse{Status: domain.PaymentStatusSuccessful}, ok200).Once()
				m.seating.EXPECT().ConfirmSeat(mock.Anything, mock.Anything).
					Return(domain.SeatStatusBooked, ok200).Once()
				m.ticketing.EXPECT().CreateTicket(mock.Anything, mock.Anything).
					Return(domain.CreateTicketResponse{CorrelatorID: 1001}, ok200).Once()
				m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedState: saga.StateFailed,
			expectedStage: domain.StageTicket,
			expectedCode:  http.StatusBadGateway,
			expectedMsg:   "Orchestration failed at the Movie Service",
		},
		{
			name: "gateway rejects reply",
			setupMocks: func(m *sagaMocks) {
				m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
					Return(domain.SeatResponse{Status: domain.SeatStatusHolding}, ok200).Once()
				m.payment.EXPECT().Charge(mock.Anything, mock.Anything).
					Return(domain.PaymentResponse{Status: domain.PaymentStatusSuccessful}, ok200).Once()
				m.seating.EXPECT().ConfirmSeat(mock.Anything, mock.Anything).
					Return(domain.SeatStatusBooked, ok200).Once()
				m.ticketing.EXPECT().CreateTicket(mock.Anything, mock.Anything).
					Return(domain.CreateTicketResponse{TicketID: intPtr(8060001)}, ok200).Once()
				m.gateway.EXPECT().SendMovieTicketResponse(mock.Anything, mock.Anything).
					Return(domain.Exchange{StatusCode: http.StatusServiceUnavailable}).Once()
				m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedState: saga.StateFailed,
			expectedStage: domain.StageGatewayReply,
			expectedCode:  http.StatusBadGateway,
			expectedMsg:   "Orchestration failed at the API Gateway",
		},
		{
			name: "publish failure does not change the outcome",
			setupMocks: func(m *sagaMocks) {
				m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
					Return(domain.SeatResponse{Status: domain.SeatStatusBooked}, ok200).Once()
				m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("sns down")).Once()
			},
			expectedState: saga.StateFailed,
			expectedStage: domain.StageSeatHold,
			expectedCode:  http.StatusConflict,
			expectedMsg:   "Orchestration failed at the Seating Service (HOLDING)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newSagaMocks(t)
			tt.setupMocks(m)

			result := m.useCase().Execute(context.Background(), inceptionBooking(1001))

			require.NotNil(t, result)
			assert.False(t, result.SagaID.IsZero())
			assert.Equal(t, 1001, result.CorrelatorID)
			assert.Equal(t, tt.expectedState, result.State)
			assert.Equal(t, tt.expectedStage, result.Stage)
			assert.Equal(t, tt.expectedCode, result.StatusCode)
			assert.Equal(t, tt.expectedMsg, result.Message)
			assert.Equal(t, tt.expectedTicket, result.TicketID)
		})
	}
}

func TestOrchestrateBooking_OutcomeEvent(t *testing.T) {
	m := newSagaMocks(t)
	m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
		Return(domain.SeatResponse{Status: domain.SeatStatusRejected}, ok200).Once()

	var published *events.Event
	m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Run(func(_ context.Context, evts ...*events.Event) { published = evts[0] }).
		Return(nil).Once()

	result := m.useCase().Execute(context.Background(), inceptionBooking(1001))

	require.NotNil(t, published)
	assert.Equal(t, result.SagaID, published.AggregateID)
	assert.Equal(t, events.SagaFailedEvent, published.EventType)
	assert.Equal(t, result.SagaID, published.CorrelationID)

	correlator, _ := published.Metadata.Get(events.CorrelatorIDKey)
	state, _ := published.Metadata.Get(events.SagaStateKey)
	assert.Equal(t, "1001", correlator)
	assert.Equal(t, "FAILED", state)

	var payload BookingResult
	require.NoError(t, published.UnmarshalPayload(&payload))
	assert.Equal(t, *result, payload)
}

func TestOrchestrateBooking_OutcomeEventKeepsCallerCorrelation(t *testing.T) {
	m := newSagaMocks(t)
	m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
		Return(domain.SeatResponse{Status: domain.SeatStatusRejected}, ok200).Once()

	var published *events.Event
	m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).
		Run(func(_ context.Context, evts ...*events.Event) { published = evts[0] }).
		Return(nil).Once()

	requestID := models.GenerateUUID()
	ctx := events.ContextWithCorrelationID(context.Background(), requestID)
	result := m.useCase().Execute(ctx, inceptionBooking(1001))

	require.NotNil(t, published)
	assert.Equal(t, requestID, published.CorrelationID)
	assert.NotEqual(t, result.SagaID, published.CorrelationID)
}

func TestOrchestrateBooking_NilPublisher(t *testing.T) {
	seating := mocks.NewMockSeatingService(t)
	seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).Return(domain.SeatResponse{}, domain.Exchange{}).Once()

	uc := NewOrchestrateBooking(seating, mocks.NewMockPaymentService(t), mocks.NewMockTicketingService(t), mocks.NewMockGatewayNotifier(t), nil)
	result := uc.Execute(context.Background(), inceptionBooking(7))

	assert.Equal(t, domain.StageSeatHold, result.Stage)
}

func TestOrchestrateBooking_ConcurrentSagasAreIndependent(t *testing.T) {
	m := newSagaMocks(t)

	// correlator 1001 succeeds, 2002 is declined; replies are keyed by correlator id
	m.seating.EXPECT().HoldSeat(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, r domain.SeatRequest) (domain.SeatResponse, domain.Exchange) {
			time.Sleep(5 * time.Millisecond)
			return domain.SeatResponse{CorrelatorID: r.CorrelatorID, Status: domain.SeatStatusHolding}, ok200
		})
	m.payment.EXPECT().Charge(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, r domain.PaymentRequest) (domain.PaymentResponse, domain.Exchange) {
			status := domain.PaymentStatusSuccessful
			if r.CorrelatorID == 2002 {
				status = domain.PaymentStatusDeclined
			}
			return domain.PaymentResponse{CorrelatorID: r.CorrelatorID, Status: status}, ok200
		})
	m.seating.EXPECT().ConfirmSeat(mock.Anything, domain.SeatConfirmation{CorrelatorID: 1001}).
		Return(domain.SeatStatusBooked, ok200).Once()
	m.ticketing.EXPECT().CreateTicket(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, r domain.CreateTicketRequest) (domain.CreateTicketResponse, domain.Exchange) {
			return domain.CreateTicketResponse{CorrelatorID: r.CorrelatorID, TicketID: intPtr(8060000 + r.CorrelatorID)}, ok200
		})
	m.gateway.EXPECT().SendMovieTicketResponse(mock.Anything, mock.Anything).Return(ok200)
	m.publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil)

	uc := m.useCase()

	var mux sync.Mutex
	results := map[int]*BookingResult{}

	var g errgroup.Group
	for _, id := range []int{1001, 2002} {
		id := id
		g.Go(func() error {
			r := uc.Execute(context.Background(), inceptionBooking(id))
			mux.Lock()
			results[id] = r
			mux.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	ok, declined := results[1001], results[2002]
	require.NotNil(t, ok)
	require.NotNil(t, declined)

	assert.NotEqual(t, ok.SagaID, declined.SagaID)

	assert.Equal(t, saga.StateResponded, ok.State)
	assert.Equal(t, 1001, ok.CorrelatorID)
	assert.Equal(t, intPtr(8061001), ok.TicketID)

	assert.Equal(t, saga.StateFailed, declined.State)
	assert.Equal(t, 2002, declined.CorrelatorID)
	assert.Equal(t, domain.StagePayment, declined.Stage)
	assert.Nil(t, declined.TicketID)
}
