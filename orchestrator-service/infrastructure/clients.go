package infrastructure

import (
	"context"

	"github.com/movieticket/booking-platform/orchestrator-service/domain"
	"github.com/pkg/errors"
)

// SeatingClient talks to the seating service
type SeatingClient struct {
	invoker *ServiceInvoker
}

func NewSeatingClient(invoker *ServiceInvoker) *SeatingClient {
	return &SeatingClient{invoker: invoker}
}

func (c *SeatingClient) HoldSeat(ctx context.Context, req domain.SeatRequest) (domain.SeatResponse, domain.Exchange) {
	return Invoke[domain.SeatResponse](ctx, c.invoker, domain.TopicSeatRequest, req)
}

// ConfirmSeat turns the hold into a booking. Seating takes the bare
// correlator id as the JSON body and replies with a bare seat status.
func (c *SeatingClient) ConfirmSeat(ctx context.Context, req domain.SeatConfirmation) (domain.SeatStatus, domain.Exchange) {
	body, exch := c.invoker.InvokeRaw(ctx, domain.TopicSeatConfirmation, req.CorrelatorID)
	if exch.Err != nil {
		return "", exch
	}
	if err := statusError(exch.StatusCode); err != nil {
		exch.Err = err
		return "", exch
	}

	status, err := domain.ParseSeatStatus(body)
	if err != nil {
		exch.Err = errors.Wrap(err, "unreadable confirmation")
		return "", exch
	}
	return status, exch
}

// PaymentClient talks to the payment service
type PaymentClient struct {
	invoker *ServiceInvoker
}

func NewPaymentClient(invoker *ServiceInvoker) *PaymentClient {
	return &PaymentClient{invoker: invoker}
}

func (c *PaymentClient) Charge(ctx context.Context, req domain.PaymentRequest) (domain.PaymentResponse, domain.Exchange) {
	return Invoke[domain.PaymentResponse](ctx, c.invoker, domain.TopicPaymentRequest, req)
}

// TicketingClient talks to the movie service, which mints ticket ids
type TicketingClient struct {
	invoker *ServiceInvoker
}

func NewTicketingClient(invoker *ServiceInvoker) *TicketingClient {
	return &TicketingClient{invoker: invoker}
}

func (c *TicketingClient) CreateTicket(ctx context.Context, req domain.CreateTicketRequest) (domain.CreateTicketResponse, domain.Exchange) {
	return Invoke[domain.CreateTicketResponse](ctx, c.invoker, domain.TopicCreateTicketRequest, req)
}

// GatewayClient returns the finished ticket to the API gateway
type GatewayClient struct {
	invoker *ServiceInvoker
}

func NewGatewayClient(invoker *ServiceInvoker) *GatewayClient {
	return &GatewayClient{invoker: invoker}
}

// SendMovieTicketResponse only cares about the transport status; the body is ignored
func (c *GatewayClient) SendMovieTicketResponse(ctx context.Context, resp domain.MovieTicketResponse) domain.Exchange {
	_, exch := c.invoker.InvokeRaw(ctx, domain.TopicMovieTicketResponse, resp)
	return exch
}
