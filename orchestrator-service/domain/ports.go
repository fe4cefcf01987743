package domain

import "context"

// SeatingService holds and books seats
type SeatingService interface {
	HoldSeat(ctx context.Context, req SeatRequest) (SeatResponse, Exchange)
	ConfirmSeat(ctx context.Context, req SeatConfirmation) (SeatStatus, Exchange)
}

// PaymentService charges the customer's card
type PaymentService interface {
	Charge(ctx context.Context, req PaymentRequest) (PaymentResponse, Exchange)
}

// TicketingService mints ticket ids
type TicketingService interface {
	CreateTicket(ctx context.Context, req CreateTicketRequest) (CreateTicketResponse, Exchange)
}

// GatewayNotifier delivers the finished ticket to the API gateway
type GatewayNotifier interface {
	SendMovieTicketResponse(ctx context.Context, resp MovieTicketResponse) Exchange
}
