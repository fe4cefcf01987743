package domain

// BookingRequest is the MovieTicketRequest message that starts a saga.
// CorrelatorID is copied unchanged into every message derived from it.
type BookingRequest struct {
	TopicName    string         `json:"topicName"`
	CorrelatorID int            `json:"correlatorId"`
	Movie        Movie          `json:"movie"`
	SeatNumber   string         `json:"seatNumber"`
	Price        float64        `json:"price"`
	Payment      PaymentRequest `json:"payment"`
}

// SeatRequest builds the step 1 payload
func (b BookingRequest) SeatRequest() SeatRequest {
	return SeatRequest{
		TopicName:    TopicSeatRequest.String(),
		CorrelatorID: b.CorrelatorID,
		MovieName:    b.Movie.MovieName,
		Showtime:     b.Movie.Showtime,
		SeatNumber:   b.SeatNumber,
	}
}

// PaymentRequest builds the step 2 payload
func (b BookingRequest) PaymentRequest() PaymentRequest {
	return PaymentRequest{
		TopicName:     TopicPaymentRequest.String(),
		CorrelatorID:  b.CorrelatorID,
		PaymentAmount: b.Payment.PaymentAmount,
		Email:         b.Payment.Email,
		CreditCard:    b.Payment.CreditCard,
		CVC:           b.Payment.CVC,
	}
}

// SeatConfirmation builds the step 3 payload
func (b BookingRequest) SeatConfirmation() SeatConfirmation {
	return SeatConfirmation{CorrelatorID: b.CorrelatorID}
}

// CreateTicketRequest builds the step 4 payload
func (b BookingRequest) CreateTicketRequest() CreateTicketRequest {
	return CreateTicketRequest{
		TopicName:    TopicCreateTicketRequest.String(),
		CorrelatorID: b.CorrelatorID,
		Movie:        b.Movie,
		SeatNumber:   b.SeatNumber,
	}
}

// MovieTicketResponse builds the step 5 payload
func (b BookingRequest) MovieTicketResponse(ticketID int) MovieTicketResponse {
	return MovieTicketResponse{
		TopicName:    TopicMovieTicketResponse.String(),
		CorrelatorID: b.CorrelatorID,
		Movie:        b.Movie,
		SeatNumber:   b.SeatNumber,
		TicketID:     ticketID,
	}
}
