package domain

type CreateTicketRequest struct {
	TopicName    string `json:"topicName"`
	CorrelatorID int    `json:"correlatorId"`
	Movie        Movie  `json:"movie"`
	SeatNumber   string `json:"seatNumber"`
}

// CreateTicketResponse carries no status; a nil TicketID is the failure signal
type CreateTicketResponse struct {
	TopicName    string `json:"topicName"`
	CorrelatorID int    `json:"correlatorId"`
	Movie        Movie  `json:"movie"`
	SeatNumber   string `json:"seatNumber"`
	TicketID     *int   `json:"ticketId"`
}

// Issued is the step 4 success predicate
func (r CreateTicketResponse) Issued() bool {
	return r.TicketID != nil
}

// MovieTicketResponse is the confirmation sent back to the gateway
type MovieTicketResponse struct {
	TopicName    string `json:"topicName"`
	CorrelatorID int    `json:"correlatorId"`
	Movie        Movie  `json:"movie"`
	SeatNumber   string `json:"seatNumber"`
	TicketID     int    `json:"ticketId"`
}
