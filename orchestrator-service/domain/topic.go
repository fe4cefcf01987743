package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownTopic = errors.New("unknown topic")

// Service identifies a downstream microservice
type Service string

const (
	ServiceSeating Service = "seating"
	ServicePayment Service = "payment"
	ServiceMovie   Service = "movie"
	ServiceGateway Service = "gateway"
)

func (s Service) String() string {
	return string(s)
}

const (
	SuffixProcessTopic = "processTopic"
	SuffixConfirmation = "confirmation"
)

// Topic is an outbound message type. Each one is bound to the service that
// receives it and the path under that service's /api/v1/.
type Topic int

const (
	TopicSeatRequest Topic = iota + 1
	TopicSeatConfirmation
	TopicPaymentRequest
	TopicCreateTicketRequest
	TopicMovieTicketResponse
)

type topicBinding struct {
	name    string
	service Service
	suffix  string
}

var topicBindings = map[Topic]topicBinding{
	TopicSeatRequest:         {name: "SeatRequest", service: ServiceSeating, suffix: SuffixProcessTopic},
	TopicSeatConfirmation:    {name: "SeatConfirmation", service: ServiceSeating, suffix: SuffixConfirmation},
	TopicPaymentRequest:      {name: "PaymentRequest", service: ServicePayment, suffix: SuffixProcessTopic},
	TopicCreateTicketRequest: {name: "CreateTicketRequest", service: ServiceMovie, suffix: SuffixProcessTopic},
	TopicMovieTicketResponse: {name: "MovieTicketResponse", service: ServiceGateway, suffix: SuffixProcessTopic},
}

// Topics lists every outbound topic in saga order
func Topics() []Topic {
	return []Topic{
		TopicSeatRequest,
		TopicPaymentRequest,
		TopicSeatConfirmation,
		TopicCreateTicketRequest,
		TopicMovieTicketResponse,
	}
}

// ParseTopic maps a topic name to its Topic
func ParseTopic(name string) (Topic, error) {
	for t, b := range topicBindings {
		if b.name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTopic, name)
}

func (t Topic) String() string {
	if b, ok := topicBindings[t]; ok {
		return b.name
	}
	return fmt.Sprintf("Topic(%d)", int(t))
}

// Service returns the destination of t; false for values outside the enum
func (t Topic) Service() (Service, bool) {
	b, ok := topicBindings[t]
	return b.service, ok
}

// Suffix returns the default path suffix of t
func (t Topic) Suffix() string {
	return topicBindings[t].suffix
}
