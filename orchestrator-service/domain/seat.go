package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusHolding   SeatStatus = "HOLDING"
	SeatStatusBooked    SeatStatus = "BOOKED"
	SeatStatusRejected  SeatStatus = "REJECTED"
)

var allSeatStatuses = map[string]SeatStatus{
	SeatStatusAvailable.String(): SeatStatusAvailable,
	SeatStatusHolding.String():   SeatStatusHolding,
	SeatStatusBooked.String():    SeatStatusBooked,
	SeatStatusRejected.String():  SeatStatusRejected,
}

func (s SeatStatus) String() string {
	return string(s)
}

// ParseSeatStatus reads the seat confirmation reply, which is either a JSON
// string ("BOOKED") or the bare literal (BOOKED).
func ParseSeatStatus(body []byte) (SeatStatus, error) {
	raw := bytes.TrimSpace(body)
	if len(raw) == 0 {
		return "", fmt.Errorf("empty seat status")
	}

	value := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &value); err != nil {
			return "", fmt.Errorf("malformed seat status: %w", err)
		}
	}

	if s, ok := allSeatStatuses[value]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown seat status: %s", value)
}

type SeatRequest struct {
	TopicName    string    `json:"topicName"`
	CorrelatorID int       `json:"correlatorId"`
	MovieName    string    `json:"movieName"`
	Showtime     Timestamp `json:"showtime"`
	SeatNumber   string    `json:"seatNumber"`
}

type SeatResponse struct {
	TopicName    string     `json:"topicName"`
	CorrelatorID int        `json:"correlatorId"`
	MovieName    string     `json:"movieName"`
	SeatNumber   string     `json:"seatNumber"`
	Showtime     Timestamp  `json:"showtime"`
	Status       SeatStatus `json:"status"`
	Timestamp    Timestamp  `json:"timestamp"`
}

// Held is the step 1 success predicate
func (r SeatResponse) Held() bool {
	return r.Status == SeatStatusHolding
}

// SeatConfirmation asks seating to turn the saga's hold into a booking
type SeatConfirmation struct {
	CorrelatorID int `json:"correlatorId"`
}
