package saga

import (
	"fmt"
	"time"

	"github.com/movieticket/booking-platform/shared/models"
)

// State is a position in the booking saga. The happy path is linear;
// StateFailed can be entered from any non-terminal state.
type State string

const (
	StateStart         State = "START"
	StateSeatHeld      State = "SEAT_HELD"
	StatePaymentTaken  State = "PAYMENT_TAKEN"
	StateSeatConfirmed State = "SEAT_CONFIRMED"
	StateTicketCreated State = "TICKET_CREATED"
	StateResponded     State = "RESPONDED"
	StateFailed        State = "FAILED"
)

var order = map[State]int{
	StateStart:         0,
	StateSeatHeld:      1,
	StatePaymentTaken:  2,
	StateSeatConfirmed: 3,
	StateTicketCreated: 4,
	StateResponded:     5,
}

func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed
func (s State) IsTerminal() bool {
	return s == StateResponded || s == StateFailed
}

// Transition records one state change
type Transition struct {
	From State     `json:"from"`
	To   State     `json:"to"`
	At   time.Time `json:"at"`
}

// Saga tracks a single orchestration run. It is owned by one goroutine and
// discarded once the run is terminal.
type Saga struct {
	ID           models.ID
	CorrelatorID int
	State        State
	Stage        int
	History      []Transition
}

// New starts a saga in StateStart
func New(correlatorID int) *Saga {
	return &Saga{
		ID:           models.GenerateUUID(),
		CorrelatorID: correlatorID,
		State:        StateStart,
	}
}

// Advance moves to the next happy-path state. Skipping or going back is an error.
func (s *Saga) Advance(to State) error {
	if s.State.IsTerminal() {
		return fmt.Errorf("saga %s is already %s", s.ID, s.State)
	}

	next, ok := order[to]
	if !ok || next != order[s.State]+1 {
		return fmt.Errorf("illegal transition %s -> %s", s.State, to)
	}

	s.move(to)
	return nil
}

// Fail terminates the saga at the given stage
func (s *Saga) Fail(stage int) error {
	if s.State.IsTerminal() {
		return fmt.Errorf("saga %s is already %s", s.ID, s.State)
	}

	s.Stage = stage
	s.move(StateFailed)
	return nil
}

func (s *Saga) move(to State) {
	s.History = append(s.History, Transition{From: s.State, To: to, At: time.Now().UTC()})
	s.State = to
}
