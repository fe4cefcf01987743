package saga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaga_HappyPath(t *testing.T) {
	s := New(1001)
	assert.Equal(t, StateStart, s.State)
	assert.False(t, s.ID.IsZero())

	for _, st := range []State{StateSeatHeld, StatePaymentTaken, StateSeatConfirmed, StateTicketCreated, StateResponded} {
		require.NoError(t, s.Advance(st))
	}

	assert.Equal(t, StateResponded, s.State)
	assert.True(t, s.State.IsTerminal())
	assert.Len(t, s.History, 5)
	assert.Equal(t, StateStart, s.History[0].From)
	assert.Zero(t, s.Stage)
}

func TestSaga_Advance_RejectsOutOfOrder(t *testing.T) {
	tests := []struct {
		name string
		from []State
		to   State
	}{
		{name: "skip payment", from: []State{StateSeatHeld}, to: StateSeatConfirmed},
		{name: "go back", from: []State{StateSeatHeld, StatePaymentTaken}, to: StateSeatHeld},
		{name: "repeat start", to: StateStart},
		{name: "failed is not a happy path state", to: StateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(1)
			for _, st := range tt.from {
				require.NoError(t, s.Advance(st))
			}
			assert.Error(t, s.Advance(tt.to))
		})
	}
}

func TestSaga_Fail(t *testing.T) {
	s := New(7)
	require.NoError(t, s.Advance(StateSeatHeld))
	require.NoError(t, s.Fail(3))

	assert.Equal(t, StateFailed, s.State)
	assert.Equal(t, 3, s.Stage)

	assert.Error(t, s.Advance(StatePaymentTaken))
	assert.Error(t, s.Fail(4))
	assert.Equal(t, 3, s.Stage)
}
