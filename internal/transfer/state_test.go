package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineFollowsTransitionTable(t *testing.T) {
	m := newMachine()
	require.Equal(t, StateCollectDestination, m.State())

	require.NoError(t, m.transition(StateConfirmAmount))
	require.NoError(t, m.transition(StateCollectDestination))
	require.NoError(t, m.transition(StateConfirmAmount))
	require.NoError(t, m.transition(StateSubmitting))
	require.NoError(t, m.transition(StateConfirmAmount))
	require.NoError(t, m.transition(StateSubmitting))
	require.NoError(t, m.transition(StateSuccess))
}

func TestMachineRejectsMovesOutsideTable(t *testing.T) {
	cases := []struct {
		name string
		from State
		to   State
	}{
		{"skip to submitting", StateCollectDestination, StateSubmitting},
		{"skip to success", StateCollectDestination, StateSuccess},
		{"confirm to success", StateConfirmAmount, StateSuccess},
		{"submitting back to collect", StateSubmitting, StateCollectDestination},
		{"success is terminal", StateSuccess, StateConfirmAmount},
		{"self loop", StateConfirmAmount, StateConfirmAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := machine{state: tc.from}
			err := m.transition(tc.to)
			var terr *TransitionError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tc.from, terr.From)
			assert.Equal(t, tc.to, terr.To)
			assert.Equal(t, tc.from, m.State(), "failed transition must not move the machine")
		})
	}
}
