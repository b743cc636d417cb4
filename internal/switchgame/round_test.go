package switchgame_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/switch-game/internal/switchgame"
)

func TestRoundLifecycle(t *testing.T) {
	r := switchgame.NewRound()
	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	require.Equal(t, switchgame.StatePending, r.State())
	require.False(t, r.Ready())

	require.NoError(t, r.Submit(switchgame.Player1, switchgame.Rock))
	_, _, ok := r.Moves()
	require.False(t, ok, "moves must stay sealed while pending")

	_, err = r.Resolve(nil)
	require.ErrorIs(t, err, switchgame.ErrRoundNotReady)

	require.ErrorIs(t, r.Submit(switchgame.Player1, switchgame.Paper), switchgame.ErrAlreadySubmitted)
	require.NoError(t, r.Submit(switchgame.Player2, switchgame.Scissors))
	require.True(t, r.Ready())

	out, err := r.Resolve(switchgame.NewResolver(nil))
	require.NoError(t, err)
	require.Equal(t, switchgame.Player1, out.Winner)
	require.Equal(t, switchgame.StateAwaitingProof, r.State())

	got, ok := r.Outcome()
	require.True(t, ok)
	require.Equal(t, out, got)

	p1, p2, ok := r.Moves()
	require.True(t, ok)
	require.Equal(t, switchgame.Rock, p1)
	require.Equal(t, switchgame.Scissors, p2)

	_, err = r.Resolve(nil)
	require.ErrorIs(t, err, switchgame.ErrRoundAlreadyFinal)
	require.ErrorIs(t, r.Submit(switchgame.Player2, switchgame.Rock), switchgame.ErrRoundAlreadyFinal)
}

func TestRoundMutualWinCompletes(t *testing.T) {
	r := switchgame.NewRound()
	require.NoError(t, r.Submit(switchgame.Player2, switchgame.Paper))
	require.NoError(t, r.Submit(switchgame.Player1, switchgame.Paper))

	out, err := r.Resolve(nil)
	require.NoError(t, err)
	require.Equal(t, switchgame.KindMutualWin, out.Kind)
	require.Equal(t, switchgame.StateCompleted, r.State())
}

func TestRoundRejectsBadSubmissions(t *testing.T) {
	r := switchgame.NewRound()
	require.ErrorIs(t, r.Submit(switchgame.Player("player3"), switchgame.Rock), switchgame.ErrUnknownPlayer)
	require.ErrorIs(t, r.Submit(switchgame.Player1, switchgame.Move(0)), switchgame.ErrInvalidMove)
	require.False(t, r.Ready())

	_, ok := r.Outcome()
	require.False(t, ok)
}
