package switchgame_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtding233/switch-game/internal/switchgame"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want switchgame.Move
	}{
		{"rock", switchgame.Rock},
		{"Paper", switchgame.Paper},
		{" SCISSORS ", switchgame.Scissors},
	}
	for _, tt := range tests {
		got, err := switchgame.ParseMove(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"lizard", "", "spock", "rocks"} {
		_, err := switchgame.ParseMove(bad)
		require.ErrorIs(t, err, switchgame.ErrInvalidMove, "%q must be rejected", bad)
	}
}

func TestMoveBeats(t *testing.T) {
	require.True(t, switchgame.Rock.Beats(switchgame.Scissors))
	require.True(t, switchgame.Scissors.Beats(switchgame.Paper))
	require.True(t, switchgame.Paper.Beats(switchgame.Rock))
	require.False(t, switchgame.Rock.Beats(switchgame.Paper))
	require.False(t, switchgame.Rock.Beats(switchgame.Rock))
	require.False(t, switchgame.Move(0).Beats(switchgame.Move(0)))
}

func TestMoveJSON(t *testing.T) {
	type payload struct {
		Move switchgame.Move `json:"move"`
	}

	b, err := json.Marshal(payload{Move: switchgame.Scissors})
	require.NoError(t, err)
	require.JSONEq(t, `{"move":"scissors"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"move":"paper"}`), &p))
	require.Equal(t, switchgame.Paper, p.Move)

	err = json.Unmarshal([]byte(`{"move":"lizard"}`), &p)
	require.ErrorIs(t, err, switchgame.ErrInvalidMove)

	_, err = json.Marshal(payload{})
	require.Error(t, err, "zero move must not serialize")
}
