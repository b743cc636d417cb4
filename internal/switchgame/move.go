package switchgame

import (
	"errors"
	"fmt"
	"strings"
)

// Move is one player's sealed choice for a round.
type Move uint8

const (
	Rock Move = iota + 1
	Paper
	Scissors
)

// Moves lists every valid move in declaration order.
var Moves = [...]Move{Rock, Paper, Scissors}

var ErrInvalidMove = errors.New("invalid move; must be rock, paper or scissors")

// InvalidMoveError reports the offending value. It matches ErrInvalidMove via errors.Is.
type InvalidMoveError struct {
	Value string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move %q; must be rock, paper or scissors", e.Value)
}

func (e *InvalidMoveError) Unwrap() error { return ErrInvalidMove }

// beats maps each move to the move it defeats.
var beats = map[Move]Move{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	}
	return fmt.Sprintf("Move(%d)", uint8(m))
}

// Valid reports whether m is one of the three moves.
func (m Move) Valid() bool {
	return m >= Rock && m <= Scissors
}

// Beats reports whether m defeats other under the clash relation.
func (m Move) Beats(other Move) bool {
	return beats[m] == other && m.Valid()
}

// ParseMove accepts the lowercase move names, ignoring surrounding space and case.
// Anything else is an *InvalidMoveError; no default is substituted.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock":
		return Rock, nil
	case "paper":
		return Paper, nil
	case "scissors":
		return Scissors, nil
	}
	return 0, &InvalidMoveError{Value: s}
}

func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &InvalidMoveError{Value: m.String()}
	}
	return []byte(m.String()), nil
}

func (m *Move) UnmarshalText(b []byte) error {
	v, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func validateMove(m Move) error {
	if !m.Valid() {
		return &InvalidMoveError{Value: m.String()}
	}
	return nil
}
