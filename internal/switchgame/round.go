package switchgame

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrUnknownPlayer     = errors.New("unknown player; must be player1 or player2")
	ErrAlreadySubmitted  = errors.New("player already submitted a move")
	ErrRoundNotReady     = errors.New("round is waiting for both moves")
	ErrRoundAlreadyFinal = errors.New("round already resolved")
)

// Round holds the sealed moves of one pending round until both seats have played.
// Moves stay hidden until the round is resolved.
type Round struct {
	ID string

	mu      sync.Mutex
	moves   map[Player]Move
	state   State
	outcome Outcome
}

// NewRound creates a pending round with a fresh id.
func NewRound() *Round {
	return &Round{
		ID:    uuid.NewString(),
		moves: make(map[Player]Move, 2),
		state: StatePending,
	}
}

// Submit records p's move. Each seat may submit once, and only while pending.
func (r *Round) Submit(p Player, m Move) error {
	if !p.Valid() {
		return fmt.Errorf("submit %q: %w", p, ErrUnknownPlayer)
	}
	if err := validateMove(m); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePending {
		return ErrRoundAlreadyFinal
	}
	if _, ok := r.moves[p]; ok {
		return fmt.Errorf("submit %s: %w", p, ErrAlreadySubmitted)
	}
	r.moves[p] = m
	return nil
}

// Ready reports whether both seats have submitted.
func (r *Round) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.moves) == 2
}

// State returns the current lifecycle tag.
func (r *Round) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Resolve settles the round once and adopts the outcome's next state.
func (r *Round) Resolve(res *Resolver) (Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StatePending {
		return Outcome{}, ErrRoundAlreadyFinal
	}
	if len(r.moves) != 2 {
		return Outcome{}, ErrRoundNotReady
	}
	out, err := res.Resolve(r.moves[Player1], r.moves[Player2])
	if err != nil {
		return Outcome{}, err
	}
	r.outcome = out
	r.state = out.NextState
	return out, nil
}

// Outcome returns the settled outcome; ok is false while pending.
func (r *Round) Outcome() (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome, r.state != StatePending
}

// Moves reveals both moves after resolution; ok is false while pending.
func (r *Round) Moves() (p1, p2 Move, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StatePending {
		return 0, 0, false
	}
	return r.moves[Player1], r.moves[Player2], true
}
