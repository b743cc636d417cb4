package switchgame

// Resolver settles rounds using an injected random source for the scissors tiebreak.
// The zero value uses DefaultRNG.
type Resolver struct {
	RNG RandomSource
}

// NewResolver creates a resolver. A nil rng falls back to DefaultRNG.
func NewResolver(rng RandomSource) *Resolver {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Resolver{RNG: rng}
}

// Resolve settles one round with the resolver's random source.
func (r *Resolver) Resolve(m1, m2 Move) (Outcome, error) {
	var rng RandomSource
	if r != nil {
		rng = r.RNG
	}
	return Resolve(m1, m2, rng)
}

// Resolve settles one round between player1 (m1) and player2 (m2).
// Mirror rounds:
// - rock/rock: both lose, both owe proof
// - paper/paper: both win, round completes immediately
// - scissors/scissors: a fair coin from rng picks the winner
// Clash rounds use rock > scissors > paper > rock.
// rng is only consulted on scissors/scissors; nil means DefaultRNG.
func Resolve(m1, m2 Move, rng RandomSource) (Outcome, error) {
	if err := validateMove(m1); err != nil {
		return Outcome{}, err
	}
	if err := validateMove(m2); err != nil {
		return Outcome{}, err
	}

	if m1 == m2 {
		switch m1 {
		case Rock:
			return Outcome{
				Kind:      KindMutualLoss,
				Losers:    []Player{Player1, Player2},
				NextState: StateAwaitingProof,
			}, nil
		case Paper:
			return Outcome{
				Kind:      KindMutualWin,
				NextState: StateCompleted,
			}, nil
		default: // scissors
			winner := Player2
			if Flip(rng) {
				winner = Player1
			}
			return winOutcome(KindRandomTiebreak, winner), nil
		}
	}

	if m1.Beats(m2) {
		return winOutcome(KindWin, Player1), nil
	}
	return winOutcome(KindWin, Player2), nil
}
