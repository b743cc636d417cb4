package switchgame

// Player identifies a seat in a two-player round.
type Player string

const (
	NoPlayer Player = ""
	Player1  Player = "player1"
	Player2  Player = "player2"
)

// Other returns the opposing seat; NoPlayer for anything else.
func (p Player) Other() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

func (p Player) Valid() bool { return p == Player1 || p == Player2 }

// Kind classifies how a round was settled.
type Kind string

const (
	KindWin            Kind = "win"
	KindMutualWin      Kind = "mutual_win"
	KindMutualLoss     Kind = "mutual_loss"
	KindRandomTiebreak Kind = "random_tiebreak"
)

// State is the round lifecycle tag.
type State string

const (
	StatePending       State = "pending"
	StateAwaitingProof State = "awaiting_proof"
	StateCompleted     State = "completed"
)

// Outcome is the settled result of one round.
// Winner is NoPlayer for mutual outcomes; Losers holds both seats on a mutual loss
// and is empty on a mutual win.
type Outcome struct {
	Kind      Kind     `json:"kind"`
	Winner    Player   `json:"winner,omitempty"`
	Losers    []Player `json:"losers,omitempty"`
	NextState State    `json:"next_state"`
}

// HasWinner reports whether a single seat won the round.
func (o Outcome) HasWinner() bool { return o.Winner != NoPlayer }

// Obligation is one proof debt: Debtor must perform for Creditor.
type Obligation struct {
	Debtor   Player `json:"debtor"`
	Creditor Player `json:"creditor"`
}

// Obligations derives the proof debts implied by the outcome.
// A mutual loss yields two, one per seat, each owed to the other.
func (o Outcome) Obligations() []Obligation {
	switch o.Kind {
	case KindWin, KindRandomTiebreak:
		return []Obligation{{Debtor: o.Winner.Other(), Creditor: o.Winner}}
	case KindMutualLoss:
		return []Obligation{
			{Debtor: Player1, Creditor: Player2},
			{Debtor: Player2, Creditor: Player1},
		}
	}
	return nil
}

func winOutcome(kind Kind, winner Player) Outcome {
	return Outcome{
		Kind:      kind,
		Winner:    winner,
		Losers:    []Player{winner.Other()},
		NextState: StateAwaitingProof,
	}
}
