package switchgame

import (
	"errors"
	"math"
)

var ErrInvalidTrials = errors.New("invalid trials; must be > 0")

// Z99 is the two-sided critical value for a 99% confidence interval.
const Z99 = 2.576

// SimStats summarizes repeated resolution of one move pair.
type SimStats struct {
	P1            Move         `json:"p1"`
	P2            Move         `json:"p2"`
	Trials        int          `json:"trials"`
	Kinds         map[Kind]int `json:"kinds"`
	Player1Wins   int          `json:"player1_wins"`
	Player2Wins   int          `json:"player2_wins"`
	Player1Share  float64      `json:"player1_share"` // of rounds with a single winner
	ZScore        float64      `json:"z_score"`       // player1 wins vs Binomial(decided, 0.5)
	DecidedRounds int          `json:"decided_rounds"`
}

// Fair reports whether the player1 win count lies within ±crit standard
// deviations of an even split. Rounds without a single winner are trivially fair.
func (s SimStats) Fair(crit float64) bool {
	return math.Abs(s.ZScore) <= crit
}

// Simulate resolves (m1, m2) trials times and tallies the outcomes.
// Only scissors/scissors consumes rng; other pairs are deterministic.
func Simulate(m1, m2 Move, trials int, rng RandomSource) (SimStats, error) {
	if trials <= 0 {
		return SimStats{}, ErrInvalidTrials
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	stats := SimStats{
		P1:     m1,
		P2:     m2,
		Trials: trials,
		Kinds:  make(map[Kind]int, 4),
	}
	for i := 0; i < trials; i++ {
		out, err := Resolve(m1, m2, rng)
		if err != nil {
			return SimStats{}, err
		}
		stats.Kinds[out.Kind]++
		switch out.Winner {
		case Player1:
			stats.Player1Wins++
		case Player2:
			stats.Player2Wins++
		}
	}
	stats.DecidedRounds = stats.Player1Wins + stats.Player2Wins
	stats.Player1Share, stats.ZScore = binomialFit(stats.Player1Wins, stats.DecidedRounds)
	return stats, nil
}

// binomialFit returns the observed share and its z-score against p=0.5.
func binomialFit(hits, n int) (share, z float64) {
	if n == 0 {
		return 0, 0
	}
	share = float64(hits) / float64(n)
	mean := float64(n) / 2
	sd := math.Sqrt(float64(n)) / 2
	return share, (float64(hits) - mean) / sd
}
