package tournament

import "math"

// Default ELO update parameters.
const (
	DefaultKFactor     = 32.0
	DefaultMarginScale = 50.0
)

// expectedScore is the standard Elo expectation of A against B.
func expectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}

// UpdateEloPairwise updates ratings from one multi-player match by treating
// it as all ordered pairs. Each pair's match-score margin maps through a
// logistic curve to a result in (0,1): large positive margins approach 1,
// ties give 0.5. Deltas accumulate over all pairs and are applied once per
// agent, to the per-count rating and mirrored into the global one.
func UpdateEloPairwise(agents []*Agent, matchScores []float64, players int, kFactor, marginScale float64) {
	if len(agents) != len(matchScores) {
		panic("agents and matchScores length mismatch")
	}
	if kFactor <= 0 {
		kFactor = DefaultKFactor
	}
	if marginScale <= 0 {
		marginScale = DefaultMarginScale
	}

	deltas := make([]float64, len(agents))
	for i := range agents {
		for j := range agents {
			if i == j {
				continue
			}
			margin := matchScores[i] - matchScores[j]
			result := 1.0 / (1.0 + math.Exp(-margin/marginScale))
			expected := expectedScore(agents[i].EloFor(players), agents[j].EloFor(players))
			deltas[i] += kFactor * (result - expected)
		}
	}

	for i, a := range agents {
		a.addElo(players, deltas[i])
	}
}
