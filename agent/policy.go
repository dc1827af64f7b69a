// Package agent holds the decision surface around the rule engine: the
// Policy interface consumed by tournaments and training, seeded random
// baselines, and the flat observation/action encoding those policies see.
package agent

import (
	"golang.org/x/exp/rand"

	"tarot/game"
)

// Policy maps an observation vector and a legal-action mask to an action
// index. Implementations must only return actions whose mask entry is true.
type Policy interface {
	Act(obs []float64, mask []bool) int
}

// RandomPolicy picks uniformly among legal actions.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy builds a random policy from an explicit seed.
func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Act(obs []float64, mask []bool) int {
	var legal []int
	for i, ok := range mask {
		if ok {
			legal = append(legal, i)
		}
	}
	if len(legal) == 0 {
		panic("no legal actions in mask")
	}
	return legal[p.rng.Intn(len(legal))]
}

// RandomBid returns a bidding callback that passes or bids low contracts
// most of the time, occasionally reaching for the garde sans/contre levels.
func RandomBid(rng *rand.Rand) game.BidFunc {
	return func(seat int, history []game.Bid) (game.Contract, bool) {
		options := []int{0, int(game.Prise), int(game.Garde)}
		if rng.Float64() < 0.3 {
			options = append(options, int(game.GardeSans), int(game.GardeContre))
		}
		pick := options[rng.Intn(len(options))]
		if pick == 0 {
			return 0, false
		}
		return game.Contract(pick), true
	}
}

// RandomPlay returns a play callback choosing uniformly among legal cards.
func RandomPlay(rng *rand.Rand) func(state *game.DealState, seat int) game.Card {
	return func(state *game.DealState, seat int) game.Card {
		legal := state.LegalCards(seat)
		return legal[rng.Intn(len(legal))]
	}
}
