package tournament

import (
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tarot/agent"
	"tarot/engine"
	"tarot/game"
)

// MakeRandomTables shuffles the agent IDs and splits them into tables of
// tableSize, dropping the leftover when the count does not divide evenly.
func MakeRandomTables(ids []string, tableSize int, rng *rand.Rand) [][]string {
	shuffled := append([]string(nil), ids...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	var tables [][]string
	for i := 0; i+tableSize <= len(shuffled); i += tableSize {
		tables = append(tables, shuffled[i:i+tableSize])
	}
	return tables
}

// RoundConfig parameterises one tournament round.
type RoundConfig struct {
	Variant       game.Variant
	DealsPerMatch int
	KFactor       float64
	MarginScale   float64
}

// PolicyFactory turns an agent into the policy that plays its seats.
type PolicyFactory func(a *Agent) agent.Policy

// DefaultPolicyFactory is the baseline factory: a random policy with a
// stable seed derived from the agent's ID, so an agent plays the same way
// across runs. Checkpointed model policies are the training layer's
// concern and plug in through the same PolicyFactory shape.
func DefaultPolicyFactory() PolicyFactory {
	return func(a *Agent) agent.Policy {
		h := fnv.New64a()
		h.Write([]byte(a.ID))
		return agent.NewRandomPolicy(h.Sum64())
	}
}

// RunMatchForTable plays one match with per-seat policies controlling play
// decisions. Bidding stays random for now: the policy action space covers
// bids, but bid training is the PPO layer's concern, not the tournament's.
// A policy action that does not resolve to a legal card falls back to a
// random legal play.
func RunMatchForTable(cfg RoundConfig, policies []agent.Policy, rng *rand.Rand) ([]int, error) {
	if len(policies) != cfg.Variant.Players {
		return nil, fmt.Errorf("got %d policies for %d seats", len(policies), cfg.Variant.Players)
	}

	cb := engine.Callbacks{
		Bid: agent.RandomBid(rng),
		Play: func(state *game.DealState, seat int) game.Card {
			hand := state.Hands[seat]
			legal := state.LegalCards(seat)

			obs := agent.EncodePlayObservation(state, seat)
			mask := agent.PlayActionMask(legal)
			action := policies[seat].Act(obs, mask)

			card, ok := agent.ActionToCard(action, hand)
			if !ok || !cardIn(legal, card) {
				card = legal[rng.Intn(len(legal))]
			}
			return card
		},
	}

	totals, _, err := engine.RunMatch(cfg.Variant, cfg.DealsPerMatch, rng, cb)
	return totals, err
}

// RunRound seats the whole population at random tables and plays one match
// per table, recording scores and updating ELO ratings in place.
func RunRound(pop *Population, cfg RoundConfig, rng *rand.Rand, makePolicy PolicyFactory) error {
	tables := MakeRandomTables(pop.IDs(), cfg.Variant.Players, rng)
	log.Debug().Int("tables", len(tables)).Int("players", cfg.Variant.Players).Msg("starting tournament round")

	for _, tableIDs := range tables {
		agents := make([]*Agent, len(tableIDs))
		policies := make([]agent.Policy, len(tableIDs))
		for i, id := range tableIDs {
			agents[i] = pop.Get(id)
			policies[i] = makePolicy(agents[i])
		}

		totals, err := RunMatchForTable(cfg, policies, rng)
		if err != nil {
			return fmt.Errorf("table match failed: %w", err)
		}

		scores := make([]float64, len(totals))
		for i, s := range totals {
			scores[i] = float64(s)
			agents[i].RecordMatchScore(scores[i])
		}
		UpdateEloPairwise(agents, scores, cfg.Variant.Players, cfg.KFactor, cfg.MarginScale)
	}
	return nil
}

func cardIn(cards []game.Card, c game.Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
