// Package experiments runs offline evaluation campaigns and stores their
// results as CSV for analysis.
package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tarot/agent"
	"tarot/engine"
	"tarot/experiments/metrics"
	"tarot/ga"
	"tarot/game"
	"tarot/league"
	"tarot/tournament"
)

const (
	NumMatches    = 30 // Per variant
	DealsPerMatch = 10
)

// RunVariantExperiment plays random-policy matches across the 3, 4 and
// 5-player variants and records match and deal outcomes, including how
// often deals get cancelled and which contracts get taken.
func RunVariantExperiment(seed uint64) {
	rng := rand.New(rand.NewSource(seed))
	collector := metrics.NewCollector()

	matchRecords := []metrics.MatchRecord{}
	dealRecords := []metrics.DealRecord{}

	log.Info().Msg("starting variant experiment...")

	count := 0
	for _, players := range []int{3, 4, 5} {
		v, _ := game.VariantFor(players)

		log.Info().Msgf("starting %d-player block of %d matches...", players, NumMatches)

		for i := 0; i < NumMatches; i++ {
			count++
			match, deals, err := runRandomMatch(count, v, rng, collector)
			if err != nil {
				panic(fmt.Sprintf("match failed: %v", err))
			}
			matchRecords = append(matchRecords, match)
			dealRecords = append(dealRecords, deals...)
		}

		log.Info().Msgf("completed %d-player block", players)
	}

	log.Info().
		Int("deals", collector.DealCount()).
		Int("cancelled", collector.CancelledCount()).
		Int("prise", collector.ContractCount(game.Prise)).
		Int("garde", collector.ContractCount(game.Garde)).
		Int("garde_sans", collector.ContractCount(game.GardeSans)).
		Int("garde_contre", collector.ContractCount(game.GardeContre)).
		Msg("completed variant experiment")

	writer, err := metrics.NewWriter("variants")
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteMatchRecords(matchRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write match records: %v", err))
	}
	log.Info().Msg("stored match records")

	err = writer.WriteDealRecords(dealRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to write deal records: %v", err))
	}
	log.Info().Msg("stored deal records")
}

// runRandomMatch plays one match of random agents, counting cancelled
// attempts and recording every counted deal.
func runRandomMatch(id int, v game.Variant, rng *rand.Rand, collector metrics.Collector) (metrics.MatchRecord, []metrics.DealRecord, error) {
	cb := engine.Callbacks{
		Bid:  agent.RandomBid(rng),
		Play: agent.RandomPlay(rng),
	}

	start := time.Now()
	dealRecords := []metrics.DealRecord{}
	cancelled := 0

	dealer := 0
	for played := 0; played < DealsPerMatch; {
		result, err := engine.PlayOneDeal(v, dealer, rng, cb)
		if err != nil {
			return metrics.MatchRecord{}, nil, err
		}
		if result.Bidding == nil {
			collector.AddCancelled()
			cancelled++
			dealer = v.NextDealer(dealer)
			continue
		}
		collector.AddDeal(result.Bidding.Contract)
		played++
		dealRecords = append(dealRecords, metrics.DealRecord{
			Match: id,
			Index: played,
			DealMetric: metrics.DealMetric{
				Dealer:   dealer,
				Taker:    result.Bidding.Taker,
				Partner:  result.Partner,
				Contract: result.Bidding.Contract,
				Scores:   result.Scores,
			},
		})
		dealer = v.NextDealer(dealer)
	}
	end := time.Now()

	record := metrics.MatchRecord{
		ID: id,
		MatchMetric: metrics.MatchMetric{
			Variant:        v.Players,
			StartTime:      start,
			EndTime:        end,
			Duration:       end.Sub(start),
			DealsPlayed:    DealsPerMatch,
			DealsCancelled: cancelled,
		},
	}
	return record, dealRecords, nil
}

// RunLeagueExperiment evolves a population over several generations and
// stores the final agent ratings.
func RunLeagueExperiment(seed uint64, populationSize, generations int) {
	rng := rand.New(rand.NewSource(seed))

	pop := tournament.NewPopulation()
	for i := 0; i < populationSize; i++ {
		pop.Add(tournament.NewAgent(fmt.Sprintf("agent-%d", i)))
	}

	cfg := league.DefaultConfig()
	cfg.GA = &ga.Config{
		PopulationSize:        populationSize,
		SexualOffspring:       populationSize / 2,
		MutateCount:           populationSize / 4,
		CloneCount:            populationSize - populationSize/2 - populationSize/4,
		ParentFitnessWeighted: true,
		Combination:           ga.CombineAverage,
		MutationProb:          0.2,
		MutationStd:           0.1,
	}

	log.Info().Msgf("starting league experiment with %d agents over %d generations...", populationSize, generations)

	final, err := league.RunGenerations(pop, cfg, generations, rng, nil, nil, "", nil)
	if err != nil {
		panic(fmt.Sprintf("league run failed: %v", err))
	}

	log.Info().Msg("completed league experiment")

	writer, err := metrics.NewWriter("league")
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	records := make([]metrics.AgentRecord, 0, final.Size())
	for _, a := range final.Agents {
		records = append(records, metrics.AgentRecord{
			ID:            a.ID,
			Name:          a.Name,
			Generation:    a.Generation,
			Elo3p:         a.Elo3p,
			Elo4p:         a.Elo4p,
			Elo5p:         a.Elo5p,
			EloGlobal:     a.EloGlobal,
			MatchesPlayed: a.MatchesPlayed,
			AvgMatchScore: a.AvgMatchScore(),
		})
	}
	err = writer.WriteAgentRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to write agent records: %v", err))
	}
	log.Info().Msg("stored agent records")
}
