package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tarot/agent"
	"tarot/engine"
	"tarot/experiments"
	"tarot/game"
	"tarot/league"
	"tarot/tournament"
)

func main() {
	mode := flag.String("mode", "demo", "demo, variants or league")
	players := flag.Int("players", 4, "Number of players (3, 4 or 5)")
	deals := flag.Int("deals", 10, "Deals per match")
	seed := flag.Uint64("seed", 1, "RNG seed")
	popSize := flag.Int("population", 20, "League population size")
	generations := flag.Int("generations", 5, "League generations")
	configPath := flag.String("config", "", "League config YAML (optional)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	switch *mode {
	case "demo":
		runDemo(*players, *deals, *seed)
	case "variants":
		experiments.RunVariantExperiment(*seed)
	case "league":
		runLeague(*configPath, *popSize, *generations, *seed)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(1)
	}
}

// runDemo plays one random-policy match and prints the totals.
func runDemo(players, deals int, seed uint64) {
	v, ok := game.VariantFor(players)
	if !ok {
		fmt.Fprintf(os.Stderr, "no variant for %d players\n", players)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(seed))
	cb := engine.Callbacks{
		Bid:  agent.RandomBid(rng),
		Play: agent.RandomPlay(rng),
	}

	log.Info().Msgf("playing a %d-player match of %d deals...", players, deals)

	totals, perDeal, err := engine.RunMatch(v, deals, rng, cb)
	if err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}

	for i, scores := range perDeal {
		fmt.Printf("Deal %d: %v\n", i+1, scores)
	}
	fmt.Printf("Totals: %v\n", totals)
}

func runLeague(configPath string, popSize, generations int, seed uint64) {
	if configPath == "" {
		experiments.RunLeagueExperiment(seed, popSize, generations)
		return
	}

	cfg, err := league.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load league config")
	}

	rng := rand.New(rand.NewSource(seed))
	pop := tournament.NewPopulation()
	for i := 0; i < popSize; i++ {
		pop.Add(tournament.NewAgent(fmt.Sprintf("agent-%d", i)))
	}

	final, err := league.RunGenerations(pop, cfg, generations, rng, nil, nil, "", nil)
	if err != nil {
		log.Fatal().Err(err).Msg("league run failed")
	}
	log.Info().Int("agents", final.Size()).Msg("league run complete")
}
