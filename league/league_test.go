package league

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"tarot/agent"
	"tarot/ga"
	"tarot/tournament"
)

func seedPopulation(n int) *tournament.Population {
	pop := tournament.NewPopulation()
	for i := 0; i < n; i++ {
		a := tournament.NewAgent("seed")
		a.Traits = map[string]float64{"aggression": 0.5}
		pop.Add(a)
	}
	return pop
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a full config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "league.yaml")
		data := `
player_count: 3
deals_per_match: 4
rounds_per_generation: 2
elo_k_factor: 16
elo_margin_scale: 25
ga:
  population_size: 6
  sexual_offspring: 2
  mutate_count: 2
  clone_count: 2
  mutation_prob: 0.3
  mutation_std: 0.05
fitness:
  elo_a: 1
  elo_b: 1
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, 3, cfg.PlayerCount)
		require.Equal(t, 4, cfg.DealsPerMatch)
		require.Equal(t, 16.0, cfg.EloKFactor)
		require.NotNil(t, cfg.GA)
		require.Equal(t, 6, cfg.GA.PopulationSize)
	})

	t.Run("defaults fill unset fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "league.yaml")
		require.NoError(t, os.WriteFile(path, []byte("player_count: 5\n"), 0644))

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		require.Equal(t, 5, cfg.PlayerCount)
		require.Equal(t, 5, cfg.DealsPerMatch, "Default deals per match")
		require.Equal(t, 32.0, cfg.EloKFactor, "Default K factor")
	})

	t.Run("rejects an unsupported player count", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "league.yaml")
		require.NoError(t, os.WriteFile(path, []byte("player_count: 6\n"), 0644))

		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestRunGeneration(t *testing.T) {
	t.Run("updates ratings and summarises", func(t *testing.T) {
		pop := seedPopulation(8)
		cfg := DefaultConfig()
		cfg.RoundsPerGeneration = 1
		cfg.DealsPerMatch = 2
		rng := rand.New(rand.NewSource(10))

		next, summary, err := RunGeneration(pop, cfg, rng, nil)

		require.NoError(t, err)
		require.Equal(t, pop, next, "Without GA the population passes through")
		require.Equal(t, 8, summary.NumAgents)
		require.LessOrEqual(t, summary.EloMin, summary.EloMean)
		require.LessOrEqual(t, summary.EloMean, summary.EloMax)

		for _, a := range pop.Agents {
			require.Equal(t, 1, a.MatchesPlayed, "Each agent plays once per round")
		}
	})

	t.Run("GA step replaces the population", func(t *testing.T) {
		pop := seedPopulation(8)
		cfg := DefaultConfig()
		cfg.RoundsPerGeneration = 1
		cfg.DealsPerMatch = 2
		cfg.GA = &ga.Config{
			PopulationSize:  8,
			SexualOffspring: 4,
			MutateCount:     2,
			CloneCount:      2,
			MutationProb:    0.2,
			MutationStd:     0.1,
		}
		rng := rand.New(rand.NewSource(10))

		next, _, err := RunGeneration(pop, cfg, rng, nil)

		require.NoError(t, err)
		require.NotEqual(t, pop, next, "The GA builds a new population")
		require.Equal(t, 8, next.Size())
	})
}

func TestRunGenerations(t *testing.T) {
	t.Run("runs all generations and logs JSONL", func(t *testing.T) {
		pop := seedPopulation(6)
		cfg := DefaultConfig()
		cfg.PlayerCount = 3
		cfg.RoundsPerGeneration = 1
		cfg.DealsPerMatch = 2
		rng := rand.New(rand.NewSource(20))
		logPath := filepath.Join(t.TempDir(), "league.jsonl")

		var seen []int
		final, err := RunGenerations(pop, cfg, 3, rng, nil, nil, logPath, func(gen int, s Summary) {
			seen = append(seen, gen)
		})

		require.NoError(t, err)
		require.Equal(t, []int{0, 1, 2}, seen, "Callback observes every generation")
		require.Equal(t, 6, final.Size())

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)

		lines := splitLines(data)
		require.Equal(t, 3, len(lines), "One JSONL line per generation")

		var entry struct {
			Generation int     `json:"generation_index"`
			EloMean    float64 `json:"elo_mean"`
			Timestamp  string  `json:"timestamp"`
		}
		require.NoError(t, json.Unmarshal(lines[2], &entry))
		require.Equal(t, 2, entry.Generation)
		require.NotEmpty(t, entry.Timestamp)
	})

	t.Run("a custom policy factory drives every generation", func(t *testing.T) {
		pop := seedPopulation(6)
		cfg := DefaultConfig()
		cfg.PlayerCount = 3
		cfg.RoundsPerGeneration = 1
		cfg.DealsPerMatch = 1
		rng := rand.New(rand.NewSource(40))

		calls := 0
		factory := func(a *tournament.Agent) agent.Policy {
			calls++
			return agent.NewRandomPolicy(uint64(calls))
		}

		_, err := RunGenerations(pop, cfg, 2, rng, factory, nil, "", nil)

		require.NoError(t, err)
		require.Equal(t, 12, calls, "6 agents seated per round across 2 generations")
	})

	t.Run("cancellation stops before the next generation", func(t *testing.T) {
		pop := seedPopulation(6)
		cfg := DefaultConfig()
		cfg.PlayerCount = 3
		cfg.RoundsPerGeneration = 1
		cfg.DealsPerMatch = 1
		rng := rand.New(rand.NewSource(30))

		control := &Control{}
		ran := 0
		final, err := RunGenerations(pop, cfg, 10, rng, nil, control, "", func(gen int, s Summary) {
			ran++
			if gen == 1 {
				control.RequestCancel()
			}
		})

		require.NoError(t, err)
		require.Equal(t, 2, ran, "Generations 0 and 1 run, then the run stops")
		require.NotNil(t, final)
	})
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
