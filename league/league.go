package league

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tarot/ga"
	"tarot/game"
	"tarot/tournament"
)

// Summary aggregates one generation's population metrics.
type Summary struct {
	Generation int     `json:"generation_index"`
	EloMin     float64 `json:"elo_min"`
	EloMean    float64 `json:"elo_mean"`
	EloMax     float64 `json:"elo_max"`
	NumAgents  int     `json:"num_agents"`
}

// Control signals cancellation of a multi-generation run. Cancellation is
// coarse-grained: it is honored between generations, never mid-deal.
type Control struct {
	cancelled atomic.Bool
}

// RequestCancel asks the run to stop at the next generation boundary.
func (c *Control) RequestCancel() { c.cancelled.Store(true) }

// Cancelled reports whether cancellation was requested.
func (c *Control) Cancelled() bool { return c.cancelled.Load() }

// RunGeneration runs one league generation on the population: tournament
// rounds update ELOs and stats in place, a summary is computed, then the
// GA builds the next population (or the same one when GA is disabled).
func RunGeneration(pop *tournament.Population, cfg Config, rng *rand.Rand, makePolicy tournament.PolicyFactory) (*tournament.Population, Summary, error) {
	if err := cfg.normalize(); err != nil {
		return nil, Summary{}, err
	}
	variant, ok := game.VariantFor(cfg.PlayerCount)
	if !ok {
		return nil, Summary{}, fmt.Errorf("no variant for %d players", cfg.PlayerCount)
	}
	if makePolicy == nil {
		makePolicy = tournament.DefaultPolicyFactory()
	}

	roundCfg := tournament.RoundConfig{
		Variant:       variant,
		DealsPerMatch: cfg.DealsPerMatch,
		KFactor:       cfg.EloKFactor,
		MarginScale:   cfg.EloMarginScale,
	}
	for r := 0; r < cfg.RoundsPerGeneration; r++ {
		if err := tournament.RunRound(pop, roundCfg, rng, makePolicy); err != nil {
			return nil, Summary{}, fmt.Errorf("tournament round %d failed: %w", r, err)
		}
	}

	summary := summarize(pop)

	if cfg.GA == nil {
		return pop, summary, nil
	}
	next, err := ga.NextGeneration(pop, *cfg.GA, cfg.Fitness, rng)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("GA step failed: %w", err)
	}
	return next, summary, nil
}

// RunGenerations runs numGenerations league generations, logging progress
// and optionally appending a JSONL line per generation to logPath. A nil
// makePolicy falls back to the random baseline factory. The onGeneration
// callback, if set, observes each completed generation. Returns the final
// population.
func RunGenerations(pop *tournament.Population, cfg Config, numGenerations int, rng *rand.Rand, makePolicy tournament.PolicyFactory, control *Control, logPath string, onGeneration func(int, Summary)) (*tournament.Population, error) {
	current := pop
	for gen := 0; gen < numGenerations; gen++ {
		if control != nil && control.Cancelled() {
			log.Info().Int("generation", gen).Msg("league run cancelled")
			return current, nil
		}

		next, summary, err := RunGeneration(current, cfg, rng, makePolicy)
		if err != nil {
			return nil, err
		}
		summary.Generation = gen
		current = next

		log.Info().
			Int("generation", gen).
			Float64("elo_mean", summary.EloMean).
			Float64("elo_max", summary.EloMax).
			Int("agents", summary.NumAgents).
			Msg("completed league generation")

		if logPath != "" {
			if err := appendLogEntry(logPath, summary); err != nil {
				return nil, err
			}
		}
		if onGeneration != nil {
			onGeneration(gen, summary)
		}
	}
	return current, nil
}

func summarize(pop *tournament.Population) Summary {
	s := Summary{NumAgents: pop.Size()}
	first := true
	var total float64
	for _, a := range pop.Agents {
		elo := a.EloGlobal
		total += elo
		if first || elo < s.EloMin {
			s.EloMin = elo
		}
		if first || elo > s.EloMax {
			s.EloMax = elo
		}
		first = false
	}
	if s.NumAgents > 0 {
		s.EloMean = total / float64(s.NumAgents)
	}
	return s
}

type logEntry struct {
	Summary
	Timestamp string `json:"timestamp"`
}

func appendLogEntry(path string, summary Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open league log: %w", err)
	}
	defer f.Close()

	entry := logEntry{Summary: summary, Timestamp: time.Now().UTC().Format(time.RFC3339)}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write league log: %w", err)
	}
	return nil
}
