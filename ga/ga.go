// Package ga evolves the tournament population: fitness from ELO and match
// stats, elite selection, trait mutation and two-parent trait combination.
// Model weights are never touched here; they travel by checkpoint reference.
package ga

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"tarot/tournament"
)

// TraitCombination selects how two parents' traits merge into an offspring.
type TraitCombination string

const (
	CombineAverage   TraitCombination = "average"
	CombineCrossover TraitCombination = "crossover"
)

// Config parameterises one generation step. The count-based fields
// (SexualOffspring/MutateCount/CloneCount) fill the evolved slots exactly;
// the lowest-ranked SexualOffspring agents are eliminated each generation.
type Config struct {
	PopulationSize int `yaml:"population_size"`

	SexualOffspring int `yaml:"sexual_offspring"`
	MutateCount     int `yaml:"mutate_count"`
	CloneCount      int `yaml:"clone_count"`

	ParentWithReplacement bool             `yaml:"parent_with_replacement"`
	ParentFitnessWeighted bool             `yaml:"parent_fitness_weighted"`
	Combination           TraitCombination `yaml:"trait_combination"`

	MutationProb float64 `yaml:"mutation_prob"`
	MutationStd  float64 `yaml:"mutation_std"`
}

// FitnessWeights shape fitness = a·ELO^b + c·avg^d, both terms clamped at
// zero before exponentiation.
type FitnessWeights struct {
	EloA float64 `yaml:"elo_a"`
	EloB float64 `yaml:"elo_b"`
	AvgC float64 `yaml:"avg_c"`
	AvgD float64 `yaml:"avg_d"`
}

// DefaultFitnessWeights rank purely by global ELO.
func DefaultFitnessWeights() FitnessWeights {
	return FitnessWeights{EloA: 1, EloB: 1, AvgC: 0, AvgD: 1}
}

// Fitness computes an agent's fitness under the given weights.
func Fitness(a *tournament.Agent, w FitnessWeights) float64 {
	elo := a.EloGlobal
	if elo < 0 {
		elo = 0
	}
	avg := a.AvgMatchScore()
	if avg < 0 {
		avg = 0
	}
	return w.EloA*math.Pow(elo, w.EloB) + w.AvgC*math.Pow(avg, w.AvgD)
}

type scoredAgent struct {
	agent   *tournament.Agent
	fitness float64
}

func rankByFitness(pop *tournament.Population, w FitnessWeights) []scoredAgent {
	scored := make([]scoredAgent, 0, pop.Size())
	for _, a := range pop.Agents {
		scored = append(scored, scoredAgent{agent: a, fitness: Fitness(a, w)})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].fitness != scored[j].fitness {
			return scored[i].fitness > scored[j].fitness
		}
		return scored[i].agent.ID < scored[j].agent.ID
	})
	return scored
}

// SelectElites returns the top n agents by fitness.
func SelectElites(pop *tournament.Population, n int, w FitnessWeights) []*tournament.Agent {
	scored := rankByFitness(pop, w)
	if n > len(scored) {
		n = len(scored)
	}
	elites := make([]*tournament.Agent, 0, n)
	for _, s := range scored[:n] {
		elites = append(elites, s.agent)
	}
	return elites
}

// selectParents draws picks from the scored pool, fitness-weighted roulette
// by default, uniform when all fitness mass is zero or weighting is off.
func selectParents(pool []scoredAgent, picks int, rng *rand.Rand, withReplacement, fitnessWeighted bool) []*tournament.Agent {
	if len(pool) == 0 || picks <= 0 {
		return nil
	}
	working := append([]scoredAgent(nil), pool...)
	var selected []*tournament.Agent
	for k := 0; k < picks && len(working) > 0; k++ {
		var total float64
		for _, s := range working {
			if s.fitness > 0 {
				total += s.fitness
			}
		}
		i := 0
		if total <= 0 || !fitnessWeighted {
			i = rng.Intn(len(working))
		} else {
			r := rng.Float64() * total
			acc := 0.0
			for j, s := range working {
				if s.fitness > 0 {
					acc += s.fitness
				}
				if acc >= r {
					i = j
					break
				}
			}
		}
		selected = append(selected, working[i].agent)
		if !withReplacement {
			working = append(working[:i], working[i+1:]...)
		}
	}
	return selected
}

// Mutate creates a child from one parent: same ratings and checkpoint,
// generation bumped, stats reset, each trait nudged by gaussian noise with
// probability cfg.MutationProb and clamped to [0,1].
func Mutate(parent *tournament.Agent, cfg Config, rng *rand.Rand) *tournament.Agent {
	child := cloneOf(parent)
	child.Generation = parent.Generation + 1
	child.Parents = []string{parent.ID}
	for k, v := range child.Traits {
		if rng.Float64() < cfg.MutationProb {
			child.Traits[k] = clamp01(v + rng.NormFloat64()*cfg.MutationStd)
		}
	}
	return child
}

// Combine creates one offspring from two parents. Traits merge per the
// configured combination; ratings, name and checkpoint come from the first
// parent. Missing traits default to 0.5.
func Combine(p1, p2 *tournament.Agent, combination TraitCombination, rng *rand.Rand) *tournament.Agent {
	child := cloneOf(p1)
	child.Generation = maxInt(p1.Generation, p2.Generation) + 1
	child.Parents = []string{p1.ID, p2.ID}

	keys := map[string]bool{}
	for k := range p1.Traits {
		keys[k] = true
	}
	for k := range p2.Traits {
		keys[k] = true
	}
	traits := make(map[string]float64, len(keys))
	for k := range keys {
		v1, ok1 := p1.Traits[k]
		if !ok1 {
			v1 = 0.5
		}
		v2, ok2 := p2.Traits[k]
		if !ok2 {
			v2 = 0.5
		}
		if combination == CombineCrossover {
			if rng.Float64() < 0.5 {
				traits[k] = v1
			} else {
				traits[k] = v2
			}
		} else {
			traits[k] = clamp01((v1 + v2) / 2)
		}
	}
	child.Traits = traits
	return child
}

// NextGeneration builds the next population: the elite pool (top
// CloneCount+MutateCount by fitness) survives through clones and mutants,
// sexual offspring fill the remaining slots, and the bottom
// SexualOffspring agents fall out. ELOs and match stats must already be
// up to date from the tournament rounds.
func NextGeneration(pop *tournament.Population, cfg Config, w FitnessWeights, rng *rand.Rand) (*tournament.Population, error) {
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be positive")
	}
	slots := cfg.PopulationSize

	sexualN := clampInt(cfg.SexualOffspring, 0, slots)
	cloneN := clampInt(cfg.CloneCount, 0, slots)
	mutateN := clampInt(cfg.MutateCount, 0, slots)
	if sexualN+cloneN+mutateN > slots {
		mutateN = maxInt(0, slots-sexualN-cloneN)
	}

	elitePool := rankByFitness(pop, w)
	poolSize := cloneN + mutateN
	if poolSize == 0 {
		return tournament.NewPopulation(), nil
	}
	if poolSize > len(elitePool) {
		poolSize = len(elitePool)
	}
	elitePool = elitePool[:poolSize]

	next := tournament.NewPopulation()

	for k := 0; k < cloneN; k++ {
		parent := elitePool[rng.Intn(len(elitePool))].agent
		clone := cloneOf(parent)
		clone.Parents = append([]string(nil), parent.Parents...)
		clone.Generation = parent.Generation
		next.Add(clone)
	}

	for _, parent := range selectParents(elitePool, mutateN, rng, true, true) {
		next.Add(Mutate(parent, cfg, rng))
	}

	combination := cfg.Combination
	if combination != CombineCrossover {
		combination = CombineAverage
	}
	for k := 0; k < sexualN; k++ {
		parents := selectParents(elitePool, 2, rng, cfg.ParentWithReplacement, cfg.ParentFitnessWeighted)
		if len(parents) < 2 {
			break
		}
		next.Add(Combine(parents[0], parents[1], combination, rng))
	}

	return next, nil
}

// cloneOf copies an agent with a fresh ID and reset match stats.
func cloneOf(a *tournament.Agent) *tournament.Agent {
	clone := tournament.NewAgent(a.Name)
	clone.Generation = a.Generation
	clone.Elo3p = a.Elo3p
	clone.Elo4p = a.Elo4p
	clone.Elo5p = a.Elo5p
	clone.EloGlobal = a.EloGlobal
	clone.CheckpointPath = a.CheckpointPath
	clone.Traits = make(map[string]float64, len(a.Traits))
	for k, v := range a.Traits {
		clone.Traits[k] = v
	}
	return clone
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
