// Package tournament runs rated matches between a population of agents:
// random table matchmaking, engine-driven matches, and margin-aware ELO
// updates per player count.
package tournament

import "github.com/google/uuid"

// Agent is one member of the population: identity, per-count and global
// ELO ratings, GA metadata and running match statistics. The rule engine
// never inspects agents; it only sees the callbacks built from them.
type Agent struct {
	ID         string
	Name       string
	Generation int

	Elo3p     float64
	Elo4p     float64
	Elo5p     float64
	EloGlobal float64

	// Traits are free-form values in [0,1] evolved by the GA.
	Traits map[string]float64

	// CheckpointPath references an externally trained model, if any.
	CheckpointPath string
	Parents        []string

	MatchesPlayed   int
	TotalMatchScore float64
}

const initialElo = 1500.0

// NewAgent creates an agent with fresh ratings and a generated ID.
func NewAgent(name string) *Agent {
	return &Agent{
		ID:        uuid.NewString(),
		Name:      name,
		Elo3p:     initialElo,
		Elo4p:     initialElo,
		Elo5p:     initialElo,
		EloGlobal: initialElo,
		Traits:    map[string]float64{},
	}
}

// RecordMatchScore accumulates one match result into the agent's stats.
func (a *Agent) RecordMatchScore(score float64) {
	a.MatchesPlayed++
	a.TotalMatchScore += score
}

// AvgMatchScore is the mean per-match score, 0 before any match.
func (a *Agent) AvgMatchScore() float64 {
	if a.MatchesPlayed == 0 {
		return 0
	}
	return a.TotalMatchScore / float64(a.MatchesPlayed)
}

// EloFor returns the agent's rating for a player count (3, 4 or 5).
func (a *Agent) EloFor(players int) float64 {
	switch players {
	case 3:
		return a.Elo3p
	case 5:
		return a.Elo5p
	default:
		return a.Elo4p
	}
}

// addElo applies a delta to the per-count rating and mirrors it into the
// global rating.
func (a *Agent) addElo(players int, delta float64) {
	switch players {
	case 3:
		a.Elo3p += delta
	case 5:
		a.Elo5p += delta
	default:
		a.Elo4p += delta
	}
	a.EloGlobal += delta
}

// Population is the set of agents taking part in tournaments and the GA.
type Population struct {
	Agents map[string]*Agent
}

// NewPopulation creates an empty population.
func NewPopulation() *Population {
	return &Population{Agents: map[string]*Agent{}}
}

// Add inserts or replaces an agent.
func (p *Population) Add(a *Agent) { p.Agents[a.ID] = a }

// Get looks an agent up by ID.
func (p *Population) Get(id string) *Agent { return p.Agents[id] }

// Size is the number of agents in the population.
func (p *Population) Size() int { return len(p.Agents) }

// IDs returns the agent IDs in unspecified order.
func (p *Population) IDs() []string {
	ids := make([]string, 0, len(p.Agents))
	for id := range p.Agents {
		ids = append(ids, id)
	}
	return ids
}
